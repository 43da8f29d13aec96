package scoring

import "encoding/json"

// AnswerSet is one user's questionnaire responses: question id to a
// single value, a multi-select list, or a number. Missing keys mean
// "no preference" and are never an error.
type AnswerSet map[string]any

// answerSkip is the sentinel option for questions the user declined.
const answerSkip = "skip"

// String returns the scalar answer for a key. Skipped answers read as
// absent.
func (a AnswerSet) String(key string) (string, bool) {
	v, ok := a[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" || s == answerSkip {
		return "", false
	}
	return s, true
}

// List returns the multi-select answer for a key. A scalar answer is
// returned as a single-element list so rules can treat both uniformly.
func (a AnswerSet) List(key string) ([]string, bool) {
	v, ok := a[key]
	if !ok {
		return nil, false
	}
	switch t := v.(type) {
	case []string:
		if len(t) == 0 {
			return nil, false
		}
		return t, true
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		if len(out) == 0 {
			return nil, false
		}
		return out, true
	case string:
		if t == "" || t == answerSkip {
			return nil, false
		}
		return []string{t}, true
	}
	return nil, false
}

// IsList reports whether the answer is a multi-select list.
func (a AnswerSet) IsList(key string) bool {
	switch a[key].(type) {
	case []string, []any:
		return true
	}
	return false
}

// Number returns the numeric answer for a key (slider questions).
func (a AnswerSet) Number(key string) (float64, bool) {
	v, ok := a[key]
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
