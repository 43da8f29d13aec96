package scoring

import (
	"encoding/json"

	"github.com/banqueando/matchd/internal/catalog"
	"github.com/banqueando/matchd/internal/rules"
)

// applyRules runs one declarative rule set against a product. It is the
// single interpreter shared by bonus and penalty evaluation; only the
// reason kind differs. A malformed rule (unknown op, unresolvable
// field) is skipped so one broken rule cannot sink the whole pass.
func (e *Engine) applyRules(ruleList []rules.Rule, kind ReasonKind, p *catalog.Product, answers AnswerSet) (float64, []Reason) {
	var delta float64
	var reasons []Reason

	for _, r := range ruleList {
		fired, ok := e.ruleFires(&r.When, p, answers)
		if !ok {
			e.emit(Event{Type: EventRuleSkipped, ProductID: p.ID, Rule: r.Label})
			e.logger.Debug("skipping malformed rule", "rule", r.Label, "product", p.ID)
			continue
		}
		if !fired {
			continue
		}
		delta += r.Points
		reasons = append(reasons, Reason{Kind: kind, Text: r.Label, Points: r.Points})
		e.emit(Event{Type: EventRuleFired, ProductID: p.ID, Rule: r.Label, Points: r.Points})
	}

	return delta, reasons
}

// ruleFires evaluates a condition: the income-check variant re-runs the
// soft income test, every other condition is a conjunction of an answer
// clause and a product clause. The second return value is false for
// malformed conditions.
func (e *Engine) ruleFires(cond *rules.Condition, p *catalog.Product, answers AnswerSet) (fired, ok bool) {
	if cond.IncomeCheck {
		return !e.incomeEligible(p, answers), true
	}

	if cond.Answer != nil {
		hold, ok := answerClauseHolds(cond.Answer, answers)
		if !ok {
			return false, false
		}
		if !hold {
			return false, true
		}
	}

	if cond.Product != nil {
		hold, ok := productClauseHolds(cond.Product, p)
		if !ok {
			return false, false
		}
		if !hold {
			return false, true
		}
	}

	return true, true
}

// answerClauseHolds checks a clause against the answer set. An absent
// answer never satisfies a condition.
func answerClauseHolds(c *rules.Clause, answers AnswerSet) (hold, ok bool) {
	switch c.Op {
	case rules.OpEquals:
		v, present := answers.String(c.Field)
		if !present {
			return false, true
		}
		want, isStr := c.Value.(string)
		if !isStr {
			return false, false
		}
		return v == want, true

	case rules.OpIn:
		v, present := answers.String(c.Field)
		if !present {
			return false, true
		}
		return contains(c.Values, v), true

	case rules.OpIncludes:
		want, isStr := c.Value.(string)
		if !isStr {
			return false, false
		}
		selected, present := answers.List(c.Field)
		if !present {
			return false, true
		}
		return contains(selected, want), true
	}

	return false, false
}

// productClauseHolds checks a clause against a resolved product field.
func productClauseHolds(c *rules.Clause, p *catalog.Product) (hold, ok bool) {
	fv, resolved := p.Field(c.Field)
	if !resolved {
		return false, false
	}

	switch c.Op {
	case rules.OpEquals:
		return valuesEqual(fv, c.Value), true

	case rules.OpLessThan:
		a, aok := asFloat(fv)
		b, bok := asFloat(c.Value)
		if !aok || !bok {
			return false, false
		}
		return a < b, true

	case rules.OpGreaterThan:
		a, aok := asFloat(fv)
		b, bok := asFloat(c.Value)
		if !aok || !bok {
			return false, false
		}
		return a > b, true

	case rules.OpIn:
		s, isStr := fv.(string)
		if !isStr {
			return false, false
		}
		return contains(c.Values, s), true
	}

	return false, false
}

func valuesEqual(a, b any) bool {
	if af, ok := asFloat(a); ok {
		if bf, ok := asFloat(b); ok {
			return af == bf
		}
		return false
	}
	return a == b
}

func asFloat(v any) (float64, bool) {
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
