package scoring

import (
	"fmt"
	"sort"
)

// rank orders scored products best-first and assembles the result set.
// The sort is stable: ties keep catalog order, so repeated runs over
// the same inputs always produce the same ranking.
func (e *Engine) rank(scored []*ScoredProduct) *ResultSet {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	rs := &ResultSet{AllResults: scored}
	if len(scored) == 0 {
		e.emit(Event{Type: EventRanked, Total: 0})
		return rs
	}

	display := make([]*ScoredProduct, 0, len(scored))
	for _, sp := range scored {
		if sp.Score >= e.cfg.Display.MinScore {
			display = append(display, sp)
		}
	}
	// The display threshold trims weak results; it never empties the
	// recommendation outright.
	if len(display) == 0 {
		display = scored
	}

	limit := e.cfg.Display.ShowTopResults
	if limit > len(display) {
		limit = len(display)
	}

	top := display[0]
	alternatives := display[1:limit]

	top.WhyWins = e.whyWins(top, alternatives)
	for _, alt := range alternatives {
		alt.WhyConsider = whyConsider(alt)
	}

	rs.TopMatch = top
	rs.Alternatives = alternatives

	e.emit(Event{
		Type:      EventRanked,
		ProductID: top.ID,
		Points:    top.Score,
		Total:     len(scored),
	})
	return rs
}

// whyWins explains why the top match beat the shown alternatives. It
// always returns at least one entry.
func (e *Engine) whyWins(top *ScoredProduct, alternatives []*ScoredProduct) []string {
	var why []string

	if top.MonthlyFee() == 0 {
		for _, alt := range alternatives {
			if alt.MonthlyFee() > 0 {
				why = append(why, fmt.Sprintf("No management fee, while %s charges $%s/month",
					alt.Name, thousands(alt.MonthlyFee())))
				break
			}
		}
	}

	if len(alternatives) > 0 {
		best := alternatives[0].Savings
		for _, alt := range alternatives[1:] {
			if alt.Savings > best {
				best = alt.Savings
			}
		}
		if gap := top.Savings - best; gap >= e.cfg.Display.SavingsMargin {
			why = append(why, fmt.Sprintf("Saves you about $%s more per year than the next option",
				thousands(gap)))
		}
	}

	// Strongest factor match doubles as a differentiator when nothing
	// structural separates the candidates.
	if len(why) == 0 {
		if r, ok := strongestFactor(top); ok {
			why = append(why, r.Text)
		}
	}
	if len(why) == 0 {
		why = append(why, "Best overall fit for your answers")
	}
	return why
}

// whyConsider gives an alternative a one-line pitch from its own
// strongest factor reason.
func whyConsider(sp *ScoredProduct) string {
	if r, ok := strongestFactor(sp); ok {
		return r.Text
	}
	return "A solid option if your priorities shift"
}

func strongestFactor(sp *ScoredProduct) (Reason, bool) {
	var best Reason
	found := false
	for _, r := range sp.MatchReasons {
		if r.Kind != ReasonFactor {
			continue
		}
		if !found || r.Points > best.Points {
			best = r
			found = true
		}
	}
	return best, found
}
