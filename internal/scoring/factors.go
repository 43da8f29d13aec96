package scoring

import (
	"sort"

	"github.com/banqueando/matchd/internal/catalog"
)

// factorNormalization keeps factor points comparable across the 1–10
// weight scale.
const factorNormalization = 10.0

// scoreFactors compares the user's answers with the product's declared
// match factors and returns the weighted points plus a reason per
// strong match.
//
// A multi-select answer earns proportional credit: the fraction of the
// user's selections the product covers. A missing answer contributes
// nothing.
func (e *Engine) scoreFactors(p *catalog.Product, answers AnswerSet) (float64, []Reason) {
	var points float64
	var reasons []Reason

	// Map iteration order is random; sort so repeated runs emit
	// identical reason lists.
	factors := make([]string, 0, len(p.MatchFactors))
	for name := range p.MatchFactors {
		factors = append(factors, name)
	}
	sort.Strings(factors)

	for _, factor := range factors {
		accepted := p.MatchFactors[factor]
		strength := matchStrength(answers, factor, accepted)
		if strength == 0 {
			continue
		}

		weight := e.cfg.Weight(factor)
		pts := e.cfg.Scoring.ExactMatchPoints * weight * strength / factorNormalization
		points += pts

		// Weak matches still score but are not worth explaining.
		if pts < e.cfg.Scoring.WeakReasonThreshold {
			continue
		}
		if text, ok := e.cfg.FactorReasons[factor]; ok {
			reasons = append(reasons, Reason{Kind: ReasonFactor, Text: text, Points: pts})
		}
	}

	return points, reasons
}

// matchStrength returns 0–1: how fully the user's answer for a factor
// overlaps the product's accepted values.
func matchStrength(answers AnswerSet, factor string, accepted []string) float64 {
	if answers.IsList(factor) {
		selected, ok := answers.List(factor)
		if !ok {
			return 0
		}
		matched := 0
		for _, v := range selected {
			if contains(accepted, v) {
				matched++
			}
		}
		if matched == 0 {
			return 0
		}
		return float64(matched) / float64(len(selected))
	}

	v, ok := answers.String(factor)
	if !ok {
		return 0
	}
	if contains(accepted, v) {
		return 1
	}
	return 0
}
