// Package scoring implements the matching engine: eligibility
// filtering, weighted factor scoring, bonus/penalty rule evaluation,
// savings estimation, pros/cons derivation and comparative ranking.
//
// The engine is constructed once per catalog and is safe for
// concurrent use: catalog and rule config are read-only and every
// invocation allocates fresh derived values.
package scoring

import (
	"log/slog"

	"github.com/banqueando/matchd/internal/catalog"
	"github.com/banqueando/matchd/internal/rules"
)

type Engine struct {
	products []catalog.Product
	cfg      *rules.Config
	observer Observer
	logger   *slog.Logger
}

// New creates an engine over a fixed catalog and scoring policy.
func New(products []catalog.Product, cfg *rules.Config, logger *slog.Logger) *Engine {
	return &Engine{
		products: products,
		cfg:      cfg,
		logger:   logger,
	}
}

// WithObserver installs a structured event callback. Call before the
// engine is shared across goroutines.
func (e *Engine) WithObserver(o Observer) *Engine {
	e.observer = o
	return e
}

// Products exposes the catalog for display passthrough.
func (e *Engine) Products() []catalog.Product {
	return e.products
}

// Match runs one full scoring pass for a completed questionnaire. It is
// pure over (catalog, config, answers): repeated calls with the same
// inputs produce identical result sets.
func (e *Engine) Match(answers AnswerSet) *ResultSet {
	eligible, fallback := e.filterEligible(answers)
	e.emit(Event{
		Type:     EventFilterApplied,
		Eligible: len(eligible),
		Total:    len(e.products),
		Fallback: fallback,
	})

	scored := make([]*ScoredProduct, 0, len(eligible))
	for i := range eligible {
		scored = append(scored, e.scoreProduct(&eligible[i], answers, fallback))
	}

	return e.rank(scored)
}

func (e *Engine) scoreProduct(p *catalog.Product, answers AnswerSet, fallback bool) *ScoredProduct {
	total := e.cfg.Scoring.BaseScore
	var reasons []Reason

	pts, factorReasons := e.scoreFactors(p, answers)
	total += pts
	reasons = append(reasons, factorReasons...)

	bonus, bonusReasons := e.applyRules(e.cfg.BonusRules, ReasonBonus, p, answers)
	total += bonus
	reasons = append(reasons, bonusReasons...)

	penalty, penaltyReasons := e.applyRules(e.cfg.PenaltyRules, ReasonPenalty, p, answers)
	total += penalty
	reasons = append(reasons, penaltyReasons...)

	if fallback {
		total -= e.cfg.Scoring.FallbackPenalty
		reasons = append([]Reason{{Kind: ReasonFallback, Text: fallbackDisclosure}}, reasons...)
	}

	// Clamp once at the end so a negative intermediate state and a
	// later strong bonus settle correctly. Under fallback the floor is
	// applied after the clamp.
	score := clamp(total, 0, e.cfg.Scoring.MaxScore)
	if fallback && score < e.cfg.Scoring.FallbackFloor {
		score = e.cfg.Scoring.FallbackFloor
	}

	savings, breakdown := e.estimateSavings(p, answers)
	pros, cons := e.deriveProsCons(p)

	return &ScoredProduct{
		Product:          *p,
		Score:            score,
		MatchReasons:     reasons,
		Pros:             pros,
		Cons:             cons,
		Benefits:         deriveBenefits(p),
		Savings:          savings,
		SavingsBreakdown: breakdown,
		Fallback:         fallback,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
