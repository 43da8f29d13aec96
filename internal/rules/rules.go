// Package rules holds the declarative scoring policy: factor weights,
// bonus/penalty rules, pros/cons templates, income brackets, savings
// parameters and display limits. It is data only; evaluation lives in
// the scoring package.
package rules

import (
	"fmt"
)

// Op is the closed set of comparators a clause can use.
type Op string

const (
	OpEquals      Op = "equals"
	OpLessThan    Op = "less_than"
	OpGreaterThan Op = "greater_than"
	OpIn          Op = "in"
	OpIncludes    Op = "includes"
)

// Clause is one tagged condition against a named answer or product field.
// Value holds the comparison operand for equals/less_than/greater_than/
// includes; Values holds the set for in.
type Clause struct {
	Field  string   `json:"field"`
	Op     Op       `json:"op"`
	Value  any      `json:"value,omitempty"`
	Values []string `json:"values,omitempty"`
}

// Condition is the conjunction a bonus/penalty rule fires on. When
// IncomeCheck is set the generic clauses are ignored and the rule
// re-runs the income eligibility test instead.
type Condition struct {
	IncomeCheck bool    `json:"income_check,omitempty"`
	Answer      *Clause `json:"answer,omitempty"`
	Product     *Clause `json:"product,omitempty"`
}

// Rule is one bonus or penalty adjustment. Points are positive for
// bonuses and negative for penalties; a rule either fires for its full
// delta or not at all.
type Rule struct {
	Label  string    `json:"label"`
	Points float64   `json:"points"`
	When   Condition `json:"when"`
}

// TextRule renders template text when its product clause holds.
// "{value}" in the text is replaced with the formatted field value.
type TextRule struct {
	When Clause `json:"when"`
	Text string `json:"text"`
}

type ProsCons struct {
	Pros []TextRule `json:"pros,omitempty"`
	Cons []TextRule `json:"cons,omitempty"`
}

// IncomeRange is one self-reported income bracket; Max is the bracket
// ceiling compared against product minimum income requirements.
type IncomeRange struct {
	Max int64 `json:"max"`
}

type Scoring struct {
	BaseScore           float64 `json:"base_score"`
	MaxScore            float64 `json:"max_score"`
	ExactMatchPoints    float64 `json:"exact_match_points"`
	WeakReasonThreshold float64 `json:"weak_reason_threshold"`
	DefaultWeight       float64 `json:"default_weight"`
	FallbackPenalty     float64 `json:"fallback_penalty"`
	FallbackFloor       float64 `json:"fallback_floor"`
}

type Savings struct {
	DefaultMonthlySpend    int64              `json:"default_monthly_spend"`
	AverageMonthlyFee      int64              `json:"average_monthly_fee"`
	DefaultCashbackPercent float64            `json:"default_cashback_percent"`
	DefaultCOPPerMile      float64            `json:"default_cop_per_mile"`
	MileValues             map[string]float64 `json:"mile_values,omitempty"`
	PointsRate             float64            `json:"points_rate"`
	BaselineRate           float64            `json:"baseline_rate"`
}

type Display struct {
	ShowTopResults      int     `json:"show_top_results"`
	ShowProsConsPerCard int     `json:"show_pros_cons_per_card"`
	MinScore            float64 `json:"min_score"`
	SavingsMargin       int64   `json:"savings_margin"`
}

type Config struct {
	Weights       map[string]float64     `json:"weights,omitempty"`
	Scoring       Scoring                `json:"scoring"`
	BonusRules    []Rule                 `json:"bonus_rules,omitempty"`
	PenaltyRules  []Rule                 `json:"penalty_rules,omitempty"`
	ProsCons      ProsCons               `json:"pros_cons"`
	FactorReasons map[string]string      `json:"factor_reasons,omitempty"`
	IncomeRanges  map[string]IncomeRange `json:"income_ranges,omitempty"`
	Savings       Savings                `json:"savings"`
	Display       Display                `json:"display"`
}

// Weight returns the configured weight for a factor, or the default.
// Weights are on a 1–10 importance scale.
func (c *Config) Weight(factor string) float64 {
	if w, ok := c.Weights[factor]; ok {
		return w
	}
	return c.Scoring.DefaultWeight
}

// Default returns the built-in scoring policy. A rules file loaded on
// top of it only needs to state what differs.
func Default() *Config {
	return &Config{
		Weights: map[string]float64{
			"payment_behavior":   9,
			"fee_sensitivity":    8,
			"interests":          7,
			"card_usage":         7,
			"digital_preference": 6,
			"shopping_places":    5,
			"travel_freq":        5,
			"values":             4,
		},
		Scoring: Scoring{
			BaseScore:           20,
			MaxScore:            100,
			ExactMatchPoints:    10,
			WeakReasonThreshold: 3,
			DefaultWeight:       5,
			FallbackPenalty:     25,
			FallbackFloor:       30,
		},
		FactorReasons: map[string]string{
			"interests":          "Matches your interests",
			"digital_preference": "Digital experience that fits how you bank",
			"fee_sensitivity":    "Fits your fee preference",
			"payment_behavior":   "Compatible with how you pay",
			"shopping_places":    "Perks at the places you already shop",
			"travel_freq":        "Good fit for how often you travel",
			"values":             "Aligned with your values",
			"card_usage":         "Right for how you plan to use it",
		},
		IncomeRanges: map[string]IncomeRange{
			"under_1m": {Max: 1_000_000},
			"1m_2m":    {Max: 2_000_000},
			"2m_4m":    {Max: 4_000_000},
			"4m_8m":    {Max: 8_000_000},
			"over_8m":  {Max: 999_999_999},
		},
		Savings: Savings{
			DefaultMonthlySpend:    1_500_000,
			AverageMonthlyFee:      20_000,
			DefaultCashbackPercent: 2.0,
			DefaultCOPPerMile:      4_000,
			MileValues: map[string]float64{
				"generic": 50,
			},
			PointsRate:   0.01,
			BaselineRate: 0.005,
		},
		Display: Display{
			ShowTopResults:      3,
			ShowProsConsPerCard: 3,
			MinScore:            40,
			SavingsMargin:       100_000,
		},
	}
}

// Validate checks the invariants the engine relies on.
func (c *Config) Validate() error {
	if c.Scoring.MaxScore <= 0 {
		return fmt.Errorf("rules: max_score must be positive, got %v", c.Scoring.MaxScore)
	}
	if c.Scoring.FallbackFloor > c.Scoring.MaxScore {
		return fmt.Errorf("rules: fallback_floor %v exceeds max_score %v",
			c.Scoring.FallbackFloor, c.Scoring.MaxScore)
	}
	for name, w := range c.Weights {
		if w < 0 {
			return fmt.Errorf("rules: negative weight for factor %q", name)
		}
	}
	if c.Display.ShowTopResults < 1 {
		return fmt.Errorf("rules: show_top_results must be at least 1")
	}
	return nil
}
