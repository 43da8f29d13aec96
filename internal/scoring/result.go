package scoring

import "github.com/banqueando/matchd/internal/catalog"

// ReasonKind tags where a match reason came from.
type ReasonKind string

const (
	ReasonFactor   ReasonKind = "factor"
	ReasonBonus    ReasonKind = "bonus"
	ReasonPenalty  ReasonKind = "penalty"
	ReasonFallback ReasonKind = "fallback"
)

// Reason is one human-readable justification line with its score
// contribution.
type Reason struct {
	Kind   ReasonKind `json:"kind"`
	Text   string     `json:"text"`
	Points float64    `json:"points,omitempty"`
}

// SavingsLine is one entry of the itemized savings breakdown.
type SavingsLine struct {
	Concept string `json:"concept"`
	Amount  int64  `json:"amount"`
}

// ScoredProduct is a catalog product augmented with everything one
// scoring pass derived for it. It is a fresh value per invocation; the
// underlying Product is never mutated.
type ScoredProduct struct {
	catalog.Product

	Score            float64       `json:"score"`
	MatchReasons     []Reason      `json:"match_reasons"`
	Pros             []string      `json:"pros"`
	Cons             []string      `json:"cons"`
	Benefits         []string      `json:"benefits"`
	Savings          int64         `json:"personalized_savings"`
	SavingsBreakdown []SavingsLine `json:"savings_breakdown,omitempty"`
	Fallback         bool          `json:"fallback,omitempty"`

	// WhyWins is set on the top match only; WhyConsider on alternatives.
	WhyWins     []string `json:"why_wins,omitempty"`
	WhyConsider string   `json:"why_consider,omitempty"`
}

// ResultSet is the ranked output of one questionnaire run. TopMatch is
// nil only when the catalog itself is empty.
type ResultSet struct {
	TopMatch     *ScoredProduct   `json:"top_match"`
	Alternatives []*ScoredProduct `json:"alternatives"`
	AllResults   []*ScoredProduct `json:"all_results"`
}
