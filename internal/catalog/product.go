package catalog

// Kind distinguishes the two product families in the catalog.
type Kind string

const (
	KindCard Kind = "card"
	KindLoan Kind = "loan"
)

// Product is one catalog entry. Exactly one of Card or Loan is set,
// matching Kind; the rest of the envelope is shared by both families.
// Products are immutable for the lifetime of the engine.
type Product struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Bank string `json:"bank"`
	Kind Kind   `json:"kind"`

	// MatchFactors maps a factor name (e.g. "payment_behavior") to the
	// answer values this product is a good fit for.
	MatchFactors map[string][]string `json:"match_factors,omitempty"`

	Requirements Requirements   `json:"requirements"`
	Card         *CardEconomics `json:"card,omitempty"`
	Loan         *LoanEconomics `json:"loan,omitempty"`
	Narrative    Narrative      `json:"narrative"`

	ApplyURL string `json:"apply_url,omitempty"`
}

type Requirements struct {
	MinIncome int64 `json:"min_income,omitempty"`

	// AcceptsReported is nil when the issuer has not stated a policy on
	// applicants with a reported delinquency. Only an explicit false
	// disqualifies such applicants.
	AcceptsReported *bool `json:"accepts_reported,omitempty"`

	AcceptsInformalEmployment bool `json:"accepts_informal_employment,omitempty"`
	AcceptsNoCreditHistory    bool `json:"accepts_no_credit_history,omitempty"`

	// RequiredPartner names a relationship the applicant must already
	// hold with the issuer (e.g. a payroll account), or "" for none.
	RequiredPartner string `json:"required_partner,omitempty"`
}

// RewardType enumerates the reward mechanisms a card can carry.
type RewardType string

const (
	RewardCashback RewardType = "cashback"
	RewardMiles    RewardType = "miles"
	RewardPoints   RewardType = "points"
)

type Rewards struct {
	Type            RewardType `json:"type"`
	CashbackPercent float64    `json:"cashback_percent,omitempty"`
	// COPPerMile is the spend required to earn one mile.
	COPPerMile  float64 `json:"cop_per_mile,omitempty"`
	MileProgram string  `json:"mile_program,omitempty"`
	PointsRate  float64 `json:"points_rate,omitempty"`
}

type CardEconomics struct {
	MonthlyFee     int64    `json:"monthly_fee"`
	FeeWaiver      string   `json:"fee_waiver,omitempty"`
	InterestRateEA float64  `json:"interest_rate_ea,omitempty"`
	Rewards        *Rewards `json:"rewards,omitempty"`
	NoForeignTxFee bool     `json:"no_foreign_tx_fee,omitempty"`
	Insurance      []string `json:"insurance,omitempty"`
	AppRating      float64  `json:"app_rating,omitempty"`
}

type RateRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type LoanEconomics struct {
	MonthlyFee        int64     `json:"monthly_fee"`
	RateEA            RateRange `json:"rate_ea"`
	MinAmountMillions int       `json:"min_amount_millions,omitempty"`
	MaxAmountMillions int       `json:"max_amount_millions,omitempty"`
	DisbursementHours int       `json:"disbursement_hours,omitempty"`
	CashbackPercent   float64   `json:"cashback_percent,omitempty"`
}

type Narrative struct {
	Benefits   []string `json:"benefits,omitempty"`
	Drawbacks  []string `json:"drawbacks,omitempty"`
	UsageTags  []string `json:"usage_tags,omitempty"`
	Categories []string `json:"categories,omitempty"`
}

// MonthlyFee returns the periodic fee regardless of product family.
func (p *Product) MonthlyFee() int64 {
	switch {
	case p.Card != nil:
		return p.Card.MonthlyFee
	case p.Loan != nil:
		return p.Loan.MonthlyFee
	}
	return 0
}

// Field resolves a dotted path into the product for rule conditions.
// The path set is closed: unknown paths return (nil, false) so the
// referencing rule becomes a no-op instead of an error.
func (p *Product) Field(path string) (any, bool) {
	switch path {
	case "id":
		return p.ID, true
	case "bank":
		return p.Bank, true
	case "kind":
		return string(p.Kind), true
	case "requirements.min_income":
		return float64(p.Requirements.MinIncome), true
	case "requirements.required_partner":
		return p.Requirements.RequiredPartner, true
	case "monthly_fee":
		return float64(p.MonthlyFee()), true
	}

	if p.Card != nil {
		switch path {
		case "card.monthly_fee":
			return float64(p.Card.MonthlyFee), true
		case "card.interest_rate_ea":
			return p.Card.InterestRateEA, true
		case "card.no_foreign_tx_fee":
			return p.Card.NoForeignTxFee, true
		case "card.app_rating":
			return p.Card.AppRating, true
		case "card.rewards.type":
			if p.Card.Rewards == nil {
				return "", true
			}
			return string(p.Card.Rewards.Type), true
		case "card.rewards.cashback_percent":
			if p.Card.Rewards == nil {
				return 0.0, true
			}
			return p.Card.Rewards.CashbackPercent, true
		case "card.rewards.mile_program":
			if p.Card.Rewards == nil {
				return "", true
			}
			return p.Card.Rewards.MileProgram, true
		}
	}

	if p.Loan != nil {
		switch path {
		case "loan.monthly_fee":
			return float64(p.Loan.MonthlyFee), true
		case "loan.rate_ea.min":
			return p.Loan.RateEA.Min, true
		case "loan.rate_ea.max":
			return p.Loan.RateEA.Max, true
		case "loan.min_amount_millions":
			return float64(p.Loan.MinAmountMillions), true
		case "loan.max_amount_millions":
			return float64(p.Loan.MaxAmountMillions), true
		case "loan.disbursement_hours":
			return float64(p.Loan.DisbursementHours), true
		case "loan.cashback_percent":
			return p.Loan.CashbackPercent, true
		}
	}

	return nil, false
}
