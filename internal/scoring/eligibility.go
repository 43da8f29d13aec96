package scoring

import "github.com/banqueando/matchd/internal/catalog"

// fallbackDisclosure prefixes every reason list produced under the
// whole-catalog fallback so the compromise is visible to the user.
const fallbackDisclosure = "You may not meet every requirement for this product"

// filterEligible removes products the user cannot realistically obtain.
// Only hard disqualifiers exclude: a partner relationship the user
// lacks, or an explicit rejection of reported delinquencies. Income is
// deliberately soft and handled by the income-check penalty rule.
//
// If nothing survives, the entire catalog is returned with fallback
// set, so the caller never faces an empty result for a non-empty
// catalog.
func (e *Engine) filterEligible(answers AnswerSet) (eligible []catalog.Product, fallback bool) {
	for _, p := range e.products {
		if e.disqualified(&p, answers) {
			continue
		}
		eligible = append(eligible, p)
	}
	if len(eligible) == 0 && len(e.products) > 0 {
		return e.products, true
	}
	return eligible, false
}

func (e *Engine) disqualified(p *catalog.Product, answers AnswerSet) bool {
	if req := p.Requirements.RequiredPartner; req != "" {
		held, _ := answers.List("bank_relationships")
		if !contains(held, req) {
			return true
		}
	}

	if history, ok := answers.String("credit_history"); ok && history == "reported" {
		// Only an explicit rejection disqualifies; an unstated policy
		// keeps the product in play.
		if p.Requirements.AcceptsReported != nil && !*p.Requirements.AcceptsReported {
			return true
		}
	}

	return false
}

// incomeEligible compares the user's self-reported bracket ceiling with
// the product's minimum income. Unanswered or unknown brackets pass.
func (e *Engine) incomeEligible(p *catalog.Product, answers AnswerSet) bool {
	bracket, ok := answers.String("income")
	if !ok {
		return true
	}
	r, ok := e.cfg.IncomeRanges[bracket]
	if !ok {
		return true
	}
	return r.Max >= p.Requirements.MinIncome
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
