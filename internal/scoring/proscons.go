package scoring

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/banqueando/matchd/internal/catalog"
	"github.com/banqueando/matchd/internal/rules"
)

const maxBenefits = 5

// deriveProsCons renders the configured pros/cons templates for a
// product. Output order follows rule declaration order, not relevance,
// so behavior stays deterministic and config-driven.
func (e *Engine) deriveProsCons(p *catalog.Product) (pros, cons []string) {
	limit := e.cfg.Display.ShowProsConsPerCard
	pros = renderTextRules(e.cfg.ProsCons.Pros, p, limit)
	cons = renderTextRules(e.cfg.ProsCons.Cons, p, limit)
	return pros, cons
}

func renderTextRules(ruleList []rules.TextRule, p *catalog.Product, limit int) []string {
	var out []string
	for _, r := range ruleList {
		if limit > 0 && len(out) >= limit {
			break
		}
		hold, ok := productClauseHolds(&r.When, p)
		if !ok || !hold {
			continue
		}
		text := r.Text
		if strings.Contains(text, "{value}") {
			v, _ := p.Field(r.When.Field)
			text = strings.ReplaceAll(text, "{value}", formatFieldValue(v, r.When.Field))
		}
		out = append(out, text)
	}
	return out
}

// formatFieldValue renders a product field for template substitution.
// Monetary and income fields get thousands separators.
func formatFieldValue(v any, field string) string {
	if f, ok := asFloat(v); ok {
		if strings.Contains(field, "fee") || strings.Contains(field, "income") {
			return thousands(int64(f))
		}
		if f == float64(int64(f)) {
			return strconv.FormatInt(int64(f), 10)
		}
		return strconv.FormatFloat(f, 'f', 1, 64)
	}
	return fmt.Sprintf("%v", v)
}

func thousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// deriveBenefits assembles the display benefits list: the product's own
// declared benefits first, then synthesized fallbacks appended only
// while true for the product and only until the cap is reached.
func deriveBenefits(p *catalog.Product) []string {
	benefits := append([]string(nil), p.Narrative.Benefits...)
	if len(benefits) >= maxBenefits {
		return benefits[:maxBenefits]
	}

	add := func(ok bool, text string) {
		if ok && len(benefits) < maxBenefits {
			benefits = append(benefits, text)
		}
	}

	add(p.MonthlyFee() == 0, "No management fee")

	if card := p.Card; card != nil {
		if r := card.Rewards; r != nil {
			switch r.Type {
			case catalog.RewardCashback:
				add(true, "Cashback on every purchase")
			case catalog.RewardMiles:
				add(true, "Earn miles on your spend")
			case catalog.RewardPoints:
				add(true, "Earn points on your spend")
			}
		}
		add(len(card.Insurance) > 0, "Included insurance coverage")
		add(card.NoForeignTxFee, "No foreign transaction fee")
		add(card.AppRating >= 4.5, "Highly rated mobile app")
	}

	if loan := p.Loan; loan != nil {
		add(loan.RateEA.Min > 0 && loan.RateEA.Min < 20,
			fmt.Sprintf("Competitive rate from %.1f%% EA", loan.RateEA.Min))
		add(loan.DisbursementHours > 0 && loan.DisbursementHours <= 24,
			"Disbursement within 24 hours")
	}

	return benefits
}
