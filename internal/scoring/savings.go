package scoring

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/banqueando/matchd/internal/catalog"
)

const monthsPerYear = 12

// estimateSavings projects what the product is worth to this user over
// a year, in currency units, floored at zero. Cards are valued by their
// reward mechanism minus the annualized fee; loans are framed against
// the market-average fee benchmark plus any cashback equivalent.
func (e *Engine) estimateSavings(p *catalog.Product, answers AnswerSet) (int64, []SavingsLine) {
	monthlySpend := decimal.NewFromInt(e.cfg.Savings.DefaultMonthlySpend)
	if v, ok := answers.Number("monthly_spend"); ok && v > 0 {
		monthlySpend = decimal.NewFromFloat(v)
	}
	annualSpend := monthlySpend.Mul(decimal.NewFromInt(monthsPerYear))

	if p.Kind == catalog.KindLoan && p.Loan != nil {
		return e.loanSavings(p.Loan, annualSpend)
	}
	return e.cardSavings(p.Card, annualSpend)
}

func (e *Engine) cardSavings(card *catalog.CardEconomics, annualSpend decimal.Decimal) (int64, []SavingsLine) {
	var lines []SavingsLine

	reward := decimal.Zero
	if card != nil && card.Rewards != nil {
		switch card.Rewards.Type {
		case catalog.RewardCashback:
			pct := card.Rewards.CashbackPercent
			if pct <= 0 {
				pct = e.cfg.Savings.DefaultCashbackPercent
			}
			reward = annualSpend.Mul(decimal.NewFromFloat(pct)).Div(decimal.NewFromInt(100))
			lines = append(lines, SavingsLine{
				Concept: fmt.Sprintf("Cashback at %.1f%% of your spend", pct),
				Amount:  floorAmount(reward),
			})

		case catalog.RewardMiles:
			copPerMile := card.Rewards.COPPerMile
			if copPerMile <= 0 {
				copPerMile = e.cfg.Savings.DefaultCOPPerMile
			}
			miles := annualSpend.Div(decimal.NewFromFloat(copPerMile))
			reward = miles.Mul(decimal.NewFromFloat(e.mileValue(card.Rewards.MileProgram)))
			lines = append(lines, SavingsLine{
				Concept: fmt.Sprintf("Miles value (%s miles/year)", miles.Floor().String()),
				Amount:  floorAmount(reward),
			})

		case catalog.RewardPoints:
			rate := card.Rewards.PointsRate
			if rate <= 0 {
				rate = e.cfg.Savings.PointsRate
			}
			reward = annualSpend.Mul(decimal.NewFromFloat(rate))
			lines = append(lines, SavingsLine{
				Concept: "Points value on your annual spend",
				Amount:  floorAmount(reward),
			})
		}
	}
	if reward.IsZero() {
		reward = annualSpend.Mul(decimal.NewFromFloat(e.cfg.Savings.BaselineRate))
	}

	var fee decimal.Decimal
	if card != nil {
		fee = decimal.NewFromInt(card.MonthlyFee).Mul(decimal.NewFromInt(monthsPerYear))
	}

	// Fee advantage vs the market-average card shows up in the
	// breakdown even though the headline number only subtracts the
	// product's own fee.
	avgFee := decimal.NewFromInt(e.cfg.Savings.AverageMonthlyFee).Mul(decimal.NewFromInt(monthsPerYear))
	if feeSavings := avgFee.Sub(fee); feeSavings.IsPositive() {
		lines = append([]SavingsLine{{
			Concept: fmt.Sprintf("Management fee vs market average ($%s/year)", avgFee.String()),
			Amount:  floorAmount(feeSavings),
		}}, lines...)
	}

	total := reward.Sub(fee)
	return floorAmount(total), lines
}

func (e *Engine) loanSavings(loan *catalog.LoanEconomics, annualSpend decimal.Decimal) (int64, []SavingsLine) {
	var lines []SavingsLine

	avgFee := decimal.NewFromInt(e.cfg.Savings.AverageMonthlyFee).Mul(decimal.NewFromInt(monthsPerYear))
	fee := decimal.NewFromInt(loan.MonthlyFee).Mul(decimal.NewFromInt(monthsPerYear))

	total := decimal.Zero
	if feeSavings := avgFee.Sub(fee); feeSavings.IsPositive() {
		total = total.Add(feeSavings)
		lines = append(lines, SavingsLine{
			Concept: "Fee advantage vs market-average product",
			Amount:  floorAmount(feeSavings),
		})
	}

	if loan.CashbackPercent > 0 {
		cb := annualSpend.Mul(decimal.NewFromFloat(loan.CashbackPercent)).Div(decimal.NewFromInt(100))
		total = total.Add(cb)
		lines = append(lines, SavingsLine{
			Concept: fmt.Sprintf("Cashback equivalent at %.1f%%", loan.CashbackPercent),
			Amount:  floorAmount(cb),
		})
	}

	return floorAmount(total), lines
}

// mileValue returns the currency value of one mile for a program,
// falling back to the generic valuation.
func (e *Engine) mileValue(program string) float64 {
	if v, ok := e.cfg.Savings.MileValues[program]; ok && v > 0 {
		return v
	}
	if v, ok := e.cfg.Savings.MileValues["generic"]; ok && v > 0 {
		return v
	}
	return 50
}

// floorAmount truncates to whole currency units and never goes
// negative: a product is never shown with negative savings.
func floorAmount(d decimal.Decimal) int64 {
	if d.IsNegative() {
		return 0
	}
	return d.Floor().IntPart()
}
