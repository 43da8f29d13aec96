package scoring

import (
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/banqueando/matchd/internal/catalog"
	"github.com/banqueando/matchd/internal/rules"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func boolPtr(b bool) *bool { return &b }

func fixtureCatalog() []catalog.Product {
	return []catalog.Product{
		{
			ID:   "aurum-free",
			Name: "Aurum Free",
			Bank: "Banco Aurum",
			Kind: catalog.KindCard,
			MatchFactors: map[string][]string{
				"payment_behavior": {"full"},
				"fee_sensitivity":  {"no_fee"},
				"interests":        {"cashback", "online_shopping"},
			},
			Card: &catalog.CardEconomics{
				MonthlyFee: 0,
				Rewards:    &catalog.Rewards{Type: catalog.RewardCashback, CashbackPercent: 1.5},
				AppRating:  4.7,
			},
		},
		{
			ID:   "aurum-gold",
			Name: "Aurum Gold",
			Bank: "Banco Aurum",
			Kind: catalog.KindCard,
			MatchFactors: map[string][]string{
				"payment_behavior": {"full", "installments"},
				"travel_freq":      {"frequent"},
				"interests":        {"travel", "dining"},
			},
			Card: &catalog.CardEconomics{
				MonthlyFee: 32_000,
				Rewards: &catalog.Rewards{
					Type:        catalog.RewardMiles,
					COPPerMile:  4_000,
					MileProgram: "generic",
				},
				Insurance: []string{"travel"},
			},
		},
		{
			ID:   "nomina-select",
			Name: "Nomina Select",
			Bank: "Banco Central",
			Kind: catalog.KindCard,
			MatchFactors: map[string][]string{
				"payment_behavior": {"full"},
			},
			Requirements: catalog.Requirements{
				MinIncome:       4_000_000,
				AcceptsReported: boolPtr(false),
				RequiredPartner: "banco_central",
			},
			Card: &catalog.CardEconomics{MonthlyFee: 25_000},
		},
		{
			ID:   "flexi-loan",
			Name: "Flexi Loan",
			Bank: "Credivia",
			Kind: catalog.KindLoan,
			MatchFactors: map[string][]string{
				"fee_sensitivity": {"no_fee"},
			},
			Loan: &catalog.LoanEconomics{
				MonthlyFee:        0,
				RateEA:            catalog.RateRange{Min: 14.5, Max: 26},
				DisbursementHours: 24,
			},
		},
	}
}

func newTestEngine(products []catalog.Product, cfg *rules.Config) *Engine {
	if cfg == nil {
		cfg = rules.Default()
	}
	return New(products, cfg, testLogger())
}

func TestMatchDeterministic(t *testing.T) {
	e := newTestEngine(fixtureCatalog(), nil)
	answers := AnswerSet{
		"payment_behavior": "full",
		"fee_sensitivity":  "no_fee",
		"interests":        []string{"cashback", "travel"},
		"income":           "2m_4m",
	}

	first, err := json.Marshal(e.Match(answers))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := json.Marshal(e.Match(answers))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(first) != string(again) {
			t.Fatalf("run %d differed from first run:\n%s\n%s", i, first, again)
		}
	}
}

func TestMatchScoreBounds(t *testing.T) {
	cfg := rules.Default()
	cfg.BonusRules = []rules.Rule{
		{Label: "Huge bonus", Points: 500, When: rules.Condition{
			Product: &rules.Clause{Field: "kind", Op: rules.OpEquals, Value: "card"},
		}},
	}
	cfg.PenaltyRules = []rules.Rule{
		{Label: "Huge penalty", Points: -500, When: rules.Condition{
			Product: &rules.Clause{Field: "kind", Op: rules.OpEquals, Value: "loan"},
		}},
	}
	e := newTestEngine(fixtureCatalog(), cfg)

	rs := e.Match(AnswerSet{"payment_behavior": "full"})
	for _, sp := range rs.AllResults {
		if sp.Score < 0 || sp.Score > cfg.Scoring.MaxScore {
			t.Errorf("product %s score %v outside [0, %v]", sp.ID, sp.Score, cfg.Scoring.MaxScore)
		}
	}
}

func TestFeeFreeCardWinsOnFee(t *testing.T) {
	cfg := rules.Default()
	cfg.Display.MinScore = 10

	products := []catalog.Product{
		{
			ID: "charges-fee", Name: "Charges Fee", Kind: catalog.KindCard,
			MatchFactors: map[string][]string{"payment_behavior": {"full"}},
			Card:         &catalog.CardEconomics{MonthlyFee: 30_000},
		},
		{
			ID: "fee-free", Name: "Fee Free", Kind: catalog.KindCard,
			MatchFactors: map[string][]string{
				"payment_behavior": {"full"},
				"fee_sensitivity":  {"no_fee"},
			},
			Card: &catalog.CardEconomics{MonthlyFee: 0},
		},
	}
	e := newTestEngine(products, cfg)

	rs := e.Match(AnswerSet{"payment_behavior": "full", "fee_sensitivity": "no_fee"})
	if rs.TopMatch == nil || rs.TopMatch.ID != "fee-free" {
		t.Fatalf("expected fee-free card to win, got %+v", rs.TopMatch)
	}
	if len(rs.TopMatch.WhyWins) == 0 {
		t.Fatal("winner has no justification")
	}
	foundFee := false
	for _, w := range rs.TopMatch.WhyWins {
		if strings.Contains(strings.ToLower(w), "fee") {
			foundFee = true
		}
	}
	if !foundFee {
		t.Errorf("winner reasons lack a fee differentiator: %v", rs.TopMatch.WhyWins)
	}
}

func TestOmittedIncomeIsNeutral(t *testing.T) {
	cfg := rules.Default()
	cfg.PenaltyRules = []rules.Rule{
		{Label: "Income likely below requirement", Points: -15,
			When: rules.Condition{IncomeCheck: true}},
	}
	e := newTestEngine(fixtureCatalog(), cfg)

	rs := e.Match(AnswerSet{
		"payment_behavior":   "full",
		"bank_relationships": []string{"banco_central"},
	})
	if len(rs.AllResults) != len(fixtureCatalog()) {
		t.Fatalf("expected all %d products eligible, got %d", len(fixtureCatalog()), len(rs.AllResults))
	}
	for _, sp := range rs.AllResults {
		for _, r := range sp.MatchReasons {
			if r.Kind == ReasonPenalty {
				t.Errorf("product %s got income penalty %q without an income answer", sp.ID, r.Text)
			}
		}
	}
}

func TestWholeCatalogFallback(t *testing.T) {
	products := fixtureCatalog()
	for i := range products {
		products[i].Requirements.RequiredPartner = "payroll_bank"
	}
	e := newTestEngine(products, nil)

	rs := e.Match(AnswerSet{"payment_behavior": "full"})
	if len(rs.AllResults) != len(products) {
		t.Fatalf("fallback should score the whole catalog: got %d of %d",
			len(rs.AllResults), len(products))
	}
	if rs.TopMatch == nil {
		t.Fatal("fallback must still produce a top match")
	}
	for _, sp := range rs.AllResults {
		if !sp.Fallback {
			t.Errorf("product %s missing fallback flag", sp.ID)
		}
		if len(sp.MatchReasons) == 0 || sp.MatchReasons[0].Text != fallbackDisclosure {
			t.Errorf("product %s reasons do not lead with the fallback disclosure: %v",
				sp.ID, sp.MatchReasons)
		}
		if sp.Score < rules.Default().Scoring.FallbackFloor {
			t.Errorf("product %s fallback score %v below floor", sp.ID, sp.Score)
		}
	}
}

func TestStableTieOrder(t *testing.T) {
	twin := func(id string) catalog.Product {
		return catalog.Product{
			ID: id, Name: id, Kind: catalog.KindCard,
			MatchFactors: map[string][]string{"payment_behavior": {"full"}},
			Card:         &catalog.CardEconomics{MonthlyFee: 0},
		}
	}
	e := newTestEngine([]catalog.Product{twin("first"), twin("second"), twin("third")}, nil)

	rs := e.Match(AnswerSet{"payment_behavior": "full"})
	want := []string{"first", "second", "third"}
	for i, sp := range rs.AllResults {
		if sp.ID != want[i] {
			t.Fatalf("tie order not stable: got %s at rank %d, want %s", sp.ID, i, want[i])
		}
	}
}

func TestObserverSeesPipeline(t *testing.T) {
	var events []Event
	e := newTestEngine(fixtureCatalog(), nil).WithObserver(func(ev Event) {
		events = append(events, ev)
	})

	e.Match(AnswerSet{"payment_behavior": "full"})

	var sawFilter, sawRanked bool
	for _, ev := range events {
		switch ev.Type {
		case EventFilterApplied:
			sawFilter = true
			if ev.Total != len(fixtureCatalog()) {
				t.Errorf("filter event total = %d, want %d", ev.Total, len(fixtureCatalog()))
			}
		case EventRanked:
			sawRanked = true
			if ev.ProductID == "" {
				t.Error("ranked event missing product id")
			}
		}
	}
	if !sawFilter || !sawRanked {
		t.Errorf("missing pipeline events: filter=%v ranked=%v", sawFilter, sawRanked)
	}
}

func TestEmptyCatalog(t *testing.T) {
	e := newTestEngine(nil, nil)
	rs := e.Match(AnswerSet{"payment_behavior": "full"})
	if rs.TopMatch != nil || len(rs.AllResults) != 0 {
		t.Fatalf("empty catalog should yield empty results, got %+v", rs)
	}
}

func TestAlternativesGetPitch(t *testing.T) {
	cfg := rules.Default()
	cfg.Display.MinScore = 10
	e := newTestEngine(fixtureCatalog(), cfg)

	rs := e.Match(AnswerSet{
		"payment_behavior":   "full",
		"fee_sensitivity":    "no_fee",
		"travel_freq":        "frequent",
		"bank_relationships": []string{"banco_central"},
	})
	if len(rs.Alternatives) == 0 {
		t.Fatal("expected at least one alternative")
	}
	for _, alt := range rs.Alternatives {
		if alt.WhyConsider == "" {
			t.Errorf("alternative %s has no pitch", alt.ID)
		}
	}
}
