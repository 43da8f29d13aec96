package scoring

import (
	"testing"

	"github.com/banqueando/matchd/internal/catalog"
)

func TestFilterEligiblePartnerRequirement(t *testing.T) {
	e := newTestEngine(fixtureCatalog(), nil)

	tests := []struct {
		name         string
		answers      AnswerSet
		wantIDs      []string
		wantFallback bool
	}{
		{
			name:    "lacking the partner relationship excludes",
			answers: AnswerSet{},
			wantIDs: []string{"aurum-free", "aurum-gold", "flexi-loan"},
		},
		{
			name:    "holding the partner relationship keeps the product",
			answers: AnswerSet{"bank_relationships": []string{"banco_central", "credivia"}},
			wantIDs: []string{"aurum-free", "aurum-gold", "nomina-select", "flexi-loan"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eligible, fallback := e.filterEligible(tt.answers)
			if fallback != tt.wantFallback {
				t.Fatalf("fallback = %v, want %v", fallback, tt.wantFallback)
			}
			if len(eligible) != len(tt.wantIDs) {
				t.Fatalf("eligible = %d products, want %d", len(eligible), len(tt.wantIDs))
			}
			for i, p := range eligible {
				if p.ID != tt.wantIDs[i] {
					t.Errorf("eligible[%d] = %s, want %s", i, p.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestFilterEligibleReportedHistory(t *testing.T) {
	e := newTestEngine(fixtureCatalog(), nil)

	answers := AnswerSet{
		"credit_history":     "reported",
		"bank_relationships": []string{"banco_central"},
	}
	eligible, fallback := e.filterEligible(answers)
	if fallback {
		t.Fatal("unexpected fallback")
	}
	for _, p := range eligible {
		if p.ID == "nomina-select" {
			t.Error("product with explicit accepts_reported=false must be excluded")
		}
	}
	// Products with an unstated policy stay in play.
	if len(eligible) != 3 {
		t.Errorf("eligible = %d products, want 3", len(eligible))
	}
}

func TestFilterEligibleIncomeIsSoft(t *testing.T) {
	e := newTestEngine(fixtureCatalog(), nil)

	// nomina-select requires 4,000,000 income; a low bracket alone must
	// not exclude it as long as the hard requirements are met.
	answers := AnswerSet{
		"income":             "under_1m",
		"bank_relationships": []string{"banco_central"},
	}
	eligible, _ := e.filterEligible(answers)
	found := false
	for _, p := range eligible {
		if p.ID == "nomina-select" {
			found = true
		}
	}
	if !found {
		t.Error("income must never hard-exclude a product")
	}
}

func TestIncomeEligible(t *testing.T) {
	e := newTestEngine(nil, nil)
	p := &catalog.Product{
		Requirements: catalog.Requirements{MinIncome: 4_000_000},
	}

	tests := []struct {
		name    string
		answers AnswerSet
		want    bool
	}{
		{"bracket ceiling covers minimum", AnswerSet{"income": "4m_8m"}, true},
		{"bracket ceiling below minimum", AnswerSet{"income": "1m_2m"}, false},
		{"boundary bracket passes", AnswerSet{"income": "2m_4m"}, true},
		{"no answer passes", AnswerSet{}, true},
		{"skip sentinel passes", AnswerSet{"income": "skip"}, true},
		{"unknown bracket passes", AnswerSet{"income": "millions"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.incomeEligible(p, tt.answers); got != tt.want {
				t.Errorf("incomeEligible = %v, want %v", got, tt.want)
			}
		})
	}
}
