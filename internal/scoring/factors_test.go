package scoring

import (
	"testing"

	"github.com/banqueando/matchd/internal/catalog"
	"github.com/banqueando/matchd/internal/rules"
)

func TestMatchStrength(t *testing.T) {
	tests := []struct {
		name     string
		answers  AnswerSet
		accepted []string
		want     float64
	}{
		{
			name:     "exact scalar match",
			answers:  AnswerSet{"payment_behavior": "full"},
			accepted: []string{"full"},
			want:     1,
		},
		{
			name:     "scalar mismatch",
			answers:  AnswerSet{"payment_behavior": "installments"},
			accepted: []string{"full"},
			want:     0,
		},
		{
			name:     "missing answer",
			answers:  AnswerSet{},
			accepted: []string{"full"},
			want:     0,
		},
		{
			name:     "skipped answer",
			answers:  AnswerSet{"payment_behavior": "skip"},
			accepted: []string{"full"},
			want:     0,
		},
		{
			name:     "half of selections covered",
			answers:  AnswerSet{"interests": []string{"travel", "gaming"}},
			accepted: []string{"travel", "dining", "cashback"},
			want:     0.5,
		},
		{
			name:     "all selections covered",
			answers:  AnswerSet{"interests": []string{"travel", "dining"}},
			accepted: []string{"travel", "dining", "cashback"},
			want:     1,
		},
		{
			name:     "zero overlap list",
			answers:  AnswerSet{"interests": []string{"gaming", "crypto"}},
			accepted: []string{"travel", "dining"},
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factor := "payment_behavior"
			if _, ok := tt.answers["interests"]; ok {
				factor = "interests"
			}
			got := matchStrength(tt.answers, factor, tt.accepted)
			if got != tt.want {
				t.Errorf("matchStrength = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScoreFactorsProportionalCredit(t *testing.T) {
	cfg := rules.Default()
	e := newTestEngine(nil, cfg)

	p := &catalog.Product{
		ID:   "p",
		Kind: catalog.KindCard,
		MatchFactors: map[string][]string{
			"interests": {"travel", "dining", "cashback"},
		},
		Card: &catalog.CardEconomics{},
	}

	// Half of the user's two selections are covered, so points are
	// exact_match_points * weight(interests) * 0.5 / 10.
	pts, _ := e.scoreFactors(p, AnswerSet{"interests": []string{"travel", "gaming"}})
	want := cfg.Scoring.ExactMatchPoints * cfg.Weight("interests") * 0.5 / factorNormalization
	if pts != want {
		t.Errorf("points = %v, want %v", pts, want)
	}
}

func TestScoreFactorsWeakReasonSuppressed(t *testing.T) {
	cfg := rules.Default()
	cfg.Weights["values"] = 2 // 10 * 2 * 1 / 10 = 2 points, below threshold 3
	e := newTestEngine(nil, cfg)

	p := &catalog.Product{
		ID:   "p",
		Kind: catalog.KindCard,
		MatchFactors: map[string][]string{
			"values": {"sustainability"},
		},
		Card: &catalog.CardEconomics{},
	}

	pts, reasons := e.scoreFactors(p, AnswerSet{"values": "sustainability"})
	if pts != 2 {
		t.Fatalf("points = %v, want 2", pts)
	}
	if len(reasons) != 0 {
		t.Errorf("weak match should not produce a reason, got %v", reasons)
	}
}

func TestScoreFactorsUnknownFactorUsesDefaultWeight(t *testing.T) {
	cfg := rules.Default()
	e := newTestEngine(nil, cfg)

	p := &catalog.Product{
		ID:   "p",
		Kind: catalog.KindCard,
		MatchFactors: map[string][]string{
			"pet_ownership": {"dog"},
		},
		Card: &catalog.CardEconomics{},
	}

	pts, _ := e.scoreFactors(p, AnswerSet{"pet_ownership": "dog"})
	want := cfg.Scoring.ExactMatchPoints * cfg.Scoring.DefaultWeight / factorNormalization
	if pts != want {
		t.Errorf("points = %v, want default-weight %v", pts, want)
	}
}
