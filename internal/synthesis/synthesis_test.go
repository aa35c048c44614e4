package synthesis

import (
	"reflect"
	"strings"
	"testing"

	"github.com/vendorlens/vendorlens/constants"
	"github.com/vendorlens/vendorlens/internal/entity"
)

func metrics(otd, ipr float64) entity.OperationalMetrics {
	return entity.OperationalMetrics{
		OnTimeDeliveryRate: entity.Available(otd),
		InvoicePaidRate:    entity.Available(ipr),
	}
}

func ratios(cr, nm, de float64) entity.FinancialRatios {
	return entity.FinancialRatios{
		CurrentRatio: entity.Available(cr),
		NetMargin:    entity.Available(nm),
		DebtToEquity: entity.Available(de),
	}
}

func noMetrics() entity.OperationalMetrics {
	return entity.OperationalMetrics{
		OnTimeDeliveryRate: entity.Unavailable("Missing dates"),
		InvoicePaidRate:    entity.Unavailable("Missing status"),
	}
}

func noRatios() entity.FinancialRatios {
	return entity.FinancialRatios{
		CurrentRatio: entity.Unavailable(""),
		QuickRatio:   entity.Unavailable(""),
		NetMargin:    entity.Unavailable(""),
		DebtToEquity: entity.Unavailable(""),
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name    string
		metrics entity.OperationalMetrics
		ratios  entity.FinancialRatios
		score   float64
		grade   constants.Grade
		op      float64
		fin     float64
	}{
		{
			name:    "perfect inputs",
			metrics: metrics(100, 100),
			ratios:  ratios(2.0, 20, 0.5),
			score:   100,
			grade:   constants.GradeGreat,
			op:      50,
			fin:     50,
		},
		{
			name:    "everything unavailable",
			metrics: noMetrics(),
			ratios:  noRatios(),
			score:   0,
			grade:   constants.GradePoor,
			op:      0,
			fin:     0,
		},
		{
			name:    "middling supplier",
			metrics: metrics(80, 90),
			ratios:  ratios(1.2, 8, 1.5),
			score:   72.5,
			grade:   constants.GradeGood,
			op:      42.5,
			fin:     30,
		},
		{
			name:    "loss making with heavy leverage",
			metrics: metrics(60, 50),
			ratios:  ratios(0.8, -4, 3.0),
			score:   32.5,
			grade:   constants.GradePoor,
			op:      27.5,
			fin:     5,
		},
		{
			name:    "boundary ratios",
			metrics: metrics(0, 0),
			ratios:  ratios(1.0, 5, 2.0),
			score:   30,
			grade:   constants.GradePoor,
			op:      0,
			fin:     30,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Score(tc.metrics, tc.ratios)
			if got.Score != tc.score {
				t.Errorf("score = %v, want %v", got.Score, tc.score)
			}
			if got.Grade != tc.grade {
				t.Errorf("grade = %q, want %q", got.Grade, tc.grade)
			}
			if got.Breakdown.OperationalScore != tc.op {
				t.Errorf("operational = %v, want %v", got.Breakdown.OperationalScore, tc.op)
			}
			if got.Breakdown.FinancialScore != tc.fin {
				t.Errorf("financial = %v, want %v", got.Breakdown.FinancialScore, tc.fin)
			}
		})
	}
}

func TestConcerns(t *testing.T) {
	t.Run("clean supplier has none", func(t *testing.T) {
		got := Concerns(metrics(95, 98), ratios(1.8, 12, 0.9))
		if len(got) != 0 {
			t.Fatalf("concerns = %v, want none", got)
		}
	})

	t.Run("unavailable inputs trigger nothing", func(t *testing.T) {
		got := Concerns(noMetrics(), noRatios())
		if len(got) != 0 {
			t.Fatalf("concerns = %v, want none", got)
		}
	})

	t.Run("each threshold fires with the literal value", func(t *testing.T) {
		got := Concerns(metrics(60, 70), ratios(0.5, -3, 3.2))
		want := []string{
			"Low On-Time Delivery Rate (60%). Risk of supply chain disruption.",
			"Low Invoice Paid Rate (70%). Potential cash flow or dispute issues.",
			"Current Ratio is low (0.5). Liquidity risk.",
			"High Leverage (Debt/Equity: 3.2). Solvency risk.",
			"Negative Net Margin (-3%). Company is operating at a loss.",
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("concerns = %v, want %v", got, want)
		}
	})

	t.Run("boundary values do not fire", func(t *testing.T) {
		got := Concerns(metrics(70, 80), ratios(1.0, 0, 2.5))
		if len(got) != 0 {
			t.Fatalf("concerns = %v, want none", got)
		}
	})
}

func TestRationale(t *testing.T) {
	t.Run("poor grade with concerns keeps top two", func(t *testing.T) {
		concerns := []string{"first concern", "second concern", "third concern"}
		got := Rationale(constants.GradePoor, 32.5, concerns)
		if !strings.HasPrefix(got, "Supplier is rated as Poor (Score: 32.5/100). ") {
			t.Errorf("unexpected prefix: %q", got)
		}
		if !strings.Contains(got, "Key concerns include: first concern; second concern.") {
			t.Errorf("missing concern list: %q", got)
		}
		if strings.Contains(got, "third concern") {
			t.Errorf("third concern should be dropped: %q", got)
		}
	})

	t.Run("great grade without concerns", func(t *testing.T) {
		got := Rationale(constants.GradeGreat, 92, nil)
		if !strings.Contains(got, "strong operational performance") {
			t.Errorf("rationale = %q", got)
		}
		if strings.Contains(got, "Key concerns") {
			t.Errorf("no concern sentence expected: %q", got)
		}
	})
}

func TestResolveNarrative(t *testing.T) {
	result := entity.ScoreResult{Score: 40, Grade: constants.GradePoor}
	concerns := []string{
		"Low On-Time Delivery Rate (60%). Risk of supply chain disruption.",
	}

	t.Run("sentinel risks replaced by deterministic concerns", func(t *testing.T) {
		n := entity.Narrative{
			Rationale: "",
			Risks:     []string{entity.NarrativeFailureSentinel},
		}
		got := ResolveNarrative(n, concerns, result)
		if !reflect.DeepEqual(got.Risks, concerns) {
			t.Errorf("risks = %v, want %v", got.Risks, concerns)
		}
		if !strings.Contains(got.Rationale, "Supplier is rated as Poor") {
			t.Errorf("rationale not filled: %q", got.Rationale)
		}
		if !strings.Contains(got.Rationale, "On-Time Delivery") {
			t.Errorf("rationale should mention the concern: %q", got.Rationale)
		}
	})

	t.Run("empty risks replaced", func(t *testing.T) {
		got := ResolveNarrative(entity.Narrative{}, concerns, result)
		if !reflect.DeepEqual(got.Risks, concerns) {
			t.Errorf("risks = %v, want %v", got.Risks, concerns)
		}
	})

	t.Run("healthy narrative passes through", func(t *testing.T) {
		n := entity.Narrative{
			Rationale: "Model rationale.",
			Risks:     []string{"model risk"},
			Strengths: []string{"model strength"},
		}
		got := ResolveNarrative(n, concerns, result)
		if !reflect.DeepEqual(got, n) {
			t.Errorf("narrative changed: %+v", got)
		}
	})
}
