// Package synthesis combines operational metrics and financial ratios
// into a weighted 0-100 score, a grade band, a deterministic concern
// list and the final narrative.
package synthesis

import (
	"fmt"
	"strconv"

	"github.com/vendorlens/vendorlens/constants"
	"github.com/vendorlens/vendorlens/internal/entity"
)

// Score computes the weighted overall score. Unavailable metrics
// contribute zero points; the score itself is always defined.
func Score(metrics entity.OperationalMetrics, ratios entity.FinancialRatios) entity.ScoreResult {
	op := 0.0
	if otd, ok := metrics.OnTimeDeliveryRate.Value(); ok {
		op += otd / 100 * 25
	}
	if ipr, ok := metrics.InvoicePaidRate.Value(); ok {
		op += ipr / 100 * 25
	}

	fin := 0.0
	if cr, ok := ratios.CurrentRatio.Value(); ok {
		switch {
		case cr >= 1.5:
			fin += 15
		case cr >= 1.0:
			fin += 10
		default:
			fin += 5
		}
	}
	if nm, ok := ratios.NetMargin.Value(); ok {
		switch {
		case nm >= 15:
			fin += 15
		case nm >= 5:
			fin += 10
		case nm > 0:
			fin += 5
		}
	}
	if de, ok := ratios.DebtToEquity.Value(); ok {
		switch {
		case de <= 1.0:
			fin += 20
		case de <= 2.0:
			fin += 10
		}
	}

	total := entity.Round1(op + fin)
	return entity.ScoreResult{
		Score: total,
		Grade: constants.GradeForScore(total),
		Breakdown: entity.ScoreBreakdown{
			OperationalScore: entity.Round1(op),
			FinancialScore:   entity.Round1(fin),
		},
	}
}

// Concern thresholds. Independent of the score bands.
const (
	concernOnTimeBelow       = 70
	concernPaidRateBelow     = 80
	concernCurrentRatioBelow = 1.0
	concernLeverageAbove     = 2.5
)

// Concerns lists red flags for lenders, one templated sentence per
// triggered threshold, embedding the literal metric value.
func Concerns(metrics entity.OperationalMetrics, ratios entity.FinancialRatios) []string {
	var concerns []string

	if otd, ok := metrics.OnTimeDeliveryRate.Value(); ok && otd < concernOnTimeBelow {
		concerns = append(concerns, fmt.Sprintf(
			"Low On-Time Delivery Rate (%s%%). Risk of supply chain disruption.", num(otd)))
	}
	if ipr, ok := metrics.InvoicePaidRate.Value(); ok && ipr < concernPaidRateBelow {
		concerns = append(concerns, fmt.Sprintf(
			"Low Invoice Paid Rate (%s%%). Potential cash flow or dispute issues.", num(ipr)))
	}
	if cr, ok := ratios.CurrentRatio.Value(); ok && cr < concernCurrentRatioBelow {
		concerns = append(concerns, fmt.Sprintf(
			"Current Ratio is low (%s). Liquidity risk.", num(cr)))
	}
	if de, ok := ratios.DebtToEquity.Value(); ok && de > concernLeverageAbove {
		concerns = append(concerns, fmt.Sprintf(
			"High Leverage (Debt/Equity: %s). Solvency risk.", num(de)))
	}
	if nm, ok := ratios.NetMargin.Value(); ok && nm < 0 {
		concerns = append(concerns, fmt.Sprintf(
			"Negative Net Margin (%s%%). Company is operating at a loss.", num(nm)))
	}

	return concerns
}

// Rationale writes the deterministic grade justification used when the
// narrative capability is unavailable.
func Rationale(grade constants.Grade, score float64, concerns []string) string {
	text := fmt.Sprintf("Supplier is rated as %s (Score: %s/100). ", grade, num(score))

	switch grade {
	case constants.GradeGreat:
		text += "Demonstrates strong operational performance and financial health. "
	case constants.GradeGood:
		text += "Solid performance with minor areas for improvement. "
	case constants.GradeFair:
		text += "Performance is average. Several risks identified. "
	default:
		text += "Significant operational or financial risks detected. "
	}

	if len(concerns) > 0 {
		top := concerns
		if len(top) > 2 {
			top = top[:2]
		}
		text += "Key concerns include: " + top[0]
		for _, c := range top[1:] {
			text += "; " + c
		}
		text += "."
	}
	return text
}

// ResolveNarrative applies the fallback rule: when the collaborator's
// risks are empty or carry the failure sentinel, the deterministic
// concern list replaces them verbatim, and a blank rationale is
// replaced by the deterministic one. A lender report must never show
// empty risks while deterministic concerns exist.
func ResolveNarrative(n entity.Narrative, concerns []string, result entity.ScoreResult) entity.Narrative {
	if n.RisksFailed() {
		n.Risks = concerns
	}
	if n.Rationale == "" {
		n.Rationale = Rationale(result.Grade, result.Score, concerns)
	}
	if n.Strengths == nil {
		n.Strengths = []string{}
	}
	if n.Risks == nil {
		n.Risks = []string{}
	}
	return n
}

// num renders a metric value without trailing zeros, the way reports
// embed it in sentences.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
