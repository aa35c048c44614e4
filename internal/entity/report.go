package entity

import "github.com/vendorlens/vendorlens/constants"

// OperationalMetrics is the scorecard output: delivery and payment
// performance rates plus a generated commentary sentence.
type OperationalMetrics struct {
	OnTimeDeliveryRate Metric `json:"on_time_delivery_rate"`
	InvoicePaidRate    Metric `json:"invoice_paid_rate"`
	Commentary         string `json:"commentary"`
}

// FinancialRatios is the ratio-engine output.
type FinancialRatios struct {
	CurrentRatio Metric `json:"current_ratio"`
	QuickRatio   Metric `json:"quick_ratio"`
	NetMargin    Metric `json:"net_margin"`
	DebtToEquity Metric `json:"debt_to_equity"`
}

// ScoreBreakdown splits the weighted score into its two components.
type ScoreBreakdown struct {
	OperationalScore float64 `json:"operational_score"`
	FinancialScore   float64 `json:"financial_score"`
}

// ScoreResult is the synthesized 0-100 score with its grade band.
type ScoreResult struct {
	Score     float64         `json:"score"`
	Grade     constants.Grade `json:"grade"`
	Breakdown ScoreBreakdown  `json:"breakdown"`
}

// NarrativeFailureSentinel is the risk marker a failed narrative
// carries, signaling that deterministic concerns must be substituted.
const NarrativeFailureSentinel = "LLM Error"

// Narrative is the prose assessment returned by the narrative
// collaborator, or its deterministic stand-in.
type Narrative struct {
	Rationale string   `json:"rationale"`
	Risks     []string `json:"risks"`
	Strengths []string `json:"strengths"`
}

// RisksFailed reports whether the risk list is unusable: empty, or
// carrying the failure sentinel.
func (n Narrative) RisksFailed() bool {
	if len(n.Risks) == 0 {
		return true
	}
	for _, r := range n.Risks {
		if r == NarrativeFailureSentinel {
			return true
		}
	}
	return false
}

// Evaluation is the full lender report assembled by the pipeline.
type Evaluation struct {
	Grade          constants.Grade    `json:"supplier_grade"`
	Score          float64            `json:"overall_score"`
	Rationale      string             `json:"rationale"`
	LenderConcerns []string           `json:"lender_concerns"`
	Strengths      []string           `json:"strengths"`
	Operational    OperationalMetrics `json:"operational_metrics"`
	Ratios         FinancialRatios    `json:"financial_ratios"`
	Breakdown      ScoreBreakdown     `json:"score_breakdown"`
}
