package llm

import (
	"context"

	"github.com/vendorlens/vendorlens/constants"
	"github.com/vendorlens/vendorlens/internal/entity"
)

// FigureExtractor is the generative extraction capability: given raw
// statement text, return whichever target figures the model could read.
// Implementations may return an empty set when the capability is absent
// or the reply was unusable; callers treat that as "no additional
// data", never as a batch failure.
type FigureExtractor interface {
	ExtractFigures(ctx context.Context, text string) (entity.Figures, error)
}

// NarrativeRequest carries everything the narrative capability needs to
// write a lender assessment.
type NarrativeRequest struct {
	Metrics entity.OperationalMetrics
	Ratios  entity.FinancialRatios
	Score   float64
	Grade   constants.Grade
}

// NarrativeAnalyst is the generative narrative capability.
type NarrativeAnalyst interface {
	Analyze(ctx context.Context, req NarrativeRequest) (entity.Narrative, error)
}
