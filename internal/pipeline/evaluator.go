// Package pipeline orchestrates a single evaluation batch: parse the
// uploaded documents, compute metrics and ratios, synthesize the score
// and resolve the narrative. One synchronous pass per request.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/vendorlens/vendorlens/internal/common"
	"github.com/vendorlens/vendorlens/internal/entity"
	"github.com/vendorlens/vendorlens/internal/extract"
	"github.com/vendorlens/vendorlens/internal/ingest"
	"github.com/vendorlens/vendorlens/internal/llm"
	"github.com/vendorlens/vendorlens/internal/ratios"
	"github.com/vendorlens/vendorlens/internal/scorecard"
	"github.com/vendorlens/vendorlens/internal/synthesis"
)

// File is an uploaded document held in memory.
type File struct {
	Name    string
	Content []byte
}

// FileError records a per-file failure. One bad file never fails the
// batch; it is reported alongside the results.
type FileError struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// Evaluator runs evaluation batches.
type Evaluator struct {
	scorecard *scorecard.Engine
	figures   *extract.FigureParser
	analyst   llm.NarrativeAnalyst
	log       *slog.Logger
}

func NewEvaluator(sc *scorecard.Engine, fp *extract.FigureParser, analyst llm.NarrativeAnalyst, logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Evaluator{scorecard: sc, figures: fp, analyst: analyst, log: logger}
}

// ScorecardResult is the operational-metrics batch output.
type ScorecardResult struct {
	Metrics        entity.OperationalMetrics
	PORecords      int
	InvoiceRecords int
	FileErrors     []FileError
}

// Scorecard parses the tabular uploads and computes operational
// metrics. Each side of the batch needs at least one parseable file;
// otherwise the batch fails with ErrNoValidFiles.
func (e *Evaluator) Scorecard(poFiles, invFiles []File) (ScorecardResult, error) {
	var res ScorecardResult

	var pos []entity.PORecord
	poOK := 0
	for _, f := range poFiles {
		records, err := ingest.ParsePOFile(f.Content, f.Name)
		if err != nil {
			e.log.Warn("pipeline.po.parse_failed", "file", f.Name, "error", err)
			res.FileErrors = append(res.FileErrors, FileError{File: f.Name, Error: err.Error()})
			continue
		}
		poOK++
		pos = append(pos, records...)
	}

	var invs []entity.InvoiceRecord
	invOK := 0
	for _, f := range invFiles {
		records, err := ingest.ParseInvoiceFile(f.Content, f.Name)
		if err != nil {
			e.log.Warn("pipeline.invoice.parse_failed", "file", f.Name, "error", err)
			res.FileErrors = append(res.FileErrors, FileError{File: f.Name, Error: err.Error()})
			continue
		}
		invOK++
		invs = append(invs, records...)
	}

	if poOK == 0 || invOK == 0 {
		return res, common.ErrNoValidFiles
	}

	res.Metrics = e.scorecard.Compute(pos, invs)
	res.PORecords = len(pos)
	res.InvoiceRecords = len(invs)
	return res, nil
}

// FinancialResult is one statement's extraction outcome. Error is set
// when the file could not be processed; Figures and Ratios are then
// zero-valued.
type FinancialResult struct {
	File    string
	Figures entity.Figures
	Ratios  entity.FinancialRatios
	Error   string
}

// Financials extracts figures and ratios from each uploaded statement
// independently.
func (e *Evaluator) Financials(ctx context.Context, files []File) ([]FinancialResult, error) {
	if len(files) == 0 {
		return nil, common.ErrNoValidFiles
	}

	results := make([]FinancialResult, 0, len(files))
	for _, f := range files {
		r := FinancialResult{File: f.Name}
		figures, err := e.figures.Parse(ctx, f.Content, f.Name)
		if err != nil {
			e.log.Warn("pipeline.financials.parse_failed", "file", f.Name, "error", err)
			r.Error = err.Error()
		} else {
			r.Figures = figures
			r.Ratios = ratios.Compute(figures)
		}
		results = append(results, r)
	}
	return results, nil
}

// EvaluationOutcome is the full-report batch output.
type EvaluationOutcome struct {
	Report          entity.Evaluation
	PORecords       int
	InvoiceRecords  int
	FinancialSource string
	FileErrors      []FileError
}

// Evaluate runs the whole pipeline. The tabular sides follow the
// scorecard rules; among the financial uploads the first statement that
// parses wins and the rest are skipped. A missing or unusable narrative
// degrades to the deterministic rationale and concern list.
func (e *Evaluator) Evaluate(ctx context.Context, poFiles, invFiles, finFiles []File) (EvaluationOutcome, error) {
	sc, err := e.Scorecard(poFiles, invFiles)
	if err != nil {
		return EvaluationOutcome{FileErrors: sc.FileErrors}, err
	}

	out := EvaluationOutcome{
		PORecords:      sc.PORecords,
		InvoiceRecords: sc.InvoiceRecords,
		FileErrors:     sc.FileErrors,
	}

	figures := entity.Figures{}
	for _, f := range finFiles {
		got, ferr := e.figures.Parse(ctx, f.Content, f.Name)
		if ferr != nil {
			e.log.Warn("pipeline.financials.parse_failed", "file", f.Name, "error", ferr)
			out.FileErrors = append(out.FileErrors, FileError{File: f.Name, Error: ferr.Error()})
			continue
		}
		figures = got
		out.FinancialSource = f.Name
		break
	}

	finRatios := ratios.Compute(figures)
	result := synthesis.Score(sc.Metrics, finRatios)
	concerns := synthesis.Concerns(sc.Metrics, finRatios)

	narrative := e.narrative(ctx, sc.Metrics, finRatios, result)
	narrative = synthesis.ResolveNarrative(narrative, concerns, result)

	out.Report = entity.Evaluation{
		Grade:          result.Grade,
		Score:          result.Score,
		Rationale:      narrative.Rationale,
		LenderConcerns: narrative.Risks,
		Strengths:      narrative.Strengths,
		Operational:    sc.Metrics,
		Ratios:         finRatios,
		Breakdown:      result.Breakdown,
	}

	e.log.Info("pipeline.evaluate.done",
		"grade", result.Grade,
		"score", result.Score,
		"po_records", out.PORecords,
		"inv_records", out.InvoiceRecords,
		"financial_source", out.FinancialSource)
	return out, nil
}

func (e *Evaluator) narrative(ctx context.Context, metrics entity.OperationalMetrics, finRatios entity.FinancialRatios, result entity.ScoreResult) entity.Narrative {
	if e.analyst == nil {
		return entity.Narrative{}
	}
	n, err := e.analyst.Analyze(ctx, llm.NarrativeRequest{
		Metrics: metrics,
		Ratios:  finRatios,
		Score:   result.Score,
		Grade:   result.Grade,
	})
	if err != nil {
		e.log.Warn("pipeline.narrative.failed", "error", err)
		return entity.Narrative{Risks: []string{entity.NarrativeFailureSentinel}}
	}
	return n
}
