// Package export renders an evaluation report as an XLSX workbook.
package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/vendorlens/vendorlens/internal/entity"
)

type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// EvaluationXLSX returns the report as XLSX bytes: a summary block,
// the metric and ratio tables, then the concern and strength lists.
func (s *Service) EvaluationXLSX(ev entity.Evaluation) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Evaluation"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if index, _ := f.GetSheetIndex("Sheet1"); index != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	row := 1
	write := func(col int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
	pair := func(label string, v any) {
		write(1, label)
		write(2, v)
		row++
	}
	blank := func() { row++ }

	pair("Supplier Grade", string(ev.Grade))
	pair("Overall Score", ev.Score)
	pair("Rationale", ev.Rationale)
	blank()

	pair("Operational Metrics", "")
	pair("On-Time Delivery Rate", ev.Operational.OnTimeDeliveryRate.String())
	pair("Invoice Paid Rate", ev.Operational.InvoicePaidRate.String())
	pair("Commentary", ev.Operational.Commentary)
	blank()

	pair("Financial Ratios", "")
	pair("Current Ratio", ev.Ratios.CurrentRatio.String())
	pair("Quick Ratio", ev.Ratios.QuickRatio.String())
	pair("Net Margin", ev.Ratios.NetMargin.String())
	pair("Debt to Equity", ev.Ratios.DebtToEquity.String())
	blank()

	pair("Score Breakdown", "")
	pair("Operational Score", ev.Breakdown.OperationalScore)
	pair("Financial Score", ev.Breakdown.FinancialScore)
	blank()

	pair("Lender Concerns", "")
	for _, c := range ev.LenderConcerns {
		pair("", c)
	}
	blank()

	pair("Strengths", "")
	for _, st := range ev.Strengths {
		pair("", st)
	}

	_ = f.SetColWidth(sheet, "A", "A", 24)
	_ = f.SetColWidth(sheet, "B", "B", 90)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"grade", ev.Grade,
		"score", ev.Score,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
