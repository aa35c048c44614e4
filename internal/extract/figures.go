package extract

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/vendorlens/vendorlens/constants"
	"github.com/vendorlens/vendorlens/internal/common"
	"github.com/vendorlens/vendorlens/internal/entity"
	"github.com/vendorlens/vendorlens/internal/llm"
)

// figureKeywords lists, per figure, the statement-line labels to try in
// order. The first keyword whose match parses wins.
var figureKeywords = []struct {
	name     string
	keywords []string
}{
	{constants.FigureRevenue, []string{"Revenue", "Sales", "Total Revenue", "Net Sales"}},
	{constants.FigureNetIncome, []string{"Net Income", "Net Profit", "Profit for the year"}},
	{constants.FigureTotalAssets, []string{"Total Assets"}},
	{constants.FigureTotalLiabilities, []string{"Total Liabilities"}},
	{constants.FigureCurrentAssets, []string{"Total Current Assets", "Current Assets"}},
	{constants.FigureCurrentLiabilities, []string{"Total Current Liabilities", "Current Liabilities"}},
	{constants.FigureInventory, []string{"Inventory", "Inventories"}},
	{constants.FigureEquity, []string{"Total Equity", "Shareholders' Equity", "Total Shareholders' Equity"}},
}

// keyword followed non-greedily by a number-like token in the same line
var figureRegexes = buildFigureRegexes()

func buildFigureRegexes() map[string][]*regexp.Regexp {
	out := make(map[string][]*regexp.Regexp, len(figureKeywords))
	for _, fk := range figureKeywords {
		res := make([]*regexp.Regexp, 0, len(fk.keywords))
		for _, kw := range fk.keywords {
			res = append(res, regexp.MustCompile(`(?i)`+regexp.QuoteMeta(kw)+`.*?([\d,]+(?:\.\d+)?)`))
		}
		out[fk.name] = res
	}
	return out
}

// ScanFigures runs the heuristic keyword pass over statement text and
// returns every figure it could read.
func ScanFigures(text string) entity.Figures {
	figures := make(entity.Figures)
	for _, fk := range figureKeywords {
		for _, re := range figureRegexes[fk.name] {
			m := re.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
			if err != nil {
				continue
			}
			figures[fk.name] = v
			break
		}
	}
	return figures
}

// FigureParser decodes a financial-statement document into figures:
// text extraction, heuristic scan, then the generative fallback for
// critical figures the heuristics missed.
type FigureParser struct {
	Text        TextExtractor
	Gen         llm.FigureExtractor // optional
	Logger      *slog.Logger
	MaxLLMChars int
}

func NewFigureParser(text TextExtractor, gen llm.FigureExtractor, logger *slog.Logger, maxLLMChars int) *FigureParser {
	if logger == nil {
		logger = slog.Default()
	}
	if maxLLMChars <= 0 {
		maxLLMChars = 4000
	}
	return &FigureParser{Text: text, Gen: gen, Logger: logger, MaxLLMChars: maxLLMChars}
}

// Parse extracts figures from one statement document. Only .pdf is
// accepted. Generative results never overwrite heuristic hits, and a
// failed or absent generative capability degrades to heuristics only.
func (p *FigureParser) Parse(ctx context.Context, content []byte, filename string) (entity.Figures, error) {
	ext := constants.NormalizeExt(filepath.Ext(filename))
	if _, ok := constants.StatementExtensions[ext]; !ok {
		return nil, fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, filename)
	}

	text, err := p.Text.ExtractText(content)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}

	figures := ScanFigures(text)
	missing := figures.Missing(constants.CriticalFigures)
	if len(missing) == 0 || p.Gen == nil {
		return figures, nil
	}

	p.Logger.Info("figures.fallback.start", "file", filename, "missing", missing)
	extra, err := p.Gen.ExtractFigures(ctx, truncate(text, p.MaxLLMChars))
	if err != nil {
		p.Logger.Warn("figures.fallback.failed", "file", filename, "error", err)
		return figures, nil
	}
	merged := 0
	for name, v := range extra {
		if _, ok := figures[name]; ok {
			continue
		}
		figures[name] = v
		merged++
	}
	p.Logger.Info("figures.fallback.ok", "file", filename, "merged", merged)
	return figures, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
