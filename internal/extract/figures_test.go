package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/vendorlens/vendorlens/internal/common"
	"github.com/vendorlens/vendorlens/internal/entity"
)

const statementText = `Consolidated Statements of Operations
Total Revenue $ 1,250,000.50
Net Income 85,000
Balance Sheet
Total Current Assets 150,000
Total Current Liabilities 100,000
Inventories 50,000
Total Assets 900,000
Total Liabilities 400,000
Total Shareholders' Equity 500,000`

func TestScanFigures(t *testing.T) {
	figures := ScanFigures(statementText)

	want := map[string]float64{
		"revenue":             1250000.50,
		"net_income":          85000,
		"total_assets":        900000,
		"total_liabilities":   400000,
		"current_assets":      150000,
		"current_liabilities": 100000,
		"inventory":           50000,
		"equity":              500000,
	}
	for name, wantV := range want {
		got, ok := figures.Get(name)
		if !ok {
			t.Errorf("figure %q not extracted", name)
			continue
		}
		if got != wantV {
			t.Errorf("figure %q = %v, want %v", name, got, wantV)
		}
	}
}

func TestScanFigures_KeywordOrder(t *testing.T) {
	// "Revenue" is tried before "Sales"; the Sales line must not win
	// when a Revenue line exists earlier in the keyword list.
	figures := ScanFigures("Sales 999\nRevenue 1,000")
	if v, _ := figures.Get("revenue"); v != 1000 {
		t.Fatalf("revenue = %v, want 1000", v)
	}
}

func TestScanFigures_SameLineWindow(t *testing.T) {
	// the number must follow the keyword; a keyword alone on its line
	// must not capture a number from the next line
	figures := ScanFigures("Total Assets\n123,456")
	if _, ok := figures.Get("total_assets"); ok {
		t.Fatal("expected no total_assets match across lines")
	}
}

type stubText string

func (s stubText) ExtractText([]byte) (string, error) { return string(s), nil }

type stubGen struct {
	figures entity.Figures
	err     error
	gotText string
	calls   int
}

func (g *stubGen) ExtractFigures(_ context.Context, text string) (entity.Figures, error) {
	g.calls++
	g.gotText = text
	return g.figures, g.err
}

func TestFigureParser_UnsupportedExtension(t *testing.T) {
	p := NewFigureParser(stubText(""), nil, nil, 0)
	_, err := p.Parse(context.Background(), []byte("x"), "statement.txt")
	if !errors.Is(err, common.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestFigureParser_NoFallbackWhenCriticalsPresent(t *testing.T) {
	gen := &stubGen{figures: entity.Figures{"revenue": 1}}
	p := NewFigureParser(stubText(statementText), gen, nil, 0)

	figures, err := p.Parse(context.Background(), nil, "statement.pdf")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if gen.calls != 0 {
		t.Fatalf("generative extractor should not run, got %d calls", gen.calls)
	}
	if v, _ := figures.Get("revenue"); v != 1250000.50 {
		t.Fatalf("revenue = %v", v)
	}
}

func TestFigureParser_FallbackMergesOnlyUnsetFigures(t *testing.T) {
	text := "Revenue 1,000\nTotal Current Assets 300\nTotal Current Liabilities 200"
	gen := &stubGen{figures: entity.Figures{
		"revenue":           999999, // heuristic hit, must not be overwritten
		"net_income":        120,
		"total_assets":      5000,
		"total_liabilities": 2000,
	}}
	p := NewFigureParser(stubText(text), gen, nil, 0)

	figures, err := p.Parse(context.Background(), nil, "statement.pdf")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if gen.calls != 1 {
		t.Fatalf("expected one fallback call, got %d", gen.calls)
	}
	if v, _ := figures.Get("revenue"); v != 1000 {
		t.Errorf("heuristic revenue overwritten: %v", v)
	}
	if v, _ := figures.Get("net_income"); v != 120 {
		t.Errorf("net_income = %v, want 120", v)
	}
	if v, _ := figures.Get("total_assets"); v != 5000 {
		t.Errorf("total_assets = %v, want 5000", v)
	}
}

func TestFigureParser_TruncatesFallbackText(t *testing.T) {
	long := make([]byte, 10000)
	for i := range long {
		long[i] = 'a'
	}
	gen := &stubGen{figures: entity.Figures{}}
	p := NewFigureParser(stubText(long), gen, nil, 4000)

	if _, err := p.Parse(context.Background(), nil, "statement.pdf"); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(gen.gotText) != 4000 {
		t.Fatalf("fallback text length = %d, want 4000", len(gen.gotText))
	}
}

func TestFigureParser_FallbackFailureDegrades(t *testing.T) {
	gen := &stubGen{err: errors.New("capability down")}
	p := NewFigureParser(stubText("Revenue 1,000"), gen, nil, 0)

	figures, err := p.Parse(context.Background(), nil, "statement.pdf")
	if err != nil {
		t.Fatalf("fallback failure must not propagate, got %v", err)
	}
	if v, _ := figures.Get("revenue"); v != 1000 {
		t.Fatalf("heuristic figures lost: %v", figures)
	}
}
