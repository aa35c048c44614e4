// Command evaluate runs one evaluation batch over local files and
// prints the JSON report.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vendorlens/vendorlens/internal/common"
	"github.com/vendorlens/vendorlens/internal/extract"
	"github.com/vendorlens/vendorlens/internal/llm/openai"
	"github.com/vendorlens/vendorlens/internal/pipeline"
	"github.com/vendorlens/vendorlens/internal/scorecard"
)

func main() {
	var (
		poList  = flag.String("po", "", "comma-separated purchase order files (.xlsx/.csv)")
		invList = flag.String("inv", "", "comma-separated invoice files (.xlsx/.csv)")
		finList = flag.String("fin", "", "comma-separated financial statements (.pdf)")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	if *poList == "" || *invList == "" {
		fmt.Fprintln(os.Stderr, "usage: evaluate -po po.xlsx[,..] -inv inv.xlsx[,..] [-fin statement.pdf[,..]]")
		os.Exit(2)
	}

	poFiles, err := loadFiles(*poList)
	if err != nil {
		fatal(logger, "load po files", err)
	}
	invFiles, err := loadFiles(*invList)
	if err != nil {
		fatal(logger, "load invoice files", err)
	}
	finFiles, err := loadFiles(*finList)
	if err != nil {
		fatal(logger, "load financial files", err)
	}

	cfg := common.LoadConfig()
	gen := openai.NewClient(openai.Config{
		APIKey:         cfg.LLM.APIKey,
		BaseURL:        cfg.LLM.BaseURL,
		ExtractModel:   cfg.LLM.ExtractModel,
		NarrativeModel: cfg.LLM.NarrativeModel,
		Temperature:    cfg.LLM.Temperature,
		Timeout:        cfg.LLM.Timeout,
	}, logger)

	figures := extract.NewFigureParser(extract.PDFExtractor{}, gen, logger, cfg.Extract.MaxLLMChars)
	evaluator := pipeline.NewEvaluator(scorecard.NewEngine(logger), figures, gen, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	out, err := evaluator.Evaluate(ctx, poFiles, invFiles, finFiles)
	if err != nil {
		fatal(logger, "evaluate", err)
	}
	for _, fe := range out.FileErrors {
		logger.Warn("file skipped", "file", fe.File, "error", fe.Error)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out.Report); err != nil {
		fatal(logger, "encode report", err)
	}
}

func loadFiles(list string) ([]pipeline.File, error) {
	if list == "" {
		return nil, nil
	}
	var files []pipeline.File
	for _, path := range strings.Split(list, ",") {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		files = append(files, pipeline.File{Name: filepath.Base(path), Content: content})
	}
	return files, nil
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "error", err)
	os.Exit(1)
}
