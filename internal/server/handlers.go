package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/vendorlens/vendorlens/internal/common"
	"github.com/vendorlens/vendorlens/internal/export"
	"github.com/vendorlens/vendorlens/internal/pipeline"
)

type Handler struct {
	evaluator      *pipeline.Evaluator
	export         *export.Service
	log            *slog.Logger
	maxUploadBytes int64
}

func NewHandler(evaluator *pipeline.Evaluator, exporter *export.Service, logger *slog.Logger, maxUploadBytes int64) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if maxUploadBytes <= 0 {
		maxUploadBytes = 32 << 20
	}
	return &Handler{evaluator: evaluator, export: exporter, log: logger, maxUploadBytes: maxUploadBytes}
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "service": "vendorlens"})
}

// UploadScorecard computes operational metrics from po_files and
// inv_files multipart uploads.
func (h *Handler) UploadScorecard(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}
	poFiles, err := h.formFiles(r, "po_files")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	invFiles, err := h.formFiles(r, "inv_files")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.evaluator.Scorecard(poFiles, invFiles)
	if err != nil {
		h.writeAppError(w, err)
		return
	}

	payload := map[string]any{
		"status": "success",
		"data":   res.Metrics,
		"details": map[string]any{
			"po_records":  res.PORecords,
			"inv_records": res.InvoiceRecords,
		},
	}
	if len(res.FileErrors) > 0 {
		payload["file_errors"] = res.FileErrors
	}
	writeJSON(w, http.StatusOK, payload)
}

type financialView struct {
	File    string `json:"file"`
	Figures any    `json:"figures,omitempty"`
	Ratios  any    `json:"ratios,omitempty"`
	Error   string `json:"error,omitempty"`
}

// UploadFinancials extracts figures and ratios from each uploaded
// statement, reporting per-file errors inside the result list.
func (h *Handler) UploadFinancials(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}
	files, err := h.formFiles(r, "files")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := h.evaluator.Financials(r.Context(), files)
	if err != nil {
		h.writeAppError(w, err)
		return
	}

	views := make([]financialView, 0, len(results))
	for _, res := range results {
		v := financialView{File: res.File}
		if res.Error != "" {
			v.Error = res.Error
		} else {
			v.Figures = res.Figures
			v.Ratios = res.Ratios
		}
		views = append(views, v)
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "results": views})
}

// UploadFullEvaluation runs the whole pipeline over po_files, inv_files
// and fin_files. With ?format=xlsx the report is returned as a workbook
// attachment instead of JSON.
func (h *Handler) UploadFullEvaluation(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}
	poFiles, err := h.formFiles(r, "po_files")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	invFiles, err := h.formFiles(r, "inv_files")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	finFiles, err := h.formFiles(r, "fin_files")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out, err := h.evaluator.Evaluate(r.Context(), poFiles, invFiles, finFiles)
	if err != nil {
		h.writeAppError(w, err)
		return
	}

	if strings.EqualFold(r.URL.Query().Get("format"), "xlsx") {
		raw, xerr := h.export.EvaluationXLSX(out.Report)
		if xerr != nil {
			h.log.Error("http.export_failed", "error", xerr)
			writeError(w, http.StatusInternalServerError, "failed to render report")
			return
		}
		name := "evaluation-" + time.Now().UTC().Format("20060102-150405") + ".xlsx"
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(raw)
		return
	}

	payload := map[string]any{
		"status":          "success",
		"supplier_grade":  out.Report.Grade,
		"overall_score":   out.Report.Score,
		"rationale":       out.Report.Rationale,
		"lender_concerns": out.Report.LenderConcerns,
		"strengths":       out.Report.Strengths,
		"details": map[string]any{
			"operational_metrics": out.Report.Operational,
			"financial_ratios":    out.Report.Ratios,
			"score_breakdown":     out.Report.Breakdown,
			"po_records":          out.PORecords,
			"inv_records":         out.InvoiceRecords,
			"financial_source":    out.FinancialSource,
		},
	}
	if len(out.FileErrors) > 0 {
		payload["file_errors"] = out.FileErrors
	}
	writeJSON(w, http.StatusOK, payload)
}

// formFiles reads every upload under the given multipart field into
// memory.
func (h *Handler) formFiles(r *http.Request, field string) ([]pipeline.File, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	headers := r.MultipartForm.File[field]
	files := make([]pipeline.File, 0, len(headers))
	for _, fh := range headers {
		content, err := readUpload(fh)
		if err != nil {
			return nil, errors.New("failed to read upload " + fh.Filename)
		}
		files = append(files, pipeline.File{Name: fh.Filename, Content: content})
	}
	return files, nil
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (h *Handler) writeAppError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrNoValidFiles), errors.Is(err, common.ErrUnsupportedFormat), errors.Is(err, common.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.Error("http.internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"status": "error", "error": message})
}
