package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vendorlens/vendorlens/constants"
	"github.com/vendorlens/vendorlens/internal/entity"
	"github.com/vendorlens/vendorlens/internal/llm"
)

// ExtractFigures implements llm.FigureExtractor using text-only
// chat/completions in JSON mode. When the capability is not configured
// it returns an empty figure set, which callers treat as "no
// additional data".
func (c *Client) ExtractFigures(ctx context.Context, text string) (entity.Figures, error) {
	if !c.Enabled() {
		c.log.Warn("llm.figures.disabled", "hint", "OPENAI_API_KEY not set; heuristic figures only")
		return entity.Figures{}, nil
	}

	rid := uuid.New().String()
	start := time.Now()
	c.log.Info("llm.figures.start", "req_id", rid, "model", c.cfg.ExtractModel, "text_len", len(text))

	user := fmt.Sprintf(`Extract the following financial metrics from the text below. Return a JSON object with keys:
%s.

If a value is not found, use null. Return ONLY the JSON.

Text:
%s`, strings.Join(quoteAll(constants.AllFigures), ", "), text)

	content, err := c.chatJSON(ctx, c.cfg.ExtractModel,
		"You are a data extraction assistant. Extract financial numbers accurately.", user)
	if err != nil {
		c.log.Error("llm.figures.http_error", "req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return nil, err
	}

	raw := []byte(content)
	if obj, ok := llm.ExtractJSONObject(content); ok {
		raw = []byte(obj)
	}

	schema := llm.BuildFiguresJSONSchema()
	if err := llm.ValidateJSONAgainstSchema(schema, raw); err != nil {
		cleaned, dropped, sErr := llm.SanitizeFigures(raw)
		if sErr != nil {
			c.log.Error("llm.figures.sanitize_failed", "req_id", rid, "error", sErr)
			return nil, fmt.Errorf("sanitize reply: %w", sErr)
		}
		if vErr := llm.ValidateJSONAgainstSchema(schema, cleaned); vErr != nil {
			c.log.Error("llm.figures.schema_validation_failed", "req_id", rid, "error", vErr,
				"content", string(raw))
			return nil, fmt.Errorf("schema validation failed: %w", vErr)
		}
		c.log.Warn("llm.figures.sanitize_applied", "req_id", rid, "dropped", dropped)
		raw = cleaned
	}

	var values map[string]*float64
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("unmarshal figures: %w", err)
	}
	figures := make(entity.Figures, len(values))
	for name, v := range values {
		if v != nil {
			figures[name] = *v
		}
	}

	c.log.Info("llm.figures.ok", "req_id", rid, "figures", len(figures),
		"elapsed_ms", time.Since(start).Milliseconds())
	return figures, nil
}

// Analyze implements llm.NarrativeAnalyst. A missing API key is a
// capability failure: the reply carries the failure sentinel so the
// synthesis layer substitutes deterministic concerns.
func (c *Client) Analyze(ctx context.Context, req llm.NarrativeRequest) (entity.Narrative, error) {
	if !c.Enabled() {
		return entity.Narrative{
			Rationale: "Narrative capability is not configured.",
			Risks:     []string{entity.NarrativeFailureSentinel},
			Strengths: []string{"N/A"},
		}, nil
	}

	rid := uuid.New().String()
	start := time.Now()
	c.log.Info("llm.narrative.start", "req_id", rid, "model", c.cfg.NarrativeModel,
		"grade", req.Grade, "score", req.Score)

	metricsJSON, _ := json.MarshalIndent(req.Metrics, "", "  ")
	ratiosJSON, _ := json.MarshalIndent(req.Ratios, "", "  ")

	user := fmt.Sprintf(`You are a Senior Credit Officer at a commercial bank. Analyze the following supplier data and provide a professional credit assessment.

**Supplier Grade**: %s (Score: %v/100)

**Operational Metrics**:
%s

**Financial Ratios**:
%s

**Instructions**:
1. **Rationale**: Write a concise, professional paragraph (approx. 3-4 sentences) justifying the grade. Focus on the interplay between operational reliability and financial health.
2. **Risks**: List 2-3 specific risks for a lender (e.g., liquidity issues, supply chain reliability).
3. **Strengths**: List 2-3 key strengths.

Return the output as a JSON object with keys: "rationale", "risks" (list of strings), "strengths" (list of strings).`,
		req.Grade, req.Score, metricsJSON, ratiosJSON)

	content, err := c.chatJSON(ctx, c.cfg.NarrativeModel,
		"You are a helpful financial analyst assistant.", user)
	if err != nil {
		c.log.Error("llm.narrative.http_error", "req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return entity.Narrative{}, err
	}

	raw := []byte(content)
	if obj, ok := llm.ExtractJSONObject(content); ok {
		raw = []byte(obj)
	}
	if err := llm.ValidateJSONAgainstSchema(llm.BuildNarrativeJSONSchema(), raw); err != nil {
		c.log.Error("llm.narrative.schema_validation_failed", "req_id", rid, "error", err,
			"content", string(raw))
		return entity.Narrative{}, fmt.Errorf("schema validation failed: %w", err)
	}

	var out entity.Narrative
	if err := json.Unmarshal(raw, &out); err != nil {
		return entity.Narrative{}, fmt.Errorf("unmarshal narrative: %w", err)
	}

	c.log.Info("llm.narrative.ok", "req_id", rid, "risks", len(out.Risks),
		"strengths", len(out.Strengths), "elapsed_ms", time.Since(start).Milliseconds())
	return out, nil
}

// chatJSON posts one JSON-mode chat completion and returns the first
// choice's message content.
func (c *Client) chatJSON(ctx context.Context, model, system, user string) (string, error) {
	body := map[string]any{
		"model":           model,
		"temperature":     c.cfg.Temperature,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}

	raw, _, err := llm.PostJSON(ctx, c.http, endpoint, body, headers, c.log)
	if err != nil {
		return "", err
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if len(cc.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion response")
	}
	return strings.TrimSpace(cc.Choices[0].Message.Content), nil
}

func quoteAll(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = `"` + n + `"`
	}
	return out
}
