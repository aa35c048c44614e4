package openai

import (
	"log/slog"
	"net/http"
	"os"
	"time"
)

// Config for the OpenAI-compatible client.
type Config struct {
	APIKey         string        // if empty, falls back to env OPENAI_API_KEY
	BaseURL        string        // default https://api.openai.com/v1
	ExtractModel   string        // figure extraction, e.g. "gpt-3.5-turbo"
	NarrativeModel string        // lender analysis, e.g. "gpt-4o"
	Temperature    float32       // 0..2
	Timeout        time.Duration // http client timeout
}

// Client implements the generative extraction and narrative
// capabilities over an OpenAI-style chat/completions endpoint.
type Client struct {
	cfg  Config
	http *http.Client
	log  *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.ExtractModel == "" {
		cfg.ExtractModel = "gpt-3.5-turbo"
	}
	if cfg.NarrativeModel == "" {
		cfg.NarrativeModel = "gpt-4o"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  logger,
	}
}

// Enabled reports whether the client can reach the capability at all.
func (c *Client) Enabled() bool {
	return c.cfg.APIKey != ""
}
