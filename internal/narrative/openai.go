package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/Nithilan10/buildai/internal/model"
)

const (
	DefaultEndpoint    = "https://api.openai.com/v1/chat/completions"
	DefaultModel       = "gpt-4"
	DefaultTemperature = 0.3
	DefaultMaxTokens   = 2000
)

// jsonObject matches from the first '{' to the last '}' of a reply.
var jsonObject = regexp.MustCompile(`(?s)\{.*\}`)

// OpenAIConfig configures an OpenAIClient. Zero values take the defaults.
type OpenAIConfig struct {
	APIKey      string
	Endpoint    string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
	Attempts    int
	RetryDelay  time.Duration
}

// OpenAIClient is a Provider backed by a chat-completions endpoint.
type OpenAIClient struct {
	cfg  OpenAIConfig
	http *http.Client
}

// NewOpenAIClient creates a client. An empty APIKey is allowed for
// endpoints that do not authenticate.
func NewOpenAIClient(cfg OpenAIConfig) *OpenAIClient {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.Attempts == 0 {
		cfg.Attempts = 3
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = time.Second
	}
	return &OpenAIClient{cfg: cfg, http: &http.Client{Timeout: cfg.Timeout}}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// GenerateReport asks the model for a report and validates the reply.
func (c *OpenAIClient) GenerateReport(ctx context.Context, req Request) (*model.WastageReport, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(req)},
		},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	var text string
	err = Retry(ctx, c.cfg.Attempts, c.cfg.RetryDelay, func() error {
		text, err = c.complete(ctx, body)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ParseReport(text)
}

func (c *OpenAIClient) complete(ctx context.Context, body []byte) (string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", &RetryableError{Err: fmt.Errorf("%w: %v", ErrProvider, err)}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return "", err
	}

	var out chatResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4<<20)).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrProvider, err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("%w: response has no choices", ErrProvider)
	}
	return out.Choices[0].Message.Content, nil
}

func checkStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusTooManyRequests || code >= 500:
		return &RetryableError{Err: fmt.Errorf("%w: status %d", ErrProvider, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrProvider, code)
	}
}

// ParseReport extracts the JSON object embedded in text and validates it as
// a wastage report.
func ParseReport(text string) (*model.WastageReport, error) {
	raw := jsonObject.FindString(text)
	if raw == "" {
		return nil, ErrNoJSON
	}
	var report model.WastageReport
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	if err := report.Validate(); err != nil {
		return nil, fmt.Errorf("invalid report: %w", err)
	}
	fillSummary(&report)
	return &report, nil
}

// fillSummary derives the totals a provider left out.
func fillSummary(r *model.WastageReport) {
	if r.Summary.TotalTiles != 0 || r.Summary.TotalTilesNeeded != 0 {
		return
	}
	for i := range r.Surfaces {
		s := &r.Surfaces[i]
		if s.SurfaceName == "" {
			s.SurfaceName = s.Surface.DisplayName()
		}
		r.Summary.TotalTilesNeeded += s.TilesNeeded
		r.Summary.TotalTiles += s.TotalTilesWithWastage
		r.Summary.TotalCost += s.CostEstimate
	}
	r.Summary.TotalWastagePercentage = r.TotalWastage.Percentage
}

var _ Provider = (*OpenAIClient)(nil)
