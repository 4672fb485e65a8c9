// Package assistant talks to an OpenAI-compatible chat completions endpoint
// to draft batch descriptions.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"intimacoes/internal/core/ports"
	"intimacoes/internal/pkg/errs"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"
	DefaultTimeout = 15 * time.Second

	// MaxResponseBytes bounds how much of a completions response is read.
	MaxResponseBytes = 1 << 20
	// maxErrorBody bounds the response text quoted in errors and logs.
	maxErrorBody = 256

	systemPrompt = "Você redige descrições curtas e objetivas de lotes de intimações " +
		"entregues por oficiais. Responda apenas com o texto da descrição."
)

var (
	ErrAssistantDisabled = errors.New("assistant is disabled")
	ErrEmptyCompletion   = errors.New("assistant returned an empty completion")
	ErrResponseTooLarge  = errors.New("assistant response is too large")
)

var _ ports.TextGenerator = &Client{}

type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// HTTPError carries a non-2xx answer from the completions endpoint.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("assistant http %d: %s", e.StatusCode, e.Body)
}

type Client struct {
	baseURL    string
	apiKey     string
	model      string
	timeout    time.Duration
	httpClient *http.Client
	log        *slog.Logger
}

func NewClient(cfg Config, httpClient *http.Client, logger *slog.Logger) (*Client, error) {
	if cfg.Timeout < 0 {
		return nil, errs.NewValueIsInvalidError("timeout")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		model:      cfg.Model,
		timeout:    cfg.Timeout,
		httpClient: httpClient,
		log:        logger.With("component", "assistant"),
	}, nil
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

func (c *Client) Timeout() time.Duration {
	return c.timeout
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if !c.Enabled() {
		return "", ErrAssistantDisabled
	}
	if strings.TrimSpace(prompt) == "" {
		return "", errs.NewValueIsRequiredError("prompt")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	var out chatResponse
	err := c.do(ctx, "/chat/completions", chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
	}, &out)
	if err != nil {
		c.log.Warn("completion request failed",
			"model", c.model,
			"duration", time.Since(start).String(),
			"error", err.Error(),
		)
		return "", err
	}

	if len(out.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	text := strings.TrimSpace(out.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}

func (c *Client) do(ctx context.Context, path string, body any, out any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBytes+1))
	_ = resp.Body.Close()
	if readErr != nil {
		return readErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{StatusCode: resp.StatusCode, Body: truncate(raw)}
	}
	if len(raw) > MaxResponseBytes {
		return fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, MaxResponseBytes)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("assistant decode error: %w; raw=%s", err, truncate(raw))
	}
	return nil
}

func truncate(raw []byte) string {
	if len(raw) <= maxErrorBody {
		return string(raw)
	}
	return string(raw[:maxErrorBody]) + "...(truncated)"
}
