// Package vision generates free-text descriptions of product photos through
// an OpenRouter-compatible chat-completions endpoint.
package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	// DefaultURL is the OpenRouter chat-completions endpoint.
	DefaultURL = "https://openrouter.ai/api/v1/chat/completions"

	// instruction is the fixed prompt sent with every image.
	instruction = "Опиши изображение максимально подробно и художественно."

	defaultTimeout      = 600 * time.Second
	defaultMaxAttempts  = 6
	defaultInitialDelay = 3 * time.Second
)

// Describer produces a textual description of the image at the given path.
type Describer interface {
	Describe(ctx context.Context, imagePath string) (string, error)
}

// Config configures a Client. Zero values fall back to the defaults above.
type Config struct {
	URL          string
	APIKey       string
	Model        string
	Timeout      time.Duration
	MaxAttempts  int
	InitialDelay time.Duration
}

// Client calls the description service with retry and exponential backoff.
// Timeouts, transport failures, non-2xx responses and malformed payloads are
// all retried the same way; the final attempt's failure is returned to the
// caller.
type Client struct {
	url          string
	apiKey       string
	model        string
	maxAttempts  int
	initialDelay time.Duration
	httpClient   *http.Client
}

// NewClient returns a ready-to-use description client.
func NewClient(cfg Config) *Client {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.InitialDelay <= 0 {
		cfg.InitialDelay = defaultInitialDelay
	}
	return &Client{
		url:          cfg.URL,
		apiKey:       cfg.APIKey,
		model:        cfg.Model,
		maxAttempts:  cfg.MaxAttempts,
		initialDelay: cfg.InitialDelay,
		httpClient:   &http.Client{Timeout: cfg.Timeout},
	}
}

// Describe reads the image, sends it to the service and returns the trimmed
// description text.
func (c *Client) Describe(ctx context.Context, imagePath string) (string, error) {
	raw, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to read image %s: %w", imagePath, err)
	}

	body, err := json.Marshal(map[string]interface{}{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "user", "content": instruction},
		},
		"images": []string{base64.StdEncoding.EncodeToString(raw)},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.initialDelay
	policy.Multiplier = 2
	policy.RandomizationFactor = 0
	policy.MaxInterval = 10 * time.Minute
	policy.MaxElapsedTime = 0

	start := time.Now()
	attempt := 0
	text, err := backoff.RetryWithData(func() (string, error) {
		attempt++
		txt, err := c.describeOnce(ctx, body)
		if err != nil {
			slog.Warn("Description attempt failed", "image", imagePath, "attempt", attempt, "error", err)
			return "", err
		}
		return txt, nil
	}, backoff.WithContext(backoff.WithMaxRetries(policy, uint64(c.maxAttempts-1)), ctx))
	if err != nil {
		return "", err
	}

	slog.Info("Generated description", "image", filepath.Base(imagePath), "elapsed", time.Since(start).Round(100*time.Millisecond))
	return text, nil
}

func (c *Client) describeOnce(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("received non-200 status code: %d - %s", resp.StatusCode, string(respBody))
	}

	var response struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response body: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from description service")
	}

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}
