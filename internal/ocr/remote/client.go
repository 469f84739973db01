// Package remote calls an OpenAI-compatible chat-completions endpoint to
// extract text from page images. Detail level controls cost: "low" for the
// cheap strategy, "high" for premium.
package remote

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const extractionPrompt = "Extract all text from this document page. Preserve reading order and paragraph breaks. Return only the extracted text."

// Client is a retrying HTTP client for the extraction endpoint.
type Client struct {
	config *Config
	http   *http.Client
	logger *slog.Logger
}

func NewClient(config *Config, logger *slog.Logger) *Client {
	return &Client{
		config: config,
		http: &http.Client{
			Timeout: time.Duration(config.Timeout) * time.Second,
		},
		logger: logger.With("system", "remote"),
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL    string `json:"url"`
	Detail string `json:"detail,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Extract submits a JPEG page image and returns the recognized text.
// Transient failures retry with bounded exponential backoff.
func (c *Client) Extract(ctx context.Context, image []byte, pageNumber int, detail string) (string, error) {
	payload, err := c.buildPayload(image, detail)
	if err != nil {
		return "", fmt.Errorf("extract page %d: %w", pageNumber, err)
	}

	body, err := c.send(ctx, payload, pageNumber)
	if err != nil {
		return "", fmt.Errorf("extract page %d: %w", pageNumber, err)
	}

	return parseText(body)
}

func (c *Client) buildPayload(image []byte, detail string) ([]byte, error) {
	request := chatRequest{
		Model: c.config.Model,
		Messages: []chatMessage{{
			Role: "user",
			Content: []contentPart{
				{Type: "text", Text: extractionPrompt},
				{Type: "image_url", ImageURL: &imageURL{
					URL:    "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(image),
					Detail: detail,
				}},
			},
		}},
	}

	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	return payload, nil
}

func (c *Client) send(ctx context.Context, payload []byte, pageNumber int) ([]byte, error) {
	endpoint := strings.TrimSuffix(c.config.BaseURL, "/") + "/chat/completions"

	var lastErr error
	for attempt := range c.config.MaxAttempts {
		if attempt > 0 {
			delay := backoffDelay(attempt)
			c.logger.Warn("retrying extraction",
				"page", pageNumber,
				"attempt", attempt+1,
				"delay", delay,
				"error", lastErr,
			)

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		body, retryable, err := c.attempt(ctx, endpoint, payload)
		if err == nil {
			return body, nil
		}

		lastErr = err
		if !retryable {
			return nil, err
		}
	}

	return nil, fmt.Errorf("exhausted %d attempts: %w", c.config.MaxAttempts, lastErr)
}

func (c *Client) attempt(ctx context.Context, endpoint string, payload []byte) ([]byte, bool, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, false, err
	}

	request.Header.Set("Content-Type", "application/json")
	if c.config.Token != "" {
		request.Header.Set("Authorization", "Bearer "+c.config.Token)
	}

	response, err := c.http.Do(request)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
		return nil, true, err
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, true, err
	}

	if response.StatusCode != http.StatusOK {
		err := fmt.Errorf("status %d: %s", response.StatusCode, summarize(body))
		return nil, retryableStatus(response.StatusCode), err
	}

	return body, false, nil
}

func parseText(body []byte) (string, error) {
	var response chatResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if response.Error != nil {
		return "", fmt.Errorf("endpoint error: %s", response.Error.Message)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("response contained no choices")
	}

	return response.Choices[0].Message.Content, nil
}

func summarize(body []byte) string {
	const limit = 200
	text := strings.TrimSpace(string(body))
	if len(text) > limit {
		return text[:limit]
	}
	return text
}
