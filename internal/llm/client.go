package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/cognicore/revtrend/pkg/revtrend/generate"
	"github.com/cognicore/revtrend/pkg/revtrend/internalerr"
)

// Client calls an OpenAI-compatible chat completion endpoint.
type Client struct {
	BaseURL string
	APIKey  string
	Model   string

	HTTPClient *http.Client
	// Limiter, when set, paces requests.
	Limiter *rate.Limiter
}

type chatRequest struct {
	Model             string        `json:"model"`
	Messages          []chatMessage `json:"messages"`
	Temperature       *float64      `json:"temperature,omitempty"`
	TopP              *float64      `json:"top_p,omitempty"`
	MaxTokens         int           `json:"max_tokens,omitempty"`
	RepetitionPenalty float64       `json:"repetition_penalty,omitempty"`
	Seed              *int64        `json:"seed,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate implements generate.Generator. Greedy decoding is sent as
// temperature 0 with top_p 1 and a fixed seed; sampling forwards the policy.
func (c *Client) Generate(ctx context.Context, req generate.Request) (string, error) {
	messages := make([]chatMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.Prompt})

	body := chatRequest{Model: c.Model, Messages: messages}
	applyDecoding(&body, req.Decoding)

	out, err := c.complete(ctx, body)
	if err != nil {
		return "", err
	}
	return out, nil
}

// Chat sends one system and one user message with the server's default
// decoding.
func (c *Client) Chat(ctx context.Context, system, user string) (string, error) {
	messages := []chatMessage{{Role: "system", Content: system}, {Role: "user", Content: user}}
	return c.complete(ctx, chatRequest{Model: c.Model, Messages: messages})
}

func applyDecoding(body *chatRequest, d generate.Decoding) {
	body.MaxTokens = d.MaxTokens
	body.RepetitionPenalty = d.RepetitionPenalty
	seed := d.Seed
	body.Seed = &seed

	if d.Deterministic() {
		zero, one := 0.0, 1.0
		body.Temperature = &zero
		body.TopP = &one
		return
	}
	temp, topP := d.Temperature, d.TopP
	body.Temperature = &temp
	body.TopP = &topP
}

func (c *Client) complete(ctx context.Context, body chatRequest) (string, error) {
	if c.BaseURL == "" || c.Model == "" {
		return "", fmt.Errorf("llm: base URL and model required: %w", internalerr.ErrInvalidConfig)
	}
	payload, err := c.send(ctx, body)
	if err != nil {
		return "", err
	}
	if len(payload.Choices) == 0 || payload.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("llm: %w", internalerr.ErrEmptyGeneration)
	}
	return payload.Choices[0].Message.Content, nil
}

func (c *Client) send(ctx context.Context, body chatRequest) (*chatResponse, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("llm: rate limit: %w", err)
		}
	}
	reqBody, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var payload chatResponse
	if err := json.Unmarshal(data, &payload); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("llm: status %d: %s", resp.StatusCode, bytes.TrimSpace(data))
		}
		return nil, err
	}
	if payload.Error != nil {
		return nil, fmt.Errorf("llm error: %s", payload.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("llm: status %d", resp.StatusCode)
	}
	return &payload, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 60 * time.Second}
}
