package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/cognicore/revtrend/pkg/revtrend/review"
)

// DefaultMaxChars is how much of a review the hosted model sees.
const DefaultMaxChars = 512

// HTTP calls a hosted text-classification endpoint that answers with star
// labels, in the Hugging Face inference format.
type HTTP struct {
	Endpoint string
	Token    string
	MaxChars int

	HTTPClient *http.Client
	Limiter    *rate.Limiter
}

type inferenceRequest struct {
	Inputs string `json:"inputs"`
}

type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type inferenceError struct {
	Error string `json:"error"`
}

// Classify implements Classifier.
func (h *HTTP) Classify(ctx context.Context, text string) (review.Sentiment, error) {
	label, err := h.TopLabel(ctx, text)
	if err != nil {
		return "", err
	}
	return LabelFromStars(label), nil
}

// TopLabel returns the highest scoring raw label.
func (h *HTTP) TopLabel(ctx context.Context, text string) (string, error) {
	if h.Endpoint == "" {
		return "", fmt.Errorf("classify: endpoint required")
	}
	if h.Limiter != nil {
		if err := h.Limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("classify: rate limit: %w", err)
		}
	}

	body, err := json.Marshal(inferenceRequest{Inputs: truncate(text, h.maxChars())})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if h.Token != "" {
		req.Header.Set("Authorization", "Bearer "+h.Token)
	}

	resp, err := h.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("classify: request failed: %w", err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr inferenceError
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return "", fmt.Errorf("classify: status %d: %s", resp.StatusCode, apiErr.Error)
		}
		return "", fmt.Errorf("classify: status %d", resp.StatusCode)
	}

	scores, err := decodeScores(data)
	if err != nil {
		return "", err
	}
	if len(scores) == 0 {
		return "", fmt.Errorf("classify: no labels returned")
	}
	best := scores[0]
	for _, s := range scores[1:] {
		if s.Score > best.Score {
			best = s
		}
	}
	return best.Label, nil
}

// decodeScores accepts both [[{label,score}…]] and [{label,score}…].
func decodeScores(data []byte) ([]labelScore, error) {
	var nested [][]labelScore
	if err := json.Unmarshal(data, &nested); err == nil {
		if len(nested) == 0 {
			return nil, nil
		}
		return nested[0], nil
	}
	var flat []labelScore
	if err := json.Unmarshal(data, &flat); err != nil {
		return nil, fmt.Errorf("classify: decode response: %w", err)
	}
	return flat, nil
}

func (h *HTTP) maxChars() int {
	if h.MaxChars > 0 {
		return h.MaxChars
	}
	return DefaultMaxChars
}

func (h *HTTP) httpClient() *http.Client {
	if h.HTTPClient != nil {
		return h.HTTPClient
	}
	return &http.Client{Timeout: 30 * time.Second}
}

func truncate(text string, n int) string {
	r := []rune(text)
	if len(r) <= n {
		return text
	}
	return string(r[:n])
}
