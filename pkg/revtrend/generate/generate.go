// Package generate defines the text generation contract used by the
// synthesizer, its decoding policy and an offline extractive backend.
package generate

import (
	"context"
	"fmt"

	"github.com/cognicore/revtrend/pkg/revtrend/internalerr"
)

// Mode selects how tokens are picked from the model distribution.
type Mode string

const (
	// Greedy decoding is reproducible: the same prompt yields the same text.
	Greedy Mode = "greedy"
	// Sampling trades reproducibility for fluency.
	Sampling Mode = "sampling"
)

// Decoding is the decoding policy passed to a generator.
type Decoding struct {
	Mode              Mode    `yaml:"mode" json:"mode"`
	Temperature       float64 `yaml:"temperature" json:"temperature"`
	TopP              float64 `yaml:"top_p" json:"top_p"`
	RepetitionPenalty float64 `yaml:"repetition_penalty" json:"repetition_penalty"`
	MaxTokens         int     `yaml:"max_tokens" json:"max_tokens"`
	Seed              int64   `yaml:"seed" json:"seed"`
}

// DefaultDecoding is greedy decoding with a mild repetition penalty.
func DefaultDecoding() Decoding {
	return Decoding{
		Mode:              Greedy,
		Temperature:       0.1,
		TopP:              0.7,
		RepetitionPenalty: 1.2,
		MaxTokens:         400,
	}
}

// SamplingDecoding is the low-temperature sampling alternative.
func SamplingDecoding() Decoding {
	d := DefaultDecoding()
	d.Mode = Sampling
	d.Temperature = 0.7
	d.TopP = 0.9
	return d
}

// Deterministic reports whether identical requests should produce
// identical output.
func (d Decoding) Deterministic() bool {
	return d.Mode != Sampling
}

// Validate checks the policy ranges.
func (d Decoding) Validate() error {
	switch d.Mode {
	case Greedy, Sampling:
	default:
		return fmt.Errorf("decoding mode %q: %w", d.Mode, internalerr.ErrInvalidConfig)
	}
	if d.Temperature < 0 || d.Temperature > 2 {
		return fmt.Errorf("temperature %.2f out of [0,2]: %w", d.Temperature, internalerr.ErrInvalidConfig)
	}
	if d.TopP <= 0 || d.TopP > 1 {
		return fmt.Errorf("top_p %.2f out of (0,1]: %w", d.TopP, internalerr.ErrInvalidConfig)
	}
	if d.RepetitionPenalty < 0 {
		return fmt.Errorf("repetition_penalty must be >= 0: %w", internalerr.ErrInvalidConfig)
	}
	if d.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be > 0: %w", internalerr.ErrInvalidConfig)
	}
	return nil
}

// Request is one generation call. Passages carry the retrieved evidence
// already embedded in Prompt; extractive backends read them directly.
type Request struct {
	System       string
	Prompt       string
	Passages     []string
	MaxSentences int
	Decoding     Decoding
}

// Generator produces text for a request.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, req Request) (string, error)

// Generate implements Generator.
func (f GeneratorFunc) Generate(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}
