package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables read by LoadEnv.
const (
	EnvLLMAPIKey        = "REVTREND_LLM_API_KEY"
	EnvLLMEndpoint      = "REVTREND_LLM_ENDPOINT"
	EnvLLMModel         = "REVTREND_LLM_MODEL"
	EnvClassifierAPIKey = "REVTREND_CLASSIFIER_API_KEY"
	EnvClassifierURL    = "REVTREND_CLASSIFIER_ENDPOINT"
	EnvEmbedEndpoint    = "REVTREND_EMBED_ENDPOINT"
	EnvEmbedModel       = "REVTREND_EMBED_MODEL"
)

// LoadEnv loads a .env file, if present, into the process environment and
// applies the REVTREND_* variables on top of s. Variables already set in the
// environment win over the file. A missing file is not an error.
func LoadEnv(path string, s *Settings) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env %s: %w", path, err)
	}
	ApplyEnv(s)
	return nil
}

// ApplyEnv overrides settings from the process environment.
func ApplyEnv(s *Settings) {
	set := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	set(&s.Models.LLM.APIKey, EnvLLMAPIKey)
	set(&s.Models.LLM.Endpoint, EnvLLMEndpoint)
	set(&s.Models.LLM.Model, EnvLLMModel)
	set(&s.Models.Classifier.Token, EnvClassifierAPIKey)
	set(&s.Models.Classifier.Endpoint, EnvClassifierURL)
	set(&s.Models.Embedding.Endpoint, EnvEmbedEndpoint)
	set(&s.Models.Embedding.Model, EnvEmbedModel)
}
