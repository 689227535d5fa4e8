package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/cognicore/revtrend/pkg/revtrend/internalerr"
)

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("warn", &buf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("skipped line", "line", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "skipped line") || !strings.Contains(out, "line=3") {
		t.Errorf("warn entry missing: %s", out)
	}
}

func TestNewDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("", &buf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Debug("noise")
	logger.Info("stage")
	if strings.Contains(buf.String(), "noise") || !strings.Contains(buf.String(), "stage") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New("chatty", nil)
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}
