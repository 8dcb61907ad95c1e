package observability

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/vsinha/moldplan/pkg/infrastructure/config"
)

func TestSetup_Disabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), &config.TelemetryConfig{}, zap.NewNop())
	if err != nil {
		t.Fatalf("Expected disabled telemetry to succeed: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("Expected no-op shutdown, got %v", err)
	}
}

func TestSetup_RequiresEndpoint(t *testing.T) {
	_, err := Setup(context.Background(), &config.TelemetryConfig{Enabled: true}, zap.NewNop())
	if err == nil {
		t.Fatal("Expected error for missing endpoint")
	}
	if err.Error() != "telemetry endpoint cannot be empty" {
		t.Errorf("Expected error 'telemetry endpoint cannot be empty', got '%s'", err.Error())
	}
}
