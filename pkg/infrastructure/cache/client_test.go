package cache

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/vsinha/moldplan/pkg/infrastructure/config"
)

func TestNewClient_Unreachable(t *testing.T) {
	_, err := NewClient(&config.RedisConfig{Addr: "127.0.0.1:1"}, zap.NewNop())
	if err == nil {
		t.Fatal("Expected error for unreachable redis")
	}
	if !strings.Contains(err.Error(), "redis connection failed") {
		t.Errorf("Expected connection error, got '%s'", err.Error())
	}
}
