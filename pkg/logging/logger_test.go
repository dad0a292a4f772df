package logging

import (
	"testing"

	"github.com/timahq/socialdata/pkg/config"
)

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.LoggingConfig
	}{
		{
			name: "json format",
			cfg:  config.LoggingConfig{Level: "INFO", Format: "json"},
		},
		{
			name: "text format",
			cfg:  config.LoggingConfig{Level: "DEBUG", Format: "text"},
		},
		{
			name: "invalid level falls back to info",
			cfg:  config.LoggingConfig{Level: "NOISY", Format: "json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := InitLogger(&tt.cfg); err != nil {
				t.Fatalf("InitLogger() error = %v", err)
			}
			if Logger == nil {
				t.Fatal("InitLogger() did not set the global logger")
			}
		})
	}
}

func TestGetLoggerFallback(t *testing.T) {
	Logger = nil
	if GetLogger() == nil {
		t.Fatal("GetLogger() returned nil")
	}
}

func TestWithComponent(t *testing.T) {
	if WithComponent("aggregator") == nil {
		t.Fatal("WithComponent() returned nil")
	}
}
