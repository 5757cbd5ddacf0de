package observability_test

import (
	"testing"

	"github.com/fulmenhq/gofulmen/crucible"
	"go.uber.org/zap"

	"github.com/maxrange/maxrange/internal/observability"
)

func TestLoggers(t *testing.T) {
	t.Run("CLI logger creation", func(t *testing.T) {
		observability.InitCLILogger("maxrange-test", false)

		if observability.CLILogger == nil {
			t.Fatal("CLI logger should not be nil after initialization")
		}

		observability.CLILogger.Info("Test CLI log message",
			zap.String("test", "value"))
	})

	t.Run("Verbose CLI logger", func(t *testing.T) {
		observability.InitCLILogger("maxrange-test", true)

		observability.CLILogger.Debug("Debug message",
			zap.String("mode", "verbose"))
	})

	t.Run("Structured logger replaces CLI logger", func(t *testing.T) {
		observability.InitCLILogger("maxrange-test", false)
		before := observability.CLILogger

		if err := observability.InitStructuredLogger("maxrange-test", "warn", false); err != nil {
			t.Fatalf("Failed to create structured logger: %v", err)
		}
		if observability.CLILogger == before {
			t.Fatal("structured logger should replace the CLI logger")
		}

		observability.CLILogger.Warn("Test structured log message",
			zap.Int("values", 4),
			zap.Int64("count", 3))
	})
}

func TestValidProfile(t *testing.T) {
	for _, name := range []string{"", "simple", "STRUCTURED", " structured "} {
		if !observability.ValidProfile(name) {
			t.Errorf("expected %q to be a valid profile", name)
		}
	}
	if observability.ValidProfile("enterprise") {
		t.Error("enterprise profile is not supported")
	}
}

func TestDisabledMetrics(t *testing.T) {
	observability.InitDisabledMetrics()

	if observability.TelemetrySystem == nil {
		t.Fatal("telemetry system should be installed")
	}
	_ = observability.TelemetrySystem.Counter("maxrange_test_total", 1, nil)
}

func TestEmbeddedCrucible(t *testing.T) {
	version := crucible.GetVersion()
	if version.Gofulmen == "" {
		t.Error("Gofulmen version should not be empty")
	}
	if version.Crucible == "" {
		t.Error("Crucible version should not be empty")
	}
}
