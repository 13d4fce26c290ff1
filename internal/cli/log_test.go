package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/logsheet/pkg/observability"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		debug bool
		info  bool
	}{
		{"info level", log.InfoLevel, false, true},
		{"debug level", log.DebugLevel, true, true},
		{"warn level", log.WarnLevel, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)

			logger.Debug("opening store")
			if got := strings.Contains(buf.String(), "opening store"); got != tt.debug {
				t.Errorf("debug logged = %v, want %v", got, tt.debug)
			}
			logger.Info("rendered")
			if got := strings.Contains(buf.String(), "rendered"); got != tt.info {
				t.Errorf("info logged = %v, want %v", got, tt.info)
			}
		})
	}
}

func TestSetVerbose(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	t.Cleanup(observability.Reset)

	c.SetVerbose(true)
	c.Logger.Debug("layout computed")
	if !strings.Contains(buf.String(), "layout computed") {
		t.Error("verbose CLI dropped a debug line")
	}

	buf.Reset()
	c.SetVerbose(false)
	c.Logger.Debug("layout computed")
	if buf.Len() != 0 {
		t.Errorf("quiet CLI logged %q", buf.String())
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.done("rendered", "formats", 2)

	for _, want := range []string{"rendered", "formats=2", "elapsed="} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("progress output = %q, want %q", buf.String(), want)
		}
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("loggerFromContext() without a logger should fall back to log.Default()")
	}

	logger := newLogger(&bytes.Buffer{}, log.InfoLevel)
	if got := loggerFromContext(withLogger(context.Background(), logger)); got != logger {
		t.Error("loggerFromContext() did not return the attached logger")
	}
}
