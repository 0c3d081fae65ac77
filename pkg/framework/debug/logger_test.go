package debug

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/clapgo/pkg/clap"
	"github.com/justyntemme/clapgo/pkg/clap/claptest"
	"github.com/justyntemme/clapgo/pkg/framework/extension"
)

func TestLogger(t *testing.T) {
	t.Run("BasicLogging", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "TEST", FlagPrefix)

		logger.Info("Hello %s", "World")

		output := buf.String()
		if !strings.Contains(output, "level=info") {
			t.Error("Missing log level")
		}
		if !strings.Contains(output, "component=TEST") {
			t.Error("Missing prefix")
		}
		if !strings.Contains(output, "Hello World") {
			t.Error("Missing message")
		}
		if strings.Contains(output, "time=") {
			t.Error("Timestamp written without FlagTime")
		}
	})

	t.Run("LogLevels", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "", 0)
		logger.SetLevel(LogLevelWarn)

		logger.Debug("debug message")
		logger.Info("info message")
		logger.Warn("warn message")
		logger.Error("error message")

		output := buf.String()
		if strings.Contains(output, "debug message") {
			t.Error("Debug message should not be logged")
		}
		if strings.Contains(output, "info message") {
			t.Error("Info message should not be logged")
		}
		if !strings.Contains(output, "warn message") {
			t.Error("Warn message should be logged")
		}
		if !strings.Contains(output, "error message") {
			t.Error("Error message should be logged")
		}
	})

	t.Run("Disabled", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "", DefaultFlags)
		logger.SetEnabled(false)

		logger.Info("should not appear")

		if buf.Len() > 0 {
			t.Error("Disabled logger should not write")
		}
	})

	t.Run("Off", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "", 0)
		logger.SetLevel(LogLevelOff)
		logger.Error("nope")
		if buf.Len() > 0 {
			t.Error("LogLevelOff should silence errors")
		}
	})

	t.Run("FileAndLine", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "", FlagShortFile)

		logger.Info("test message")

		if !strings.Contains(buf.String(), "caller=logger_test.go:") {
			t.Errorf("Missing caller: %s", buf.String())
		}
	})

	t.Run("FatalPanics", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "", 0)
		assert.Panics(t, func() { logger.Fatal("broken %d", 1) })
		assert.Contains(t, buf.String(), "broken 1")
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LogLevelDebug},
		{"trace", LogLevelDebug},
		{"info", LogLevelInfo},
		{"warning", LogLevelWarn},
		{"error", LogLevelError},
		{"fatal", LogLevelFatal},
		{"off", LogLevelOff},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("chatty")
	assert.Error(t, err)
}

func TestHostHook(t *testing.T) {
	host := claptest.NewHost(clap.ExtLog)
	hook := NewHostHook(extension.QueryHostLog(&host.Raw), LogLevelWarn)
	require.NotNil(t, hook)

	var buf bytes.Buffer
	logger := New(&buf, "gain", FlagPrefix)
	logger.SetLevel(LogLevelDebug)
	logger.Logrus().AddHook(hook)

	logger.Info("not forwarded")
	logger.Warn("latency %d", 64)
	logger.Error("failed")

	assert.Equal(t, []claptest.LogRecord{
		{Severity: clap.LogWarning, Message: "[gain] latency 64"},
		{Severity: clap.LogError, Message: "[gain] failed"},
	}, host.Logs())
	assert.Contains(t, buf.String(), "not forwarded")

	assert.Nil(t, NewHostHook(extension.QueryHostLog(&claptest.NewHost().Raw), LogLevelInfo))
}

func TestAnalyze(t *testing.T) {
	r := Analyze([]float32{0.5, -0.5, 0.5, -0.5})
	assert.InDelta(t, 0.5, r.Peak, 1e-9)
	assert.InDelta(t, 0.5, r.RMS, 1e-9)
	assert.InDelta(t, 0, r.DC, 1e-9)
	assert.Equal(t, 3, r.ZeroCrossings)
	assert.False(t, r.Clipping())
	assert.False(t, r.Silent())

	nan := float32(0)
	nan = nan / nan
	r = Analyze([]float32{1, nan, 0})
	assert.Equal(t, 1, r.NonFinite)
	assert.Equal(t, 1, r.ClippedSamples)

	assert.True(t, Analyze64(make([]float64, 8)).Silent())
	assert.True(t, Analyze(nil).Silent())
}

func TestHasNonFinite(t *testing.T) {
	zero := float32(0)
	assert.False(t, HasNonFinite([]float32{0, 1, -1}))
	assert.True(t, HasNonFinite([]float32{0, zero / zero}))
	assert.True(t, HasNonFinite([]float32{1 / zero}))
	zero64 := 0.0
	assert.True(t, HasNonFinite64([]float64{-1 / zero64}))

	buf := make([]float32, 512)
	allocs := testing.AllocsPerRun(50, func() { HasNonFinite(buf) })
	assert.Zero(t, allocs)
}

func TestLogBufferStats(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "", 0)
	r := LogBufferStats(logger.Entry(), "out", []float32{2, -2})
	assert.Equal(t, 2, r.ClippedSamples)
	assert.Contains(t, buf.String(), "audio buffer out of range")
	assert.Contains(t, buf.String(), "buffer=out")
}

func TestFileLoggerClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "clapgo.log")
	logger, err := NewFileLogger(path, "file", FlagPrefix)
	require.NoError(t, err)

	logger.Info("before close")
	require.NoError(t, logger.Close())
	logger.Info("after close")
	require.NoError(t, logger.Close(), "second close")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	if !strings.Contains(string(data), "before close") {
		t.Error("Missing message written before Close")
	}
	if strings.Contains(string(data), "after close") {
		t.Error("Message written after Close")
	}

	var buf bytes.Buffer
	assert.NoError(t, New(&buf, "", 0).Close())
	var nilLogger *Logger
	assert.NoError(t, nilLogger.Close())
}
