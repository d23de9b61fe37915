package logger

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedClock pins timestamps so whole lines can be compared
func fixedClock(l Logger) Logger {
	l.(*standardLogger).state.now = func() time.Time {
		return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	}
	return l
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name     string
		level    Level
		log      func(Logger, string)
		expected bool
	}{
		{"debug at debug", LevelDebug, func(l Logger, m string) { l.Debug(m) }, true},
		{"debug at info", LevelInfo, func(l Logger, m string) { l.Debug(m) }, false},
		{"info at info", LevelInfo, func(l Logger, m string) { l.Info(m) }, true},
		{"info at warn", LevelWarn, func(l Logger, m string) { l.Info(m) }, false},
		{"warn at error", LevelError, func(l Logger, m string) { l.Warn(m) }, false},
		{"error at error", LevelError, func(l Logger, m string) { l.Error(m) }, true},
		{"error when silent", LevelSilent, func(l Logger, m string) { l.Error(m) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewLogger(tt.level, &buf), "rendered module")
			assert.Equal(t, tt.expected, strings.Contains(buf.String(), "rendered module"))
		})
	}
}

func TestLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	l := fixedClock(NewLogger(LevelDebug, &buf))

	l.Info("rendered module", F("params", 15), F("group", "DecisionTreeParams"))
	l.Warn("no fields")

	assert.Equal(t,
		"2026-01-02 03:04:05 [INFO] rendered module | params=15 group=DecisionTreeParams\n"+
			"2026-01-02 03:04:05 [WARN] no fields\n",
		buf.String())
}

func TestLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	base := fixedClock(NewLogger(LevelInfo, &buf))
	scoped := base.WithFields(F("target", "shared.py"))

	scoped.Info("written", F("bytes", 120))
	base.Info("plain")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], "written | target=shared.py bytes=120"))
	assert.True(t, strings.HasSuffix(lines[1], "[INFO] plain"))
}

func TestLogger_DerivedSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogger(LevelWarn, &buf)
	scoped := base.WithFields(F("k", "v"))

	scoped.Debug("before")
	base.SetLevel(LevelDebug)
	scoped.Debug("after")

	assert.NotContains(t, buf.String(), "before")
	assert.Contains(t, buf.String(), "after")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{" warn ", LevelWarn, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"off", LevelSilent, false},
		{"loud", LevelWarn, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
		} else {
			assert.NoError(t, err, tt.in)
		}
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "SILENT", LevelSilent.String())
	assert.Equal(t, "UNKNOWN", Level(42).String())
}

func TestDefaultLogger(t *testing.T) {
	original := Default()
	t.Cleanup(func() { SetDefault(original) })

	var buf bytes.Buffer
	SetDefault(NewLogger(LevelDebug, &buf))

	Debug("d")
	Info("i")
	Warn("w")
	Error("e")

	for _, want := range []string{"[DEBUG] d", "[INFO] i", "[WARN] w", "[ERROR] e"} {
		assert.Contains(t, buf.String(), want)
	}
}

func TestLogger_Concurrent(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LevelInfo, &buf)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.WithFields(F("worker", i)).Info("done")
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, strings.Count(buf.String(), "\n"))
}

func TestNewSilentLogger(t *testing.T) {
	l := NewSilentLogger()
	assert.NotPanics(t, func() { l.Error("nothing") })
}
