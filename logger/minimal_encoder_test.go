package logger

import (
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// stripANSI removes ANSI color codes from a string for testing
func stripANSI(str string) string {
	ansiRegex := regexp.MustCompile(`\x1b\[[0-9;]*m`)
	return ansiRegex.ReplaceAllString(str, "")
}

func encode(t *testing.T, enc zapcore.Encoder, ent zapcore.Entry, fields ...zapcore.Field) string {
	t.Helper()
	buf, err := enc.EncodeEntry(ent, fields)
	require.NoError(t, err)
	return stripANSI(buf.String())
}

// The minimal encoder must never silently discard log fields.
func TestMinimalEncoderNeverDiscardsFields(t *testing.T) {
	entry := zapcore.Entry{
		Level:   zapcore.WarnLevel,
		Time:    time.Date(2026, 1, 2, 13, 4, 35, 0, time.UTC),
		Message: "Skipping declaration",
	}

	tests := []struct {
		field    zapcore.Field
		mustFind string
	}{
		{zap.String("item", "Foo"), "item=Foo"},
		{zap.Int("index", 3), "index=3"},
		{zap.Bool("deprecated", true), "deprecated=true"},
		{zap.Float64("ratio", 0.8), "ratio=0.8"},
		{zap.String("field.with.dots", "x"), "field.with.dots=x"},
		{zap.Error(errors.New("boom")), "error=boom"},
		{zap.Int64("duration_ms", 12), "duration_ms=12ms"},
		{zap.Strings("params", []string{"T", "U"}), "params="},
	}

	var fields []zapcore.Field
	for _, tt := range tests {
		fields = append(fields, tt.field)
	}
	out := encode(t, newMinimalEncoder(), entry, fields...)

	assert.True(t, strings.HasPrefix(out, "13:04:35  WARN  Skipping declaration  "), out)
	for _, tt := range tests {
		assert.Contains(t, out, tt.mustFind)
	}
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestMinimalEncoderNilError(t *testing.T) {
	entry := zapcore.Entry{Level: zapcore.InfoLevel, Time: time.Now(), Message: "ok"}
	out := encode(t, newMinimalEncoder(), entry, zap.Error(nil))
	assert.NotContains(t, out, "error=")
	assert.NotContains(t, out, "INFO")
}

func TestMinimalEncoderContextFields(t *testing.T) {
	enc := newMinimalEncoder()
	zap.String("run_id", "r1").AddTo(enc)
	clone := enc.Clone()
	zap.String("file", "lib.rs").AddTo(clone)

	entry := zapcore.Entry{Level: zapcore.InfoLevel, Time: time.Now(), LoggerName: "typegen.typescript", Message: "Translating"}
	out := encode(t, clone, entry, zap.Int("count", 2))

	assert.Contains(t, out, "t.typescript  Translating  file=lib.rs run_id=r1 count=2")

	// the parent is not affected by fields added to the clone
	parent := encode(t, enc, entry)
	assert.NotContains(t, parent, "file=")
}

func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme("everforest") })

	SetTheme("gruvbox")
	assert.Equal(t, "gruvbox", currentTheme)
	SetTheme("solarized")
	assert.Equal(t, "gruvbox", currentTheme)
}
