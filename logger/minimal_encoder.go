package logger

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"
)

// palette holds the colors one theme uses.
type palette struct {
	time      string
	fg        string
	key       string
	number    string
	component []string
	warn      string
	warnBg    string
	err       string
	errBg     string
}

// Everforest Dark: natural forest greens
var everforest = palette{
	time:      "\x1b[38;5;107m", // Mid green (#83c092)
	fg:        "\x1b[38;5;223m", // Soft beige (#d3c6aa)
	key:       "\x1b[38;5;109m", // Blue-green (#7fbbb3)
	number:    "\x1b[38;5;108m", // Bright green (#a7c080)
	component: []string{"\x1b[38;5;108m", "\x1b[38;5;65m", "\x1b[38;5;208m"},
	warn:      "\x1b[38;5;179m", // Soft yellow (#dbbc7f)
	warnBg:    "\x1b[48;5;58m",
	err:       "\x1b[38;5;167m", // Warm red (#e67e80)
	errBg:     "\x1b[48;5;52m",
}

// Gruvbox Dark: warm, muted
var gruvbox = palette{
	time:      "\x1b[38;5;108m", // Muted cyan-green (#8ec07c)
	fg:        "\x1b[38;5;223m", // Soft cream (#ebdbb2)
	key:       "\x1b[38;5;109m", // Soft blue (#83a598)
	number:    "\x1b[38;5;175m", // Muted purple (#d3869b)
	component: []string{"\x1b[38;5;208m", "\x1b[38;5;214m"},
	warn:      "\x1b[38;5;214m", // Soft yellow (#fabd2f)
	warnBg:    "\x1b[48;5;58m",
	err:       "\x1b[38;5;167m", // Warm red (#fb4934)
	errBg:     "\x1b[48;5;88m",
}

var currentTheme = "everforest"

// SetTheme configures the color scheme for log output.
// Unknown names are ignored.
func SetTheme(theme string) {
	if theme == "everforest" || theme == "gruvbox" {
		currentTheme = theme
	}
}

func colors() palette {
	if currentTheme == "gruvbox" {
		return gruvbox
	}
	return everforest
}

// colorComponent hashes the name for a consistent color per component
func colorComponent(name string) string {
	hash := 0
	for _, c := range name {
		hash += int(c)
	}
	pal := colors().component
	return pal[hash%len(pal)]
}

// minimalEncoder implements a calm, compact console encoder with theme support
// Format: "13:04:35  WARN  watch  Skipping declaration  item=Foo kind=unsupported_construct"
//
// Every field is printed as key=value. Context fields added with With()
// come first, sorted by key, followed by the call-site fields in order.
type minimalEncoder struct {
	*zapcore.MapObjectEncoder
}

func newMinimalEncoder() *minimalEncoder {
	return &minimalEncoder{MapObjectEncoder: zapcore.NewMapObjectEncoder()}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	clone := zapcore.NewMapObjectEncoder()
	for k, v := range enc.Fields {
		clone.Fields[k] = v
	}
	return &minimalEncoder{MapObjectEncoder: clone}
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	pal := colors()
	final := buffer.NewPool().Get()

	final.AppendString(pal.time)
	final.AppendString(ent.Time.Format("15:04:05"))
	final.AppendString(colorReset)

	// Level: only show for non-INFO with bold + background
	if ent.Level != zapcore.InfoLevel {
		final.AppendString("  ")
		final.AppendString(levelColorString(ent.Level))
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(colorComponent(ent.LoggerName))
		final.AppendString(abbreviateName(ent.LoggerName))
		final.AppendString(colorReset)
	}

	final.AppendString("  ")
	final.AppendString(pal.fg)
	final.AppendString(ent.Message)
	final.AppendString(colorReset)

	pairs := contextPairs(enc.Fields)
	for _, f := range fields {
		pairs = append(pairs, fieldPairs(f)...)
	}
	if len(pairs) > 0 {
		final.AppendString("  ")
		final.AppendString(formatPairs(pairs, pal))
	}

	final.AppendString("\n")
	return final, nil
}

type kv struct {
	key   string
	value interface{}
}

func contextPairs(m map[string]interface{}) []kv {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]kv, 0, len(keys))
	for _, k := range keys {
		out = append(out, kv{k, m[k]})
	}
	return out
}

// fieldPairs renders a single field through a map encoder so that every
// zap field type is handled by zap itself. Verbose error stacks are dropped.
func fieldPairs(f zapcore.Field) []kv {
	m := zapcore.NewMapObjectEncoder()
	f.AddTo(m)
	var out []kv
	for _, p := range contextPairs(m.Fields) {
		if strings.HasSuffix(p.key, "Verbose") {
			continue
		}
		out = append(out, p)
	}
	return out
}

func formatPairs(pairs []kv, pal palette) string {
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		val := fmt.Sprintf("%v", p.value)
		switch p.value.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
			val = pal.number + val + colorReset
		}
		if p.key == FieldDurationMS {
			val += "ms"
		}
		parts[i] = pal.key + p.key + colorReset + "=" + val
	}
	return strings.Join(parts, " ")
}

// levelColorString returns bold + colored + background for non-INFO levels
func levelColorString(level zapcore.Level) string {
	pal := colors()
	switch level {
	case zapcore.DebugLevel:
		return pal.key + "DEBUG" + colorReset
	case zapcore.WarnLevel:
		return colorBold + pal.warnBg + pal.warn + "WARN" + colorReset
	default:
		return colorBold + pal.errBg + pal.err + level.CapitalString() + colorReset
	}
}

// abbreviateName shortens component names: typegen.typescript -> t.typescript
func abbreviateName(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) > 1 && parts[0] != "" {
		return string(parts[0][0]) + "." + strings.Join(parts[1:], ".")
	}
	return name
}
