package logger

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"
)

type palette struct {
	fg       string
	time     string
	name     string
	id       string
	number   string
	file     string
	yellow   string
	red      string
	redBg    string
	yellowBg string
}

// Gruvbox Dark (warm, muted)
var gruvbox = palette{
	fg:       "\x1b[38;5;223m",
	time:     "\x1b[38;5;108m",
	name:     "\x1b[38;5;208m",
	id:       "\x1b[38;5;109m",
	number:   "\x1b[38;5;175m",
	file:     "\x1b[38;5;142m",
	yellow:   "\x1b[38;5;214m",
	red:      "\x1b[38;5;167m",
	redBg:    "\x1b[48;5;88m",
	yellowBg: "\x1b[48;5;58m",
}

// Everforest Dark (forest greens)
var everforest = palette{
	fg:       "\x1b[38;5;223m",
	time:     "\x1b[38;5;107m",
	name:     "\x1b[38;5;208m",
	id:       "\x1b[38;5;109m",
	number:   "\x1b[38;5;108m",
	file:     "\x1b[38;5;65m",
	yellow:   "\x1b[38;5;179m",
	red:      "\x1b[38;5;167m",
	redBg:    "\x1b[48;5;52m",
	yellowBg: "\x1b[48;5;58m",
}

var currentTheme = "everforest"

// SetTheme configures the color scheme for console log output.
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

// minimalEncoder is a compact console encoder.
// Format: "13:04:35  g.emit  generated  Main.java 12ms  scope=3"
type minimalEncoder struct {
	zapcore.Encoder
}

func newMinimalEncoder() *minimalEncoder {
	return &minimalEncoder{
		Encoder: zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
	}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	return &minimalEncoder{Encoder: enc.Encoder.Clone()}
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	c := colors()
	final := buffer.NewPool().Get()

	final.AppendString(c.time)
	final.AppendString(ent.Time.Format("15:04:05"))
	final.AppendString(colorReset)

	// Only WARN and above get a level badge
	if ent.Level > zapcore.InfoLevel {
		final.AppendString("  ")
		final.AppendString(levelColorString(ent.Level))
	} else if ent.Level == zapcore.DebugLevel {
		final.AppendString("  ")
		final.AppendString(c.fg + "·" + colorReset)
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(c.name)
		final.AppendString(abbreviateName(ent.LoggerName))
		final.AppendString(colorReset)
	}

	final.AppendString("  ")
	final.AppendString(c.fg)
	final.AppendString(ent.Message)
	final.AppendString(colorReset)

	if len(fields) > 0 {
		if rendered := renderFields(fields); rendered != "" {
			final.AppendString("  ")
			final.AppendString(rendered)
		}
	}

	final.AppendString("\n")
	return final, nil
}

func levelColorString(level zapcore.Level) string {
	c := colors()
	switch level {
	case zapcore.WarnLevel:
		return colorBold + c.yellowBg + c.yellow + "WARN" + colorReset
	case zapcore.ErrorLevel:
		return colorBold + c.redBg + c.red + "ERROR" + colorReset
	default:
		return colorBold + c.redBg + c.red + level.CapitalString() + colorReset
	}
}

// abbreviateName shortens component names: javagen.patch -> j.patch
func abbreviateName(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) > 1 && parts[0] != "" {
		return string(parts[0][0]) + "." + strings.Join(parts[1:], ".")
	}
	return name
}

// fieldValue renders a zap field's value as plain text
func fieldValue(field zapcore.Field) string {
	switch field.Type {
	case zapcore.StringType:
		return field.String
	case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type:
		return fmt.Sprintf("%d", field.Integer)
	case zapcore.Uint64Type, zapcore.Uint32Type, zapcore.Uint16Type, zapcore.Uint8Type:
		return fmt.Sprintf("%d", uint64(field.Integer))
	case zapcore.BoolType:
		return fmt.Sprintf("%t", field.Integer == 1)
	case zapcore.ErrorType:
		if err, ok := field.Interface.(error); ok {
			return err.Error()
		}
	}

	// Everything else goes through a map encoder so no field is dropped
	m := zapcore.NewMapObjectEncoder()
	field.AddTo(m)
	if v, ok := m.Fields[field.Key]; ok {
		return fmt.Sprintf("%v", v)
	}
	return ""
}

// renderFields pulls the well-known fields forward with colors and appends
// the rest as sorted key=value pairs.
//
// Input:  file=main.py duration_ms=12 diagnostics=2 scope=3
// Output: "main.py 12ms 2 diagnostics  scope=3"
func renderFields(fields []zapcore.Field) string {
	c := colors()
	var head []string
	var rest []string

	for _, field := range fields {
		val := fieldValue(field)
		switch field.Key {
		case FieldFile, FieldOutput:
			if val != "" {
				head = append(head, c.file+val+colorReset)
			}
		case FieldRunID:
			if len(val) > 8 {
				val = val[:8]
			}
			head = append(head, c.id+val+colorReset)
		case FieldDurationMS:
			head = append(head, c.number+val+colorReset+"ms")
		case FieldDiagnostics:
			head = append(head, c.number+val+colorReset+" diagnostics")
		default:
			rest = append(rest, field.Key+"="+val)
		}
	}

	sort.Strings(rest)
	out := strings.Join(head, " ")
	if len(rest) > 0 {
		if out != "" {
			out += "  "
		}
		out += strings.Join(rest, " ")
	}
	return out
}
