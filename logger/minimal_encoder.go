package logger

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"
)

// Everforest-ish palette (natural greens, easy on the eyes during long runs)
const (
	colorFg       = "\x1b[38;5;223m" // soft beige
	colorGreen    = "\x1b[38;5;108m" // bright green — counts, success
	colorAqua     = "\x1b[38;5;109m" // blue-green — collections, ids
	colorOrange   = "\x1b[38;5;208m" // warm orange — stage markers
	colorYellow   = "\x1b[38;5;179m" // soft yellow — warnings
	colorRed      = "\x1b[38;5;167m" // warm red — errors
	colorRedBg    = "\x1b[48;5;52m"
	colorYellowBg = "\x1b[48;5;58m"
	colorTimeFg   = "\x1b[38;5;107m" // mid green — timestamps
)

// minimalEncoder implements a calm, compact console encoder.
// Format: "13:04:35  Δ recipes scanned  recipes 124 new=3 updated=1"
type minimalEncoder struct {
	zapcore.Encoder // embed a base encoder for field serialization
	buf             *buffer.Buffer
}

func newMinimalEncoder() *minimalEncoder {
	baseEncoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	return &minimalEncoder{
		Encoder: baseEncoder,
		buf:     buffer.NewPool().Get(),
	}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	return &minimalEncoder{
		Encoder: enc.Encoder.Clone(),
		buf:     buffer.NewPool().Get(),
	}
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	final := buffer.NewPool().Get()

	final.AppendString(colorTimeFg)
	final.AppendString(ent.Time.Format("15:04:05"))
	final.AppendString(colorReset)

	// Level: only show for WARN/ERROR with bold + background
	if ent.Level != zapcore.InfoLevel {
		final.AppendString("  ")
		final.AppendString(levelColorString(ent.Level))
	}

	final.AppendString("  ")
	final.AppendString(colorizeMessage(ent.Message))

	if len(fields) > 0 {
		final.AppendString("  ")
		final.AppendString(extractFieldValues(fields))
	}

	final.AppendString("\n")
	return final, nil
}

// levelColorString returns bold + colored + background for WARN/ERROR
func levelColorString(level zapcore.Level) string {
	switch level {
	case zapcore.WarnLevel:
		return colorBold + colorYellowBg + colorYellow + "WARN" + colorReset
	case zapcore.ErrorLevel:
		return colorBold + colorRedBg + colorRed + "ERROR" + colorReset
	case zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		return colorBold + colorRedBg + colorRed + level.CapitalString() + colorReset
	default:
		return ""
	}
}

// colorizeMessage highlights leading stage glyphs so a run reads as a
// sequence of stages at a glance.
func colorizeMessage(msg string) string {
	for _, glyph := range []string{"⇲", "Δ", "⚗", "⊘", "✓", "⛁", "➤"} {
		if strings.HasPrefix(msg, glyph) {
			return colorOrange + glyph + colorReset + colorFg + msg[len(glyph):] + colorReset
		}
	}
	return colorFg + msg + colorReset
}

// getFieldValue extracts the value from a zap field, handling different field types
func getFieldValue(field zapcore.Field) string {
	if field.Type == zapcore.StringType {
		return field.String
	}

	switch field.Type {
	case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type,
		zapcore.Uint64Type, zapcore.Uint32Type, zapcore.Uint16Type, zapcore.Uint8Type:
		return fmt.Sprintf("%d", field.Integer)
	// zap packs float values as IEEE-754 bits in field.Integer.
	case zapcore.Float64Type:
		return strconv.FormatFloat(math.Float64frombits(uint64(field.Integer)), 'f', -1, 64)
	case zapcore.Float32Type:
		return strconv.FormatFloat(float64(math.Float32frombits(uint32(field.Integer))), 'f', -1, 32)
	}

	if field.Interface != nil {
		return fmt.Sprintf("%v", field.Interface)
	}
	return ""
}

// extractFieldValues pulls just the values from structured fields.
// Input: {"collection": "recipes", "new": 3, "updated": 1}
// Output: "recipes new=3 updated=1" (with colored names and counts)
func extractFieldValues(fields []zapcore.Field) string {
	var values []string

	for _, field := range fields {
		val := getFieldValue(field)
		if val == "" {
			continue
		}
		switch field.Key {
		case "collection", "run_id", "id":
			values = append(values, colorAqua+val+colorReset)
		case "symbol":
			// already rendered as part of the message
		case "error":
			values = append(values, colorRed+val+colorReset)
		case "duration_ms":
			values = append(values, colorGreen+val+colorReset+"ms")
		case "elapsed_s":
			values = append(values, colorGreen+val+colorReset+"s")
		default:
			values = append(values, colorFg+field.Key+"="+colorReset+colorGreen+val+colorReset)
		}
	}

	return strings.Join(values, " ")
}
