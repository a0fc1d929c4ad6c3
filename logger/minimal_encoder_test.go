package logger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestEncodeEntry_InfoLevel(t *testing.T) {
	enc := newMinimalEncoder()

	entry := zapcore.Entry{
		Level:   zapcore.InfoLevel,
		Time:    time.Date(2025, 1, 2, 13, 4, 35, 0, time.UTC),
		Message: "Δ recipes scanned",
	}
	fields := []zapcore.Field{
		zap.String("collection", "recipes"),
		zap.Int("new", 3),
		zap.Int("updated", 1),
	}

	buf, err := enc.EncodeEntry(entry, fields)
	require.NoError(t, err)
	out := buf.String()

	assert.Contains(t, out, "13:04:35")
	assert.Contains(t, out, "recipes scanned")
	assert.Contains(t, out, "new=")
	assert.Contains(t, out, "3")
	assert.NotContains(t, out, "INFO", "info level should not be labeled")
}

func TestEncodeEntry_FloatFields(t *testing.T) {
	enc := newMinimalEncoder()

	entry := zapcore.Entry{
		Level:   zapcore.InfoLevel,
		Time:    time.Date(2025, 1, 2, 13, 4, 35, 0, time.UTC),
		Message: "✓ validation complete",
	}
	fields := []zapcore.Field{
		zap.Float64("score", 98.5),
		zap.Float32("ratio", 0.25),
	}

	buf, err := enc.EncodeEntry(entry, fields)
	require.NoError(t, err)
	out := buf.String()

	assert.Contains(t, out, "score=")
	assert.Contains(t, out, "98.5")
	assert.Contains(t, out, "0.25")
	assert.NotContains(t, out, "4636737291354636288", "float fields render as decimals, not raw bits")
}

func TestEncodeEntry_WarnAndError(t *testing.T) {
	enc := newMinimalEncoder()

	warn, err := enc.EncodeEntry(zapcore.Entry{Level: zapcore.WarnLevel, Time: time.Now(), Message: "slow scan"}, nil)
	require.NoError(t, err)
	assert.Contains(t, warn.String(), "WARN")

	errBuf, err := enc.EncodeEntry(zapcore.Entry{Level: zapcore.ErrorLevel, Time: time.Now(), Message: "state corrupt"}, nil)
	require.NoError(t, err)
	assert.Contains(t, errBuf.String(), "ERROR")
}

func TestInitialize(t *testing.T) {
	t.Run("console mode", func(t *testing.T) {
		require.NoError(t, Initialize(false))
		require.NotNil(t, Logger)
		assert.False(t, JSONOutput)
	})

	t.Run("json mode", func(t *testing.T) {
		require.NoError(t, Initialize(true))
		require.NotNil(t, Logger)
		assert.True(t, JSONOutput)
	})
}
