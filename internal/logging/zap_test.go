package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"
)

func TestZapLogger_ForwardsLevelsAndFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := NewZapLogger(zap.New(core))

	ctx := context.Background()
	logger.Info(ctx, "info msg", "k", "v")
	logger.Warn(ctx, "warn msg")
	logger.Error(ctx, "error msg")

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "info msg", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, "v", entries[0].ContextMap()["k"])
}

func TestZapLogger_WithAddsPermanentFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := NewZapLogger(zap.New(core)).With("component", "api")

	logger.Info(context.Background(), "hello")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "api", entries[0].ContextMap()["component"])
}
