package logger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/msomdec/lamenar/internal/logger"
)

func TestGet_DefaultIsUsable(t *testing.T) {
	require.NotNil(t, logger.Get(context.Background()))
	logger.Info(context.Background(), "no panic before setup")
}

func TestWithFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctx := logger.WithLogger(context.Background(), zap.New(core))
	ctx = logger.WithFields(ctx, zap.String("request_id", "abc"))

	logger.Info(ctx, "hello")
	logger.Debug(ctx, "dropped")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "hello", entries[0].Message)
	assert.Equal(t, "abc", entries[0].ContextMap()["request_id"])
}

func TestSetup(t *testing.T) {
	require.NoError(t, logger.Setup(logger.ProductionEnvironment))
	assert.False(t, logger.Get(context.Background()).Core().Enabled(zap.DebugLevel))

	require.NoError(t, logger.Setup(logger.DevelopmentEnvironment))
	assert.True(t, logger.Get(context.Background()).Core().Enabled(zap.DebugLevel))
}
