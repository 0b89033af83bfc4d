package oteladapters_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/noop"

	"github.com/AntonStoeckl/mixter-eventsourcing-go/eventstore/oteladapters"
	"github.com/AntonStoeckl/mixter-eventsourcing-go/mixter/eventbus"
	"github.com/AntonStoeckl/mixter-eventsourcing-go/mixter/shared/core"
)

func Test_SlogBridgeLogger_AllLevels(t *testing.T) {
	// arrange
	var buf bytes.Buffer
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(
		slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	ctx := context.Background()

	// act
	logger.DebugContext(ctx, "debug message")
	logger.InfoContext(ctx, "info message")
	logger.WarnContext(ctx, "warn message")
	logger.ErrorContext(ctx, "error message")

	// assert
	output := buf.String()
	assert.Contains(t, output, `"level":"DEBUG","msg":"debug message"`)
	assert.Contains(t, output, `"level":"INFO","msg":"info message"`)
	assert.Contains(t, output, `"level":"WARN","msg":"warn message"`)
	assert.Contains(t, output, `"level":"ERROR","msg":"error message"`)
}

func Test_SlogBridgeLogger_WiredIntoBus(t *testing.T) {
	// arrange
	var buf bytes.Buffer
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(slog.NewJSONHandler(&buf, nil))

	bus, err := eventbus.New(eventbus.WithContextualLogger(logger))
	require.NoError(t, err)

	// act
	require.NoError(t, bus.Publish(context.Background(), core.BuildMessageQuacked("Hello")))

	// assert
	output := buf.String()
	assert.Contains(t, output, `"msg":"event published"`)
	assert.Contains(t, output, `"event_type":"MessageQuacked"`)
	assert.Contains(t, output, `"sequence_number":1`)
}

func Test_NewSlogBridgeLogger_UsesGlobalProvider(t *testing.T) {
	// arrange
	logger := oteladapters.NewSlogBridgeLogger("test")

	// act + assert
	assert.NotPanics(t, func() {
		logger.InfoContext(context.Background(), "info message", "key", "value")
	})
}

func Test_OTelLogger_DoesNotPanic(t *testing.T) {
	// arrange
	logger := oteladapters.NewOTelLogger(noop.NewLoggerProvider().Logger("test"))
	ctx := context.Background()

	// act + assert
	assert.NotPanics(t, func() {
		logger.DebugContext(ctx, "debug message", "key", "value")
		logger.InfoContext(ctx, "info message", "count", 3)
		logger.WarnContext(ctx, "warn message", "key")
		logger.ErrorContext(ctx, "error message")
	})
}

func Test_KeyValuesFrom(t *testing.T) {
	// act
	keyValues := oteladapters.KeyValuesFrom([]any{
		"event_type", "MessageQuacked",
		"event_count", 2,
		"duration_ms", 0.5,
		"idempotent", true,
		"error", errors.New("boom"),
		42, "non-string key is skipped",
		"dangling",
	})

	// assert
	expected := []log.KeyValue{
		log.String("event_type", "MessageQuacked"),
		log.Int("event_count", 2),
		log.Float64("duration_ms", 0.5),
		log.Bool("idempotent", true),
		log.String("error", "boom"),
	}
	require.Len(t, keyValues, len(expected))
	for i := range expected {
		assert.True(t, expected[i].Equal(keyValues[i]), "%s: expected %s, got %s", expected[i].Key, expected[i].Value, keyValues[i].Value)
	}
}
