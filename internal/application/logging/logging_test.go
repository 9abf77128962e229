package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/homestead-go/internal/application/logging"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
)

type captureLogger struct {
	levels   []string
	messages []string
}

func (c *captureLogger) Log(level, message string, metadata map[string]interface{}) {
	c.levels = append(c.levels, level)
	c.messages = append(c.messages, message)
}

func TestWriterLogger_JSONWithLevelFilter(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	logger := logging.NewWriterLogger(&buf, "json", "info")

	// Act
	logger.Log(logging.LevelDebug, "hidden", nil)
	logger.Log(logging.LevelWarn, "storage full", map[string]interface{}{"building_id": "mill-1"})

	// Assert
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "storage full", entry["msg"])
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "mill-1", entry["building_id"])
}

func TestLoggerFromContext_FallsBackToNoOp(t *testing.T) {
	assert.NotPanics(t, func() {
		logging.LoggerFromContext(context.Background()).Log(logging.LevelInfo, "ignored", nil)
	})

	capture := &captureLogger{}
	ctx := logging.WithLogger(context.Background(), logging.Tee{capture, nil})
	logging.LoggerFromContext(ctx).Log(logging.LevelInfo, "kept", nil)
	assert.Equal(t, []string{"kept"}, capture.messages)
}

type failingQuery struct{}

func TestRequestLoggingMiddleware(t *testing.T) {
	// Arrange
	capture := &captureLogger{}
	ctx := logging.WithLogger(context.Background(), capture)
	mw := logging.RequestLoggingMiddleware()

	// Act
	_, err := mw(ctx, &failingQuery{}, func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return nil, errors.New("nope")
	})

	// Assert
	assert.Error(t, err)
	assert.Equal(t, []string{"failingQuery rejected"}, capture.messages)
	assert.Equal(t, []string{logging.LevelWarn}, capture.levels)
}
