package logging_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/annocalc-go/internal/application/logging"
	"github.com/andrescamacho/annocalc-go/internal/application/mediator"
)

type pingQuery struct{}

type capturingLogger struct {
	levels   []string
	messages []string
	metadata []map[string]interface{}
}

func (l *capturingLogger) Log(level, message string, metadata map[string]interface{}) {
	l.levels = append(l.levels, level)
	l.messages = append(l.messages, message)
	l.metadata = append(l.metadata, metadata)
}

func TestMiddleware_InjectsLoggerAndLogsCompletion(t *testing.T) {
	// Arrange
	logger := &capturingLogger{}
	var seen logging.Logger
	next := func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		seen = logging.LoggerFromContext(ctx)
		return "pong", nil
	}

	// Act
	response, err := logging.Middleware(logger)(context.Background(), &pingQuery{}, next)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "pong", response)
	assert.Same(t, logger, seen)
	assert.Equal(t, []string{logging.LevelInfo}, logger.levels)
	assert.Equal(t, "pingQuery", logger.metadata[0]["request"])
}

func TestMiddleware_LogsFailures(t *testing.T) {
	// Arrange
	logger := &capturingLogger{}
	next := func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return nil, errors.New("no building produces Bread")
	}

	// Act
	_, err := logging.Middleware(logger)(context.Background(), &pingQuery{}, next)

	// Assert
	require.Error(t, err)
	assert.Equal(t, []string{logging.LevelError}, logger.levels)
	assert.Equal(t, "no building produces Bread", logger.metadata[0]["error"])
}

func TestLoggerFromContext_FallsBackToNoOp(t *testing.T) {
	logger := logging.LoggerFromContext(context.Background())

	require.NotNil(t, logger)
	assert.NotPanics(t, func() { logger.Log(logging.LevelInfo, "ignored", nil) })
}
