package logging

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/andrescamacho/annocalc-go/internal/application/mediator"
)

// Middleware logs every request dispatched through the mediator and makes the
// logger available to handlers through the context.
func Middleware(logger Logger) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if logger == nil {
			return next(ctx, request)
		}

		ctx = WithLogger(ctx, logger)
		name := requestName(request)
		start := time.Now()

		response, err := next(ctx, request)

		metadata := map[string]interface{}{
			"request":     name,
			"duration_ms": time.Since(start).Milliseconds(),
		}
		if err != nil {
			metadata["error"] = err.Error()
			logger.Log(LevelError, "Request failed", metadata)
			return response, err
		}

		logger.Log(LevelInfo, "Request completed", metadata)
		return response, nil
	}
}

func requestName(request mediator.Request) string {
	if request == nil {
		return "UnknownRequest"
	}
	fullName := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	parts := strings.Split(fullName, ".")
	return parts[len(parts)-1]
}
