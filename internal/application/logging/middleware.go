package logging

import (
	"context"
	"reflect"
	"strings"

	"github.com/andrescamacho/homestead-go/internal/application/mediator"
)

// RequestLoggingMiddleware logs the outcome of every command and query with the
// logger carried by the context
func RequestLoggingMiddleware() mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		resp, err := next(ctx, request)

		logger := LoggerFromContext(ctx)
		name := RequestName(request)
		if err != nil {
			logger.Log(LevelWarn, name+" rejected", map[string]interface{}{"error": err.Error()})
		} else {
			logger.Log(LevelDebug, name+" handled", nil)
		}
		return resp, err
	}
}

// RequestName turns "*commands.PlaceBuildingCommand" into "PlaceBuildingCommand"
func RequestName(request mediator.Request) string {
	if request == nil {
		return "UnknownRequest"
	}
	full := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	if i := strings.LastIndex(full, "."); i >= 0 {
		return full[i+1:]
	}
	return full
}
