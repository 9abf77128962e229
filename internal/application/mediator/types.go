package mediator

import (
	"context"
)

// Request is a world command or query, e.g. a place-building command or a
// balances query. Handlers are keyed by its concrete pointer type.
type Request interface{}

// Response is whatever the matching handler returns; callers type-assert it
type Response interface{}

type RequestHandler interface {
	Handle(ctx context.Context, request Request) (Response, error)
}

type HandlerFunc func(ctx context.Context, request Request) (Response, error)

// Middleware wraps every Send. The homestead binaries chain request logging
// and, in the daemon, Prometheus command timing.
type Middleware func(ctx context.Context, request Request, next HandlerFunc) (Response, error)
