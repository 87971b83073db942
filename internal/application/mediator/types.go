package mediator

import (
	"context"
)

// Request is a query sent through the mediator, such as CalculateChainQuery
// or CompareScenariosQuery
type Request interface{}

// Response is what a handler returns for its request; callers type-assert it
// to the concrete result (for example *CalculateChainResponse)
type Response interface{}

// RequestHandler resolves one request type
type RequestHandler interface {
	Handle(ctx context.Context, request Request) (Response, error)
}

// HandlerFunc adapts a function to the handler chain
type HandlerFunc func(ctx context.Context, request Request) (Response, error)

// Middleware wraps every dispatched request. Calculation logging and the
// Prometheus query metrics are both installed this way.
type Middleware func(ctx context.Context, request Request, next HandlerFunc) (Response, error)
