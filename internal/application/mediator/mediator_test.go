package mediator_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/annocalc-go/internal/application/mediator"
)

type echoQuery struct {
	Value string
}

type echoHandler struct{}

func (h *echoHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	return request.(*echoQuery).Value, nil
}

func TestMediator_SendDispatchesToRegisteredHandler(t *testing.T) {
	// Arrange
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*echoQuery](m, &echoHandler{}))

	// Act
	response, err := m.Send(context.Background(), &echoQuery{Value: "Bread"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Bread", response)
}

func TestMediator_Errors(t *testing.T) {
	m := mediator.NewMediator()

	_, err := m.Send(context.Background(), nil)
	assert.EqualError(t, err, "request cannot be nil")

	_, err = m.Send(context.Background(), &echoQuery{})
	assert.Contains(t, err.Error(), "no handler registered")

	assert.Error(t, m.Register(nil, &echoHandler{}))
	assert.Error(t, m.Register(reflect.TypeOf(&echoQuery{}), nil))

	require.NoError(t, mediator.RegisterHandler[*echoQuery](m, &echoHandler{}))
	assert.Error(t, mediator.RegisterHandler[*echoQuery](m, &echoHandler{}), "duplicate registration")
}

func TestMediator_MiddlewareOrder(t *testing.T) {
	// Arrange
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*echoQuery](m, &echoHandler{}))

	var calls []string
	for _, name := range []string{"outer", "inner"} {
		name := name
		m.RegisterMiddleware(func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
			calls = append(calls, name+":before")
			response, err := next(ctx, request)
			calls = append(calls, name+":after")
			return response, err
		})
	}

	// Act
	_, err := m.Send(context.Background(), &echoQuery{Value: "x"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"outer:before", "inner:before", "inner:after", "outer:after"}, calls)
}
