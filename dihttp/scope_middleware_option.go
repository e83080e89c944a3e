package dihttp

import (
	di "github.com/lakutata/lakutata-sub001"
	"github.com/lakutata/lakutata-sub001/internal/errors"
)

// RequestScopeMiddlewareOption is used to configure the middleware when calling
// [NewRequestScopeMiddleware].
type RequestScopeMiddlewareOption interface {
	applyRequestScopeMiddleware(*requestScopeMiddleware) error
}

type requestScopeMiddlewareOption func(*requestScopeMiddleware) error

func (o requestScopeMiddlewareOption) applyRequestScopeMiddleware(m *requestScopeMiddleware) error {
	return o(m)
}

// WithScopeOptions sets the options to use when calling [di.Container.CreateScope] for each request.
func WithScopeOptions(opts ...di.ContainerOption) RequestScopeMiddlewareOption {
	return requestScopeMiddlewareOption(func(m *requestScopeMiddleware) error {
		m.opts = append(m.opts, opts...)
		return nil
	})
}

// WithRequestName sets the name the [*http.Request] is registered with in each request scope.
func WithRequestName(name string) RequestScopeMiddlewareOption {
	return requestScopeMiddlewareOption(func(m *requestScopeMiddleware) error {
		if name == "" {
			return errors.New("WithRequestName: name is empty")
		}
		m.requestName = name
		return nil
	})
}

// WithNewScopeErrorHandler sets the error handler for when there is an error creating a new scope.
func WithNewScopeErrorHandler(h NewScopeErrorHandler) RequestScopeMiddlewareOption {
	return requestScopeMiddlewareOption(func(m *requestScopeMiddleware) error {
		if h == nil {
			return errors.New("WithNewScopeErrorHandler: h is nil")
		}
		m.newScopeHandler = h
		return nil
	})
}

// WithScopeCloseErrorHandler sets the error handler for when there is an error disposing the scope.
func WithScopeCloseErrorHandler(h ScopeCloseErrorHandler) RequestScopeMiddlewareOption {
	return requestScopeMiddlewareOption(func(m *requestScopeMiddleware) error {
		if h == nil {
			return errors.New("WithScopeCloseErrorHandler: h is nil")
		}
		m.closeHandler = h
		return nil
	})
}
