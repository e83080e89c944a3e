package dihttp

import (
	"log/slog"
	"net/http"

	di "github.com/lakutata/lakutata-sub001"
	"github.com/lakutata/lakutata-sub001/dicontext"
	"github.com/lakutata/lakutata-sub001/internal/errors"
)

// DefaultRequestName is the name the current [*http.Request] is registered with
// in each request scope.
const DefaultRequestName = "request"

// NewRequestScopeMiddleware creates a new child container scope for each request.
// The scope is disposed after the request has been processed.
//
// The current [*http.Request] is registered with the scope as a value named
// "request". It can be used as a dependency for scoped values.
//
// The scope is stored on the request context and can be accessed using
// [dicontext.Scope], [dicontext.Resolve], or [dicontext.MustResolve].
//
// Available options:
//   - [WithScopeOptions] sets [di.ContainerOption]s to use when creating each request scope.
//   - [WithRequestName] changes the name the request is registered with.
//   - [WithNewScopeErrorHandler] sets the error handler for when there is an error creating a new scope.
//   - [WithScopeCloseErrorHandler] sets the error handler for when there is an error disposing the scope.
func NewRequestScopeMiddleware(
	parent *di.Container,
	opts ...RequestScopeMiddlewareOption,
) (func(http.Handler) http.Handler, error) {
	if parent == nil {
		return nil, errors.New("dihttp.NewRequestScopeMiddleware: parent is nil")
	}

	mw := &requestScopeMiddleware{
		parent:          parent,
		requestName:     DefaultRequestName,
		newScopeHandler: defaultNewScopeErrorHandler,
		closeHandler:    defaultScopeCloseErrorHandler,
	}

	var errs errors.MultiError
	for _, opt := range opts {
		errs = errs.Append(opt.applyRequestScopeMiddleware(mw))
	}
	if err := errs.Wrapf("dihttp.NewRequestScopeMiddleware"); err != nil {
		return nil, err
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mw.serveHTTP(w, r, next)
		})
	}, nil
}

// NewScopeErrorHandler writes an error response to the client.
// It is called by the scope middleware when there is an error creating the request scope.
//
// The default handler logs the error to [slog.Default] and writes a 500 Internal Server Error response.
type NewScopeErrorHandler = func(w http.ResponseWriter, r *http.Request, err error)

func defaultNewScopeErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "error creating new HTTP request scope", "error", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// ScopeCloseErrorHandler handles errors when disposing the request scope
// after the request has completed.
//
// The default handler logs the error to [slog.Default].
type ScopeCloseErrorHandler = func(r *http.Request, err error)

func defaultScopeCloseErrorHandler(r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "error disposing HTTP request scope", "error", err)
}

type requestScopeMiddleware struct {
	parent          *di.Container
	opts            []di.ContainerOption
	requestName     string
	newScopeHandler NewScopeErrorHandler
	closeHandler    ScopeCloseErrorHandler
}

func (m *requestScopeMiddleware) serveHTTP(w http.ResponseWriter, r *http.Request, next http.Handler) {
	opts := make([]di.ContainerOption, 0, len(m.opts)+1)
	opts = append(opts, m.opts...)
	opts = append(opts, di.Registrations{
		m.requestName: di.AsValue(r),
	})

	scope, err := m.parent.CreateScope(opts...)
	if err != nil {
		m.newScopeHandler(w, r, err)
		return
	}

	ctx := dicontext.WithScope(r.Context(), scope)
	next.ServeHTTP(w, r.WithContext(ctx))

	err = scope.Dispose(ctx)
	if err != nil {
		m.closeHandler(r, err)
	}
}
