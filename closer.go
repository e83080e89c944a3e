package di

import (
	"context"
	"reflect"

	"github.com/lakutata/lakutata-sub001/internal/errors"
)

// Closer is used to close a value when the [Container] that owns it is disposed.
//
// If a value resolved from a function or class implements Closer, or one of the
// other compatible function signatures, the Close function is called when the
// owning container is disposed.
//
// Any of these Close method signatures are supported:
//
//	Close(context.Context) error
//	Close(context.Context)
//	Close() error
//	Close()
//
// See related options:
//   - [IgnoreCloser]
//   - [WithCloser]
//   - [WithCloseFunc]
//   - [WithDisposer]
type Closer interface {
	Close(ctx context.Context) error
}

type closerPolicy uint8

const (
	closerDefault closerPolicy = iota
	closerEnabled
	closerDisabled
)

// WithCloseFunc sets a typed function to dispose resolved values.
//
// This is useful if a value has a method called Shutdown or Stop instead of Close:
//
//	di.AsFunction(NewServer, di.WithCloseFunc(func(ctx context.Context, s *http.Server) error {
//		return s.Shutdown(ctx)
//	}))
//
// The option returns an error if the resolved type is not assignable to T.
func WithCloseFunc[T any](f func(context.Context, T) error) ResolverOption {
	return resolverOption(func(r *Resolver) error {
		if f == nil {
			return errors.New("with close func: f is nil")
		}

		closerType := reflect.TypeFor[T]()
		if t := r.valueType(); t != nil && !t.AssignableTo(closerType) && t.Kind() != reflect.Interface {
			return errors.Errorf("with close func: type %s is not assignable to %s", t, closerType)
		}

		r.disposer = func(ctx context.Context, val any) error {
			typed, ok := val.(T)
			if !ok {
				return errors.Errorf("close func: %T is not %s", val, closerType)
			}
			return f(ctx, typed)
		}
		return nil
	})
}

// valueType returns the static type of resolved values, if known.
func (r Resolver) valueType() reflect.Type {
	switch r.kind {
	case KindValue:
		if r.target == nil {
			return nil
		}
		return reflect.TypeOf(r.target)
	case KindFunction:
		if !r.fn.IsValid() {
			return nil
		}
		return r.fn.Type().Out(0)
	case KindClass:
		if r.class == nil {
			return nil
		}
		return reflect.PointerTo(r.class)
	default:
		return nil
	}
}

// teardown returns the function that disposes val, or nil.
func (r Resolver) teardown(val any) DisposeFunc {
	if isNil(val) {
		return nil
	}

	if r.disposer != nil {
		return r.disposer
	}

	switch r.closer {
	case closerDisabled:
		return nil
	case closerDefault:
		if r.kind != KindFunction && r.kind != KindClass {
			return nil
		}
	}

	closer := getCloser(val)
	if closer == nil {
		return nil
	}
	return func(ctx context.Context, _ any) error {
		return closer.Close(ctx)
	}
}

// getCloser returns the Closer interface if the given value implements it,
// or any of the compatible Close function signatures.
func getCloser(val any) Closer {
	switch c := val.(type) {
	case Closer:
		return c
	case closerWithContextNoError:
		return closerWithContextNoErrorWrapper{c}
	case closerNoContextWithError:
		return closerNoContextWithErrorWrapper{c}
	case closerNoContextNoError:
		return closerNoContextNoErrorWrapper{c}

	default:
		return nil
	}
}

type closerWithContextNoError interface {
	Close(ctx context.Context)
}

type closerNoContextWithError interface {
	Close() error
}

type closerNoContextNoError interface {
	Close()
}

type closerNoContextNoErrorWrapper struct {
	c closerNoContextNoError
}

func (w closerNoContextNoErrorWrapper) Close(context.Context) error {
	w.c.Close()
	return nil
}

type closerWithContextNoErrorWrapper struct {
	c closerWithContextNoError
}

func (w closerWithContextNoErrorWrapper) Close(ctx context.Context) error {
	w.c.Close(ctx)
	return nil
}

type closerNoContextWithErrorWrapper struct {
	c closerNoContextWithError
}

func (w closerNoContextWithErrorWrapper) Close(context.Context) error {
	return w.c.Close()
}
