package di

import (
	"context"

	"github.com/lakutata/lakutata-sub001/internal/errors"
)

// Scope allows you to resolve registered names.
//
// Scope is implemented by *Container.
type Scope interface {
	// Has returns true if the name is registered in the Scope or one of its parents.
	Has(name string) bool

	// Resolve returns the value registered for name.
	//
	// Available options:
	// 	- [AllowUnregistered] returns a nil value instead of an error for unregistered names.
	Resolve(ctx context.Context, name string, opts ...ResolveOption) (any, error)
}

var _ Scope = (*Container)(nil)

// Resolve the value registered for name from the [Scope] as a T.
//
// An error is returned if the value is not assignable to T.
func Resolve[T any](ctx context.Context, s Scope, name string, opts ...ResolveOption) (T, error) {
	var val T
	anyVal, err := s.Resolve(ctx, name, opts...)
	if err != nil || anyVal == nil {
		return val, err
	}

	val, ok := anyVal.(T)
	if !ok {
		return val, errors.Errorf("di.Resolve %s: %T is not %T", name, anyVal, val)
	}
	return val, nil
}

// MustResolve resolves the value registered for name from the [Scope].
//
// If the value cannot be resolved, this function will panic.
func MustResolve[T any](ctx context.Context, s Scope, name string, opts ...ResolveOption) T {
	val, err := Resolve[T](ctx, s, name, opts...)
	if err != nil {
		panic(err)
	}
	return val
}
