package di

import (
	"context"
	"sync/atomic"

	"github.com/lakutata/lakutata-sub001/internal/errors"
)

// Cradle is passed to factories to resolve dependencies by name.
//
// In [Proxy] injection mode it is the only way a function or [Constructor] receives
// its dependencies. Names are resolved lazily, when Resolve is called.
//
// A Cradle can be stored and used after the factory has returned.
type Cradle interface {
	// Context returns the context of the resolution that created the value.
	Context() context.Context

	// Has returns true if the name can be resolved.
	Has(name string) bool

	// Resolve returns the value registered for name.
	// Values from an [Injector] take precedence over registered names.
	Resolve(name string) (any, error)
}

type cradle struct {
	inv  *invocation
	done atomic.Bool
}

func newCradle(inv *invocation) *cradle {
	return &cradle{inv: inv}
}

// release detaches the cradle from the resolution that created it.
// Later calls start a new resolution path.
func (c *cradle) release() {
	c.done.Store(true)
}

func (c *cradle) Context() context.Context {
	if c.done.Load() {
		return context.WithoutCancel(c.inv.ctx)
	}
	return c.inv.ctx
}

func (c *cradle) Has(name string) bool {
	if _, ok := c.inv.overrides[name]; ok {
		return true
	}
	return c.inv.scope.Has(name)
}

func (c *cradle) Resolve(name string) (any, error) {
	if val, ok := c.inv.overrides[name]; ok {
		return val, nil
	}

	if c.done.Load() {
		return c.inv.scope.resolve(c.Context(), name, nil, false)
	}
	return c.inv.scope.resolve(c.inv.ctx, name, c.inv.path, false)
}

var _ Cradle = (*cradle)(nil)

// Get resolves name from the [Cradle] as a T.
func Get[T any](c Cradle, name string) (T, error) {
	var val T
	anyVal, err := c.Resolve(name)
	if err != nil || anyVal == nil {
		return val, err
	}

	val, ok := anyVal.(T)
	if !ok {
		return val, errors.Errorf("di.Get %s: %T is not %T", name, anyVal, val)
	}
	return val, nil
}

// MustGet resolves name from the [Cradle] as a T.
//
// If the value cannot be resolved, this function will panic.
func MustGet[T any](c Cradle, name string) T {
	val, err := Get[T](c, name)
	if err != nil {
		panic(err)
	}
	return val
}
