package di

import (
	"context"

	"github.com/lakutata/lakutata-sub001/internal/errors"
)

// Resolve returns the value registered for name.
//
// The name is looked up in the container and then in its parents.
// [Singleton] values are cached in the root container and built by the container
// the name is registered with, [Scoped] values are cached in this container, and
// [Transient] values are created on every call.
//
// Errors are returned as a [*ResolutionError] holding the resolution path.
//
// Available options:
//   - [AllowUnregistered] returns a nil value instead of an error for unregistered names.
func (c *Container) Resolve(ctx context.Context, name string, opts ...ResolveOption) (any, error) {
	config := newResolveConfig(opts)
	return c.resolve(ctx, name, nil, config.allowUnregistered)
}

func (c *Container) resolve(
	ctx context.Context,
	name string,
	path *resolvePath,
	allowUnregistered bool,
) (any, error) {
	reg := c.lookup(name)

	if path.contains(name) {
		return nil, &ResolutionError{
			Name: name,
			Path: path.trail(name),
			Err:  ErrDependencyCycle,
		}
	}

	if reg == nil {
		if allowUnregistered {
			return nil, nil
		}
		return nil, &ResolutionError{
			Name: name,
			Path: path.trail(name),
			Err:  ErrNotRegistered,
		}
	}

	path = path.push(name)

	var val any
	var err error

	switch r := reg.resolver; {
	case r.kind == KindValue || r.kind == KindAlias || r.lifetime == Transient:
		val, err = c.resolveTransient(ctx, reg, path)
	case r.lifetime == Singleton:
		// Dependencies are resolved and tracked by the registering container.
		val, err = c.Root().resolveCached(ctx, reg.owner, reg, path)
	default:
		val, err = c.resolveCached(ctx, c, reg, path)
	}

	if err != nil {
		var resErr *ResolutionError
		if errors.As(err, &resErr) {
			return nil, err
		}
		return nil, &ResolutionError{
			Name: name,
			Path: path.names(),
			Err:  err,
		}
	}

	return val, nil
}

func (c *Container) resolveTransient(ctx context.Context, reg *registration, path *resolvePath) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r := reg.resolver
	val, err := r.construct(ctx, c, path)
	if err != nil {
		return nil, err
	}

	// Aliases are owned by the registration they point to. Constants are
	// disposed by the container that registered them.
	if r.kind != KindAlias && r.kind != KindValue {
		if teardown := r.teardown(val); teardown != nil {
			c.track(reg.name, val, teardown)
		}
	}

	return val, nil
}

// resolveCached returns the cached value of reg in c, constructing it in scope if needed.
// Concurrent callers wait for the first construction to finish.
func (c *Container) resolveCached(
	ctx context.Context,
	scope *Container,
	reg *registration,
	path *resolvePath,
) (any, error) {
	entry, loaded := c.cache.LoadOrCompute(reg, func() *cacheEntry {
		return newCacheEntry(reg)
	})

	if loaded {
		select {
		case <-entry.done:
			return entry.val, entry.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err := ctx.Err(); err != nil {
		c.forget(entry)
		entry.setResult(nil, err)
		return nil, err
	}

	val, err := reg.resolver.construct(ctx, scope, path)
	if err != nil {
		// Failed constructions are not cached.
		c.forget(entry)
	}
	entry.setResult(val, err)

	return val, err
}

// forget removes entry from the cache if it is still the current entry for its registration.
func (c *Container) forget(entry *cacheEntry) {
	c.cache.Compute(entry.reg, func(cur *cacheEntry, loaded bool) (*cacheEntry, bool) {
		if !loaded {
			return cur, true
		}
		return cur, cur == entry
	})
}
