package di

import (
	"context"
	"log/slog"
	"sync"
)

// Dispose disposes the container and the values it owns.
//
// Scopes created from the container are disposed first, concurrently. Then the
// cached values of the container and the constants registered with it are
// disposed concurrently, followed by the transient values it resolved.
// Values owned by a parent container are left alone.
//
// A value is disposed by the disposer of its resolver or, for functions and
// classes, by its Close method (see [Closer]). Each value is disposed at most
// once per call, and a constant at most once.
//
// Errors returned by disposers are logged and do not stop the disposal of other values.
// Dispose returns the context error if ctx ended before disposal finished.
//
// After Dispose the container is detached from its parent and its cache is empty.
// It can still be used to resolve new values.
func (c *Container) Dispose(ctx context.Context) error {
	var wg sync.WaitGroup
	c.children.Range(func(child *Container, _ struct{}) bool {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = child.Dispose(ctx)
		}()
		return true
	})
	wg.Wait()

	seen := make(disposedSet)

	var cached []trackedValue
	c.cache.Range(func(reg *registration, entry *cacheEntry) bool {
		if !entry.ready() {
			// Still being constructed by another goroutine.
			return true
		}
		c.forget(entry)

		if entry.err != nil {
			return true
		}
		if teardown := reg.resolver.teardown(entry.val); teardown != nil && seen.add(entry.val) {
			cached = append(cached, trackedValue{name: reg.name, val: entry.val, teardown: teardown})
		}
		return true
	})
	// Constants registered with this container. Each is disposed once, even
	// if the container is disposed again.
	c.registrations.Range(func(_ string, reg *registration) bool {
		r := reg.resolver
		if r.kind != KindValue {
			return true
		}
		teardown := r.teardown(r.target)
		if teardown == nil || !seen.add(r.target) || !reg.disposed.CompareAndSwap(false, true) {
			return true
		}
		cached = append(cached, trackedValue{name: reg.name, val: r.target, teardown: teardown})
		return true
	})
	c.runTeardowns(ctx, cached)

	c.transientsMu.Lock()
	tracked := c.transients
	c.transients = nil
	c.transientsMu.Unlock()

	transients := tracked[:0]
	for _, tv := range tracked {
		if seen.add(tv.val) {
			transients = append(transients, tv)
		}
	}
	c.runTeardowns(ctx, transients)

	if c.parent != nil {
		c.parent.children.Delete(c)
	}

	c.logger.DebugContext(ctx, "di: container disposed",
		slog.String("container", c.id.String()),
		slog.Int("values", len(cached)+len(transients)),
	)

	return ctx.Err()
}

func (c *Container) runTeardowns(ctx context.Context, values []trackedValue) {
	var wg sync.WaitGroup
	for _, tv := range values {
		wg.Add(1)
		go func() {
			defer wg.Done()

			err := tv.teardown(ctx, tv.val)
			if err != nil {
				c.logger.ErrorContext(ctx, "di: dispose failed",
					slog.String("container", c.id.String()),
					slog.String("name", tv.name),
					slog.Any("error", err),
				)
			}
		}()
	}
	wg.Wait()
}

// disposedSet records values that have been handed to a teardown.
// Values that cannot be compared are always disposed.
type disposedSet map[any]struct{}

func (s disposedSet) add(val any) bool {
	key, ok := identity(val)
	if !ok {
		return true
	}
	if _, exists := s[key]; exists {
		return false
	}
	s[key] = struct{}{}
	return true
}
