package di

import (
	"context"
	"fmt"
	"reflect"
	"slices"

	"github.com/lakutata/lakutata-sub001/internal/errors"
	"github.com/lakutata/lakutata-sub001/params"
)

// Parameter is a named dependency of a function or class.
type Parameter = params.Parameter

// ResolverKind identifies what a [Resolver] produces values from.
type ResolverKind uint8

const (
	KindValue ResolverKind = iota
	KindFunction
	KindClass
	KindAlias
)

func (k ResolverKind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindFunction:
		return "function"
	case KindClass:
		return "class"
	case KindAlias:
		return "alias"
	default:
		return fmt.Sprintf("Unknown ResolverKind %d", k)
	}
}

// Injector returns values that take precedence over registered names for a
// single construction. It receives a [Cradle] for the resolving container.
type Injector func(c Cradle) (map[string]any, error)

// DisposeFunc tears down a value when the container that owns it is disposed.
type DisposeFunc func(ctx context.Context, val any) error

// Resolver describes how to produce the value of a registration.
//
// Resolvers are immutable. Every mutator returns a copy with the change applied,
// so a Resolver that has already been registered is never affected.
//
// Create resolvers with [AsValue], [AsFunction], [AsClass], [AsClassOf] or [AliasTo].
type Resolver struct {
	kind     ResolverKind
	target   any
	fn       reflect.Value
	class    reflect.Type
	fields   []classField
	alias    string
	lifetime Lifetime
	mode     InjectionMode
	params   []Parameter
	injector Injector
	disposer DisposeFunc
	closer   closerPolicy
	err      error
}

// Kind returns what the resolver produces values from.
func (r Resolver) Kind() ResolverKind {
	return r.kind
}

// Lifetime returns the lifetime of resolved values.
func (r Resolver) Lifetime() Lifetime {
	return r.lifetime
}

// InjectionMode returns how dependencies are passed to the factory.
func (r Resolver) InjectionMode() InjectionMode {
	return r.mode
}

// Params returns the parameter names used in [Classic] injection mode.
func (r Resolver) Params() []Parameter {
	return slices.Clone(r.params)
}

// Err returns an error if the resolver cannot be used.
//
// Errors are collected while the resolver is created and configured and reported
// when it is registered or built.
func (r Resolver) Err() error {
	if r.err != nil {
		return r.err
	}
	return r.validate()
}

// With returns a copy of the resolver with the options applied.
func (r Resolver) With(opts ...ResolverOption) Resolver {
	// The params slice is shared with the receiver.
	// Options replace it rather than modify it in place.
	var errs errors.MultiError
	errs = errs.Append(r.err)

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		errs = errs.Append(opt.applyResolver(&r))
	}

	r.err = errs.Join()
	return r
}

// Singleton returns a copy of the resolver with the [Singleton] lifetime.
func (r Resolver) Singleton() Resolver {
	return r.With(Singleton)
}

// Scoped returns a copy of the resolver with the [Scoped] lifetime.
func (r Resolver) Scoped() Resolver {
	return r.With(Scoped)
}

// Transient returns a copy of the resolver with the [Transient] lifetime.
func (r Resolver) Transient() Resolver {
	return r.With(Transient)
}

// WithLifetime returns a copy of the resolver with the given lifetime.
func (r Resolver) WithLifetime(l Lifetime) Resolver {
	return r.With(l)
}

// Proxy returns a copy of the resolver using [Proxy] injection.
func (r Resolver) Proxy() Resolver {
	return r.With(Proxy)
}

// Classic returns a copy of the resolver using [Classic] injection.
//
// Names set the parameter list. A name ending in "?" is optional.
// Without names, the parameters already known to the resolver are kept.
func (r Resolver) Classic(names ...string) Resolver {
	if len(names) == 0 {
		return r.With(Classic)
	}
	return r.With(Classic, WithParams(names...))
}

// Inject returns a copy of the resolver with a custom injector.
func (r Resolver) Inject(fn Injector) Resolver {
	return r.With(WithInjector(fn))
}

// Disposer returns a copy of the resolver that calls fn to dispose resolved values.
func (r Resolver) Disposer(fn DisposeFunc) Resolver {
	return r.With(WithDisposer(fn))
}

// IgnoreCloser returns a copy of the resolver whose values are not closed
// by the container, even if they implement [Closer].
func (r Resolver) IgnoreCloser() Resolver {
	return r.With(IgnoreCloser())
}

func (r Resolver) String() string {
	switch r.kind {
	case KindValue:
		return fmt.Sprintf("value %T", r.target)
	case KindFunction:
		return fmt.Sprintf("function %T", r.target)
	case KindClass:
		return fmt.Sprintf("class %v", r.target)
	case KindAlias:
		return fmt.Sprintf("alias %s", r.alias)
	default:
		return r.kind.String()
	}
}

func (r Resolver) validate() error {
	switch r.kind {
	case KindFunction:
		return r.validateFunction()
	case KindClass:
		return r.validateClass()
	case KindAlias:
		if r.alias == "" {
			return errors.New("alias name is empty")
		}
	}
	return nil
}

// construct creates a new value. Caching is handled by the container.
func (r Resolver) construct(ctx context.Context, scope *Container, path *resolvePath) (any, error) {
	inv := &invocation{
		ctx:   ctx,
		scope: scope,
		path:  path,
	}
	c := newCradle(inv)
	defer c.release()

	if r.injector != nil {
		overrides, err := r.injector(c)
		if err != nil {
			return nil, errors.Wrap(err, "injector")
		}
		inv.overrides = overrides
	}

	switch r.kind {
	case KindValue:
		return r.target, nil
	case KindFunction:
		return r.callFunction(inv, c)
	case KindClass:
		return r.newClass(inv, c)
	case KindAlias:
		return scope.resolve(ctx, r.alias, path, false)
	default:
		return nil, errors.Errorf("unsupported resolver kind %s", r.kind)
	}
}

// invocation holds the state of a single construction.
type invocation struct {
	ctx       context.Context
	scope     *Container
	path      *resolvePath
	overrides map[string]any
}

func (inv *invocation) resolveParam(p Parameter) (any, error) {
	if val, ok := inv.overrides[p.Name]; ok {
		return val, nil
	}
	return inv.scope.resolve(inv.ctx, p.Name, inv.path, p.Optional)
}

// assignable converts a resolved value to a value of type t.
func assignable(t reflect.Type, name string, val any) (reflect.Value, error) {
	if val == nil {
		return reflect.Zero(t), nil
	}

	v := reflect.ValueOf(val)
	if !v.Type().AssignableTo(t) {
		return reflect.Value{}, errors.Errorf("parameter %s: %s is not assignable to %s", name, v.Type(), t)
	}
	return v, nil
}
