package di

import (
	"strings"

	"github.com/lakutata/lakutata-sub001/internal/errors"
	"github.com/lakutata/lakutata-sub001/params"
)

// ResolverOption configures a [Resolver].
//
// Options can be passed to [AsFunction], [AsClass], [AsClassOf], [Resolver.With],
// [Container.Build] and the module loader.
//
// Available options:
//   - [Lifetime] values ([Transient], [Scoped], [Singleton]).
//   - [InjectionMode] values ([Proxy], [Classic]).
//   - [WithParams] and [WithParameters] set the parameter list for [Classic] injection.
//   - [ParamsFromSource] parses the parameter list from a signature.
//   - [WithInjector] sets a custom [Injector].
//   - [WithDisposer] and [WithCloseFunc] set how values are disposed.
//   - [WithCloser] and [IgnoreCloser] control closing values that implement [Closer].
type ResolverOption interface {
	applyResolver(*Resolver) error
}

type resolverOption func(*Resolver) error

func (o resolverOption) applyResolver(r *Resolver) error {
	return o(r)
}

// WithParams sets the parameter list used in [Classic] injection mode.
//
// A name ending in "?" is optional: it resolves to the zero value when it is not registered.
func WithParams(names ...string) ResolverOption {
	list := make([]Parameter, len(names))
	for i, name := range names {
		optional := strings.HasSuffix(name, "?")
		list[i] = Parameter{
			Name:     strings.TrimSuffix(name, "?"),
			Optional: optional,
		}
	}
	return WithParameters(list...)
}

// WithParameters sets the parameter list used in [Classic] injection mode.
func WithParameters(list ...Parameter) ResolverOption {
	return resolverOption(func(r *Resolver) error {
		for _, p := range list {
			if p.Name == "" {
				return errors.New("with params: empty parameter name")
			}
		}

		r.params = append([]Parameter(nil), list...)
		return nil
	})
}

// ParamsFromSource parses the parameter list from the source text of a
// function or class declaration, such as "function (db, logger = null) {}".
//
// Class sources are given from the derived class to the base class; the first
// declared constructor wins.
func ParamsFromSource(sources ...string) ResolverOption {
	return resolverOption(func(r *Resolver) error {
		list, err := params.ParseInherited(sources...)
		if err != nil {
			return errors.Wrap(err, "params from source")
		}

		r.params = list
		return nil
	})
}

// WithInjector sets an [Injector] whose values take precedence over
// registered names for each construction.
func WithInjector(fn Injector) ResolverOption {
	return resolverOption(func(r *Resolver) error {
		if fn == nil {
			return errors.New("with injector: fn is nil")
		}
		r.injector = fn
		return nil
	})
}

// WithDisposer sets the function called to dispose resolved values.
func WithDisposer(fn DisposeFunc) ResolverOption {
	return resolverOption(func(r *Resolver) error {
		if fn == nil {
			return errors.New("with disposer: fn is nil")
		}
		r.disposer = fn
		return nil
	})
}

// WithCloser makes the container close resolved values that implement [Closer],
// or a compatible Close method.
//
// This is the default for functions and classes. Values are not closed by default.
func WithCloser() ResolverOption {
	return resolverOption(func(r *Resolver) error {
		r.closer = closerEnabled
		return nil
	})
}

// IgnoreCloser is used when a value implementing [Closer] should not be closed
// by the container, because its lifecycle is managed elsewhere.
func IgnoreCloser() ResolverOption {
	return resolverOption(func(r *Resolver) error {
		r.closer = closerDisabled
		return nil
	})
}
