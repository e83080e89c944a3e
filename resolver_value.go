package di

// AsValue creates a [Resolver] that always returns v.
//
// Lifetimes do not apply to values. Values are not closed when the container is
// disposed unless [WithCloser], [WithCloseFunc] or [WithDisposer] is used. A value
// is disposed once, by the container it is registered with.
func AsValue(v any, opts ...ResolverOption) Resolver {
	r := Resolver{
		kind:   KindValue,
		target: v,
	}
	return r.With(opts...)
}
