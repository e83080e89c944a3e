package di

import (
	"reflect"

	"github.com/lakutata/lakutata-sub001/internal/errors"
)

// AsFunction creates a [Resolver] that calls fn to create values.
//
// The function must return T or (T, error). A non-nil error fails the resolution.
//
// In [Proxy] injection mode (the default), every parameter must be a [Cradle]
// or a [context.Context]:
//
//	di.AsFunction(func(c di.Cradle) (*Repository, error) {
//		db, err := di.Get[*sql.DB](c, "db")
//		...
//	})
//
// In [Classic] injection mode, every other parameter consumes one name of the
// parameter list, in order:
//
//	di.AsFunction(NewRepository, di.Classic, di.WithParams("db", "logger?"))
//
// The default lifetime is [Transient]. Values implementing [Closer] are closed
// when the container that owns them is disposed.
func AsFunction(fn any, opts ...ResolverOption) Resolver {
	r := Resolver{
		kind:   KindFunction,
		target: fn,
	}

	if fn == nil {
		r.err = &TypeError{Op: "di.AsFunction", Target: fn, Reason: "target is nil"}
		return r
	}

	fnVal := reflect.ValueOf(fn)
	fnType := fnVal.Type()
	if fnType.Kind() != reflect.Func {
		r.err = &TypeError{Op: "di.AsFunction", Target: fn, Reason: "target is not a function"}
		return r
	}

	switch {
	case fnType.NumOut() == 1:
	case fnType.NumOut() == 2 && fnType.Out(1) == typeError:
	default:
		r.err = errors.New("function must return T or (T, error)")
		return r
	}

	if fnType.IsVariadic() {
		r.err = errors.New("variadic functions are not supported")
		return r
	}

	r.fn = fnVal
	return r.With(opts...)
}

// injectable reports whether the parameter type is provided by the container
// itself rather than resolved by name.
func injectable(t reflect.Type) bool {
	return t == typeContext || t == typeCradle
}

func (r Resolver) validateFunction() error {
	fnType := r.fn.Type()

	named := 0
	for i := range fnType.NumIn() {
		if !injectable(fnType.In(i)) {
			named++
		}
	}

	switch r.mode {
	case Proxy:
		if named > 0 {
			return errors.Errorf("proxy injection: parameters must be di.Cradle or context.Context, got %s", fnType)
		}
	case Classic:
		if named != len(r.params) {
			return errors.Errorf("classic injection: function has %d parameters, got %d names", named, len(r.params))
		}
	}

	return nil
}

func (r Resolver) callFunction(inv *invocation, c *cradle) (any, error) {
	fnType := r.fn.Type()
	in := make([]reflect.Value, fnType.NumIn())

	next := 0
	for i := range fnType.NumIn() {
		argType := fnType.In(i)

		switch argType {
		case typeContext:
			in[i] = safeReflectValue(argType, inv.ctx)

		case typeCradle:
			in[i] = reflect.ValueOf(c)

		default:
			p := r.params[next]
			next++

			val, err := inv.resolveParam(p)
			if err != nil {
				return nil, err
			}

			in[i], err = assignable(argType, p.Name, val)
			if err != nil {
				return nil, err
			}
		}
	}

	out := r.fn.Call(in)

	val := out[0].Interface()
	if len(out) == 2 {
		if err, _ := out[1].Interface().(error); err != nil {
			return nil, err
		}
	}

	return val, nil
}
