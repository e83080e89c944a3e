package di

import (
	"context"
	"reflect"

	"github.com/lakutata/lakutata-sub001/internal/errors"
)

// Build constructs a value with dependencies resolved from the container,
// without registering or caching it.
//
// The target can be a [Resolver], a [Class] or a function:
//
//	handler, err := c.Build(ctx, di.ClassOf[Handler](), di.Classic)
//	report, err := c.Build(ctx, NewReport, di.Classic, di.WithParams("db", "clock"))
//
// The options are applied to the resolver created for the target.
// Built values are owned by the caller and are not disposed with the container.
func (c *Container) Build(ctx context.Context, target any, opts ...ResolverOption) (any, error) {
	var r Resolver
	switch t := target.(type) {
	case Resolver:
		r = t.With(opts...)
	case Class:
		r = AsClassOf(t, opts...)
	default:
		if target == nil || reflect.TypeOf(target).Kind() != reflect.Func {
			return nil, &TypeError{
				Op:     "di.Container.Build",
				Target: target,
				Reason: "target must be a function, a class or a resolver",
			}
		}
		r = AsFunction(target, opts...)
	}

	if err := r.Err(); err != nil {
		return nil, errors.Wrapf(err, "di.Container.Build %s", r)
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrapf(err, "di.Container.Build %s", r)
	}

	val, err := r.construct(ctx, c, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "di.Container.Build %s", r)
	}

	return val, nil
}
