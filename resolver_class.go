package di

import (
	"reflect"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/lakutata/lakutata-sub001/internal/errors"
)

// Class identifies a struct type that the container constructs.
//
// Use [ClassOf] to create one.
type Class struct {
	t reflect.Type
}

// ClassOf returns the [Class] for the struct type T.
func ClassOf[T any]() Class {
	return Class{t: reflect.TypeFor[T]()}
}

// Type returns the struct type.
func (c Class) Type() reflect.Type {
	return c.t
}

func (c Class) String() string {
	if c.t == nil {
		return "<nil>"
	}
	return c.t.String()
}

// Constructor is implemented by classes that initialize themselves from a [Cradle].
//
// Construct is called on the newly allocated value after fields were injected.
// A method promoted from an embedded struct is used when the class does not
// declare its own.
type Constructor interface {
	Construct(c Cradle) error
}

// AsClass creates a [Resolver] that constructs *T.
//
// In [Classic] injection mode, fields tagged with `di:"name"` are resolved in
// declaration order. Add ",optional" to resolve an unregistered name to the
// zero value. An empty name uses the field name in lower camel case.
// When T has no tagged fields, the fields of its first embedded struct are
// used, recursively.
//
//	type UserService struct {
//		Repo   *Repository  `di:"repo"`
//		Logger *slog.Logger `di:"logger,optional"`
//	}
//
//	di.AsClass[UserService](di.Classic)
//
// In [Proxy] injection mode (the default), *T must implement [Constructor]
// to receive its dependencies.
func AsClass[T any](opts ...ResolverOption) Resolver {
	return AsClassOf(ClassOf[T](), opts...)
}

// AsClassOf creates a [Resolver] that constructs a pointer to the class type.
//
// See [AsClass].
func AsClassOf(class Class, opts ...ResolverOption) Resolver {
	r := Resolver{
		kind:   KindClass,
		target: class,
	}

	if class.t == nil || class.t.Kind() != reflect.Struct {
		r.err = &TypeError{Op: "di.AsClass", Target: class.t, Reason: "target is not a struct type"}
		return r
	}

	fields, err := classFields(class.t, nil)
	if err != nil {
		r.err = errors.Wrapf(err, "di.AsClass %s", class)
		return r
	}

	r.class = class.t
	r.fields = fields
	r.params = make([]Parameter, len(fields))
	for i, f := range fields {
		r.params[i] = f.param
	}

	return r.With(opts...)
}

type classField struct {
	index []int
	param Parameter
}

// classFields returns the tagged fields of t. When t declares none, the first
// embedded struct declaring tagged fields is used instead.
func classFields(t reflect.Type, index []int) ([]classField, error) {
	var fields []classField

	for i := range t.NumField() {
		f := t.Field(i)

		tag, ok := f.Tag.Lookup("di")
		if !ok || tag == "-" {
			continue
		}

		if !f.IsExported() {
			return nil, errors.Errorf("field %s: di tag on unexported field", f.Name)
		}

		name, opt, _ := strings.Cut(tag, ",")
		if name == "" {
			name = strcase.ToLowerCamel(f.Name)
		}

		fields = append(fields, classField{
			index: append(append([]int(nil), index...), i),
			param: Parameter{Name: name, Optional: opt == "optional"},
		})
	}

	if len(fields) > 0 {
		return fields, nil
	}

	for i := range t.NumField() {
		f := t.Field(i)
		if !f.Anonymous || f.Type.Kind() != reflect.Struct {
			continue
		}

		inherited, err := classFields(f.Type, append(append([]int(nil), index...), i))
		if err != nil {
			return nil, err
		}
		if len(inherited) > 0 {
			return inherited, nil
		}
	}

	return nil, nil
}

func (r Resolver) validateClass() error {
	implementsCtor := reflect.PointerTo(r.class).Implements(typeConstructor)

	switch r.mode {
	case Proxy:
		if len(r.fields) > 0 && !implementsCtor {
			return errors.Errorf("proxy injection: %s has di fields but does not implement di.Constructor", r.class)
		}
	case Classic:
		if len(r.params) != len(r.fields) {
			return errors.Errorf("classic injection: %s has %d di fields, got %d names", r.class, len(r.fields), len(r.params))
		}
	}

	return nil
}

func (r Resolver) newClass(inv *invocation, c *cradle) (any, error) {
	ptr := reflect.New(r.class)

	if r.mode == Classic {
		for i, f := range r.fields {
			p := r.params[i]

			val, err := inv.resolveParam(p)
			if err != nil {
				return nil, err
			}

			field := ptr.Elem().FieldByIndex(f.index)
			v, err := assignable(field.Type(), p.Name, val)
			if err != nil {
				return nil, err
			}
			field.Set(v)
		}
	}

	if ctor, ok := ptr.Interface().(Constructor); ok {
		if err := ctor.Construct(c); err != nil {
			return nil, err
		}
	}

	return ptr.Interface(), nil
}
