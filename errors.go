package di

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/lakutata/lakutata-sub001/internal/errors"
)

var (
	// ErrNotRegistered is returned when a name is not registered anywhere in the scope chain.
	ErrNotRegistered = errors.New("not registered")

	// ErrDependencyCycle is returned when a name is requested while it is already being resolved.
	ErrDependencyCycle = errors.New("dependency cycle detected")

	// ErrInvalidTarget is returned when a resolver is created from something
	// that is not a function, a class or a resolver.
	ErrInvalidTarget = errors.New("invalid target")
)

// ResolutionError is returned when a name cannot be resolved.
//
// Path holds the names that were being resolved, in call order, ending with
// the name that failed. For a dependency cycle the repeated name appears twice.
type ResolutionError struct {
	Name string
	Path []string
	Err  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve %s: %v", strings.Join(e.Path, " -> "), e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// TypeError is returned when a resolver factory or [Container.Build] gets
// a target of the wrong kind.
type TypeError struct {
	Op     string
	Target any
	Reason string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Op, describeTarget(e.Target), e.Reason)
}

func describeTarget(target any) string {
	switch t := target.(type) {
	case nil:
		return "<nil>"
	case reflect.Type:
		return t.String()
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%T", target)
	}
}

func (e *TypeError) Unwrap() error {
	return ErrInvalidTarget
}

// RegistrationError is returned when a registration is rejected.
type RegistrationError struct {
	Name string
	Err  error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("register %q: %v", e.Name, e.Err)
}

func (e *RegistrationError) Unwrap() error {
	return e.Err
}
