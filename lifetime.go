package di

import (
	"fmt"
	"strings"
)

// Lifetime specifies how resolved values are cached.
//
// Available lifetimes:
//   - [Transient] creates a new value every time it is resolved.
//   - [Scoped] creates the value once per [Container] that resolves it.
//   - [Singleton] creates the value once per root [Container].
type Lifetime uint8

const (
	// Transient specifies that a value is created for each request.
	//
	// This is the default lifetime.
	Transient Lifetime = iota

	// Scoped specifies that a value is created once per container that resolves it.
	// Child scopes that have not resolved it yet create their own.
	Scoped

	// Singleton specifies that a value is created once and cached by the root container.
	// All scopes sharing the root observe the same value.
	Singleton
)

// ParseLifetime parses the name of a lifetime. Case is ignored.
func ParseLifetime(s string) (Lifetime, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRANSIENT":
		return Transient, nil
	case "SCOPED":
		return Scoped, nil
	case "SINGLETON":
		return Singleton, nil
	default:
		return Transient, fmt.Errorf("unknown lifetime %q", s)
	}
}

func (l Lifetime) String() string {
	switch l {
	case Transient:
		return "TRANSIENT"
	case Scoped:
		return "SCOPED"
	case Singleton:
		return "SINGLETON"
	default:
		return fmt.Sprintf("Unknown Lifetime %d", l)
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (l Lifetime) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (l *Lifetime) UnmarshalText(text []byte) error {
	parsed, err := ParseLifetime(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// A Lifetime can be used directly as a [ResolverOption].
//
// Example:
//
//	r := di.AsFunction(NewRepository, di.Scoped)
func (l Lifetime) applyResolver(r *Resolver) error {
	if l > Singleton {
		return fmt.Errorf("with lifetime: %s", l)
	}

	switch r.kind {
	case KindValue, KindAlias:
		// Values and aliases are never cached.
	default:
		r.lifetime = l
	}
	return nil
}

var _ ResolverOption = Singleton
