package di

import (
	"fmt"
	"strings"
)

// InjectionMode specifies how a function or class receives its dependencies.
type InjectionMode uint8

const (
	// Proxy passes a [Cradle] to the factory. Dependencies are resolved by
	// name when the factory asks for them.
	//
	// This is the default injection mode.
	Proxy InjectionMode = iota

	// Classic resolves one argument per declared parameter name, in order.
	// Parameters marked optional resolve to the zero value when unregistered.
	Classic
)

// ParseInjectionMode parses the name of an injection mode. Case is ignored.
func ParseInjectionMode(s string) (InjectionMode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PROXY":
		return Proxy, nil
	case "CLASSIC":
		return Classic, nil
	default:
		return Proxy, fmt.Errorf("unknown injection mode %q", s)
	}
}

func (m InjectionMode) String() string {
	switch m {
	case Proxy:
		return "PROXY"
	case Classic:
		return "CLASSIC"
	default:
		return fmt.Sprintf("Unknown InjectionMode %d", m)
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (m InjectionMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (m *InjectionMode) UnmarshalText(text []byte) error {
	parsed, err := ParseInjectionMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m InjectionMode) applyResolver(r *Resolver) error {
	if m > Classic {
		return fmt.Errorf("with injection mode: %s", m)
	}
	r.mode = m
	return nil
}

var _ ResolverOption = Proxy
