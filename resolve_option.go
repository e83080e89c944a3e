package di

// ResolveOption can be used when calling [Container.Resolve], [Resolve] or [MustResolve].
//
// Available options:
//   - [AllowUnregistered]
type ResolveOption interface {
	applyResolveConfig(*resolveConfig)
}

type resolveConfig struct {
	allowUnregistered bool
}

func newResolveConfig(opts []ResolveOption) resolveConfig {
	var config resolveConfig
	for _, opt := range opts {
		if opt != nil {
			opt.applyResolveConfig(&config)
		}
	}
	return config
}

type resolveOption func(*resolveConfig)

func (o resolveOption) applyResolveConfig(c *resolveConfig) {
	o(c)
}

// AllowUnregistered makes resolving an unregistered name return a nil value
// instead of an error.
//
// Dependency cycles are still reported as errors.
func AllowUnregistered() ResolveOption {
	return resolveOption(func(c *resolveConfig) {
		c.allowUnregistered = true
	})
}
