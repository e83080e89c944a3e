package di

import (
	"log/slog"

	"github.com/lakutata/lakutata-sub001/internal/errors"
)

// ContainerOption is used to configure a new Container when calling [NewContainer]
// or [Container.CreateScope].
//
// Available options:
//   - [WithLogger] sets the logger for the container.
//   - [WithRegistrations] registers a set of resolvers.
//   - [Registrations] can be used as an option directly.
type ContainerOption interface {
	applyContainer(*Container) error
}

type containerOption func(*Container) error

func (f containerOption) applyContainer(c *Container) error {
	return f(c)
}

// WithLogger sets the logger used for scope lifecycle events and swallowed
// disposal errors.
//
// Scopes inherit the logger of their parent. The default is [slog.Default].
func WithLogger(logger *slog.Logger) ContainerOption {
	return containerOption(func(c *Container) error {
		if logger == nil {
			return errors.New("with logger: logger is nil")
		}
		c.logger = logger
		return nil
	})
}

// WithRegistrations registers each name and resolver with the new container.
func WithRegistrations(regs Registrations) ContainerOption {
	return regs
}

func (c *Container) applyOptions(opts []ContainerOption) error {
	var errs errors.MultiError
	for _, o := range opts {
		if o == nil {
			continue
		}
		errs = errs.Append(o.applyContainer(c))
	}
	return errs.Join()
}
