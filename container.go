package di

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/lakutata/lakutata-sub001/internal/errors"
)

// Container is a dependency injection container.
// It binds names to resolvers and resolves values by first resolving their dependencies.
//
// Containers form a tree. A scope created with [Container.CreateScope] sees the
// registrations of its parents, but has its own registrations and its own cache
// of [Scoped] values. [Singleton] values are cached in the root container.
//
// A Container is safe for concurrent use.
type Container struct {
	id            uuid.UUID
	parent        *Container
	logger        *slog.Logger
	registrations *xsync.MapOf[string, *registration]
	cache         *xsync.MapOf[*registration, *cacheEntry]
	children      *xsync.MapOf[*Container, struct{}]

	transientsMu sync.Mutex
	transients   []trackedValue
}

// registration binds a name to a resolver in a single container.
// Cache entries are keyed by registration, so re-registering a name never
// returns a value built by the previous resolver.
//
// owner is the container whose table holds the registration. It builds
// Singleton values and disposes constants.
type registration struct {
	name     string
	resolver Resolver
	owner    *Container
	disposed atomic.Bool
}

// cacheEntry holds the result of a Singleton or Scoped construction.
// done is closed once val and err are set.
type cacheEntry struct {
	reg  *registration
	val  any
	err  error
	done chan struct{}
}

func newCacheEntry(reg *registration) *cacheEntry {
	return &cacheEntry{
		reg:  reg,
		done: make(chan struct{}),
	}
}

func (e *cacheEntry) setResult(val any, err error) {
	e.val = val
	e.err = err
	close(e.done)
}

func (e *cacheEntry) ready() bool {
	select {
	case <-e.done:
		return true
	default:
		return false
	}
}

// trackedValue is a transient value owned by the container that resolved it.
type trackedValue struct {
	name     string
	val      any
	teardown DisposeFunc
}

// NewContainer creates a new root [Container] with the provided options.
//
// Available options:
//   - [WithLogger] sets the logger for the container and its scopes.
//   - [WithRegistrations] registers a set of resolvers.
func NewContainer(opts ...ContainerOption) (*Container, error) {
	c := newContainer(nil, slog.Default())

	err := c.applyOptions(opts)
	if err != nil {
		return nil, errors.Wrap(err, "di.NewContainer")
	}

	return c, nil
}

func newContainer(parent *Container, logger *slog.Logger) *Container {
	return &Container{
		id:            uuid.New(),
		parent:        parent,
		logger:        logger,
		registrations: xsync.NewMapOf[string, *registration](),
		cache:         xsync.NewMapOf[*registration, *cacheEntry](),
		children:      xsync.NewMapOf[*Container, struct{}](),
	}
}

// ID returns the unique identifier of the container.
func (c *Container) ID() uuid.UUID {
	return c.id
}

// Parent returns the container this scope was created from, or nil for a root container.
func (c *Container) Parent() *Container {
	return c.parent
}

// Root returns the root of the scope chain.
func (c *Container) Root() *Container {
	root := c
	for root.parent != nil {
		root = root.parent
	}
	return root
}

func (c *Container) String() string {
	if c.parent == nil {
		return fmt.Sprintf("di.Container(%s)", c.id)
	}
	return fmt.Sprintf("di.Container(%s, parent %s)", c.id, c.parent.id)
}

// Register binds name to the resolver in this container.
//
// Registering a name that is already registered in this container replaces it.
// Registering a name that is registered in a parent shadows it for this container
// and its scopes only.
//
// Errors collected while the resolver was created or configured are returned
// as a [*RegistrationError].
func (c *Container) Register(name string, r Resolver) error {
	if name == "" {
		return &RegistrationError{Name: name, Err: errors.New("name is empty")}
	}

	if err := r.Err(); err != nil {
		return &RegistrationError{Name: name, Err: err}
	}

	c.registrations.Store(name, &registration{
		name:     name,
		resolver: r,
		owner:    c,
	})
	return nil
}

// RegisterAll registers every name and resolver in regs.
//
// Names are registered in sorted order. Valid entries are registered even if
// others fail; the errors are joined together.
func (c *Container) RegisterAll(regs Registrations) error {
	var errs errors.MultiError
	for _, name := range regs.Names() {
		errs = errs.Append(c.Register(name, regs[name]))
	}
	return errs.Join()
}

// Has returns true if name is registered in the container or one of its parents.
func (c *Container) Has(name string) bool {
	return c.lookup(name) != nil
}

// Registrations returns the names that can be resolved from the container,
// including those inherited from its parents, in sorted order.
func (c *Container) Registrations() []string {
	seen := make(map[string]struct{})
	for scope := c; scope != nil; scope = scope.parent {
		scope.registrations.Range(func(name string, _ *registration) bool {
			seen[name] = struct{}{}
			return true
		})
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (c *Container) lookup(name string) *registration {
	for scope := c; scope != nil; scope = scope.parent {
		if reg, ok := scope.registrations.Load(name); ok {
			return reg
		}
	}
	return nil
}

// CreateScope creates a child [Container].
//
// The scope resolves names registered with this container and its parents.
// Names registered with the scope are isolated from the parent and sibling scopes.
// [Scoped] values are cached per scope.
//
// The scope is disposed when this container is disposed.
//
// Available options:
//   - [WithLogger] overrides the logger inherited from this container.
//   - [WithRegistrations] registers a set of resolvers with the scope.
func (c *Container) CreateScope(opts ...ContainerOption) (*Container, error) {
	scope := newContainer(c, c.logger)

	err := scope.applyOptions(opts)
	if err != nil {
		return nil, errors.Wrap(err, "di.Container.CreateScope")
	}

	c.children.Store(scope, struct{}{})
	c.logger.Debug("di: scope created",
		slog.String("container", scope.id.String()),
		slog.String("parent", c.id.String()),
	)

	return scope, nil
}

func (c *Container) track(name string, val any, teardown DisposeFunc) {
	c.transientsMu.Lock()
	c.transients = append(c.transients, trackedValue{
		name:     name,
		val:      val,
		teardown: teardown,
	})
	c.transientsMu.Unlock()
}
