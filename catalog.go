package di

import (
	"maps"
	"slices"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/lakutata/lakutata-sub001/internal/errors"
)

// Catalog is the table of factories that module manifests can refer to.
//
// Go programs cannot import code at runtime, so the factories are compiled in
// and added to a Catalog under a key. Manifests found by [Container.LoadModules]
// name a factory by its key.
//
// A Catalog is safe for concurrent use.
type Catalog struct {
	factories *xsync.MapOf[string, any]
}

// NewCatalog creates a [Catalog] holding the given factories.
func NewCatalog(factories map[string]any) *Catalog {
	c := &Catalog{
		factories: xsync.NewMapOf[string, any](),
	}
	for key, f := range factories {
		c.factories.Store(key, f)
	}
	return c
}

// Add adds a factory under key, replacing any previous factory.
//
// The factory is usually a function or a [Class], but any value can be added.
func (c *Catalog) Add(key string, factory any) error {
	if key == "" {
		return errors.New("catalog add: key is empty")
	}
	c.factories.Store(key, factory)
	return nil
}

// Lookup returns the factory added under key.
func (c *Catalog) Lookup(key string) (any, bool) {
	return c.factories.Load(key)
}

// Keys returns the keys of the catalog in sorted order.
func (c *Catalog) Keys() []string {
	keys := make(map[string]struct{}, c.factories.Size())
	c.factories.Range(func(key string, _ any) bool {
		keys[key] = struct{}{}
		return true
	})
	return slices.Sorted(maps.Keys(keys))
}
