package di

import (
	"maps"
	"slices"
)

// Registrations is a set of names and resolvers.
// It can be used to export a re-usable group of related registrations.
//
// Example:
//
//	var StorageModule = di.Registrations{
//		"db":    di.AsFunction(OpenDB, di.Singleton),
//		"store": di.AsClass[Store](di.Classic),
//	}
//
//	c, err := di.NewContainer(StorageModule)
type Registrations map[string]Resolver

// Names returns the registered names in sorted order.
func (r Registrations) Names() []string {
	return slices.Sorted(maps.Keys(r))
}

func (r Registrations) applyContainer(c *Container) error {
	return c.RegisterAll(r)
}

var _ ContainerOption = Registrations(nil)
