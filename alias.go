package di

// AliasTo creates a [Resolver] that resolves another registered name.
//
// The target is looked up from the container that resolves the alias, so an
// alias registered in a parent can be satisfied by a scope that shadows the
// target. Cycles through aliases are reported like any other cycle.
func AliasTo(name string) Resolver {
	return Resolver{
		kind:   KindAlias,
		alias:  name,
		target: name,
	}
}
