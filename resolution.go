package di

// resolvePath is the chain of names being resolved by a single call.
//
// Each resolution pushes onto its own copy, so concurrent resolutions on the
// same container never share a path and a failed call leaves nothing behind.
type resolvePath struct {
	name   string
	parent *resolvePath
}

// push returns a new path with name appended.
func (p *resolvePath) push(name string) *resolvePath {
	return &resolvePath{name: name, parent: p}
}

// contains reports whether name is already on the path.
func (p *resolvePath) contains(name string) bool {
	for n := p; n != nil; n = n.parent {
		if n.name == name {
			return true
		}
	}
	return false
}

// names returns the path in call order.
func (p *resolvePath) names() []string {
	var n int
	for cur := p; cur != nil; cur = cur.parent {
		n++
	}

	names := make([]string, n)
	for cur := p; cur != nil; cur = cur.parent {
		n--
		names[n] = cur.name
	}
	return names
}

// trail returns the path in call order followed by name.
func (p *resolvePath) trail(name string) []string {
	return append(p.names(), name)
}
