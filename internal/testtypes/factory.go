package testtypes

import "sync/atomic"

// Factory counts the values it creates.
type Factory struct {
	count atomic.Int32
}

func (f *Factory) NewStructA() *StructA {
	n := f.count.Add(1)
	return &StructA{Tag: int(n)}
}

func (f *Factory) NewInterfaceA() InterfaceA {
	return f.NewStructA()
}

// Count returns the number of values created.
func (f *Factory) Count() int {
	return int(f.count.Load())
}
