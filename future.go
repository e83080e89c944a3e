package di

import (
	"sync"

	"github.com/lakutata/lakutata-sub001/internal/errors"
)

// Lazy returns a function that resolves name from the [Cradle] the first time it
// is called and returns the same result afterwards.
//
// It can be used to break a dependency cycle, as long as the function is not called
// while the values in the cycle are still being constructed.
func Lazy[T any](c Cradle, name string) func() (T, error) {
	return sync.OnceValues(func() (T, error) {
		val, err := Get[T](c, name)
		return val, errors.Wrap(err, "lazy")
	})
}
