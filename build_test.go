package di_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	di "github.com/lakutata/lakutata-sub001"
	"github.com/lakutata/lakutata-sub001/internal/testtypes"
	"github.com/lakutata/lakutata-sub001/internal/testutils"
)

func Test_Container_Build(t *testing.T) {
	ctx := context.Background()

	newContainer := func(t *testing.T) (*di.Container, *testtypes.Database) {
		db := testtypes.NewDatabase()
		c, err := di.NewContainer(di.Registrations{
			"db": di.AsValue(db),
		})
		require.NoError(t, err)
		return c, db
	}

	t.Run("class", func(t *testing.T) {
		c, db := newContainer(t)

		got, err := c.Build(ctx, di.ClassOf[testtypes.Repository](), di.Classic)
		require.NoError(t, err)

		repo, ok := got.(*testtypes.Repository)
		require.True(t, ok)
		assert.Same(t, db, repo.DB)
		assert.False(t, c.Has("repo"))
	})

	t.Run("function", func(t *testing.T) {
		c, db := newContainer(t)

		got, err := c.Build(ctx, func(db *testtypes.Database) string {
			return db.DSN
		}, di.Classic, di.WithParams("db"))
		require.NoError(t, err)

		assert.Equal(t, db.DSN, got)
	})

	t.Run("resolver", func(t *testing.T) {
		c, _ := newContainer(t)

		got, err := c.Build(ctx, di.AsValue("built"))
		require.NoError(t, err)
		assert.Equal(t, "built", got)
	})

	t.Run("not cached or tracked", func(t *testing.T) {
		c, _ := newContainer(t)
		r := di.AsFunction(testtypes.NewInterfaceA, di.Singleton)

		got1, err := c.Build(ctx, r)
		require.NoError(t, err)
		got2, err := c.Build(ctx, r)
		require.NoError(t, err)
		assert.NotSame(t, got1, got2)

		require.NoError(t, c.Dispose(ctx))
		assert.EqualValues(t, 0, got1.(*testtypes.StructA).Closed.Load())
	})

	t.Run("invalid target", func(t *testing.T) {
		c, _ := newContainer(t)

		got, err := c.Build(ctx, 42)
		testutils.LogError(t, err)

		assert.Nil(t, got)
		assert.EqualError(t, err, "di.Container.Build int: target must be a function, a class or a resolver")
		assert.ErrorIs(t, err, di.ErrInvalidTarget)

		var typeErr *di.TypeError
		require.ErrorAs(t, err, &typeErr)
		assert.Equal(t, 42, typeErr.Target)
	})

	t.Run("nil target", func(t *testing.T) {
		c, _ := newContainer(t)

		_, err := c.Build(ctx, nil)
		assert.ErrorIs(t, err, di.ErrInvalidTarget)
	})

	t.Run("invalid resolver", func(t *testing.T) {
		c, _ := newContainer(t)

		_, err := c.Build(ctx, di.AsClass[testtypes.Repository]())
		testutils.LogError(t, err)
		assert.EqualError(t, err,
			"di.Container.Build class testtypes.Repository: proxy injection: testtypes.Repository has di fields but does not implement di.Constructor")
	})

	t.Run("dependency error", func(t *testing.T) {
		c, err := di.NewContainer()
		require.NoError(t, err)

		_, err = c.Build(ctx, di.ClassOf[testtypes.Repository](), di.Classic)
		testutils.LogError(t, err)
		assert.EqualError(t, err, "di.Container.Build class testtypes.Repository: resolve db: not registered")
		assert.ErrorIs(t, err, di.ErrNotRegistered)
	})
}
