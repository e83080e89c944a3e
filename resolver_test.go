package di_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	di "github.com/lakutata/lakutata-sub001"
	"github.com/lakutata/lakutata-sub001/internal/testtypes"
	"github.com/lakutata/lakutata-sub001/internal/testutils"
	"github.com/lakutata/lakutata-sub001/params"
)

func Test_Resolver_Immutable(t *testing.T) {
	r := di.AsFunction(testtypes.NewDatabase)

	singleton := r.Singleton()
	scoped := singleton.Scoped()
	classic := r.Classic("a", "b?")
	renamed := classic.With(di.WithParams("c"))

	assert.Equal(t, di.Transient, r.Lifetime())
	assert.Equal(t, di.Singleton, singleton.Lifetime())
	assert.Equal(t, di.Scoped, scoped.Lifetime())
	assert.Equal(t, di.Transient, scoped.Transient().Lifetime())
	assert.Equal(t, di.Singleton, r.WithLifetime(di.Singleton).Lifetime())

	assert.Equal(t, di.Proxy, r.InjectionMode())
	assert.Equal(t, di.Classic, classic.InjectionMode())
	assert.Equal(t, di.Proxy, classic.Proxy().InjectionMode())

	assert.Empty(t, r.Params())
	assert.Equal(t, []di.Parameter{{Name: "a"}, {Name: "b", Optional: true}}, classic.Params())
	assert.Equal(t, []di.Parameter{{Name: "c"}}, renamed.Params())

	params := classic.Params()
	params[0].Name = "changed"
	assert.Equal(t, "a", classic.Params()[0].Name)
}

func Test_Resolver_Kind(t *testing.T) {
	assert.Equal(t, di.KindValue, di.AsValue(1).Kind())
	assert.Equal(t, di.KindFunction, di.AsFunction(testtypes.NewDatabase).Kind())
	assert.Equal(t, di.KindClass, di.AsClass[testtypes.Repository]().Kind())
	assert.Equal(t, di.KindAlias, di.AliasTo("db").Kind())

	assert.Equal(t, "value", di.KindValue.String())
	assert.Equal(t, "alias", di.KindAlias.String())
	assert.Equal(t, "Unknown ResolverKind 9", di.ResolverKind(9).String())

	assert.Equal(t, "value int", di.AsValue(1).String())
	assert.Equal(t, "function func() *testtypes.Database", di.AsFunction(testtypes.NewDatabase).String())
	assert.Equal(t, "class testtypes.Repository", di.AsClass[testtypes.Repository]().String())
	assert.Equal(t, "alias db", di.AliasTo("db").String())
}

func Test_AsValue(t *testing.T) {
	r := di.AsValue("v").Singleton()

	assert.NoError(t, r.Err())
	assert.Equal(t, di.Transient, r.Lifetime())
}

func Test_AsFunction(t *testing.T) {
	tests := []struct {
		name    string
		r       di.Resolver
		wantErr string
	}{
		{
			name: "no params",
			r:    di.AsFunction(testtypes.NewDatabase),
		},
		{
			name: "cradle and context",
			r:    di.AsFunction(func(context.Context, di.Cradle) (*testtypes.Database, error) { return nil, nil }),
		},
		{
			name:    "nil",
			r:       di.AsFunction(nil),
			wantErr: "di.AsFunction <nil>: target is nil",
		},
		{
			name:    "not a function",
			r:       di.AsFunction("NewDatabase"),
			wantErr: "di.AsFunction string: target is not a function",
		},
		{
			name:    "no results",
			r:       di.AsFunction(func() {}),
			wantErr: "function must return T or (T, error)",
		},
		{
			name:    "second result not error",
			r:       di.AsFunction(func() (int, int) { return 0, 0 }),
			wantErr: "function must return T or (T, error)",
		},
		{
			name:    "variadic",
			r:       di.AsFunction(func(...string) int { return 0 }, di.Classic),
			wantErr: "variadic functions are not supported",
		},
		{
			name:    "proxy with named params",
			r:       di.AsFunction(func(string) int { return 0 }),
			wantErr: "proxy injection: parameters must be di.Cradle or context.Context, got func(string) int",
		},
		{
			name:    "classic param count",
			r:       di.AsFunction(func(string, int) int { return 0 }).Classic("a"),
			wantErr: "classic injection: function has 2 parameters, got 1 names",
		},
		{
			name:    "empty param name",
			r:       di.AsFunction(func(string) int { return 0 }, di.Classic, di.WithParams("")),
			wantErr: "with params: empty parameter name",
		},
		{
			name:    "nil injector",
			r:       di.AsFunction(testtypes.NewDatabase).Inject(nil),
			wantErr: "with injector: fn is nil",
		},
		{
			name:    "nil disposer",
			r:       di.AsFunction(testtypes.NewDatabase).Disposer(nil),
			wantErr: "with disposer: fn is nil",
		},
		{
			name: "close func not assignable",
			r: di.AsFunction(testtypes.NewDatabase, di.WithCloseFunc(func(context.Context, *testtypes.StructA) error {
				return nil
			})),
			wantErr: "with close func: type *testtypes.Database is not assignable to *testtypes.StructA",
		},
		{
			name:    "invalid lifetime",
			r:       di.AsFunction(testtypes.NewDatabase, di.Lifetime(5)),
			wantErr: "with lifetime: Unknown Lifetime 5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Err()
			testutils.LogError(t, err)

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func Test_ParamsFromSource(t *testing.T) {
	t.Run("function", func(t *testing.T) {
		r := di.AsFunction(func(string, int) int { return 0 },
			di.Classic,
			di.ParamsFromSource("function (db, retries = 3) {}"),
		)

		require.NoError(t, r.Err())
		assert.Equal(t, []di.Parameter{
			{Name: "db"},
			{Name: "retries", Optional: true},
		}, r.Params())
	})

	t.Run("inherited constructor", func(t *testing.T) {
		r := di.AsFunction(func(string) int { return 0 },
			di.Classic,
			di.ParamsFromSource(
				"class Derived extends Base { method() {} }",
				"class Base { constructor(db) {} }",
			),
		)

		require.NoError(t, r.Err())
		assert.Equal(t, []di.Parameter{{Name: "db"}}, r.Params())
	})

	t.Run("syntax error", func(t *testing.T) {
		r := di.AsFunction(func(string) int { return 0 },
			di.Classic,
			di.ParamsFromSource("function (db, = 1) {}"),
		)

		err := r.Err()
		testutils.LogError(t, err)

		var syntaxErr *params.SyntaxError
		require.ErrorAs(t, err, &syntaxErr)
		assert.Equal(t, params.TokenEquals, syntaxErr.Type)
	})
}

type taggedClass struct {
	DB       *testtypes.Database   `di:"db"`
	UserRepo *testtypes.Repository `di:",optional"`
	Skipped  string                `di:"-"`
	Plain    string
}

type baseClass struct {
	DB *testtypes.Database `di:"db"`
}

type derivedClass struct {
	baseClass
	Name string
}

type unexportedClass struct {
	db *testtypes.Database `di:"db"` //nolint:unused
}

type taggedWithoutConstructor struct {
	DB *testtypes.Database `di:"db"`
}

func Test_AsClass(t *testing.T) {
	ctx := context.Background()

	t.Run("tagged fields", func(t *testing.T) {
		r := di.AsClass[taggedClass](di.Classic)

		require.NoError(t, r.Err())
		assert.Equal(t, []di.Parameter{
			{Name: "db"},
			{Name: "userRepo", Optional: true},
		}, r.Params())
	})

	t.Run("embedded fields", func(t *testing.T) {
		r := di.AsClass[derivedClass](di.Classic)
		require.NoError(t, r.Err())
		assert.Equal(t, []di.Parameter{{Name: "db"}}, r.Params())

		db := testtypes.NewDatabase()
		c, err := di.NewContainer(di.Registrations{"db": di.AsValue(db)})
		require.NoError(t, err)

		got, err := c.Build(ctx, r)
		require.NoError(t, err)
		assert.Same(t, db, got.(*derivedClass).DB)
	})

	t.Run("no tagged fields", func(t *testing.T) {
		r := di.AsClass[testtypes.Database](di.Classic)

		require.NoError(t, r.Err())
		assert.Empty(t, r.Params())
	})

	t.Run("renamed params", func(t *testing.T) {
		r := di.AsClass[testtypes.Repository]().Classic("database")

		require.NoError(t, r.Err())
		assert.Equal(t, []di.Parameter{{Name: "database"}}, r.Params())
	})

	t.Run("not a struct", func(t *testing.T) {
		err := di.AsClass[*testtypes.Database]().Err()
		assert.EqualError(t, err, "di.AsClass *testtypes.Database: target is not a struct type")
		assert.ErrorIs(t, err, di.ErrInvalidTarget)
	})

	t.Run("unexported tagged field", func(t *testing.T) {
		err := di.AsClass[unexportedClass]().Err()
		assert.EqualError(t, err, "di.AsClass di_test.unexportedClass: field db: di tag on unexported field")
	})

	t.Run("proxy without constructor", func(t *testing.T) {
		err := di.AsClass[taggedWithoutConstructor]().Err()
		assert.EqualError(t, err,
			"proxy injection: di_test.taggedWithoutConstructor has di fields but does not implement di.Constructor")
	})

	t.Run("classic param count", func(t *testing.T) {
		err := di.AsClass[testtypes.Repository]().Classic("a", "b").Err()
		assert.EqualError(t, err,
			"classic injection: testtypes.Repository has 1 di fields, got 2 names")
	})

	t.Run("constructor error", func(t *testing.T) {
		c, err := di.NewContainer(di.Registrations{
			"service": di.AsClass[testtypes.Service](),
		})
		require.NoError(t, err)

		_, err = c.Resolve(ctx, "service")
		testutils.LogError(t, err)
		assert.EqualError(t, err, "resolve service -> repo: not registered")
	})
}
