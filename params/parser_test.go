package params_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakutata/lakutata-sub001/params"
)

func Test_Parse(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []params.Parameter
	}{
		{
			name: "function with default",
			src:  "function f(a, b=1){}",
			want: []params.Parameter{
				{Name: "a"},
				{Name: "b", Optional: true},
			},
		},
		{
			name: "anonymous function",
			src:  "function (db, logger) { return db }",
			want: []params.Parameter{
				{Name: "db"},
				{Name: "logger"},
			},
		},
		{
			name: "generator function",
			src:  "function* gen(a, b) {}",
			want: []params.Parameter{
				{Name: "a"},
				{Name: "b"},
			},
		},
		{
			name: "class constructor with nested call default",
			src:  "class C { constructor(x, y = foo(1,2)) {} }",
			want: []params.Parameter{
				{Name: "x"},
				{Name: "y", Optional: true},
			},
		},
		{
			name: "class with extends and methods",
			src: `class Service extends Base {
				static create(a, b = 2) { return new Service(a) }
				constructor(repo, cache = new Map()) { super(repo) }
			}`,
			want: []params.Parameter{
				{Name: "repo"},
				{Name: "cache", Optional: true},
			},
		},
		{
			name: "paren-less arrow",
			src:  "a => a+1",
			want: []params.Parameter{
				{Name: "a"},
			},
		},
		{
			name: "async paren-less arrow",
			src:  "async a => a",
			want: []params.Parameter{
				{Name: "a"},
			},
		},
		{
			name: "arrow parameter named async",
			src:  "async => async + 1",
			want: []params.Parameter{
				{Name: "async"},
			},
		},
		{
			name: "async arrow with parens",
			src:  "async (a, b) => a + b",
			want: []params.Parameter{
				{Name: "a"},
				{Name: "b"},
			},
		},
		{
			name: "no parameters",
			src:  "() => 42",
			want: []params.Parameter{},
		},
		{
			name: "comments are skipped",
			src:  "function (/* first */ a, // second\n b) {}",
			want: []params.Parameter{
				{Name: "a"},
				{Name: "b"},
			},
		},
		{
			name: "string defaults with commas and parens",
			src:  `function (a = "x, y)", b = 'z(', c) {}`,
			want: []params.Parameter{
				{Name: "a", Optional: true},
				{Name: "b", Optional: true},
				{Name: "c"},
			},
		},
		{
			name: "template literal default with interpolation",
			src:  "function (a = `${fn(1, `${x}, )`)}, (`, b) {}",
			want: []params.Parameter{
				{Name: "a", Optional: true},
				{Name: "b"},
			},
		},
		{
			name: "object and array defaults",
			src:  "(opts = {a: 1, b: [2, 3]}, list = [4, 5], last) => {}",
			want: []params.Parameter{
				{Name: "opts", Optional: true},
				{Name: "list", Optional: true},
				{Name: "last"},
			},
		},
		{
			name: "arrow function default",
			src:  "function (cb = () => null, next) {}",
			want: []params.Parameter{
				{Name: "cb", Optional: true},
				{Name: "next"},
			},
		},
		{
			name: "unicode identifiers",
			src:  "function (ñame, $dep, _x1) {}",
			want: []params.Parameter{
				{Name: "ñame"},
				{Name: "$dep"},
				{Name: "_x1"},
			},
		},
		{
			name: "empty source",
			src:  "",
			want: []params.Parameter{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := params.Parse(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_Parse_ClassWithoutConstructor(t *testing.T) {
	got, err := params.Parse("class D extends C {}")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func Test_Parse_SyntaxError(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{
			name:    "star in parameter list",
			src:     "function f(a, *b) {}",
			wantErr: "parsing parameter list: unexpected * token at offset 14",
		},
		{
			name:    "leading equals",
			src:     "= 1",
			wantErr: "parsing parameter list: unexpected = token at offset 0",
		},
		{
			name:    "class keyword in parameter list",
			src:     "(a, class)",
			wantErr: "parsing parameter list: unexpected class token at offset 4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := params.Parse(tt.src)
			assert.Nil(t, got)
			assert.EqualError(t, err, tt.wantErr)

			var syntaxErr *params.SyntaxError
			assert.ErrorAs(t, err, &syntaxErr)
		})
	}
}

func Test_ParseInherited(t *testing.T) {
	t.Run("falls back to parent constructor", func(t *testing.T) {
		got, err := params.ParseInherited(
			"class D extends C {}",
			"class C { constructor(x, y = foo(1,2)) {} }",
		)
		require.NoError(t, err)
		assert.Equal(t, []params.Parameter{
			{Name: "x"},
			{Name: "y", Optional: true},
		}, got)
	})

	t.Run("own constructor wins", func(t *testing.T) {
		got, err := params.ParseInherited(
			"class D extends C { constructor(z) { super(z, 1) } }",
			"class C { constructor(x, y) {} }",
		)
		require.NoError(t, err)
		assert.Equal(t, []params.Parameter{{Name: "z"}}, got)
	})

	t.Run("no constructor anywhere", func(t *testing.T) {
		got, err := params.ParseInherited(
			"class D extends C {}",
			"class C {}",
		)
		require.NoError(t, err)
		assert.Equal(t, []params.Parameter{}, got)
	})

	t.Run("syntax error stops the walk", func(t *testing.T) {
		got, err := params.ParseInherited(
			"class D extends C {}",
			"class C { constructor(a, *b) {} }",
		)
		assert.Nil(t, got)
		assert.Error(t, err)
	})
}
