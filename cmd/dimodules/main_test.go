package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
	return dir
}

func Test_run(t *testing.T) {
	ctx := context.Background()

	t.Run("lists registrations", func(t *testing.T) {
		dir := writeFiles(t, map[string]string{
			"modules/user-repository.yaml": `
default:
  factory: NewRepository
  resolver:
    lifetime: SINGLETON
    injectionMode: CLASSIC
    signature: "function (db, logger = null) {}"
exports:
  cache:
    factory: NewCache
    resolver:
      name: userCache
      params: [db]
  ignored:
    factory: NewIgnored
`,
			"modules/clock.yaml": "default:\n  factory: NewClock\n",
		})

		var stdout, stderr bytes.Buffer
		code := run(ctx, []string{"-cwd", dir, "-camel", "modules/*.yaml"}, &stdout, &stderr)
		require.Equal(t, 0, code, stderr.String())

		lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
		require.Len(t, lines, 4)
		assert.Equal(t, []string{"MODULE", "NAME", "FACTORY", "LIFETIME", "MODE", "PARAMS"}, strings.Fields(lines[0]))
		assert.Equal(t,
			[]string{"modules/clock.yaml", "clock", "NewClock", "TRANSIENT", "PROXY", "-"},
			strings.Fields(lines[1]))
		assert.Equal(t,
			[]string{"modules/user-repository.yaml", "userRepository", "NewRepository", "SINGLETON", "CLASSIC", "db,logger?"},
			strings.Fields(lines[2]))
		assert.Equal(t,
			[]string{"modules/user-repository.yaml", "userCache", "NewCache", "TRANSIENT", "PROXY", "db"},
			strings.Fields(lines[3]))
	})

	t.Run("manifest error", func(t *testing.T) {
		dir := writeFiles(t, map[string]string{
			"bad.yaml":  "factory: NewClock\n",
			"good.yaml": "default:\n  factory: NewClock\n",
		})

		var stdout, stderr bytes.Buffer
		code := run(ctx, []string{"-cwd", dir, "*.yaml"}, &stdout, &stderr)

		assert.Equal(t, 1, code)
		assert.Contains(t, stdout.String(), "good.yaml")
		assert.Contains(t, stderr.String(), "module bad.yaml: parse manifest")
	})

	t.Run("signature error", func(t *testing.T) {
		dir := writeFiles(t, map[string]string{
			"db.yaml": "default:\n  factory: Open\n  resolver:\n    signature: \"function (a, = 1) {}\"\n",
		})

		var stdout, stderr bytes.Buffer
		code := run(ctx, []string{"-cwd", dir, "*.yaml"}, &stdout, &stderr)

		assert.Equal(t, 1, code)
		assert.Contains(t, stderr.String(), "module db.yaml export db")
	})

	t.Run("no patterns", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run(ctx, nil, &stdout, &stderr)

		assert.Equal(t, 2, code)
		assert.Contains(t, stderr.String(), "usage: dimodules")
	})
}
