// Package config holds the settings of the dimodules command.
package config

import (
	"flag"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/lakutata/lakutata-sub001/internal/errors"
)

// Environment variables read by [Load].
const (
	EnvCWD       = "DIMODULES_CWD"
	EnvLogLevel  = "DIMODULES_LOG_LEVEL"
	EnvCamelCase = "DIMODULES_CAMEL_CASE"
)

// Config is the configuration of the dimodules command.
type Config struct {
	// CWD is the directory the module patterns are relative to.
	CWD string
	// LogLevel is the minimum level of the command's logger.
	LogLevel slog.Level
	// CamelCase formats registration names in lower camel case.
	CamelCase bool
}

// LookupFunc returns the value of an environment variable and whether it is set.
type LookupFunc func(key string) (string, bool)

// Load reads the env files (".env" by default) and populates a Config from
// environment variables. Variables set in the process environment take
// precedence over the files. Missing files are ignored.
func Load(envFiles ...string) (*Config, error) {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}

	fileEnv := make(map[string]string)
	for _, f := range files {
		vals, err := godotenv.Read(f)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "load config %s", f)
		}
		maps.Copy(fileEnv, vals)
	}

	return Parse(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileEnv[key]
		return v, ok
	})
}

// Parse populates a Config using lookup.
func Parse(lookup LookupFunc) (*Config, error) {
	cfg := &Config{
		CWD:      ".",
		LogLevel: slog.LevelWarn,
	}

	var errs errors.MultiError

	if v, ok := lookup(EnvCWD); ok && v != "" {
		cfg.CWD = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			errs = errs.Append(errors.Wrapf(err, "%s", EnvLogLevel))
		}
	}
	if v, ok := lookup(EnvCamelCase); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = errs.Append(errors.Wrapf(err, "%s", EnvCamelCase))
		}
		cfg.CamelCase = b
	}

	if err := errs.Wrapf("parse config"); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RegisterFlags binds command line flags to cfg. The current values are the defaults,
// so flags override the environment.
func (cfg *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&cfg.CWD, "cwd", cfg.CWD, "directory the patterns are relative to")
	fs.BoolVar(&cfg.CamelCase, "camel", cfg.CamelCase, "format registration names in lower camel case")
	fs.TextVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "minimum log level")
}
