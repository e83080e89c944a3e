package di

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"reflect"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/iancoleman/strcase"

	"github.com/lakutata/lakutata-sub001/internal/errors"
)

// ModulePattern is a glob pattern with the resolver options used for the
// modules it matches.
//
// Patterns support "**" to match any number of directories.
type ModulePattern struct {
	Glob    string
	Options []ResolverOption
}

// Pattern creates a [ModulePattern].
func Pattern(glob string, opts ...ResolverOption) ModulePattern {
	return ModulePattern{Glob: glob, Options: opts}
}

// Patterns creates a [ModulePattern] without options for each glob.
func Patterns(globs ...string) []ModulePattern {
	patterns := make([]ModulePattern, len(globs))
	for i, glob := range globs {
		patterns[i] = Pattern(glob)
	}
	return patterns
}

// ModuleDescriptor describes a module file found by [ListModules].
type ModuleDescriptor struct {
	// Name is the file name without its extension.
	Name string
	// Path is the path of the file relative to the file system root.
	Path string
	// Options are the options of the pattern that matched the file.
	Options []ResolverOption
}

// LoadedModuleDescriptor is a module after it has been imported.
type LoadedModuleDescriptor struct {
	ModuleDescriptor
	Exports []ModuleExport
}

// DefaultExport is the name of the default export of a module.
const DefaultExport = "default"

// ModuleExport is a value exported by a module.
type ModuleExport struct {
	// Name is the export key, or [DefaultExport].
	Name string
	// Value is the exported factory.
	Value any
	// Config is the inline resolver configuration, or nil.
	// Named exports are only registered when they have one.
	Config *ExportConfig
}

// ExportConfig is the resolver configuration declared next to an export.
type ExportConfig struct {
	Name          string         `yaml:"name"`
	Lifetime      *Lifetime      `yaml:"lifetime"`
	InjectionMode *InjectionMode `yaml:"injectionMode"`
	Params        []string       `yaml:"params"`
	Signature     string         `yaml:"signature"`
}

// Options returns the resolver options declared by the configuration.
func (cfg *ExportConfig) Options() []ResolverOption {
	if cfg == nil {
		return nil
	}

	var opts []ResolverOption
	if cfg.Lifetime != nil {
		opts = append(opts, *cfg.Lifetime)
	}
	if cfg.InjectionMode != nil {
		opts = append(opts, *cfg.InjectionMode)
	}
	if cfg.Signature != "" {
		opts = append(opts, ParamsFromSource(cfg.Signature))
	}
	if len(cfg.Params) > 0 {
		opts = append(opts, WithParams(cfg.Params...))
	}
	return opts
}

// ModuleImporter imports the exports of a module file.
//
// An importer may return the exports it could load together with an error;
// [Container.LoadModules] registers them and reports the error.
type ModuleImporter interface {
	Import(ctx context.Context, fsys fs.FS, desc ModuleDescriptor) (LoadedModuleDescriptor, error)
}

// ModuleImporterFunc adapts a function to a [ModuleImporter].
type ModuleImporterFunc func(ctx context.Context, fsys fs.FS, desc ModuleDescriptor) (LoadedModuleDescriptor, error)

func (f ModuleImporterFunc) Import(ctx context.Context, fsys fs.FS, desc ModuleDescriptor) (LoadedModuleDescriptor, error) {
	return f(ctx, fsys, desc)
}

// NameFormatter computes the registration name of an export.
// name is the module file name for the default export, or the export key.
type NameFormatter func(name string, desc ModuleDescriptor) string

// CamelCase formats names in lower camel case, so "user-repository" is
// registered as "userRepository".
func CamelCase(name string, _ ModuleDescriptor) string {
	return strcase.ToLowerCamel(name)
}

// ListModules returns the files of fsys under cwd matching the patterns.
//
// Matches of each pattern are sorted. A file matched by more than one pattern
// is listed once, with the options of the first pattern.
func ListModules(fsys fs.FS, cwd string, patterns []ModulePattern) ([]ModuleDescriptor, error) {
	root := fsys
	if cwd != "" && cwd != "." {
		sub, err := fs.Sub(fsys, cwd)
		if err != nil {
			return nil, errors.Wrapf(err, "list modules %s", cwd)
		}
		root = sub
	}

	seen := make(map[string]struct{})
	var modules []ModuleDescriptor

	for _, p := range patterns {
		if !doublestar.ValidatePattern(p.Glob) {
			return nil, errors.Errorf("list modules: invalid pattern %q", p.Glob)
		}

		matches, err := doublestar.Glob(root, p.Glob, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Wrapf(err, "list modules %q", p.Glob)
		}
		slices.Sort(matches)

		for _, match := range matches {
			if _, ok := seen[match]; ok {
				continue
			}
			seen[match] = struct{}{}

			base := path.Base(match)
			modules = append(modules, ModuleDescriptor{
				Name:    base[:len(base)-len(path.Ext(base))],
				Path:    path.Join(cwd, match),
				Options: p.Options,
			})
		}
	}

	return modules, nil
}

// LoadOption configures [Container.LoadModules].
//
// Available options:
//   - [WithCWD] sets the directory patterns are relative to.
//   - [WithFS] sets the file system to search.
//   - [WithNameFormatter] sets how registration names are computed.
//   - [WithResolverOptions] sets default resolver options.
//   - [WithCatalog] sets the factories manifests can refer to.
//   - [WithImporter] replaces the manifest importer.
type LoadOption interface {
	applyLoadConfig(*loadConfig) error
}

type loadOption func(*loadConfig) error

func (o loadOption) applyLoadConfig(c *loadConfig) error {
	return o(c)
}

type loadConfig struct {
	cwd       string
	fsys      fs.FS
	formatter NameFormatter
	defaults  []ResolverOption
	catalog   *Catalog
	importer  ModuleImporter
}

// WithCWD sets the directory the patterns are relative to. The default is ".".
func WithCWD(dir string) LoadOption {
	return loadOption(func(c *loadConfig) error {
		c.cwd = dir
		return nil
	})
}

// WithFS sets the file system to search. The default is the operating system file system.
func WithFS(fsys fs.FS) LoadOption {
	return loadOption(func(c *loadConfig) error {
		if fsys == nil {
			return errors.New("with fs: fsys is nil")
		}
		c.fsys = fsys
		return nil
	})
}

// WithNameFormatter sets the function used to compute registration names
// when an export does not declare its own name.
func WithNameFormatter(f NameFormatter) LoadOption {
	return loadOption(func(c *loadConfig) error {
		c.formatter = f
		return nil
	})
}

// WithResolverOptions sets resolver options applied to every loaded module.
// Pattern options and inline configuration take precedence.
func WithResolverOptions(opts ...ResolverOption) LoadOption {
	return loadOption(func(c *loadConfig) error {
		c.defaults = append(c.defaults, opts...)
		return nil
	})
}

// WithCatalog sets the factories the manifest importer resolves names against.
func WithCatalog(catalog *Catalog) LoadOption {
	return loadOption(func(c *loadConfig) error {
		if catalog == nil {
			return errors.New("with catalog: catalog is nil")
		}
		c.catalog = catalog
		return nil
	})
}

// WithImporter replaces the manifest importer.
func WithImporter(importer ModuleImporter) LoadOption {
	return loadOption(func(c *loadConfig) error {
		if importer == nil {
			return errors.New("with importer: importer is nil")
		}
		c.importer = importer
		return nil
	})
}

// LoadModules finds module files matching the patterns, imports them and
// registers their exports with the container.
//
// By default the files are YAML manifests (see [ManifestImporter]) whose
// factories are looked up in the [Catalog] given with [WithCatalog].
//
// The default export is registered when it is a function or a [Class].
// Named exports are registered only when they declare an inline resolver
// configuration. Functions are registered with [AsFunction] and classes
// with [AsClassOf].
//
// Errors for individual modules are joined together; valid modules are still registered.
func (c *Container) LoadModules(ctx context.Context, patterns []ModulePattern, opts ...LoadOption) error {
	config := &loadConfig{cwd: "."}

	var errs errors.MultiError
	for _, opt := range opts {
		if opt != nil {
			errs = errs.Append(opt.applyLoadConfig(config))
		}
	}
	if err := errs.Wrapf("di.Container.LoadModules"); err != nil {
		return err
	}

	fsys := config.fsys
	cwd := config.cwd
	if fsys == nil {
		fsys = os.DirFS(cwd)
		cwd = "."
	}

	importer := config.importer
	if importer == nil {
		if config.catalog == nil {
			return errors.New("di.Container.LoadModules: a catalog or an importer is required")
		}
		importer = ManifestImporter(config.catalog)
	}

	modules, err := ListModules(fsys, cwd, patterns)
	if err != nil {
		return errors.Wrap(err, "di.Container.LoadModules")
	}

	for _, desc := range modules {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, "di.Container.LoadModules")
		}

		// Exports returned together with an error are still registered.
		loaded, err := importer.Import(ctx, fsys, desc)
		if err != nil {
			errs = errs.Append(errors.Wrapf(err, "module %s", desc.Path))
		}
		if len(loaded.Exports) == 0 {
			continue
		}
		if loaded.Path == "" {
			loaded.ModuleDescriptor = desc
		}

		errs = errs.Append(c.registerModule(ctx, loaded, config))
	}

	return errs.Wrapf("di.Container.LoadModules")
}

func (c *Container) registerModule(ctx context.Context, mod LoadedModuleDescriptor, config *loadConfig) error {
	var errs errors.MultiError

	for _, exp := range mod.Exports {
		if exp.Name != DefaultExport && exp.Config == nil {
			continue
		}

		if !isFactory(exp.Value) {
			c.logger.DebugContext(ctx, "di: skipping export",
				slog.String("module", mod.Path),
				slog.String("export", exp.Name),
			)
			continue
		}

		name := exp.Name
		if name == DefaultExport {
			name = mod.Name
		}
		if config.formatter != nil {
			name = config.formatter(name, mod.ModuleDescriptor)
		}
		if exp.Config != nil && exp.Config.Name != "" {
			name = exp.Config.Name
		}

		opts := slices.Concat(config.defaults, mod.Options, exp.Config.Options())

		var r Resolver
		if class, ok := exp.Value.(Class); ok {
			r = AsClassOf(class, opts...)
		} else {
			r = AsFunction(exp.Value, opts...)
		}

		if err := c.Register(name, r); err != nil {
			errs = errs.Append(errors.Wrapf(err, "module %s export %s", mod.Path, exp.Name))
			continue
		}

		c.logger.DebugContext(ctx, "di: module registered",
			slog.String("container", c.id.String()),
			slog.String("module", mod.Path),
			slog.String("name", name),
			slog.String("lifetime", r.Lifetime().String()),
		)
	}

	return errs.Join()
}

func isFactory(v any) bool {
	if _, ok := v.(Class); ok {
		return true
	}
	return v != nil && reflect.TypeOf(v).Kind() == reflect.Func
}
