package di

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/lakutata/lakutata-sub001/internal/errors"
)

// Manifest is the content of a module file read by [ManifestImporter].
//
// Example:
//
//	default:
//	  factory: users.NewRepository
//	  resolver:
//	    lifetime: SINGLETON
//	    injectionMode: CLASSIC
//	    params: [db, logger?]
//	exports:
//	  cache:
//	    factory: users.NewCache
//	    resolver:
//	      name: userCache
//	      lifetime: SCOPED
type Manifest struct {
	Default *ManifestExport           `yaml:"default"`
	Exports map[string]ManifestExport `yaml:"exports"`
}

// ManifestExport names a factory in the [Catalog] and its inline resolver configuration.
type ManifestExport struct {
	Factory  string        `yaml:"factory"`
	Resolver *ExportConfig `yaml:"resolver"`
}

// ParseManifest decodes a YAML manifest. Unknown fields are an error.
func ParseManifest(r io.Reader) (*Manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return &m, nil
		}
		return nil, errors.Wrap(err, "parse manifest")
	}
	return &m, nil
}

// ManifestImporter returns a [ModuleImporter] that reads YAML manifests and
// looks up their factories in catalog.
func ManifestImporter(catalog *Catalog) ModuleImporter {
	return ModuleImporterFunc(func(_ context.Context, fsys fs.FS, desc ModuleDescriptor) (LoadedModuleDescriptor, error) {
		loaded := LoadedModuleDescriptor{ModuleDescriptor: desc}

		data, err := fs.ReadFile(fsys, desc.Path)
		if err != nil {
			return loaded, errors.Wrap(err, "import manifest")
		}

		m, err := ParseManifest(bytes.NewReader(data))
		if err != nil {
			return loaded, err
		}

		lookup := func(export string, me ManifestExport) (ModuleExport, error) {
			factory, ok := catalog.Lookup(me.Factory)
			if !ok {
				return ModuleExport{}, errors.Errorf("export %s: factory %q not found in catalog", export, me.Factory)
			}
			return ModuleExport{Name: export, Value: factory, Config: me.Resolver}, nil
		}

		var errs errors.MultiError
		if m.Default != nil {
			exp, err := lookup(DefaultExport, *m.Default)
			errs = errs.Append(err)
			if err == nil {
				loaded.Exports = append(loaded.Exports, exp)
			}
		}

		for _, key := range slices.Sorted(maps.Keys(m.Exports)) {
			exp, err := lookup(key, m.Exports[key])
			errs = errs.Append(err)
			if err == nil {
				loaded.Exports = append(loaded.Exports, exp)
			}
		}

		return loaded, errs.Join()
	})
}
