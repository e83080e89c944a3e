// Command dimodules lists the registrations declared by module manifests.
//
// Usage:
//
//	dimodules [-cwd dir] [-camel] [-log-level level] pattern...
//
// Settings can also be provided with the DIMODULES_CWD, DIMODULES_CAMEL_CASE and
// DIMODULES_LOG_LEVEL environment variables or a .env file.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	di "github.com/lakutata/lakutata-sub001"
	"github.com/lakutata/lakutata-sub001/internal/config"
	"github.com/lakutata/lakutata-sub001/internal/errors"
	"github.com/lakutata/lakutata-sub001/params"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	flags := flag.NewFlagSet("dimodules", flag.ContinueOnError)
	flags.SetOutput(stderr)
	cfg.RegisterFlags(flags)
	if err := flags.Parse(args); err != nil {
		return 2
	}
	if flags.NArg() == 0 {
		fmt.Fprintln(stderr, "usage: dimodules [flags] pattern...")
		flags.PrintDefaults()
		return 2
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	rows, err := listRegistrations(ctx, logger, os.DirFS(cfg.CWD), cfg, flags.Args())
	printRows(stdout, rows)
	if err != nil {
		logger.ErrorContext(ctx, "dimodules failed", "error", err)
		return 1
	}
	return 0
}

type row struct {
	module   string
	name     string
	factory  string
	lifetime string
	mode     string
	params   string
}

func listRegistrations(
	ctx context.Context,
	logger *slog.Logger,
	fsys fs.FS,
	cfg *config.Config,
	globs []string,
) ([]row, error) {
	mods, err := di.ListModules(fsys, ".", di.Patterns(globs...))
	if err != nil {
		return nil, err
	}
	logger.DebugContext(ctx, "modules found", "count", len(mods))

	var rows []row
	var errs errors.MultiError
	for _, mod := range mods {
		data, err := fs.ReadFile(fsys, mod.Path)
		if err != nil {
			errs = errs.Append(errors.Wrapf(err, "module %s", mod.Path))
			continue
		}

		m, err := di.ParseManifest(bytes.NewReader(data))
		if err != nil {
			errs = errs.Append(errors.Wrapf(err, "module %s", mod.Path))
			continue
		}

		if m.Default != nil {
			r, err := describe(cfg, mod, mod.Name, *m.Default)
			errs = errs.Append(err)
			rows = append(rows, r)
		}
		for _, key := range slices.Sorted(maps.Keys(m.Exports)) {
			exp := m.Exports[key]
			if exp.Resolver == nil {
				logger.DebugContext(ctx, "skipping export without resolver", "module", mod.Path, "export", key)
				continue
			}
			r, err := describe(cfg, mod, key, exp)
			errs = errs.Append(err)
			rows = append(rows, r)
		}
	}

	return rows, errs.Join()
}

func describe(cfg *config.Config, mod di.ModuleDescriptor, name string, exp di.ManifestExport) (row, error) {
	if cfg.CamelCase {
		name = di.CamelCase(name, mod)
	}

	r := row{
		module:   mod.Path,
		name:     name,
		factory:  exp.Factory,
		lifetime: di.Transient.String(),
		mode:     di.Proxy.String(),
		params:   "-",
	}

	rc := exp.Resolver
	if rc == nil {
		return r, nil
	}
	if rc.Name != "" {
		r.name = rc.Name
	}
	if rc.Lifetime != nil {
		r.lifetime = rc.Lifetime.String()
	}
	if rc.InjectionMode != nil {
		r.mode = rc.InjectionMode.String()
	}

	var names []string
	switch {
	case len(rc.Params) > 0:
		names = rc.Params
	case rc.Signature != "":
		ps, err := params.Parse(rc.Signature)
		if err != nil {
			return r, errors.Wrapf(err, "module %s export %s", mod.Path, name)
		}
		for _, p := range ps {
			if p.Optional {
				names = append(names, p.Name+"?")
			} else {
				names = append(names, p.Name)
			}
		}
	}
	if len(names) > 0 {
		r.params = strings.Join(names, ",")
	}
	return r, nil
}

func printRows(w io.Writer, rows []row) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MODULE\tNAME\tFACTORY\tLIFETIME\tMODE\tPARAMS")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", r.module, r.name, r.factory, r.lifetime, r.mode, r.params)
	}
	_ = tw.Flush()
}
