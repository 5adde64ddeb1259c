package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mc3abe-oss/conveyor-console/internal/catalog"
	"github.com/mc3abe-oss/conveyor-console/internal/store"
)

// SourceOptions selects where a decision command reads its catalog from:
// a SQLite database produced by `import`, or a CUE catalog directory loaded
// on the fly. Exactly one of the two must be set.
type SourceOptions struct {
	*RootOptions
	Database string
	Catalog  string
}

// addSourceFlags registers the --db / --catalog flag pair on a command.
func addSourceFlags(cmd *cobra.Command, opts *SourceOptions) {
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite catalog database")
	cmd.Flags().StringVar(&opts.Catalog, "catalog", "", "path to CUE catalog directory")
}

// validate checks the flag pair is well-formed before any work starts.
func (o *SourceOptions) validate() error {
	if o.Database == "" && o.Catalog == "" {
		return NewExitError(ExitCommandError, "one of --db or --catalog is required")
	}
	if o.Database != "" && o.Catalog != "" {
		return NewExitError(ExitCommandError, "--db and --catalog are mutually exclusive")
	}
	return nil
}

// loadSet reads the full catalog from the configured source. For the
// database source this issues the deterministic list queries; for the
// directory source it compiles the CUE files fail-fast.
func (o *SourceOptions) loadSet(ctx context.Context) (*CatalogSet, error) {
	if o.Catalog != "" {
		set, errs := LoadCatalog(o.Catalog, LoadModeFailFast)
		if len(errs) > 0 {
			return nil, WrapExitError(ExitCommandError, "failed to load catalog", errs[0])
		}
		return set, nil
	}

	st, err := store.Open(o.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	belts, err := st.ListBelts(ctx)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to read belts", err)
	}
	pulleys, err := st.ListPulleys(ctx)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to read pulleys", err)
	}

	return &CatalogSet{Belts: belts, Pulleys: pulleys}, nil
}

// findBelt resolves one belt by catalog key from the configured source.
func (o *SourceOptions) findBelt(ctx context.Context, catalogKey string) (catalog.BeltCatalogItem, error) {
	if o.Database != "" {
		st, err := store.Open(o.Database)
		if err != nil {
			return catalog.BeltCatalogItem{}, WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer st.Close()
		belt, err := st.GetBelt(ctx, catalogKey)
		if err != nil {
			return catalog.BeltCatalogItem{}, WrapExitError(ExitFailure, fmt.Sprintf("belt %q not found", catalogKey), err)
		}
		return belt, nil
	}

	set, errs := LoadCatalog(o.Catalog, LoadModeFailFast)
	if len(errs) > 0 {
		return catalog.BeltCatalogItem{}, WrapExitError(ExitCommandError, "failed to load catalog", errs[0])
	}
	for _, belt := range set.Belts {
		if belt.CatalogKey == catalogKey {
			return belt, nil
		}
	}
	return catalog.BeltCatalogItem{}, NewExitError(ExitFailure, fmt.Sprintf("belt %q not found in catalog", catalogKey))
}

// findGearmotorSeries returns one vendor series' performance points from
// the configured source, ordered by part number.
func (o *SourceOptions) findGearmotorSeries(ctx context.Context, vendor, series string) ([]catalog.GearmotorCandidate, error) {
	if o.Database != "" {
		st, err := store.Open(o.Database)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer st.Close()
		return st.ListGearmotorsBySeries(ctx, vendor, series)
	}

	set, errs := LoadCatalog(o.Catalog, LoadModeFailFast)
	if len(errs) > 0 {
		return nil, WrapExitError(ExitCommandError, "failed to load catalog", errs[0])
	}
	pool := []catalog.GearmotorCandidate{}
	for _, gm := range set.Gearmotors {
		if gm.Vendor == vendor && gm.Series == series {
			pool = append(pool, gm)
		}
	}
	// Match the deterministic database ordering.
	sort.Slice(pool, func(i, j int) bool { return pool[i].PartNumber < pool[j].PartNumber })
	return pool, nil
}
