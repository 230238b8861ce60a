package matrix

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matrixforge/pymatrix/pkg/integrations/endoflife"
	"github.com/matrixforge/pymatrix/pkg/platform"
	"github.com/matrixforge/pymatrix/pkg/pyversion"
)

// Options configures a Builder. The zero value wires the live index clients
// with default timeouts.
type Options struct {
	// Timeout bounds each individual index fetch. Zero means the
	// integrations default.
	Timeout time.Duration

	// Logger receives progress and degradation warnings. Nil means the
	// process default logger.
	Logger *log.Logger

	// Catalogs overrides the release catalog per implementation name.
	// Missing implementations fall back to the live clients. Used to inject
	// pre-fetched snapshots in tests.
	Catalogs map[string]Catalog

	// EOL overrides the end-of-life source. Nil means the live
	// endoflife.date client.
	EOL EOLSource
}

// Builder drives the resolution pipeline: fetch catalogs and EOL data
// concurrently, resolve bounds, filter by range and platform, and assemble
// the ordered, deduplicated matrix.
//
// A Builder is stateless across runs and safe for concurrent use.
type Builder struct {
	timeout  time.Duration
	log      *log.Logger
	catalogs map[string]Catalog
	eol      EOLSource
}

// NewBuilder creates a Builder from opts.
func NewBuilder(opts Options) *Builder {
	b := &Builder{
		timeout:  opts.Timeout,
		log:      opts.Logger,
		catalogs: opts.Catalogs,
		eol:      opts.EOL,
	}
	if b.log == nil {
		b.log = log.Default()
	}
	if b.eol == nil {
		b.eol = &eolSource{endoflife.NewClient(b.timeout)}
	}
	return b
}

// Build resolves the constraint into the final matrix.
//
// All index fetches run concurrently and are joined before resolution
// begins; cancellation of ctx aborts every outstanding fetch and fails the
// run with the context's error. A catalog fetch failure excludes that
// implementation with a warning unless it empties the requested set, in
// which case the run fails with the *FetchError. An EOL fetch failure only
// degrades "auto" minimum resolution to the oldest catalog version.
//
// The output order is deterministic: runners in constraint order, then
// implementations in constraint order, then versions ascending. Duplicate
// (runner, implementation, version) triples are dropped. Zero surviving
// entries fail with ErrEmptyMatrix.
func (b *Builder) Build(ctx context.Context, c Constraint) ([]Entry, error) {
	logger := b.log.With("run", uuid.NewString())

	if len(c.Runners) == 0 {
		return nil, fmt.Errorf("constraint field runners is empty: %w", ErrEmptyMatrix)
	}
	if len(c.Implementations) == 0 {
		c.Implementations = []string{CPython.Name}
	}

	impls := make([]*Implementation, len(c.Implementations))
	for i, name := range c.Implementations {
		impl := Find(name)
		if impl == nil {
			return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownImplementation, name, knownNames())
		}
		impls[i] = impl
	}

	snapshots, eolRecords, fetchErrs, err := b.fetchAll(ctx, impls, c.MinVersion == Auto, logger)
	if err != nil {
		return nil, err
	}

	// Containment: drop implementations whose catalog fetch failed, but
	// fail the run when nothing is left to resolve.
	candidates := make([][]Release, len(impls))
	available := 0
	for i, impl := range impls {
		if fetchErrs[i] != nil {
			logger.Warnf("excluding %s from the matrix: %v", impl.Name, fetchErrs[i])
			continue
		}
		available++

		min, max, err := ResolveBounds(c, impl.Name, snapshots[i], eolRecords)
		if err != nil {
			return nil, err
		}
		logger.Debugf("resolved bounds for %s: %s to %s", impl.Name, min, max)

		candidates[i] = inRange(snapshots[i], min, max, c.IncludePrereleases)
	}
	if available == 0 {
		for _, err := range fetchErrs {
			if err != nil {
				return nil, err
			}
		}
	}

	entries := assemble(c, impls, candidates)
	if len(entries) == 0 {
		return nil, fmt.Errorf("no release of %s matches min=%s max=%s on runners %s: %w",
			strings.Join(c.Implementations, ","), c.MinVersion, c.MaxVersion,
			strings.Join(c.Runners, ","), ErrEmptyMatrix)
	}
	logger.Debugf("built matrix with %d entries", len(entries))
	return entries, nil
}

// fetchAll issues every index fetch concurrently and joins on all of them.
// Fetch failures are captured per slot; only context cancellation aborts
// the join itself.
func (b *Builder) fetchAll(ctx context.Context, impls []*Implementation, needEOL bool, logger *log.Logger) ([][]Release, map[string]EOLRecord, []error, error) {
	snapshots := make([][]Release, len(impls))
	fetchErrs := make([]error, len(impls))
	var eolRecords map[string]EOLRecord

	g, gctx := errgroup.WithContext(ctx)
	for i, impl := range impls {
		g.Go(func() error {
			releases, err := b.catalog(impl).Releases(gctx)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				fetchErrs[i] = &FetchError{Source: "release catalog", Implementation: impl.Name, Err: err}
				return nil
			}
			snapshots[i] = releases
			return nil
		})
	}
	if needEOL {
		g.Go(func() error {
			records, err := b.eol.Records(gctx)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				ferr := &FetchError{Source: "eol registry", Err: err}
				logger.Warnf("falling back to oldest catalog version for auto minimum: %v", ferr)
				return nil
			}
			eolRecords = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return snapshots, eolRecords, fetchErrs, nil
}

func (b *Builder) catalog(impl *Implementation) Catalog {
	if c, ok := b.catalogs[impl.Name]; ok {
		return c
	}
	return impl.NewCatalog(b.timeout)
}

// inRange filters releases to [min, max] (both inclusive) and the
// pre-release flag, returning them in ascending version order.
func inRange(releases []Release, min, max pyversion.Version, includePrereleases bool) []Release {
	var out []Release
	for _, r := range releases {
		if r.Version.Less(min) || max.Less(r.Version) {
			continue
		}
		if r.Prerelease && !includePrereleases {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version.Less(out[j].Version) })
	return out
}

// assemble crosses runners with the per-implementation candidates in the
// deterministic output order and deduplicates identical triples.
func assemble(c Constraint, impls []*Implementation, candidates [][]Release) []Entry {
	var entries []Entry
	seen := make(map[Entry]bool)
	add := func(e Entry) {
		if !seen[e] {
			seen[e] = true
			entries = append(entries, e)
		}
	}

	for _, label := range c.Runners {
		runner := platform.InferRunner(label)
		for i, impl := range impls {
			for _, rel := range candidates[i] {
				if !c.CheckPlatform || Compatible(rel, runner, false) {
					add(Entry{
						Runner:         label,
						Implementation: impl.Name,
						Version:        impl.Display(rel.Version),
					})
				}
				if !c.IncludeFreethreaded || !rel.HasFreethreaded() {
					continue
				}
				if !c.CheckPlatform || Compatible(rel, runner, true) {
					add(Entry{
						Runner:         label,
						Implementation: impl.Name,
						Version:        impl.Display(rel.Version.AsFreethreaded()),
					})
				}
			}
		}
	}
	return entries
}

func knownNames() string {
	names := make([]string, len(Known))
	for i, impl := range Known {
		names[i] = impl.Name
	}
	return strings.Join(names, ", ")
}

// eolSource adapts the endoflife.date client to the EOLSource interface,
// evaluating EOL status at fetch time.
type eolSource struct {
	client *endoflife.Client
}

func (s *eolSource) Records(ctx context.Context) (map[string]EOLRecord, error) {
	cycles, err := s.client.FetchCycles(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	records := make(map[string]EOLRecord, len(cycles))
	for _, c := range cycles {
		records[c.Cycle] = EOLRecord{
			Line: c.Cycle,
			Date: c.EOL.Date,
			EOL:  c.IsEOL(now),
		}
	}
	return records, nil
}
