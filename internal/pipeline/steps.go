package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/JMR-dev/namemigrate/internal/archive"
	"github.com/JMR-dev/namemigrate/internal/config"
	"github.com/JMR-dev/namemigrate/internal/database"
	"github.com/JMR-dev/namemigrate/internal/model"
	"github.com/JMR-dev/namemigrate/internal/names"
)

// sampleSize is how many names are logged at Debug level after normalizing.
const sampleSize = 3

// ErrMissingInput is returned by a step whose input was not produced by an
// earlier step, which means the pipeline was assembled in the wrong order.
var ErrMissingInput = errors.New("missing step input")

// LoadStep reads one archive into the report.
type LoadStep struct {
	kind   model.NameKind
	path   string
	loader *archive.Loader
	out    io.Writer
}

// NewLoadStep creates a step loading the archive at path as the list of kind.
// Progress lines are written to out; nil discards them.
func NewLoadStep(kind model.NameKind, path string, loader *archive.Loader, out io.Writer) *LoadStep {
	if loader == nil {
		loader = archive.NewLoader()
	}
	if out == nil {
		out = io.Discard
	}
	return &LoadStep{kind: kind, path: path, loader: loader, out: out}
}

// Name returns the step name.
func (s *LoadStep) Name() string {
	return "load_" + s.kind.Key()
}

// Phase returns model.PhaseLoad.
func (s *LoadStep) Phase() model.Phase {
	return model.PhaseLoad
}

// Do loads the archive and stores its values for the normalize step.
func (s *LoadStep) Do(_ context.Context, report *model.MigrationReport) error {
	fmt.Fprintf(s.out, "Loading %s from %s...\n", s.kind, s.path)

	payload, err := s.loader.Load(s.path)
	if err != nil {
		return err
	}

	stats := report.Stats(s.kind)
	stats.Source = s.path
	stats.Format = string(payload.Format)
	stats.Raw = len(payload.Values)
	report.SetRaw(s.kind, payload.Values)

	fmt.Fprintf(s.out, "  decoded %d values (%s)\n", stats.Raw, payload.Format)
	return nil
}

// NormalizeStep turns the loaded values of one list into unique names.
type NormalizeStep struct {
	kind       model.NameKind
	table      string
	normalizer *names.Normalizer
	out        io.Writer
	logger     *slog.Logger
}

// NewNormalizeStep creates a step normalizing the list of kind for table.
func NewNormalizeStep(kind model.NameKind, table string, out io.Writer, logger *slog.Logger) *NormalizeStep {
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &NormalizeStep{
		kind:       kind,
		table:      table,
		normalizer: names.NewNormalizer(),
		out:        out,
		logger:     logger,
	}
}

// Name returns the step name.
func (s *NormalizeStep) Name() string {
	return "normalize_" + s.kind.Key()
}

// Phase returns model.PhaseNormalize.
func (s *NormalizeStep) Phase() model.Phase {
	return model.PhaseNormalize
}

// Do normalizes and deduplicates the values loaded for the step's kind.
func (s *NormalizeStep) Do(_ context.Context, report *model.MigrationReport) error {
	raw, ok := report.Raw(s.kind)
	if !ok {
		return fmt.Errorf("%w: no decoded %s", ErrMissingInput, s.kind)
	}

	list, st := s.normalizer.List(s.kind, s.table, raw)

	stats := report.Stats(s.kind)
	stats.Table = s.table
	stats.Skipped = st.Skipped
	stats.Duplicates = st.Duplicates
	stats.Unique = st.Unique
	report.SetNames(list)

	fmt.Fprintf(s.out, "  %s: %d unique names (%d skipped, %d duplicates)\n",
		s.kind, st.Unique, st.Skipped, st.Duplicates)
	s.logger.Debug("normalized list",
		"kind", s.kind.Key(),
		"unique", st.Unique,
		"sample", list.Names[:min(sampleSize, len(list.Names))],
	)
	return nil
}

// PersistStep replaces the database tables with the normalized lists.
// It is the only step that touches the database.
type PersistStep struct {
	path  string
	opts  database.Options
	kinds []model.NameKind
	out   io.Writer
}

// NewPersistStep creates a step writing the lists of kinds, in that order,
// to the database at path.
func NewPersistStep(path string, opts database.Options, out io.Writer, kinds ...model.NameKind) *PersistStep {
	if out == nil {
		out = io.Discard
	}
	if len(kinds) == 0 {
		kinds = model.Kinds()
	}
	return &PersistStep{path: path, opts: opts, kinds: kinds, out: out}
}

// Name returns the step name.
func (s *PersistStep) Name() string {
	return "persist"
}

// Phase returns model.PhasePersist.
func (s *PersistStep) Phase() model.Phase {
	return model.PhasePersist
}

// Do opens the database and replaces every table. Tables committed before a
// failure are marked as persisted in the report.
func (s *PersistStep) Do(ctx context.Context, report *model.MigrationReport) error {
	lists := make([]*model.NameList, 0, len(s.kinds))
	byTable := make(map[string]model.NameKind, len(s.kinds))
	for _, kind := range s.kinds {
		list, ok := report.Names(kind)
		if !ok {
			return fmt.Errorf("%w: no normalized %s", ErrMissingInput, kind)
		}
		lists = append(lists, list)
		byTable[list.Table] = kind
	}

	opts := s.opts
	if opts.Progress == nil {
		opts.Progress = func(table string, written, total int) {
			fmt.Fprintf(s.out, "  %s: %d/%d rows\n", table, written, total)
		}
	}

	db, err := database.Open(s.path, opts)
	if err != nil {
		return err
	}
	defer db.Close()

	report.Atomic = opts.Atomic
	fmt.Fprintf(s.out, "Writing %d tables to %s...\n", len(lists), s.path)

	results, err := db.ReplaceTables(ctx, lists...)
	for _, res := range results {
		stats := report.Stats(byTable[res.Table])
		stats.Persisted = true
		stats.Batches = res.Batches
		stats.Digest = res.Digest
		fmt.Fprintf(s.out, "Inserted %d %s into %s\n", res.Rows, byTable[res.Table], res.Table)
	}
	return err
}

// FromConfig assembles the migration pipeline described by cfg:
// load first names, load last names, normalize both, persist.
// Progress lines are written to out.
func FromConfig(cfg *config.Config, logger *slog.Logger, out io.Writer) (*Pipeline, error) {
	format, err := cfg.ArchiveFormat()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	loader := archive.NewLoader(archive.WithFormat(format), archive.WithLogger(logger))
	opts := database.DefaultOptions()
	opts.BatchSize = cfg.BatchSize
	opts.Atomic = cfg.Atomic

	p := New(WithLogger(logger))
	p.AddSteps(
		NewLoadStep(model.FirstNames, cfg.FirstNamesFile, loader, out),
		NewLoadStep(model.LastNames, cfg.LastNamesFile, loader, out),
		NewNormalizeStep(model.FirstNames, cfg.FirstNamesTable, out, logger),
		NewNormalizeStep(model.LastNames, cfg.LastNamesTable, out, logger),
		NewPersistStep(cfg.DBFile, opts, out, model.FirstNames, model.LastNames),
	)
	return p, nil
}
