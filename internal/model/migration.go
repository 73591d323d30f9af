package model

import (
	"time"

	"github.com/google/uuid"
)

// Phase names a stage of the migration. Errors are tagged with the phase
// they happened in so a failed run reports where it stopped.
type Phase string

const (
	// PhaseLoad covers opening, sniffing and decoding an archive.
	PhaseLoad Phase = "load"
	// PhaseNormalize covers trimming, title casing and deduplication.
	PhaseNormalize Phase = "normalize"
	// PhasePersist covers replacing the database tables.
	PhasePersist Phase = "persist"
)

// ListStats collects the per-list counters of a migration run.
type ListStats struct {
	// Source is the archive path the list was loaded from.
	Source string `json:"source"`

	// Format is the serialization format detected in the archive.
	Format string `json:"format,omitempty"`

	// Table is the target table.
	Table string `json:"table"`

	// Raw is the number of values decoded from the archive.
	Raw int `json:"raw"`

	// Skipped counts null, falsy and blank values.
	Skipped int `json:"skipped"`

	// Duplicates counts values dropped because an equal name was already kept.
	Duplicates int `json:"duplicates"`

	// Unique is the number of names in the normalized list.
	Unique int `json:"unique"`

	// Persisted is true once the table replacement committed.
	Persisted bool `json:"persisted"`

	// Batches holds the row count of every INSERT statement issued.
	Batches []int `json:"batches,omitempty"`

	// Digest is the BLAKE2b-256 digest of the persisted names.
	Digest string `json:"digest,omitempty"`
}

// MigrationReport is the result of one invocation of the migration.
// Steps read and fill it in order: load, normalize, persist.
type MigrationReport struct {
	// RunID identifies the run in logs and reports.
	RunID string `json:"run_id"`

	// Database is the SQLite file path written by the run.
	Database string `json:"database"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// FinishedAt is when the run ended, successfully or not.
	FinishedAt time.Time `json:"finished_at"`

	// Atomic reports whether both tables were replaced in one transaction.
	Atomic bool `json:"atomic"`

	// Lists holds the counters per name category.
	Lists map[NameKind]*ListStats `json:"lists"`

	// PerformedSteps lists the steps that ran, in order.
	PerformedSteps []string `json:"performed_steps"`

	// FailedPhase is the phase of the error that stopped the run, if any.
	FailedPhase Phase `json:"failed_phase,omitempty"`

	// Error is the error that stopped the run. Not serialized.
	Error error `json:"-"`

	// ErrorMessage is the serialized form of Error.
	ErrorMessage string `json:"error,omitempty"`

	// Cancelled is true when the run stopped because its context ended.
	Cancelled bool `json:"cancelled,omitempty"`

	// raw and names carry data between steps.
	raw   map[NameKind][]RawValue
	names map[NameKind]*NameList
}

// NewMigrationReport creates a report for a run writing to database.
func NewMigrationReport(database string) *MigrationReport {
	return &MigrationReport{
		RunID:          uuid.NewString(),
		Database:       database,
		StartedAt:      time.Now(),
		Lists:          make(map[NameKind]*ListStats),
		PerformedSteps: make([]string, 0),
		raw:            make(map[NameKind][]RawValue),
		names:          make(map[NameKind]*NameList),
	}
}

// Stats returns the counters for kind, creating them on first use.
func (r *MigrationReport) Stats(kind NameKind) *ListStats {
	s, ok := r.Lists[kind]
	if !ok {
		s = &ListStats{}
		r.Lists[kind] = s
	}
	return s
}

// SetRaw stores the decoded values of an archive until they are normalized.
func (r *MigrationReport) SetRaw(kind NameKind, values []RawValue) {
	r.raw[kind] = values
}

// Raw returns the decoded values stored by SetRaw.
func (r *MigrationReport) Raw(kind NameKind) ([]RawValue, bool) {
	v, ok := r.raw[kind]
	return v, ok
}

// SetNames stores a normalized list and releases the raw values it came from.
func (r *MigrationReport) SetNames(list *NameList) {
	r.names[list.Kind] = list
	delete(r.raw, list.Kind)
}

// Names returns the normalized list for kind.
func (r *MigrationReport) Names(kind NameKind) (*NameList, bool) {
	l, ok := r.names[kind]
	return l, ok
}

// Fail records the error that stopped the run.
func (r *MigrationReport) Fail(phase Phase, err error) {
	r.FailedPhase = phase
	r.Error = err
	if err != nil {
		r.ErrorMessage = err.Error()
	}
}

// Succeeded reports whether the run finished without error.
func (r *MigrationReport) Succeeded() bool {
	return r.Error == nil && !r.Cancelled
}

// Duration returns the wall time of the run.
func (r *MigrationReport) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return time.Since(r.StartedAt)
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
