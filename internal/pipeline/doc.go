// Package pipeline runs a name migration as an ordered sequence of steps.
//
// A migration loads the first-name archive, then the last-name archive,
// normalizes both lists and finally replaces the database tables. Each step
// receives the shared MigrationReport and fills in its part. The pipeline
// stops at the first failing step and returns the error wrapped in a
// StepError that names the phase it happened in. No step opens the database
// before every archive has been loaded and normalized, so a missing or
// malformed input never creates or modifies the database file.
package pipeline
