// Package model defines the data structures shared by the migration stages.
//
// This package contains the following main types:
//   - RawValue: One decoded archive element, before normalization
//   - NameList: The normalized, deduplicated names of one category
//   - MigrationReport: The result of a run, filled in by each stage
//
// The loader, the normalizer, the database layer and the report writers all
// exchange these types, so they live in their own package to avoid import
// cycles.
package model
