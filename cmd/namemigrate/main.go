// Package main provides the entry point for the namemigrate CLI.
//
// namemigrate loads the gzip-compressed first-name and last-name archives,
// normalizes and deduplicates the names and replaces the FirstNames and
// LastNames tables of a SQLite database with them.
//
// Usage:
//
//	namemigrate migrate
//	namemigrate migrate --first-names given.pkl.gz --last-names family.pkl.gz -d names.sqlite
//	namemigrate verify -d names.sqlite
//
// See --help for all available options.
package main

import "os"

// main is the entry point for namemigrate.
func main() {
	os.Exit(Execute())
}
