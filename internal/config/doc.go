// Package config holds the settings of a name migration run.
// A Config starts from NewConfig defaults and is then layered with the YAML
// configuration file, NAMEMIGRATE_* environment variables and command-line
// flags, in that order. Validate is called once before the pipeline starts.
package config
