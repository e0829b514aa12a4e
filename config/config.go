// Package config holds the YAML-decodable options that tune decode and
// analysis behavior, mirroring the teacher's ParseGeneratorConfig pattern:
// a small struct, optional file, empty path meaning defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dpeckham/unvread/internal/unvfmt"
)

// Options tunes decode.Decode and analyze.Analyze. The zero value is not
// directly usable; callers should start from Default() or Load().
type Options struct {
	// SkipOptionalSections names optional markers to skip decoding and
	// capturing entirely. Useful on huge files when only statistics are
	// wanted.
	SkipOptionalSections []string `yaml:"skip_optional_sections"`

	// MaxTableNameLength backs the "longer than N characters" corruption
	// rule applied to table names during analysis.
	MaxTableNameLength int `yaml:"max_table_name_length"`

	// PrintableRatio is the minimum fraction of printable characters
	// a table name must have before analysis flags it as likely corrupt.
	PrintableRatio float64 `yaml:"printable_ratio"`
}

// Default returns the options a decode uses when no config file is given.
func Default() Options {
	return Options{
		MaxTableNameLength: unvfmt.DefaultMaxTableNameLength,
		PrintableRatio:     unvfmt.DefaultMinPrintableRatio,
	}
}

// Load reads and decodes a YAML options file at path. An empty path
// returns Default() without touching the filesystem, mirroring
// ParseGeneratorConfig's handling of an unset config flag.
func Load(path string) (Options, error) {
	opts := Default()
	if path == "" {
		return opts, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return opts, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&opts); err != nil {
		return opts, fmt.Errorf("config: decode %q: %w", path, err)
	}
	if opts.MaxTableNameLength == 0 {
		opts.MaxTableNameLength = unvfmt.DefaultMaxTableNameLength
	}
	if opts.PrintableRatio == 0 {
		opts.PrintableRatio = unvfmt.DefaultMinPrintableRatio
	}
	return opts, nil
}
