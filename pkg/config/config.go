// Package config defines core configuration types for golift.
// These types are pure data structures with no dependency on the loader.
package config

import (
	"fmt"
	"sort"
)

// Default values.
const (
	DefaultPolicy      = "reject"
	DefaultInputFormat = "chrpos"
	DefaultFormat      = "tsv"
)

// GenomePair names an assembly pair and the block files mapping between them.
type GenomePair struct {
	// Name is a human-readable label, e.g. "PomBase ↔ Leupold".
	Name string `yaml:"name,omitempty"`

	GenomeA string `yaml:"genome_a,omitempty"`
	GenomeB string `yaml:"genome_b,omitempty"`

	// BlocksAB is the A→B blocks TSV. Relative paths resolve against the
	// directory of the config file that declared them.
	BlocksAB string `yaml:"blocks_ab"`

	// BlocksBA is the B→A blocks TSV, needed by round trips.
	BlocksBA string `yaml:"blocks_ba,omitempty"`
}

// Label returns Name, or "A ↔ B" built from the genome names, or key.
func (p GenomePair) Label(key string) string {
	switch {
	case p.Name != "":
		return p.Name
	case p.GenomeA != "" && p.GenomeB != "":
		return p.GenomeA + " ↔ " + p.GenomeB
	default:
		return key
	}
}

// BlocksConfig controls how block files are loaded.
type BlocksConfig struct {
	// RejectOverlaps makes overlapping blocks a fatal load error instead of a warning.
	RejectOverlaps bool `yaml:"reject_overlaps"`
}

// CheckConfig controls block file discovery for the check command.
type CheckConfig struct {
	// Extensions are the file extensions picked up when walking directories.
	Extensions []string `yaml:"extensions,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty"`

	FollowSymlinks bool `yaml:"follow_symlinks,omitempty"`
}

// Config is the root configuration structure for golift.
type Config struct {
	// Pairs are named genome pairs selectable with --pair.
	Pairs map[string]GenomePair `yaml:"pairs,omitempty"`

	// DefaultPair is used when no --pair and no block file is given.
	DefaultPair string `yaml:"default_pair,omitempty"`

	// Policy is the interval policy: reject, split or stitch.
	Policy string `yaml:"policy"`

	// InputFormat is the query syntax: chrpos, bed or region.
	InputFormat string `yaml:"input_format"`

	// Format is the output format: tsv, json, summary or html.
	Format string `yaml:"format"`

	// Jobs is the number of parallel workers (0 means one per CPU).
	Jobs int `yaml:"jobs"`

	Blocks BlocksConfig `yaml:"blocks"`

	Check CheckConfig `yaml:"check,omitempty"`

	// CLI-level options (not persisted to config files).

	// Strict, AllowSplit and Stitch are the interval policy switches.
	Strict     bool `yaml:"-"`
	AllowSplit bool `yaml:"-"`
	Stitch     bool `yaml:"-"`

	// Stats prints summary counters to stderr.
	Stats bool `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Pairs:       make(map[string]GenomePair),
		Policy:      DefaultPolicy,
		InputFormat: DefaultInputFormat,
		Format:      DefaultFormat,
		Jobs:        0, // 0 means use runtime.NumCPU
	}
}

// PolicySwitchesSet reports whether any interval policy switch was given on
// the command line.
func (c *Config) PolicySwitchesSet() bool {
	return c.Strict || c.AllowSplit || c.Stitch
}

// PairNames returns the configured pair keys, sorted.
func (c *Config) PairNames() []string {
	names := make([]string, 0, len(c.Pairs))
	for name := range c.Pairs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolvePair returns the pair named name, falling back to DefaultPair and
// then to the only configured pair.
func (c *Config) ResolvePair(name string) (string, GenomePair, error) {
	if name == "" {
		name = c.DefaultPair
	}
	if name == "" && len(c.Pairs) == 1 {
		name = c.PairNames()[0]
	}
	if name == "" {
		return "", GenomePair{}, fmt.Errorf("no genome pair selected; give block files or one of: %v", c.PairNames())
	}
	pair, ok := c.Pairs[name]
	if !ok {
		return "", GenomePair{}, fmt.Errorf("unknown genome pair %q; configured pairs: %v", name, c.PairNames())
	}
	return name, pair, nil
}

// HasPair reports whether name is configured.
func (c *Config) HasPair(name string) bool {
	_, ok := c.Pairs[name]
	return ok
}
