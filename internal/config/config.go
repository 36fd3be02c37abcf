// Package config loads the compilation-wide settings the semantic core
// consumes: provenance mode, debug reporting, and the runtime domain
// width. The rest of the command line (source discovery, output paths,
// lowering/codegen flags) lives with the caller; this package only
// names the keys the core itself reads.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ProvenanceMode selects how derivation-tracking columns are added, or
// disables the pass entirely.
type ProvenanceMode string

const (
	ProvenanceNone           ProvenanceMode = "none"
	ProvenanceExplain        ProvenanceMode = "explain"
	ProvenanceExplore        ProvenanceMode = "explore"
	ProvenanceSubtreeHeights ProvenanceMode = "subtreeHeights"
)

// DomainSize is the bit width used to represent signed/unsigned/float
// values downstream of this core. It has no effect on inference itself;
// the core only threads it through so lowering can pick the matching
// representation.
type DomainSize int

const (
	Domain32 DomainSize = 32
	Domain64 DomainSize = 64
)

// Config is the immutable set of flags passed into every pass
// constructor for one compilation. It is read once at startup and never
// mutated afterward -- passes that need it take a *Config parameter
// rather than reaching for a process-wide singleton.
type Config struct {
	Provenance ProvenanceMode `yaml:"provenance"`
	DomainSize DomainSize     `yaml:"ramDomainSize"`

	// DebugReport, when non-empty, names the debug channel to emit
	// (currently only "type-analysis" is recognized); it is advisory
	// output alongside the semantic result, never part of it.
	DebugReport string `yaml:"debugReport"`
}

// Default returns the core's out-of-the-box configuration: provenance
// disabled, 64-bit domain, no debug channel.
func Default() *Config {
	return &Config{
		Provenance: ProvenanceNone,
		DomainSize: Domain64,
	}
}

// Load reads a YAML configuration file and overlays it onto Default().
// Missing keys keep their default value.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Provenance {
	case ProvenanceNone, ProvenanceExplain, ProvenanceExplore, ProvenanceSubtreeHeights:
	default:
		return fmt.Errorf("config: unrecognized provenance mode %q", c.Provenance)
	}
	switch c.DomainSize {
	case Domain32, Domain64, 0:
	default:
		return fmt.Errorf("config: unsupported RAM_DOMAIN_SIZE %d", c.DomainSize)
	}
	if c.DomainSize == 0 {
		c.DomainSize = Domain64
	}
	return nil
}

// WantsDebugReport reports whether the given debug channel was requested.
func (c *Config) WantsDebugReport(channel string) bool {
	return c.DebugReport == channel
}

// RunsProvenance reports whether §4.E should execute at all.
func (c *Config) RunsProvenance() bool {
	return c.Provenance != ProvenanceNone && c.Provenance != ""
}
