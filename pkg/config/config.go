package config

import (
	"fmt"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/paths"
)

// Output format names accepted by output.format
const (
	FormatAuto = "auto"
	FormatTerm = "term"
	FormatText = "text"
	FormatJSON = "json"
)

// Config is the effective dotlink configuration
type Config struct {
	// CreateParents creates a missing parent directory of a link target
	CreateParents bool `koanf:"create_parents" toml:"create_parents" yaml:"create_parents"`

	Output Output `koanf:"output" toml:"output" yaml:"output"`

	// Links are reconciled in order
	Links []LinkSpec `koanf:"links" toml:"links" yaml:"links"`

	// File is the configuration file that was loaded, if any
	File string `koanf:"-" toml:"-" yaml:"-"`
}

// Output holds output-related configuration
type Output struct {
	Format string `koanf:"format" toml:"format" yaml:"format"`
}

// LinkSpec is one configured link. Source is relative to the dotfiles root
// unless absolute; Target may contain ~ and environment references.
type LinkSpec struct {
	Source string `koanf:"source" toml:"source" yaml:"source" json:"source"`
	Target string `koanf:"target" toml:"target" yaml:"target" json:"target"`
}

func (l LinkSpec) String() string {
	return fmt.Sprintf("%s -> %s", l.Source, l.Target)
}

// Validate checks the configuration for missing fields and duplicate targets
func (c *Config) Validate() error {
	switch c.Output.Format {
	case "", FormatAuto, FormatTerm, "terminal", FormatText, "plain", FormatJSON:
	default:
		return errors.Newf(errors.ErrConfigValid, "unknown output format %q", c.Output.Format).
			WithDetail("format", c.Output.Format)
	}

	seen := make(map[string]int, len(c.Links))
	for i, l := range c.Links {
		if err := paths.ValidatePath(l.Source); err != nil {
			return errors.Wrapf(err, errors.ErrConfigValid, "links[%d]: invalid source", i).
				WithDetail("index", i)
		}
		if err := paths.ValidatePath(l.Target); err != nil {
			return errors.Wrapf(err, errors.ErrConfigValid, "links[%d]: invalid target", i).
				WithDetail("index", i)
		}
		if prev, ok := seen[l.Target]; ok {
			return errors.Newf(errors.ErrConfigValid, "links[%d] and links[%d] share target %q", prev, i, l.Target).
				WithDetail("target", l.Target)
		}
		seen[l.Target] = i
	}
	return nil
}
