package results

import (
	"fmt"
	"unicode/utf8"
)

// Config holds configuration for locating and parsing result files.
type Config struct {
	// File is an explicit single result file. It wins over Path.
	File string `mapstructure:"file" default:""`
	// Path is a directory of *.csv result files, or a single file.
	Path string `mapstructure:"path" default:""`
	// Delimiter is the single character separating test name and status.
	Delimiter string `mapstructure:"delimiter" default:","`
	// Source selects where result files are read from (local, storage).
	Source string `mapstructure:"source" default:"local"`
	// ArchivePrefix enables archiving processed files to storage under this prefix.
	ArchivePrefix string `mapstructure:"archive_prefix" default:""`
}

const (
	SourceLocal   = "local"
	SourceStorage = "storage"
)

// DelimiterRune returns the configured delimiter as a rune.
// The escape sequence `\t` is accepted for tab separated files.
func (c Config) DelimiterRune() (rune, error) {
	d := c.Delimiter
	if d == `\t` {
		return '\t', nil
	}
	if utf8.RuneCountInString(d) != 1 {
		return 0, fmt.Errorf("delimiter must be exactly one character, got %q", d)
	}
	r, _ := utf8.DecodeRuneInString(d)
	return r, nil
}

// IsValidSource checks if the configured source is supported.
func (c Config) IsValidSource() bool {
	switch c.Source {
	case SourceLocal, SourceStorage:
		return true
	default:
		return false
	}
}
