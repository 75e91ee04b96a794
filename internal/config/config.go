package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"
	"unicode"
)

// Base58Alphabet is the restricted alphabet used by Solana addresses.
// 0, O, I and l are excluded to avoid visual ambiguity.
const Base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// Errors
var (
	ErrNoPatternSpecified = errors.New("must specify either --prefix or --suffix")
	ErrInvalidPattern     = errors.New("pattern contains characters outside the base58 alphabet")
	ErrWorkerCount        = errors.New("worker count out of range")
)

// Config holds the search configuration. It is immutable once a search
// has started; validation happens before any worker is spawned.
type Config struct {
	Workers     int
	Prefix      string
	Suffix      string
	IgnoreCase  bool
	MaxAttempts int64 // per worker, 0 means unlimited
	Verbose     bool
	LogFile     string
	Outfile     string

	BatchSize        int64         // attempts between progress deltas
	ProgressInterval time.Duration // minimum spacing of progress callbacks
	StallTimeout     time.Duration // no deltas from any worker for this long fails the search
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		Workers:          runtime.NumCPU(),
		BatchSize:        10000,
		ProgressInterval: time.Second,
		StallTimeout:     30 * time.Second,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Prefix == "" && c.Suffix == "" {
		return ErrNoPatternSpecified
	}
	if err := validateAlphabet(c.Prefix); err != nil {
		return fmt.Errorf("prefix: %w", err)
	}
	if err := validateAlphabet(c.Suffix); err != nil {
		return fmt.Errorf("suffix: %w", err)
	}
	if max := 2 * runtime.NumCPU(); c.Workers < 1 || c.Workers > max {
		return fmt.Errorf("%w: got %d, want 1-%d", ErrWorkerCount, c.Workers, max)
	}
	return nil
}

// validateAlphabet rejects any character not in the restricted base58
// alphabet. The check is case-exact: 'l' is invalid even when the
// search itself is case-insensitive.
func validateAlphabet(pattern string) error {
	for _, r := range pattern {
		if !strings.ContainsRune(Base58Alphabet, r) {
			return fmt.Errorf("%w: %q", ErrInvalidPattern, r)
		}
	}
	return nil
}

// Describe returns a human-readable description of the search target
func (c *Config) Describe() string {
	var parts []string
	if c.Prefix != "" {
		parts = append(parts, "prefix: "+c.Prefix)
	}
	if c.Suffix != "" {
		parts = append(parts, "suffix: "+c.Suffix)
	}
	if len(parts) == 0 {
		return "unknown"
	}
	desc := strings.Join(parts, ", ")
	if c.IgnoreCase {
		desc += " (case-insensitive)"
	}
	return desc
}

// EstimateAttempts returns the expected number of keypairs to generate
// before the pattern matches. Each fixed position costs a factor of 58;
// under case folding a letter position matches both cases, halving its
// cost. Purely informational.
func (c *Config) EstimateAttempts() float64 {
	estimate := 1.0
	for _, r := range c.Prefix + c.Suffix {
		if c.IgnoreCase && unicode.IsLetter(r) {
			estimate *= 58.0 / 2.0
		} else {
			estimate *= 58.0
		}
	}
	return estimate
}
