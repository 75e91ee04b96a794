package config

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:   "valid prefix",
			mutate: func(c *Config) { c.Prefix = "Ab" },
		},
		{
			name:   "valid suffix",
			mutate: func(c *Config) { c.Suffix = "xyz" },
		},
		{
			name:   "valid prefix and suffix",
			mutate: func(c *Config) { c.Prefix = "A"; c.Suffix = "z" },
		},
		{
			name:    "no pattern",
			mutate:  func(c *Config) {},
			wantErr: ErrNoPatternSpecified,
		},
		{
			name:    "prefix with zero digit",
			mutate:  func(c *Config) { c.Prefix = "0abc" },
			wantErr: ErrInvalidPattern,
		},
		{
			name:    "prefix with capital O",
			mutate:  func(c *Config) { c.Prefix = "Oops" },
			wantErr: ErrInvalidPattern,
		},
		{
			name:    "suffix with capital I",
			mutate:  func(c *Config) { c.Suffix = "Ice" },
			wantErr: ErrInvalidPattern,
		},
		{
			name:    "suffix with lowercase l",
			mutate:  func(c *Config) { c.Suffix = "cool" },
			wantErr: ErrInvalidPattern,
		},
		{
			name:    "non-base58 character",
			mutate:  func(c *Config) { c.Prefix = "a!b" },
			wantErr: ErrInvalidPattern,
		},
		{
			name:    "excluded characters rejected even case-insensitively",
			mutate:  func(c *Config) { c.Prefix = "l"; c.IgnoreCase = true },
			wantErr: ErrInvalidPattern,
		},
		{
			name:    "zero workers",
			mutate:  func(c *Config) { c.Prefix = "a"; c.Workers = 0 },
			wantErr: ErrWorkerCount,
		},
		{
			name:    "negative workers",
			mutate:  func(c *Config) { c.Prefix = "a"; c.Workers = -1 },
			wantErr: ErrWorkerCount,
		},
		{
			name:    "too many workers",
			mutate:  func(c *Config) { c.Prefix = "a"; c.Workers = 2*runtime.NumCPU() + 1 },
			wantErr: ErrWorkerCount,
		},
		{
			name:   "workers at upper bound",
			mutate: func(c *Config) { c.Prefix = "a"; c.Workers = 2 * runtime.NumCPU() },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	cfg := NewConfig()
	cfg.Prefix = "Ab"
	require.Equal(t, "prefix: Ab", cfg.Describe())

	cfg.Suffix = "yz"
	require.Equal(t, "prefix: Ab, suffix: yz", cfg.Describe())

	cfg.IgnoreCase = true
	require.Equal(t, "prefix: Ab, suffix: yz (case-insensitive)", cfg.Describe())
}

func TestEstimateAttempts(t *testing.T) {
	cfg := NewConfig()
	cfg.Prefix = "A"
	require.InDelta(t, 58.0, cfg.EstimateAttempts(), 0.001)

	cfg.IgnoreCase = true
	require.InDelta(t, 29.0, cfg.EstimateAttempts(), 0.001)

	// digits have no case pair
	cfg.Prefix = "7"
	require.InDelta(t, 58.0, cfg.EstimateAttempts(), 0.001)

	cfg.Prefix = "Ab"
	cfg.Suffix = "c"
	cfg.IgnoreCase = false
	require.InDelta(t, 58.0*58.0*58.0, cfg.EstimateAttempts(), 0.001)
}
