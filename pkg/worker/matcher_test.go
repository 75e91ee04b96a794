package worker

import (
	"testing"

	"github.com/crypt0miester/solana-vanity-miner/pkg/types"
)

func TestMatcher(t *testing.T) {
	// a plausible 44-char base58 address
	const addr = "Ab9nd3kQm7TuVvRw2xYz5Jp8Hs4Lc6Ne1Gf3Kh5Mj7ab"

	tests := []struct {
		name     string
		cfg      types.WorkerConfig
		expected bool
	}{
		{
			name:     "prefix match",
			cfg:      types.WorkerConfig{Prefix: "Ab9"},
			expected: true,
		},
		{
			name:     "prefix mismatch",
			cfg:      types.WorkerConfig{Prefix: "9999"},
			expected: false,
		},
		{
			name:     "prefix wrong case",
			cfg:      types.WorkerConfig{Prefix: "ab9"},
			expected: false,
		},
		{
			name:     "prefix wrong case ignored",
			cfg:      types.WorkerConfig{Prefix: "aB9", IgnoreCase: true},
			expected: true,
		},
		{
			name:     "suffix match",
			cfg:      types.WorkerConfig{Suffix: "7ab"},
			expected: true,
		},
		{
			name:     "suffix mismatch",
			cfg:      types.WorkerConfig{Suffix: "xyz"},
			expected: false,
		},
		{
			name:     "suffix wrong case ignored",
			cfg:      types.WorkerConfig{Suffix: "7AB", IgnoreCase: true},
			expected: true,
		},
		{
			name:     "prefix and suffix both match",
			cfg:      types.WorkerConfig{Prefix: "Ab", Suffix: "ab"},
			expected: true,
		},
		{
			name:     "prefix matches but suffix does not",
			cfg:      types.WorkerConfig{Prefix: "Ab", Suffix: "zz"},
			expected: false,
		},
		{
			name:     "pattern longer than address",
			cfg:      types.WorkerConfig{Prefix: addr + "extra"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMatcher(&tt.cfg)
			if got := m.Match(addr); got != tt.expected {
				t.Errorf("Match(%q) = %v, want %v", addr, got, tt.expected)
			}
		})
	}
}
