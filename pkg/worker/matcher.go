package worker

import (
	"strings"

	"github.com/crypt0miester/solana-vanity-miner/pkg/types"
)

// Matcher decides whether a candidate address satisfies the configured
// prefix/suffix rule. Pure; no state beyond the pattern itself, so a
// single value is shared read-only by every worker.
type Matcher struct {
	prefix     string
	suffix     string
	ignoreCase bool
}

// NewMatcher builds a matcher from the worker configuration.
func NewMatcher(cfg *types.WorkerConfig) Matcher {
	return Matcher{
		prefix:     cfg.Prefix,
		suffix:     cfg.Suffix,
		ignoreCase: cfg.IgnoreCase,
	}
}

// Match reports whether addr satisfies the pattern. The address itself
// is never case-folded; under IgnoreCase only the comparison folds,
// via EqualFold, so the hot path stays allocation-free.
func (m Matcher) Match(addr string) bool {
	if n := len(m.prefix); n > 0 {
		if len(addr) < n || !m.equal(addr[:n], m.prefix) {
			return false
		}
	}
	if n := len(m.suffix); n > 0 {
		if len(addr) < n || !m.equal(addr[len(addr)-n:], m.suffix) {
			return false
		}
	}
	return true
}

func (m Matcher) equal(a, b string) bool {
	if m.ignoreCase {
		return strings.EqualFold(a, b)
	}
	return a == b
}
