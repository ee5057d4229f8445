// Package rules matches comment text against per-post keyword rules and edits rule sets.
package rules

import (
	"math/rand/v2"
	"strings"

	"github.com/umputun/autoreply/pkg/domain"
)

// Picker returns an index in [0, n) used to choose one of n candidate replies
type Picker func(n int) int

// RandomPick picks uniformly at random
func RandomPick(n int) int {
	return rand.IntN(n) //nolint:gosec // reply variety, not security
}

// FirstPick always picks the first candidate, handy for previews and tests
func FirstPick(int) int { return 0 }

// Match runs comment text against the post rules. Keywords are tried in insertion order and
// the first one contained in the lowercased text wins. Matching is substring based, so a short
// keyword also hits inside longer words. Without a keyword hit the default response is used,
// with Matched left false. Empty text never matches and never gets the default.
func Match(text string, cfg domain.PostRuleConfig, pick Picker) domain.MatchResult {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return domain.MatchResult{}
	}
	if pick == nil {
		pick = RandomPick
	}

	if cfg.Keywords != nil {
		for pair := cfg.Keywords.Oldest(); pair != nil; pair = pair.Next() {
			kw := strings.ToLower(strings.TrimSpace(pair.Key))
			if kw == "" || len(pair.Value) == 0 || !strings.Contains(text, kw) {
				continue
			}
			idx := pick(len(pair.Value))
			if idx < 0 || idx >= len(pair.Value) {
				idx = 0
			}
			return domain.MatchResult{Matched: true, Reply: pair.Value[idx], Keyword: pair.Key}
		}
	}

	return domain.MatchResult{Reply: strings.TrimSpace(cfg.DefaultResponse)}
}
