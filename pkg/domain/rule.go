package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// MaxResponses is the maximum number of candidate replies for a single keyword
const MaxResponses = 7

// Responses is a normalized list of candidate replies for a keyword.
// It decodes from either a single JSON string or a list of strings and always encodes as a list.
type Responses []string

// UnmarshalJSON accepts "text" or ["text", ...]
func (r *Responses) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*r = NormalizeResponses([]string{single})
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("responses must be a string or a list of strings: %w", err)
	}
	*r = NormalizeResponses(list)
	return nil
}

// NormalizeResponses trims every entry and drops the empty ones
func NormalizeResponses(list []string) Responses {
	res := make(Responses, 0, len(list))
	for _, s := range list {
		if s = strings.TrimSpace(s); s != "" {
			res = append(res, s)
		}
	}
	return res
}

// Keywords maps keyword to its candidate replies. Insertion order is the match priority.
type Keywords = orderedmap.OrderedMap[string, Responses]

// NewKeywords makes an empty keyword map
func NewKeywords() *Keywords {
	return orderedmap.New[string, Responses]()
}

// PostRuleConfig is the auto-reply configuration of a single monitored post
type PostRuleConfig struct {
	PostID          string     `json:"post_id"`
	Keywords        *Keywords  `json:"keywords"`
	DefaultResponse string     `json:"default_response"`
	Enabled         bool       `json:"enabled"`
	EnabledSince    *time.Time `json:"enabled_since,omitempty"`
	DMMessage       string     `json:"dm_message,omitempty"`
	DMButtonText    string     `json:"dm_button_text,omitempty"`
	DMButtonURL     string     `json:"dm_button_url,omitempty"`
}

// DefaultPostRuleConfig returns the config used for posts without any stored record
func DefaultPostRuleConfig(postID string) PostRuleConfig {
	return PostRuleConfig{PostID: postID, Keywords: NewKeywords()}
}

// HasDM reports whether a direct message should follow a matched reply
func (c PostRuleConfig) HasDM() bool {
	return strings.TrimSpace(c.DMMessage) != ""
}

// KeywordCount returns the number of keyword rules, nil-safe
func (c PostRuleConfig) KeywordCount() int {
	if c.Keywords == nil {
		return 0
	}
	return c.Keywords.Len()
}

// Validate checks the per-keyword invariants: 1..MaxResponses non-empty replies each
func (c PostRuleConfig) Validate() error {
	if c.Keywords == nil {
		return nil
	}
	for pair := c.Keywords.Oldest(); pair != nil; pair = pair.Next() {
		if strings.TrimSpace(pair.Key) == "" {
			return fmt.Errorf("%w: empty keyword", ErrInvalidRule)
		}
		if len(pair.Value) == 0 {
			return fmt.Errorf("%w: keyword %q has no responses", ErrInvalidRule, pair.Key)
		}
		if len(pair.Value) > MaxResponses {
			return fmt.Errorf("%w: keyword %q has %d responses", ErrTooManyResponses, pair.Key, len(pair.Value))
		}
		for _, r := range pair.Value {
			if strings.TrimSpace(r) == "" {
				return fmt.Errorf("%w: keyword %q has an empty response", ErrInvalidRule, pair.Key)
			}
		}
	}
	return nil
}
