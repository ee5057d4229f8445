// Package store keeps per-post rule configs on a primary remote backend with a local file fallback.
//
// Reads merge both tiers on top of the default config, remote fields win over local ones.
// Writes go to the primary first and are mirrored to the local tier; a write fails only when
// no tier accepted it.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/autoreply/pkg/domain"
	"github.com/umputun/autoreply/pkg/metrics"
)

// Backend is a single persistence tier holding raw config documents keyed by post id
type Backend interface {
	Name() string
	Load(ctx context.Context, postID string) ([]byte, error) // domain.ErrNotFound when absent
	Save(ctx context.Context, postID string, data []byte) error
	Keys(ctx context.Context) ([]string, error)
}

// Store composes an optional primary backend with a local one.
// All writes go through Update, serialized by a single lock.
type Store struct {
	primary Backend
	local   Backend
	lock    sync.Mutex
}

// New makes a store. primary may be nil, then only the local tier is used.
func New(primary, local Backend) *Store {
	return &Store{primary: primary, local: local}
}

// record is a partially populated config document, nil fields are absent in the source
type record struct {
	PostID          *string          `json:"post_id"`
	Keywords        *domain.Keywords `json:"keywords"`
	DefaultResponse *string          `json:"default_response"`
	Enabled         *bool            `json:"enabled"`
	EnabledSince    *time.Time       `json:"enabled_since"`
	DMMessage       *string          `json:"dm_message"`
	DMButtonText    *string          `json:"dm_button_text"`
	DMButtonURL     *string          `json:"dm_button_url"`
}

func (r record) overlay(cfg *domain.PostRuleConfig) {
	if r.Keywords != nil {
		cfg.Keywords = r.Keywords
	}
	if r.DefaultResponse != nil {
		cfg.DefaultResponse = *r.DefaultResponse
	}
	if r.Enabled != nil {
		cfg.Enabled = *r.Enabled
	}
	if r.EnabledSince != nil {
		ts := *r.EnabledSince
		cfg.EnabledSince = &ts
	}
	if r.DMMessage != nil {
		cfg.DMMessage = *r.DMMessage
	}
	if r.DMButtonText != nil {
		cfg.DMButtonText = *r.DMButtonText
	}
	if r.DMButtonURL != nil {
		cfg.DMButtonURL = *r.DMButtonURL
	}
}

// Get returns the merged config for the post. It never fails: missing or unreadable
// records leave the defaults in place.
func (s *Store) Get(ctx context.Context, postID string) domain.PostRuleConfig {
	cfg := domain.DefaultPostRuleConfig(postID)
	if !domain.ValidPostID(postID) {
		return cfg
	}

	for _, b := range []Backend{s.local, s.primary} {
		if b == nil {
			continue
		}
		rec, err := s.load(ctx, b, postID)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				lgr.Printf("[WARN] can't load config for post %s from %s: %v", postID, b.Name(), err)
				metrics.StoreFallbacks.WithLabelValues("get").Inc()
			}
			continue
		}
		rec.overlay(&cfg)
	}

	if cfg.Keywords == nil {
		cfg.Keywords = domain.NewKeywords()
	}
	return cfg
}

// Put stores the config on the primary and mirrors it locally
func (s *Store) Put(ctx context.Context, cfg domain.PostRuleConfig) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.put(ctx, cfg)
}

// Update runs read-modify-write for the post under the store lock.
// fn error aborts the update and is returned as is.
func (s *Store) Update(ctx context.Context, postID string, fn func(cfg *domain.PostRuleConfig) error) (domain.PostRuleConfig, error) {
	if !domain.ValidPostID(postID) {
		return domain.PostRuleConfig{}, fmt.Errorf("%w: %q", domain.ErrInvalidPostID, postID)
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	cfg := s.Get(ctx, postID)
	if err := fn(&cfg); err != nil {
		return domain.PostRuleConfig{}, err
	}
	cfg.PostID = postID
	if err := cfg.Validate(); err != nil {
		return domain.PostRuleConfig{}, err
	}
	if err := s.put(ctx, cfg); err != nil {
		return domain.PostRuleConfig{}, err
	}
	return cfg, nil
}

// List returns merged configs of every post known to any tier, sorted by post id
func (s *Store) List(ctx context.Context) []domain.PostRuleConfig {
	ids := map[string]struct{}{}
	for _, b := range []Backend{s.primary, s.local} {
		if b == nil {
			continue
		}
		keys, err := b.Keys(ctx)
		if err != nil {
			lgr.Printf("[WARN] can't list configs from %s: %v", b.Name(), err)
			metrics.StoreFallbacks.WithLabelValues("list").Inc()
			continue
		}
		for _, k := range keys {
			ids[k] = struct{}{}
		}
	}

	sorted := make([]string, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}
	sort.Strings(sorted)

	res := make([]domain.PostRuleConfig, 0, len(sorted))
	for _, id := range sorted {
		res = append(res, s.Get(ctx, id))
	}
	return res
}

func (s *Store) put(ctx context.Context, cfg domain.PostRuleConfig) error {
	if !domain.ValidPostID(cfg.PostID) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidPostID, cfg.PostID)
	}
	if cfg.Keywords == nil {
		cfg.Keywords = domain.NewKeywords()
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	var primaryErr error
	if s.primary != nil {
		if primaryErr = s.primary.Save(ctx, cfg.PostID, data); primaryErr != nil {
			lgr.Printf("[WARN] can't save config for post %s to %s, falling back to %s: %v",
				cfg.PostID, s.primary.Name(), s.local.Name(), primaryErr)
			metrics.StoreFallbacks.WithLabelValues("put").Inc()
		}
	}

	localErr := s.local.Save(ctx, cfg.PostID, data)
	switch {
	case localErr == nil:
		return nil
	case s.primary != nil && primaryErr == nil:
		lgr.Printf("[WARN] can't mirror config for post %s to %s: %v", cfg.PostID, s.local.Name(), localErr)
		return nil
	case primaryErr != nil:
		return fmt.Errorf("save config for post %s: %w", cfg.PostID, errors.Join(primaryErr, localErr))
	default:
		return fmt.Errorf("save config for post %s: %w", cfg.PostID, localErr)
	}
}

func (s *Store) load(ctx context.Context, b Backend, postID string) (record, error) {
	data, err := b.Load(ctx, postID)
	if err != nil {
		return record{}, err
	}
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return record{}, fmt.Errorf("decode config: %w", err)
	}
	return rec, nil
}
