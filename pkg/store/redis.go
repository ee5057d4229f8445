package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/umputun/autoreply/pkg/domain"
)

// RedisBackend keeps config documents in redis under {prefix}posts/{post_id}
type RedisBackend struct {
	client  redis.UniversalClient
	prefix  string
	timeout time.Duration
}

// NewRedisBackend makes redis backend, timeout bounds every call
func NewRedisBackend(client redis.UniversalClient, prefix string, timeout time.Duration) *RedisBackend {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &RedisBackend{client: client, prefix: prefix, timeout: timeout}
}

// Name of the backend
func (r *RedisBackend) Name() string { return "redis" }

// Load returns raw document or domain.ErrNotFound
func (r *RedisBackend) Load(ctx context.Context, postID string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	data, err := r.client.Get(ctx, r.key(postID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", r.key(postID), err)
	}
	return data, nil
}

// Save writes raw document without expiration
func (r *RedisBackend) Save(ctx context.Context, postID string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.client.Set(ctx, r.key(postID), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.key(postID), err)
	}
	return nil
}

// Keys lists post ids with stored documents
func (r *RedisBackend) Keys(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	base := r.prefix + "posts/"
	var res []string
	iter := r.client.Scan(ctx, 0, base+"*", 100).Iterator()
	for iter.Next(ctx) {
		if id := strings.TrimPrefix(iter.Val(), base); domain.ValidPostID(id) {
			res = append(res, id)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan %s*: %w", base, err)
	}
	return res, nil
}

func (r *RedisBackend) key(postID string) string {
	return r.prefix + "posts/" + postID
}
