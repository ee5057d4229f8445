// Package poller periodically fetches comments of the latest posts and runs them through
// the same processing as webhook deliveries.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/autoreply/pkg/domain"
	"github.com/umputun/autoreply/pkg/platform"
	"github.com/umputun/autoreply/pkg/processor"
)

//go:generate moq -out mocks/media_source.go -pkg mocks -skip-ensure -fmt goimports . MediaSource
//go:generate moq -out mocks/config_provider.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/comment_processor.go -pkg mocks -skip-ensure -fmt goimports . CommentProcessor

// MediaSource lists posts and their comments
type MediaSource interface {
	ListMedia(ctx context.Context, limit int) ([]platform.Media, error)
	ListComments(ctx context.Context, mediaID string) ([]platform.Comment, error)
}

// ConfigProvider returns rules of a post
type ConfigProvider interface {
	Get(ctx context.Context, postID string) domain.PostRuleConfig
}

// CommentProcessor handles a single comment
type CommentProcessor interface {
	ProcessComment(ctx context.Context, ev domain.CommentEvent) processor.Outcome
}

// Config holds poller configuration
type Config struct {
	Interval time.Duration
	MaxPosts int
}

// Poller runs poll cycles on interval, one cycle at a time
type Poller struct {
	source    MediaSource
	configs   ConfigProvider
	processor CommentProcessor
	interval  time.Duration
	maxPosts  int

	cycleMu sync.Mutex // serialize poll cycles
	wg      sync.WaitGroup
	cancel  context.CancelFunc
}

// CycleStats reports a single poll cycle
type CycleStats struct {
	Posts    int
	Comments int
	Outcomes map[processor.Outcome]int
}

// New makes a poller
func New(source MediaSource, configs ConfigProvider, proc CommentProcessor, cfg Config) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Minute
	}
	if cfg.MaxPosts <= 0 {
		cfg.MaxPosts = 10
	}
	return &Poller{source: source, configs: configs, processor: proc, interval: cfg.Interval, maxPosts: cfg.MaxPosts}
}

// Start begins polling in background, first cycle runs immediately
func (p *Poller) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	p.wg.Add(1)
	go p.worker(ctx)
	lgr.Printf("[INFO] poller started with interval %v, max posts %d", p.interval, p.maxPosts)
}

// Stop gracefully stops the poller
func (p *Poller) Stop() {
	lgr.Printf("[INFO] stopping poller...")
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
	lgr.Printf("[INFO] poller stopped")
}

func (p *Poller) worker(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.PollNow(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.PollNow(ctx)
		}
	}
}

// PollNow runs a poll cycle, waits if another one is in progress
func (p *Poller) PollNow(ctx context.Context) CycleStats {
	p.cycleMu.Lock()
	defer p.cycleMu.Unlock()

	stats := CycleStats{Outcomes: map[processor.Outcome]int{}}
	media, err := p.source.ListMedia(ctx, p.maxPosts)
	if err != nil {
		lgr.Printf("[ERROR] failed to list media: %v", err)
		return stats
	}

	for _, m := range media {
		if ctx.Err() != nil {
			return stats
		}
		// don't spend api calls on posts without enabled rules
		if !p.configs.Get(ctx, m.ID).Enabled {
			continue
		}
		stats.Posts++

		comments, err := p.source.ListComments(ctx, m.ID)
		if err != nil {
			lgr.Printf("[WARN] failed to list comments of post %s: %v", m.ID, err)
			continue
		}
		for _, c := range comments {
			stats.Comments++
			stats.Outcomes[p.processor.ProcessComment(ctx, toEvent(m.ID, c))]++
		}
	}

	if stats.Outcomes[processor.OutcomeDispatched] > 0 {
		lgr.Printf("[INFO] poll cycle done, %d posts, %d comments, %d replies scheduled", stats.Posts,
			stats.Comments, stats.Outcomes[processor.OutcomeDispatched])
	}
	return stats
}

func toEvent(postID string, c platform.Comment) domain.CommentEvent {
	username := c.Username
	if username == "" {
		username = c.From.Username
	}
	return domain.CommentEvent{
		PostID:    postID,
		CommentID: c.ID,
		Text:      c.Text,
		Username:  username,
		UserID:    c.From.ID,
		Timestamp: domain.ParseTimestamp(c.Timestamp),
		Source:    domain.SourcePoll,
	}
}
