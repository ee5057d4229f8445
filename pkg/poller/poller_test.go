package poller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/autoreply/pkg/domain"
	"github.com/umputun/autoreply/pkg/platform"
	"github.com/umputun/autoreply/pkg/poller/mocks"
	"github.com/umputun/autoreply/pkg/processor"
)

func enabledOnly(ids ...string) *mocks.ConfigProviderMock {
	return &mocks.ConfigProviderMock{GetFunc: func(ctx context.Context, postID string) domain.PostRuleConfig {
		cfg := domain.DefaultPostRuleConfig(postID)
		for _, id := range ids {
			if id == postID {
				cfg.Enabled = true
			}
		}
		return cfg
	}}
}

func TestPoller_PollNow(t *testing.T) {
	source := &mocks.MediaSourceMock{
		ListMediaFunc: func(ctx context.Context, limit int) ([]platform.Media, error) {
			return []platform.Media{{ID: "p1"}, {ID: "p2"}, {ID: "p3"}}, nil
		},
		ListCommentsFunc: func(ctx context.Context, mediaID string) ([]platform.Comment, error) {
			switch mediaID {
			case "p1":
				c := platform.Comment{ID: "c1", Text: "sale", Timestamp: "2026-05-01T10:00:00+0000"}
				c.From.ID, c.From.Username = "u1", "bob"
				return []platform.Comment{c, {ID: "c2", Text: "hi", Username: "ann"}}, nil
			case "p3":
				return nil, errors.New("rate limited")
			}
			return nil, nil
		},
	}
	proc := &mocks.CommentProcessorMock{ProcessCommentFunc: func(ctx context.Context, ev domain.CommentEvent) processor.Outcome {
		if ev.CommentID == "c1" {
			return processor.OutcomeDispatched
		}
		return processor.OutcomeNoReply
	}}

	p := New(source, enabledOnly("p1", "p3"), proc, Config{MaxPosts: 3})
	stats := p.PollNow(context.Background())

	assert.Equal(t, 2, stats.Posts)
	assert.Equal(t, 2, stats.Comments)
	assert.Equal(t, map[processor.Outcome]int{processor.OutcomeDispatched: 1, processor.OutcomeNoReply: 1}, stats.Outcomes)

	require.Len(t, source.ListMediaCalls(), 1)
	assert.Equal(t, 3, source.ListMediaCalls()[0].Limit)
	assert.Len(t, source.ListCommentsCalls(), 2, "disabled post p2 not fetched")

	calls := proc.ProcessCommentCalls()
	require.Len(t, calls, 2)
	ev := calls[0].Ev
	assert.Equal(t, "p1", ev.PostID)
	assert.Equal(t, "bob", ev.Username)
	assert.Equal(t, "u1", ev.UserID)
	assert.Equal(t, domain.SourcePoll, ev.Source)
	require.NotNil(t, ev.Timestamp)
	assert.Equal(t, 10, ev.Timestamp.Hour())
	assert.Equal(t, "ann", calls[1].Ev.Username)
}

func TestPoller_ListMediaError(t *testing.T) {
	source := &mocks.MediaSourceMock{
		ListMediaFunc: func(ctx context.Context, limit int) ([]platform.Media, error) {
			return nil, errors.New("token expired")
		},
	}
	p := New(source, enabledOnly(), &mocks.CommentProcessorMock{}, Config{})
	stats := p.PollNow(context.Background())
	assert.Zero(t, stats.Posts)
	assert.Empty(t, source.ListCommentsCalls())
}

func TestPoller_StartStop(t *testing.T) {
	cycles := make(chan struct{}, 10)
	source := &mocks.MediaSourceMock{
		ListMediaFunc: func(ctx context.Context, limit int) ([]platform.Media, error) {
			select {
			case cycles <- struct{}{}:
			default:
			}
			return nil, nil
		},
	}
	p := New(source, enabledOnly(), &mocks.CommentProcessorMock{}, Config{Interval: 20 * time.Millisecond})
	p.Start(context.Background())

	for range 2 {
		select {
		case <-cycles:
		case <-time.After(time.Second):
			t.Fatal("poll cycle not started")
		}
	}
	p.Stop()

	n := len(source.ListMediaCalls())
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, source.ListMediaCalls(), n, "no cycles after stop")
}
