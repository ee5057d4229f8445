package processor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/autoreply/pkg/dispatch"
	"github.com/umputun/autoreply/pkg/domain"
	"github.com/umputun/autoreply/pkg/processor/mocks"
	"github.com/umputun/autoreply/pkg/rules"
)

// memLedger is an in-memory ledger with insert-if-absent semantics
func memLedger() *mocks.LedgerMock {
	var mu sync.Mutex
	seen := map[string]domain.HistoryEntry{}
	return &mocks.LedgerMock{
		HasRespondedFunc: func(ctx context.Context, commentID string) (bool, error) {
			mu.Lock()
			defer mu.Unlock()
			_, ok := seen[commentID]
			return ok, nil
		},
		RecordFunc: func(ctx context.Context, entry domain.HistoryEntry) (bool, error) {
			mu.Lock()
			defer mu.Unlock()
			if _, ok := seen[entry.CommentID]; ok {
				return false, nil
			}
			seen[entry.CommentID] = entry
			return true, nil
		},
	}
}

func acceptAll() *mocks.SchedulerMock {
	return &mocks.SchedulerMock{ScheduleFunc: func(a dispatch.Action) bool { return true }}
}

func configs(cfgs ...domain.PostRuleConfig) *mocks.ConfigProviderMock {
	byID := map[string]domain.PostRuleConfig{}
	for _, c := range cfgs {
		byID[c.PostID] = c
	}
	return &mocks.ConfigProviderMock{GetFunc: func(ctx context.Context, postID string) domain.PostRuleConfig {
		if c, ok := byID[postID]; ok {
			return c
		}
		return domain.DefaultPostRuleConfig(postID)
	}}
}

func saleConfig(postID string) domain.PostRuleConfig {
	cfg := domain.DefaultPostRuleConfig(postID)
	cfg.Keywords.Set("sale", domain.Responses{"Thanks!"})
	cfg.Keywords.Set("price", domain.Responses{"DM sent", "Check DM"})
	cfg.DefaultResponse = "Thanks for the comment"
	cfg.Enabled = true
	return cfg
}

func event(commentID, text string) domain.CommentEvent {
	return domain.CommentEvent{PostID: "p1", CommentID: commentID, Text: text, Username: "bob", UserID: "u1",
		Source: domain.SourceWebhook}
}

func TestProcessor_ProcessComment(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	ledger := memLedger()
	sched := acceptAll()
	p := New(configs(saleConfig("p1")), ledger, sched, Params{Pick: rules.FirstPick, Now: func() time.Time { return now }})

	outcome := p.ProcessComment(context.Background(), event("c1", "Is this on SALE?"))
	assert.Equal(t, OutcomeDispatched, outcome)

	require.Len(t, sched.ScheduleCalls(), 1)
	action := sched.ScheduleCalls()[0].A
	assert.Equal(t, "c1", action.CommentID)
	assert.Equal(t, "Thanks!", action.Reply)
	assert.Nil(t, action.DM, "no dm configured")

	require.Len(t, ledger.RecordCalls(), 1)
	entry := ledger.RecordCalls()[0].Entry
	assert.Equal(t, domain.HistoryEntry{CommentID: "c1", PostID: "p1", CommenterUsername: "bob", CommenterUserID: "u1",
		CommentText: "Is this on SALE?", ReplyText: "Thanks!", Keyword: "sale", Matched: true, RespondedAt: now}, entry)
}

func TestProcessor_Redelivery(t *testing.T) {
	ledger := memLedger()
	sched := acceptAll()
	p := New(configs(saleConfig("p1")), ledger, sched, Params{})

	assert.Equal(t, OutcomeDispatched, p.ProcessComment(context.Background(), event("c1", "sale")))
	assert.Equal(t, OutcomeDuplicate, p.ProcessComment(context.Background(), event("c1", "sale")))
	assert.Len(t, sched.ScheduleCalls(), 1)
	assert.Len(t, ledger.RecordCalls(), 1)
}

func TestProcessor_ConcurrentRedelivery(t *testing.T) {
	ledger := memLedger()
	sched := acceptAll()
	p := New(configs(saleConfig("p1")), ledger, sched, Params{})

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.ProcessComment(context.Background(), event("c1", "sale"))
		}()
	}
	wg.Wait()
	assert.Len(t, sched.ScheduleCalls(), 1, "only one delivery dispatches")
}

func TestProcessor_Skips(t *testing.T) {
	disabled := saleConfig("p2")
	disabled.Enabled = false
	noDefault := saleConfig("p3")
	noDefault.DefaultResponse = ""

	tests := []struct {
		name string
		ev   domain.CommentEvent
		want Outcome
	}{
		{name: "no post id", ev: domain.CommentEvent{CommentID: "c1", Text: "sale"}, want: OutcomeInvalid},
		{name: "no comment id", ev: domain.CommentEvent{PostID: "p1", Text: "sale"}, want: OutcomeInvalid},
		{name: "empty text", ev: domain.CommentEvent{PostID: "p1", CommentID: "c1"}, want: OutcomeInvalid},
		{name: "bad post id", ev: domain.CommentEvent{PostID: "../etc", CommentID: "c1", Text: "sale"}, want: OutcomeInvalid},
		{name: "disabled post", ev: domain.CommentEvent{PostID: "p2", CommentID: "c1", Text: "sale"}, want: OutcomeDisabled},
		{name: "unknown post is disabled", ev: domain.CommentEvent{PostID: "p9", CommentID: "c1", Text: "sale"},
			want: OutcomeDisabled},
		{name: "no match no default", ev: domain.CommentEvent{PostID: "p3", CommentID: "c1", Text: "hello"},
			want: OutcomeNoReply},
		{name: "own comment", ev: domain.CommentEvent{PostID: "p1", CommentID: "c1", Text: "sale", UserID: "me-id"},
			want: OutcomeSelf},
		{name: "own username", ev: domain.CommentEvent{PostID: "p1", CommentID: "c1", Text: "sale", Username: "shop"},
			want: OutcomeSelf},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := memLedger()
			sched := acceptAll()
			p := New(configs(saleConfig("p1"), disabled, noDefault), ledger, sched,
				Params{SelfUserID: "me-id", SelfUsername: "shop"})
			assert.Equal(t, tt.want, p.ProcessComment(context.Background(), tt.ev))
			assert.Empty(t, sched.ScheduleCalls())
			assert.Empty(t, ledger.RecordCalls(), "skipped events are not recorded")
		})
	}
}

func TestProcessor_EmptyTextNeverLoadsConfig(t *testing.T) {
	cp := configs(saleConfig("p1"))
	p := New(cp, memLedger(), acceptAll(), Params{})
	assert.Equal(t, OutcomeInvalid, p.ProcessComment(context.Background(), event("c1", "")))
	assert.Empty(t, cp.GetCalls())
}

func TestProcessor_TimeGate(t *testing.T) {
	since := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	cfg := saleConfig("p1")
	cfg.EnabledSince = &since

	before, after := since.Add(-time.Minute), since.Add(time.Minute)
	tests := []struct {
		name string
		ts   *time.Time
		want Outcome
	}{
		{name: "before enabled", ts: &before, want: OutcomeBeforeEnabled},
		{name: "after enabled", ts: &after, want: OutcomeDispatched},
		{name: "exactly at enabled", ts: &since, want: OutcomeDispatched},
		{name: "no timestamp", ts: nil, want: OutcomeDispatched},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(configs(cfg), memLedger(), acceptAll(), Params{})
			ev := event("c1", "sale")
			ev.Timestamp = tt.ts
			assert.Equal(t, tt.want, p.ProcessComment(context.Background(), ev))
		})
	}
}

func TestProcessor_DefaultResponse(t *testing.T) {
	cfg := saleConfig("p1")
	cfg.DMMessage = "here is the link"
	ledger := memLedger()
	sched := acceptAll()
	p := New(configs(cfg), ledger, sched, Params{})

	assert.Equal(t, OutcomeDispatched, p.ProcessComment(context.Background(), event("c1", "nice photo")))
	require.Len(t, sched.ScheduleCalls(), 1)
	assert.Equal(t, "Thanks for the comment", sched.ScheduleCalls()[0].A.Reply)
	assert.Nil(t, sched.ScheduleCalls()[0].A.DM, "default response never sends dm")
	assert.False(t, ledger.RecordCalls()[0].Entry.Matched)
	assert.Empty(t, ledger.RecordCalls()[0].Entry.Keyword)
}

func TestProcessor_DirectMessage(t *testing.T) {
	cfg := saleConfig("p1")
	cfg.DMMessage = "here is the link"
	cfg.DMButtonText = "Open"
	cfg.DMButtonURL = "https://example.com/shop"
	sched := acceptAll()
	p := New(configs(cfg), memLedger(), sched, Params{Pick: rules.FirstPick})

	assert.Equal(t, OutcomeDispatched, p.ProcessComment(context.Background(), event("c1", "price please")))
	require.Len(t, sched.ScheduleCalls(), 1)
	action := sched.ScheduleCalls()[0].A
	assert.Equal(t, "DM sent", action.Reply)
	require.NotNil(t, action.DM)
	assert.Equal(t, "u1", action.DM.RecipientID)
	assert.Equal(t, "here is the link", action.DM.Text)
	assert.Equal(t, "Open", action.DM.ButtonText)
	assert.Equal(t, "https://example.com/shop", action.DM.ButtonURL)

	// no user id, no dm
	ev := event("c2", "price please")
	ev.UserID = ""
	assert.Equal(t, OutcomeDispatched, p.ProcessComment(context.Background(), ev))
	assert.Nil(t, sched.ScheduleCalls()[1].A.DM)
}

func TestProcessor_LedgerErrors(t *testing.T) {
	t.Run("has responded fails", func(t *testing.T) {
		ledger := memLedger()
		ledger.HasRespondedFunc = func(ctx context.Context, commentID string) (bool, error) {
			return false, errors.New("db locked")
		}
		sched := acceptAll()
		p := New(configs(saleConfig("p1")), ledger, sched, Params{})
		assert.Equal(t, OutcomeLedgerError, p.ProcessComment(context.Background(), event("c1", "sale")))
		assert.Empty(t, sched.ScheduleCalls())
	})

	t.Run("record fails", func(t *testing.T) {
		ledger := memLedger()
		ledger.RecordFunc = func(ctx context.Context, entry domain.HistoryEntry) (bool, error) {
			return false, errors.New("disk full")
		}
		sched := acceptAll()
		p := New(configs(saleConfig("p1")), ledger, sched, Params{})
		assert.Equal(t, OutcomeLedgerError, p.ProcessComment(context.Background(), event("c1", "sale")))
		assert.Empty(t, sched.ScheduleCalls(), "no dispatch without reservation")
	})
}

func TestProcessor_SchedulerRejects(t *testing.T) {
	ledger := memLedger()
	sched := &mocks.SchedulerMock{ScheduleFunc: func(a dispatch.Action) bool { return false }}
	p := New(configs(saleConfig("p1")), ledger, sched, Params{})
	assert.Equal(t, OutcomeRejected, p.ProcessComment(context.Background(), event("c1", "sale")))
	assert.Len(t, ledger.RecordCalls(), 1, "reservation stays, comment is never answered twice")
}

func TestProcessor_ProcessPayload(t *testing.T) {
	body := `{"object":"instagram","entry":[
		{"id":"acc","time":1714564800,"changes":[
			{"field":"comments","value":{"id":"c1","text":"sale?","from":{"id":"u1","username":"bob"},"media":{"id":"p1"}}},
			{"field":"comments","value":{"id":"c2","from":{"id":"u2"},"media":{"id":"p1"}}},
			{"field":"mentions","value":{"media_id":"p1","comment_id":"c3"}}
		]},
		{"id":"acc","time":1714564801,"changes":[
			{"field":"comments","value":{"comment_id":"c4","media_id":"p2","text":"sale"}},
			{"field":"comments","value":{"comment_id":"c5","media_id":"p1","text":"random"}}
		]}
	]}`

	disabled := saleConfig("p2")
	disabled.Enabled = false
	sched := acceptAll()
	p := New(configs(saleConfig("p1"), disabled), memLedger(), sched, Params{})

	res, err := p.ProcessPayload(context.Background(), []byte(body))
	require.NoError(t, err)
	assert.Equal(t, 5, res.Total)
	assert.Equal(t, map[Outcome]int{OutcomeDispatched: 2, OutcomeInvalid: 1, OutcomeIgnored: 1, OutcomeDisabled: 1},
		res.Outcomes)
	require.Len(t, sched.ScheduleCalls(), 2)
	assert.Equal(t, "c1", sched.ScheduleCalls()[0].A.CommentID)
	assert.Equal(t, "c5", sched.ScheduleCalls()[1].A.CommentID)

	_, err = p.ProcessPayload(context.Background(), []byte("{bad json"))
	require.Error(t, err)
}

func TestProcessor_FailedChangeDoesNotStopBatch(t *testing.T) {
	ledger := memLedger()
	ledger.HasRespondedFunc = func(ctx context.Context, commentID string) (bool, error) {
		if commentID == "c1" {
			return false, errors.New("transient")
		}
		return false, nil
	}
	sched := acceptAll()
	p := New(configs(saleConfig("p1")), ledger, sched, Params{})

	body := `{"entry":[{"changes":[
		{"field":"comments","value":{"id":"c1","text":"sale","media":{"id":"p1"}}},
		{"field":"comments","value":{"id":"c2","text":"sale","media":{"id":"p1"}}}]}]}`
	res, err := p.ProcessPayload(context.Background(), []byte(body))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Outcomes[OutcomeLedgerError])
	assert.Equal(t, 1, res.Outcomes[OutcomeDispatched])
	require.Len(t, sched.ScheduleCalls(), 1)
	assert.Equal(t, "c2", sched.ScheduleCalls()[0].A.CommentID)
}

func TestProcessor_MalformedChangeKeepsRestOfDelivery(t *testing.T) {
	sched := acceptAll()
	p := New(configs(saleConfig("p1")), memLedger(), sched, Params{})

	body := `{"object":"instagram","entry":[
		{"id":17841400000000000,"time":1714564800,"changes":[
			{"field":"comments","value":{"id":"c1","text":"sale","media":{"id":"p1"}}},
			{"field":"comments","value":"garbage"},
			{"field":42,"value":{"id":"c2"}},
			{"field":"comments","value":null}
		]},
		"not an entry",
		{"changes":[{"field":"comments","value":{"id":"c3","text":"sale","media":{"id":"p1"}}}]}
	]}`
	res, err := p.ProcessPayload(context.Background(), []byte(body))
	require.NoError(t, err)
	assert.Equal(t, 6, res.Total)
	assert.Equal(t, map[Outcome]int{OutcomeDispatched: 2, OutcomeInvalid: 4}, res.Outcomes)
	require.Len(t, sched.ScheduleCalls(), 2)
	assert.Equal(t, "c1", sched.ScheduleCalls()[0].A.CommentID)
	assert.Equal(t, "c3", sched.ScheduleCalls()[1].A.CommentID)
}

func TestProcessor_LargeNumericIDs(t *testing.T) {
	sched := acceptAll()
	ledger := memLedger()
	p := New(configs(saleConfig("17841405822304914")), ledger, sched, Params{})

	body := `{"entry":[{"changes":[{"field":"comments","value":
		{"id":17858893269000013,"text":"sale","media":{"id":17841405822304914},"from":{"id":17841400000000001}}}]}]}`
	res, err := p.ProcessPayload(context.Background(), []byte(body))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Outcomes[OutcomeDispatched])
	require.Len(t, sched.ScheduleCalls(), 1)
	assert.Equal(t, "17858893269000013", sched.ScheduleCalls()[0].A.CommentID)
	assert.Equal(t, "Thanks!", sched.ScheduleCalls()[0].A.Reply)
	require.Len(t, ledger.RecordCalls(), 1)
	assert.Equal(t, "17858893269000013", ledger.RecordCalls()[0].Entry.CommentID)
	assert.Equal(t, "17841405822304914", ledger.RecordCalls()[0].Entry.PostID)
}
