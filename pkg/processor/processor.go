// Package processor runs inbound comment events through dedup, config, time gate and rule
// matching, reserves the comment in the history ledger and hands replies to the dispatcher.
package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/autoreply/pkg/dispatch"
	"github.com/umputun/autoreply/pkg/domain"
	"github.com/umputun/autoreply/pkg/metrics"
	"github.com/umputun/autoreply/pkg/platform"
	"github.com/umputun/autoreply/pkg/rules"
)

//go:generate moq -out mocks/config_provider.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/ledger.go -pkg mocks -skip-ensure -fmt goimports . Ledger
//go:generate moq -out mocks/scheduler.go -pkg mocks -skip-ensure -fmt goimports . Scheduler

// ConfigProvider returns the rules of a post, defaults when nothing stored
type ConfigProvider interface {
	Get(ctx context.Context, postID string) domain.PostRuleConfig
}

// Ledger is the write-once history of responded comments
type Ledger interface {
	HasResponded(ctx context.Context, commentID string) (bool, error)
	Record(ctx context.Context, entry domain.HistoryEntry) (bool, error)
}

// Scheduler accepts outbound actions without blocking
type Scheduler interface {
	Schedule(a dispatch.Action) bool
}

// Outcome of a single comment event
type Outcome string

// event outcomes, used as metric labels
const (
	OutcomeDispatched    Outcome = "dispatched"
	OutcomeInvalid       Outcome = "invalid"
	OutcomeDuplicate     Outcome = "duplicate"
	OutcomeDisabled      Outcome = "disabled"
	OutcomeBeforeEnabled Outcome = "before_enabled"
	OutcomeNoReply       Outcome = "no_reply"
	OutcomeSelf          Outcome = "self"
	OutcomeLedgerError   Outcome = "ledger_error"
	OutcomeRejected      Outcome = "rejected"
	OutcomeIgnored       Outcome = "ignored"
)

// Summary counts outcomes of a webhook delivery
type Summary struct {
	Total    int             `json:"total"`
	Outcomes map[Outcome]int `json:"outcomes"`
}

// Processor handles comment events from webhook and poller
type Processor struct {
	Params
	configs   ConfigProvider
	ledger    Ledger
	scheduler Scheduler
}

// Params for the processor
type Params struct {
	SelfUserID   string       // account id, comments from it are skipped
	SelfUsername string       // account username, same as above
	Pick         rules.Picker // reply picker, random if nil
	Now          func() time.Time
}

// New makes a processor
func New(configs ConfigProvider, ledger Ledger, scheduler Scheduler, params Params) *Processor {
	if params.Pick == nil {
		params.Pick = rules.RandomPick
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	return &Processor{Params: params, configs: configs, ledger: ledger, scheduler: scheduler}
}

// ProcessPayload handles a webhook delivery. Each change processed on its own, a failed one
// doesn't stop the rest. Error returned only for undecodable body.
func (p *Processor) ProcessPayload(ctx context.Context, body []byte) (Summary, error) {
	dec, err := decodePayload(body)
	if err != nil {
		return Summary{}, err
	}

	res := Summary{Total: len(dec.events) + dec.ignored + dec.invalid, Outcomes: map[Outcome]int{}}
	for outcome, n := range map[Outcome]int{OutcomeIgnored: dec.ignored, OutcomeInvalid: dec.invalid} {
		if n > 0 {
			res.Outcomes[outcome] = n
			metrics.WebhookItems.WithLabelValues(string(outcome)).Add(float64(n))
		}
	}
	for _, ev := range dec.events {
		res.Outcomes[p.ProcessComment(ctx, ev)]++
	}
	return res, nil
}

// ProcessComment runs a single comment event and reports what happened to it
func (p *Processor) ProcessComment(ctx context.Context, ev domain.CommentEvent) Outcome {
	outcome := p.process(ctx, ev)
	metrics.WebhookItems.WithLabelValues(string(outcome)).Inc()
	return outcome
}

func (p *Processor) process(ctx context.Context, ev domain.CommentEvent) Outcome {
	if ev.PostID == "" || ev.CommentID == "" || ev.Text == "" {
		lgr.Printf("[WARN] skip incomplete comment event, post=%q comment=%q text length %d",
			ev.PostID, ev.CommentID, len(ev.Text))
		return OutcomeInvalid
	}
	if !domain.ValidPostID(ev.PostID) {
		lgr.Printf("[WARN] skip comment %s, invalid post id %q", ev.CommentID, ev.PostID)
		return OutcomeInvalid
	}
	if p.isSelf(ev) {
		lgr.Printf("[DEBUG] skip own comment %s", ev.CommentID)
		return OutcomeSelf
	}

	responded, err := p.ledger.HasResponded(ctx, ev.CommentID)
	if err != nil {
		lgr.Printf("[ERROR] failed to check history for comment %s: %v", ev.CommentID, err)
		return OutcomeLedgerError
	}
	if responded {
		lgr.Printf("[DEBUG] comment %s already responded", ev.CommentID)
		return OutcomeDuplicate
	}

	cfg := p.configs.Get(ctx, ev.PostID)
	if !cfg.Enabled {
		lgr.Printf("[DEBUG] auto-reply disabled for post %s, skip comment %s", ev.PostID, ev.CommentID)
		return OutcomeDisabled
	}
	if cfg.EnabledSince != nil && ev.Timestamp != nil && ev.Timestamp.Before(*cfg.EnabledSince) {
		lgr.Printf("[DEBUG] comment %s at %s is older than enabled since %s", ev.CommentID,
			ev.Timestamp.Format(time.RFC3339), cfg.EnabledSince.Format(time.RFC3339))
		return OutcomeBeforeEnabled
	}

	match := rules.Match(ev.Text, cfg, p.Pick)
	if !match.HasReply() {
		lgr.Printf("[DEBUG] no reply for comment %s on post %s", ev.CommentID, ev.PostID)
		return OutcomeNoReply
	}

	// reserve comment first, only the winner of the insert dispatches
	inserted, err := p.ledger.Record(ctx, domain.HistoryEntry{
		CommentID:         ev.CommentID,
		PostID:            ev.PostID,
		CommenterUsername: ev.Username,
		CommenterUserID:   ev.UserID,
		CommentText:       ev.Text,
		ReplyText:         match.Reply,
		Keyword:           match.Keyword,
		Matched:           match.Matched,
		RespondedAt:       p.Now(),
	})
	if err != nil {
		lgr.Printf("[ERROR] failed to record comment %s: %v", ev.CommentID, err)
		return OutcomeLedgerError
	}
	if !inserted {
		lgr.Printf("[DEBUG] comment %s reserved by a concurrent delivery", ev.CommentID)
		return OutcomeDuplicate
	}

	action := dispatch.Action{CommentID: ev.CommentID, Reply: match.Reply}
	if match.Matched && cfg.HasDM() && ev.UserID != "" {
		action.DM = &platform.DirectMessage{
			RecipientID: ev.UserID,
			Text:        cfg.DMMessage,
			ButtonText:  cfg.DMButtonText,
			ButtonURL:   cfg.DMButtonURL,
		}
	}
	if !p.scheduler.Schedule(action) {
		lgr.Printf("[WARN] dispatcher rejected reply to comment %s", ev.CommentID)
		return OutcomeRejected
	}

	lgr.Printf("[INFO] scheduled reply to %s comment %s by %s on post %s, %s", ev.Source, ev.CommentID,
		ev.Username, ev.PostID, describe(match, action.DM != nil))
	return OutcomeDispatched
}

func (p *Processor) isSelf(ev domain.CommentEvent) bool {
	if p.SelfUserID != "" && ev.UserID == p.SelfUserID {
		return true
	}
	return p.SelfUsername != "" && ev.Username == p.SelfUsername
}

func describe(m domain.MatchResult, dm bool) string {
	if !m.Matched {
		return "default response"
	}
	if dm {
		return fmt.Sprintf("keyword %q with direct message", m.Keyword)
	}
	return fmt.Sprintf("keyword %q", m.Keyword)
}
