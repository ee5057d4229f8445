// Package dispatch sends comment replies and direct messages after a delay, in background.
package dispatch

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/semaphore"

	"github.com/umputun/autoreply/pkg/metrics"
	"github.com/umputun/autoreply/pkg/platform"
)

//go:generate moq -out mocks/sender.go -pkg mocks -skip-ensure -fmt goimports . Sender

// Sender makes outbound platform calls
type Sender interface {
	ReplyToComment(ctx context.Context, commentID, message string) error
	SendDirectMessage(ctx context.Context, dm platform.DirectMessage) error
}

// Action is a reply with optional follow-up direct message
type Action struct {
	CommentID string
	Reply     string
	DM        *platform.DirectMessage
}

// Params for the dispatcher
type Params struct {
	ReplyDelay    time.Duration // wait before the public reply
	DMDelay       time.Duration // wait after the reply before the direct message
	MaxConcurrent int           // max outbound calls in flight
	CallTimeout   time.Duration // timeout of a single platform call
}

// Dispatcher runs scheduled actions in goroutines. Failures are logged and never retried.
type Dispatcher struct {
	sender Sender
	params Params
	sem    *semaphore.Weighted

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// ErrClosed returned by Shutdown called twice
var ErrClosed = errors.New("dispatcher closed")

// New makes a dispatcher
func New(sender Sender, params Params) *Dispatcher {
	if params.MaxConcurrent <= 0 {
		params.MaxConcurrent = 4
	}
	if params.CallTimeout <= 0 {
		params.CallTimeout = 30 * time.Second
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		sender: sender,
		params: params,
		sem:    semaphore.NewWeighted(int64(params.MaxConcurrent)),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Schedule queues action and returns immediately. Returns false if dispatcher is shut down.
func (d *Dispatcher) Schedule(a Action) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		lgr.Printf("[WARN] dispatcher closed, dropped action for comment %s", a.CommentID)
		metrics.Dispatches.WithLabelValues("reply", "dropped").Inc()
		return false
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.run(a)
	}()
	return true
}

// Shutdown stops accepting actions and waits for pending ones. On ctx expiration
// pending actions are cancelled and ctx error returned.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrClosed
	}
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.cancel()
		return nil
	case <-ctx.Done():
		lgr.Printf("[WARN] dispatcher shutdown timeout, cancelling pending actions")
		d.cancel()
		<-done
		return ctx.Err()
	}
}

func (d *Dispatcher) run(a Action) {
	if !d.wait(d.params.ReplyDelay) {
		lgr.Printf("[WARN] dropped reply to comment %s, dispatcher cancelled", a.CommentID)
		metrics.Dispatches.WithLabelValues("reply", "dropped").Inc()
		return
	}

	d.call("reply", a.CommentID, func(ctx context.Context) error {
		return d.sender.ReplyToComment(ctx, a.CommentID, a.Reply)
	})

	if a.DM == nil {
		return
	}
	// direct message goes regardless of reply result
	if !d.wait(d.params.DMDelay) {
		lgr.Printf("[WARN] dropped direct message for comment %s, dispatcher cancelled", a.CommentID)
		metrics.Dispatches.WithLabelValues("dm", "dropped").Inc()
		return
	}
	d.call("dm", a.CommentID, func(ctx context.Context) error {
		return d.sender.SendDirectMessage(ctx, *a.DM)
	})
}

// call runs fn with concurrency limit and timeout, logs and counts the result
func (d *Dispatcher) call(kind, commentID string, fn func(ctx context.Context) error) {
	if err := d.sem.Acquire(d.ctx, 1); err != nil {
		lgr.Printf("[WARN] dropped %s for comment %s: %v", kind, commentID, err)
		metrics.Dispatches.WithLabelValues(kind, "dropped").Inc()
		return
	}
	defer d.sem.Release(1)

	ctx, cancel := context.WithTimeout(d.ctx, d.params.CallTimeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		lgr.Printf("[WARN] failed to send %s for comment %s: %v", kind, commentID, err)
		metrics.Dispatches.WithLabelValues(kind, "failed").Inc()
		return
	}
	lgr.Printf("[INFO] sent %s for comment %s", kind, commentID)
	metrics.Dispatches.WithLabelValues(kind, "ok").Inc()
}

// wait sleeps for delay, returns false if dispatcher cancelled first
func (d *Dispatcher) wait(delay time.Duration) bool {
	if delay <= 0 {
		return d.ctx.Err() == nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-d.ctx.Done():
		return false
	}
}
