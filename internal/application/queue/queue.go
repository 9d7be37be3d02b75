// Package queue serializes outbound calls to remote text-generation
// providers. A single drain goroutine services requests strictly in
// submission order, enforces a minimum idle gap between settlements, and
// retries throttled attempts with exponential backoff.
package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/careloop/backend/internal/domain/providers"
	"github.com/rs/zerolog/log"
)

const (
	defaultMinGap         = 2000 * time.Millisecond
	defaultMaxRetries     = 3
	defaultBackoffInitial = 1000 * time.Millisecond
	defaultBackoffMax     = 10000 * time.Millisecond
)

// Operation is one outbound call. The queue owns pacing and retries; the
// operation owns the transport.
type Operation func(ctx context.Context) (string, error)

// Option configures a Queue.
type Option func(*Queue)

// WithMinGap sets the minimum idle gap between the settlement of one
// operation and the start of the next.
func WithMinGap(d time.Duration) Option {
	return func(q *Queue) { q.minGap = d }
}

// WithMaxRetries sets how many times a throttled attempt is retried.
func WithMaxRetries(n int) Option {
	return func(q *Queue) { q.maxRetries = n }
}

// WithBackoff sets the initial retry delay and its cap. The delay doubles
// after each throttled attempt.
func WithBackoff(initial, max time.Duration) Option {
	return func(q *Queue) {
		q.backoffInitial = initial
		q.backoffMax = max
	}
}

// WithRetryClassifier replaces the predicate deciding whether a failure is a
// throttle worth retrying. The default treats HTTP 429 generation errors as
// retryable; providers with a different throttling signal supply their own.
func WithRetryClassifier(fn func(error) bool) Option {
	return func(q *Queue) { q.retryable = fn }
}

type result struct {
	text string
	err  error
}

type request struct {
	ctx  context.Context
	op   Operation
	done chan result
}

// Queue is a single-flight FIFO dispatcher. The zero value is not usable;
// construct with New.
type Queue struct {
	mu          sync.Mutex
	pending     []*request
	draining    bool
	lastSettled time.Time

	minGap         time.Duration
	maxRetries     int
	backoffInitial time.Duration
	backoffMax     time.Duration
	retryable      func(error) bool
}

// New creates a queue with the standard pacing and retry policy.
func New(opts ...Option) *Queue {
	q := &Queue{
		minGap:         defaultMinGap,
		maxRetries:     defaultMaxRetries,
		backoffInitial: defaultBackoffInitial,
		backoffMax:     defaultBackoffMax,
		retryable:      providers.IsRateLimited,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Submit enqueues op and blocks until it settles. Requests are serviced in
// submission order; a later request never starts before an earlier one has
// fully settled, retries included. A failed operation rejects only its own
// submission; the drain loop moves on to the next request.
//
// A submitted operation runs to completion; ctx bounds the network call
// inside op, not the queue wait.
func (q *Queue) Submit(ctx context.Context, op Operation) (string, error) {
	req := &request{
		ctx:  ctx,
		op:   op,
		done: make(chan result, 1),
	}

	q.mu.Lock()
	q.pending = append(q.pending, req)
	// The draining flag is checked and set under the same lock so exactly
	// one drain goroutine exists at a time.
	if !q.draining {
		q.draining = true
		go q.drain()
	}
	q.mu.Unlock()

	res := <-req.done
	return res.text, res.err
}

// Len returns the number of requests waiting to start.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

func (q *Queue) drain() {
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.draining = false
			q.mu.Unlock()
			return
		}
		req := q.pending[0]
		q.pending = q.pending[1:]
		last := q.lastSettled
		q.mu.Unlock()

		if !last.IsZero() {
			if wait := q.minGap - time.Since(last); wait > 0 {
				recordPacingWait(req.ctx, wait)
				time.Sleep(wait)
			}
		}

		res := q.execute(req)

		q.mu.Lock()
		q.lastSettled = time.Now()
		q.mu.Unlock()

		req.done <- res
	}
}

func (q *Queue) execute(req *request) result {
	delay := q.backoffInitial

	var lastErr error
	for attempt := 1; attempt <= q.maxRetries+1; attempt++ {
		text, err := runAttempt(req)
		if err == nil {
			return result{text: text}
		}

		lastErr = err
		if !q.retryable(err) || attempt == q.maxRetries+1 {
			break
		}

		recordRetry(req.ctx, attempt)
		log.Debug().
			Err(err).
			Int("attempt", attempt).
			Dur("backoff", delay).
			Msg("outbound request throttled, retrying")

		time.Sleep(delay)
		delay *= 2
		if delay > q.backoffMax {
			delay = q.backoffMax
		}
	}

	return result{err: lastErr}
}

// runAttempt executes one attempt, converting a panicking operation into an
// error so the drain goroutine survives.
func runAttempt(req *request) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("outbound operation panicked")
			err = fmt.Errorf("outbound operation panicked: %v", r)
		}
	}()
	return req.op(req.ctx)
}
