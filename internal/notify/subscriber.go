package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"coffee-orders/internal/bus"
	"coffee-orders/internal/metrics"
)

// State of the subscriber loop.
type State int

const (
	StateConnecting State = iota
	StateSubscribed
	StateConsuming
	StateBackoff
	// StateExhausted is terminal: the attempt budget ran out and the
	// subscriber stays idle for the rest of the process lifetime.
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateSubscribed:
		return "subscribed"
	case StateConsuming:
		return "consuming"
	case StateBackoff:
		return "backoff"
	case StateExhausted:
		return "exhausted"
	}
	return "unknown"
}

// Options tune the reconnect behavior.
type Options struct {
	// MaxAttempts bounds the total number of connection attempts so a
	// misconfigured broker address does not spin forever.
	MaxAttempts int
	// Backoff is the fixed delay between attempts, giving a broker that
	// starts after this process a warm-up grace period.
	Backoff time.Duration
	// ResetOnSuccess refreshes the attempt budget after a successful
	// subscribe, so a long-lived consumer that loses its connection
	// much later starts over with a full budget.
	ResetOnSuccess bool
}

// Subscriber keeps a live subscription to the order-event topic and
// feeds every delivery into the recency buffer. It shares no state with
// request handlers other than the buffer.
type Subscriber struct {
	dialer bus.Dialer
	buf    *Buffer
	log    *zap.SugaredLogger
	opts   Options

	mu    sync.Mutex
	state State
}

func NewSubscriber(dialer bus.Dialer, buf *Buffer, log *zap.SugaredLogger, opts Options) *Subscriber {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 10
	}
	if opts.Backoff <= 0 {
		opts.Backoff = 3 * time.Second
	}
	return &Subscriber{dialer: dialer, buf: buf, log: log, opts: opts, state: StateConnecting}
}

// State returns the current loop state.
func (s *Subscriber) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Subscriber) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// Run drives the subscription loop until ctx is cancelled or the
// attempt budget is exhausted. Intended to run as a single background
// goroutine per process.
func (s *Subscriber) Run(ctx context.Context) {
	attempts := 0
	for {
		attempts++
		s.setState(StateConnecting)
		stream, err := s.dialer.Dial(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			metrics.SubscriberReconnects.Inc()
			s.log.Warnf("bus connect attempt %d/%d failed: %v", attempts, s.opts.MaxAttempts, err)
			if !s.backoffOrExhaust(ctx, attempts) {
				return
			}
			continue
		}

		s.setState(StateSubscribed)
		s.log.Infof("subscribed to order events (attempt %d)", attempts)
		if s.opts.ResetOnSuccess {
			attempts = 0
		}

		err = s.consume(ctx, stream)
		_ = stream.Close()
		if ctx.Err() != nil {
			return
		}
		s.log.Warnf("consume loop ended: %v", err)
		if !s.backoffOrExhaust(ctx, attempts) {
			return
		}
	}
}

// backoffOrExhaust waits out the backoff delay. It returns false when
// the loop must stop, either because the budget is spent or ctx ended.
func (s *Subscriber) backoffOrExhaust(ctx context.Context, attempts int) bool {
	if attempts >= s.opts.MaxAttempts {
		s.setState(StateExhausted)
		s.log.Errorf("giving up on bus subscription after %d attempts", attempts)
		return false
	}
	s.setState(StateBackoff)
	select {
	case <-ctx.Done():
		return false
	case <-time.After(s.opts.Backoff):
		return true
	}
}

func (s *Subscriber) consume(ctx context.Context, stream bus.Stream) error {
	s.setState(StateConsuming)
	for {
		msg, err := stream.Fetch(ctx)
		if err != nil {
			return err
		}
		line := fmt.Sprintf("OrderEvent: %s", msg.Value)
		s.buf.Append(line)
		metrics.EventsConsumed.Inc()
		s.log.Infof("event received: %s", line)
	}
}
