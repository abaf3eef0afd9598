package event

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// SubscriptionState represents the state of a subscription.
type SubscriptionState int32

const (
	// SubscriptionStateActive means the subscription is receiving events.
	SubscriptionStateActive SubscriptionState = iota

	// SubscriptionStatePaused means the subscription is temporarily not receiving events.
	SubscriptionStatePaused

	// SubscriptionStateCancelled means the subscription has been permanently cancelled.
	SubscriptionStateCancelled
)

// String returns a human-readable state name.
func (s SubscriptionState) String() string {
	switch s {
	case SubscriptionStateActive:
		return "active"
	case SubscriptionStatePaused:
		return "paused"
	case SubscriptionStateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// SubscriptionConfig contains configuration for a subscription.
type SubscriptionConfig[T any] struct {
	// Filter is an optional predicate. Events are only delivered if it
	// returns true.
	Filter func(T) bool

	// Once cancels the subscription after the first delivered event.
	Once bool
}

// SubscriptionOption is a function that configures a subscription.
type SubscriptionOption[T any] func(*SubscriptionConfig[T])

// WithFilter sets a filter predicate.
func WithFilter[T any](f func(T) bool) SubscriptionOption[T] {
	return func(c *SubscriptionConfig[T]) {
		c.Filter = f
	}
}

// WithOnce sets the subscription to auto-cancel after the first event.
func WithOnce[T any]() SubscriptionOption[T] {
	return func(c *SubscriptionConfig[T]) {
		c.Once = true
	}
}

// Subscription is a handle to one registered handler.
type Subscription[T any] struct {
	id      string
	handler func(T)
	config  SubscriptionConfig[T]
	state   atomic.Int32
}

func newSubscription[T any](h func(T), opts ...SubscriptionOption[T]) *Subscription[T] {
	s := &Subscription[T]{
		id:      uuid.NewString(),
		handler: h,
	}
	for _, opt := range opts {
		opt(&s.config)
	}
	s.state.Store(int32(SubscriptionStateActive))
	return s
}

// ID returns the unique subscription identifier.
func (s *Subscription[T]) ID() string {
	return s.id
}

// State returns the current subscription state.
func (s *Subscription[T]) State() SubscriptionState {
	return SubscriptionState(s.state.Load())
}

// IsActive returns true if the subscription is active.
func (s *Subscription[T]) IsActive() bool {
	return s.State() == SubscriptionStateActive
}

// Pause temporarily stops event delivery.
func (s *Subscription[T]) Pause() {
	s.state.CompareAndSwap(int32(SubscriptionStateActive), int32(SubscriptionStatePaused))
}

// Resume restarts event delivery after a pause.
func (s *Subscription[T]) Resume() {
	s.state.CompareAndSwap(int32(SubscriptionStatePaused), int32(SubscriptionStateActive))
}

// Cancel permanently cancels the subscription.
func (s *Subscription[T]) Cancel() {
	s.state.Store(int32(SubscriptionStateCancelled))
}

func (s *Subscription[T]) shouldDeliver(v T) bool {
	if !s.IsActive() {
		return false
	}
	if s.config.Filter != nil && !s.config.Filter(v) {
		return false
	}
	return true
}
