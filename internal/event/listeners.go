package event

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// Listeners is an ordered set of subscriptions. The zero value is ready to
// use.
type Listeners[T any] struct {
	mu   sync.Mutex
	subs []*Subscription[T]
}

// Subscribe appends h to the delivery order.
func (l *Listeners[T]) Subscribe(h func(T), opts ...SubscriptionOption[T]) (*Subscription[T], error) {
	if h == nil {
		return nil, ErrNilHandler
	}
	sub := newSubscription(h, opts...)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.subs = append(l.subs, sub)
	return sub, nil
}

// Unsubscribe cancels and removes the subscription with id.
func (l *Listeners[T]) Unsubscribe(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, s := range l.subs {
		if s.id == id {
			s.Cancel()
			l.subs = slices.Delete(l.subs, i, i+1)
			return true
		}
	}
	return false
}

// Len returns the number of subscriptions that have not been cancelled.
func (l *Listeners[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.prune()
	return len(l.subs)
}

// Clear cancels every subscription.
func (l *Listeners[T]) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, s := range l.subs {
		s.Cancel()
	}
	l.subs = nil
}

func (l *Listeners[T]) prune() {
	l.subs = slices.DeleteFunc(l.subs, func(s *Subscription[T]) bool {
		return s.State() == SubscriptionStateCancelled
	})
}

// Publish delivers v to every active subscription in subscription order
// and returns the number of handlers called. Handler panics are recovered
// and joined into the returned error.
func (l *Listeners[T]) Publish(v T) (int, error) {
	l.mu.Lock()
	l.prune()
	snapshot := slices.Clone(l.subs)
	l.mu.Unlock()

	var errs []error
	delivered := 0
	for _, s := range snapshot {
		if !s.shouldDeliver(v) {
			continue
		}
		if s.config.Once {
			s.Cancel()
		}
		delivered++
		if err := call(s, v); err != nil {
			errs = append(errs, err)
		}
	}
	return delivered, errors.Join(errs...)
}

func call[T any](s *Subscription[T], v T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: subscription %s: %v", ErrHandlerPanic, s.id, r)
		}
	}()
	s.handler(v)
	return nil
}
