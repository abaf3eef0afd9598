// Package event provides ordered, synchronous change notification.
//
// A Listeners value holds subscriptions for one payload type. Publish calls
// every active handler in the order it subscribed, on the caller's
// goroutine, before returning:
//
//	var changes event.Listeners[State]
//	sub := changes.Subscribe(func(s State) { render(s) })
//	defer sub.Cancel()
//
//	changes.Publish(current)
//
// Publish iterates over a snapshot, so handlers may subscribe or cancel
// (including themselves) while an event is being delivered. Changes take
// effect from the next Publish.
//
// A panicking handler does not stop delivery to the rest. Publish recovers
// the panic and reports it, wrapped in ErrHandlerPanic, in its returned
// error.
//
// # Subscription Options
//
//	changes.Subscribe(h, event.WithOnce())            // auto-cancel after one event
//	changes.Subscribe(h, event.WithFilter(isVisible)) // deliver selectively
//
// Subscriptions can be paused and resumed; a cancelled subscription is
// removed at the next Publish or Len call.
package event
