package event

import (
	"errors"
	"testing"
)

func TestPublishOrder(t *testing.T) {
	var l Listeners[int]
	var got []string
	for _, name := range []string{"a", "b", "c"} {
		if _, err := l.Subscribe(func(int) { got = append(got, name) }); err != nil {
			t.Fatal(err)
		}
	}

	n, err := l.Publish(1)
	if err != nil || n != 3 {
		t.Fatalf("Publish = %d, %v", n, err)
	}
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("order = %v", got)
	}
}

func TestUnsubscribeAndCancel(t *testing.T) {
	var l Listeners[int]
	calls := 0
	a, _ := l.Subscribe(func(int) { calls++ })
	b, _ := l.Subscribe(func(int) { calls++ })

	if !l.Unsubscribe(a.ID()) {
		t.Fatal("Unsubscribe returned false")
	}
	if l.Unsubscribe(a.ID()) {
		t.Error("second Unsubscribe should fail")
	}
	b.Cancel()
	if n, _ := l.Publish(0); n != 0 || calls != 0 {
		t.Errorf("cancelled handlers called: n=%d calls=%d", n, calls)
	}
	if l.Len() != 0 {
		t.Errorf("Len = %d", l.Len())
	}
}

func TestPauseResume(t *testing.T) {
	var l Listeners[string]
	var got []string
	sub, _ := l.Subscribe(func(s string) { got = append(got, s) })

	sub.Pause()
	l.Publish("skipped")
	sub.Resume()
	l.Publish("seen")

	if len(got) != 1 || got[0] != "seen" {
		t.Errorf("got %v", got)
	}
	if sub.State() != SubscriptionStateActive {
		t.Errorf("State = %v", sub.State())
	}
}

func TestOnceAndFilter(t *testing.T) {
	var l Listeners[int]
	once, even := 0, 0
	l.Subscribe(func(int) { once++ }, WithOnce[int]())
	l.Subscribe(func(int) { even++ }, WithFilter(func(v int) bool { return v%2 == 0 }))

	for i := range 4 {
		l.Publish(i)
	}
	if once != 1 {
		t.Errorf("once handler called %d times", once)
	}
	if even != 2 {
		t.Errorf("filtered handler called %d times", even)
	}
}

func TestPanicDoesNotStopDelivery(t *testing.T) {
	var l Listeners[int]
	reached := false
	l.Subscribe(func(int) { panic("boom") })
	l.Subscribe(func(int) { reached = true })

	_, err := l.Publish(1)
	if !errors.Is(err, ErrHandlerPanic) {
		t.Errorf("err = %v, want ErrHandlerPanic", err)
	}
	if !reached {
		t.Error("second handler not called")
	}
}

func TestSubscribeDuringPublish(t *testing.T) {
	var l Listeners[int]
	late := 0
	l.Subscribe(func(int) {
		l.Subscribe(func(int) { late++ })
	}, WithOnce[int]())

	l.Publish(1)
	if late != 0 {
		t.Error("handler added during Publish ran in the same delivery")
	}
	l.Publish(2)
	if late != 1 {
		t.Errorf("late = %d, want 1", late)
	}
}

func TestNilHandler(t *testing.T) {
	var l Listeners[int]
	if _, err := l.Subscribe(nil); !errors.Is(err, ErrNilHandler) {
		t.Errorf("err = %v", err)
	}
}
