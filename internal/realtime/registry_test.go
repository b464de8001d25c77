package realtime

import (
	"reflect"
	"sync"
	"testing"

	"github.com/yungbote/shepherd-backend/internal/platform/logger"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	t.Cleanup(log.Sync)
	return NewRegistry(log)
}

func TestBroadcastWithoutSubscribersIsNoop(t *testing.T) {
	r := newTestRegistry(t)
	r.Broadcast(Event{"type": "stream.started"})
	if r.Len() != 0 {
		t.Fatalf("Len: want=0 got=%d", r.Len())
	}
}

func TestBroadcastDeliversOnceToEachSubscriberInOrder(t *testing.T) {
	r := newTestRegistry(t)

	var order []int
	var got []Event
	for i := 0; i < 3; i++ {
		i := i
		r.Subscribe(func(ev Event) {
			order = append(order, i)
			got = append(got, ev)
		})
	}

	ev := Event{"type": "stream.started", "stream": map[string]any{"id": "s1"}}
	r.Broadcast(ev)

	if !reflect.DeepEqual(order, []int{0, 1, 2}) {
		t.Fatalf("delivery order: got=%v", order)
	}
	for i, e := range got {
		if !reflect.DeepEqual(e, ev) {
			t.Fatalf("subscriber %d got %v, want %v", i, e, ev)
		}
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	r := newTestRegistry(t)

	var a, b int
	unsubA := r.Subscribe(func(Event) { a++ })
	r.Subscribe(func(Event) { b++ })

	r.Broadcast(Event{"type": "one"})
	unsubA()
	unsubA()
	r.Broadcast(Event{"type": "two"})

	if a != 1 {
		t.Fatalf("unsubscribed subscriber calls: want=1 got=%d", a)
	}
	if b != 2 {
		t.Fatalf("remaining subscriber calls: want=2 got=%d", b)
	}
	if r.Len() != 1 {
		t.Fatalf("Len: want=1 got=%d", r.Len())
	}
}

func TestSameCallbackRegisteredTwiceIsTwoSubscriptions(t *testing.T) {
	r := newTestRegistry(t)

	calls := 0
	fn := func(Event) { calls++ }
	unsub := r.Subscribe(fn)
	r.Subscribe(fn)

	r.Broadcast(Event{"type": "x"})
	unsub()
	r.Broadcast(Event{"type": "y"})

	if calls != 3 {
		t.Fatalf("calls: want=3 got=%d", calls)
	}
}

func TestPanickingSubscriberDoesNotStopDelivery(t *testing.T) {
	r := newTestRegistry(t)

	r.Subscribe(func(Event) { panic("boom") })
	delivered := false
	r.Subscribe(func(Event) { delivered = true })

	r.Broadcast(Event{"type": "x"})
	if !delivered {
		t.Fatalf("subscriber after a panicking one was not called")
	}
}

func TestSubscriberMayUnsubscribeItselfDuringBroadcast(t *testing.T) {
	r := newTestRegistry(t)

	calls := 0
	var unsub func()
	unsub = r.Subscribe(func(Event) {
		calls++
		unsub()
	})

	r.Broadcast(Event{"type": "x"})
	r.Broadcast(Event{"type": "y"})
	if calls != 1 {
		t.Fatalf("calls: want=1 got=%d", calls)
	}
}

func TestConcurrentSubscribeAndBroadcast(t *testing.T) {
	r := newTestRegistry(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			unsub := r.Subscribe(func(Event) {})
			unsub()
		}()
		go func() {
			defer wg.Done()
			r.Broadcast(Event{"type": "x"})
		}()
	}
	wg.Wait()
	if r.Len() != 0 {
		t.Fatalf("Len after concurrent churn: want=0 got=%d", r.Len())
	}
}
