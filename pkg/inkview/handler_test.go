package inkview

import (
	"errors"
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu     sync.Mutex
	events []Event
	params [][2]int32
	ret    int32
}

func (r *recorder) HandleEvent(ev Event, par1, par2 int32) int32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	r.params = append(r.params, [2]int32{par1, par2})
	return r.ret
}

func TestTrampolineWithoutHandler(t *testing.T) {
	b := NewBridge()
	if got := b.Trampoline(int32(EventInit), 0, 0); got != ResultNoHandler {
		t.Fatalf("Trampoline() = %d, want %d", got, ResultNoHandler)
	}
	// No handler wins over an unknown code.
	if got := b.Trampoline(9999, 0, 0); got != ResultNoHandler {
		t.Fatalf("Trampoline(unknown) = %d, want %d", got, ResultNoHandler)
	}
}

func TestTrampolineDelivers(t *testing.T) {
	b := NewBridge()
	r := &recorder{ret: 7}
	b.Register(r)

	if got := b.Trampoline(int32(EventKeypress), int32(KeyOk), 3); got != 7 {
		t.Fatalf("Trampoline() = %d, want 7", got)
	}
	if len(r.events) != 1 || r.events[0] != EventKeypress {
		t.Fatalf("events = %v, want [EventKeypress]", r.events)
	}
	if r.params[0] != [2]int32{int32(KeyOk), 3} {
		t.Fatalf("params = %v", r.params[0])
	}
}

func TestTrampolineUnknownEvent(t *testing.T) {
	b := NewBridge()
	r := &recorder{}
	b.Register(r)

	for _, code := range []int32{-5, 0, 27, 9999} {
		if got := b.Trampoline(code, 1, 2); got != ResultUnknownEvent {
			t.Errorf("Trampoline(%d) = %d, want %d", code, got, ResultUnknownEvent)
		}
	}
	if len(r.events) != 0 {
		t.Fatalf("handler saw %v for unknown codes", r.events)
	}
}

func TestRegisterReplaces(t *testing.T) {
	b := NewBridge()
	first := &recorder{ret: 1}
	second := &recorder{ret: 2}

	b.Register(first)
	b.Register(second)
	if got := b.Trampoline(int32(EventShow), 0, 0); got != 2 {
		t.Fatalf("Trampoline() = %d, want 2", got)
	}
	if len(first.events) != 0 {
		t.Fatalf("replaced handler still called")
	}
}

func TestRegisterWhileDispatchWaits(t *testing.T) {
	b := NewBridge()
	entered := make(chan struct{})
	release := make(chan struct{})
	var calls int
	b.Register(HandlerFunc(func(ev Event, par1, par2 int32) int32 {
		calls++
		if calls == 1 {
			close(entered)
			<-release
		}
		return 1
	}))
	next := &recorder{ret: 2}

	first := make(chan int32, 1)
	go func() { first <- b.Trampoline(int32(EventInit), 0, 0) }()
	<-entered

	second := make(chan int32, 1)
	go func() { second <- b.Trampoline(int32(EventShow), 0, 0) }()
	time.Sleep(20 * time.Millisecond)

	b.Register(next)
	close(release)

	if got := <-first; got != 1 {
		t.Fatalf("first Trampoline() = %d, want 1", got)
	}
	if got := <-second; got != 2 {
		t.Fatalf("waiting Trampoline() = %d, want 2 from the new handler", got)
	}
	if calls != 1 {
		t.Fatalf("replaced handler called %d times, want 1", calls)
	}
	if len(next.events) != 1 || next.events[0] != EventShow {
		t.Fatalf("new handler events = %v", next.events)
	}
}

func TestReRegisterFromHandler(t *testing.T) {
	b := NewBridge()
	next := &recorder{ret: 2}
	b.Register(HandlerFunc(func(ev Event, par1, par2 int32) int32 {
		b.Register(next)
		return 1
	}))

	if got := b.Trampoline(int32(EventInit), 0, 0); got != 1 {
		t.Fatalf("first Trampoline() = %d, want 1", got)
	}
	if got := b.Trampoline(int32(EventShow), 0, 0); got != 2 {
		t.Fatalf("second Trampoline() = %d, want 2", got)
	}
	if len(next.events) != 1 || next.events[0] != EventShow {
		t.Fatalf("next handler events = %v", next.events)
	}
}

func TestTrampolineReleasesAfterPanic(t *testing.T) {
	b := NewBridge()
	b.Register(HandlerFunc(func(ev Event, par1, par2 int32) int32 {
		if ev == EventExit {
			panic("boom")
		}
		return 0
	}))

	func() {
		defer func() {
			if recover() == nil {
				t.Fatalf("panic not propagated")
			}
		}()
		b.Trampoline(int32(EventExit), 0, 0)
	}()

	if got := b.Trampoline(int32(EventShow), 0, 0); got != 0 {
		t.Fatalf("Trampoline() after panic = %d, want 0", got)
	}
}

func TestTrampolineSerializes(t *testing.T) {
	b := NewBridge()
	var inside, overlap int
	var mu sync.Mutex
	b.Register(HandlerFunc(func(ev Event, par1, par2 int32) int32 {
		mu.Lock()
		inside++
		if inside > 1 {
			overlap++
		}
		mu.Unlock()

		mu.Lock()
		inside--
		mu.Unlock()
		return 0
	}))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				b.Trampoline(int32(EventPointermove), int32(j), 0)
			}
		}()
	}
	wg.Wait()
	if overlap != 0 {
		t.Fatalf("%d overlapping handler calls", overlap)
	}
}

func TestMainNilHandler(t *testing.T) {
	if err := Main(nil); !errors.Is(err, ErrNilHandler) {
		t.Fatalf("Main(nil) = %v, want ErrNilHandler", err)
	}
}

func TestDispatchWithoutActiveBridge(t *testing.T) {
	prev := active.Swap(nil)
	defer active.Store(prev)

	if got := dispatch(EventShow, 0, 0); got != ResultNoHandler {
		t.Fatalf("dispatch() = %d, want %d", got, ResultNoHandler)
	}
}
