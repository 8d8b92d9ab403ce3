package inkview

import (
	"errors"
	"sync"
	"sync/atomic"
)

// Results returned to the native library when an event never reaches a
// handler.
const (
	// ResultUnknownEvent is returned for an event code without an Event variant.
	ResultUnknownEvent int32 = -1
	// ResultNoHandler is returned when no handler has been registered.
	ResultNoHandler int32 = -2
)

var (
	ErrNilHandler     = errors.New("inkview: nil event handler")
	ErrLoopRunning    = errors.New("inkview: event loop already running")
	ErrNotImplemented = errors.New("inkview: not available on this platform")
)

// EventHandler receives application events. par1 and par2 depend on the
// event: the key code for key events, coordinates for pointer events.
// The return value is passed back to the native library unchanged.
type EventHandler interface {
	HandleEvent(ev Event, par1, par2 int32) int32
}

// HandlerFunc adapts a function to EventHandler.
type HandlerFunc func(ev Event, par1, par2 int32) int32

// HandleEvent calls f.
func (f HandlerFunc) HandleEvent(ev Event, par1, par2 int32) int32 {
	return f(ev, par1, par2)
}

type handlerSlot struct {
	h EventHandler
}

// Bridge owns the registered handler and turns raw native callbacks into
// typed HandleEvent calls. Dispatch is exclusive: one event at a time
// reaches the handler. A handler must not re-enter Trampoline
// synchronously; that deadlocks.
type Bridge struct {
	slot atomic.Pointer[handlerSlot]
	mu   sync.Mutex
}

// NewBridge returns a Bridge with no handler.
func NewBridge() *Bridge {
	return &Bridge{}
}

// Register stores h, replacing any previous handler. A handler may
// re-register from inside HandleEvent; the new one receives the next event.
func (b *Bridge) Register(h EventHandler) {
	b.slot.Store(&handlerSlot{h: h})
}

// Trampoline is the fixed-signature entry point the native loop calls for
// every event.
func (b *Bridge) Trampoline(event, par1, par2 int32) int32 {
	if s := b.slot.Load(); s == nil || s.h == nil {
		return ResultNoHandler
	}
	ev, ok := EventFromInt32(event)
	if !ok {
		return ResultUnknownEvent
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	// Reload: the handler may have been replaced while we waited.
	s := b.slot.Load()
	if s == nil || s.h == nil {
		return ResultNoHandler
	}
	return s.h.HandleEvent(ev, par1, par2)
}

// active is the bridge the native callback dispatches to. The C callback
// carries no user data, so this is the one process-wide variable; only
// Main sets it.
var (
	active  atomic.Pointer[Bridge]
	running atomic.Bool
)

// Main registers h and runs the native event loop on the calling
// goroutine. It returns when the application exits.
func (b *Bridge) Main(h EventHandler) error {
	if h == nil {
		return ErrNilHandler
	}
	if !running.CompareAndSwap(false, true) {
		return ErrLoopRunning
	}
	defer running.Store(false)

	b.Register(h)
	active.Store(b)
	return runMain()
}

// Main runs h on a new Bridge.
func Main(h EventHandler) error {
	return NewBridge().Main(h)
}

// dispatch delivers an event to the active bridge the same way the native
// callback does.
func dispatch(ev Event, par1, par2 int32) int32 {
	b := active.Load()
	if b == nil {
		return ResultNoHandler
	}
	return b.Trampoline(int32(ev), par1, par2)
}
