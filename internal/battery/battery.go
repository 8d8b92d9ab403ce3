package battery

import (
	"context"
	"fmt"

	"inkview/pkg/inkview"
)

// Status represents the current battery status shown in the agenda header.
type Status struct {
	// Percent is the battery level in 0–100%.
	Percent int `json:"percent"`
	// Charging is true while external power is connected.
	Charging bool `json:"charging"`
}

// String renders the status for the header line, e.g. "87%" or "87%+".
func (s Status) String() string {
	if s.Charging {
		return fmt.Sprintf("%d%%+", s.Percent)
	}
	return fmt.Sprintf("%d%%", s.Percent)
}

// Reader abstracts how we obtain battery information. This allows a fixed
// implementation in tests and the firmware-backed one on the device.
type Reader interface {
	Read(ctx context.Context) (Status, error)
}

// nativeReader asks the inkview library. On the host build the simulator
// answers.
type nativeReader struct{}

// staticReader always returns the same status.
type staticReader struct {
	status Status
	err    error
}

// NewNativeReader constructs a Reader backed by inkview.BatteryPower and
// inkview.IsCharging. It must be called from the event loop goroutine.
func NewNativeReader() Reader {
	return nativeReader{}
}

// NewStaticReader returns a Reader that always reports st.
func NewStaticReader(st Status) Reader {
	return &staticReader{status: st}
}

// NewFailingReader returns a Reader that always fails with err.
func NewFailingReader(err error) Reader {
	return &staticReader{err: err}
}

func (nativeReader) Read(ctx context.Context) (Status, error) {
	if err := ctx.Err(); err != nil {
		return Status{}, err
	}
	p := int(inkview.BatteryPower())
	if p < 0 || p > 100 {
		return Status{}, fmt.Errorf("battery: level %d out of range", p)
	}
	return Status{
		Percent:  p,
		Charging: inkview.IsCharging(),
	}, nil
}

func (r *staticReader) Read(_ context.Context) (Status, error) {
	if r.err != nil {
		return Status{}, r.err
	}
	return r.status, nil
}

// DefaultReader returns the Reader that should be used by the main program.
func DefaultReader() Reader {
	return NewNativeReader()
}
