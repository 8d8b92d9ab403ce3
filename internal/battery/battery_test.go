package battery

import (
	"context"
	"errors"
	"testing"
)

func TestStatusString(t *testing.T) {
	tests := []struct {
		st   Status
		want string
	}{
		{Status{Percent: 87}, "87%"},
		{Status{Percent: 100, Charging: true}, "100%+"},
		{Status{}, "0%"},
	}
	for _, tt := range tests {
		if got := tt.st.String(); got != tt.want {
			t.Errorf("%+v.String() = %q, want %q", tt.st, got, tt.want)
		}
	}
}

func TestStaticReaders(t *testing.T) {
	st, err := NewStaticReader(Status{Percent: 42}).Read(context.Background())
	if err != nil || st.Percent != 42 {
		t.Errorf("static = %+v, %v", st, err)
	}

	boom := errors.New("boom")
	if _, err := NewFailingReader(boom).Read(context.Background()); !errors.Is(err, boom) {
		t.Errorf("failing err = %v", err)
	}
}

func TestNativeReader_Simulator(t *testing.T) {
	st, err := DefaultReader().Read(context.Background())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if st.Percent < 0 || st.Percent > 100 {
		t.Errorf("percent = %d", st.Percent)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := DefaultReader().Read(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
