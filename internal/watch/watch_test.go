package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_ReportsTargetOnly(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "inkview.h")
	other := filepath.Join(dir, "other.h")
	if err := os.WriteFile(target, []byte("#define A 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	w, err := New([]string{target}, 20*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	if err := os.WriteFile(other, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(target, []byte("#define A 2\n"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case batch := <-w.Changes():
		if len(batch) != 1 || batch[0] != target {
			t.Errorf("batch = %v, want [%s]", batch, target)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change delivered")
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if _, ok := <-w.Changes(); ok {
		t.Error("changes channel should be closed")
	}
}

func TestWatcher_CloseStopsRun(t *testing.T) {
	w, err := New([]string{filepath.Join(t.TempDir(), "a.h")}, 0)
	if err != nil {
		t.Fatal(err)
	}
	done := make(chan error, 1)
	go func() { done <- w.Run(context.Background()) }()

	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Close")
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close = %v", err)
	}
}

func TestNew_Errors(t *testing.T) {
	if _, err := New(nil, 0); !errors.Is(err, ErrNoPaths) {
		t.Errorf("err = %v, want ErrNoPaths", err)
	}
	if _, err := New([]string{"/does/not/exist/x.h"}, 0); err == nil {
		t.Error("expected error for missing directory")
	}
}
