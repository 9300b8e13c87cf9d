package lifecycle_test

import (
	"context"
	"testing"
	"time"

	lc "github.com/aretw0/lifecycle"

	marginlc "github.com/aretw0/margin/pkg/adapters/lifecycle"
	"github.com/aretw0/margin/pkg/core"
)

func collect(t *testing.T, events <-chan lc.Event, n int) []string {
	t.Helper()
	var got []string
	timeout := time.After(2 * time.Second)
	for len(got) < n {
		select {
		case e, ok := <-events:
			if !ok {
				return got
			}
			got = append(got, e.String())
		case <-timeout:
			t.Fatalf("timed out after %d of %d events", len(got), n)
		}
	}
	return got
}

func TestSource(t *testing.T) {
	t.Run("Forwards Events Until Input Closes", func(t *testing.T) {
		in := make(chan core.Event, 2)
		src := marginlc.NewSource(in)
		if err := src.Start(context.Background()); err != nil {
			t.Fatalf("Start failed: %v", err)
		}

		in <- core.Event{Type: core.EventCreate, ID: "a"}
		in <- core.Event{Type: core.EventModify, ID: "b"}
		close(in)

		got := collect(t, src.Events(), 2)
		if got[0] != "CREATE a" || got[1] != "MODIFY b" {
			t.Errorf("Unexpected events: %v", got)
		}

		if _, ok := <-src.Events(); ok {
			t.Error("Expected output channel to close after input closed")
		}
	})

	t.Run("Filters By Event Type", func(t *testing.T) {
		in := make(chan core.Event, 3)
		src := marginlc.NewSource(in, core.EventDelete)
		if err := src.Start(context.Background()); err != nil {
			t.Fatalf("Start failed: %v", err)
		}

		in <- core.Event{Type: core.EventCreate, ID: "a"}
		in <- core.Event{Type: core.EventDelete, ID: "b"}
		in <- core.Event{Type: core.EventModify, ID: "c"}
		close(in)

		got := collect(t, src.Events(), 1)
		if got[0] != "DELETE b" {
			t.Errorf("Expected only the delete, got %v", got)
		}
		if _, ok := <-src.Events(); ok {
			t.Error("Expected output channel to close after input closed")
		}
	})

	t.Run("Stops On Context Cancel", func(t *testing.T) {
		in := make(chan core.Event)
		src := marginlc.NewSource(in)
		ctx, cancel := context.WithCancel(context.Background())
		if err := src.Start(ctx); err != nil {
			t.Fatalf("Start failed: %v", err)
		}
		cancel()

		select {
		case _, ok := <-src.Events():
			if ok {
				t.Error("Expected close, got event")
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Expected output channel to close after cancel")
		}
	})
}
