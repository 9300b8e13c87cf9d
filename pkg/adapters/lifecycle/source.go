package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/margin/pkg/core"
)

type marginSource struct {
	events <-chan core.Event
	out    chan lifecycle.Event
	accept map[core.EventType]bool
}

// NewSource bridges the typed vault event channel to the generic lifecycle
// Event interface, so note and comment changes can drive a lifecycle runtime.
// When one or more event types are given, everything else is dropped at the
// bridge; with none, all events pass through.
func NewSource(events <-chan core.Event, types ...core.EventType) lifecycle.Source {
	var accept map[core.EventType]bool
	if len(types) > 0 {
		accept = make(map[core.EventType]bool, len(types))
		for _, t := range types {
			accept[t] = true
		}
	}
	return &marginSource{
		events: events,
		out:    make(chan lifecycle.Event),
		accept: accept,
	}
}

func (s *marginSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *marginSource) Start(ctx context.Context) error {
	// The bridge goroutine is tracked by the lifecycle runtime so shutdown
	// waits for it.
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				if s.accept != nil && !s.accept[e.Type] {
					continue
				}
				// core.Event implements lifecycle.Event (has String())
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
