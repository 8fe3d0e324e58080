package cdi

import "reflect"

// Event is a handle for firing events. Events are accepted but never
// dispatched: the registry has no observers.
type Event interface {
	// Fire accepts the event and returns immediately.
	Fire(event any)

	// FireAsync returns a channel that already holds the event and is closed.
	FireAsync(event any) <-chan any

	// Select narrows the handle by qualifiers. The result behaves identically.
	Select(qualifiers ...Qualifier) Event

	// SelectType narrows the handle by event subtype. The result behaves identically.
	SelectType(eventType reflect.Type, qualifiers ...Qualifier) Event
}

type inertEvent struct{}

var _ Event = inertEvent{}

func (e inertEvent) Fire(any) {}

func (e inertEvent) FireAsync(event any) <-chan any {
	done := make(chan any, 1)
	done <- event
	close(done)
	return done
}

func (e inertEvent) Select(...Qualifier) Event { return e }

func (e inertEvent) SelectType(reflect.Type, ...Qualifier) Event { return e }
