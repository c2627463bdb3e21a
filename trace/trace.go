// Package trace provides the transition observer the upload-pack and
// receive-pack state machines report latency through. Like the log and
// retry collaborators, an observer travels on the request context — the
// state machines never depend on a global sink, and with no observer set
// transitions cost one nil check.
package trace

import (
	"context"
	"time"
)

// Observer receives one callback per service state-machine transition:
// which service moved, the states either side of the move, and how long
// the machine sat in the previous state.
//
//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -o ../internal/fakes/observer.go . Observer
type Observer interface {
	OnTransition(service, prev, next string, elapsed time.Duration)
}

// observerKey is the key for the observer in the context.
type observerKey struct{}

// ToContext sets the observer on ctx.
func ToContext(ctx context.Context, obs Observer) context.Context {
	return context.WithValue(ctx, observerKey{}, obs)
}

// FromContext returns the observer set on ctx, or nil if none was set.
func FromContext(ctx context.Context) Observer {
	obs, ok := ctx.Value(observerKey{}).(Observer)
	if !ok {
		return nil
	}

	return obs
}
