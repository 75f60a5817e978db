// Package singleinstance ensures that only one instance of the app runs at a time.
package singleinstance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/juju/mutex/v2"
)

// retryDelay is the delay between attempts to acquire the lock.
const retryDelay = 100 * time.Millisecond

var ErrAlreadyRunning = errors.New("another instance is already running")

// Lock is a process wide lock, which is held until it is released.
type Lock struct {
	name     string
	releaser mutex.Releaser
}

// Acquire tries to acquire the lock with the given name until ctx is done.
// Returns [ErrAlreadyRunning] when the lock is held by another process.
// A name must start with a letter and may contain letters, digits and dashes.
func Acquire(ctx context.Context, name string) (*Lock, error) {
	r, err := mutex.Acquire(mutex.Spec{
		Name:   name,
		Clock:  systemClock{},
		Delay:  retryDelay,
		Cancel: ctx.Done(),
	})
	if errors.Is(err, mutex.ErrCancelled) || errors.Is(err, mutex.ErrTimeout) {
		return nil, fmt.Errorf("acquire lock %s: %w", name, ErrAlreadyRunning)
	}
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", name, err)
	}
	slog.Debug("Lock acquired", "name", name)
	return &Lock{name: name, releaser: r}, nil
}

// Release releases the lock. Calling it more than once is a no-op.
func (l *Lock) Release() {
	if l == nil || l.releaser == nil {
		return
	}
	l.releaser.Release()
	l.releaser = nil
	slog.Debug("Lock released", "name", l.name)
}

type systemClock struct{}

func (systemClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

func (systemClock) Now() time.Time {
	return time.Now()
}
