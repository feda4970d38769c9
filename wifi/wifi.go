// Package wifi joins a wireless network and waits for the association.
package wifi

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Link is a wireless interface.
type Link interface {
	// Activate powers the interface up.
	Activate() error
	// Connect starts associating with the network. It may return before the
	// association completes.
	Connect(ssid, password string) error
	// Connected reports whether the interface is associated.
	Connected() bool
}

// ErrTimeout is returned when the association does not complete in time.
var ErrTimeout = errors.New("wifi: association timed out")

// DefaultTimeout is used when Connect is given a zero timeout.
const DefaultTimeout = 10 * time.Second

const pollInterval = 10 * time.Millisecond

// Connect activates link, starts associating with ssid and polls until the
// link reports a connection, the timeout elapses or ctx is done.
func Connect(ctx context.Context, link Link, ssid, password string, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if err := link.Activate(); err != nil {
		return fmt.Errorf("wifi: activate: %w", err)
	}
	if err := link.Connect(ssid, password); err != nil {
		return fmt.Errorf("wifi: connect to %q: %w", ssid, err)
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	tick := time.NewTicker(pollInterval)
	defer tick.Stop()

	for {
		if link.Connected() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			if link.Connected() {
				return nil
			}
			return ErrTimeout
		case <-tick.C:
		}
	}
}
