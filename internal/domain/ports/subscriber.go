package ports

import "errors"

// ErrSubscriberClosed is returned by Send after a subscriber has been
// closed.
var ErrSubscriberClosed = errors.New("subscriber is closed")

// Subscriber is the send capability of one connected client.
type Subscriber interface {
	// ID returns a unique identifier for this subscriber.
	ID() string

	// Send delivers a serialized event to this subscriber.
	// Returns an error if the subscriber is closed or the send fails.
	Send(data []byte) error

	// Close closes the subscriber.
	Close() error

	// Done returns a channel that's closed when the subscriber is done.
	Done() <-chan struct{}
}
