package serial

import (
	"fmt"
	"sync"
)

// Event is a notification from a session worker. The set of events is
// closed: Opened, Data, Error and Closed are the only implementations.
type Event interface {
	fmt.Stringer
	isEvent()
}

// Opened reports that the device was acquired and the worker loop is running.
type Opened struct{}

// Data carries exactly the bytes returned by one read. Chunk boundaries
// carry no meaning.
type Data struct {
	Bytes []byte
}

// Error reports an open, write or read failure. Err wraps one of
// ErrOpenFailure, ErrWriteFailure or ErrReadFailure.
type Error struct {
	Message string
	Err     error
}

// Closed is the last event of every session that reached Opened. The
// device has been released when it is sent.
type Closed struct{}

func (Opened) isEvent() {}
func (Data) isEvent()   {}
func (Error) isEvent()  {}
func (Closed) isEvent() {}

func (Opened) String() string { return "opened" }
func (d Data) String() string { return fmt.Sprintf("data(%d bytes)", len(d.Bytes)) }
func (e Error) String() string {
	return "error: " + e.Message
}
func (Closed) String() string { return "closed" }

func (e Error) Unwrap() error { return e.Err }

func newError(err error) Error {
	return Error{Message: err.Error(), Err: err}
}

// EventQueue is an unbounded, ordered queue of events from one worker to
// one consumer. Consumers poll with Drain or wait on Ready.
type EventQueue struct {
	mu     sync.Mutex
	events []Event
	ready  chan struct{}
}

func newEventQueue() *EventQueue {
	return &EventQueue{ready: make(chan struct{}, 1)}
}

func (q *EventQueue) push(ev Event) {
	q.mu.Lock()
	q.events = append(q.events, ev)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// Drain returns every queued event in send order without blocking.
// It returns nil when the queue is empty.
func (q *EventQueue) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.events) == 0 {
		return nil
	}
	events := q.events
	q.events = nil
	return events
}

// Ready is signalled after events are pushed. Several pushes may
// coalesce into one signal, so always Drain after receiving.
func (q *EventQueue) Ready() <-chan struct{} {
	return q.ready
}

// Len returns the number of events waiting to be drained
func (q *EventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
