package notify

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	ErrQueueFull   = errors.New("queue is full")
	ErrQueueClosed = errors.New("queue is closed")
)

// EventQueue is an in-memory buffer between the synchronous workflows
// and the notification sinks, so a slow sink never stalls a request.
type EventQueue struct {
	items    chan Event
	done     chan struct{}
	closed   bool
	mu       sync.RWMutex
	logger   *logrus.Logger
	handlers []Notifier
}

func NewEventQueue(bufferSize int, logger *logrus.Logger) *EventQueue {
	return &EventQueue{
		items:  make(chan Event, bufferSize),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Notify enqueues the event without blocking; a full or closed queue
// drops the event with a log line, never an error to the caller.
func (q *EventQueue) Notify(ev Event) {
	if err := q.Push(ev); err != nil {
		q.logger.WithError(err).WithField("event", ev.Type).Warn("Dropped notification event")
	}
}

// Push adds an event to the queue.
func (q *EventQueue) Push(ev Event) error {
	// The lock is held across the send: Close takes the write lock
	// before closing items, so no send can race the close.
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}

	// Non-blocking send to prevent deadlocks
	select {
	case q.items <- ev:
		q.logger.WithField("event", ev.Type).Debug("Pushed event to queue")
		return nil
	default:
		return ErrQueueFull
	}
}

// Subscribe adds a sink that will receive every event.
func (q *EventQueue) Subscribe(n Notifier) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers = append(q.handlers, n)
}

// Start begins dispatching queued events.
func (q *EventQueue) Start() {
	go q.process()
}

func (q *EventQueue) process() {
	for {
		select {
		case <-q.done:
			return
		case ev, ok := <-q.items:
			if !ok {
				return
			}
			q.dispatch(ev)
		}
	}
}

func (q *EventQueue) dispatch(ev Event) {
	q.mu.RLock()
	handlers := q.handlers
	q.mu.RUnlock()

	for _, h := range handlers {
		h.Notify(ev)
	}
}

// Close stops the queue and prevents new events from being added.
func (q *EventQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}

	q.closed = true
	close(q.done)
	close(q.items)
	return nil
}

// Len returns the current number of queued events.
func (q *EventQueue) Len() int {
	return len(q.items)
}

// IsClosed returns whether the queue has been closed.
func (q *EventQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
