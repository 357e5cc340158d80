package notify

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (r *recordingSink) Notify(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recordingSink) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestEventQueue_PushAndLen(t *testing.T) {
	q := NewEventQueue(4, quietLogger())
	defer q.Close()

	require.NoError(t, q.Push(Event{Type: EventPriceDecided}))
	require.NoError(t, q.Push(Event{Type: EventContractSigned}))
	assert.Equal(t, 2, q.Len())
}

func TestEventQueue_Full(t *testing.T) {
	q := NewEventQueue(1, quietLogger())
	defer q.Close()

	require.NoError(t, q.Push(Event{Type: EventPriceDecided}))
	assert.ErrorIs(t, q.Push(Event{Type: EventContractSigned}), ErrQueueFull)

	// Notify swallows the overflow instead of returning it.
	q.Notify(Event{Type: EventContractSigned})
	assert.Equal(t, 1, q.Len())
}

func TestEventQueue_Closed(t *testing.T) {
	q := NewEventQueue(4, quietLogger())
	require.NoError(t, q.Close())

	assert.True(t, q.IsClosed())
	assert.ErrorIs(t, q.Push(Event{Type: EventPriceDecided}), ErrQueueClosed)

	// Closing twice is a no-op.
	assert.NoError(t, q.Close())
}

// Closing while other goroutines push must not panic; late pushes see
// the closed error.
func TestEventQueue_ConcurrentPushAndClose(t *testing.T) {
	q := NewEventQueue(2, quietLogger())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if err := q.Push(Event{Type: EventPriceDecided}); errors.Is(err, ErrQueueClosed) {
					return
				}
			}
		}()
	}

	require.NoError(t, q.Close())
	wg.Wait()
	assert.ErrorIs(t, q.Push(Event{Type: EventPriceDecided}), ErrQueueClosed)
}

func TestEventQueue_Dispatch(t *testing.T) {
	q := NewEventQueue(8, quietLogger())
	defer q.Close()

	sink := &recordingSink{}
	q.Subscribe(sink)
	q.Start()

	for i := 0; i < 3; i++ {
		q.Notify(Event{Type: EventContractSigned, ContractID: fmt.Sprintf("c-%d", i)})
	}

	assert.Eventually(t, func() bool { return sink.count() == 3 },
		time.Second, 10*time.Millisecond)

	sink.mu.Lock()
	defer sink.mu.Unlock()
	assert.Equal(t, "c-0", sink.events[0].ContractID)
	assert.Equal(t, "c-2", sink.events[2].ContractID)
}

func TestEventQueue_MultipleSinks(t *testing.T) {
	q := NewEventQueue(8, quietLogger())
	defer q.Close()

	first := &recordingSink{}
	second := &recordingSink{}
	q.Subscribe(first)
	q.Subscribe(second)
	q.Start()

	q.Notify(Event{Type: EventPriceApprovalRequested, ApplicationID: "a-1"})

	assert.Eventually(t, func() bool {
		return first.count() == 1 && second.count() == 1
	}, time.Second, 10*time.Millisecond)
}
