package eventbus

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct {
	topic string
	n     int
}

func (e testEvent) Topic() string { return e.topic }

func TestBusDeliversToAllSubscribers(t *testing.T) {
	bus := New(Config{WorkerCount: 2, BufferSize: 16})
	var mu sync.Mutex
	var got []int
	var wg sync.WaitGroup
	wg.Add(4)

	for i := 0; i < 2; i++ {
		bus.Subscribe("a", func(_ context.Context, e Event) error {
			defer wg.Done()
			mu.Lock()
			got = append(got, e.(testEvent).n)
			mu.Unlock()
			return nil
		})
	}
	bus.Start()
	defer bus.Stop()

	bus.Publish(testEvent{topic: "a", n: 1})
	bus.Publish(testEvent{topic: "a", n: 2})
	bus.Publish(testEvent{topic: "unrouted", n: 3})

	waitTimeout(t, &wg)
	assert.ElementsMatch(t, []int{1, 1, 2, 2}, got)
}

func TestBusSurvivesPanicsAndErrors(t *testing.T) {
	bus := New(Config{WorkerCount: 1, BufferSize: 4})
	var calls atomic.Int32
	var wg sync.WaitGroup
	wg.Add(2)

	bus.Subscribe("a", func(context.Context, Event) error {
		defer wg.Done()
		calls.Add(1)
		panic("boom")
	})
	bus.Subscribe("a", func(context.Context, Event) error {
		defer wg.Done()
		calls.Add(1)
		return errors.New("handler failed")
	})
	bus.Start()
	defer bus.Stop()

	bus.Publish(testEvent{topic: "a"})
	waitTimeout(t, &wg)
	assert.Equal(t, int32(2), calls.Load())
}

func TestPublishNeverBlocks(t *testing.T) {
	// 没有启动工作协程，队列满后直接丢弃
	bus := New(Config{WorkerCount: 1, BufferSize: 1})
	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			bus.Publish(testEvent{topic: "a"})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked")
	}
	assert.Len(t, bus.queue, 1)
}

func TestStopDrainsQueue(t *testing.T) {
	bus := New(Config{WorkerCount: 1, BufferSize: 8})
	var handled atomic.Int32
	bus.Subscribe("a", func(context.Context, Event) error {
		handled.Add(1)
		return nil
	})
	for i := 0; i < 5; i++ {
		bus.Publish(testEvent{topic: "a"})
	}
	bus.Start()
	bus.Stop()
	assert.Equal(t, int32(5), handled.Load())

	// 停止后发布直接丢弃
	bus.Publish(testEvent{topic: "a"})
	assert.Equal(t, int32(5), handled.Load())
}

func TestSyncPublisher(t *testing.T) {
	p := NewSyncPublisher()
	var got int
	p.Subscribe("a", func(_ context.Context, e Event) error {
		got = e.(testEvent).n
		return nil
	})
	p.Publish(testEvent{topic: "a", n: 9})
	require.Equal(t, []string{"a"}, p.Topics())
	assert.Equal(t, 9, got)
}

func waitTimeout(t *testing.T, wg *sync.WaitGroup) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for handlers")
	}
}
