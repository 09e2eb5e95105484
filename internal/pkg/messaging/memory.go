package messaging

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrMemorySubjectRequired is returned when the subject is empty.
var ErrMemorySubjectRequired = errors.New("pkgmessage: memory subject is required")

// ErrMemoryHandlerRequired is returned when Consume is called with a nil handler.
var ErrMemoryHandlerRequired = errors.New("pkgmessage: memory handler is required")

// Memory is an in-process messaging implementation. Publishes fan out to all
// registered subscribers on the subject. Used for local runs and tests.
type Memory struct {
	mu     sync.Mutex
	subs   map[string][]*memorySubscription
	closed bool
}

// memorySubscription pairs the delivery channel with a teardown signal. The
// delivery channel is never closed; publishers select on done instead, so a
// publisher holding a stale snapshot cannot send on a closed channel.
type memorySubscription struct {
	ch   chan *memoryMessage
	done chan struct{}
}

// NewMemory constructs an in-process messaging client.
func NewMemory() *Memory {
	return &Memory{subs: make(map[string][]*memorySubscription)}
}

// Close stops delivery and tears down all subscriptions.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true

	for _, subs := range m.subs {
		for _, sub := range subs {
			close(sub.done)
		}
	}
	m.subs = make(map[string][]*memorySubscription)

	return nil
}

// Publish delivers a message to every subscriber on the subject.
func (m *Memory) Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error) {
	if err := ctx.Err(); err != nil {
		return PublishResult{}, err
	}
	if destination == "" {
		return PublishResult{}, ErrMemorySubjectRequired
	}
	if msg.Delay > 0 {
		return PublishResult{}, ErrUnsupported
	}

	now := time.Now()
	id := uuid.NewString()

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return PublishResult{}, io.ErrClosedPipe
	}
	subs := append([]*memorySubscription{}, m.subs[destination]...)
	m.mu.Unlock()

	for _, sub := range subs {
		delivered := &memoryMessage{
			id:         id,
			subject:    destination,
			body:       append([]byte{}, msg.Body...),
			headers:    append([]Header{}, msg.Headers...),
			receivedAt: now,
		}
		select {
		case sub.ch <- delivered:
		case <-sub.done:
			// Subscriber went away between the snapshot and the send.
		case <-ctx.Done():
			return PublishResult{}, ctx.Err()
		}
	}

	return PublishResult{
		MessageID: id,
		Topic:     destination,
		Timestamp: now,
	}, nil
}

// Consume starts consuming messages published to the subject. It blocks until
// the context is canceled.
func (m *Memory) Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if source == "" {
		return ErrMemorySubjectRequired
	}
	if handler == nil {
		return ErrMemoryHandlerRequired
	}

	co := newConsumeOptions(opts...)
	concurrency := concurrencyOrDefault(co.concurrency, 1)

	sub := &memorySubscription{
		ch:   make(chan *memoryMessage, concurrency),
		done: make(chan struct{}),
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return io.ErrClosedPipe
	}
	m.subs[source] = append(m.subs[source], sub)
	m.mu.Unlock()

	var wg sync.WaitGroup
	for range concurrency {
		wg.Go(func() {
			for {
				select {
				case msg := <-sub.ch:
					//nolint:errcheck // handler outcome is the handler's concern
					_ = callHandlerWithRecover(ctx, "memory", func() error {
						return handler(ctx, msg)
					})
				case <-sub.done:
					return
				}
			}
		})
	}

	<-ctx.Done()

	m.mu.Lock()
	if !m.closed {
		subs := m.subs[source]
		for i, s := range subs {
			if s == sub {
				m.subs[source] = append(subs[:i], subs[i+1:]...)
				close(sub.done)
				break
			}
		}
	}
	m.mu.Unlock()

	wg.Wait()

	return ctx.Err()
}
