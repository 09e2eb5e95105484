package messaging

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestMemory_PublishReachesSubscriber(t *testing.T) {
	// Arrange
	m := NewMemory()
	t.Cleanup(func() { _ = m.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan Message, 1)
	consumeDone := make(chan error, 1)
	go func() {
		consumeDone <- m.Consume(ctx, "auth_otp_issued", func(_ context.Context, msg Message) error {
			received <- msg
			return nil
		}, WithQueueGroup("auth_otp_issued_delivery"), WithAutoAck(true), WithConcurrency(2))
	}()

	// The subscriber registers asynchronously; publish until it is seen.
	deadline := time.After(2 * time.Second)
	var got Message

	// Act
	for got == nil {
		if _, err := m.Publish(context.Background(), "auth_otp_issued", OutgoingMessage{
			Body:    []byte(`{"user_id":7}`),
			Headers: []Header{{Key: "cID", Value: []byte("abc")}},
		}); err != nil {
			t.Fatalf("Publish() error = %v", err)
		}

		select {
		case got = <-received:
		case <-time.After(10 * time.Millisecond):
		case <-deadline:
			t.Fatal("no message received before deadline")
		}
	}

	// Assert
	if string(got.Body()) != `{"user_id":7}` {
		t.Fatalf("Body() = %q, want published payload", got.Body())
	}
	if got.Subject() != "auth_otp_issued" {
		t.Fatalf("Subject() = %q, want subject", got.Subject())
	}
	headers := got.Headers()
	if len(headers) != 1 || headers[0].Key != "cID" || string(headers[0].Value) != "abc" {
		t.Fatalf("Headers() = %v, want the cID header", headers)
	}

	cancel()
	select {
	case <-consumeDone:
	case <-time.After(2 * time.Second):
		t.Fatal("Consume did not return after cancel")
	}
}

func TestMemory_PublishDuringConsumerShutdown(t *testing.T) {
	// Arrange
	m := NewMemory()
	t.Cleanup(func() { _ = m.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	consumeDone := make(chan error, 1)
	go func() {
		consumeDone <- m.Consume(ctx, "auth_otp_issued", func(context.Context, Message) error {
			return nil
		}, WithConcurrency(2))
	}()

	// Act: keep publishing while the consumer is torn down. Publishes that
	// land after teardown are dropped, never a send on a dead channel.
	var wg sync.WaitGroup
	for range 4 {
		wg.Go(func() {
			for range 200 {
				if _, err := m.Publish(context.Background(), "auth_otp_issued", OutgoingMessage{
					Body: []byte(`{"user_id":7}`),
				}); err != nil {
					t.Errorf("Publish() error = %v", err)
					return
				}
			}
		})
	}
	cancel()
	wg.Wait()

	// Assert
	select {
	case <-consumeDone:
	case <-time.After(2 * time.Second):
		t.Fatal("Consume did not return after cancel")
	}
}

func TestMemory_PublishWithoutSubscriber(t *testing.T) {
	// Arrange
	m := NewMemory()
	t.Cleanup(func() { _ = m.Close() })

	// Act
	res, err := m.Publish(context.Background(), "auth_otp_issued", OutgoingMessage{Body: []byte("x")})

	// Assert: fire-and-forget semantics, like a broker without consumers.
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if res.MessageID == "" {
		t.Fatal("MessageID is empty")
	}
}

func TestMemory_PublishValidation(t *testing.T) {
	// Arrange
	m := NewMemory()
	t.Cleanup(func() { _ = m.Close() })

	// Act / Assert
	if _, err := m.Publish(context.Background(), "", OutgoingMessage{}); err == nil {
		t.Fatal("Publish() with empty subject, want error")
	}
	if _, err := m.Publish(context.Background(), "s", OutgoingMessage{Delay: time.Second}); err == nil {
		t.Fatal("Publish() with delay, want ErrUnsupported")
	}
}
