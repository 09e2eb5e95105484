package messaging

import (
	"context"
	"fmt"
	"time"
)

type memoryMessage struct {
	id         string
	subject    string
	body       []byte
	headers    []Header
	receivedAt time.Time
}

func (m *memoryMessage) Body() []byte { return m.body }

func (m *memoryMessage) Headers() []Header { return m.headers }

func (m *memoryMessage) Attributes() map[string]string {
	if len(m.headers) == 0 {
		return nil
	}

	attrs := make(map[string]string, len(m.headers))
	for _, h := range m.headers {
		if _, ok := attrs[h.Key]; !ok {
			attrs[h.Key] = string(h.Value)
		}
	}
	return attrs
}

func (m *memoryMessage) ID() string { return m.id }

func (m *memoryMessage) Subject() string { return m.subject }

func (m *memoryMessage) Timestamp() time.Time { return m.receivedAt }

func (m *memoryMessage) Ack(ctx context.Context) error {
	return ctx.Err()
}

func (m *memoryMessage) String() string {
	return fmt.Sprintf("memory subject=%q", m.subject)
}
