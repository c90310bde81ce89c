package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const (
	HeaderEventID       = "event-id"
	HeaderEventType     = "event-type"
	HeaderSchemaVersion = "schema-version"
	HeaderSource        = "source"
	HeaderTimestamp     = "timestamp"
	HeaderRetryCount    = "retry-count"
	HeaderOriginalTopic = "original-topic"
)

// Message is the transport-neutral form of a Kafka record. Key is the
// partition key; reservation traffic is keyed by classroom id so that
// requests for one room stay ordered.
type Message struct {
	Key       string
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
}

// MessageHandler processes one message. A nil return commits it.
type MessageHandler func(ctx context.Context, msg Message) error

// MessageBuilder assembles an outgoing Message. A WithValue encoding failure
// is held and returned by Build.
type MessageBuilder struct {
	msg Message
	err error
}

func NewMessage() *MessageBuilder {
	return &MessageBuilder{msg: Message{Headers: map[string]string{}, Timestamp: time.Now()}}
}

func (b *MessageBuilder) header(key, value string) *MessageBuilder {
	b.msg.Headers[key] = value
	return b
}

func (b *MessageBuilder) WithKey(key string) *MessageBuilder {
	b.msg.Key = key
	return b
}

func (b *MessageBuilder) WithValue(v any) *MessageBuilder {
	if b.err != nil {
		return b
	}
	b.msg.Value, b.err = json.Marshal(v)
	if b.err != nil {
		b.err = fmt.Errorf("encode message value: %w", b.err)
	}
	return b
}

func (b *MessageBuilder) WithRawValue(v []byte) *MessageBuilder {
	b.msg.Value = v
	return b
}

func (b *MessageBuilder) WithEventType(t string) *MessageBuilder { return b.header(HeaderEventType, t) }

func (b *MessageBuilder) WithSchemaVersion(v string) *MessageBuilder {
	return b.header(HeaderSchemaVersion, v)
}

func (b *MessageBuilder) WithSource(s string) *MessageBuilder { return b.header(HeaderSource, s) }

func (b *MessageBuilder) WithTimestamp(ts time.Time) *MessageBuilder {
	b.msg.Timestamp = ts
	return b
}

// Build stamps an event id and an RFC 3339 timestamp header when missing.
func (b *MessageBuilder) Build() (Message, error) {
	if b.err != nil {
		return Message{}, b.err
	}
	if b.msg.Headers[HeaderEventID] == "" {
		b.header(HeaderEventID, uuid.NewString())
	}
	if b.msg.Headers[HeaderTimestamp] == "" {
		b.header(HeaderTimestamp, b.msg.Timestamp.UTC().Format(time.RFC3339))
	}
	return b.msg, nil
}

// DecodeValue unmarshals the JSON payload. Failures are permanent: the same
// bytes will never decode on a retry.
func (m *Message) DecodeValue(v any) error {
	if err := json.Unmarshal(m.Value, v); err != nil {
		return NewPermanentError("deserialization failed", err)
	}
	return nil
}

func (m *Message) GetEventID() string   { return m.Headers[HeaderEventID] }
func (m *Message) GetEventType() string { return m.Headers[HeaderEventType] }

func (m *Message) GetRetryCount() int {
	n, _ := strconv.Atoi(m.Headers[HeaderRetryCount])
	return n
}

func (m *Message) IncrementRetryCount() {
	next := strconv.Itoa(m.GetRetryCount() + 1)
	if m.Headers == nil {
		m.Headers = map[string]string{}
	}
	m.Headers[HeaderRetryCount] = next
}
