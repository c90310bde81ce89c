package kafka

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	"classbook/pkg/logger"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	mu      sync.Mutex
	written []kafka.Message
	err     error
	closed  bool
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.written = append(w.written, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func (w *fakeWriter) messages() []kafka.Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]kafka.Message(nil), w.written...)
}

type fakeReader struct {
	mu        sync.Mutex
	pending   []kafka.Message
	committed []kafka.Message
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if len(r.pending) > 0 {
		msg := r.pending[0]
		r.pending = r.pending[1:]
		r.mu.Unlock()
		return msg, nil
	}
	r.mu.Unlock()

	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.committed = append(r.committed, msgs...)
	return nil
}

func (r *fakeReader) Close() error { return nil }

func (r *fakeReader) commits() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.committed)
}

func headerValue(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestMessageBuilder(t *testing.T) {
	ts := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)

	msg, err := NewMessage().
		WithKey("101").
		WithValue(map[string]string{"status": "committed"}).
		WithEventType("reservation.committed").
		WithSource("reservations").
		WithTimestamp(ts).
		Build()

	require.NoError(t, err)
	assert.Equal(t, "101", msg.Key)
	assert.JSONEq(t, `{"status":"committed"}`, string(msg.Value))
	assert.Equal(t, "reservation.committed", msg.GetEventType())
	assert.NotEmpty(t, msg.GetEventID())
	assert.Equal(t, "2025-03-03T09:00:00Z", msg.Headers[HeaderTimestamp])
}

func TestMessageBuilder_EncodeError(t *testing.T) {
	_, err := NewMessage().WithKey("101").WithValue(make(chan int)).Build()
	assert.Error(t, err)
}

func TestMessage_RetryCount(t *testing.T) {
	msg := Message{}
	assert.Zero(t, msg.GetRetryCount())

	for i := 0; i < 12; i++ {
		msg.IncrementRetryCount()
	}
	assert.Equal(t, 12, msg.GetRetryCount())
	assert.Equal(t, "12", msg.Headers[HeaderRetryCount])
}

func TestMessage_DecodeValueIsPermanent(t *testing.T) {
	msg := Message{Value: []byte("{not json")}
	var v map[string]any

	err := msg.DecodeValue(&v)
	assert.Equal(t, ErrorTypePermanent, ClassifyError(err))
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"nil", nil, ErrorTypeUnknown},
		{"transient wrapper", NewTransientError("store down", errors.New("x")), ErrorTypeTransient},
		{"business wrapper", NewBusinessError("conflict", nil), ErrorTypeBusiness},
		{"deadline", context.DeadlineExceeded, ErrorTypeTransient},
		{"connection refused text", errors.New("dial tcp: Connection Refused"), ErrorTypeTransient},
		{"broker temporary", fmt.Errorf("write: %w", kafka.LeaderNotAvailable), ErrorTypeTransient},
		{"broker fatal", kafka.MessageSizeTooLarge, ErrorTypePermanent},
		{"net timeout", &net.DNSError{Err: "lookup", IsTimeout: true}, ErrorTypeTransient},
		{"unknown text", errors.New("bad payload"), ErrorTypePermanent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyError(tt.err))
		})
	}

	assert.Equal(t, "business", ErrorTypeBusiness.String())
	assert.Equal(t, "unknown", ErrorType(42).String())
	assert.True(t, ShouldRetry(NewTransientError("x", nil), 0, 3))
	assert.False(t, ShouldRetry(NewTransientError("x", nil), 3, 3))
	assert.False(t, ShouldRetry(NewPermanentError("x", nil), 0, 3))
}

func TestProducer_Publish(t *testing.T) {
	writer := &fakeWriter{}
	p := newProducer(writer, nil, "reservation-events", "", logger.Discard())

	var seenTopic string
	p.Use(func(ctx context.Context, msg Message, next func(context.Context, Message) error) error {
		seenTopic = msg.Topic
		return next(ctx, msg)
	})

	msg, err := NewMessage().WithKey("101").WithRawValue([]byte(`{}`)).WithEventType("reservation.committed").Build()
	require.NoError(t, err)
	require.NoError(t, p.Publish(context.Background(), msg))

	written := writer.messages()
	require.Len(t, written, 1)
	assert.Equal(t, "101", string(written[0].Key))
	assert.Equal(t, "reservation.committed", headerValue(written[0], HeaderEventType))
	assert.Equal(t, "reservation-events", seenTopic)
}

func TestProducer_RejectsInvalidAndClosed(t *testing.T) {
	writer := &fakeWriter{}
	p := newProducer(writer, nil, "reservation-events", "", logger.Discard())
	ctx := context.Background()

	assert.ErrorIs(t, p.Publish(ctx, Message{Value: []byte("x")}), ErrEmptyKey)
	assert.ErrorIs(t, p.Publish(ctx, Message{Key: "101"}), ErrEmptyValue)

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
	assert.True(t, writer.closed)
	assert.ErrorIs(t, p.Publish(ctx, Message{Key: "101", Value: []byte("x")}), ErrProducerClosed)
}

func TestProducer_FailedWriteGoesToDLQ(t *testing.T) {
	writeErr := errors.New("leader not available")
	writer := &fakeWriter{err: writeErr}
	dlq := &fakeWriter{}
	p := newProducer(writer, dlq, "reservation-events", "reservation-events-dlq", logger.Discard())

	err := p.Publish(context.Background(), Message{Key: "101", Value: []byte(`{}`), Headers: map[string]string{}})

	assert.ErrorIs(t, err, writeErr)
	dead := dlq.messages()
	require.Len(t, dead, 1)
	assert.Equal(t, "reservation-events", headerValue(dead[0], HeaderOriginalTopic))
	assert.Equal(t, "leader not available", headerValue(dead[0], "dlq-error"))
}

func runConsumer(t *testing.T, c *Consumer, reader *fakeReader, wantCommits int) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Start(ctx) }()

	require.Eventually(t, func() bool { return reader.commits() == wantCommits }, time.Second, 5*time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	require.NoError(t, c.Close())
}

func TestConsumer_RetriesTransientThenSucceeds(t *testing.T) {
	reader := &fakeReader{pending: []kafka.Message{{Key: []byte("101"), Value: []byte(`{}`)}}}
	attempts := 0
	handler := func(ctx context.Context, msg Message) error {
		attempts++
		if attempts < 3 {
			return NewTransientError("store unavailable", nil)
		}
		return nil
	}
	c := newConsumer(reader, nil, "reservation-requests", "reservations", "", handler, logger.Discard())
	c.maxRetries = 3
	c.retryBackoff = time.Millisecond

	runConsumer(t, c, reader, 1)
	assert.Equal(t, 3, attempts)
}

func TestConsumer_PermanentErrorGoesToDLQ(t *testing.T) {
	reader := &fakeReader{pending: []kafka.Message{{Key: []byte("101"), Value: []byte(`{}`)}}}
	dlq := &fakeWriter{}
	attempts := 0
	handler := func(ctx context.Context, msg Message) error {
		attempts++
		return NewPermanentError("validation failed", nil)
	}
	c := newConsumer(reader, dlq, "reservation-requests", "reservations", "reservation-requests-dlq", handler, logger.Discard())
	c.maxRetries = 3

	runConsumer(t, c, reader, 1)
	assert.Equal(t, 1, attempts)
	dead := dlq.messages()
	require.Len(t, dead, 1)
	assert.Equal(t, "reservations", headerValue(dead[0], "dlq-consumer-group"))
	assert.Equal(t, "permanent", headerValue(dead[0], "dlq-error-type"))
}

func TestConsumer_BusinessErrorIsDropped(t *testing.T) {
	reader := &fakeReader{pending: []kafka.Message{{Key: []byte("101"), Value: []byte(`{}`)}}}
	dlq := &fakeWriter{}
	handler := func(ctx context.Context, msg Message) error {
		return NewBusinessError("conflict", nil)
	}
	c := newConsumer(reader, dlq, "reservation-requests", "reservations", "reservation-requests-dlq", handler, logger.Discard())

	runConsumer(t, c, reader, 1)
	assert.Empty(t, dlq.messages())
}

func TestConsumer_StartAfterClose(t *testing.T) {
	c := newConsumer(&fakeReader{}, nil, "t", "g", "", func(context.Context, Message) error { return nil }, logger.Discard())
	require.NoError(t, c.Close())

	assert.ErrorIs(t, c.Start(context.Background()), ErrConsumerClosed)
}
