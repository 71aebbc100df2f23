package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestPublishConsultationEncodesEvent(t *testing.T) {
	writer := &fakeWriter{}
	pub := &KafkaPublisher{writer: writer}
	at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	err := pub.PublishConsultation(context.Background(), ConsultationEvent{
		ID:         "c-1",
		Query:      "nước hoa nam",
		Branch:     "general",
		ProductIDs: []int64{3, 1},
		OccurredAt: at,
	})
	require.NoError(t, err)
	require.Len(t, writer.msgs, 1)

	msg := writer.msgs[0]
	require.Equal(t, []byte("c-1"), msg.Key)
	require.Equal(t, at, msg.Time)

	var decoded ConsultationEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	require.Equal(t, "nước hoa nam", decoded.Query)
	require.Equal(t, []int64{3, 1}, decoded.ProductIDs)
	require.False(t, decoded.Fallback)

	require.NoError(t, pub.Close())
	require.True(t, writer.closed)
}

func TestPublishConsultationDefaults(t *testing.T) {
	writer := &fakeWriter{}
	pub := &KafkaPublisher{writer: writer}

	require.NoError(t, pub.PublishConsultation(context.Background(), ConsultationEvent{ID: "c-2", Fallback: true}))
	require.Len(t, writer.msgs, 1)
	require.False(t, writer.msgs[0].Time.IsZero())
	require.JSONEq(t, `[]`, string(mustField(t, writer.msgs[0].Value, "product_ids")))
}

func TestPublishConsultationWrapsWriterError(t *testing.T) {
	boom := errors.New("broker unavailable")
	pub := &KafkaPublisher{writer: &fakeWriter{err: boom}}

	err := pub.PublishConsultation(context.Background(), ConsultationEvent{ID: "c-3"})
	require.ErrorIs(t, err, boom)
}

func TestNewSelectsPublisher(t *testing.T) {
	require.IsType(t, NoopPublisher{}, New(nil, ""))

	pub := New([]string{"localhost:9092"}, "")
	kp, ok := pub.(*KafkaPublisher)
	require.True(t, ok)
	require.Equal(t, DefaultTopic, kp.writer.(*kafka.Writer).Topic)
}

func mustField(t *testing.T, raw []byte, field string) json.RawMessage {
	t.Helper()
	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &fields))
	return fields[field]
}
