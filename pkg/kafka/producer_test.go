package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
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

func TestNewProducer_RequiresBrokers(t *testing.T) {
	_, err := NewProducer()
	assert.Error(t, err)
}

func TestProducer_PublishEncodesValues(t *testing.T) {
	w := &fakeWriter{}
	p, err := NewProducer(WithWriter(w))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, p.Publish(ctx, "events", []byte("k1"), "raw"))
	require.NoError(t, p.Publish(ctx, "events", nil, []byte("bytes")))
	require.NoError(t, p.Publish(ctx, "events", []byte("k3"), map[string]int{"n": 1}))

	require.Len(t, w.msgs, 3)
	assert.Equal(t, "events", w.msgs[0].Topic)
	assert.Equal(t, []byte("k1"), w.msgs[0].Key)
	assert.Equal(t, "raw", string(w.msgs[0].Value))
	assert.Equal(t, "bytes", string(w.msgs[1].Value))
	assert.JSONEq(t, `{"n":1}`, string(w.msgs[2].Value))

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestProducer_Headers(t *testing.T) {
	type ctxKey struct{}
	w := &fakeWriter{}
	p, err := NewProducer(WithWriter(w), WithHeaders(func(ctx context.Context) []kafka.Header {
		id, _ := ctx.Value(ctxKey{}).(string)
		return []kafka.Header{{Key: "x-request-id", Value: []byte(id)}}
	}))
	require.NoError(t, err)

	ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")
	require.NoError(t, p.PublishBatch(ctx, "events", []Message{{Value: "a"}, {Value: "b"}}))

	require.Len(t, w.msgs, 2)
	for _, m := range w.msgs {
		require.Len(t, m.Headers, 1)
		assert.Equal(t, "req-1", string(m.Headers[0].Value))
	}
}

func TestProducer_Errors(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	p, err := NewProducer(WithWriter(w))
	require.NoError(t, err)

	err = p.Publish(context.Background(), "events", nil, "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")

	assert.Error(t, p.Publish(context.Background(), "", nil, "x"))
	assert.NoError(t, p.PublishBatch(context.Background(), "events", nil))

	_, err = encodeValue(func() {})
	assert.Error(t, err)
}

func TestParseCompression(t *testing.T) {
	c, ok := parseCompression("zstd")
	assert.True(t, ok)
	assert.Equal(t, kafka.Zstd, c)
	_, ok = parseCompression("none")
	assert.False(t, ok)
}
