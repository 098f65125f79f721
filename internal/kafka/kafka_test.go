package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type fakeWriter struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	fail   bool
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fail {
		return errors.New("broker down")
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func (w *fakeWriter) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.msgs)
}

func TestProducerWritesAndFlushesOnClose(t *testing.T) {
	defer goleak.VerifyNone(t)
	w := &fakeWriter{}
	p := newProducer(w, "order.placed", 16, nil)
	p.Start(context.Background())

	for i := 0; i < 5; i++ {
		p.Publish([]byte("1"), []byte(`{}`), kafka.Header{Key: "x-event-type", Value: []byte("OrderPlaced")})
	}
	p.Close()

	assert.Equal(t, 5, w.count())
	assert.True(t, w.closed)
	assert.Equal(t, "x-event-type", w.msgs[0].Headers[0].Key)
}

func TestProducerDropsWhenBufferFull(t *testing.T) {
	w := &fakeWriter{}
	p := newProducer(w, "t", 1, nil)
	// not started: nothing drains the buffer
	p.Publish([]byte("a"), nil)
	p.Publish([]byte("b"), nil)
	assert.Len(t, p.inbox, 1)
}

func TestProducerWriteErrorIsNotFatal(t *testing.T) {
	defer goleak.VerifyNone(t)
	w := &fakeWriter{fail: true}
	p := newProducer(w, "t", 4, nil)
	p.Start(context.Background())
	p.Publish([]byte("a"), nil)
	p.Close()
	assert.Equal(t, 0, w.count())
	assert.True(t, w.closed)
}

type fakeReader struct {
	mu        sync.Mutex
	queue     []kafka.Message
	committed []int64
	closed    bool
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if len(r.queue) > 0 {
		m := r.queue[0]
		r.queue = r.queue[1:]
		r.mu.Unlock()
		return m, nil
	}
	r.mu.Unlock()
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *fakeReader) commits() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int64(nil), r.committed...)
}

func TestConsumerCommitsOnlyHandledMessages(t *testing.T) {
	defer goleak.VerifyNone(t)
	r := &fakeReader{queue: []kafka.Message{{Offset: 1}, {Offset: 2}, {Offset: 3}}}
	c := newConsumer(r, 2, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- c.Start(ctx, func(_ context.Context, m kafka.Message) error {
			if m.Offset == 2 {
				return errors.New("bad message")
			}
			return nil
		})
	}()

	require.Eventually(t, func() bool { return len(r.commits()) == 2 }, time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	assert.ElementsMatch(t, []int64{1, 3}, r.commits())
	assert.True(t, r.closed)
}

type brokenReader struct{ fakeReader }

func (b *brokenReader) FetchMessage(context.Context) (kafka.Message, error) {
	return kafka.Message{}, errors.New("connection refused")
}

func TestConsumerReturnsReaderError(t *testing.T) {
	defer goleak.VerifyNone(t)
	c := newConsumer(&brokenReader{}, 1, nil)
	err := c.Start(context.Background(), func(context.Context, kafka.Message) error { return nil })
	assert.EqualError(t, err, "connection refused")
}

func TestUnwrapPayload(t *testing.T) {
	type payload struct {
		OrderID int64 `json:"order_id"`
	}
	p, err := UnwrapPayload[payload](json.RawMessage(`{"order_id":7}`))
	require.NoError(t, err)
	assert.Equal(t, int64(7), p.OrderID)

	_, err = UnwrapPayload[payload](json.RawMessage(`[`))
	assert.ErrorContains(t, err, "decode payload")

	assert.Panics(t, func() { MustMarshal(func() {}) })
}
