package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kafkax "github.com/ariefcatur/go-shop-services/internal/kafka"
	"github.com/ariefcatur/go-shop-services/internal/orders"
	"github.com/ariefcatur/go-shop-services/internal/redisx"
)

func placedMessage(eventID string) kafkago.Message {
	o := orders.Order{ID: 12, UserID: 3, OrderItems: map[int64]int{1: 2}, TotalPrice: decimal.NewFromInt(20)}
	env := orders.Envelope{
		EventID:      eventID,
		EventType:    orders.EventOrderPlaced,
		EventVersion: 1,
		OccurredAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Producer:     "order-service",
		Payload:      kafkax.MustMarshal(orders.PlacedPayload(o)),
	}
	return kafkago.Message{Key: orders.PartitionKey(o.ID), Value: kafkax.MustMarshal(env)}
}

func newService(t *testing.T) (*Service, redismock.ClientMock, *bytes.Buffer) {
	t.Helper()
	db, mock := redismock.NewClientMock()
	var buf bytes.Buffer
	return &Service{
		Redis:       db,
		ServiceName: "order-audit",
		Log:         slog.New(slog.NewJSONHandler(&buf, nil)),
	}, mock, &buf
}

func TestHandleOrderPlacedLogsOnce(t *testing.T) {
	s, mock, buf := newService(t)
	ctx := context.Background()
	key := redisx.DedupKey("order-audit", "ev-1")

	mock.ExpectSetNX(key, "1", redisx.TTLDedup).SetVal(true)
	require.NoError(t, s.HandleOrderPlaced(ctx, placedMessage("ev-1")))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "order placed", line["msg"])
	assert.Equal(t, float64(12), line["order_id"])
	assert.Equal(t, float64(3), line["user_id"])
	assert.Equal(t, "20", line["total_price"])

	buf.Reset()
	mock.ExpectSetNX(key, "1", redisx.TTLDedup).SetVal(false)
	require.NoError(t, s.HandleOrderPlaced(ctx, placedMessage("ev-1")))
	assert.Contains(t, buf.String(), "duplicate event skipped")
	assert.NotContains(t, buf.String(), `"order_id"`)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleOrderPlacedIgnoresOtherEvents(t *testing.T) {
	s, mock, buf := newService(t)
	value, err := json.Marshal(orders.Envelope{EventID: "x", EventType: "OrderShipped"})
	require.NoError(t, err)

	require.NoError(t, s.HandleOrderPlaced(context.Background(), kafkago.Message{Value: value}))
	assert.Empty(t, buf.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleOrderPlacedErrors(t *testing.T) {
	s, mock, _ := newService(t)
	ctx := context.Background()

	err := s.HandleOrderPlaced(ctx, kafkago.Message{Value: []byte("not json")})
	assert.ErrorContains(t, err, "decode envelope")

	mock.ExpectSetNX(redisx.DedupKey("order-audit", "ev-2"), "1", redisx.TTLDedup).SetErr(errors.New("redis down"))
	err = s.HandleOrderPlaced(ctx, placedMessage("ev-2"))
	assert.ErrorContains(t, err, "redis down")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleOrderPlacedWithoutRedis(t *testing.T) {
	var buf bytes.Buffer
	s := &Service{ServiceName: "order-audit", Log: slog.New(slog.NewJSONHandler(&buf, nil))}

	require.NoError(t, s.HandleOrderPlaced(context.Background(), placedMessage("ev-3")))
	require.NoError(t, s.HandleOrderPlaced(context.Background(), placedMessage("ev-3")))
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte(`"msg":"order placed"`)))
}
