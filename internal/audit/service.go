// Package audit consumes order events and records one structured log line per
// placed order.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/ariefcatur/go-shop-services/internal/kafka"
	"github.com/ariefcatur/go-shop-services/internal/logx"
	"github.com/ariefcatur/go-shop-services/internal/metrics"
	"github.com/ariefcatur/go-shop-services/internal/orders"
	"github.com/ariefcatur/go-shop-services/internal/redisx"
)

const (
	outcomeHandled   = "handled"
	outcomeDuplicate = "duplicate"
	outcomeIgnored   = "ignored"
	outcomeFailed    = "failed"
)

type Service struct {
	Redis       *redis.Client // nil disables de-duplication
	Metrics     *metrics.ConsumerMetrics
	ServiceName string
	Log         *slog.Logger
}

// HandleOrderPlaced is installed as the consumer handler for order.placed.
func (s *Service) HandleOrderPlaced(ctx context.Context, m kafkago.Message) error {
	log := logx.OrDiscard(s.Log)

	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		s.count("unknown", outcomeFailed)
		return fmt.Errorf("decode envelope: %w", err)
	}
	if env.EventType != orders.EventOrderPlaced {
		s.count(env.EventType, outcomeIgnored)
		return nil
	}

	if s.Redis != nil {
		first, err := redisx.MarkOnce(ctx, s.Redis, redisx.DedupKey(s.ServiceName, env.EventID), redisx.TTLDedup)
		if err != nil {
			s.count(env.EventType, outcomeFailed)
			return fmt.Errorf("dedup %s: %w", env.EventID, err)
		}
		if !first {
			log.Info("duplicate event skipped", "event_id", env.EventID)
			s.count(env.EventType, outcomeDuplicate)
			return nil
		}
	}

	p, err := kafkax.UnwrapPayload[orders.OrderPlacedPayload](env.Payload)
	if err != nil {
		s.count(env.EventType, outcomeFailed)
		return err
	}

	log.Info("order placed",
		"event_id", env.EventID,
		"trace_id", env.TraceID,
		"producer", env.Producer,
		"occurred_at", env.OccurredAt,
		"order_id", p.OrderID,
		"user_id", p.UserID,
		"items", len(p.Items),
		"total_price", p.TotalPrice.String(),
	)
	s.count(env.EventType, outcomeHandled)
	return nil
}

func (s *Service) count(eventType, outcome string) {
	if s.Metrics != nil {
		s.Metrics.Events.WithLabelValues(eventType, outcome).Inc()
	}
}
