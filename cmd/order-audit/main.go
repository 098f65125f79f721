package main

import (
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/ariefcatur/go-shop-services/internal/app"
	"github.com/ariefcatur/go-shop-services/internal/audit"
	"github.com/ariefcatur/go-shop-services/internal/httpx"
	kafkax "github.com/ariefcatur/go-shop-services/internal/kafka"
	"github.com/ariefcatur/go-shop-services/internal/metrics"
	"github.com/ariefcatur/go-shop-services/internal/orders"
)

func main() {
	cfg, log := app.Init("order-audit", ":8084")
	if len(cfg.KafkaBrokers) == 0 {
		log.Error("KAFKA_BROKERS is required")
		os.Exit(1)
	}
	ctx, stop := app.SignalContext()
	defer stop()

	rdb := app.Redis(ctx, cfg, log)
	if rdb != nil {
		defer rdb.Close()
	}

	m := metrics.NewConsumerMetrics("order_audit")
	svc := &audit.Service{Redis: rdb, Metrics: m, ServiceName: cfg.ServiceName, Log: log}
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, cfg.AuditGroup, orders.TopicOrderPlaced, cfg.AuditWorkers, log)

	// health and metrics only
	router := httpx.NewRouter(log, nil)
	router.Handle("/metrics", m.Handler())

	// either side failing stops the other
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("consumer started", "group", cfg.AuditGroup, "topic", orders.TopicOrderPlaced, "workers", cfg.AuditWorkers)
		return cons.Start(gctx, svc.HandleOrderPlaced)
	})
	g.Go(func() error {
		return app.Serve(gctx, log, cfg.HTTPAddr, router)
	})
	if err := g.Wait(); err != nil {
		log.Error("order-audit exit", "err", err)
		os.Exit(1)
	}
}
