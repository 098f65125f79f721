package main

import (
	"context"
	"os"

	"github.com/ariefcatur/go-shop-services/internal/app"
	"github.com/ariefcatur/go-shop-services/internal/client"
	"github.com/ariefcatur/go-shop-services/internal/httpx"
	kafkax "github.com/ariefcatur/go-shop-services/internal/kafka"
	"github.com/ariefcatur/go-shop-services/internal/metrics"
	"github.com/ariefcatur/go-shop-services/internal/orders"
)

func main() {
	cfg, log := app.Init("order-service", ":8081")
	ctx, stop := app.SignalContext()
	defer stop()

	db, err := app.Postgres(ctx, cfg, log)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	var store orders.Store = orders.NewMemStore()
	if db != nil {
		defer db.Close()
		store = orders.NewPGStore(db)
	}

	rdb := app.Redis(ctx, cfg, log)
	if rdb != nil {
		defer rdb.Close()
	}

	svc := orders.NewService(store,
		client.NewProductClient(cfg.ProductServiceURL, cfg.ClientTimeout),
		client.NewUserClient(cfg.UserServiceURL, cfg.ClientTimeout),
		rdb, log)
	oh := &httpx.OrdersHandler{Svc: svc, Service: cfg.ServiceName, Log: log}

	if len(cfg.KafkaBrokers) > 0 {
		prod := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderPlaced, 1024, log)
		// stopped by Close after the server has drained
		prod.Start(context.Background())
		defer prod.Close()
		oh.Events = prod
		log.Info("publishing order events", "topic", orders.TopicOrderPlaced)
	}

	router := httpx.NewRouter(log, metrics.NewServerMetrics("order_service"))
	oh.Register(router)

	if err := app.Serve(ctx, log, cfg.HTTPAddr, router); err != nil {
		log.Error("server exit", "err", err)
		os.Exit(1)
	}
}
