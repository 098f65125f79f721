package main

import (
	"os"

	"github.com/ariefcatur/go-shop-services/internal/app"
	"github.com/ariefcatur/go-shop-services/internal/httpx"
	"github.com/ariefcatur/go-shop-services/internal/metrics"
	"github.com/ariefcatur/go-shop-services/internal/products"
)

func main() {
	cfg, log := app.Init("product-service", ":8082")
	ctx, stop := app.SignalContext()
	defer stop()

	db, err := app.Postgres(ctx, cfg, log)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	var store products.Store = products.NewMemStore()
	if db != nil {
		defer db.Close()
		store = products.NewPGStore(db)
	}

	rdb := app.Redis(ctx, cfg, log)
	if rdb != nil {
		defer rdb.Close()
	}

	router := httpx.NewRouter(log, metrics.NewServerMetrics("product_service"))
	(&httpx.ProductsHandler{Svc: products.NewService(store, rdb, log), Log: log}).Register(router)

	if err := app.Serve(ctx, log, cfg.HTTPAddr, router); err != nil {
		log.Error("server exit", "err", err)
		os.Exit(1)
	}
}
