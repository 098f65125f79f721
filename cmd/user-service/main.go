package main

import (
	"os"

	"github.com/ariefcatur/go-shop-services/internal/app"
	"github.com/ariefcatur/go-shop-services/internal/httpx"
	"github.com/ariefcatur/go-shop-services/internal/metrics"
	"github.com/ariefcatur/go-shop-services/internal/users"
)

func main() {
	cfg, log := app.Init("user-service", ":8083")
	ctx, stop := app.SignalContext()
	defer stop()

	db, err := app.Postgres(ctx, cfg, log)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	var store users.Store = users.NewMemStore()
	if db != nil {
		defer db.Close()
		store = users.NewPGStore(db)
	}

	router := httpx.NewRouter(log, metrics.NewServerMetrics("user_service"))
	(&httpx.UsersHandler{Svc: users.NewService(store, log), Log: log}).Register(router)

	if err := app.Serve(ctx, log, cfg.HTTPAddr, router); err != nil {
		log.Error("server exit", "err", err)
		os.Exit(1)
	}
}
