package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/denchenko/userdir/internal/adapters"
	httpadapter "github.com/denchenko/userdir/internal/adapters/primary/http"
	"github.com/denchenko/userdir/internal/adapters/secondary/cache"
	"github.com/denchenko/userdir/internal/config"
	"github.com/denchenko/userdir/internal/core"
	"github.com/denchenko/userdir/internal/metrics"
	do "github.com/samber/do/v2"
)

func main() {
	injector := do.New(
		config.Package,
		core.Package,
		adapters.SecondaryPackage,
		adapters.PrimaryPackage,
	)

	server, err := do.Invoke[*httpadapter.Server](injector)
	if err != nil {
		log.Fatalf("Failed to create HTTP server: %v", err)
	}

	cfg := do.MustInvoke[*config.Config](injector)
	store := do.MustInvoke[*cache.InMemoryCache](injector)
	m := do.MustInvoke[*metrics.Metrics](injector)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go store.RunJanitor(ctx, cfg.JanitorInterval, func(removed int) {
		m.CacheEvictions.Add(float64(removed))
	})

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
}
