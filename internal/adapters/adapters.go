package adapters

import (
	"github.com/denchenko/userdir/internal/adapters/primary/cli"
	httpadapter "github.com/denchenko/userdir/internal/adapters/primary/http"
	"github.com/denchenko/userdir/internal/adapters/secondary/cache"
	"github.com/denchenko/userdir/internal/adapters/secondary/repository/cached"
	"github.com/denchenko/userdir/internal/adapters/secondary/reqres"
	"github.com/denchenko/userdir/internal/adapters/secondary/transport"
	"github.com/denchenko/userdir/internal/config"
	"github.com/denchenko/userdir/internal/core/app"
	"github.com/denchenko/userdir/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	do "github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

var PrimaryPackage = do.Package(
	do.Lazy[*cobra.Command](cli.Command),
	do.Lazy[*httpadapter.Server](NewHTTPServer),
)

var SecondaryPackage = do.Package(
	do.Lazy[*prometheus.Registry](NewRegistry),
	do.Lazy[*metrics.Metrics](NewMetrics),
	do.Lazy[reqres.Transport](NewTransport),
	do.Lazy[*reqres.Repository](NewReqresRepository),
	do.Lazy[*cache.InMemoryCache](NewInMemoryCache),
	do.Lazy[cache.Cache](NewCache),
	do.Lazy[app.Repository](NewRepository),
)

// NewRegistry creates the Prometheus registry shared by all collectors.
func NewRegistry(_ do.Injector) (*prometheus.Registry, error) {
	return prometheus.NewRegistry(), nil
}

// NewMetrics registers the client metrics on the shared registry.
func NewMetrics(i do.Injector) (*metrics.Metrics, error) {
	reg := do.MustInvoke[*prometheus.Registry](i)

	return metrics.New(reg), nil
}

// NewTransport creates the HTTP transport used to reach the directory API.
func NewTransport(i do.Injector) (reqres.Transport, error) {
	cfg := do.MustInvoke[*config.Config](i)
	m := do.MustInvoke[*metrics.Metrics](i)

	return transport.NewHTTPTransport(transport.Options{
		Timeout:   cfg.RequestTimeout,
		RetryMax:  cfg.RetryMax,
		RateLimit: cfg.RateLimit,
		Metrics:   m,
	}), nil
}

// NewReqresRepository creates a new directory API repository instance.
func NewReqresRepository(i do.Injector) (*reqres.Repository, error) {
	tr := do.MustInvoke[reqres.Transport](i)
	cfg := do.MustInvoke[*config.Config](i)
	m := do.MustInvoke[*metrics.Metrics](i)

	return reqres.NewRepository(tr, cfg.BaseURL, m), nil
}

// NewInMemoryCache creates the process-local cache instance.
func NewInMemoryCache(_ do.Injector) (*cache.InMemoryCache, error) {
	return cache.NewInMemoryCache(), nil
}

// NewCache exposes the in-memory cache through the cache.Cache interface.
func NewCache(i do.Injector) (cache.Cache, error) {
	return do.MustInvoke[*cache.InMemoryCache](i), nil
}

// NewRepository creates a repository adapter that implements app.Repository.
// It wraps the directory API repository with a cached repository.
func NewRepository(i do.Injector) (app.Repository, error) {
	apiRepo := do.MustInvoke[*reqres.Repository](i)
	cacheInstance := do.MustInvoke[cache.Cache](i)
	cfg := do.MustInvoke[*config.Config](i)
	m := do.MustInvoke[*metrics.Metrics](i)

	return cached.NewCachedRepository(apiRepo, cacheInstance, cfg.CacheTTL(), m), nil
}

// NewHTTPServer creates a new HTTP server.
func NewHTTPServer(i do.Injector) (*httpadapter.Server, error) {
	appInstance := do.MustInvoke[*app.App](i)
	cfg := do.MustInvoke[*config.Config](i)
	reg := do.MustInvoke[*prometheus.Registry](i)

	return httpadapter.NewServer(cfg.ListenAddress, appInstance, reg), nil
}
