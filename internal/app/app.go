// Package app wires the BookCourier client together: configuration,
// logging, session, transport, API client, local cache, notification
// channel and the feature services on top of them.
package app

import (
	"log/slog"

	"github.com/bookcourier/bookcourier/internal/api"
	"github.com/bookcourier/bookcourier/internal/catalog"
	"github.com/bookcourier/bookcourier/internal/config"
	"github.com/bookcourier/bookcourier/internal/notify"
	"github.com/bookcourier/bookcourier/internal/session"
	"github.com/bookcourier/bookcourier/internal/wishlist"
	"github.com/bookcourier/bookcourier/internal/wishlist/sqlite"
	"github.com/bookcourier/bookcourier/pkg/httpclient"
	"github.com/bookcourier/bookcourier/pkg/logger"
)

// App holds the wired application dependencies.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Session  *session.Session
	API      *api.Client
	Wishlist *wishlist.Store
	Catalog  *catalog.Service
	Notifier *notify.Broadcaster

	cache *sqlite.Cache
}

// New builds the application from configuration. The wishlist cache is
// best-effort: when the cache database cannot be opened the app runs with
// an in-memory nop cache instead of failing.
func New(cfg *config.Config) (*App, error) {
	log := logger.New("bookcourier", cfg.LogLevel)

	sess := session.Open(cfg.TokenPath)

	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = cfg.RequestTimeout
	httpCfg.MaxRetries = cfg.MaxRetries
	httpCfg.RequestsPerSecond = cfg.RequestsPerSec
	base := httpclient.New(httpCfg)
	breaker := httpclient.NewCircuitBreakerClient(base,
		httpclient.DefaultCircuitBreakerConfig("bookcourier-api"), log)

	apiClient := api.NewClient(cfg.APIBaseURL, breaker, sess, log)

	broadcaster := notify.NewBroadcaster()

	var store *wishlist.Store
	cache, err := sqlite.Open(cfg.CachePath)
	if err != nil {
		log.Warn("wishlist cache unavailable, running without persistence",
			"path", cfg.CachePath, "error", err)
		store = wishlist.NewStore(apiClient, sess, wishlist.NopCache{}, broadcaster, log)
	} else {
		store = wishlist.NewStore(apiClient, sess, cache, broadcaster, log)
	}

	return &App{
		Config:   cfg,
		Logger:   log,
		Session:  sess,
		API:      apiClient,
		Wishlist: store,
		Catalog:  catalog.NewService(apiClient),
		Notifier: broadcaster,
		cache:    cache,
	}, nil
}

// Close releases the app's resources.
func (a *App) Close() error {
	a.Notifier.Close()
	if a.cache != nil {
		return a.cache.Close()
	}
	return nil
}
