// Package client wires the data layer together: configuration, local
// cache, remote gateway, connectivity probe, sync orchestrators, and the
// entity stores handed to the UI.
package client

import (
	"context"
	"fmt"

	"github.com/feedkit/feedkit/internal/adapter"
	"github.com/feedkit/feedkit/internal/config"
	"github.com/feedkit/feedkit/internal/connectivity"
	"github.com/feedkit/feedkit/internal/logger"
	"github.com/feedkit/feedkit/internal/service"
	"github.com/feedkit/feedkit/internal/state"
	"github.com/feedkit/feedkit/internal/store"
)

// App owns every long-lived component of the data layer.
type App struct {
	cfg    *config.ClientConfig
	logger *logger.Logger

	storages *store.ClientStorages
	services *service.ClientServices
	monitor  *connectivity.Probe
	job      service.RefreshJob

	// Feed and Account are the projections the UI consumes.
	Feed    *state.FeedStore
	Account *state.AccountStore
}

// NewApp assembles the data layer from the merged configuration.
func NewApp() (*App, error) {
	cfg, err := config.GetClientConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	var log *logger.Logger
	if cfg.Log.FilePath != "" {
		log = logger.NewFileLogger("client", cfg.Log.FilePath)
	} else {
		log = logger.NewLogger("client")
	}

	storages, err := store.NewClientStorages(cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("open local cache: %w", err)
	}

	remote, err := adapter.NewHTTPRemote(adapter.Config{
		BaseURL: cfg.Adapter.BaseURL,
		Timeout: cfg.Adapter.RequestTimeout,
	}, storages.Credentials, log)
	if err != nil {
		return nil, fmt.Errorf("create remote repository: %w", err)
	}

	monitor := connectivity.NewProbe(cfg.Adapter.BaseURL, cfg.Workers.ProbeInterval, log)
	services := service.NewClientServices(storages, remote, monitor, log)

	feed := state.NewFeedStore(services.Posts, adapter.DefaultPageSize, log)
	job := service.NewRefreshJob(feed.Refresh, monitor, log)

	return &App{
		cfg:      cfg,
		logger:   log,
		storages: storages,
		services: services,
		monitor:  monitor,
		job:      job,
		Feed:     feed,
	}, nil
}

// Run starts the connectivity probe and the background refresher, performs
// the initial loads, and blocks until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.monitor.Start(ctx)
	defer a.monitor.Stop()

	a.Account = state.NewAccountStore(ctx, a.services.Account, nil, a.logger)
	defer a.Account.Close()

	if err := a.Feed.Refresh(ctx); err != nil {
		a.logger.Warn().Err(err).Msg("initial feed refresh failed")
	}

	a.job.Start(ctx, a.cfg.Workers.RefreshInterval)
	defer a.job.Stop()
	defer a.Feed.Close()

	<-ctx.Done()
	return nil
}
