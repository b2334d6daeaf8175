// Command meald runs the meal attendance HTTP server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/gmdcok-crypto/meal-manage/internal/api"
	"github.com/gmdcok-crypto/meal-manage/internal/config"
	"github.com/gmdcok-crypto/meal-manage/internal/db"
	"github.com/gmdcok-crypto/meal-manage/internal/db/migrations"
	"github.com/gmdcok-crypto/meal-manage/internal/dbpool"
	"github.com/gmdcok-crypto/meal-manage/internal/service"
	"github.com/gmdcok-crypto/meal-manage/internal/store"
	"github.com/gmdcok-crypto/meal-manage/internal/ws"
)

// Build-time variables set via ldflags.
var (
	version = "0.3.0"
	commit  = ""
)

const shutdownTimeout = 10 * time.Second

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("loading configuration")
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := dbpool.NewPool(ctx, cfg.DatabaseURL.Value())
	if err != nil {
		log.WithError(err).Fatal("connecting to database")
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
		log.WithError(err).Fatal("running migrations")
	}

	hub := ws.NewHub(log, cfg.BroadcastQueue)

	base := store.Base{Pool: pool, Log: log}
	events := store.NewEventStore(base)
	policies := store.NewPolicyStore(base)
	registry := store.NewRegistryStore(base)
	audit := store.NewAuditStore(base)

	deps := &api.RouterDeps{
		Log:         log,
		Pool:        pool,
		Hub:         hub,
		Events:      service.NewEventService(events, policies, registry, hub, log),
		Policies:    service.NewPolicyService(policies, log),
		Stats:       service.NewStatsService(events, policies, log),
		Audit:       service.NewAuditService(audit, log),
		CORSOrigins: cfg.CORSOrigins,
		Version:     versionString(),
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.NewRouter(ctx, deps),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})

	g.Go(func() error {
		log.WithFields(logrus.Fields{"addr": cfg.Addr(), "version": versionString()}).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		// Drain observers first so they see the shutdown frame, then stop
		// accepting HTTP.
		hub.Shutdown()

		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.WithError(err).Fatal("server exited")
	}

	log.Info("server stopped")
}

func versionString() string {
	if commit != "" {
		return version + "+" + commit
	}
	return version
}
