package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"go-event-push/internal/config"
	"go-event-push/internal/infrastructure/bus"
	"go-event-push/internal/infrastructure/logger"
	"go-event-push/internal/infrastructure/push"
	"go-event-push/internal/infrastructure/server"
)

func main() {
	ctx := context.Background()
	sctx := WithSignal(ctx)

	cfg, err := config.Load()
	if err != nil {
		logger.NewLogrusLogger(logger.NewDefaultConfig()).Fatalf("failed to load configuration: %v", err)
	}

	log := logger.NewLogrusLogger(cfg.LoggerConfig())

	// A malformed hub configuration is fatal before anything is served.
	hub, err := push.New(cfg.PushConfig(), log)
	if err != nil {
		log.Fatalf("invalid push configuration: %v", err)
	}

	if err := hub.Start(ctx); err != nil {
		log.Errorf("failed to start hub: %v", err)
		return
	}

	eventBus := bus.New(log)
	eventBus.Subscribe(func(e bus.Event) {
		hub.PushToAll(push.Message{
			ID:    e.ID,
			Event: e.Topic,
			Data:  e.Payload,
			Time:  e.Time,
		})
	})

	router := InitRouter(hub, eventBus, log)
	httpSrv := server.NewHTTPServer(cfg.Addr, router)
	app := newApplication(log, httpSrv, hub)
	if err := app.Run(sctx); err != nil {
		log.Errorf("failed to run application: %v", err)
	}
}

type Application struct {
	logger  logger.Logger
	httpSrv server.Server
	hub     *push.Hub
}

func newApplication(
	log logger.Logger,
	httpSrv *server.HTTPServer,
	hub *push.Hub,
) *Application {
	return &Application{
		logger:  log.WithField("app", "event-push"),
		httpSrv: httpSrv,
		hub:     hub,
	}
}

func (app *Application) Run(ctx context.Context) error {
	eg := errgroup.Group{}

	eg.Go(func() error {
		return app.httpSrv.Start(ctx)
	})

	eg.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			5*time.Second,
		)
		defer cancel()

		// Stop the hub first so every streaming handler unblocks before the
		// HTTP server waits on them.
		if err := app.hub.Stop(shutdownCtx); err != nil {
			app.logger.Errorf("failed to stop hub: %v", err)
		}

		return app.httpSrv.Stop(shutdownCtx)
	})

	return eg.Wait()
}

func WithSignal(pctx context.Context) context.Context {
	ctx, cancel := context.WithCancel(pctx)

	go func() {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

		<-sigc

		cancel()
	}()

	return ctx
}
