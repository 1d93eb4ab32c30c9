package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/Werneck0live/lista-empresas/internal/apiclient"
	"github.com/Werneck0live/lista-empresas/internal/board"
	"github.com/Werneck0live/lista-empresas/internal/broker"
	"github.com/Werneck0live/lista-empresas/internal/config"
	"github.com/Werneck0live/lista-empresas/internal/handlers"
	"github.com/Werneck0live/lista-empresas/internal/session"
	"github.com/Werneck0live/lista-empresas/internal/view"
	"github.com/Werneck0live/lista-empresas/internal/ws"
)

// cmd/web/main.go
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config_error", "err", err)
		os.Exit(2)
	}

	// Logger JSON "global"
	log := config.InitLogger(cfg.Level()).With("svc", "web")
	log.Info("starting", "addr", cfg.Addr, "api_url", cfg.APIURL, "rabbit", cfg.RabbitEnabled())

	if err := run(cfg, log); err != nil {
		log.Error("stopped_with_error", "err", err)
		os.Exit(1)
	}
	log.Info("stopped")
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := apiclient.New(cfg.APIURL, cfg.APITimeout, apiclient.WithLogger(log))

	hub := ws.NewHub(log)
	go hub.Run()
	defer hub.Stop()

	// Rabbit é opcional: sem RABBITMQ_URL cada página só vê os próprios posts
	var pub *broker.Publisher
	var consumer *broker.Consumer
	if cfg.RabbitEnabled() {
		var err error
		pub, err = broker.NewPublisher(cfg.RabbitURI, cfg.RabbitQueue)
		if err != nil {
			return err
		}
		defer func() { _ = pub.Close() }()

		consumer, err = broker.NewConsumer(cfg.RabbitURI, cfg.RabbitQueue, cfg.RabbitPrefetch, log)
		if err != nil {
			return err
		}
		defer func() { _ = consumer.Close() }()
	}

	sessions := session.NewStore(cfg.SessionTTL, func(id string) *board.Board {
		opts := []board.Option{
			board.WithNotifier(hub.Notifier(id)),
			board.WithToastDelay(cfg.ToastDelay),
			board.WithLogger(log.With("session", id)),
		}
		if pub != nil {
			opts = append(opts, board.WithPublisher(pub.ForSession(id)))
		}
		return board.New(api, opts...)
	}, log)

	views, err := view.NewEngine()
	if err != nil {
		return err
	}

	h := handlers.NewBoardHandler(sessions, hub, views, log)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h.Router(cfg.SubmitRateLimit),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http_listen", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error { return sessions.Run(gctx) })

	if consumer != nil {
		g.Go(func() error {
			return consumer.Run(gctx, func(m broker.PostedMessage) {
				// quem publicou já recebeu o toast de sucesso
				hub.BroadcastEventExcept(m.Origin, ws.PostedEvent(m.Company))
			})
		})
	}

	// graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			log.Error("graceful_shutdown_error", "err", err)
			return err
		}
		return nil
	})

	return g.Wait()
}
