package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/yadhurtech/leadquote/internal/app"
	"github.com/yadhurtech/leadquote/internal/config"
	"github.com/yadhurtech/leadquote/internal/infra/http/handlers"
	"github.com/yadhurtech/leadquote/internal/infra/http/middleware"
	"github.com/yadhurtech/leadquote/internal/infra/mail"
	"github.com/yadhurtech/leadquote/internal/infra/queue"
	"github.com/yadhurtech/leadquote/internal/proposal"
	"github.com/yadhurtech/leadquote/internal/usecase"
)

func main() {
	cfg := config.Load()

	logger, err := app.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Lead events (optional)
	storeOpts := []usecase.LeadStoreOption{usecase.WithObserver(middleware.StoreObserver{})}
	var rabbitMQ *queue.RabbitMQ
	if cfg.AMQPURL != "" {
		r, err := queue.NewRabbitMQ(cfg.AMQPURL)
		if err != nil {
			return err
		}
		defer r.Close()
		rabbitMQ = r

		producer := queue.NewProducer(rabbitMQ.Ch)
		producer.OnPublish = middleware.RecordLeadEvent
		storeOpts = append(storeOpts, usecase.WithEventPublisher(producer))

		if cfg.MailEnabled() {
			if err := startNotificationWorker(ctx, cfg, rabbitMQ, logger); err != nil {
				return err
			}
		}
	}

	// 2. Lead store
	store, err := app.OpenStore(ctx, cfg, logger, storeOpts...)
	if err != nil {
		return err
	}
	defer store.Close()

	// 3. Proposal generation
	generator, aiName, err := app.NewProposalGenerator(ctx, cfg)
	if err != nil {
		return err
	}
	if generator == nil {
		logger.Warn("no AI generator configured, proposals use the form-based draft")
	}
	generate := usecase.NewGenerateProposalUseCase(generator, cfg.ValidityDays, logger)
	generate.OnOutcome = middleware.RecordProposal
	pdf := proposal.NewPDFRenderer()

	// 4. Handlers
	health := handlers.NewHealthHandler(store.DB, nil)
	if rabbitMQ != nil {
		health.RabbitMQ = rabbitMQ.Conn
	}
	health.Backend = store.Backend
	health.Mirror = store.Mirror
	health.AI = aiName
	health.PDF = pdf

	router := newRouter(routes{
		Leads:       handlers.NewLeadHandler(store.LeadStore, logger),
		Stages:      handlers.NewStageHandler(store.LeadStore, logger),
		Imports:     handlers.NewImportHandler(store.LeadStore, logger),
		Exports:     handlers.NewExportHandler(store.LeadStore, logger),
		Proposals:   handlers.NewProposalHandler(generate, cfg.Company, cfg.ValidityDays, pdf, logger),
		Health:      health,
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", cfg.Addr), zap.String("backend", store.Backend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// startNotificationWorker consumes lead events on its own channel and mails
// the operator.
func startNotificationWorker(ctx context.Context, cfg config.Config, r *queue.RabbitMQ, logger *zap.Logger) error {
	ch, err := r.Conn.Channel()
	if err != nil {
		return err
	}

	sender := mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPassword, cfg.MailFrom, cfg.NotifyEmail)
	worker := queue.NewWorker(ch, sender, logger.Named("worker"))
	go func() {
		defer ch.Close()
		if err := worker.Start(ctx, queue.QueueName); err != nil {
			logger.Error("notification worker stopped", zap.Error(err))
		}
	}()
	return nil
}
