package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/trogers1052/stock-dashboard/internal/api"
	"github.com/trogers1052/stock-dashboard/internal/dashboard"
	"github.com/trogers1052/stock-dashboard/internal/kafka"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard view API",
	Long: `Loads the record collection and serves the list view, forms and export
over HTTP. With KAFKA_ENABLED=true, mutations are published as record events
and events from other dashboards are applied to the working set.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := []dashboard.Option{dashboard.WithPageSize(cfg.Dashboard.PageSize)}

	source := uuid.NewString()
	var producer *kafka.Producer
	if cfg.Kafka.Enabled {
		producer = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, source)
		defer producer.Close()
		opts = append(opts, dashboard.WithPublisher(producer))
	}

	list := dashboard.NewListController(remote, opts...)
	if err := list.Load(ctx); err != nil {
		// Serve anyway; /view/reload retries
		log.Warn().Err(err).Msg("Initial load failed")
	}

	list.Subscribe(func(v dashboard.View) {
		log.Debug().
			Int("page", v.Pagination.Page).
			Int("total", v.Pagination.TotalCount).
			Msg("View changed")
	})

	if cfg.Kafka.Enabled {
		consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.GroupID+"-"+source, source, list)
		go func() {
			if err := consumer.Start(ctx); err != nil {
				log.Error().Err(err).Msg("Kafka consumer stopped")
			}
		}()
	}

	srv := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           api.SetupRoutes(api.NewHandler(list, remote, opts...)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("api", cfg.API.BaseURL).Msg("Dashboard listening")
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

	log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
