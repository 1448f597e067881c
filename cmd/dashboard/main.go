package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/industrial-ai-dashboard/internal/api"
	"github.com/ANIKETSHETTY47/industrial-ai-dashboard/internal/cloud"
	"github.com/ANIKETSHETTY47/industrial-ai-dashboard/internal/config"
	"github.com/ANIKETSHETTY47/industrial-ai-dashboard/internal/database"
	"github.com/ANIKETSHETTY47/industrial-ai-dashboard/internal/notify"
	"github.com/ANIKETSHETTY47/industrial-ai-dashboard/internal/repository"
	"github.com/ANIKETSHETTY47/industrial-ai-dashboard/internal/server"
	"github.com/ANIKETSHETTY47/industrial-ai-dashboard/internal/service"
)

func main() {
	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	config.SetupLogging()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := api.New(config.APIConfig())
	deps := service.Deps{Backend: client}
	var notifiers []notify.Notifier

	if dsn := config.DatabaseDSN(); dsn != "" {
		db, err := database.Connect(dsn)
		if err != nil {
			log.Fatal().Err(err).Msg("db connect failed")
		}
		defer db.Close()
		if err := database.Migrate(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("db migrate failed")
		}
		deps.History = repository.NewQueryLogs(db)
		log.Info().Msg("query history enabled")
	}

	if broker := config.MQTTBroker(); broker != "" {
		m, closeMQTT, err := notify.DialMQTT(broker, config.MQTTTopic())
		if err != nil {
			log.Fatal().Err(err).Msg("mqtt connect")
		}
		defer closeMQTT()
		notifiers = append(notifiers, m)
	}

	if config.UseCloudServices() {
		s3c, err := cloud.NewS3Client(ctx, config.AWSRegion(), config.S3Bucket())
		if err != nil {
			log.Fatal().Err(err).Msg("s3 client init failed")
		}
		deps.Reports = s3c
		log.Info().Str("bucket", s3c.Bucket()).Msg("report export enabled")

		if arn := config.SNSTopicArn(); arn != "" {
			snsc, err := cloud.NewSNSClient(ctx, config.AWSRegion(), arn)
			if err != nil {
				log.Fatal().Err(err).Msg("sns client init failed")
			}
			notifiers = append(notifiers, notify.NewSNS(snsc))
		}
	}
	deps.Notifier = notify.Combine(notifiers...)

	srv, err := server.New(service.New(deps), server.Options{RefreshInterval: config.RefreshInterval()})
	if err != nil {
		log.Fatal().Err(err).Msg("server init failed")
	}
	go srv.Hub().Run(ctx)

	httpSrv := &http.Server{
		Addr:              config.DashboardAddr(),
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", httpSrv.Addr).Str("backend", client.BaseURL()).Msg("dashboard listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server exit")
	}
	log.Info().Msg("dashboard stopped")
}
