package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"roombooking/internal/config"
	"roombooking/internal/database"
	"roombooking/internal/events"
	jwtsvc "roombooking/internal/pkg/jwt"
	applog "roombooking/internal/pkg/logger"
	"roombooking/internal/repository"
	"roombooking/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := applog.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("database handle failed", zap.Error(err))
	}
	defer sqlDB.Close()
	if !strings.Contains(cfg.DatabaseURL, ":memory:") {
		sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	}

	if cfg.RunMigrations {
		if err := database.Migrate(ctx, db, logger); err != nil {
			logger.Fatal("migrations failed", zap.Error(err))
		}
	}

	isolation, err := repository.ParseIsolation(cfg.DBIsolation)
	if err != nil {
		logger.Fatal("invalid isolation level", zap.Error(err))
	}

	store := repository.NewStore(db, isolation, cfg.DBTxTimeout)

	hub := events.NewHub()
	defer hub.Close()

	var publisher events.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		kp, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		if err != nil {
			logger.Fatal("kafka publisher failed", zap.Error(err))
		}
		defer func() {
			if err := kp.Close(); err != nil {
				logger.Warn("kafka publisher close failed", zap.Error(err))
			}
		}()
		publisher = kp
		logger.Info("publishing booking events to kafka",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.String("topic", cfg.KafkaTopic),
		)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := server.NewRouter(server.Deps{
		Log:         logger,
		Store:       store,
		Users:       repository.NewUserRepository(db),
		Rooms:       repository.NewRoomRepository(db),
		Bookings:    repository.NewBookingRepository(db),
		JWT:         jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL),
		Hub:         hub,
		Publisher:   publisher,
		CORSOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.HTTPAddr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", zap.Error(err))
	}
}
