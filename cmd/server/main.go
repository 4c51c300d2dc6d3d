package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	_ "github.com/lib/pq"

	"storegate/internal/audit"
	"storegate/internal/identity/secondary"
	idstore "storegate/internal/identity/store"
	"storegate/internal/identity/sync"
	"storegate/internal/jwt"
	"storegate/internal/notify"
	"storegate/internal/password"
	"storegate/internal/platform/config"
	"storegate/internal/platform/httpserver"
	"storegate/internal/platform/logger"
	platformredis "storegate/internal/platform/redis"
	"storegate/internal/ratelimit"
	"storegate/internal/recovery/otp"
	"storegate/internal/recovery/service"
	"storegate/internal/recovery/token"
	httptransport "storegate/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	users, closeDB, err := newUserStore(cfg, log)
	if err != nil {
		log.Error("primary store init failed", "error", err)
		os.Exit(1)
	}
	defer closeDB()

	otpStore, tokenStore, closeRedis, err := newRecoveryStores(cfg)
	if err != nil {
		log.Error("redis init failed", "error", err)
		os.Exit(1)
	}
	defer closeRedis()

	sink, closeSink, err := newAuditSink(cfg, log)
	if err != nil {
		log.Error("audit sink init failed", "error", err)
		os.Exit(1)
	}
	defer closeSink()

	auditPub := audit.NewPublisher(cfg.Recovery.AuditBuffer, log)
	auditCtx, stopAudit := context.WithCancel(context.Background())
	auditWorker := audit.NewWorker(sink, auditPub.Inbox(), log)
	auditDone := make(chan struct{})
	go func() {
		defer close(auditDone)
		_ = auditWorker.Run(auditCtx)
	}()

	synchronizer := sync.NewSynchronizer(
		secondary.NewHTTPClient(cfg.Secondary.BaseURL, cfg.Secondary.APIKey, nil),
		sync.WithTimeout(cfg.Secondary.Timeout),
		sync.WithLogger(log),
	)

	svc := service.New(
		users,
		otp.NewManager(otpStore,
			otp.WithTTL(cfg.Recovery.CodeTTL),
			otp.WithMaxAttempts(cfg.Recovery.CodeAttempts)),
		token.NewManager(tokenStore,
			token.WithValidity(cfg.Recovery.TokenValidity)),
		password.NewHasher(),
		synchronizer,
		notify.NewLogDispatcher(log),
		ratelimit.NewSlidingWindow(cfg.Recovery.RateLimit, cfg.Recovery.RateWindow),
		auditPub,
		log,
	)

	tokens := jwt.NewService(cfg.JWT.SigningKey, cfg.JWT.Issuer, cfg.JWT.Audience)
	router := httptransport.NewRouter(
		httptransport.NewRecoveryHandler(svc),
		httptransport.NewAdminHandler(svc),
		tokens,
		log,
	)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting storegate", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}

	// Stop the audit worker after in-flight requests have drained.
	stopAudit()
	<-auditDone
}

func newUserStore(cfg config.Config, log *slog.Logger) (service.UserStore, func(), error) {
	if cfg.PostgresDSN == "" {
		log.Info("no postgres DSN configured, using in-memory user store")
		return idstore.NewMemoryStore(), func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.PostgresDSN)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, err
	}
	return idstore.NewPostgres(db), func() { db.Close() }, nil
}

func newRecoveryStores(cfg config.Config) (otp.Store, token.Store, func(), error) {
	client, err := platformredis.New(cfg.Redis)
	if err != nil {
		return nil, nil, nil, err
	}
	if client == nil {
		return otp.NewMemoryStore(), token.NewMemoryStore(), func() {}, nil
	}
	return otp.NewRedisStore(client.Client), token.NewRedisStore(client.Client), func() { client.Close() }, nil
}

func newAuditSink(cfg config.Config, log *slog.Logger) (audit.Sink, func(), error) {
	if len(cfg.Kafka.Brokers) == 0 {
		log.Info("no kafka brokers configured, keeping audit events in memory")
		return audit.NewMemorySink(), func() {}, nil
	}

	sink, err := audit.NewKafkaSink(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	if err != nil {
		return nil, nil, err
	}
	return sink, sink.Close, nil
}
