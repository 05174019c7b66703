package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"authgw/internal/audit"
	"authgw/internal/auth"
	"authgw/internal/auth/lockout"
	jwttoken "authgw/internal/jwt_token"
	"authgw/internal/media"
	"authgw/internal/platform/config"
	"authgw/internal/platform/httpserver"
	"authgw/internal/platform/logger"
	"authgw/internal/platform/metrics"
	platformredis "authgw/internal/platform/redis"
	httptransport "authgw/internal/transport/http"
	"authgw/internal/txlog"
	"authgw/internal/verifier"
)

const auditInboxCapacity = 256

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	log := logger.New()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Error("load configuration", "error", err)
		os.Exit(1)
	}
	store := config.NewStore(cfg)

	m := metrics.New()

	sink, err := txlog.NewFileSink(cfg.TxLogPath)
	if err != nil {
		log.Error("open transaction log", "path", cfg.TxLogPath, "error", err)
		os.Exit(1)
	}
	tx := txlog.New(log, txlog.WithSink(sink), txlog.WithPayloadCap(cfg.TxLogPayloadCap))

	// Both verifier variants stay wired; the selector reads the active flag
	// on every call so a SIGHUP reload can flip them live.
	mock := verifier.NewMock(log, media.NewEncoder())
	backend := verifier.NewHTTPBackendClient(cfg.BackendEndpoint, cfg.BackendTimeout)
	remote := verifier.NewRemote(log, backend)
	selector := verifier.NewSelector(store.UseMockVerifier, mock, remote, m)

	issuer := jwttoken.New(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.TokenTTL)

	opts := []auth.Option{
		auth.WithMetrics(m),
		auth.WithInterceptor(tx),
	}

	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("connect redis", "error", err)
		os.Exit(1)
	}
	var lockoutStore lockout.Store = lockout.NewMemoryStore()
	if redisClient != nil {
		defer redisClient.Close()
		lockoutStore = lockout.NewRedisStore(redisClient)
		log.Info("lockout store using redis")
	}
	opts = append(opts, auth.WithLockout(lockout.New(lockoutStore, lockout.Policy{
		MaxFailures: cfg.LockoutMaxFailures,
		Window:      cfg.LockoutWindow,
		Duration:    cfg.LockoutDuration,
	}, log)))

	var auditStore audit.Store = audit.NewMemoryStore()
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Error("open postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.PingContext(context.Background()); err != nil {
			log.Error("ping postgres", "error", err)
			os.Exit(1)
		}
		auditStore = audit.NewPostgresStore(db)
		log.Info("audit trail using postgres")
	}

	var emitters []audit.Emitter
	if len(cfg.KafkaBrokers) > 0 {
		kafka, err := audit.NewKafkaEmitter(cfg.KafkaBrokers, cfg.KafkaTopic, log)
		if err != nil {
			log.Error("connect kafka", "error", err)
			os.Exit(1)
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := kafka.Close(closeCtx); err != nil {
				log.Warn("close kafka producer", "error", err)
			}
		}()
		emitters = append(emitters, kafka)
		log.Info("audit events publishing to kafka", "topic", cfg.KafkaTopic)
	}

	publisher := audit.NewPublisher(log, auditInboxCapacity, emitters...)
	worker := audit.NewWorker(auditStore, publisher.Inbox(), log)
	opts = append(opts, auth.WithAudit(publisher))

	authService := auth.NewService(log, selector, issuer, opts...)
	handler := httptransport.NewAuthHandler(log, authService)
	router := httptransport.NewRouter(log, handler, tx, m)
	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting auth gateway", "addr", cfg.Addr, "mock_verifier", store.UseMockVerifier())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		err := worker.Run(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	// SIGHUP re-reads the environment; the verifier selector and anything
	// else reading through the store picks up the new values per call.
	g.Go(func() error {
		hup := make(chan os.Signal, 1)
		signal.Notify(hup, syscall.SIGHUP)
		defer signal.Stop(hup)
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-hup:
				if err := store.Reload(); err != nil {
					log.Error("configuration reload failed", "error", err)
					continue
				}
				log.Info("configuration reloaded", "mock_verifier", store.UseMockVerifier())
			}
		}
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("gateway terminated", "error", err)
		os.Exit(1)
	}
	log.Info("gateway stopped")
}
