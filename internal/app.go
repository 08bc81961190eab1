package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"user-admin-dashboard/config"
	"user-admin-dashboard/internal/application/authflow"
	"user-admin-dashboard/internal/application/ports"
	"user-admin-dashboard/internal/application/services"
	"user-admin-dashboard/internal/infrastructure/db"
	"user-admin-dashboard/internal/infrastructure/jwt"
	"user-admin-dashboard/internal/infrastructure/metrics"
	"user-admin-dashboard/internal/infrastructure/mq"
	"user-admin-dashboard/internal/infrastructure/notification"
	"user-admin-dashboard/internal/infrastructure/phoneauth"
	"user-admin-dashboard/internal/infrastructure/ratelimit"
	"user-admin-dashboard/internal/interface/api/rest"
	"user-admin-dashboard/internal/interface/api/rest/middleware"
	"user-admin-dashboard/pkg/rmqconsumer"
)

type App struct {
	logger     *zap.Logger
	cfg        config.Config
	store      *db.Store
	cache      *redis.Client
	verifier   *phoneauth.Client
	strategy   authflow.Strategy
	httpSrv    *http.Server
	router     *gin.Engine
	mCounter   *prometheus.CounterVec
	mq         ports.RabbitMQ
	mqConsumer ports.RMQConsumer
}

func NewApp(ctx context.Context) (*App, error) {
	// logger
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("cannot initialize zap logger: %w", err)
	}

	// config
	if err = godotenv.Load(".env"); err != nil {
		logger.Info("no .env file, using process environment")
	}
	cfg := config.Load()
	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	a := &App{
		logger:   logger,
		cfg:      cfg,
		mCounter: metrics.NewCounter(),
	}

	// router
	switch {
	case cfg.IsProduction():
		gin.SetMode(gin.ReleaseMode)
	case cfg.App.Env == gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	a.router = gin.New()
	a.router.Use(gin.Recovery())
	a.router.Use(middleware.RequestLogGin(logger, a.mCounter))

	// httpServer
	a.httpSrv = &http.Server{
		Addr:              cfg.App.Host + ":" + cfg.App.Port,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// store
	a.store, err = db.Open(ctx, logger, cfg)
	if err != nil {
		return nil, fmt.Errorf("store %s: %w", cfg.Store.Driver, err)
	}

	// rabbitMQ (optional)
	if cfg.MQEnabled() {
		if err = a.initMQ(ctx); err != nil {
			a.Close()
			return nil, err
		}
	} else {
		logger.Info("rabbitmq not configured, audit events disabled")
	}

	// otp strategy
	if err = a.initStrategy(ctx); err != nil {
		a.Close()
		return nil, err
	}

	return a, nil
}

func (a *App) initMQ(ctx context.Context) error {
	rabbitDsn, err := a.cfg.AMQPDSN()
	if err != nil {
		return fmt.Errorf("rabbitmq config: %w", err)
	}
	rbMQ := mq.New(a.cfg.MQ, a.logger)
	if err = rbMQ.Connect(ctx, rabbitDsn); err != nil {
		return fmt.Errorf("failed to connect to rabbitMQ: %w", err)
	}
	a.mq = rbMQ
	if err = rbMQ.Init(); err != nil {
		return fmt.Errorf("failed init rabbitMQ: %w", err)
	}

	// rmqConsumer
	rmqConsumer := rmqconsumer.New(a.cfg.MQ, a.logger, rbMQ.GetConn())
	if err = rmqConsumer.Connect(rabbitDsn); err != nil {
		return fmt.Errorf("failed to connect rabbitMQ consumer: %w", err)
	}
	if err = rmqConsumer.Init(); err != nil {
		return fmt.Errorf("failed to init rabbitMQ consumer: %w", err)
	}
	a.mqConsumer = rmqConsumer

	return nil
}

// initStrategy builds the code strategy: base (provider or self issued),
// then the per-phone rate limit, then the fixed test phones on top.
func (a *App) initStrategy(ctx context.Context) error {
	var base authflow.Strategy

	switch a.cfg.OTP.Strategy {
	case config.OTPStrategyProvider:
		client, err := phoneauth.New(ctx, a.logger, a.cfg.OTP.FirebaseAPIKey, a.cfg.Timeouts.OTP)
		if err != nil {
			return fmt.Errorf("phone auth provider: %w", err)
		}
		a.verifier = client
		base = authflow.NewProvider(client, a.cfg.OTP.Expiry)
	default:
		base = authflow.NewSelfIssued(
			a.store.Requests,
			notification.NewLoggerNotifier(a.logger),
			a.cfg.OTP.Expiry,
			a.logger,
		)
	}

	var limiter authflow.Limiter
	if a.cfg.Redis.URL != "" {
		cache, err := ratelimit.Connect(ctx, a.logger, a.cfg.Redis.URL)
		if err != nil {
			// limiting is best effort
			a.logger.Warn("redis unavailable, otp rate limit disabled", zap.Error(err))
		} else {
			a.cache = cache
			limiter = ratelimit.NewFixedWindow(cache, a.cfg.Redis.OTPRequestsPerMin)
		}
	}

	a.strategy = authflow.WithTestPhones(
		authflow.WithRateLimit(base, limiter, a.logger),
		a.cfg.OTP.Expiry,
	)

	a.logger.Info("otp strategy ready",
		zap.String("strategy", a.cfg.OTP.Strategy),
		zap.Bool("rate_limited", limiter != nil),
	)

	return nil
}

func (a *App) Close() {
	if a.verifier != nil {
		_ = a.verifier.Close()
	}
	if a.cache != nil {
		_ = a.cache.Close()
	}
	if a.mq != nil && a.mq.GetConn() != nil {
		_ = a.mq.GetConn().Close()
	}
	if a.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		a.store.Close(ctx)
		cancel()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run - The central place to launch and manage our application and
// parallel processes through a single context.
func (a *App) Run(ctx context.Context) error {
	// context with os signals cancel chan
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGUSR1)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting "+a.cfg.App.Name, zap.String("addr", a.httpSrv.Addr))
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server "+a.cfg.App.Name+" error: %w", err)
		}

		return nil
	})

	if a.mq != nil {
		g.Go(func() error {
			a.mq.PublisherWorker(ctx)
			return nil
		})
	}

	if a.mqConsumer != nil {
		g.Go(func() error {
			a.mqConsumer.DeliveryWorker(ctx)
			return nil
		})
	}

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if a.httpSrv != nil {
		if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
			return err
		}
	}

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name + " gracefully stopped")

	return nil
}

func (a *App) InitControllers() {
	var events ports.EventPublisher = mq.Nop{}
	if a.mq != nil {
		events = a.mq
	}

	// services
	grants := jwt.New(a.cfg.Grant.Secret, a.cfg.Grant.TTL)
	directory := services.NewDirectoryService(a.store.Users, events, a.mCounter, a.logger)
	deletion := services.NewDeletionService(
		a.strategy,
		directory,
		grants,
		a.store.Requests,
		services.DeletionConfig{
			DevLookup: a.devLookup(),
			MaxAge:    services.DefaultAttemptMaxAge,
		},
		a.mCounter,
		a.logger,
	)

	// controllers
	rest.NewUserController(a.router, directory, deletion, grants, a.logger)
	rest.NewDeletionController(a.router, deletion, a.logger)
	if a.devLookup() {
		a.logger.Warn("dev otp lookup enabled")
		rest.NewDevController(a.router, deletion, a.logger)
	}

	// ops
	a.router.GET(rest.RouteHealth, func(c *gin.Context) { c.Status(http.StatusOK) })
	a.router.GET(rest.RouteMetrics, gin.WrapH(promhttp.Handler()))
}

// devLookup only makes sense for self-issued codes and never in production.
func (a *App) devLookup() bool {
	return a.cfg.OTP.DevLookup &&
		a.cfg.OTP.Strategy == config.OTPStrategySelfIssued &&
		!a.cfg.IsProduction()
}

func (a *App) Logger() *zap.Logger { return a.logger }
