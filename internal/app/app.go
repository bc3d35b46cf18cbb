// Package app provides application initialization and lifecycle management.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campusbot/campus-linebot-go/internal/catalog"
	"github.com/campusbot/campus-linebot-go/internal/config"
	"github.com/campusbot/campus-linebot-go/internal/convstate"
	"github.com/campusbot/campus-linebot-go/internal/dispatch"
	"github.com/campusbot/campus-linebot-go/internal/genai"
	"github.com/campusbot/campus-linebot-go/internal/handbookstore"
	"github.com/campusbot/campus-linebot-go/internal/intent"
	"github.com/campusbot/campus-linebot-go/internal/logger"
	"github.com/campusbot/campus-linebot-go/internal/metrics"
	"github.com/campusbot/campus-linebot-go/internal/rag"
	"github.com/campusbot/campus-linebot-go/internal/ratelimit"
	"github.com/campusbot/campus-linebot-go/internal/resolve"
	"github.com/campusbot/campus-linebot-go/internal/sentry"
	"github.com/campusbot/campus-linebot-go/internal/tools"
	"github.com/campusbot/campus-linebot-go/internal/webhook"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

// Application manages the application lifecycle and dependencies.
type Application struct {
	cfg            *config.Config
	logger         *logger.Logger
	provider       *catalog.SQLiteProvider
	catalog        *catalog.Catalog
	metrics        *metrics.Metrics
	registry       *prometheus.Registry
	llm            genai.Classifier
	answers        *rag.Chain
	states         *convstate.Store
	userLimiter    *ratelimit.KeyedLimiter
	webhookHandler *webhook.Handler
	server         *http.Server
}

// Initialize creates and initializes a new application with all dependencies.
func Initialize(ctx context.Context, cfg *config.Config) (*Application, error) {
	log := logger.NewWithOptions(cfg.LogLevel, os.Stdout, logger.Options{
		BetterStackToken:    cfg.BetterStackToken,
		BetterStackEndpoint: cfg.BetterStackEndpoint,
	})
	log = log.WithField("service", "campus-linebot-go")
	if host, err := os.Hostname(); err == nil && host != "" {
		log = log.WithField("instance_id", host)
	}
	slog.SetDefault(log.Logger)

	log.Info("Initializing application...")
	if cfg.BetterStackToken != "" {
		log.Info("Better Stack logging enabled")
	}

	if err := sentry.Initialize(sentry.Config{
		Token:       cfg.SentryToken,
		Host:        cfg.SentryHost,
		Environment: cfg.Environment,
	}); err != nil {
		log.WithError(err).Warn("Sentry initialization failed")
	} else if sentry.IsEnabled() {
		log.Info("Sentry error tracking enabled")
	}

	provider, err := catalog.NewSQLiteProvider(cfg.SQLitePath())
	if err != nil {
		return nil, fmt.Errorf("catalog database: %w", err)
	}
	if err := provider.SeedDefaults(ctx); err != nil {
		return nil, fmt.Errorf("seed catalog: %w", err)
	}
	cat, err := catalog.Load(ctx, provider)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	log.WithField("path", cfg.SQLitePath()).
		WithField("locations", len(cat.Locations)).
		WithField("handbooks", len(cat.Handbooks)).
		WithField("faq", len(cat.FAQ)).
		Info("Catalog loaded")

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewBuildInfoCollector(),
	)
	m := metrics.New(registry)

	var llm genai.Classifier
	if cfg.HasLLMClassifier() {
		llm, err = genai.NewClassifier(ctx, genai.Config{
			GeminiAPIKey: cfg.GeminiAPIKey,
			GroqAPIKey:   cfg.GroqAPIKey,
			Model:        cfg.ClassifierModel,
		})
		if err != nil {
			log.WithError(err).Warn("LLM classifier initialization failed; keyword rules only")
			llm = nil
		} else if llm != nil {
			log.WithField("provider", llm.Provider().String()).Info("LLM classification enabled")
		}
	}

	store, err := handbookstore.New(ctx, handbookstore.Config{
		Endpoint:    cfg.StorageEndpoint,
		AccessKeyID: cfg.StorageAccessKey,
		SecretKey:   cfg.StorageSecretKey,
		BucketName:  cfg.StorageBucket,
		Expiry:      config.PresignExpiry,
	})
	if err != nil {
		return nil, fmt.Errorf("handbook storage: %w", err)
	}
	var docs tools.Documents
	if store != nil {
		docs = store
		log.WithField("bucket", cfg.StorageBucket).Info("Handbook storage enabled")
	}

	var backends []rag.Answerer
	if remote := rag.NewClient(rag.ClientConfig{
		Endpoint: cfg.QABackendEndpoint,
		APIKey:   cfg.QABackendAPIKey,
		Model:    cfg.QABackendModel,
		Timeout:  config.QABackendTimeout,
		Metrics:  m,
	}); remote != nil {
		backends = append(backends, remote)
		log.Info("Remote QA backend enabled")
	}
	fallback, err := rag.NewFallbackIndex(cat, log)
	if err != nil {
		log.WithError(err).Warn("BM25 fallback initialization failed")
	} else {
		backends = append(backends, fallback)
	}
	answers := rag.NewChain(backends...)

	states := convstate.NewStore(cfg.ConversationTTL, m)
	states.StartCleanup(config.StateCleanupInterval)

	userLimiter := ratelimit.New(ratelimit.Config{
		Name:       "user",
		Burst:      cfg.UserRateBurst,
		RefillRate: cfg.UserRateRefill,
		Metrics:    m,
	})

	resolveCfg := resolve.Config{SimilarityThreshold: cfg.SimilarityThreshold}

	toolRegistry := dispatch.NewRegistry(
		tools.NewLocationTool(cat.Locations, resolveCfg, log, m),
		tools.NewLockerTool(cat.LockerHours, states, log),
		tools.NewServeryTool(cat.ServeryHours, states, log),
		tools.NewHandbookTool(cat.Handbooks, resolveCfg, states, docs, answers, log, m),
		tools.NewFAQTool(cat.FAQ, cfg.SimilarityThreshold, answers, log, m),
		tools.NewQATool(answers, log),
	)

	classifier := intent.New(intent.Options{
		LLM:        llm,
		States:     states,
		Tools:      toolRegistry.Infos(),
		CacheSize:  cfg.ClassificationCache,
		LLMTimeout: config.ClassifierTimeout,
		Logger:     log,
		Metrics:    m,
	})

	dispatcher := dispatch.New(toolRegistry, classifier, log, m)

	webhookHandler, err := webhook.NewHandler(webhook.Config{
		ChannelSecret: cfg.LineChannelSecret,
		ChannelToken:  cfg.LineChannelToken,
		Dispatcher:    dispatcher,
		UserLimiter:   userLimiter,
		Metrics:       m,
		Logger:        log,
	})
	if err != nil {
		return nil, fmt.Errorf("webhook: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	if sentry.IsEnabled() {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(securityHeadersMiddleware())
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))

	app := &Application{
		cfg:            cfg,
		logger:         log,
		provider:       provider,
		catalog:        cat,
		metrics:        m,
		registry:       registry,
		llm:            llm,
		answers:        answers,
		states:         states,
		userLimiter:    userLimiter,
		webhookHandler: webhookHandler,
	}

	router.GET("/livez", app.livenessCheck)
	router.HEAD("/livez", app.livenessCheck)
	router.GET("/readyz", app.readinessCheck)
	router.HEAD("/readyz", app.readinessCheck)
	router.POST("/webhook", webhookHandler.Handle)
	router.GET("/metrics",
		metricsAuthMiddleware(cfg.MetricsPassword != "", cfg.MetricsUsername, cfg.MetricsPassword),
		gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	app.server = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: config.WebhookHTTPRead,
		ReadTimeout:       config.WebhookHTTPRead,
		WriteTimeout:      config.WebhookHTTPWrite,
		IdleTimeout:       config.WebhookHTTPIdle,
	}

	log.Info("Initialization complete")
	return app, nil
}

func (a *Application) livenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

func (a *Application) readinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := a.provider.Ping(ctx); err != nil {
		a.logger.WithError(err).Warn("Readiness check failed: database unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "database unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ready",
		"database": "connected",
		"catalog": gin.H{
			"locations": len(a.catalog.Locations),
			"handbooks": len(a.catalog.Handbooks),
			"faq":       len(a.catalog.FAQ),
		},
		"features": a.getFeatures(),
	})
}

func (a *Application) getFeatures() map[string]bool {
	return map[string]bool{
		"llm_classification": a.llm != nil,
		"qa_backends":        a.answers.Len() > 0,
		"error_tracking":     sentry.IsEnabled(),
	}
}

// Run starts the HTTP server and blocks until a shutdown signal arrives,
// then shuts everything down in dependency order.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.WithField("port", a.cfg.Port).Info("Starting HTTP server")
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("Shutdown signal received")
		return a.shutdown()
	})

	return g.Wait()
}

// shutdown stops accepting requests, drains in-flight webhook events,
// then closes resources.
func (a *Application) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	a.logger.Info("Stopping HTTP server...")
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.WithError(err).Error("HTTP server shutdown error")
	}

	a.logger.Info("Waiting for webhook events to complete...")
	if err := a.webhookHandler.Shutdown(shutdownCtx); err != nil {
		a.logger.WithError(err).Warn("Webhook handler shutdown timeout")
	}

	a.logger.Info("Closing resources...")

	if a.llm != nil {
		if err := a.llm.Close(); err != nil {
			a.logger.WithError(err).WithField("component", "llm").Error("Component close error")
		}
	}

	a.states.Stop()
	a.userLimiter.Stop()

	if err := a.provider.Close(); err != nil {
		a.logger.WithError(err).WithField("component", "database").Error("Component close error")
	}

	sentry.Flush(2 * time.Second)

	a.logger.Info("Shutdown complete")
	return nil
}
