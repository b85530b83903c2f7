package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/agpb-backend/internal/adapter/commons"
	"github.com/heartmarshall/agpb-backend/internal/adapter/mediawiki"
	"github.com/heartmarshall/agpb-backend/internal/adapter/oauth"
	"github.com/heartmarshall/agpb-backend/internal/adapter/postgres"
	contributionrepo "github.com/heartmarshall/agpb-backend/internal/adapter/postgres/contribution"
	userrepo "github.com/heartmarshall/agpb-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/agpb-backend/internal/adapter/wikibase"
	"github.com/heartmarshall/agpb-backend/internal/auth"
	"github.com/heartmarshall/agpb-backend/internal/config"
	"github.com/heartmarshall/agpb-backend/internal/language"
	"github.com/heartmarshall/agpb-backend/internal/observe"
	authsvc "github.com/heartmarshall/agpb-backend/internal/service/auth"
	"github.com/heartmarshall/agpb-backend/internal/service/contribution"
	"github.com/heartmarshall/agpb-backend/internal/service/lexeme"
	"github.com/heartmarshall/agpb-backend/internal/service/user"
	"github.com/heartmarshall/agpb-backend/internal/transport/middleware"
	"github.com/heartmarshall/agpb-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires the adapters, services and handlers, and serves HTTP
// until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	shutdownTelemetry, err := observe.InitProvider(ctx, observe.ProviderConfig{
		ServiceName:    cfg.Telemetry.ServiceName,
		ServiceVersion: BuildVersion(),
	})
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(flushCtx); err != nil {
			logger.Warn("telemetry shutdown", slog.String("error", err.Error()))
		}
	}()
	metrics, err := observe.NewMetrics(otel.GetMeterProvider())
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	languages, err := language.Default()
	if err != nil {
		return fmt.Errorf("load language table: %w", err)
	}

	// Adapters
	wikibaseAPI := mediawiki.NewClient(logger, metrics, mediawiki.Options{
		Name:           "wikibase",
		APIURL:         cfg.Wikibase.APIURL,
		UserAgent:      cfg.Wikibase.UserAgent,
		Timeout:        cfg.Wikibase.RequestTimeout,
		ConsumerKey:    cfg.Auth.ConsumerKey,
		ConsumerSecret: cfg.Auth.ConsumerSecret,
	})
	commonsAPI := mediawiki.NewClient(logger, metrics, mediawiki.Options{
		Name:           "commons",
		APIURL:         cfg.Commons.APIURL,
		UserAgent:      cfg.Wikibase.UserAgent,
		Timeout:        cfg.Commons.RequestTimeout,
		ConsumerKey:    cfg.Auth.ConsumerKey,
		ConsumerSecret: cfg.Auth.ConsumerSecret,
	})
	store := wikibase.NewClient(logger, wikibaseAPI, cfg.Wikibase.SearchLimit)
	media := commons.NewClient(logger, commonsAPI, cfg.Commons.FileBaseURL, cfg.Commons.License)

	handshake, err := oauth.NewHandshake(logger, oauth.Options{
		IndexURL:       cfg.Auth.OAuthURL,
		ConsumerKey:    cfg.Auth.ConsumerKey,
		ConsumerSecret: cfg.Auth.ConsumerSecret,
		CallbackURL:    cfg.Auth.CallbackURL,
		UserAgent:      cfg.Wikibase.UserAgent,
		Timeout:        cfg.Wikibase.RequestTimeout,
	})
	if err != nil {
		return err
	}

	txm := postgres.NewTxManager(pool)
	users := userrepo.New(pool)
	contributions := contributionrepo.New(pool)
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.SessionTTL)

	// Services
	authService := authsvc.NewService(logger, handshake, users, txm, jwtManager)
	userService := user.NewService(logger, users, languages)
	contributionService := contribution.NewService(logger, contributions)
	lexemeService := lexeme.NewService(logger, lexeme.Config{
		AudioProperty: cfg.Wikibase.AudioProperty,
		LangProperty:  cfg.Wikibase.LangProperty,
		TransProperty: cfg.Wikibase.TransProperty,
		ImageProperty: cfg.Wikibase.ImageProperty,
		SummaryTag:    cfg.Wikibase.SummaryTag,
		AppVersion:    cfg.Wikibase.AppVersion,
	}, store, media, languages, contributions, txm, metrics)

	// HTTP
	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	deps := rest.RouterDeps{
		Prefix:        cfg.Server.APIPrefix,
		Auth:          rest.NewAuthHandler(authService, logger, cfg.Auth.FrontendURL),
		Users:         rest.NewUserHandler(userService, logger),
		Contributions: rest.NewContributionHandler(contributionService, logger),
		Languages:     rest.NewLanguageHandler(languages, logger),
		Lexemes:       rest.NewLexemeHandler(lexemeService, logger, cfg.Server.MaxBodyBytes, cfg.Server.BatchTimeout),
		Health: rest.NewHealthHandler(map[string]rest.Pinger{
			"database": pool,
			"wikibase": wikibaseAPI,
			"commons":  commonsAPI,
		}, BuildVersion()),
		Write: limiter.Limit("write", cfg.RateLimit.WritePerMinute, middleware.ByUser),
	}
	if cfg.Telemetry.MetricsEnabled {
		deps.Metrics = promhttp.Handler()
	}

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		limiter.Limit("read", cfg.RateLimit.ReadPerMinute, middleware.ByIP),
		middleware.Auth(authService),
		middleware.Metrics(metrics),
	)(rest.NewRouter(deps))

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	return serve(ctx, logger, srv, cfg.Server.ShutdownTimeout)
}

// serve runs srv until ctx is cancelled, then drains in-flight requests for
// at most shutdownTimeout.
func serve(ctx context.Context, logger *slog.Logger, srv *http.Server, shutdownTimeout time.Duration) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
