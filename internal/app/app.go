package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/project/lms/config"
	"github.com/project/lms/db"
	"github.com/project/lms/internal/controller"
	"github.com/project/lms/internal/usecase/library"
	"github.com/project/lms/internal/usecase/repository"
	"github.com/project/lms/pkg/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

const (
	shutDownTimeout     = 3 * time.Second
	readHeaderTimeout   = 10 * time.Second
	healthCheckInterval = 5 * time.Second
)

// Services is the wired application shared by the server and the CLI commands.
type Services struct {
	Pool       *pgxpool.Pool
	Library    library.Library
	Identity   library.IdentityUseCase
	Outbox     repository.OutboxRepository
	Transactor repository.Transactor
}

// NewServices connects to Postgres and builds the use cases on top of it.
func NewServices(ctx context.Context, l *zap.Logger, cfg *config.Config) (*Services, error) {
	pool, err := pgxpool.New(ctx, cfg.PG.URL)
	if err != nil {
		return nil, fmt.Errorf("can not create pgxpool: %w", err)
	}

	repo := repository.New(logger.Enabled(l, cfg.Log.Repository), pool)
	outboxRepository := repository.NewOutbox(pool, cfg.Outbox.MaxAttempts)
	transactor := repository.NewTransactor(logger.Enabled(l, cfg.Log.Transactor), pool)

	logUseCase := logger.Enabled(l, cfg.Log.UseCase)
	lib := library.New(logUseCase, library.Repositories{
		Authors: repo,
		Genres:  repo,
		Books:   repo,
		Borrow:  repo,
		Reviews: repo,
		Outbox:  outboxRepository,
	}, transactor)
	identity := library.NewIdentity(logUseCase, repo, repo, transactor, library.IdentityConfig{
		AccessTokenTTL:  cfg.Auth.AccessTokenTTL,
		RefreshTokenTTL: cfg.Auth.RefreshTokenTTL,
		BcryptCost:      cfg.Auth.BcryptCost,
	})

	return &Services{
		Pool:       pool,
		Library:    lib,
		Identity:   identity,
		Outbox:     outboxRepository,
		Transactor: transactor,
	}, nil
}

func (s *Services) Close() {
	s.Pool.Close()
}

// Run migrates the database and serves HTTP, gRPC and metrics until SIGINT or SIGTERM.
func Run(l *zap.Logger, cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	shutdownTracing, err := setupTracing(ctx, cfg.Observability.JaegerURL)
	if err != nil {
		return err
	}
	defer func() {
		logger.CheckError(shutdownTracing(context.Background()), l, "can not flush traces")
	}()

	if err = db.Migrate(ctx, cfg.PG.DSN, db.Up, l); err != nil {
		return err
	}

	services, err := NewServices(ctx, l, cfg)
	if err != nil {
		return err
	}
	defer services.Close()

	var worker waiter
	if cfg.Outbox.Enabled {
		worker = runOutbox(ctx, cfg, l, services.Outbox, services.Transactor)
	}

	ctrl := controller.New(logger.Enabled(l, cfg.Log.Controller), controller.UseCases{
		Authors:  services.Library,
		Genres:   services.Library,
		Books:    services.Library,
		Borrow:   services.Library,
		Reviews:  services.Library,
		Identity: services.Identity,
	})
	mux := controller.NewServeMux()
	if err = ctrl.RegisterRoutes(mux); err != nil {
		return fmt.Errorf("can not register routes: %w", err)
	}

	healthServer := health.NewServer()
	grpcServer := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)

	httpServer := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           controller.TrimTrailingSlash(mux),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsServer := &http.Server{
		Addr:              ":" + cfg.Observability.MetricsPort,
		Handler:           metricsMux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 3)
	go func() { errCh <- serveHTTP(l, "rest", httpServer) }()
	go func() { errCh <- serveHTTP(l, "metrics", metricsServer) }()
	go func() { errCh <- serveGrpc(l, ":"+cfg.GRPC.Port, grpcServer) }()
	go watchHealth(ctx, services.Pool, healthServer, healthCheckInterval)

	select {
	case <-ctx.Done():
		l.Info("shutting down")
	case err = <-errCh:
		l.Error("server stopped", zap.Error(err))
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutDownTimeout)
	defer shutdownCancel()

	healthServer.Shutdown()
	logger.CheckError(httpServer.Shutdown(shutdownCtx), l, "rest shutdown error")
	logger.CheckError(metricsServer.Shutdown(shutdownCtx), l, "metrics shutdown error")
	grpcServer.GracefulStop()
	if worker != nil {
		worker.Wait()
	}

	return err
}

func serveHTTP(l *zap.Logger, name string, server *http.Server) error {
	l.Info(name+" server listening", zap.String("addr", server.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s listen error: %w", name, err)
	}
	return nil
}

func serveGrpc(l *zap.Logger, addr string, server *grpc.Server) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("can not open tcp socket: %w", err)
	}

	l.Info("grpc server listening", zap.String("addr", addr))
	if err = server.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("grpc listen error: %w", err)
	}
	return nil
}

type pinger interface {
	Ping(ctx context.Context) error
}

// watchHealth reports SERVING while the database answers pings.
func watchHealth(ctx context.Context, db pinger, hs *health.Server, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		st := healthpb.HealthCheckResponse_SERVING
		if err := db.Ping(ctx); err != nil {
			st = healthpb.HealthCheckResponse_NOT_SERVING
		}
		hs.SetServingStatus("", st)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
