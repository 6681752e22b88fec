package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/ardevpk/dub/internal/auth"
	"github.com/ardevpk/dub/internal/config"
	"github.com/ardevpk/dub/internal/handler"
	"github.com/ardevpk/dub/internal/middleware"
	"github.com/ardevpk/dub/internal/proto"
	"github.com/ardevpk/dub/internal/service"
	"github.com/ardevpk/dub/internal/storage"
	"github.com/ardevpk/dub/internal/storage/file"
	"github.com/ardevpk/dub/internal/storage/memory"
	"github.com/ardevpk/dub/internal/storage/postgres"
	"github.com/ardevpk/dub/internal/worker"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config     *config.Config
	handler    http.Handler
	grpcServer *grpc.Server
	pool       *worker.DeliveryWorkerPool
	closeStore func()
}

// NewApp builds the storage, delivery pipeline and servers described by cfg.
// The outbox is stored in PostgreSQL when a DSN is set, in a journal file when
// a path is set, and in memory otherwise.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	store, pinger, closeStore, err := newStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	deliveryService := service.NewDeliveryService(store, service.LogSender{})

	poolConfig := worker.DefaultConfig()
	if cfg.WorkerCount > 0 {
		poolConfig.WorkerCount = cfg.WorkerCount
	}
	if cfg.BatchSize > 0 {
		poolConfig.BatchSize = cfg.BatchSize
	}
	pool := worker.NewDeliveryWorkerPool(deliveryService, poolConfig)

	notificationService := service.NewNotificationService(store, pool, cfg.SenderAddress)

	var authMiddleware *middleware.AuthMiddleware
	var grpcOpts []grpc.ServerOption
	if cfg.SecretKey != "" {
		jwtService := auth.NewJWTService(cfg.SecretKey)
		authMiddleware = middleware.NewAuthMiddleware(jwtService)
		grpcOpts = append(grpcOpts, grpc.UnaryInterceptor(middleware.NewGRPCAuthMiddleware(jwtService).UnaryInterceptor))
	} else {
		log.Warn().Msg("No secret key configured, email API is unauthenticated")
	}

	httpHandler := handler.NewHandler(notificationService, pinger, authMiddleware)

	grpcServer := grpc.NewServer(grpcOpts...)
	proto.RegisterEmailServiceServer(grpcServer, handler.NewEmailGRPCServer(notificationService))

	return &App{
		config:     cfg,
		handler:    httpHandler.RegisterRoutes(),
		grpcServer: grpcServer,
		pool:       pool,
		closeStore: closeStore,
	}, nil
}

func newStorage(ctx context.Context, cfg *config.Config) (storage.MessageStorage, handler.DBPinger, func(), error) {
	switch {
	case cfg.DatabaseDSN != "":
		store, err := postgres.NewStorage(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("error connecting to database: %w", err)
		}
		log.Info().Msg("Using PostgreSQL outbox storage")
		return store, store, store.Close, nil
	case cfg.FileStoragePath != "":
		store, err := file.NewStorage(cfg.FileStoragePath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("error opening file storage: %w", err)
		}
		log.Info().Str("path", cfg.FileStoragePath).Msg("Using file outbox storage")
		return store, nil, func() {}, nil
	default:
		log.Info().Msg("Using in-memory outbox storage")
		return memory.NewStorage(), nil, func() {}, nil
	}
}

// Run serves HTTP and gRPC until ctx is cancelled or a server fails, then
// drains the delivery pool and closes storage.
func (a *App) Run(ctx context.Context) error {
	a.pool.Start()
	defer a.closeStore()

	httpServer := &http.Server{
		Addr:    a.config.ServerAddress,
		Handler: a.handler,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("address", a.config.ServerAddress).Msg("Starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if a.config.GRPCAddress != "" {
		g.Go(func() error {
			lis, err := net.Listen("tcp", a.config.GRPCAddress)
			if err != nil {
				return fmt.Errorf("grpc listen: %w", err)
			}
			log.Info().Str("address", a.config.GRPCAddress).Msg("Starting gRPC server")
			if err := a.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				return fmt.Errorf("grpc server: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down servers")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		a.grpcServer.GracefulStop()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	err := g.Wait()

	if poolErr := a.pool.Shutdown(shutdownTimeout); poolErr != nil {
		log.Warn().Err(poolErr).Msg("Delivery pool did not drain in time")
	}

	return err
}
