package notes

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	grpcadapter "gonotepad/internal/notes/adapters/grpc"
	httpadapter "gonotepad/internal/notes/adapters/http"
	"gonotepad/internal/notes/adapters/notify"
	adaptersvc "gonotepad/internal/notes/adapters/services"
	"gonotepad/internal/notes/config"
	"gonotepad/internal/notes/ports/services"
	"gonotepad/pkg/logger"
	"gonotepad/pkg/shutdown"
)

const (
	LogServiceStarted      = "notes server started"
	LogServiceShutdownDone = "notes server shutdown complete"
	LogStartingHTTP        = "starting HTTP server"
	LogStoppingHTTP        = "stopping HTTP server"
	LogAuthEnabled         = "bearer token authorization enabled"

	ErrStartGRPCServer = "failed to start gRPC server"
	ErrStartHTTPServer = "failed to start HTTP server"
	ErrInitialLoad     = "failed to load notes"
)

// Serve запускает HTTP API и gRPC health и блокируется до сигнала завершения или отмены ctx.
func Serve(ctx context.Context, cfg *config.Config) error {
	log := logger.Log(ctx)

	center := notify.NewCenter(cfg.Notify.TTL)

	svc, err := NewService(ctx, cfg, center)
	if err != nil {
		return err
	}

	grpcServer := grpcadapter.New(&cfg.GRPC)
	if err := grpcServer.Start(ctx); err != nil {
		_ = svc.Close(ctx)
		return fmt.Errorf("%s: %w", ErrStartGRPCServer, err)
	}

	if _, err := svc.Controller.Load(ctx); err != nil {
		grpcServer.Stop(ctx)
		_ = svc.Close(ctx)
		return fmt.Errorf("%s: %w", ErrInitialLoad, err)
	}
	grpcServer.SetServing(true)

	var tokens services.TokenService
	if cfg.Auth.Enabled() {
		log.Info(ctx, LogAuthEnabled)
		tokens = adaptersvc.NewJWT(cfg.Auth.SecretKey)
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	})
	httpadapter.SetupRouter(app, svc.Controller, center, tokens)

	serveCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	listenErr := make(chan error, 1)
	log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
	go func() {
		err := app.Listen(cfg.HTTP.GetAddress(), fiber.ListenConfig{DisableStartupMessage: true})
		if err != nil {
			log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			listenErr <- err
			cancel()
		}
	}()

	log.Info(ctx, LogServiceStarted,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("grpc_address", grpcServer.Addr()),
		zap.String("storage_driver", cfg.Storage.Driver))

	shutdown.Wait(serveCtx, cfg.Shutdown.GetTimeout(),
		func(ctx context.Context) error {
			grpcServer.SetServing(false)
			grpcServer.Stop(ctx)
			return nil
		},
		func(ctx context.Context) error {
			log.Info(ctx, LogStoppingHTTP)
			return app.ShutdownWithContext(ctx)
		},
		center.Close,
	)

	// хранилище закрывается после остановки серверов, чтобы не оборвать запросы
	closeErr := svc.Close(ctx)

	log.Info(ctx, LogServiceShutdownDone)

	select {
	case err := <-listenErr:
		return errors.Join(fmt.Errorf("%s: %w", ErrStartHTTPServer, err), closeErr)
	default:
		return closeErr
	}
}
