package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"

	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/roomcore/config"
	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/roomcore/registry"
	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/roomcore/repository"
	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/roomcore/server"
	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/rpc"
	"github.com/RohitPithani026/LiveEvent-Platform-sub000/pkg/database"
	pkglog "github.com/RohitPithani026/LiveEvent-Platform-sub000/pkg/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		l := pkglog.L()
		l.Fatal().Err(err).Msg("failed to load config")
	}

	// Initialize structured logger
	pkglog.Init(pkglog.Config{
		Level:       cfg.Log.Level,
		Pretty:      cfg.Log.Pretty,
		ServiceName: "roomcore",
	})
	logger := pkglog.L()

	// Content store: gorm-backed when a driver is configured, memory
	// otherwise.
	var store repository.ContentStore
	if cfg.Database.Driver != "" {
		db, err := database.New(&cfg.Database)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		gormStore, err := repository.NewGormStore(db)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to migrate content schema")
		}
		store = gormStore
		logger.Info().Str("driver", cfg.Database.Driver).Msg("content store ready")
	} else {
		store = repository.NewMemoryStore()
		logger.Info().Msg("using in-memory content store")
	}

	reg := registry.New()
	roomServer := server.New(reg, store)

	addr := fmt.Sprintf("%s:%d", cfg.GRPC.Host, cfg.GRPC.Port)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Fatal().Err(err).Str("addr", addr).Msg("failed to listen")
	}

	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(pkglog.UnaryServerInterceptor(logger)),
		grpc.StreamInterceptor(pkglog.StreamServerInterceptor(logger)),
	)
	rpc.RegisterRoomServiceServer(grpcServer, roomServer)

	go func() {
		logger.Info().Str("addr", addr).Msg("roomcore listening")
		if err := grpcServer.Serve(lis); err != nil {
			logger.Fatal().Err(err).Msg("grpc server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down roomcore")
	grpcServer.GracefulStop()
	logger.Info().Msg("roomcore stopped")
}
