package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/gateway/bridge"
	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/gateway/client"
	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/gateway/config"
	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/gateway/handler"
	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/gateway/hub"
	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/gateway/registry"
	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/gateway/service"
	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/gateway/signaling"
	pkgjwt "github.com/RohitPithani026/LiveEvent-Platform-sub000/pkg/jwt"
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
		ServiceName: "gateway",
	})
	logger := pkglog.L()

	// Presence registry: redis when configured, otherwise disabled.
	var presence registry.Registry
	if cfg.Redis.Address != "" {
		redisReg, err := registry.NewRedisRegistry(cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		presence = redisReg
		logger.Info().Str("addr", cfg.Redis.Address).Msg("presence registry connected")
	} else {
		presence = registry.NewNoopRegistry()
		logger.Info().Msg("presence tracking disabled")
	}
	defer presence.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := presence.StartHeartbeat(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to start presence heartbeat")
	}
	defer presence.StopHeartbeat()

	// Room core connection
	roomClient, err := client.NewRoomClient(cfg.RoomCore.GRPCAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create room core client")
	}
	defer roomClient.Close()
	logger.Info().Str("addr", cfg.RoomCore.GRPCAddress).Msg("room core client connected")

	// Transport
	wsHub := hub.NewHub(cfg.WebSocket)
	go wsHub.Run()

	fanout := bridge.NewFanout(wsHub)
	sessionSvc := service.NewSessionService(wsHub, roomClient, fanout, presence)

	relay := signaling.NewRelay(wsHub)

	verifier := pkgjwt.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)
	wsHandler := handler.NewWSHandler(wsHub, sessionSvc, relay, verifier)

	// Setup HTTP server
	mux := http.NewServeMux()
	wsHandler.RegisterRoutes(mux)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info().Str("host", cfg.Server.Host).Int("port", cfg.Server.Port).Msg("gateway listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down gateway")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("gateway stopped")
}
