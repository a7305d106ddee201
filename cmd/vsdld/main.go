// Command vsdld runs the verifiable subset delegation server: the HTTP
// surface over Issue/Dispense/Verify, backed by an in-memory reference
// citizen record and policy catalog.
//
// Startup and graceful shutdown follow a standard server entrypoint
// shape: an http.Server run in its own goroutine, background workers
// started against a cancellable context, and a signal.Notify-driven
// shutdown sequence.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vsdl-gov/delegation-engine/catalog"
	"github.com/vsdl-gov/delegation-engine/config"
	"github.com/vsdl-gov/delegation-engine/httpapi"
	"github.com/vsdl-gov/delegation-engine/logging"
	"github.com/vsdl-gov/delegation-engine/recordstore"
	"github.com/vsdl-gov/delegation-engine/server"
)

func main() {
	cfg, err := config.New(os.Args[1:]...)
	if err != nil {
		panic(err)
	}

	log := logging.New(getEnv("VSDL_LOG_LEVEL", "info"))

	state, err := server.New(catalog.Reference(), recordstore.Reference(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize delegation server state")
	}

	api := httpapi.New(state, cfg.BaseURL, log)

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: api.Handler(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	go state.Run(ctx, cfg.SweepInterval)

	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Msg("delegation server listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down delegation server")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown error")
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
