package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/slangscope/slangscope/config"
	"github.com/slangscope/slangscope/pkg/auth"
	"github.com/slangscope/slangscope/pkg/observability"
	"github.com/slangscope/slangscope/pkg/server"
)

const ShutdownTimeout = 10 * time.Second

// run is the entrypoint for the slangscope server
func run(ctx context.Context) error {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("error configuring SlangScope: %w", err)
	}

	if done, err := handleCLIOptions(cfg); done || err != nil {
		return err
	}

	config.SetLogLevel(cfg)
	log.Infof("Starting slangscope server version %s", config.VersionString)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitTracing(ctx, &cfg.Observability)
	if err != nil {
		return err
	}

	appState, err := NewAppState(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeAppState(appState)

	srv, err := server.Create(appState)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Listening on: %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		log.Info("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("error shutting down server: %v", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Errorf("error shutting down tracing: %v", err)
	}

	return nil
}

// handleCLIOptions handles CLI options that don't require the server to run.
// done is true when one was handled.
func handleCLIOptions(cfg *config.Config) (done bool, err error) {
	switch {
	case showVersion:
		fmt.Println(config.VersionString)
		return true, nil
	case dumpConfig:
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return true, fmt.Errorf("failed to dump config: %w", err)
		}
		fmt.Print(string(out))
		return true, nil
	case generateKey:
		ttl, err := time.ParseDuration(tokenTTL)
		if err != nil {
			return true, fmt.Errorf("invalid token ttl: %w", err)
		}
		token, err := auth.GenerateJWT(cfg, ttl)
		if err != nil {
			return true, err
		}
		fmt.Println(token)
		return true, nil
	}
	return false, nil
}

