// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

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

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/resume-server/internal/auth"
	"github.com/pdiddy/resume-server/internal/pipeline"
	"github.com/pdiddy/resume-server/internal/server"
	"github.com/pdiddy/resume-server/internal/soffice"
	"github.com/pdiddy/resume-server/internal/store"
	"github.com/pdiddy/resume-server/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the resume backend HTTP server",
	Long: `Serve starts the HTTP API: /api/auth for registration and login,
/api/resumes for per-user resume CRUD, and /api/convert for extracting
plain text from uploaded .doc and .docx files.

The JWT signing secret is resolved from --jwt-secret, the auth.jwt_secret
config key, or the .secrets/jwt-secret file, in that order.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := serveConfig(cmd)
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if cfg.Auth.JWTSecret == "" {
		logger.Warn("no JWT secret configured, using an insecure development default")
		cfg.Auth.JWTSecret = "dev-secret"
	}

	st, err := store.NewStore(cfg.Storage)
	if err != nil {
		return err
	}
	defer st.Close()

	converter := soffice.New(soffice.Config{
		Timeout: cfg.Convert.Timeout,
		TempDir: cfg.Convert.TempDir,
		Logger:  logger,
	})
	pipe := pipeline.New(converter, logger)

	srv := server.New(server.Config{
		Store:       st,
		Extractor:   pipe,
		JWTSecret:   []byte(cfg.Auth.JWTSecret),
		TokenExpiry: cfg.Auth.TokenExpiry,
		ClientURL:   cfg.Server.ClientURL,
		Logger:      logger,
	})

	httpSrv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Server.Addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

func serveConfig(cmd *cobra.Command) types.AppConfig {
	addr, _ := cmd.Flags().GetString("addr")
	clientURL, _ := cmd.Flags().GetString("client-url")
	dataDir, _ := cmd.Flags().GetString("data-dir")
	convertTimeout, _ := cmd.Flags().GetDuration("convert-timeout")
	tempDir, _ := cmd.Flags().GetString("temp-dir")
	jwtSecret, _ := cmd.Flags().GetString("jwt-secret")
	tokenExpiry, _ := cmd.Flags().GetDuration("token-expiry")

	if v := viper.GetString("auth.jwt_secret"); jwtSecret == "" && v != "" {
		jwtSecret = v
	}
	jwtSecret = secretDefault("jwt-secret", jwtSecret)

	return types.AppConfig{
		Server: types.ServerConfig{
			Addr:            addr,
			ClientURL:       clientURL,
			ShutdownTimeout: 10 * time.Second,
		},
		Convert: types.ConvertConfig{
			Timeout: convertTimeout,
			TempDir: tempDir,
		},
		Auth: types.AuthConfig{
			JWTSecret:   jwtSecret,
			TokenExpiry: tokenExpiry,
		},
		Storage: types.StorageConfig{
			DataDir: dataDir,
		},
	}
}

func init() {
	serveCmd.Flags().String("addr", ":5000", "listen address")
	serveCmd.Flags().String("client-url", "http://localhost:3000", "allowed CORS origin for the browser client")
	serveCmd.Flags().String("data-dir", "data", "directory for the SQLite database")
	serveCmd.Flags().Duration("convert-timeout", soffice.DefaultTimeout, "timeout for a single LibreOffice conversion")
	serveCmd.Flags().String("temp-dir", "", "parent directory for conversion scratch workspaces (default system temp)")
	serveCmd.Flags().String("jwt-secret", "", "JWT signing secret (overrides config and .secrets/jwt-secret)")
	serveCmd.Flags().Duration("token-expiry", auth.DefaultTokenExpiry, "session token lifetime")

	rootCmd.AddCommand(serveCmd)
}
