package main

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scireda/backend/internal/config"
	"scireda/backend/internal/db"
	"scireda/backend/internal/handler"
	transport "scireda/backend/internal/http"
	"scireda/backend/internal/logger"
	"scireda/backend/internal/repository"
	"scireda/backend/internal/scheduler"
	"scireda/backend/internal/service"
	"scireda/backend/internal/snowflake"
)

// @title Scireda API
// @version 1.0
// @description Notes organised in networks of folders.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		logger.Error("server exited", "module", "main", "action", "start", "resource", "server", "result", "failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(logger.ParseLevel(cfg.LogLevel), cfg.LogFormat)
	if err := snowflake.Init(cfg.NodeID); err != nil {
		return fmt.Errorf("init id generator: %w", err)
	}

	dbConn, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer dbConn.Close()

	secret, generated, err := cfg.JWTSecretBytes()
	if err != nil {
		return err
	}
	if generated {
		logger.Warn("jwt secret not configured, generated one in the data dir", "module", "main", "action", "start", "resource", "auth", "result", "ok", "data_dir", cfg.DataDir)
	}

	repos := repository.Repositories{
		Networks: repository.NewNetworkRepository(dbConn),
		Folders:  repository.NewFolderRepository(dbConn),
		Notes:    repository.NewNoteRepository(dbConn),
	}
	tx := repository.NewTransactor(dbConn)

	authService := service.NewAuthService(repository.NewUserRepository(dbConn), repository.NewTokenRepository(dbConn), secret, cfg.TokenTTL)
	networkService := service.NewNetworkService(tx, repos.Networks)
	folderService := service.NewFolderService(tx, repos)
	noteService := service.NewNoteService(tx, repos)

	router := transport.NewRouter(authService, transport.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Network: handler.NewNetworkHandler(networkService),
		Folder:  handler.NewFolderHandler(folderService),
		Note:    handler.NewNoteHandler(noteService),
	}, transport.Options{
		StaticDir:      cfg.StaticDir,
		CORSOrigins:    cfg.CORSOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	sched := scheduler.New(authService, cfg.TokenCleanupInterval)
	sched.Start()
	defer sched.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "module", "main", "action", "start", "resource", "server", "result", "ok", "addr", cfg.Addr, "version", config.AppVersion)
		if err := router.Start(cfg.Addr); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", "module", "main", "action", "stop", "resource", "server", "result", "ok")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := router.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}
