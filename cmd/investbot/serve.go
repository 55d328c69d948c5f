package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/investbot-app/investbot/internal/common"
	"github.com/investbot-app/investbot/internal/config"
	"github.com/investbot-app/investbot/internal/engine"
	"github.com/investbot-app/investbot/internal/scheduler"
	"github.com/investbot-app/investbot/internal/server"
	"github.com/investbot-app/investbot/internal/service"
	"github.com/investbot-app/investbot/internal/session"
	"github.com/investbot-app/investbot/internal/storage"
	"github.com/investbot-app/investbot/internal/supervisor"
	"github.com/investbot-app/investbot/internal/transport"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the assistant: transport, engine, scheduler, and admin API",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// The loopback transport keeps the whole stack runnable locally; a
	// real chat channel swaps in here.
	chat := transport.NewLoopback()

	sup := supervisor.New(chat, supervisor.Config{
		AdminPhone: cfg.AdminPhone,
		Retry: service.RetryPolicy{
			BaseDelay:  cfg.RetryBaseDelay,
			MaxRetries: cfg.MaxRetries,
		},
		SendTimeout: cfg.SendTimeout,
	}, common.RealClock{})

	engineCfg := engine.DefaultConfig()
	engineCfg.AdminPhone = cfg.AdminPhone
	bot := engine.New(store, session.NewStore(), sup, sup, engineCfg)

	schedCfg := scheduler.DefaultConfig()
	schedCfg.PaceDelay = cfg.BroadcastDelay
	jobs := scheduler.New(store, sup, sup, common.RealClock{}, schedCfg)

	admin := server.New(bot, sup, jobs)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	errCh := make(chan error, 3)

	go func() {
		if err := sup.Run(runCtx); err != nil && runCtx.Err() == nil {
			errCh <- fmt.Errorf("supervisor stopped: %w", err)
		}
	}()
	go sup.RunLivenessProbe(runCtx, cfg.ProbeInterval)

	go func() {
		if err := bot.Run(runCtx, chat.Messages()); err != nil && runCtx.Err() == nil {
			errCh <- fmt.Errorf("engine stopped: %w", err)
		}
	}()

	if err := jobs.Start(runCtx); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer jobs.Stop()

	go func() {
		if err := admin.Run(runCtx, cfg.ServerAddr); err != nil {
			errCh <- fmt.Errorf("admin server stopped: %w", err)
		}
	}()

	slog.Info("InvestBot is up",
		"addr", cfg.ServerAddr,
		"database", cfg.DatabasePath,
		"probe_interval", cfg.ProbeInterval)

	select {
	case <-ctx.Done():
		slog.Info("Shutting down")
		cancel()
		// Give the admin server a moment to drain.
		time.Sleep(100 * time.Millisecond)
		return nil
	case err := <-errCh:
		return err
	}
}
