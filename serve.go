package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Nydauron/champstandings/config"
	"github.com/Nydauron/champstandings/parsers"
	"github.com/Nydauron/champstandings/server"
	"github.com/urfave/cli/v2"
)

func serveAction(cCtx *cli.Context) error {
	logger := newLogger(cCtx.Bool(verboseFlag))
	slog.SetDefault(logger)

	cfg, err := loadSettings(cCtx)
	if err != nil {
		return err
	}
	format, err := inputFormat(cCtx)
	if err != nil {
		return err
	}
	inputs := cCtx.StringSlice(inputFlag)

	ctx, stop := signal.NotifyContext(cCtx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	rep, err := buildReport(ctx, inputs, format, cfg, logger)
	if err != nil {
		return err
	}
	srv := server.New(rep, server.Options{AllowedOrigins: cfg.Server.AllowedOrigins, Logger: logger})

	if cCtx.Bool(watchFlag) {
		configPath := cCtx.String(configFlag)
		watched := []string{}
		for _, in := range inputs {
			if !parsers.IsURL(in) {
				watched = append(watched, in)
			}
		}
		if configPath != "" {
			watched = append(watched, configPath)
		}
		go func() {
			err := config.Watch(ctx, watched, func(path string) {
				next, err := loadSettings(cCtx)
				if err != nil {
					logger.Error("reload failed, keeping previous standings", "path", path, "err", err)
					return
				}
				rep, err := buildReport(ctx, inputs, format, next, logger)
				if err != nil {
					logger.Error("reload failed, keeping previous standings", "path", path, "err", err)
					return
				}
				srv.Replace(rep)
				logger.Info("standings reloaded", "path", filepath.Base(path), "series", len(rep.Series))
			}, logger)
			if err != nil {
				logger.Error("watch stopped", "err", err)
			}
		}()
	}

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving standings", "addr", cfg.Server.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return cli.Exit(fmt.Sprintf("server: %v", err), exitOutput)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return httpServer.Shutdown(shutdownCtx)
}
