package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"chessbot/config"
	"chessbot/internal/logx"
	"chessbot/uci"
)

func main() {
	cfgPath := flag.String("config", "", "config file (default: search XDG config dirs for chessbot/config.yaml)")
	logLevel := flag.String("log-level", "", "override log.level from the config")
	flag.Parse()

	if err := run(*cfgPath, *logLevel, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfgPath, logLevel string, in io.Reader, out io.Writer) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	logger, err := logx.NewLogger(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger.Info().Str("config", cfg.File).Int("hash_mb", cfg.Search.HashMB).
		Int("depth", cfg.Search.Depth).Msg("engine starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = uci.New(cfg, out, logger).Run(ctx, in)
	if err != nil && ctx.Err() == nil {
		logger.Error().Err(err).Msg("protocol loop failed")
		return err
	}
	logger.Info().Msg("engine stopped")
	return nil
}
