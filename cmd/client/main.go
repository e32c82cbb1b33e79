package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/postplanner/internal/buildinfo"
	"github.com/dmitrijs2005/postplanner/internal/client/cli"
	"github.com/dmitrijs2005/postplanner/internal/client/config"
	"github.com/dmitrijs2005/postplanner/internal/filex"
	"github.com/dmitrijs2005/postplanner/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	if _, err := filex.EnsureParentDir(cfg.LogFile); err != nil {
		log.Fatalf("create log directory: %v", err)
	}

	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		log.Fatalf("open log file: %v", err)
	}
	defer logFile.Close()

	logger := logging.NewTextLogger(logFile, slog.LevelInfo)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer app.Close()

	app.Run(ctx)

}
