package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/qup1010/moodlistener/internal/buildinfo"
	"github.com/qup1010/moodlistener/internal/cli"
	"github.com/qup1010/moodlistener/internal/config"
	"github.com/qup1010/moodlistener/internal/logging"
	"github.com/qup1010/moodlistener/internal/repomanager"
	"github.com/qup1010/moodlistener/internal/stats"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg := config.LoadConfig(os.Args[1:])
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.New(os.Stderr, cfg.LogLevel)

	repos, err := repomanager.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer repos.Close()

	engine := stats.NewEngine(repos.Entries())
	app := cli.NewApp(cfg, repos, engine, logger, os.Stdin, os.Stdout)

	app.Run(ctx)

}
