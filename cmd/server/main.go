package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/AlibekovAA/ricebook/backend/internal/common/bootstrap"
	"github.com/AlibekovAA/ricebook/backend/internal/common/config"
	"github.com/AlibekovAA/ricebook/backend/internal/common/logger"
	srv "github.com/AlibekovAA/ricebook/backend/internal/common/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogDir, bootstrap.ServiceName, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	bgCtx, cancelBackground := context.WithCancel(context.Background())
	defer cancelBackground()
	app.Start(bgCtx)

	server := srv.NewServer(srv.DefaultServerConfig(cfg.HTTPPort, cfg.RequestTimeout), app.Handler())

	hooks := []srv.ShutdownHook{
		func(ctx context.Context) error {
			log.Infof("%s: stopping background loops", bootstrap.ServiceName)
			cancelBackground()
			return nil
		},
	}

	if err := srv.Run(ctx, server, log, bootstrap.ServiceName, hooks...); err != nil {
		app.Close()
		log.Fatalf("server error: %v", err)
	}
	app.Close()
}
