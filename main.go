package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"rpmdiag/backend"
	"rpmdiag/config"
	"rpmdiag/handler"
	"rpmdiag/logging"
	"rpmdiag/prompt"
)

var Version = "dev"

func main() {
	cli, err := config.ParseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if cli.Help {
		cli.Usage()
		return
	}
	if cli.Version {
		fmt.Println(Version)
		return
	}

	// A missing .env is fine; the real environment is used as is.
	_ = godotenv.Load()

	log := logging.GetLogger()
	cfg, err := config.LoadConfig(cli)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logging.InitLogger(level, cfg.Log.Format)

	if err := handler.CheckStaticFile(cfg.Server.StaticFile); err != nil {
		log.Fatalf("Cannot serve UI: %v", err)
	}
	if cfg.Backend.APIKey == "" {
		log.Warnf("No API key set for provider %s; every diagnosis will fail upstream", cfg.Backend.Provider)
	}

	completer, err := backend.New(cfg.Backend)
	if err != nil {
		log.Fatalf("Failed to create backend client: %v", err)
	}

	server := &http.Server{
		Addr:              cfg.ListenAddress(),
		Handler:           handler.NewHTTPHandler(cfg, completer),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, server, cfg.Server.ShutdownTimeout); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
	log.Infoln("Server stopped")
}

func run(ctx context.Context, server *http.Server, shutdownTimeout time.Duration) error {
	log := logging.GetLogger()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.WithFields(logrus.Fields{
			"version": Version,
			"rubric":  prompt.Title(),
		}).Infof("Starting server on %s", server.Addr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Infoln("Shutting down")
		shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutCtx)
	})

	return g.Wait()
}
