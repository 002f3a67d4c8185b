package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/angeloszaimis/simple-web-app/config"
	"github.com/angeloszaimis/simple-web-app/internal/appinfo"
	"github.com/angeloszaimis/simple-web-app/internal/handler"
	"github.com/angeloszaimis/simple-web-app/internal/httpserver"
	"github.com/angeloszaimis/simple-web-app/internal/metrics"
	"github.com/angeloszaimis/simple-web-app/internal/view"
	"github.com/angeloszaimis/simple-web-app/pkg/logger"
)

const flagVersion = "version"

func main() {
	fs, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if showVersion, _ := fs.GetBool(flagVersion); showVersion {
		printVersion(os.Stdout)
		return
	}

	cfg, err := config.Load(fs)
	if err != nil {
		slog.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.AddSource, cfg.Server.Environment)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		collector = metrics.NewCollector(cfg.Metrics.BufferSize, log)
		collector.Start(ctx)
	}

	router, err := buildRouter(cfg, log, collector)
	if err != nil {
		log.Error("Failed to build router", slog.Any("err", err))
		os.Exit(1)
	}

	srv, err := httpserver.New(cfg.Server.Address, router,
		httpserver.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.IdleTimeout),
		httpserver.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
		httpserver.WithLogger(log),
	)
	if err != nil {
		log.Error("Failed to create server", slog.Any("err", err))
		os.Exit(1)
	}

	srvErrCh := make(chan error, 1)

	go func() {
		log.Info("Starting server",
			slog.String("address", srv.Addr()),
			slog.String("app", appinfo.New().String()))
		srvErrCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
		if err := srv.Shutdown(context.Background()); err != nil {
			log.Error("Error during shutdown", slog.Any("err", err))
		}
		if collector != nil {
			<-collector.Done()
		}
	case err := <-srvErrCh:
		if err != nil {
			log.Error("Error starting server", slog.Any("err", err))
			os.Exit(1)
		}
	}
}

func parseFlags(args []string) (*pflag.FlagSet, error) {
	fs := pflag.NewFlagSet("simple-web-app", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	fs.BoolP(flagVersion, "v", false, "Print version information and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return fs, nil
}

func printVersion(w io.Writer) {
	info := appinfo.New()
	fmt.Fprintf(w, "%s %s\n%s\n", info.Name, info.Version, info.Description)
}

func buildRouter(cfg *config.Config, log *slog.Logger, collector *metrics.Collector) (http.Handler, error) {
	renderer, err := view.New(view.WithMinify(cfg.View.Minify))
	if err != nil {
		return nil, err
	}

	home := handler.NewHomeHandler(log, renderer)
	mw := handler.NewMiddleware(log, collector)

	return setupRouter(home, mw, collector), nil
}
