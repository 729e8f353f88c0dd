package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/automoto/boxninja/config"
	"github.com/automoto/boxninja/master"
	"github.com/automoto/boxninja/shared/logging"
)

func main() {
	configPath := flag.String("config", "boxninja.toml", "TOML config file")
	port := flag.Int("port", 0, "HTTP listen port (overrides config)")
	ttl := flag.Duration("ttl", 0, "server TTL before expiry (overrides config)")
	flag.Parse()

	if err := config.Load(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *port != 0 {
		config.Master.Port = *port
	}
	if *ttl != 0 {
		config.Master.TTLSeconds = int(ttl.Seconds())
	}
	if err := logging.Init(logging.Options{File: config.Master.LogFile, Level: config.Debug.LogLevel}); err != nil {
		fmt.Fprintln(os.Stderr, "logging:", err)
		os.Exit(1)
	}
	defer logging.Sync()
	log := logging.Named("master")

	reg := master.NewRegistry(time.Duration(config.Master.TTLSeconds) * time.Second)
	reg.StartCleanup(time.Duration(config.Master.CleanupSeconds) * time.Second)
	defer reg.Stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Master.Port),
		Handler:           master.Routes(reg),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Infow("starting", "addr", srv.Addr, "ttl", config.Master.TTLSeconds)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		log.Errorw("fatal", "error", err)
		logging.Sync()
		os.Exit(1)
	}
}
