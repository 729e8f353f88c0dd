package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/automoto/boxninja/config"
	"github.com/automoto/boxninja/server/core"
	"github.com/automoto/boxninja/shared/logging"
)

func main() {
	configPath := flag.String("config", "boxninja.toml", "TOML config file")
	addr := flag.String("addr", "", "relay listen address (overrides config)")
	monitorAddr := flag.String("monitor", "", "monitor HTTP address (overrides config, \"off\" disables)")
	results := flag.String("results", "", "results database path (overrides config, \"off\" disables)")
	master := flag.String("master", "", "master directory URL (overrides config)")
	name := flag.String("name", "", "server display name (overrides config)")
	flag.Parse()

	if err := config.Load(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	overrideString(&config.Server.Address, *addr)
	overrideString(&config.Monitor.Addr, *monitorAddr)
	overrideString(&config.Server.ResultsPath, *results)
	overrideString(&config.Server.MasterURL, *master)
	overrideString(&config.Server.Name, *name)

	if err := logging.Init(logging.Options{File: config.Server.LogFile, Level: config.Debug.LogLevel}); err != nil {
		fmt.Fprintln(os.Stderr, "logging:", err)
		os.Exit(1)
	}
	defer logging.Sync()
	log := logging.Named("main")

	opts := core.Options{
		Address:       config.Server.Address,
		MonitorAddr:   config.Monitor.Addr,
		BroadcastRate: config.Monitor.BroadcastRate,
		Registration: &core.RegistrationOptions{
			MasterURL: config.Server.MasterURL,
			Name:      config.Server.Name,
			Address:   config.Server.Address,
			Version:   config.Server.Version,
			Region:    config.Server.Region,
			Interval:  time.Duration(config.Server.HeartbeatSeconds) * time.Second,
		},
	}
	if opts.MonitorAddr == "off" {
		opts.MonitorAddr = ""
	}
	if path := config.Server.ResultsPath; path != "" && path != "off" {
		ledger, err := core.OpenLedger(path)
		if err != nil {
			log.Fatalw("could not open results ledger", "path", path, "error", err)
		}
		defer ledger.Close()
		opts.Ledger = ledger
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Infow("starting relay", "name", config.Server.Name, "addr", opts.Address, "rate", config.Server.RelayRate)
	if err := core.NewServer(opts).ListenAndServe(ctx); err != nil {
		log.Errorw("server error", "error", err)
		logging.Sync()
		os.Exit(1)
	}
}

func overrideString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
