package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/automoto/boxninja/components"
	"github.com/automoto/boxninja/config"
	"github.com/automoto/boxninja/network"
	"github.com/automoto/boxninja/scenes"
	"github.com/automoto/boxninja/shared/leveldata"
	"github.com/automoto/boxninja/shared/logging"
	"github.com/automoto/boxninja/shared/netconfig"
	"github.com/automoto/boxninja/systems"
)

var commands = map[string]components.InputEvent{
	"+left":  components.PressLeft,
	"-left":  components.ReleaseLeft,
	"+right": components.PressRight,
	"-right": components.ReleaseRight,
	"+jump":  components.PressJump,
	"-jump":  components.ReleaseJump,
	"reset":  components.PressReset,
}

func main() {
	configPath := flag.String("config", "boxninja.toml", "TOML config file")
	addr := flag.String("addr", "", "relay server address (overrides config)")
	offline := flag.Bool("offline", false, "play without a relay server")
	difficulty := flag.String("difficulty", "", "preferred difficulty: 3, 5 or 6")
	levelsDir := flag.String("levels", "", "directory of TMX levels to play instead of the built-in campaign")
	godMode := flag.Bool("god", false, "player cannot die")
	flag.Parse()

	if err := config.Load(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *addr != "" {
		config.Client.Address = *addr
	}
	if *godMode {
		config.Debug.GodMode = true
	}
	if err := logging.Init(logging.Options{File: config.Client.LogFile, Level: config.Debug.LogLevel}); err != nil {
		fmt.Fprintln(os.Stderr, "logging:", err)
		os.Exit(1)
	}
	defer logging.Sync()
	log := logging.Named("main")

	if err := systems.InitPersistence(config.Client.AppName); err != nil {
		log.Warnw("running without saved preferences", "error", err)
	}
	if *difficulty != "" {
		d, err := netconfig.ParseDifficulty(*difficulty)
		if err != nil {
			log.Fatalw("bad difficulty", "error", err)
		}
		if err := systems.SavePreferences(&systems.SavedPreferences{Difficulty: string(d)}); err != nil {
			log.Warnw("could not save difficulty", "error", err)
		}
		config.Client.Difficulty = string(d)
	}

	catalog := leveldata.Builtin()
	if *levelsDir != "" {
		loaded, err := leveldata.LoadAllLevels(os.DirFS(*levelsDir), ".")
		if err != nil {
			log.Fatalw("could not load levels", "dir", *levelsDir, "error", err)
		}
		catalog = loaded
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := scenes.Options{
		Catalog:    catalog,
		Difficulty: systems.PreferredDifficulty(),
	}
	if !*offline {
		client := network.NewClient(systems.PreferredDifficulty)
		if err := client.Dial(ctx, config.Client.Address); err != nil {
			log.Fatalw("could not reach relay", "error", err)
		}
		defer client.Close()
		opts.Client = client
	}

	scene := scenes.NewSessionScene(opts)
	go readCommands(ctx, stop, scene)

	if err := scene.Run(ctx); err != nil {
		log.Errorw("session ended", "error", err)
		return
	}
	snap := scene.Snapshot()
	log.Infow("session ended", "level", snap.Level, "finished", snap.Finished, "cycles", snap.Score)
}

// readCommands turns stdin lines into key transitions until "quit".
func readCommands(ctx context.Context, stop context.CancelFunc, scene *scenes.SessionScene) {
	log := logging.Named("input")
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		cmd := strings.TrimSpace(sc.Text())
		switch cmd {
		case "":
			continue
		case "quit":
			stop()
			return
		case "status":
			snap := scene.Snapshot()
			log.Infow("status",
				"level", snap.Level,
				"x", snap.Player.X,
				"y", snap.Player.Y,
				"keys", snap.Player.Keys,
				"cycles", snap.Clock.Cycles,
			)
			continue
		}
		ev, ok := commands[cmd]
		if !ok {
			log.Warnw("unknown command", "command", cmd)
			continue
		}
		if ctx.Err() != nil {
			return
		}
		scene.Input(ev)
	}
}
