// Command oxy-demos launches one of the showcase scenes.
//
//	oxy-demos -demo terrain
//	oxy-demos -config demos.toml -headless -frames 120
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Carmen-Shannon/oxy-demos/config"
	"github.com/Carmen-Shannon/oxy-demos/demos"
	"github.com/Carmen-Shannon/oxy-demos/engine/logging"
	"github.com/Carmen-Shannon/oxy-demos/viewer"
	"go.uber.org/zap"
)

func main() {
	var (
		configPath string
		demo       string
		headless   bool
		frames     int
		seed       uint64
		list       bool
		dump       bool
	)
	flag.StringVar(&configPath, "config", "", "TOML config file. Flags override its values.")
	flag.StringVar(&demo, "demo", "", "Demo to run: "+strings.Join(demos.All.Names(), ", ")+".")
	flag.BoolVar(&headless, "headless", false, "Run without a window or GPU.")
	flag.IntVar(&frames, "frames", 0, "Stop after N frames (0 = run until the window closes).")
	flag.Uint64Var(&seed, "seed", 0, "Seed for every random source (0 = from the clock).")
	flag.BoolVar(&list, "list", false, "List the demos and exit.")
	flag.BoolVar(&dump, "dump-config", false, "Print the effective config as TOML and exit.")
	flag.Parse()

	if list {
		for _, name := range demos.All.Names() {
			fmt.Println(name)
		}
		return
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "demo":
			cfg.Demo = demo
		case "headless":
			cfg.Headless = headless
		case "frames":
			cfg.Frames = frames
		case "seed":
			cfg.Seed = seed
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if dump {
		data, err := config.Encode(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		os.Stdout.Write(data)
		return
	}

	logger, err := logging.NewLogger(logging.Options{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
		File:        cfg.Log.File,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("oxy-demos failed", zap.String("demo", cfg.Demo), zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	v, err := demos.New(cfg.Demo, cfg, viewer.WithLogger(logger))
	if err != nil {
		return err
	}
	defer v.Close()
	return v.Run()
}
