// Package main implements the nesgo NES emulator executable.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"nesgo/internal/config"
	"nesgo/internal/console"
	"nesgo/internal/graphics"
	"nesgo/internal/version"
)

func main() {
	var (
		romFile    = flag.String("rom", "", "Path to NES ROM file")
		configFile = flag.String("config", "", "Path to configuration file")
		nogui      = flag.Bool("nogui", false, "Run without a window (headless batch mode)")
		frames     = flag.Int("frames", 120, "Frames to run in -nogui mode")
		dumpDir    = flag.String("dump", "", "Directory to write the final frame as a PPM image (-nogui only)")
		showVer    = flag.Bool("version", false, "Show version information")
	)
	flag.Usage = printUsage
	flag.Parse()

	if *showVer {
		version.PrintBuildInfo()
		return
	}

	configPath := *configFile
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *nogui {
		cfg.Video.Backend = "headless"
	}

	c := console.New()
	if *romFile != "" {
		image, err := os.ReadFile(*romFile)
		if err != nil {
			log.Fatalf("read ROM: %v", err)
		}
		if err := c.Load(image); err != nil {
			log.Fatalf("load ROM: %v", err)
		}
	}

	var backend graphics.Backend
	if cfg.Video.Backend == "headless" {
		if *romFile == "" {
			log.Fatal("-nogui requires -rom")
		}
		backend = graphics.NewHeadlessBackend(c, *frames, *dumpDir)
	} else {
		backend = graphics.NewEbitengineBackend(c, cfg)
	}

	if err := backend.Run(); err != nil {
		log.Fatalf("run: %v", err)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "nesgo - NES emulator")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "USAGE:")
	fmt.Fprintln(os.Stderr, "  nesgo -rom game.nes               # windowed play")
	fmt.Fprintln(os.Stderr, "  nesgo -rom game.nes -nogui         # run headless, no window")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "OPTIONS:")
	flag.PrintDefaults()
}
