package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/handiism/audioitem/internal/config"
	"github.com/handiism/audioitem/internal/tui"
	"go.uber.org/zap"
)

func main() {
	var (
		manifestFlag = flag.String("manifest", "", "JSON manifest listing tracks")
		configFlag   = flag.String("config", "", "Path to config file")
		verboseFlag  = flag.Bool("verbose", false, "Show verbose output")
	)
	flag.Parse()

	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// Logging would draw over the alternate screen.
	if err := tui.Run(*manifestFlag, settings, zap.NewNop(), *verboseFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
