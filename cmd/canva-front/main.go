package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dgellow/canva-front/internal"
	"github.com/dgellow/canva-front/internal/config"
	"github.com/dgellow/canva-front/internal/log"
)

var BuildVersion = "dev"

func main() {
	version := flag.Bool("version", false, "print version and exit")
	help := flag.Bool("help", false, "print help and exit")
	flag.Parse()

	if *help {
		flag.Usage()
		return
	}
	if *version {
		fmt.Println(BuildVersion)
		return
	}

	cfg, err := config.FromEnv()
	if err != nil {
		log.LogError("Invalid configuration: %v", err)
		os.Exit(1)
	}

	app, err := internal.NewCanvaFront(cfg)
	if err != nil {
		log.LogError("Failed to build application: %v", err)
		os.Exit(1)
	}

	log.LogInfoWithFields("main", "Starting canva-front", map[string]any{
		"version": BuildVersion,
	})

	if err := app.Run(); err != nil {
		log.LogError("Server error: %v", err)
		os.Exit(1)
	}
}
