package main

import (
	"flag"
	"fmt"
	"os"

	"podflow/internal/config"
	"podflow/internal/hookd"
	"podflow/internal/logger"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file (optional)")
	addr := flag.String("addr", "", "listen address (overrides config)")
	spoolDir := flag.String("spool", "", "inbox directory (overrides config)")
	flag.Parse()

	cfg, err := config.LoadIfPresent(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *spoolDir != "" {
		cfg.Paths.Spool = *spoolDir
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if err := cfg.ValidateServer(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)

	srv := hookd.New(cfg.Paths.Spool, log)
	if err := srv.Start(cfg.Server.Addr); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
