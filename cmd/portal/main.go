package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bobmcallan/cryptoai-portal/internal/app"
	"github.com/bobmcallan/cryptoai-portal/internal/common"
)

func main() {
	configPath := flag.String("config", "", "path to portal.toml (default: CRYPTOAI_CONFIG or binary dir)")
	flag.Parse()

	a, err := app.NewApp(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize app: %v\n", err)
		os.Exit(1)
	}

	common.PrintBanner(a.Config, a.Logger)

	a.Start()
	defer a.Close()

	// Console reads stdin on its own goroutine; commands re-enter the loop.
	console := newConsole(a, os.Stdin, os.Stdout)
	consoleDone := make(chan struct{})
	go func() {
		console.run()
		close(consoleDone)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigChan:
		a.Logger.Info().Msg("Shutdown signal received")
	case <-consoleDone:
	}

	common.PrintShutdownBanner(a.Logger)
}
