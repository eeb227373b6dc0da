// Package main is the entry point for the flowsync CLI.
package main

import (
	"fmt"
	"os"

	"github.com/runoshun/flowsync/internal/app"
	"github.com/runoshun/flowsync/internal/cli"
	"github.com/runoshun/flowsync/internal/domain"
)

// version is set at build time using -ldflags.
var version = "dev"

// newRootCommand is a function variable so tests can observe execution.
var newRootCommand = cli.NewRootCommand

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error: "+domain.UserMessage(err))
		os.Exit(1)
	}
}

func run() error {
	dataDir, err := app.DefaultDataDir()
	if err != nil {
		return fmt.Errorf("resolve data directory: %w", err)
	}

	// Create dependency injection container
	container, err := app.New(dataDir)
	if err != nil {
		// Help and version work even with a broken config or unreachable store
		return runWithoutContainer(err)
	}
	defer func() { _ = container.Close() }()

	return newRootCommand(container, version).Execute()
}

// runWithoutContainer executes the commands that need no container and
// returns initErr for everything else.
func runWithoutContainer(initErr error) error {
	if !canRunWithoutContainer(os.Args[1:]) {
		return fmt.Errorf("initialize: %w", initErr)
	}
	return newRootCommand(nil, version).Execute()
}

func canRunWithoutContainer(args []string) bool {
	if len(args) == 0 {
		return false
	}
	switch args[0] {
	case "help", "completion":
		return true
	case "config":
		return len(args) > 1 && args[1] == "template"
	}
	for _, arg := range args {
		if arg == "--version" || arg == "--help" || arg == "-h" {
			return true
		}
	}
	return false
}
