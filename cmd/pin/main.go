// Package main is the entry point for the pin CLI.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/pin/cmd/pin/commands"
	"go.trai.ch/pin/internal/app"
	"go.trai.ch/pin/internal/core/domain"
	_ "go.trai.ch/pin/internal/wiring"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// 0. Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 1. Initialize application components
	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}
	defer components.Telemetry.Close() //nolint:errcheck // Exit path, nothing to do about a flush failure

	// 2. Interface - CLI
	cli := commands.New(components.App)
	cli.SetArgs(args)

	// 3. Execution
	if err := cli.Execute(ctx); err != nil {
		// Check and verify print their findings before failing; repeating
		// the sentinel would only add noise.
		if errors.Is(err, domain.ErrCheckFailed) || errors.Is(err, domain.ErrVerifyFailed) {
			return 1
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}
