package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	dotenv "github.com/joho/godotenv"

	"go.inout.gg/vergen/cmd/internal/command"
)

func main() {
	// A missing .env is not an error: build environments rarely have one.
	_ = dotenv.Load()

	os.Exit(run())
}

// run executes the command line and returns the process exit code. Any
// non-zero code makes the enclosing build step fail.
func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := command.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "vergen: %v\n", err)
		return 1
	}

	return 0
}
