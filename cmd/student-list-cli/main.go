// main is the entry point of the terminal student list.
//
//	go run ./cmd/student-list-cli tui
//	go run ./cmd/student-list-cli print --output yaml
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aanand-mishra/student-list/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCmd().ExecuteContext(ctx); err != nil {
		// The error view has already been printed for a failed fetch.
		if !errors.Is(err, cli.ErrFetchFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		stop()
		os.Exit(1)
	}
}
