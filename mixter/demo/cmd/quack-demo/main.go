// Command quack-demo runs a sequence of Quack and Delete commands against an in-memory event log
// and prints the resulting timeline and quack count.
//
// Each argument is one step: "delete" deletes the message, anything else is quacked as content.
// Without arguments a built-in scenario runs. Configuration comes from MIXTER_* environment variables.
//
//	quack-demo Hello World delete "General Kenobi"
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/AntonStoeckl/mixter-eventsourcing-go/mixter/shared/shell/config"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Fatalf("Demo failed: %v", err)
	}
}

func run(args []string, out io.Writer, logOut io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, logOut)
	if err != nil {
		return fmt.Errorf("failed to create app: %w", err)
	}

	defer func() {
		if shutdownErr := a.shutdown(context.WithoutCancel(ctx)); shutdownErr != nil {
			log.Printf("shutdown: %v", shutdownErr)
		}
	}()

	steps := parseSteps(args)
	if len(steps) == 0 {
		steps = defaultScenario()
	}

	return a.runScenario(ctx, steps, out)
}
