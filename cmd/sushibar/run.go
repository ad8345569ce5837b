package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"
)

const stopTimeout = 15 * time.Second

// lifecycle is the part of *fx.App driven by run.
type lifecycle interface {
	Start(context.Context) error
	Stop(context.Context) error
	Err() error
	Done() <-chan os.Signal
}

// run starts app, blocks until ctx is cancelled or app asks to shut down, and returns the exit code.
func run(ctx context.Context, app lifecycle, stderr io.Writer) int {
	if err := app.Err(); err != nil {
		fmt.Fprintf(stderr, "sushibar: build application: %v\n", err)
		return 1
	}
	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(stderr, "sushibar: start: %v\n", err)
		return 1
	}

	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		fmt.Fprintf(stderr, "sushibar: stop: %v\n", err)
		return 1
	}
	return 0
}
