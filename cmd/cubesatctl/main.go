// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

// Command cubesatctl drives the CubeSat API from a terminal: positions,
// capture, classification, history and the account endpoints. It reads the
// same configuration as the console server, image slot included. Badger
// holds a directory lock, so next to a running server use --slot memory.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/cubesat-console/internal/controller"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := RootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", controller.UserMessage(err))
		stop()
		os.Exit(1)
	}
}
