// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/cubesat-console/internal/capture"
	"github.com/tomtom215/cubesat-console/internal/client"
	"github.com/tomtom215/cubesat-console/internal/config"
	"github.com/tomtom215/cubesat-console/internal/logging"
	"github.com/tomtom215/cubesat-console/internal/store"
)

// app holds what every subcommand needs, built once before it runs.
type app struct {
	configPath string
	apiURL     string
	slotKind   string
	verbose    bool

	cfg      *config.Config
	clients  *client.Set
	slot     store.Slot
	workflow *capture.Workflow
}

// RootCommand creates the cubesatctl command tree.
func RootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "cubesatctl",
		Short:         "CubeSat API command line client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.setup()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to config.yaml (default: CONFIG_PATH or ./config.yaml)")
	flags.StringVar(&a.apiURL, "api-url", "", "CubeSat API base URL, overrides upstream.base_url")
	flags.StringVar(&a.slotKind, "slot", "", "image slot backend: badger or memory, overrides storage.backend")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log requests to stderr")

	rootCmd.AddCommand(
		positionsCommand(a),
		orbitsCommand(a),
		captureCommand(a),
		classifyCommand(a),
		uploadCommand(a),
		historyCommand(a),
		loginCommand(a),
		registerCommand(a),
		logoutCommand(a),
		statusCommand(a),
		resetPasswordCommand(a),
	)
	return a.wrapRun(rootCmd)
}

// wrapRun makes every runnable command close the slot when it returns.
func (a *app) wrapRun(root *cobra.Command) *cobra.Command {
	for _, cmd := range allCommands(root) {
		run := cmd.RunE
		if run == nil {
			continue
		}
		cmd.RunE = func(cmd *cobra.Command, args []string) error {
			err := run(cmd, args)
			if cerr := a.close(); err == nil {
				err = cerr
			}
			return err
		}
	}
	return root
}

func allCommands(cmd *cobra.Command) []*cobra.Command {
	out := []*cobra.Command{cmd}
	for _, sub := range cmd.Commands() {
		out = append(out, allCommands(sub)...)
	}
	return out
}

func (a *app) setup() error {
	level := "warn"
	if a.verbose {
		level = "debug"
	}
	logging.Init(logging.Config{Level: level, Format: "console", Output: os.Stderr, Timestamp: true})

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.apiURL != "" {
		cfg.Upstream.BaseURL = a.apiURL
	}
	if a.slotKind != "" {
		cfg.Storage.Backend = a.slotKind
	}
	a.cfg = cfg

	if a.clients, err = client.NewSet(cfg.Upstream); err != nil {
		return err
	}
	if a.slot, err = store.Open(cfg.Storage); err != nil {
		return fmt.Errorf("open image slot: %w", err)
	}
	a.workflow = capture.NewWorkflow(a.clients.Capture, a.slot, cfg.Capture)
	return nil
}

func (a *app) close() error {
	if a.slot == nil {
		return nil
	}
	err := a.slot.Close()
	a.slot = nil
	return err
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
