// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/cubesat-console/internal/panel"
)

func historyCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List or delete stored captures and classifications",
	}
	cmd.AddCommand(historyImagesCommand(a), historyClassificationsCommand(a), historyDeleteCommand(a))
	return cmd
}

func historyImagesCommand(a *app) *cobra.Command {
	var filter panel.Filter

	cmd := &cobra.Command{
		Use:   "images",
		Short: "List stored captures",
		Long: `List stored captures, optionally filtered by coordinate substrings.

A filter matches the decimal form of the coordinate, so --lat 12 matches
12.345 and 112.5 but not 21.0.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := a.clients.History.Images(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), panel.Render(entries, filter))
		},
	}

	cmd.Flags().StringVar(&filter.Lat, "lat", "", "latitude substring")
	cmd.Flags().StringVar(&filter.Lon, "lon", "", "longitude substring")
	return cmd
}

func historyClassificationsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "classifications",
		Short: "List stored classifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := a.clients.History.Classifications(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), panel.RenderClassifications(entries))
		},
	}
}

func historyDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored capture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.clients.History.DeleteImage(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Deleted image %s\n", args[0])
			return err
		},
	}
}
