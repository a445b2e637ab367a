// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tomtom215/cubesat-console/internal/models"
)

func positionsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "positions",
		Short: "List current satellite positions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			positions, err := a.clients.Catalog.Positions(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), positions)
		},
	}
}

func orbitsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "orbits",
		Short: "List satellite orbit tracks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			orbits, err := a.clients.Catalog.Orbits(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), orbits)
		},
	}
}

// captureOutput is printed by capture.
type captureOutput struct {
	Dataset  string            `json:"dataset"`
	Products map[string]string `json:"products"`
	Stored   string            `json:"stored_image"`
}

func captureCommand(a *app) *cobra.Command {
	var (
		lat, lon float64
		dataset  string
	)

	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Capture imagery at a location",
		Long: `Capture imagery at a location and store the raw RGB image in the slot.

Examples:
  cubesatctl capture --lat 37.77 --lon -122.42
  cubesatctl capture --lat 37.77 --lon -122.42 --dataset LANDSAT/LC09/C02/T1_L2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := a.workflow.Capture(cmd.Context(), lat, lon, dataset)
			if err != nil {
				return err
			}
			snap := a.workflow.Snapshot()
			return printJSON(cmd.OutOrStdout(), captureOutput{
				Dataset:  snap.Dataset,
				Products: result.Products,
				Stored:   snap.RawRGBURL,
			})
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude in degrees, -90 to 90")
	cmd.Flags().Float64Var(&lon, "lon", 0, "longitude in degrees, -180 to 180")
	cmd.Flags().StringVar(&dataset, "dataset", "", "Earth Engine dataset (default: capture.default_dataset)")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")
	return cmd
}

func classifyCommand(a *app) *cobra.Command {
	var imageURL string

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify the last captured image, or --image-url",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var target *string
			if imageURL != "" {
				target = &imageURL
			}
			result, err := a.workflow.Classify(cmd.Context(), target)
			if err != nil {
				return err
			}
			return printClassification(cmd, result)
		},
	}

	cmd.Flags().StringVar(&imageURL, "image-url", "", "image to classify instead of the stored one")
	return cmd
}

func printClassification(cmd *cobra.Command, result models.ClassificationResult) error {
	out := cmd.OutOrStdout()
	for _, share := range result.Sorted() {
		if _, err := fmt.Fprintf(out, "%-20s %6.2f%%\n", share.Class, share.Percentage); err != nil {
			return err
		}
	}
	return nil
}

func uploadCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a png, jpg, jpeg or gif image for classification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			u, err := a.workflow.Upload(cmd.Context(), args[0], f)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), u)
			return err
		},
	}
}
