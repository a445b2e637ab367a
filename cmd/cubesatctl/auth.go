// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tomtom215/cubesat-console/internal/client"
	"github.com/tomtom215/cubesat-console/internal/models"
)

// PasswordEnvVar supplies --password when the flag is omitted.
const PasswordEnvVar = "CUBESAT_PASSWORD"

func passwordFlag(cmd *cobra.Command, p *string) {
	cmd.Flags().StringVar(p, "password", "", "password (default: $"+PasswordEnvVar+")")
}

func passwordOrEnv(p string) string {
	if p != "" {
		return p
	}
	return os.Getenv(PasswordEnvVar)
}

func printAuth(cmd *cobra.Command, result models.AuthResult, fallback string) error {
	msg := result.Message
	if msg == "" {
		msg = fallback
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), msg)
	return err
}

// Sessions live in the process cookie jar, so login and logout only
// affect requests made by the same invocation. They are useful to check
// credentials.
func loginCommand(a *app) *cobra.Command {
	var form client.LoginForm

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check credentials against the auth endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			form.Password = passwordOrEnv(form.Password)
			result, err := a.clients.Session.Login(cmd.Context(), form)
			if err != nil {
				return err
			}
			return printAuth(cmd, result, "Signed in")
		},
	}

	cmd.Flags().StringVarP(&form.Username, "username", "u", "", "username or email")
	passwordFlag(cmd, &form.Password)
	return cmd
}

func registerCommand(a *app) *cobra.Command {
	var form client.RegisterForm

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			form.Password = passwordOrEnv(form.Password)
			if form.ConfirmPassword == "" {
				form.ConfirmPassword = form.Password
			}
			result, err := a.clients.Session.Register(cmd.Context(), form)
			if err != nil {
				return err
			}
			return printAuth(cmd, result, "Registered")
		},
	}

	cmd.Flags().StringVarP(&form.Username, "username", "u", "", "username")
	cmd.Flags().StringVar(&form.Email, "email", "", "email address")
	passwordFlag(cmd, &form.Password)
	cmd.Flags().StringVar(&form.ConfirmPassword, "confirm", "", "password confirmation (default: --password)")
	return cmd
}

func logoutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := a.clients.Session.Logout(cmd.Context())
			if err != nil {
				return err
			}
			return printAuth(cmd, result, "Signed out")
		},
	}
}

func statusCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the session status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, err := a.clients.Session.Status(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), status)
		},
	}
}

func resetPasswordCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Request or complete a password reset",
	}

	var email string
	request := &cobra.Command{
		Use:   "request",
		Short: "Email a reset link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := a.clients.Session.RequestPasswordReset(cmd.Context(), email)
			if err != nil {
				return err
			}
			return printAuth(cmd, result, "Reset link sent")
		},
	}
	request.Flags().StringVar(&email, "email", "", "account email address")

	var form client.ResetForm
	confirm := &cobra.Command{
		Use:   "confirm <token>",
		Short: "Set a new password with the emailed token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form.Password = passwordOrEnv(form.Password)
			if form.ConfirmPassword == "" {
				form.ConfirmPassword = form.Password
			}
			result, err := a.clients.Session.ResetPassword(cmd.Context(), args[0], form)
			if err != nil {
				return err
			}
			return printAuth(cmd, result, "Password updated")
		},
	}
	passwordFlag(confirm, &form.Password)
	confirm.Flags().StringVar(&form.ConfirmPassword, "confirm", "", "password confirmation (default: --password)")

	cmd.AddCommand(request, confirm)
	return cmd
}
