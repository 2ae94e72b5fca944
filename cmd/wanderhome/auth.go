// Copyright 2026 The Wanderhome Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/wanderhome/wanderhome/api"
	"github.com/wanderhome/wanderhome/state"
)

func loginCommand() *Command {
	var common commonFlags
	var passwordFile string

	return &Command{
		Name:    "login",
		Summary: "Sign in to the booking service",
		Description: `Sign in with email and password and save the session locally.

Subsequent commands reuse the saved session until it expires or you
log out. The password is prompted interactively unless --password-file
is given.`,
		Usage: "wanderhome login <email> [flags]",
		Examples: []Example{
			{Description: "Sign in interactively", Command: "wanderhome login mira@example.com"},
			{Description: "Sign in with password from a file", Command: "wanderhome login mira@example.com --password-file ~/.wanderhome-pass"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("login", pflag.ContinueOnError)
			common.register(flagSet)
			flagSet.StringVar(&passwordFile, "password-file", "", "path to file containing the password (default: prompt)")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("login requires exactly one argument: the email address")
			}
			email := args[0]

			password, err := readPassword(passwordFile)
			if err != nil {
				return err
			}

			a, err := common.boot()
			if err != nil {
				return err
			}
			defer a.close()

			ctx, cancel := a.requestContext()
			defer cancel()
			if err := a.coord.Login(ctx, email, password); err != nil {
				// The human-readable message lives in state; the raw
				// error already went to the log.
				return fmt.Errorf("%s", a.store.Snapshot().Session.LastError)
			}

			identity := a.store.Snapshot().Session.Identity
			fmt.Fprintf(os.Stderr, "Signed in as %s (%s)\n", identity.DisplayName, identity.Email)
			return nil
		},
	}
}

func registerCommand() *Command {
	var common commonFlags
	var passwordFile string
	var displayName string
	var role string
	var phone string

	return &Command{
		Name:    "register",
		Summary: "Create a booking-service account",
		Usage:   "wanderhome register <email> --name <display-name> [flags]",
		Examples: []Example{
			{Description: "Register as a traveler", Command: "wanderhome register mira@example.com --name Mira"},
			{Description: "Register as a host", Command: "wanderhome register sam@example.com --name Sam --role host"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("register", pflag.ContinueOnError)
			common.register(flagSet)
			flagSet.StringVar(&passwordFile, "password-file", "", "path to file containing the password (default: prompt)")
			flagSet.StringVar(&displayName, "name", "", "display name shown to other users")
			flagSet.StringVar(&role, "role", string(state.RoleTraveler), "account role: traveler, host, or both")
			flagSet.StringVar(&phone, "phone", "", "contact phone number")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("register requires exactly one argument: the email address")
			}
			if displayName == "" {
				return fmt.Errorf("--name is required")
			}

			password, err := readPassword(passwordFile)
			if err != nil {
				return err
			}

			a, err := common.boot()
			if err != nil {
				return err
			}
			defer a.close()

			ctx, cancel := a.requestContext()
			defer cancel()
			err = a.coord.Register(ctx, api.RegisterRequest{
				Email:       args[0],
				Password:    password,
				DisplayName: displayName,
				Phone:       phone,
				Role:        state.Role(role),
			})
			if err != nil {
				return fmt.Errorf("%s", a.store.Snapshot().Session.LastError)
			}

			identity := a.store.Snapshot().Session.Identity
			fmt.Fprintf(os.Stderr, "Account created. Signed in as %s (%s)\n", identity.DisplayName, identity.Email)
			return nil
		},
	}
}

func logoutCommand() *Command {
	var common commonFlags

	return &Command{
		Name:    "logout",
		Summary: "Sign out and discard the saved session",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("logout", pflag.ContinueOnError)
			common.register(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			a, err := common.boot()
			if err != nil {
				return err
			}
			defer a.close()

			a.coord.Logout()
			fmt.Fprintln(os.Stderr, "Signed out. Drafts are kept.")
			return nil
		},
	}
}

func statusCommand() *Command {
	var common commonFlags

	return &Command{
		Name:    "status",
		Summary: "Show session, drafts, and unread count",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("status", pflag.ContinueOnError)
			common.register(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			a, err := common.boot()
			if err != nil {
				return err
			}
			defer a.close()

			a.printStatus()
			return nil
		},
	}
}

// readPassword reads a password from the given file, or prompts on the
// terminal with echo disabled when the path is empty or "-".
func readPassword(passwordFile string) (string, error) {
	if passwordFile != "" && passwordFile != "-" {
		data, err := os.ReadFile(passwordFile)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", passwordFile, err)
		}
		// Strip trailing newlines, common with echo/printf pipelines.
		for len(data) > 0 && (data[len(data)-1] == '\n' || data[len(data)-1] == '\r') {
			data = data[:len(data)-1]
		}
		if len(data) == 0 {
			return "", fmt.Errorf("password file %s is empty", passwordFile)
		}
		return string(data), nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("no terminal available for password prompt (use --password-file)")
	}
	fmt.Fprint(os.Stderr, "Password: ")
	passwordBytes, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	if len(passwordBytes) == 0 {
		return "", fmt.Errorf("empty password")
	}
	return string(passwordBytes), nil
}
