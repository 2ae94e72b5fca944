// Copyright 2026 The Wanderhome Authors
// SPDX-License-Identifier: Apache-2.0

// Command wanderhome is the terminal client for the Wanderhome booking
// platform: sign in, keep drafts, and follow notifications.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return rootCommand().Execute(os.Args[1:])
}

func rootCommand() *Command {
	return &Command{
		Name:    "wanderhome",
		Summary: "Wanderhome booking platform client",
		Description: `wanderhome is the terminal client for the Wanderhome booking
platform. It keeps a local session, mirrors your drafts and unread
count across restarts, and follows booking events live.`,
		Subcommands: []*Command{
			loginCommand(),
			registerCommand(),
			logoutCommand(),
			statusCommand(),
			searchCommand(),
			bookingCommand(),
			roleCommand(),
			notificationsCommand(),
			watchCommand(),
		},
	}
}

// commonFlags holds the flags every leaf command shares.
type commonFlags struct {
	configPath string
	verbose    bool
}

// register adds the shared flags to a flag set.
func (f *commonFlags) register(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&f.configPath, "config", "", "path to config file (default: $WANDERHOME_CONFIG or built-in defaults)")
	flagSet.BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging")
}

// boot builds the app from the shared flags.
func (f *commonFlags) boot() (*app, error) {
	return newApp(f.configPath, f.verbose)
}
