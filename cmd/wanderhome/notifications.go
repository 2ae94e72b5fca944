// Copyright 2026 The Wanderhome Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/wanderhome/wanderhome/state"
)

func notificationsCommand() *Command {
	return &Command{
		Name:    "notifications",
		Summary: "Manage the unread notification counter",
		Subcommands: []*Command{
			notificationsReadCommand(),
			notificationsSetCommand(),
		},
	}
}

func notificationsReadCommand() *Command {
	var common commonFlags

	return &Command{
		Name:    "read",
		Summary: "Mark all notifications as read",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("notifications read", pflag.ContinueOnError)
			common.register(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			a, err := common.boot()
			if err != nil {
				return err
			}
			defer a.close()

			ctx, cancel := a.requestContext()
			defer cancel()
			a.coord.MarkAllRead(ctx)
			fmt.Fprintln(os.Stderr, "All notifications marked read.")
			return nil
		},
	}
}

func notificationsSetCommand() *Command {
	var common commonFlags

	return &Command{
		Name:    "set",
		Summary: "Set the unread counter explicitly",
		Usage:   "wanderhome notifications set <count>",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("notifications set", pflag.ContinueOnError)
			common.register(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("notifications set requires exactly one argument: the count")
			}
			count, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid count %q: %w", args[0], err)
			}

			a, err := common.boot()
			if err != nil {
				return err
			}
			defer a.close()

			a.coord.SetUnread(count)
			fmt.Fprintf(os.Stderr, "Unread count: %d\n", a.store.Snapshot().Notifications.Unread)
			return nil
		},
	}
}

func watchCommand() *Command {
	var common commonFlags

	return &Command{
		Name:    "watch",
		Summary: "Follow state changes live until interrupted",
		Description: `Keep the realtime channel open and print a line for every state
change: unread count movements, channel liveness, and session
transitions. Stop with Ctrl-C.`,
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("watch", pflag.ContinueOnError)
			common.register(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			a, err := common.boot()
			if err != nil {
				return err
			}
			defer a.close()

			snapshot := a.store.Snapshot()
			if snapshot.Session.Status != state.StatusAuthenticated {
				return fmt.Errorf("not signed in (run 'wanderhome login' first)")
			}

			updates, cancelUpdates := a.store.Subscribe(8)
			defer cancelUpdates()

			interrupt := make(chan os.Signal, 1)
			signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(interrupt)

			fmt.Fprintln(os.Stderr, "Watching (Ctrl-C to stop)")
			printWatchLine(snapshot)
			for {
				select {
				case <-interrupt:
					fmt.Fprintln(os.Stderr, "Stopped.")
					return nil
				case next := <-updates:
					printWatchLine(next)
				}
			}
		},
	}
}

func printWatchLine(s state.AppState) {
	liveness := "down"
	if s.Channel.Live {
		liveness = "live"
	}
	fmt.Printf("status=%s channel=%s unread=%d\n",
		s.Session.Status, liveness, s.Notifications.Unread)
}
