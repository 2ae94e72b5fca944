// Copyright 2026 The Wanderhome Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/wanderhome/wanderhome/state"
)

func searchCommand() *Command {
	return &Command{
		Name:    "search",
		Summary: "Manage the search draft",
		Subcommands: []*Command{
			searchSetCommand(),
			searchResetCommand(),
		},
	}
}

func searchSetCommand() *Command {
	var common commonFlags
	var location, checkIn, checkOut, sortBy string
	var guests, minPrice, maxPrice int
	var propertyTypes, amenities []string

	return &Command{
		Name:    "set",
		Summary: "Update fields of the search draft",
		Description: `Update the saved search draft. Only the flags you pass change;
everything else keeps its current value. The draft survives sign-out
and restarts.`,
		Usage: "wanderhome search set [flags]",
		Examples: []Example{
			{Description: "Set destination and dates", Command: "wanderhome search set --location Lisbon --check-in 2026-09-12 --check-out 2026-09-16"},
			{Description: "Narrow by price and amenities", Command: "wanderhome search set --max-price 120 --amenity wifi --amenity kitchen"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("search set", pflag.ContinueOnError)
			common.register(flagSet)
			flagSet.StringVar(&location, "location", "", "destination")
			flagSet.StringVar(&checkIn, "check-in", "", "check-in date (YYYY-MM-DD)")
			flagSet.StringVar(&checkOut, "check-out", "", "check-out date (YYYY-MM-DD)")
			flagSet.IntVar(&guests, "guests", 0, "number of guests")
			flagSet.IntVar(&minPrice, "min-price", 0, "minimum nightly price")
			flagSet.IntVar(&maxPrice, "max-price", 0, "maximum nightly price")
			flagSet.StringSliceVar(&propertyTypes, "property-type", nil, "property type filter (repeatable)")
			flagSet.StringSliceVar(&amenities, "amenity", nil, "amenity filter (repeatable)")
			flagSet.StringVar(&sortBy, "sort", "", "sort order (price, rating, distance)")
			return flagSet
		},
		Run: func(args []string) error {
			a, err := common.boot()
			if err != nil {
				return err
			}
			defer a.close()

			var patch state.SearchPatch
			if location != "" {
				patch.Location = &location
			}
			if checkIn != "" {
				patch.CheckIn = &checkIn
			}
			if checkOut != "" {
				patch.CheckOut = &checkOut
			}
			if guests != 0 {
				patch.Guests = &guests
			}
			if minPrice != 0 {
				patch.MinPrice = &minPrice
			}
			if maxPrice != 0 {
				patch.MaxPrice = &maxPrice
			}
			if propertyTypes != nil {
				patch.PropertyTypes = &propertyTypes
			}
			if amenities != nil {
				patch.Amenities = &amenities
			}
			if sortBy != "" {
				patch.SortBy = &sortBy
			}

			a.coord.UpdateSearchDraft(patch)

			draft := a.store.Snapshot().Search
			fmt.Fprintf(os.Stderr, "Search draft: %s\n", describeSearch(draft))
			return nil
		},
	}
}

func searchResetCommand() *Command {
	var common commonFlags

	return &Command{
		Name:    "reset",
		Summary: "Reset the search draft to defaults",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("search reset", pflag.ContinueOnError)
			common.register(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			a, err := common.boot()
			if err != nil {
				return err
			}
			defer a.close()

			a.coord.ResetSearchDraft()
			fmt.Fprintln(os.Stderr, "Search draft reset.")
			return nil
		},
	}
}

func bookingCommand() *Command {
	return &Command{
		Name:    "booking",
		Summary: "Manage the in-progress booking draft",
		Subcommands: []*Command{
			bookingSetCommand(),
			bookingClearCommand(),
		},
	}
}

func bookingSetCommand() *Command {
	var common commonFlags
	var listingID, checkIn, checkOut, requests string
	var guests int

	return &Command{
		Name:    "set",
		Summary: "Update fields of the booking draft",
		Usage:   "wanderhome booking set --listing <id> [flags]",
		Examples: []Example{
			{Description: "Start a booking", Command: "wanderhome booking set --listing l-88 --check-in 2026-09-12 --check-out 2026-09-16 --guests 3"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("booking set", pflag.ContinueOnError)
			common.register(flagSet)
			flagSet.StringVar(&listingID, "listing", "", "listing identifier")
			flagSet.StringVar(&checkIn, "check-in", "", "check-in date (YYYY-MM-DD)")
			flagSet.StringVar(&checkOut, "check-out", "", "check-out date (YYYY-MM-DD)")
			flagSet.IntVar(&guests, "guests", 0, "number of guests")
			flagSet.StringVar(&requests, "requests", "", "special requests for the host")
			return flagSet
		},
		Run: func(args []string) error {
			a, err := common.boot()
			if err != nil {
				return err
			}
			defer a.close()

			var patch state.BookingPatch
			if listingID != "" {
				patch.ListingID = &listingID
			}
			if checkIn != "" {
				patch.CheckIn = &checkIn
			}
			if checkOut != "" {
				patch.CheckOut = &checkOut
			}
			if guests != 0 {
				patch.Guests = &guests
			}
			if requests != "" {
				patch.SpecialRequests = &requests
			}

			a.coord.UpdateBookingDraft(patch)

			draft := a.store.Snapshot().Booking
			fmt.Fprintf(os.Stderr, "Booking draft: listing %s %s..%s, %d guest(s)\n",
				draft.ListingID, draft.CheckIn, draft.CheckOut, draft.Guests)
			return nil
		},
	}
}

func bookingClearCommand() *Command {
	var common commonFlags

	return &Command{
		Name:    "clear",
		Summary: "Discard the booking draft",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("booking clear", pflag.ContinueOnError)
			common.register(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			a, err := common.boot()
			if err != nil {
				return err
			}
			defer a.close()

			a.coord.ClearBookingDraft()
			fmt.Fprintln(os.Stderr, "Booking draft cleared.")
			return nil
		},
	}
}

func roleCommand() *Command {
	var common commonFlags

	return &Command{
		Name:    "role",
		Summary: "Show or switch the active account role",
		Usage:   "wanderhome role [traveler|host|both]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("role", pflag.ContinueOnError)
			common.register(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			a, err := common.boot()
			if err != nil {
				return err
			}
			defer a.close()

			if len(args) == 0 {
				role := a.store.Snapshot().Role
				if role == "" {
					fmt.Println("No active role (signed out?)")
				} else {
					fmt.Println(role)
				}
				return nil
			}

			role := state.Role(args[0])
			switch role {
			case state.RoleTraveler, state.RoleHost, state.RoleBoth:
			default:
				return fmt.Errorf("invalid role %q (traveler, host, or both)", args[0])
			}
			a.coord.SetRole(role)
			fmt.Fprintf(os.Stderr, "Active role: %s\n", role)
			return nil
		},
	}
}

// describeSearch renders a one-line summary of the search draft.
func describeSearch(draft state.SearchDraft) string {
	var parts []string
	if draft.Location != "" {
		parts = append(parts, draft.Location)
	}
	if draft.CheckIn != "" || draft.CheckOut != "" {
		parts = append(parts, draft.CheckIn+".."+draft.CheckOut)
	}
	parts = append(parts, fmt.Sprintf("%d guest(s)", draft.Guests))
	if draft.MaxPrice > 0 {
		parts = append(parts, fmt.Sprintf("up to %d/night", draft.MaxPrice))
	}
	if draft.SortBy != "" {
		parts = append(parts, "sorted by "+draft.SortBy)
	}
	return strings.Join(parts, ", ")
}
