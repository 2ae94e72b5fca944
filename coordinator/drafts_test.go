// Copyright 2026 The Wanderhome Authors
// SPDX-License-Identifier: Apache-2.0

package coordinator

import (
	"context"
	"errors"
	"testing"

	"github.com/wanderhome/wanderhome/state"
)

func stringPointer(s string) *string { return &s }
func intPointer(n int) *int          { return &n }

func TestUpdateSearchDraftMergesSetFields(t *testing.T) {
	f := newFixture(t)
	f.coord.UpdateSearchDraft(state.SearchPatch{
		Location: stringPointer("Lisbon"),
		Guests:   intPointer(3),
	})
	f.coord.UpdateSearchDraft(state.SearchPatch{
		CheckIn: stringPointer("2026-09-12"),
	})

	draft := f.store.Snapshot().Search
	if draft.Location != "Lisbon" || draft.Guests != 3 || draft.CheckIn != "2026-09-12" {
		t.Errorf("draft = %+v", draft)
	}
}

func TestResetSearchDraft(t *testing.T) {
	f := newFixture(t)
	f.coord.UpdateSearchDraft(state.SearchPatch{
		Location: stringPointer("Lisbon"),
		Guests:   intPointer(4),
	})

	f.coord.ResetSearchDraft()

	draft := f.store.Snapshot().Search
	if draft.Location != "" || draft.Guests != 1 {
		t.Errorf("draft after reset = %+v, want default", draft)
	}
}

func TestBookingDraftUpdateAndClear(t *testing.T) {
	f := newFixture(t)
	f.coord.UpdateBookingDraft(state.BookingPatch{
		ListingID: stringPointer("l-42"),
		Guests:    intPointer(2),
	})
	if draft := f.store.Snapshot().Booking; draft.ListingID != "l-42" || draft.Guests != 2 {
		t.Errorf("draft = %+v", draft)
	}

	f.coord.ClearBookingDraft()
	if draft := f.store.Snapshot().Booking; draft.ListingID != "" || draft.Guests != 1 {
		t.Errorf("draft after clear = %+v, want default", draft)
	}
}

func TestDraftsSurviveLogout(t *testing.T) {
	f := newFixture(t)
	f.coord.UpdateSearchDraft(state.SearchPatch{Location: stringPointer("Kyoto")})
	f.coord.UpdateBookingDraft(state.BookingPatch{ListingID: stringPointer("l-9")})

	f.coord.Logout()

	s := f.store.Snapshot()
	if s.Search.Location != "Kyoto" || s.Booking.ListingID != "l-9" {
		t.Errorf("drafts cleared by logout: search=%+v booking=%+v", s.Search, s.Booking)
	}
}

func TestSetRole(t *testing.T) {
	f := newFixture(t)
	f.coord.SetRole(state.RoleHost)
	if got := f.store.Snapshot().Role; got != state.RoleHost {
		t.Errorf("role = %q", got)
	}
}

func TestUnreadCounter(t *testing.T) {
	f := newFixture(t)

	t.Run("set clamps negative", func(t *testing.T) {
		f.coord.SetUnread(-3)
		if got := f.store.Snapshot().Notifications.Unread; got != 0 {
			t.Errorf("unread = %d", got)
		}
		f.coord.SetUnread(5)
		if got := f.store.Snapshot().Notifications.Unread; got != 5 {
			t.Errorf("unread = %d", got)
		}
	})

	t.Run("increment and decrement", func(t *testing.T) {
		f.coord.SetUnread(0)
		f.coord.IncrementUnread()
		f.coord.IncrementUnread()
		if got := f.store.Snapshot().Notifications.Unread; got != 2 {
			t.Errorf("unread = %d, want 2", got)
		}
		f.coord.DecrementUnread()
		if got := f.store.Snapshot().Notifications.Unread; got != 1 {
			t.Errorf("unread = %d, want 1", got)
		}
	})

	t.Run("decrement saturates at zero", func(t *testing.T) {
		f.coord.SetUnread(0)
		for range 3 {
			f.coord.DecrementUnread()
		}
		if got := f.store.Snapshot().Notifications.Unread; got != 0 {
			t.Errorf("unread = %d, want 0", got)
		}
	})
}

func TestMarkAllRead(t *testing.T) {
	f := newFixture(t)
	f.store.Update(func(s *state.AppState) {
		s.Session.Credential = "tok-7"
		s.Notifications.Unread = 6
	})

	f.coord.MarkAllRead(context.Background())

	if got := f.store.Snapshot().Notifications.Unread; got != 0 {
		t.Errorf("unread = %d after MarkAllRead", got)
	}
	if f.session.markReadCalls != 1 {
		t.Errorf("remote mark-read called %d times, want 1", f.session.markReadCalls)
	}
}

func TestMarkAllReadRemoteFailureStillZeroes(t *testing.T) {
	f := newFixture(t)
	f.session.markReadErr = errors.New("service unavailable")
	f.store.Update(func(s *state.AppState) {
		s.Session.Credential = "tok-7"
		s.Notifications.Unread = 2
	})

	f.coord.MarkAllRead(context.Background())

	if got := f.store.Snapshot().Notifications.Unread; got != 0 {
		t.Errorf("unread = %d, want 0 despite remote failure", got)
	}
}

func TestMarkAllReadSignedOutSkipsRemote(t *testing.T) {
	f := newFixture(t)
	f.coord.SetUnread(3)

	f.coord.MarkAllRead(context.Background())

	if got := f.store.Snapshot().Notifications.Unread; got != 0 {
		t.Errorf("unread = %d", got)
	}
	if f.session.markReadCalls != 0 {
		t.Errorf("remote mark-read called while signed out")
	}
}
