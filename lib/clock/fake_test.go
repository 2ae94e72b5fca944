// Copyright 2026 The Wanderhome Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeNow(t *testing.T) {
	c := Fake(epoch)
	if got := c.Now(); !got.Equal(epoch) {
		t.Errorf("Now() = %v, want %v", got, epoch)
	}
	c.Advance(time.Hour)
	if got := c.Now(); !got.Equal(epoch.Add(time.Hour)) {
		t.Errorf("Now() after Advance = %v, want %v", got, epoch.Add(time.Hour))
	}
}

func TestFakeAfter(t *testing.T) {
	c := Fake(epoch)
	ch := c.After(time.Minute)

	select {
	case <-ch:
		t.Fatal("After fired before Advance")
	default:
	}

	c.Advance(time.Minute)
	select {
	case got := <-ch:
		if !got.Equal(epoch.Add(time.Minute)) {
			t.Errorf("fire time = %v, want %v", got, epoch.Add(time.Minute))
		}
	default:
		t.Fatal("After did not fire at its deadline")
	}
}

func TestFakeAfterNonPositive(t *testing.T) {
	c := Fake(epoch)
	select {
	case <-c.After(0):
	default:
		t.Fatal("After(0) did not fire immediately")
	}
}

func TestFakeSleepBlocksUntilAdvance(t *testing.T) {
	c := Fake(epoch)
	done := make(chan struct{})
	go func() {
		c.Sleep(5 * time.Second)
		close(done)
	}()

	c.WaitForTimers(1)
	select {
	case <-done:
		t.Fatal("Sleep returned before Advance")
	default:
	}

	c.Advance(5 * time.Second)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Sleep did not return after Advance")
	}
}

func TestFakeAdvanceFiresInDeadlineOrder(t *testing.T) {
	c := Fake(epoch)
	second := c.After(2 * time.Second)
	first := c.After(time.Second)

	c.Advance(3 * time.Second)

	firstTime := <-first
	secondTime := <-second
	if !firstTime.Before(secondTime) && !firstTime.Equal(secondTime) {
		t.Errorf("waiters fired out of order: %v then %v", firstTime, secondTime)
	}
	if c.PendingCount() != 0 {
		t.Errorf("PendingCount() = %d after all waiters fired", c.PendingCount())
	}
}
