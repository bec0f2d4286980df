// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

var testEpoch = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func TestFakeNowAdvance(t *testing.T) {
	fake := Fake(testEpoch)
	if !fake.Now().Equal(testEpoch) {
		t.Fatalf("Now() = %v, want %v", fake.Now(), testEpoch)
	}
	fake.Advance(90 * time.Second)
	want := testEpoch.Add(90 * time.Second)
	if !fake.Now().Equal(want) {
		t.Fatalf("Now() after advance = %v, want %v", fake.Now(), want)
	}
}

func TestAfterFuncFiresInDeadlineOrder(t *testing.T) {
	fake := Fake(testEpoch)
	var order []string
	fake.AfterFunc(2*time.Second, func() { order = append(order, "second") })
	fake.AfterFunc(1*time.Second, func() { order = append(order, "first") })

	fake.Advance(3 * time.Second)

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("fire order = %v, want [first second]", order)
	}
}

func TestAfterFuncNotDueDoesNotFire(t *testing.T) {
	fake := Fake(testEpoch)
	fired := false
	fake.AfterFunc(5*time.Second, func() { fired = true })

	fake.Advance(4 * time.Second)
	if fired {
		t.Fatal("callback fired before its deadline")
	}
	fake.Advance(1 * time.Second)
	if !fired {
		t.Fatal("callback did not fire at its deadline")
	}
}

func TestStopCancelsPendingTimer(t *testing.T) {
	fake := Fake(testEpoch)
	fired := false
	timer := fake.AfterFunc(time.Second, func() { fired = true })

	if !timer.Stop() {
		t.Fatal("Stop() = false for a pending timer")
	}
	fake.Advance(2 * time.Second)
	if fired {
		t.Fatal("stopped timer fired anyway")
	}
	if timer.Stop() {
		t.Fatal("second Stop() = true, want false")
	}
}

func TestCallbackMayScheduleFollowup(t *testing.T) {
	// A scripted sequence chains phases: each callback schedules the
	// next. One Advance spanning all deadlines must run the whole
	// chain.
	fake := Fake(testEpoch)
	var phases []string
	fake.AfterFunc(time.Second, func() {
		phases = append(phases, "searching")
		fake.AfterFunc(time.Second, func() {
			phases = append(phases, "connecting")
		})
	})

	fake.Advance(5 * time.Second)

	if len(phases) != 2 || phases[1] != "connecting" {
		t.Fatalf("phases = %v, want [searching connecting]", phases)
	}
}

func TestAfterDeliversOnAdvance(t *testing.T) {
	fake := Fake(testEpoch)
	ch := fake.After(time.Second)
	select {
	case <-ch:
		t.Fatal("After delivered before deadline")
	default:
	}
	fake.Advance(time.Second)
	select {
	case at := <-ch:
		if !at.Equal(testEpoch.Add(time.Second)) {
			t.Fatalf("delivered time %v, want %v", at, testEpoch.Add(time.Second))
		}
	default:
		t.Fatal("After did not deliver at deadline")
	}
}

func TestPendingCounts(t *testing.T) {
	fake := Fake(testEpoch)
	timer := fake.AfterFunc(time.Second, func() {})
	fake.AfterFunc(2*time.Second, func() {})
	if fake.Pending() != 2 {
		t.Fatalf("Pending() = %d, want 2", fake.Pending())
	}
	timer.Stop()
	if fake.Pending() != 1 {
		t.Fatalf("Pending() after Stop = %d, want 1", fake.Pending())
	}
}
