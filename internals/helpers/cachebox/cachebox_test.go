// file: internals/helpers/cachebox/cachebox_test.go
package cachebox

import (
	"testing"
	"time"
)

func TestSetGetInvalidate(t *testing.T) {
	b := New(time.Minute)

	if _, ok := b.Get(KeyStudents); ok {
		t.Fatal("empty box returned a value")
	}

	b.Set(KeyStudents, []string{"a"})
	v, ok := b.Get(KeyStudents)
	if !ok {
		t.Fatal("set value not found")
	}
	if got := v.([]string); len(got) != 1 || got[0] != "a" {
		t.Fatalf("got %v", got)
	}

	b.Invalidate(KeyStudents)
	if _, ok := b.Get(KeyStudents); ok {
		t.Fatal("invalidated key still present")
	}
}

func TestInvalidatePrefix(t *testing.T) {
	b := New(time.Minute)

	d1 := time.Date(2026, 9, 7, 0, 0, 0, 0, time.Local)
	d2 := d1.AddDate(0, 0, 1)
	b.Set(DayKey(d1), 1)
	b.Set(DayKey(d2), 2)
	b.Set(KeyGroups, 3)

	b.InvalidatePrefix(KeySessionsPrefix)

	if _, ok := b.Get(DayKey(d1)); ok {
		t.Fatal("session key survived prefix invalidation")
	}
	if _, ok := b.Get(DayKey(d2)); ok {
		t.Fatal("session key survived prefix invalidation")
	}
	if _, ok := b.Get(KeyGroups); !ok {
		t.Fatal("unrelated key was evicted")
	}
}

func TestDayKeyFormat(t *testing.T) {
	d := time.Date(2026, 9, 7, 13, 45, 0, 0, time.Local)
	if got := DayKey(d); got != "sessions:2026-09-07" {
		t.Fatalf("day key = %q", got)
	}
}
