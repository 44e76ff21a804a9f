package core

import (
	"testing"
	"time"
)

func TestEditWindowBoundaries(t *testing.T) {
	w := NewEditWindow()
	created := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		elapsed time.Duration
		want    bool
	}{
		{"at creation", 0, true},
		{"one second in", time.Second, true},
		{"last millisecond", 299999 * time.Millisecond, true},
		{"exactly five minutes", 300000 * time.Millisecond, false},
		{"well past", time.Hour, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := w.CanModify(created, created.Add(tc.elapsed))
			if got != tc.want {
				t.Fatalf("CanModify at +%v = %v, want %v", tc.elapsed, got, tc.want)
			}
		})
	}
}

func TestEditWindowClockSkew(t *testing.T) {
	w := NewEditWindow()
	created := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	// now before createdAt: stay editable rather than locking out
	if !w.CanModify(created, created.Add(-time.Minute)) {
		t.Fatal("negative elapsed should remain editable")
	}
	if got := w.Remaining(created, created.Add(-time.Minute)); got != DefaultEditWindow {
		t.Fatalf("Remaining with skew = %v, want full window", got)
	}
}

func TestEditWindowRemaining(t *testing.T) {
	w := NewEditWindow()
	created := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)

	if got := w.Remaining(created, created.Add(2*time.Minute)); got != 3*time.Minute {
		t.Fatalf("Remaining = %v, want 3m", got)
	}
	if got := w.Remaining(created, created.Add(10*time.Minute)); got != 0 {
		t.Fatalf("Remaining past window = %v, want 0", got)
	}
}

func TestEditWindowCustomDuration(t *testing.T) {
	w := EditWindow{Window: time.Minute}
	created := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	if !w.CanModify(created, created.Add(59*time.Second)) {
		t.Fatal("59s should be inside a 1m window")
	}
	if w.CanModify(created, created.Add(time.Minute)) {
		t.Fatal("60s should be outside a 1m window")
	}
}
