package types

import (
	"testing"
	"time"
)

// ===== FILETIME Conversion Tests =====

func TestFiletimeToUnixSeconds(t *testing.T) {
	tests := []struct {
		name string
		in   uint64
		want uint64
	}{
		{"zero is unknown", 0, 0},
		{"unix epoch", filetimeUnixDiff, 0},
		{"one second after epoch", filetimeUnixDiff + ticksPerSecond, 1},
		{"sub-second truncates", filetimeUnixDiff + ticksPerSecond + ticksPerSecond/2, 1},
		{"before unix epoch saturates", filetimeUnixDiff - ticksPerSecond, 0},
		{"one tick", 1, 0},
		{"2024-01-01", TimeToFiletime(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)), 1704067200},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FiletimeToUnixSeconds(tc.in); got != tc.want {
				t.Errorf("FiletimeToUnixSeconds(%d) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}

func TestFiletimeRoundTrip(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 30, 45, 123456700, time.UTC)

	ft := TimeToFiletime(now)
	back := FiletimeToTime(ft)

	if !back.Equal(now) {
		t.Errorf("round trip mismatch: got %v, want %v", back, now)
	}
}

func TestFiletimeZeroValues(t *testing.T) {
	if TimeToFiletime(time.Time{}) != 0 {
		t.Error("zero time should encode as 0")
	}
	if !FiletimeToTime(0).IsZero() {
		t.Error("FILETIME 0 should decode as zero time")
	}
	if !FiletimeToTime(filetimeUnixDiff - 1).IsZero() {
		t.Error("pre-epoch FILETIME should decode as zero time")
	}
}
