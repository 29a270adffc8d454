package types

import "time"

// Windows FILETIME epoch: January 1, 1601 UTC
// Difference from Unix epoch (January 1, 1970) in 100-nanosecond intervals
const filetimeUnixDiff = 116444736000000000

const (
	ticksPerSecond = 10_000_000

	// Seconds between 1601-01-01 and 1970-01-01.
	epochDeltaSeconds = 11_644_473_600
)

// TimeToFiletime converts Go time.Time to Windows FILETIME
// FILETIME is a 64-bit value representing the number of 100-nanosecond intervals
// since January 1, 1601 UTC
func TimeToFiletime(t time.Time) uint64 {
	if t.IsZero() {
		return 0
	}
	return uint64(t.UnixNano()/100) + filetimeUnixDiff
}

// FiletimeToTime converts Windows FILETIME to Go time.Time
func FiletimeToTime(ft uint64) time.Time {
	if ft == 0 || ft < filetimeUnixDiff {
		return time.Time{}
	}
	nsec := int64(ft-filetimeUnixDiff) * 100
	return time.Unix(0, nsec)
}

// FiletimeToUnixSeconds converts a FILETIME to whole unix seconds.
//
// Zero means "unknown" and maps to 0, as does any instant before the unix
// epoch. Sub-second ticks are truncated.
func FiletimeToUnixSeconds(ft uint64) uint64 {
	if ft == 0 {
		return 0
	}
	secs := ft / ticksPerSecond
	if secs < epochDeltaSeconds {
		return 0
	}
	return secs - epochDeltaSeconds
}
