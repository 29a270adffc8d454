// Package timeutil formats share timestamps for CLI output.
package timeutil

import (
	"time"
)

// LocalTimeFormat is used for timestamps in table output.
const LocalTimeFormat = "Mon Jan 2 15:04:05 2006"

// FormatTime renders t in local time, or "-" for the zero time.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(LocalTimeFormat)
}

// FormatUnix renders unix seconds in local time, or "-" for zero.
func FormatUnix(sec uint64) string {
	if sec == 0 {
		return "-"
	}
	return FormatTime(time.Unix(int64(sec), 0))
}

// FormatShort renders t as "Jan _2 15:04" when it falls within the last
// six months and "Jan _2  2006" otherwise, like ls -l.
func FormatShort(t, now time.Time) string {
	if t.IsZero() {
		return "-"
	}
	t = t.Local()
	if now.Sub(t) < 182*24*time.Hour && !t.After(now) {
		return t.Format("Jan _2 15:04")
	}
	return t.Format("Jan _2  2006")
}
