package utils

import "time"

const (
	layoutDate     = "2006-01-02"
	layoutDateTime = "2006-01-02 15:04"
)

// NowUTC returns current time in UTC, truncated to milliseconds to match
// DATETIME(3) columns.
func NowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// FormatDate formats t as YYYY-MM-DD in loc (local time when nil).
func FormatDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(layoutDate)
}

// FormatDateTime formats t as "YYYY-MM-DD HH:MM" in loc (local time when nil).
func FormatDateTime(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(layoutDateTime)
}

// Countdown splits the time left until target into whole units.
type Countdown struct {
	Days    int  `json:"days"`
	Hours   int  `json:"hours"`
	Minutes int  `json:"minutes"`
	Seconds int  `json:"seconds"`
	Passed  bool `json:"passed"`
}

func CountdownUntil(now, target time.Time) Countdown {
	d := target.Sub(now)
	if d <= 0 {
		return Countdown{Passed: true}
	}
	total := int(d / time.Second)
	return Countdown{
		Days:    total / 86400,
		Hours:   total % 86400 / 3600,
		Minutes: total % 3600 / 60,
		Seconds: total % 60,
	}
}
