package chart

import "time"

// Interval is the fixed duration of one candle period.
type Interval int64

const (
	OneSecond      Interval = 1
	FiveSeconds    Interval = 5
	FifteenSeconds Interval = 15
	ThirtySeconds  Interval = 30
	OneMinute      Interval = 60
	FiveMinutes    Interval = 5 * 60
	FifteenMinutes Interval = 15 * 60
	ThirtyMinutes  Interval = 30 * 60
	OneHour        Interval = 60 * 60
	FourHours      Interval = 4 * 60 * 60
	OneDay         Interval = 24 * 60 * 60
)

// Millis returns the interval magnitude in milliseconds, matching candle
// timestamps.
func (i Interval) Millis() int64 {
	return int64(i) * 1000
}

// Duration returns the interval as a time.Duration.
func (i Interval) Duration() time.Duration {
	return time.Duration(i) * time.Second
}

// ParseInterval maps exchange-style interval strings ("1m", "4h", …) to an
// Interval. Unknown strings fall back to OneMinute.
func ParseInterval(s string) Interval {
	switch s {
	case "1s":
		return OneSecond
	case "5s":
		return FiveSeconds
	case "15s":
		return FifteenSeconds
	case "30s":
		return ThirtySeconds
	case "1m":
		return OneMinute
	case "5m":
		return FiveMinutes
	case "15m":
		return FifteenMinutes
	case "30m":
		return ThirtyMinutes
	case "1h":
		return OneHour
	case "4h":
		return FourHours
	case "1d":
		return OneDay
	}
	return OneMinute
}
