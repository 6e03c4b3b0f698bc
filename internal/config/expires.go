package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var expiresUnits = map[string]time.Duration{
	"ms":      time.Millisecond,
	"s":       time.Second,
	"sec":     time.Second,
	"secs":    time.Second,
	"second":  time.Second,
	"seconds": time.Second,
	"m":       time.Minute,
	"min":     time.Minute,
	"mins":    time.Minute,
	"minute":  time.Minute,
	"minutes": time.Minute,
	"h":       time.Hour,
	"hr":      time.Hour,
	"hrs":     time.Hour,
	"hour":    time.Hour,
	"hours":   time.Hour,
	"d":       24 * time.Hour,
	"day":     24 * time.Hour,
	"days":    24 * time.Hour,
	"w":       7 * 24 * time.Hour,
	"week":    7 * 24 * time.Hour,
	"weeks":   7 * 24 * time.Hour,
	"y":       365 * 24 * time.Hour,
	"year":    365 * 24 * time.Hour,
	"years":   365 * 24 * time.Hour,
}

// ParseExpiresIn parses a token lifetime such as "3600", "90s", "15m", "2h", "7d" or "1 week".
// A bare number is a count of seconds.
func ParseExpiresIn(value string) (time.Duration, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return 0, fmt.Errorf("empty duration")
	}

	if seconds, err := strconv.ParseFloat(value, 64); err == nil {
		if seconds <= 0 {
			return 0, fmt.Errorf("duration must be positive: %s", value)
		}
		return time.Duration(seconds * float64(time.Second)), nil
	}

	split := strings.IndexFunc(value, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.'
	})
	if split <= 0 {
		return 0, fmt.Errorf("invalid duration: %s", value)
	}

	amount, err := strconv.ParseFloat(value[:split], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration: %s", value)
	}
	unit, ok := expiresUnits[strings.TrimSpace(value[split:])]
	if !ok {
		return 0, fmt.Errorf("unknown duration unit in %s", value)
	}
	if amount <= 0 {
		return 0, fmt.Errorf("duration must be positive: %s", value)
	}
	return time.Duration(amount * float64(unit)), nil
}
