// Package codec provides ready-made Revivers for strictjson.Parse.
package codec

import (
	"fmt"
	"strconv"
	"time"

	sj "github.com/reoring/strictjson"
)

// ParseDate parses the ISO-8601 text produced by strictjson.FormatDate,
// including expanded years (±YYYYYY), as well as any RFC3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	if len(s) == 0 || (s[0] != '+' && s[0] != '-') {
		return parseRFC3339(s)
	}
	if len(s) < 8 || s[7] != '-' {
		return time.Time{}, fmt.Errorf("codec: invalid expanded year in %q", s)
	}
	year, err := strconv.Atoi(s[1:7])
	if err != nil {
		return time.Time{}, fmt.Errorf("codec: invalid expanded year in %q: %w", s, err)
	}
	if s[0] == '-' {
		if year == 0 {
			return time.Time{}, fmt.Errorf("codec: -000000 is not a valid year")
		}
		year = -year
	}
	// 2000 is a leap year, so Feb 29 survives the placeholder parse.
	t, err := parseRFC3339("2000" + s[7:])
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(year, t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location()), nil
}

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, fmt.Errorf("codec: invalid RFC3339 time %q: %w", s, err)
	}
	return t, nil
}

// DateReviver turns string members holding a timestamp into Date values.
// Other strings are returned unchanged.
func DateReviver() sj.Reviver {
	return func(_ string, v sj.Value) sj.Value {
		if v.Kind() != sj.KindString || !looksLikeDate(v.AsString()) {
			return v
		}
		t, err := ParseDate(v.AsString())
		if err != nil {
			return v
		}
		return sj.Date(t)
	}
}

// looksLikeDate rejects most strings before the full parse.
func looksLikeDate(s string) bool {
	if len(s) > 3 && (s[0] == '+' || s[0] == '-') {
		s = s[3:]
	}
	return len(s) >= 17 && s[4] == '-' && s[7] == '-' && s[10] == 'T'
}
