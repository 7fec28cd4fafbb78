package scenario

import (
	"fmt"
	"strings"
	"time"

	"github.com/smil-anim/timing-go/pkg/timing"
)

// ParseTime parses a document time: "indefinite", "unresolved", or a Go
// duration offset from document begin ("2.5s", "-1s").
func ParseTime(s string) (timing.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "indefinite":
		return timing.Indefinite, nil
	case "unresolved":
		return timing.Unresolved, nil
	case "":
		return 0, fmt.Errorf("empty time")
	}
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return timing.FromDuration(d), nil
}

// ParseTimes parses a list of document times.
func ParseTimes(ss []string) ([]timing.Time, error) {
	out := make([]timing.Time, 0, len(ss))
	for _, s := range ss {
		t, err := ParseTime(s)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// parseOffset parses an optional offset; empty means zero.
func parseOffset(s string) (time.Duration, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid offset %q: %w", s, err)
	}
	return d, nil
}

// parseWallclock parses an RFC 3339 instant or an offset from origin.
func parseWallclock(s string, origin time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid wallclock instant %q", s)
	}
	return origin.Add(d), nil
}

// parseKey parses a single-character access key.
func parseKey(s string) (rune, error) {
	r := []rune(s)
	if len(r) != 1 {
		return 0, fmt.Errorf("access key must be one character, got %q", s)
	}
	return r[0], nil
}

// FormatTimes renders document times as a bracketed list.
func FormatTimes(ts []timing.Time) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
