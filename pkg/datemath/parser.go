// Package datemath resolves relative day expressions such as "yesterday",
// "3 days ago" or "next friday" against a reference time.
package datemath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var offsetRe = regexp.MustCompile(`^(?:in (\d+) (days?|weeks?|months?)|(\d+) (days?|weeks?|months?) ago)$`)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Parser resolves expressions in a fixed location.
type Parser struct {
	location *time.Location
}

// NewParser creates a parser for the given IANA timezone. An empty name
// means the local timezone.
func NewParser(timezone string) (*Parser, error) {
	if timezone == "" {
		return &Parser{location: time.Local}, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Parser{location: loc}, nil
}

// Resolve returns the start of the day that expr designates relative to base.
// ok is false when expr is not a relative expression; callers keep such
// strings as they are.
func (p *Parser) Resolve(expr string, base time.Time) (t time.Time, ok bool) {
	expr = strings.Join(strings.Fields(strings.ToLower(expr)), " ")

	switch expr {
	case "today", "now":
		return p.startOfDay(base), true
	case "tomorrow":
		return p.startOfDay(base.AddDate(0, 0, 1)), true
	case "yesterday":
		return p.startOfDay(base.AddDate(0, 0, -1)), true
	}

	if m := offsetRe.FindStringSubmatch(expr); m != nil {
		amount, unit, sign := m[1], m[2], 1
		if amount == "" {
			amount, unit, sign = m[3], m[4], -1
		}
		n, err := strconv.Atoi(amount)
		if err != nil {
			return time.Time{}, false
		}
		return p.startOfDay(shift(base, unit, sign*n)), true
	}

	if name, ok := strings.CutPrefix(expr, "next "); ok {
		return p.weekday(base, name, 1)
	}
	if name, ok := strings.CutPrefix(expr, "last "); ok {
		return p.weekday(base, name, -1)
	}

	return time.Time{}, false
}

func shift(base time.Time, unit string, n int) time.Time {
	switch {
	case strings.HasPrefix(unit, "week"):
		return base.AddDate(0, 0, 7*n)
	case strings.HasPrefix(unit, "month"):
		return base.AddDate(0, n, 0)
	default:
		return base.AddDate(0, 0, n)
	}
}

// weekday finds the closest named weekday strictly after (dir 1) or before
// (dir -1) base.
func (p *Parser) weekday(base time.Time, name string, dir int) (time.Time, bool) {
	target, ok := weekdays[name]
	if !ok {
		return time.Time{}, false
	}
	current := base.In(p.location).Weekday()
	days := dir * int(target-current)
	if days <= 0 {
		days += 7
	}
	return p.startOfDay(base.AddDate(0, 0, dir*days)), true
}

func (p *Parser) startOfDay(t time.Time) time.Time {
	t = t.In(p.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.location)
}
