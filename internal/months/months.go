// Package months works with "YYYY-MM" month values.
package months

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"
)

// DefaultTimezone is where "the current month" is computed.
const DefaultTimezone = "America/Bahia"

// DefaultMonthsBack is how far back the month picker reaches.
const DefaultMonthsBack = 24

var ErrInvalidMonth = errors.New("invalid month, expected YYYY-MM")

var monthPattern = regexp.MustCompile(`^(\d{4})-(\d{2})$`)

var labels = [12]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

type Month struct {
	Year  int
	Month time.Month
}

// Parse reads "YYYY-MM", surrounding spaces allowed.
func Parse(s string) (Month, error) {
	m := monthPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Month{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 {
		return Month{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	return Month{Year: year, Month: time.Month(month)}, nil
}

// Valid reports whether s parses.
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

func (m Month) index() int {
	return m.Year*12 + int(m.Month) - 1
}

func fromIndex(i int) Month {
	return Month{Year: i / 12, Month: time.Month(i%12 + 1)}
}

// Add moves m by delta months.
func (m Month) Add(delta int) Month {
	return fromIndex(m.index() + delta)
}

// Shift moves s by delta months. Unparseable input is returned unchanged.
func Shift(s string, delta int) string {
	m, err := Parse(s)
	if err != nil {
		return s
	}
	return m.Add(delta).String()
}

// InRange reports whether start <= v <= end. Any unparseable argument gives
// false.
func InRange(v, start, end string) bool {
	mv, err1 := Parse(v)
	ms, err2 := Parse(start)
	me, err3 := Parse(end)
	if err1 != nil || err2 != nil || err3 != nil {
		return false
	}
	return mv.index() >= ms.index() && mv.index() <= me.index()
}

// List returns the months from end down to start, both included. It is
// empty when either bound is invalid or start is after end.
func List(start, end string) []string {
	ms, err1 := Parse(start)
	me, err2 := Parse(end)
	if err1 != nil || err2 != nil || ms.index() > me.index() {
		return []string{}
	}
	out := make([]string, 0, me.index()-ms.index()+1)
	for i := me.index(); i >= ms.index(); i-- {
		out = append(out, fromIndex(i).String())
	}
	return out
}

// Label renders "2024-03" as "Março 2024". Unparseable input is returned
// unchanged.
func Label(s string) string {
	m, err := Parse(s)
	if err != nil {
		return s
	}
	return fmt.Sprintf("%s %d", labels[m.Month-1], m.Year)
}

// At returns the month containing t in loc.
func At(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return Month{Year: t.Year(), Month: t.Month()}.String()
}

// Current returns the current month in the named timezone ("" means
// DefaultTimezone). An unknown zone falls back to UTC.
func Current(tz string) string {
	return At(time.Now(), Location(tz))
}

// Location loads tz, defaulting to DefaultTimezone and falling back to UTC.
func Location(tz string) *time.Location {
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DefaultRange returns (end - back, end). back <= 0 means DefaultMonthsBack.
func DefaultRange(end string, back int) (string, string) {
	if back <= 0 {
		back = DefaultMonthsBack
	}
	return Shift(end, -back), end
}

// ToRange returns the first and last day of month as YYYY-MM-DD.
func ToRange(month string) (from, to string, err error) {
	m, err := Parse(month)
	if err != nil {
		return "", "", err
	}
	first := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.Format(time.DateOnly), last.Format(time.DateOnly), nil
}

// Key returns the YYYY-MM prefix of a month or date string, or "" when s is
// too short.
func Key(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 7 {
		return ""
	}
	return s[:7]
}
