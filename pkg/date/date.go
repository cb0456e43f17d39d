package date

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Layout is the ISO-8601 day layout used on the wire.
const Layout = "2006-01-02"

// Date is a calendar day with no time-of-day or zone component.
// The zero value means "no date".
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date, so New(2024, 1, 32) is February 1st.
func New(year int, month time.Month, day int) Date {
	y, m, d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Date()
	return Date{y, m, d}
}

// Of returns the calendar day of t in t's location.
func Of(t time.Time) Date { return New(t.Date()) }

// Today returns the current local day.
func Today() Date { return Of(time.Now()) }

func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Time returns midnight UTC of d.
func (d Date) Time() time.Time { return d.time() }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// Add returns d shifted by the given number of days.
func (d Date) Add(days int) Date { return New(d.y, d.m, d.d+days) }

func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }
func (d Date) After(x Date) bool  { return d.time().After(x.time()) }
func (d Date) Equal(x Date) bool  { return d == x }

func (d Date) Year() int         { return d.y }
func (d Date) Month() time.Month { return d.m }
func (d Date) Day() int          { return d.d }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.time().Format(Layout)
}

// Parse reads a day from an ISO date, an RFC3339 timestamp, a
// "2006-01-02 15:04:05" timestamp or unix seconds. Any time-of-day is dropped.
func Parse(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, fmt.Errorf("parse date: empty string")
	}
	if t, err := time.Parse(Layout, s); err == nil {
		return Of(t), nil
	}
	for _, layout := range []string{time.RFC3339, time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return Of(t), nil
		}
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return Of(time.Unix(ts, 0).UTC()), nil
	}
	// pandas and JS both emit a day prefix even with odd suffixes
	if len(s) > len(Layout) {
		if t, err := time.Parse(Layout, s[:len(Layout)]); err == nil {
			return Of(t), nil
		}
	}
	return Date{}, fmt.Errorf("parse date %q: unsupported format", s)
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date: %w", err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}
