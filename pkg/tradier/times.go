package tradier

import (
	"bytes"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

const (
	// DateLayout is the calendar-date format used in queries and responses.
	DateLayout = "2006-01-02"

	// Time and sales sends exchange-local wall time without a zone.
	timeSalesWireLayout  = "2006-01-02T15:04:05"
	timeSalesQueryLayout = "2006-01-02 15:04"
)

// Date is a calendar date with no time of day, such as an option expiration.
// It is stored as midnight UTC.
type Date struct {
	time.Time
}

// NewDate returns the Date for year, month, day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// UnmarshalJSON accepts "YYYY-MM-DD", null and "".
func (d *Date) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if isEmptyValue(b) {
		*d = Date{}
		return nil
	}
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return errors.Errorf("date: expected a string, got %s", b)
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return err
	}
	*d = Date{t}
	return nil
}

// MarshalJSON writes the date as "YYYY-MM-DD", or null when zero.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(d.Format(DateLayout))), nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// unixMillis converts an epoch-milliseconds field to a UTC time; zero stays
// the zero time.
func unixMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
