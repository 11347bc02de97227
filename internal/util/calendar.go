package util

import "time"

// Regular session hours, exchange-local.
const (
	sessionOpenHour    = 9
	sessionOpenMinute  = 30
	sessionCloseHour   = 16
	sessionCloseMinute = 0
)

// RegularSession returns the UTC open and close of the regular session on
// the exchange-local calendar day containing t. Holidays are not known; a
// weekend day still yields its nominal hours, so check IsWeekday first.
func RegularSession(t time.Time) (open, close time.Time) {
	day := ToExchange(t)
	loc := ExchangeLocation()
	open = time.Date(day.Year(), day.Month(), day.Day(), sessionOpenHour, sessionOpenMinute, 0, 0, loc)
	close = time.Date(day.Year(), day.Month(), day.Day(), sessionCloseHour, sessionCloseMinute, 0, 0, loc)
	return open.UTC(), close.UTC()
}

// IsWeekday reports whether t falls on Monday through Friday in exchange
// time.
func IsWeekday(t time.Time) bool {
	switch ToExchange(t).Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return true
}

// InRegularSession reports whether t is within the regular session of a
// weekday. The close instant itself is outside the session.
func InRegularSession(t time.Time) bool {
	if !IsWeekday(t) {
		return false
	}
	open, close := RegularSession(t)
	return !t.Before(open) && t.Before(close)
}

// ParseSessionDay parses a "2006-01-02" date as an exchange-local calendar
// day and returns its midnight in UTC.
func ParseSessionDay(s string) (time.Time, error) {
	return ParseExchange("2006-01-02", s)
}
