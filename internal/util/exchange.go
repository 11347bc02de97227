package util

import (
	"sync"
	"time"
	_ "time/tzdata" // Exchange zone must resolve on hosts without zoneinfo.
)

// ExchangeZone is the IANA zone US equity and option sessions are quoted in.
const ExchangeZone = "America/New_York"

var exchangeLocation = sync.OnceValue(func() *time.Location {
	loc, err := time.LoadLocation(ExchangeZone)
	if err != nil {
		panic("loading " + ExchangeZone + ": " + err.Error())
	}
	return loc
})

// ExchangeLocation returns the exchange time zone.
func ExchangeLocation() *time.Location {
	return exchangeLocation()
}

// ToExchange returns t expressed in exchange-local time.
func ToExchange(t time.Time) time.Time {
	return t.In(exchangeLocation())
}

// FromExchange interprets the wall clock fields of wall (its location is
// ignored) as exchange-local time and returns the corresponding UTC instant.
// Wall times inside a DST gap or overlap resolve the way time.Date does.
func FromExchange(wall time.Time) time.Time {
	return time.Date(wall.Year(), wall.Month(), wall.Day(),
		wall.Hour(), wall.Minute(), wall.Second(), wall.Nanosecond(),
		exchangeLocation()).UTC()
}

// ParseExchange parses value with layout as exchange-local wall time and
// returns the UTC instant.
func ParseExchange(layout, value string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, value, exchangeLocation())
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
