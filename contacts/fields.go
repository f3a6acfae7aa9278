package contacts

import (
	"regexp"
	"time"
)

// BirthdayLayout is the [time.Parse] layout of a [Birthday] (DD-MM-YYYY).
const BirthdayLayout = "02-01-2006"

var phonePattern = regexp.MustCompile(`^\d{7,15}$`)

// Name is the unique key of a [Record].
type Name struct{ value string }

func NewName(raw string) (n Name, err error) {
	err = n.Set(raw)
	return n, err
}

// Set replaces the value if it is not empty.
func (n *Name) Set(raw string) error {
	if raw == "" {
		return &FieldError{"name", raw, "must not be empty"}
	}
	n.value = raw
	return nil
}

func (n Name) String() string { return n.value }

// Phone is a phone number made of 7 to 15 digits without separators.
type Phone struct{ value string }

func NewPhone(raw string) (p Phone, err error) {
	err = p.Set(raw)
	return p, err
}

// MustPhone is [NewPhone] but panics on invalid input.
func MustPhone(raw string) Phone {
	p, err := NewPhone(raw)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Phone) Set(raw string) error {
	if !phonePattern.MatchString(raw) {
		return &FieldError{"phone", raw, "must be 7 to 15 digits"}
	}
	p.value = raw
	return nil
}

func (p Phone) String() string     { return p.value }
func (p Phone) Equal(o Phone) bool { return p.value == o.value }

// Birthday is a calendar date rendered as DD-MM-YYYY.
type Birthday struct{ date time.Time }

func NewBirthday(raw string) (b Birthday, err error) {
	err = b.Set(raw)
	return b, err
}

// Set parses raw with [BirthdayLayout]. Impossible dates such as 31-02-2024 are rejected.
func (b *Birthday) Set(raw string) error {
	date, err := time.Parse(BirthdayLayout, raw)
	if err != nil {
		return &FieldError{"birthday", raw, "must be a date formatted as DD-MM-YYYY"}
	}
	b.date = date
	return nil
}

func (b Birthday) String() string        { return b.date.Format(BirthdayLayout) }
func (b Birthday) Equal(o Birthday) bool { return b.date.Equal(o.date) }

// Date returns the birthday at midnight UTC.
func (b Birthday) Date() time.Time { return b.date }

// DaysToBirthday returns the number of whole days from the calendar date of now
// to the next occurrence of the birthday, 0 when it is today.
// A 29 February birthday falls on 1 March in non-leap years.
func (b Birthday) DaysToBirthday(now time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	next := time.Date(today.Year(), b.date.Month(), b.date.Day(), 0, 0, 0, 0, time.UTC)
	if next.Before(today) {
		next = time.Date(today.Year()+1, b.date.Month(), b.date.Day(), 0, 0, 0, 0, time.UTC)
	}
	return int(next.Sub(today) / (24 * time.Hour)) //nolint: mnd // UTC days are 24h
}
