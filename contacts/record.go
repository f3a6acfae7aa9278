package contacts

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Record is one contact: a name, its phones in insertion order and an optional birthday.
type Record struct {
	name     Name
	phones   []Phone
	birthday *Birthday
}

// NewRecord returns a record holding phones without duplicates; the first occurrence wins.
func NewRecord(name Name, phones []Phone, birthday *Birthday) *Record {
	r := &Record{name: name}
	for _, p := range phones {
		r.AddPhone(p)
	}
	if birthday != nil {
		b := *birthday
		r.birthday = &b
	}
	return r
}

func (r *Record) Name() Name { return r.name }

// Phones returns a copy of the phones.
func (r *Record) Phones() []Phone { return slices.Clone(r.phones) }

func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

func (r *Record) indexOf(value string) int {
	return slices.IndexFunc(r.phones, func(p Phone) bool { return p.value == value })
}

func (r *Record) AddPhone(p Phone) Outcome {
	if r.indexOf(p.value) >= 0 {
		return Outcome{AlreadyPresent, fmt.Sprintf("%s present in phonebook", p)}
	}
	r.phones = append(r.phones, p)
	return Outcome{Added, fmt.Sprintf("phone %s added to contact %s", p, r.name)}
}

// ChangePhone replaces the first phone equal to old, keeping its position.
// Replacing with a value held by another entry would duplicate it and is reported as
// [AlreadyPresent].
func (r *Record) ChangePhone(old string, p Phone) Outcome {
	i := r.indexOf(old)
	if i < 0 {
		return Outcome{NotPresent, fmt.Sprintf("%s not present in phonebook", old)}
	}
	if j := r.indexOf(p.value); j >= 0 && j != i {
		return Outcome{AlreadyPresent, fmt.Sprintf("%s present in phonebook", p)}
	}
	r.phones[i] = p
	return Outcome{Changed, fmt.Sprintf("old phone %s changed to %s", old, p)}
}

// SetBirthday replaces the birthday. On error the previous birthday is kept.
func (r *Record) SetBirthday(raw string) error {
	b, err := NewBirthday(raw)
	if err != nil {
		return err
	}
	r.birthday = &b
	return nil
}

func (r *Record) ClearBirthday() { r.birthday = nil }

// BirthdayInfo is a rendered birthday and the days left until its next occurrence.
type BirthdayInfo struct {
	Birthday string
	Days     int
}

func (r *Record) BirthdayInfo(now time.Time) (BirthdayInfo, bool) {
	if r.birthday == nil {
		return BirthdayInfo{}, false
	}
	return BirthdayInfo{r.birthday.String(), r.birthday.DaysToBirthday(now)}, true
}

func (r *Record) String() string {
	var sb strings.Builder
	sb.WriteString(r.name.value)
	sb.WriteString(": [")
	for i, p := range r.phones {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.value)
	}
	sb.WriteString("]")
	if r.birthday != nil {
		sb.WriteString(" (Birthday: ")
		sb.WriteString(r.birthday.String())
		sb.WriteString(")")
	}
	return sb.String()
}

// Equal reports whether both records hold the same name, phones in the same order and birthday.
func (r *Record) Equal(o *Record) bool {
	if r == nil || o == nil {
		return r == o
	}
	if r.name != o.name || !slices.Equal(r.phones, o.phones) {
		return false
	}
	if (r.birthday == nil) != (o.birthday == nil) {
		return false
	}
	return r.birthday == nil || r.birthday.Equal(*o.birthday)
}
