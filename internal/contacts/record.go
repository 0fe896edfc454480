package contacts

import (
	"fmt"
	"time"

	"github.com/tartampluch/go-contacts/internal/config"
)

// Record is one contact: an immutable name, an ordered list of phones and an
// optional birthday.
type Record struct {
	name     Name
	phones   []Phone
	birthday *Birthday
}

// NewRecord creates a record with no phones and no birthday.
func NewRecord(name string) (*Record, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}
	return &Record{name: n}, nil
}

// Name returns the contact name.
func (r *Record) Name() Name { return r.name }

// Phones returns a copy of the phone list in insertion order.
func (r *Record) Phones() []Phone {
	out := make([]Phone, len(r.phones))
	copy(out, r.phones)
	return out
}

// Birthday reports the birthday, if one is set.
func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

// AddPhone validates value and appends it. Duplicates are kept.
func (r *Record) AddPhone(value string) error {
	p, err := NewPhone(value)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// RemovePhone drops the first phone equal to value. Unknown values are ignored.
func (r *Record) RemovePhone(value string) {
	if i := r.indexOf(value); i >= 0 {
		r.phones = append(r.phones[:i], r.phones[i+1:]...)
	}
}

// EditPhone replaces the first phone equal to old with newValue, keeping its
// position. The list is left untouched on any error.
func (r *Record) EditPhone(old, newValue string) error {
	i := r.indexOf(old)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrPhoneNotFound, old)
	}
	p, err := NewPhone(newValue)
	if err != nil {
		return err
	}
	r.phones[i] = p
	return nil
}

// FindPhone returns the first phone equal to value.
func (r *Record) FindPhone(value string) (Phone, bool) {
	if i := r.indexOf(value); i >= 0 {
		return r.phones[i], true
	}
	return Phone{}, false
}

func (r *Record) indexOf(value string) int {
	for i, p := range r.phones {
		if p.value == value {
			return i
		}
	}
	return -1
}

// AddBirthday sets or overwrites the birthday from a DD.MM.YYYY string.
func (r *Record) AddBirthday(value string) error {
	b, err := NewBirthday(value)
	if err != nil {
		return err
	}
	r.birthday = &b
	return nil
}

// SetBirthday sets or overwrites the birthday from an already valid value.
func (r *Record) SetBirthday(b Birthday) {
	r.birthday = &b
}

// DaysToBirthday returns how many days remain until the next birthday,
// counting today as 0. The second result is false when no birthday is set.
// Weekends are not taken into account.
func (r *Record) DaysToBirthday(now time.Time) (int, bool) {
	if r.birthday == nil {
		return 0, false
	}
	next := calculateNextOccurrence(now, r.birthday.date)
	return daysBetween(now, next), true
}

// String renders the record on a single line.
func (r *Record) String() string {
	phones := config.NoPhones
	if len(r.phones) > 0 {
		phones = joinFields(r.phones, config.PhoneSeparator)
	}
	birthday := config.NoBirthday
	if r.birthday != nil {
		birthday = r.birthday.String()
	}
	return fmt.Sprintf(config.FormatRecord, r.name, phones, birthday)
}
