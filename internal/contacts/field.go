package contacts

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/tartampluch/go-contacts/internal/config"
)

var validate = validator.New()

// Field is implemented by the validated values a Record is made of.
// Values are only obtainable through their constructors, so a Field in hand
// is always valid.
type Field interface {
	fmt.Stringer
	field()
}

// Name is the display name of a contact and its key in an AddressBook.
type Name struct {
	value string
}

// NewName accepts any string that is not blank. Surrounding whitespace is
// dropped, so the stored name is also the one that reads back from a store.
func NewName(value string) (Name, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Name{}, ErrInvalidName
	}
	return Name{value: value}, nil
}

func (n Name) String() string { return n.value }
func (Name) field()           {}

// Phone is a phone number of exactly 10 decimal digits.
type Phone struct {
	value string
}

// NewPhone validates value and wraps it. Anything other than 10 ASCII digits
// fails with ErrInvalidPhone.
func NewPhone(value string) (Phone, error) {
	if err := validate.Var(value, config.PhoneRule); err != nil {
		return Phone{}, fmt.Errorf("%w: %q", ErrInvalidPhone, value)
	}
	return Phone{value: value}, nil
}

func (p Phone) String() string { return p.value }
func (Phone) field()           {}

// Birthday is a calendar date without time of day.
type Birthday struct {
	date time.Time
}

// NewBirthday parses a DD.MM.YYYY string. Impossible dates such as 30.02.2020
// are rejected with ErrInvalidDate.
func NewBirthday(value string) (Birthday, error) {
	t, err := time.Parse(config.DateFormatBirthday, value)
	if err != nil {
		return Birthday{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return BirthdayFromDate(t), nil
}

// BirthdayFromDate keeps only the calendar date of t.
func BirthdayFromDate(t time.Time) Birthday {
	return Birthday{date: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// Date returns the birth date at midnight UTC.
func (b Birthday) Date() time.Time { return b.date }

func (b Birthday) String() string { return b.date.Format(config.DateFormatBirthday) }
func (Birthday) field()           {}

// joinFields renders fields with their canonical string form.
func joinFields[F Field](fields []F, sep string) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.String()
	}
	return strings.Join(parts, sep)
}
