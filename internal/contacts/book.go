package contacts

import (
	"log/slog"
	"strings"
	"time"

	"github.com/tartampluch/go-contacts/internal/config"
)

// AddressBook is a collection of records keyed by name. Listing follows
// insertion order.
type AddressBook struct {
	records map[string]*Record
	order   []string
}

// NewAddressBook returns an empty book.
func NewAddressBook() *AddressBook {
	return &AddressBook{records: make(map[string]*Record)}
}

// AddRecord stores r under its name. A record with the same name is replaced
// and the entry keeps its place in the listing.
func (b *AddressBook) AddRecord(r *Record) {
	key := r.Name().String()
	if _, exists := b.records[key]; !exists {
		b.order = append(b.order, key)
	}
	b.records[key] = r
}

// Find looks a record up by exact name.
func (b *AddressBook) Find(name string) (*Record, bool) {
	r, ok := b.records[name]
	return r, ok
}

// Get is Find for callers that treat a missing contact as an error.
// The error is a *NotFoundError.
func (b *AddressBook) Get(name string) (*Record, error) {
	r, ok := b.records[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return r, nil
}

// Delete removes the record called name, if any.
func (b *AddressBook) Delete(name string) {
	if _, ok := b.records[name]; !ok {
		return
	}
	delete(b.records, name)
	for i, key := range b.order {
		if key == name {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of records.
func (b *AddressBook) Len() int { return len(b.order) }

// Records returns the records in insertion order.
func (b *AddressBook) Records() []*Record {
	out := make([]*Record, 0, len(b.order))
	for _, key := range b.order {
		out = append(out, b.records[key])
	}
	return out
}

// UpcomingBirthdays lists the contacts to congratulate within the next days
// days, today included. Weekend birthdays are moved to the following Monday
// before the window check. Results follow book order.
func (b *AddressBook) UpcomingBirthdays(now time.Time, days int) []UpcomingBirthday {
	var upcoming []UpcomingBirthday
	today := 0

	for _, r := range b.Records() {
		if r.birthday == nil {
			continue
		}

		next := adjustForWeekend(calculateNextOccurrence(now, r.birthday.date))
		diff := daysBetween(now, next)
		if diff < 0 || diff > days {
			continue
		}
		if diff == 0 {
			today++
		}

		upcoming = append(upcoming, UpcomingBirthday{
			Name:               r.name.String(),
			CongratulationDate: next,
		})
	}

	slog.Debug(config.MsgUpcomingDone,
		config.LogKeyComponent, config.CompBook,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyRecords, b.Len()),
			slog.Int(config.LogKeyFound, len(upcoming)),
			slog.Int(config.LogKeyToday, today),
		),
	)
	return upcoming
}

// String renders one record per line, or a notice when the book is empty.
func (b *AddressBook) String() string {
	if b.Len() == 0 {
		return config.BookEmpty
	}
	lines := make([]string, 0, b.Len())
	for _, r := range b.Records() {
		lines = append(lines, r.String())
	}
	return strings.Join(lines, config.RecordSeparator)
}
