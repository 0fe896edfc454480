package contacts

import (
	"time"

	"github.com/tartampluch/go-contacts/internal/config"
)

// UpcomingBirthday is one entry of the upcoming-birthdays window.
type UpcomingBirthday struct {
	Name string

	// CongratulationDate is the next birthday, moved to Monday when it
	// falls on a weekend.
	CongratulationDate time.Time
}

// Date renders the congratulation date as DD.MM.YYYY.
func (u UpcomingBirthday) Date() string {
	return u.CongratulationDate.Format(config.DateFormatBirthday)
}

// calculateNextOccurrence determines the next birthday date relative to 'now'.
// The result is midnight in now's location.
func calculateNextOccurrence(now time.Time, birthDate time.Time) time.Time {
	loc := now.Location()

	// time.Date normalizes Feb 29 to March 1st if the year is not a leap year.
	candidate := time.Date(now.Year(), birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, loc)
	todayStart := startOfDay(now)

	if candidate.Before(todayStart) {
		candidate = time.Date(now.Year()+1, birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, loc)
	}
	return candidate
}

// adjustForWeekend moves Saturday and Sunday to the following Monday.
func adjustForWeekend(d time.Time) time.Time {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDate(0, 0, 2)
	case time.Sunday:
		return d.AddDate(0, 0, 1)
	default:
		return d
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween counts calendar days from a to b. Local days may last 23 or 25
// hours, so both dates are projected to UTC midnight first.
func daysBetween(a, b time.Time) int {
	from := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}
