package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/tartampluch/go-contacts/internal/contacts"
)

// DecodeStats summarises a decoding pass.
type DecodeStats struct {
	Processed int
	Skipped   int
}

// EncodeBook writes the whole book as a vCard stream, one card per record in
// book order.
func EncodeBook(w io.Writer, book *contacts.AddressBook) error {
	enc := vcard.NewEncoder(w)
	for _, r := range book.Records() {
		if err := enc.Encode(recordToCard(r)); err != nil {
			return fmt.Errorf("%s: %w", config.ErrCardEncode, err)
		}
	}
	return nil
}

func recordToCard(r *contacts.Record) vcard.Card {
	card := make(vcard.Card)
	card.SetValue(config.VCardVER, config.VCardVersion)
	card.SetValue(config.VCardFN, r.Name().String())
	for _, p := range r.Phones() {
		card.AddValue(config.VCardTEL, p.String())
	}
	if b, ok := r.Birthday(); ok {
		card.SetValue(config.VCardBDAY, b.Date().Format(config.DateFormatFullDash))
	}
	return card
}

// DecodeCards reads every card of r and converts it into a record.
//
// In lenient mode, cards without a usable name are skipped, as are phone
// numbers and birthdays that do not validate, and a card that cannot be
// parsed is skipped with a warning. Strict mode accepts none of that: any
// line that is not a vCard property, any unparsable card or invalid field,
// and non-blank content holding no card fail with ErrMalformed.
// Read failures of r always abort with ErrIO.
func DecodeCards(ctx context.Context, r io.Reader, strict bool) ([]*contacts.Record, DecodeStats, error) {
	tr := &trackingReader{r: r}
	var stats DecodeStats
	var records []*contacts.Record

	var src io.Reader = tr
	hasContent := false
	if strict {
		data, err := io.ReadAll(tr)
		if err != nil {
			return nil, stats, fmt.Errorf("%w: %w", ErrIO, err)
		}
		if err := checkPropertyLines(data); err != nil {
			return nil, stats, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		hasContent = len(bytes.TrimSpace(data)) > 0
		src = bytes.NewReader(data)
	}
	decoder := vcard.NewDecoder(src)

	for {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if tr.err != nil {
			return nil, stats, fmt.Errorf("%w: %w", ErrIO, tr.err)
		}
		if err != nil {
			if strict {
				return nil, stats, fmt.Errorf("%w: %w", ErrMalformed, err)
			}
			// Log error but continue to next card to maximize data recovery
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompStorage,
				config.LogKeyError, err)
			stats.Skipped++
			continue
		}

		stats.Processed++
		rec, err := cardToRecord(card, strict)
		if err != nil {
			if strict {
				return nil, stats, fmt.Errorf("%w: %w", ErrMalformed, err)
			}
			stats.Skipped++
			continue
		}
		records = append(records, rec)
	}

	if strict && hasContent && stats.Processed == 0 {
		return nil, stats, fmt.Errorf("%w: %s", ErrMalformed, config.ErrCardNone)
	}
	return records, stats, nil
}

// checkPropertyLines rejects content with a line that is neither blank, a
// folded continuation nor a "name:value" property. The vCard decoder ends
// the stream on such lines instead of failing.
func checkPropertyLines(data []byte) error {
	for i, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimRight(line, "\r")
		if len(bytes.TrimSpace(line)) == 0 || line[0] == ' ' || line[0] == '\t' {
			continue
		}
		if !bytes.Contains(line, []byte(":")) {
			return fmt.Errorf("%s: %d", config.ErrCardBadLine, i+1)
		}
	}
	return nil
}

// cardToRecord maps a vCard to a record. A card without a name is an error.
// Invalid phones and birthdays are dropped, or reported when strict.
func cardToRecord(card vcard.Card, strict bool) (*contacts.Record, error) {
	// Name Strategy: FN (Formatted) > N (Structured)
	name := strings.TrimSpace(card.Value(config.VCardFN))
	if name == "" {
		if n := card.Name(); n != nil {
			name = strings.TrimSpace(strings.Join([]string{n.GivenName, n.FamilyName}, " "))
		}
	}

	rec, err := contacts.NewRecord(name)
	if err != nil {
		slog.Debug(config.MsgSkippedName, config.LogKeyComponent, config.CompStorage)
		return nil, fmt.Errorf("%s: %w", config.ErrCardNoName, err)
	}

	for _, tel := range card.Values(config.VCardTEL) {
		if err := rec.AddPhone(normalizePhone(tel)); err != nil {
			if strict {
				return nil, fmt.Errorf("%s: %w", config.ErrCardPhone, err)
			}
			slog.Debug(config.MsgSkippedPhone,
				config.LogKeyComponent, config.CompStorage,
				config.LogKeyName, name,
				config.LogKeyValue, tel)
		}
	}

	if bday := card.Value(config.VCardBDAY); bday != "" {
		birthDate, err := parseDate(bday)
		switch {
		case err != nil && strict:
			return nil, fmt.Errorf("%s: %q: %w", config.ErrCardDate, bday, err)
		case err != nil:
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompStorage,
				config.LogKeyName, name,
				config.LogKeyValue, bday)
		default:
			rec.SetBirthday(contacts.BirthdayFromDate(birthDate))
		}
	}

	return rec, nil
}

// normalizePhone strips the vCard 4 "tel:" URI scheme and common separators.
func normalizePhone(value string) string {
	value = strings.TrimPrefix(strings.TrimSpace(value), "tel:")
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '.', '(', ')':
			return -1
		}
		return r
	}, value)
}

// parseDate handles the full-date vCard layouts. Truncated dates (--MM-DD)
// are rejected because a birthday needs a year.
func parseDate(value string) (time.Time, error) {
	formats := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}

	for _, f := range formats {
		if t, err := time.Parse(f, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New(config.ErrDateParse)
}

// trackingReader remembers the first read failure of the underlying reader so
// it can be told apart from a vCard syntax error.
type trackingReader struct {
	r   io.Reader
	err error
}

func (t *trackingReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) && t.err == nil {
		t.err = err
	}
	return n, err
}
