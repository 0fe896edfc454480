package engine_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/tartampluch/go-contacts/internal/contacts"
	"github.com/tartampluch/go-contacts/internal/engine"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockFetcher simulates the network layer for unit tests using `testify/mock`.
type MockFetcher struct {
	mock.Mock
}

// Fetch implements the engine.VCardFetcher interface.
func (m *MockFetcher) Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error) {
	args := m.Called(ctx, url, user, pass)
	if r := args.Get(0); r != nil {
		return r.(io.ReadCloser), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

func record(t *testing.T, name, birthday string, phones ...string) *contacts.Record {
	t.Helper()
	r, err := contacts.NewRecord(name)
	require.NoError(t, err)
	for _, p := range phones {
		require.NoError(t, r.AddPhone(p))
	}
	if birthday != "" {
		require.NoError(t, r.AddBirthday(birthday))
	}
	return r
}

func phonesOf(r *contacts.Record) []string {
	var out []string
	for _, p := range r.Phones() {
		out = append(out, p.String())
	}
	return out
}

// -----------------------------------------------------------------------------
// Import
// -----------------------------------------------------------------------------

func TestImportConfigFor(t *testing.T) {
	tests := []struct {
		source string
		mode   string
	}{
		{"https://dav.example.com/contacts.vcf", config.SourceModeWeb},
		{"HTTP://dav.example.com/contacts.vcf", config.SourceModeWeb},
		{"contacts.vcf", config.SourceModeLocal},
		{"/home/me/http-backup.vcf", config.SourceModeLocal},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			cfg := engine.ImportConfigFor(tt.source)
			assert.Equal(t, tt.mode, cfg.Mode)
		})
	}
}

func TestImport_Local_Merge(t *testing.T) {
	vcardContent := `BEGIN:VCARD
VERSION:4.0
FN:John
TEL:1111111111
TEL:2222222222
BDAY:1985-01-01
END:VCARD
BEGIN:VCARD
VERSION:4.0
FN:Jane
TEL:3333333333
BDAY:1990-06-12
END:VCARD
BEGIN:VCARD
VERSION:4.0
FN:Unchanged
TEL:4444444444
END:VCARD`

	path := filepath.Join(t.TempDir(), "import.vcf")
	require.NoError(t, os.WriteFile(path, []byte(vcardContent), 0600))

	book := contacts.NewAddressBook()
	book.AddRecord(record(t, "John", "12.06.1980", "1111111111"))
	book.AddRecord(record(t, "Unchanged", "", "4444444444"))

	im := &engine.Importer{}
	stats, err := im.Import(context.Background(), engine.ImportConfigFor(path), book)
	require.NoError(t, err)

	assert.Equal(t, engine.ImportStats{Processed: 3, Added: 1, Merged: 1}, stats)

	john, _ := book.Find("John")
	assert.Equal(t, []string{"1111111111", "2222222222"}, phonesOf(john), "Only missing phones are appended")
	b, _ := john.Birthday()
	assert.Equal(t, "12.06.1980", b.String(), "Existing birthday is never overwritten")

	jane, ok := book.Find("Jane")
	require.True(t, ok)
	b, _ = jane.Birthday()
	assert.Equal(t, "12.06.1990", b.String())

	var names []string
	for _, r := range book.Records() {
		names = append(names, r.Name().String())
	}
	assert.Equal(t, []string{"John", "Unchanged", "Jane"}, names, "New contacts are appended at the end")
}

func TestImport_Web(t *testing.T) {
	vcardContent := "BEGIN:VCARD\nVERSION:3.0\nFN:Remote\nTEL:5555555555\nEND:VCARD"

	mockFetcher := new(MockFetcher)
	mockFetcher.On("Fetch", mock.Anything, "https://dav.example.com/all.vcf", "", "").
		Return(io.NopCloser(strings.NewReader(vcardContent)), nil)

	book := contacts.NewAddressBook()
	im := &engine.Importer{Fetcher: mockFetcher}
	stats, err := im.Import(context.Background(), engine.ImportConfigFor("https://dav.example.com/all.vcf"), book)

	require.NoError(t, err)
	assert.Equal(t, 1, stats.Added)
	_, ok := book.Find("Remote")
	assert.True(t, ok)
	mockFetcher.AssertExpectations(t)
}

func TestImport_Web_NetworkError(t *testing.T) {
	mockFetcher := new(MockFetcher)
	expectedErr := errors.New("network unreachable")
	mockFetcher.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, expectedErr)

	book := contacts.NewAddressBook()
	im := &engine.Importer{Fetcher: mockFetcher}
	stats, err := im.Import(context.Background(), engine.ImportConfig{Mode: config.SourceModeWeb, WebURL: "http://bad-url.com"}, book)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, engine.ImportStats{}, stats)
	assert.Equal(t, 0, book.Len())
}

func TestImport_ConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     engine.ImportConfig
		wantErr string
	}{
		{"Empty local path", engine.ImportConfig{Mode: config.SourceModeLocal}, config.ErrLocalPathEmpty},
		{"Empty URL", engine.ImportConfig{Mode: config.SourceModeWeb}, config.ErrWebURLEmpty},
		{"No fetcher", engine.ImportConfig{Mode: config.SourceModeWeb, WebURL: "http://x"}, config.ErrFetcherMissing},
		{"Unknown mode", engine.ImportConfig{Mode: "ftp"}, config.ErrModeUnsupport},
		{"Missing file", engine.ImportConfig{Mode: config.SourceModeLocal, LocalPath: "/does/not/exist.vcf"}, config.ErrVCardParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := (&engine.Importer{}).Import(context.Background(), tt.cfg, contacts.NewAddressBook())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestImport_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	path := filepath.Join(t.TempDir(), "cancel.vcf")
	require.NoError(t, os.WriteFile(path, []byte("BEGIN:VCARD\nVERSION:4.0\nFN:X\nEND:VCARD"), 0600))

	cancel()

	_, err := (&engine.Importer{}).Import(ctx, engine.ImportConfigFor(path), contacts.NewAddressBook())
	assert.Equal(t, context.Canceled, err, "Should return context canceled error")
}

// -----------------------------------------------------------------------------
// Calendar export
// -----------------------------------------------------------------------------

func TestCalendar_GeneratesYearRange(t *testing.T) {
	book := contacts.NewAddressBook()
	book.AddRecord(record(t, "Range Test", "31.12.1990"))
	book.AddRecord(record(t, "No Birthday", "", "1111111111"))

	exp := &engine.CalendarExporter{Clock: MockClock{CurrentTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}}
	icsData, err := exp.Build(book, "")
	require.NoError(t, err)

	icsStr := string(icsData)
	assert.Contains(t, icsStr, "BEGIN:VCALENDAR")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20241231", "Should include previous year")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20251231", "Should include current year")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20261231", "Should include next year")
	assert.Equal(t, 3, strings.Count(icsStr, "BEGIN:VEVENT"))
	assert.Contains(t, icsStr, "SUMMARY:Birthday: Range Test (35)")
	assert.NotContains(t, icsStr, "BEGIN:VALARM")
}

func TestCalendar_BabyBornThisYear(t *testing.T) {
	book := contacts.NewAddressBook()
	book.AddRecord(record(t, "Baby", "01.05.2025"))

	exp := &engine.CalendarExporter{
		Clock: MockClock{CurrentTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		FormatSummary: func(name string, age int) string {
			if age == 0 {
				return "Birthday: " + name + " (Birth)"
			}
			return "Birthday: " + name + " (+)"
		},
	}

	icsData, err := exp.Build(book, "")
	require.NoError(t, err)

	icsStr := string(icsData)
	assert.NotContains(t, icsStr, "DTSTART;VALUE=DATE:20240501", "Should NOT generate event before birth")
	assert.Contains(t, icsStr, "SUMMARY:Birthday: Baby (Birth)")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20260501")
	assert.Equal(t, 2, strings.Count(icsStr, "BEGIN:VEVENT"))
}

func TestCalendar_WithReminders(t *testing.T) {
	book := contacts.NewAddressBook()
	book.AddRecord(record(t, "Alarm Test", "01.01.1990"))

	exp := &engine.CalendarExporter{Clock: MockClock{CurrentTime: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)}}
	icsData, err := exp.Build(book, "-P1D")
	require.NoError(t, err)

	icsStr := string(icsData)
	assert.Contains(t, icsStr, "BEGIN:VALARM", "ICS should contain an alarm component")
	assert.Contains(t, icsStr, "TRIGGER:-P1D", "Alarm trigger should match configuration")
	assert.Contains(t, icsStr, "ACTION:DISPLAY", "Alarm action should be DISPLAY")
}

func TestCalendar_Empty(t *testing.T) {
	exp := &engine.CalendarExporter{Clock: MockClock{CurrentTime: time.Now()}}
	icsData, err := exp.Build(contacts.NewAddressBook(), "-P1D")
	require.NoError(t, err)
	assert.Equal(t, config.StubVCalendar, string(icsData))
}
