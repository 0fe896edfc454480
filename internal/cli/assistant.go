package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/tartampluch/go-contacts/internal/contacts"
	"github.com/tartampluch/go-contacts/internal/engine"
	"github.com/tartampluch/go-contacts/internal/storage"
)

// command is a verb handler with the number of arguments it requires.
type command struct {
	minArgs int
	run     func(ctx context.Context, args []string) (string, error)
}

// Assistant is the command façade over an address book. It turns command
// lines into replies and never prints by itself.
type Assistant struct {
	Book     *contacts.AddressBook
	Store    *storage.Store
	Clock    contacts.Clock
	Importer *engine.Importer
	Settings config.Settings

	// I18n
	I18nBundle         *i18n.Bundle
	Localizer          *i18n.Localizer
	SupportedLanguages []string

	commands map[string]command
}

// NewAssistant wires an assistant around a loaded book and its store.
func NewAssistant(book *contacts.AddressBook, store *storage.Store, settings config.Settings, fetcher engine.VCardFetcher) *Assistant {
	a := &Assistant{
		Book:     book,
		Store:    store,
		Clock:    contacts.RealClock{},
		Importer: &engine.Importer{Fetcher: fetcher},
		Settings: settings,
	}
	a.registerCommands()
	a.SetupI18n()
	return a
}

func (a *Assistant) registerCommands() {
	a.commands = map[string]command{
		config.CmdHello:          {0, a.hello},
		config.CmdHelp:           {0, a.help},
		config.CmdAdd:            {2, a.addContact},
		config.CmdChange:         {3, a.changeContact},
		config.CmdRemovePhone:    {2, a.removePhone},
		config.CmdPhone:          {1, a.showPhone},
		config.CmdAll:            {0, a.showAll},
		config.CmdDelete:         {1, a.deleteContact},
		config.CmdAddBirthday:    {2, a.addBirthday},
		config.CmdShowBirthday:   {1, a.showBirthday},
		config.CmdDaysToBirthday: {1, a.daysToBirthday},
		config.CmdBirthdays:      {0, a.birthdays},
		config.CmdSave:           {0, a.save},
		config.CmdImport:         {1, a.importCards},
		config.CmdExportCalendar: {1, a.exportCalendar},
	}
}

// parseInput splits a line on whitespace and lower-cases the verb.
func parseInput(line string) (string, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}

// Handle executes one command line. quit is true once the session is over.
// Failures are rendered into the reply and never end the session.
func (a *Assistant) Handle(ctx context.Context, line string) (reply string, quit bool) {
	verb, args := parseInput(line)
	if verb == "" {
		return "", false
	}

	log := slog.With(config.LogKeyComponent, config.CompCLI, config.LogKeyCommand, verb)
	log.Debug(config.MsgCommand, slog.Int(config.LogKeyArgs, len(args)))

	if verb == config.CmdClose || verb == config.CmdExit {
		return a.shutdown(), true
	}

	cmd, ok := a.commands[verb]
	if !ok {
		return a.GetMsg(config.TKeyUnknownCmd, nil), false
	}

	if len(args) < cmd.minArgs {
		log.Warn(config.MsgCommandFailed, config.LogKeyError, ErrMissingArguments)
		return a.renderError(ErrMissingArguments), false
	}

	out, err := cmd.run(ctx, args)
	if err != nil {
		log.Warn(config.MsgCommandFailed, config.LogKeyError, err)
		return a.renderError(err), false
	}
	return out, false
}

// shutdown saves the book and returns the parting line.
func (a *Assistant) shutdown() string {
	if err := a.Store.Save(a.Book); err != nil {
		slog.Error(config.MsgCommandFailed,
			config.LogKeyComponent, config.CompCLI,
			config.LogKeyError, err,
		)
		return a.renderError(err) + "\n" + a.GetMsg(config.TKeyFarewell, nil)
	}
	return a.GetMsg(config.TKeyGoodbye, nil)
}

func (a *Assistant) hello(context.Context, []string) (string, error) {
	return a.GetMsg(config.TKeyHello, nil), nil
}

func (a *Assistant) help(context.Context, []string) (string, error) {
	return a.GetMsg(config.TKeyHelp, nil), nil
}

// addContact creates the record when absent, else appends the phone.
// The phone is validated before anything is inserted.
func (a *Assistant) addContact(_ context.Context, args []string) (string, error) {
	name, phone := args[0], args[1]
	if _, err := contacts.NewPhone(phone); err != nil {
		return "", err
	}

	data := map[string]any{"Name": name, "Phone": phone}

	if r, ok := a.Book.Find(name); ok {
		if err := r.AddPhone(phone); err != nil {
			return "", err
		}
		return a.GetMsg(config.TKeyPhoneAdded, data), nil
	}

	r, err := contacts.NewRecord(name)
	if err != nil {
		return "", err
	}
	if err := r.AddPhone(phone); err != nil {
		return "", err
	}
	a.Book.AddRecord(r)
	return a.GetMsg(config.TKeyContactAdded, data), nil
}

func (a *Assistant) changeContact(_ context.Context, args []string) (string, error) {
	name, oldPhone, newPhone := args[0], args[1], args[2]
	r, err := a.Book.Get(name)
	if err != nil {
		return "", err
	}
	if err := r.EditPhone(oldPhone, newPhone); err != nil {
		return "", err
	}
	return a.GetMsg(config.TKeyPhoneChanged, map[string]any{
		"Name": name,
		"Old":  oldPhone,
		"New":  newPhone,
	}), nil
}

func (a *Assistant) removePhone(_ context.Context, args []string) (string, error) {
	name, phone := args[0], args[1]
	r, err := a.Book.Get(name)
	if err != nil {
		return "", err
	}
	if _, found := r.FindPhone(phone); !found {
		return "", contacts.ErrPhoneNotFound
	}
	r.RemovePhone(phone)
	return a.GetMsg(config.TKeyPhoneRemoved, map[string]any{"Name": name, "Phone": phone}), nil
}

func (a *Assistant) showPhone(_ context.Context, args []string) (string, error) {
	name := args[0]
	r, err := a.Book.Get(name)
	if err != nil {
		return "", err
	}

	phones := r.Phones()
	if len(phones) == 0 {
		return a.GetMsg(config.TKeyNoPhones, map[string]any{"Name": name}), nil
	}

	values := make([]string, 0, len(phones))
	for _, p := range phones {
		values = append(values, p.String())
	}
	return a.GetMsg(config.TKeyPhoneList, map[string]any{
		"Name":   name,
		"Phones": strings.Join(values, config.PhoneListJoin),
	}), nil
}

func (a *Assistant) showAll(context.Context, []string) (string, error) {
	if a.Book.Len() == 0 {
		return a.GetMsg(config.TKeyListEmpty, nil), nil
	}
	return a.Book.String(), nil
}

// deleteContact removes a record. Unknown names are reported even though
// the book itself treats them as a no-op.
func (a *Assistant) deleteContact(_ context.Context, args []string) (string, error) {
	name := args[0]
	if _, err := a.Book.Get(name); err != nil {
		return "", err
	}
	a.Book.Delete(name)
	return a.GetMsg(config.TKeyContactDeleted, map[string]any{"Name": name}), nil
}

func (a *Assistant) addBirthday(_ context.Context, args []string) (string, error) {
	name, date := args[0], args[1]
	r, err := a.Book.Get(name)
	if err != nil {
		return "", err
	}
	if err := r.AddBirthday(date); err != nil {
		return "", err
	}
	b, _ := r.Birthday()
	return a.GetMsg(config.TKeyBirthdayAdded, map[string]any{"Name": name, "Date": b.String()}), nil
}

func (a *Assistant) showBirthday(_ context.Context, args []string) (string, error) {
	name := args[0]
	r, err := a.Book.Get(name)
	if err != nil {
		return "", err
	}
	b, ok := r.Birthday()
	if !ok {
		return a.GetMsg(config.TKeyNoBirthday, map[string]any{"Name": name}), nil
	}
	return a.GetMsg(config.TKeyBirthdayShow, map[string]any{"Name": name, "Date": b.String()}), nil
}

func (a *Assistant) daysToBirthday(_ context.Context, args []string) (string, error) {
	name := args[0]
	r, err := a.Book.Get(name)
	if err != nil {
		return "", err
	}
	days, ok := r.DaysToBirthday(a.Clock.Now())
	if !ok {
		return a.GetMsg(config.TKeyNoBirthday, map[string]any{"Name": name}), nil
	}
	if days == 0 {
		return a.GetMsg(config.TKeyBirthdayToday, map[string]any{"Name": name}), nil
	}
	return a.GetPlural(config.TKeyDaysToBirthday, days, map[string]any{"Name": name}), nil
}

// birthdays lists the congratulation dates of the next window days. The
// window defaults to the configured one.
func (a *Assistant) birthdays(_ context.Context, args []string) (string, error) {
	days := a.Settings.WindowDays
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 || n > config.MaxWindowDays {
			return "", fmt.Errorf("%w: %q", ErrInvalidWindow, args[0])
		}
		days = n
	}

	upcoming := a.Book.UpcomingBirthdays(a.Clock.Now(), days)
	if len(upcoming) == 0 {
		return a.GetPlural(config.TKeyUpcomingNone, days, nil), nil
	}

	lines := make([]string, 0, len(upcoming)+1)
	lines = append(lines, a.GetMsg(config.TKeyUpcomingHeader, nil))
	for _, u := range upcoming {
		lines = append(lines, a.GetMsg(config.TKeyUpcomingLine, map[string]any{
			"Name": u.Name,
			"Date": u.Date(),
		}))
	}
	return strings.Join(lines, config.RecordSeparator), nil
}

func (a *Assistant) save(context.Context, []string) (string, error) {
	if err := a.Store.Save(a.Book); err != nil {
		return "", err
	}
	return a.GetPlural(config.TKeySaved, a.Book.Len(), nil), nil
}

// importCards merges a vCard file or URL into the book.
func (a *Assistant) importCards(ctx context.Context, args []string) (string, error) {
	stats, err := a.Importer.Import(ctx, engine.ImportConfigFor(args[0]), a.Book)
	if err != nil {
		return "", &stageError{stage: ErrImport, cause: err}
	}
	return a.GetMsg(config.TKeyImported, map[string]any{
		"Added":   stats.Added,
		"Merged":  stats.Merged,
		"Skipped": stats.Skipped,
	}), nil
}

// exportCalendar writes the birthdays as an iCalendar file.
func (a *Assistant) exportCalendar(_ context.Context, args []string) (string, error) {
	path := args[0]
	exporter := engine.CalendarExporter{
		Clock:         a.Clock,
		FormatSummary: a.summaryFormatter(),
	}

	data, err := exporter.Build(a.Book, a.Settings.ReminderTrigger())
	if err != nil {
		return "", &stageError{stage: ErrExport, cause: err}
	}
	if err := storage.WriteFileAtomic(path, data); err != nil {
		return "", &stageError{stage: ErrExport, cause: fmt.Errorf("%s: %w", config.ErrCalendarWrite, err)}
	}
	return a.GetMsg(config.TKeyCalendarWritten, map[string]any{"Path": path}), nil
}
