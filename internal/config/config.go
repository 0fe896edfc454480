package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client used by remote vCard imports.
var UserAgent = "Go-Contacts/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName             = "Go Contacts"
	AppID               = "com.github.tartampluch.go-contacts"
	LogFileName         = "app.log"
	DefaultStoreFile    = "addressbook.vcf"
	DefaultSettingsFile = "settings.yaml"
	TempPatternFormat   = ".%s-*.tmp"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for logs, the contact store and exported calendars.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagConfig       = "config"
	FlagStore        = "store"
	FlagLang         = "lang"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging"
	FlagDescConfig   = "Path to a YAML settings file"
	FlagDescStore    = "Path to the address book file (overrides settings)"
	FlagDescLang     = "Reply language (overrides settings)"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Commands
// -----------------------------------------------------------------------------

const (
	CmdHello          = "hello"
	CmdAdd            = "add"
	CmdChange         = "change"
	CmdPhone          = "phone"
	CmdAll            = "all"
	CmdAddBirthday    = "add-birthday"
	CmdShowBirthday   = "show-birthday"
	CmdBirthdays      = "birthdays"
	CmdDaysToBirthday = "days-to-birthday"
	CmdDelete         = "delete"
	CmdRemovePhone    = "remove-phone"
	CmdSave           = "save"
	CmdImport         = "import"
	CmdExportCalendar = "export-calendar"
	CmdHelp           = "help"
	CmdClose          = "close"
	CmdExit           = "exit"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	SourceModeWeb        = "web"
	SourceModeLocal      = "local"
	DefaultWindowDays    = 7
	MaxWindowDays        = 366
	DefaultLanguage      = "en"
	DefaultReminderValue = 1
	UIDSalt              = "go-contacts-v1-" // Salt for deterministic UID generation

	// PhoneRule is the validator tag for a phone number: exactly 10 ASCII digits.
	PhoneRule = "len=10,number"
)

// SupportedLanguages defines the list of available reply languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// ISO8601 Duration Components for Reminders
const (
	ISOPeriodPrefix   = "P"
	ISONegativePrefix = "-P"
	ISOTimePrefix     = "T"
	ISODay            = "D"
	ISOHour           = "H"
	ISOMinute         = "M"
)

// -----------------------------------------------------------------------------
// Reminder Units & Directions
// -----------------------------------------------------------------------------

const (
	UnitDays    = "d"
	UnitHours   = "h"
	UnitMinutes = "m"
	DirBefore   = "before"
	DirAfter    = "after"
)

// -----------------------------------------------------------------------------
// Rendering
// -----------------------------------------------------------------------------

const (
	FormatRecord    = "Contact name: %s, phones: %s, birthday: %s"
	NoPhones        = "No phones"
	NoBirthday      = "No birthday"
	PhoneSeparator  = "; "
	PhoneListJoin   = ", "
	BookEmpty       = "Address book is empty."
	RecordSeparator = "\n"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion   = "2.0"
	ICalProdid    = "-//Go Contacts//Engine//EN"
	ICalCalName   = "Birthdays"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "gocontacts"

	// iCal Fields
	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	// vCard Fields
	VCardVersion = "4.0"
	VCardBDAY    = "BDAY"
	VCardFN      = "FN"
	VCardTEL     = "TEL"
	VCardVER     = "VERSION"

	DefaultICalRefresh = 24 * time.Hour
)

// -----------------------------------------------------------------------------
// Data Formats & Limits
// -----------------------------------------------------------------------------

const (
	// DateFormatBirthday is the user-facing DD.MM.YYYY layout.
	DateFormatBirthday = "02.01.2006"

	// Date layouts accepted for vCard BDAY fields. The first one is also
	// the layout written to the store.
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%d@%s"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	MaxCommandLineSize  = 64 * 1024        // 64KB per command line
	MaxHTTPResponseSize = 16 * 1024 * 1024 // 16MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	HeaderUserAgent     = "User-Agent"
	URLSchemeSeparator  = "://"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWelcome         = "msg_welcome"
	TKeyPrompt          = "msg_prompt"
	TKeyHello           = "msg_hello"
	TKeyGoodbye         = "msg_goodbye"  // Book saved, leaving
	TKeyFarewell        = "msg_farewell" // Leaving after a failed save
	TKeyUnknownCmd      = "msg_unknown_command"
	TKeyHelp            = "msg_help"
	TKeyContactAdded    = "msg_contact_added"    // Requires Name, Phone
	TKeyPhoneAdded      = "msg_phone_added"      // Requires Name, Phone
	TKeyPhoneChanged    = "msg_phone_changed"    // Requires Name, Old, New
	TKeyPhoneRemoved    = "msg_phone_removed"    // Requires Name, Phone
	TKeyPhoneList       = "msg_phone_list"       // Requires Name, Phones
	TKeyNoPhones        = "msg_no_phones"        // Requires Name
	TKeyListEmpty       = "msg_list_empty"       // Empty book for "all"
	TKeyBirthdayAdded   = "msg_birthday_added"   // Requires Name, Date
	TKeyBirthdayShow    = "msg_birthday_show"    // Requires Name, Date
	TKeyNoBirthday      = "msg_no_birthday"      // Requires Name
	TKeyDaysToBirthday  = "msg_days_to_birthday" // Plural, requires Name, Count
	TKeyBirthdayToday   = "msg_birthday_today"   // Requires Name
	TKeyUpcomingHeader  = "msg_upcoming_header"
	TKeyUpcomingLine    = "msg_upcoming_line" // Requires Name, Date
	TKeyUpcomingNone    = "msg_upcoming_none" // Plural, requires Count
	TKeyContactDeleted  = "msg_contact_deleted"
	TKeySaved           = "msg_saved"    // Plural, requires Count
	TKeyImported        = "msg_imported" // Requires Added, Merged, Skipped
	TKeyCalendarWritten = "msg_calendar_written"
	TKeyEvtSummary      = "event_summary"       // Requires Name
	TKeyEvtSummaryAge   = "event_summary_age"   // Requires Name, Age
	TKeyEvtSummaryBirth = "event_summary_birth" // Requires Name (For age 0)

	// Error lines, all rendered through TKeyErrPrefix.
	TKeyErrPrefix          = "err_prefix" // Requires Detail
	TKeyErrInvalidPhone    = "err_invalid_phone"
	TKeyErrInvalidDate     = "err_invalid_date"
	TKeyErrInvalidName     = "err_invalid_name"
	TKeyErrPhoneNotFound   = "err_phone_not_found"
	TKeyErrContactNotFound = "err_contact_not_found" // Requires Name
	TKeyErrMissingArgs     = "err_missing_arguments"
	TKeyErrInvalidWindow   = "err_invalid_window"
	TKeyErrStorage         = "err_storage"
	TKeyErrImport          = "err_import"
	TKeyErrExport          = "err_export"
	TKeyErrUnexpected      = "err_unexpected"
	TKeyErrLineTooLong     = "err_line_too_long" // Requires Limit
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrInvalidName     = "invalid name: must not be empty"
	ErrInvalidPhone    = "the phone number must contain exactly 10 digits"
	ErrInvalidDate     = "invalid date format, use DD.MM.YYYY"
	ErrPhoneNotFound   = "phone number not found"
	ErrContactNotFound = "contact not found"
	ErrMissingArgs     = "missing arguments"
	ErrInvalidWindow   = "window must be a non-negative number of days"
	ErrStoreIO         = "address book storage failure"
	ErrStoreCorrupt    = "address book store cannot be decoded"
	ErrStoreOpen       = "failed to open address book"
	ErrStoreWrite      = "failed to write address book"
	ErrStoreRename     = "failed to replace address book"
	ErrCardEncode      = "failed to encode vCard"
	ErrCardDecode      = "malformed vCard stream"
	ErrCardBadLine     = "line is not a vCard property"
	ErrCardNoName      = "vCard has no name"
	ErrCardNone        = "content holds no vCard"
	ErrCardPhone       = "vCard phone number is invalid"
	ErrCardDate        = "vCard birthday is invalid"
	ErrSettingsRead    = "failed to read settings file"
	ErrSettingsParse   = "failed to parse settings file"
	ErrSettingsInvalid = "invalid settings"
	ErrLocalPathEmpty  = "configuration error: local path is empty"
	ErrWebURLEmpty     = "configuration error: web URL is empty"
	ErrFetcherMissing  = "internal error: network fetcher is not initialized"
	ErrModeUnsupport   = "configuration error: unsupported source mode"
	ErrInvalidURL      = "invalid URL structure"
	ErrProtocol        = "unsupported protocol scheme (http/https only)"
	ErrVCardParse      = "failed to parse vCard stream"
	ErrICalEncode      = "failed to encode iCalendar data"
	ErrCalendarWrite   = "failed to write calendar file"
	ErrImportFailed    = "import failed"
	ErrExportFailed    = "calendar export failed"
	ErrDateParse       = "unable to parse date"
	ErrLogFile         = "failed to open log file"
	ErrCacheDir        = "could not determine user cache dir"
	ErrCreateDir       = "could not create app cache dir"
	ErrAppFailed       = "application failed unexpectedly"
	ErrInputRead       = "failed to read command input"
	ErrLineTooLong     = "command line too long"
	ErrRequestCreate   = "failed to create request"
	ErrNetwork         = "network error during fetch"
	ErrHTTPStatus      = "server returned unexpected status"
	ErrLocalesAccess   = "failed to access embedded locales"
	ErrLocaleLoad      = "failed to load locale file"
	ErrLocNotInit      = "localizer not initialized"
	ErrUnknownLanguage = "unsupported language"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	FallbackSummary      = "Birthday: %s"
	FallbackSummaryAge   = "Birthday: %s (%d)"
	FallbackSummaryBirth = "Birthday: %s (birth)"
	FallbackErrPrefix    = "Error: %s"

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	MsgAppStop       = "Application stopped gracefully"
	MsgAppStarting   = "Starting application"
	MsgCtxCancel     = "Context cancelled, leaving command loop"
	MsgInputClosed   = "Input closed, leaving command loop"
	MsgCommand       = "Command received"
	MsgCommandFailed = "Command failed"
	MsgStoreLoaded   = "Address book loaded"
	MsgStoreMissing  = "Address book not found, starting empty"
	MsgStoreSaved    = "Address book saved"
	MsgSkippedCard   = "Skipping malformed vCard"
	MsgSkippedDate   = "Skipping invalid date format"
	MsgSkippedPhone  = "Skipping invalid phone number"
	MsgSkippedName   = "Skipping vCard without name"
	MsgFetchStart    = "Initiating vCard download"
	MsgFetchStatus   = "Server returned error status"
	MsgFetchBody     = "vCards downloading"
	MsgImportStarted = "Import started"
	MsgImportDone    = "Import finished"
	MsgGenSuccess    = "Calendar generation successful"
	MsgSettingsFile  = "Settings loaded"
	MsgSettingsNone  = "Settings file not found, using defaults"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
	MsgBdayToday     = "Birthday found today"
	MsgUpcomingDone  = "Upcoming birthdays computed"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyPath      = "path"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyMode      = "mode"
	LogKeyCommand   = "command"
	LogKeyArgs      = "args"
	LogKeyTotal     = "total_cards"
	LogKeyFound     = "birthdays_found"
	LogKeyToday     = "birthdays_today"
	LogKeyAdded     = "added"
	LogKeyMerged    = "merged"
	LogKeySkipped   = "skipped"
	LogKeyRecords   = "records"
	LogKeySizeBytes = "size_bytes"
	LogKeyLength    = "content_length"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeyName      = "name"
	LogKeyDOB       = "date_of_birth"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompCLI      = "cli"
	CompBook     = "book"
	CompStorage  = "storage"
	CompEngine   = "engine"
	CompFetcher  = "fetcher"
	CompSettings = "settings"
	CompMain     = "main"
	CompI18n     = "i18n"
)
