package cli

import (
	"errors"
	"fmt"

	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/tartampluch/go-contacts/internal/contacts"
	"github.com/tartampluch/go-contacts/internal/storage"
)

var (
	// ErrMissingArguments reports a command invoked with too few tokens.
	ErrMissingArguments = errors.New(config.ErrMissingArgs)

	// ErrInvalidWindow reports a birthdays window that is not a day count.
	ErrInvalidWindow = errors.New(config.ErrInvalidWindow)

	// ErrLineTooLong reports an input line over config.MaxCommandLineSize.
	ErrLineTooLong = errors.New(config.ErrLineTooLong)

	ErrImport = errors.New(config.ErrImportFailed)
	ErrExport = errors.New(config.ErrExportFailed)
)

// stageError ties a failure to the command stage (import, export) that
// produced it while keeping the underlying cause matchable.
type stageError struct {
	stage error
	cause error
}

func (e *stageError) Error() string {
	return fmt.Sprintf("%s: %s", e.stage, e.cause)
}

func (e *stageError) Unwrap() []error {
	return []error{e.stage, e.cause}
}

// renderError converts any command failure into one localized
// "Error: ..." line.
func (a *Assistant) renderError(err error) string {
	detail := a.errorDetail(err)

	line, lerr := a.localize(config.TKeyErrPrefix, map[string]any{"Detail": detail}, nil)
	if lerr != nil {
		return fmt.Sprintf(config.FallbackErrPrefix, detail)
	}
	return line
}

func (a *Assistant) errorDetail(err error) string {
	var (
		notFound *contacts.NotFoundError
		staged   *stageError
	)

	switch {
	case errors.Is(err, ErrMissingArguments):
		return a.GetMsg(config.TKeyErrMissingArgs, nil)
	case errors.Is(err, contacts.ErrInvalidPhone):
		return a.GetMsg(config.TKeyErrInvalidPhone, nil)
	case errors.Is(err, contacts.ErrInvalidDate):
		return a.GetMsg(config.TKeyErrInvalidDate, nil)
	case errors.Is(err, contacts.ErrInvalidName):
		return a.GetMsg(config.TKeyErrInvalidName, nil)
	case errors.Is(err, contacts.ErrPhoneNotFound):
		return a.GetMsg(config.TKeyErrPhoneNotFound, nil)
	case errors.As(err, &notFound):
		return a.GetMsg(config.TKeyErrContactNotFound, map[string]any{"Name": notFound.Name})
	case errors.Is(err, ErrLineTooLong):
		return a.GetMsg(config.TKeyErrLineTooLong, map[string]any{"Limit": config.MaxCommandLineSize})
	case errors.Is(err, ErrInvalidWindow):
		return a.GetMsg(config.TKeyErrInvalidWindow, nil)
	case errors.As(err, &staged) && errors.Is(staged.stage, ErrImport):
		return a.GetMsg(config.TKeyErrImport, map[string]any{"Cause": staged.cause.Error()})
	case errors.As(err, &staged) && errors.Is(staged.stage, ErrExport):
		return a.GetMsg(config.TKeyErrExport, map[string]any{"Cause": staged.cause.Error()})
	case errors.Is(err, storage.ErrIO):
		return a.GetMsg(config.TKeyErrStorage, map[string]any{"Cause": err.Error()})
	default:
		return a.GetMsg(config.TKeyErrUnexpected, map[string]any{"Cause": err.Error()})
	}
}
