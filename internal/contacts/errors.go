package contacts

import (
	"errors"
	"fmt"

	"github.com/tartampluch/go-contacts/internal/config"
)

// Domain errors. Callers match them with errors.Is; the command layer turns
// them into user-facing lines.
var (
	ErrInvalidName     = errors.New(config.ErrInvalidName)
	ErrInvalidPhone    = errors.New(config.ErrInvalidPhone)
	ErrInvalidDate     = errors.New(config.ErrInvalidDate)
	ErrPhoneNotFound   = errors.New(config.ErrPhoneNotFound)
	ErrContactNotFound = errors.New(config.ErrContactNotFound)
)

// NotFoundError reports a lookup by name that matched no record.
// It matches ErrContactNotFound with errors.Is.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %q", config.ErrContactNotFound, e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrContactNotFound
}
