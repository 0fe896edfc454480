package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = newValidator()

// newValidator reports field names by their YAML keys.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Reminder describes the alarm attached to exported calendar events.
type Reminder struct {
	Enabled   bool   `yaml:"enabled"`
	Value     int    `yaml:"value" validate:"min=0"`
	Unit      string `yaml:"unit" validate:"omitempty,oneof=d h m"`
	Direction string `yaml:"direction" validate:"omitempty,oneof=before after"`
}

// Settings holds the user-tunable options of the assistant.
// Defaults come from DefaultSettings, a YAML file overlays them and
// command-line flags override both.
type Settings struct {
	StorePath  string   `yaml:"store_path" validate:"required"`
	WindowDays int      `yaml:"window_days" validate:"min=0,max=366"`
	Language   string   `yaml:"language" validate:"oneof=en fr"`
	Reminder   Reminder `yaml:"reminder"`
}

// DefaultSettings returns the settings used when no file is present.
func DefaultSettings() Settings {
	return Settings{
		StorePath:  DefaultStoreFile,
		WindowDays: DefaultWindowDays,
		Language:   DefaultLanguage,
		Reminder: Reminder{
			Value:     DefaultReminderValue,
			Unit:      UnitDays,
			Direction: DirBefore,
		},
	}
}

// LoadSettings reads a YAML settings file on top of the defaults.
// An empty path or a missing file yields the defaults.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	log := slog.With(LogKeyComponent, CompSettings, LogKeyPath, path)

	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Debug(MsgSettingsNone)
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("%s: %w", ErrSettingsRead, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return DefaultSettings(), fmt.Errorf("%s: %w", ErrSettingsParse, err)
	}

	if err := s.Validate(); err != nil {
		return DefaultSettings(), err
	}

	log.Info(MsgSettingsFile,
		LogKeyLang, s.Language,
		LogKeyFile, s.StorePath,
	)
	return s, nil
}

// Validate checks the settings against their struct rules.
func (s Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, formatFieldError(fe))
			}
			return fmt.Errorf("%s: %s", ErrSettingsInvalid, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%s: %w", ErrSettingsInvalid, err)
	}
	return nil
}

func formatFieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Namespace())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// ReminderTrigger converts the reminder settings into an ISO8601 duration
// suitable for a VALARM TRIGGER (e.g. "-P1D", "PT2H"). It returns an empty
// string when reminders are disabled.
func (s Settings) ReminderTrigger() string {
	r := s.Reminder
	if !r.Enabled {
		return ""
	}

	val := r.Value
	if val <= 0 {
		val = DefaultReminderValue
	}

	sign := ISOPeriodPrefix
	if r.Direction == "" || r.Direction == DirBefore {
		sign = ISONegativePrefix
	}

	switch r.Unit {
	case UnitHours:
		return fmt.Sprintf("%s%s%d%s", sign, ISOTimePrefix, val, ISOHour)
	case UnitMinutes:
		return fmt.Sprintf("%s%s%d%s", sign, ISOTimePrefix, val, ISOMinute)
	default:
		return fmt.Sprintf("%s%d%s", sign, val, ISODay)
	}
}
