package cli

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-contacts/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

const (
	localeDir    = "locales"
	localePrefix = "active."
	localeSuffix = ".json"
)

// SetupI18n loads the embedded locale files and selects the reply language.
func (a *Assistant) SetupI18n() {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir(localeDir)
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return
	}

	var detectedLangs []string

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, localePrefix) || !strings.HasSuffix(name, localeSuffix) {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, localePrefix), localeSuffix)
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, localeDir+"/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}

		detectedLangs = append(detectedLangs, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
			config.LogKeyFile, name,
		)
	}

	a.SupportedLanguages = detectedLangs
	a.I18nBundle = bundle
	a.UpdateLocalizer()
}

// UpdateLocalizer refreshes the translator from the language setting.
// Unknown languages fall back to the default one.
func (a *Assistant) UpdateLocalizer() {
	if a.I18nBundle == nil {
		return
	}

	lang := a.Settings.Language
	if lang == "" {
		lang = config.DefaultLanguage
	}

	tag, err := language.Parse(lang)
	if err != nil || !slices.Contains(a.SupportedLanguages, tag.String()) {
		slog.Warn(config.ErrUnknownLanguage,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, lang,
		)
		tag = language.Make(config.DefaultLanguage)
	}

	a.Localizer = i18n.NewLocalizer(a.I18nBundle, tag.String())
}

// localize translates key with optional template data. count, when not
// nil, selects the plural form and is exposed to templates as Count.
func (a *Assistant) localize(key string, data map[string]any, count *int) (string, error) {
	if a.Localizer == nil {
		return "", errors.New(config.ErrLocNotInit)
	}

	lc := &i18n.LocalizeConfig{MessageID: key, TemplateData: data}
	if count != nil {
		if data == nil {
			data = map[string]any{}
		}
		data["Count"] = *count
		lc.TemplateData = data
		lc.PluralCount = *count
	}

	msg, err := a.Localizer.Localize(lc)
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return "", err
	}
	return msg, nil
}

// GetMsg translates a key safely. The key itself is returned when no
// translation exists.
func (a *Assistant) GetMsg(key string, data map[string]any) string {
	msg, err := a.localize(key, data, nil)
	if err != nil {
		return key
	}
	return msg
}

// GetPlural is GetMsg for messages with plural forms.
func (a *Assistant) GetPlural(key string, count int, data map[string]any) string {
	msg, err := a.localize(key, data, &count)
	if err != nil {
		return key
	}
	return msg
}

// summaryFormatter returns a closure that localizes calendar event titles.
func (a *Assistant) summaryFormatter() func(name string, age int) string {
	return func(name string, age int) string {
		var (
			msg string
			err error
		)
		switch {
		case age == 0:
			msg, err = a.localize(config.TKeyEvtSummaryBirth, map[string]any{"Name": name}, nil)
		case age > 0:
			msg, err = a.localize(config.TKeyEvtSummaryAge, map[string]any{"Name": name, "Age": age}, nil)
		default:
			msg, err = a.localize(config.TKeyEvtSummary, map[string]any{"Name": name}, nil)
		}
		if err != nil {
			if age == 0 {
				return fmt.Sprintf(config.FallbackSummaryBirth, name)
			}
			if age > 0 {
				return fmt.Sprintf(config.FallbackSummaryAge, name, age)
			}
			return fmt.Sprintf(config.FallbackSummary, name)
		}
		return msg
	}
}
