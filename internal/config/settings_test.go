package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-contacts/internal/config"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadSettings_Defaults(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"Empty path", ""},
		{"Missing file", filepath.Join(t.TempDir(), "nope.yaml")},
		{"Empty file", writeSettings(t, "")},
		{"Comments only", writeSettings(t, "# nothing configured\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := config.LoadSettings(tt.path)
			require.NoError(t, err)
			assert.Equal(t, config.DefaultSettings(), s)
		})
	}
}

func TestLoadSettings_Overlay(t *testing.T) {
	path := writeSettings(t, `
store_path: /tmp/book.vcf
window_days: 14
language: fr
reminder:
  enabled: true
  value: 3
  unit: h
`)

	s, err := config.LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/book.vcf", s.StorePath)
	assert.Equal(t, 14, s.WindowDays)
	assert.Equal(t, "fr", s.Language)
	assert.True(t, s.Reminder.Enabled)
	assert.Equal(t, 3, s.Reminder.Value)
	// Direction was not in the file, the default survives the overlay.
	assert.Equal(t, config.DirBefore, s.Reminder.Direction)
}

func TestLoadSettings_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"Negative window", "window_days: -1\n", "window_days"},
		{"Window too large", "window_days: 400\n", "at most"},
		{"Unknown language", "language: de\n", "one of"},
		{"Empty store path", "store_path: \"\"\n", "required"},
		{"Bad unit", "reminder:\n  unit: weeks\n", "unit"},
		{"Unknown key", "colour: blue\n", config.ErrSettingsParse},
		{"Not YAML", "window_days: [1, 2\n", config.ErrSettingsParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := config.LoadSettings(writeSettings(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, strings.ToLower(err.Error()), strings.ToLower(tt.wantErr))
			assert.Equal(t, config.DefaultSettings(), s, "Invalid files must not leak partial settings")
		})
	}
}

// TestSettings_ReminderTrigger tests the conversion of reminder settings to an ISO8601 trigger.
func TestSettings_ReminderTrigger(t *testing.T) {
	tests := []struct {
		name        string
		reminder    config.Reminder
		wantTrigger string
	}{
		{
			name:        "Disabled",
			reminder:    config.Reminder{Enabled: false, Value: 1, Unit: config.UnitDays},
			wantTrigger: "",
		},
		{
			name:        "1 Day Before",
			reminder:    config.Reminder{Enabled: true, Value: 1, Unit: config.UnitDays, Direction: config.DirBefore},
			wantTrigger: "-P1D",
		},
		{
			name:        "2 Hours After",
			reminder:    config.Reminder{Enabled: true, Value: 2, Unit: config.UnitHours, Direction: config.DirAfter},
			wantTrigger: "PT2H",
		},
		{
			name:        "30 Minutes Before",
			reminder:    config.Reminder{Enabled: true, Value: 30, Unit: config.UnitMinutes, Direction: config.DirBefore},
			wantTrigger: "-PT30M",
		},
		{
			name:        "Zero value falls back to default",
			reminder:    config.Reminder{Enabled: true, Value: 0},
			wantTrigger: "-P1D",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := config.DefaultSettings()
			s.Reminder = tt.reminder
			assert.Equal(t, tt.wantTrigger, s.ReminderTrigger())
		})
	}
}
