package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/tartampluch/go-contacts/internal/storage"
)

func TestLoadSettings_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.DefaultSettingsFile)
	content := "store_path: from-file.vcf\nlanguage: fr\nwindow_days: 3\n"
	require.NoError(t, os.WriteFile(path, []byte(content), config.FilePermUserRW))

	settings, err := loadSettings(path, "", "")
	require.NoError(t, err)
	assert.Equal(t, "from-file.vcf", settings.StorePath)
	assert.Equal(t, "fr", settings.Language)
	assert.Equal(t, 3, settings.WindowDays)

	settings, err = loadSettings(path, "from-flag.vcf", "en")
	require.NoError(t, err)
	assert.Equal(t, "from-flag.vcf", settings.StorePath)
	assert.Equal(t, "en", settings.Language)
	assert.Equal(t, 3, settings.WindowDays)
}

func TestLoadSettings_InvalidFlag(t *testing.T) {
	_, err := loadSettings("", "", "xx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrSettingsInvalid)
}

func TestRun_CorruptStoreIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.DefaultStoreFile)
	require.NoError(t, os.WriteFile(path, []byte("BEGIN:VCALENDAR\nEND:VCALENDAR\n"), config.FilePermUserRW))

	settings := config.DefaultSettings()
	settings.StorePath = path

	err := run(context.Background(), settings)
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrCorruptStore)

	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Contains(t, string(data), "VCALENDAR", "a corrupt store must be left untouched")
}
