package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/tartampluch/go-contacts/internal/contacts"
)

var (
	// ErrIO reports a read or write failure other than a missing store.
	ErrIO = errors.New(config.ErrStoreIO)

	// ErrMalformed reports a vCard stream that cannot be parsed.
	ErrMalformed = errors.New(config.ErrCardDecode)

	// ErrCorruptStore reports a store file whose content cannot be decoded.
	ErrCorruptStore = errors.New(config.ErrStoreCorrupt)
)

// Store persists an address book as a single vCard file.
type Store struct {
	path string
}

// NewStore returns a store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the file backing the store.
func (s *Store) Path() string { return s.path }

// Load reads the whole book. A missing file yields an empty book.
func (s *Store) Load(ctx context.Context) (*contacts.AddressBook, error) {
	log := slog.With(config.LogKeyComponent, config.CompStorage, config.LogKeyPath, s.path)

	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info(config.MsgStoreMissing)
		return contacts.NewAddressBook(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrIO, config.ErrStoreOpen, err)
	}
	// Best effort close. Errors in Close() for read-only files are rarely actionable here.
	defer func() { _ = f.Close() }()

	records, stats, err := DecodeCards(ctx, f, true)
	if err != nil {
		if errors.Is(err, ErrMalformed) {
			return nil, fmt.Errorf("%w: %w", ErrCorruptStore, err)
		}
		return nil, err
	}

	book := contacts.NewAddressBook()
	for _, r := range records {
		book.AddRecord(r)
	}

	log.Info(config.MsgStoreLoaded,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.Processed),
			slog.Int(config.LogKeySkipped, stats.Skipped),
			slog.Int(config.LogKeyRecords, book.Len()),
		),
	)
	return book, nil
}

// Save writes a full snapshot of book, replacing the previous file only once
// the new content is safely on disk.
func (s *Store) Save(book *contacts.AddressBook) error {
	var buf bytes.Buffer
	if err := EncodeBook(&buf, book); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	if err := WriteFileAtomic(s.path, buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	slog.Info(config.MsgStoreSaved,
		config.LogKeyComponent, config.CompStorage,
		config.LogKeyPath, s.path,
		config.LogKeyRecords, book.Len(),
		config.LogKeySizeBytes, buf.Len(),
	)
	return nil
}

// WriteFileAtomic writes data to a temporary file next to path, syncs it and
// renames it over path. The temporary file is removed on failure.
func WriteFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, fmt.Sprintf(config.TempPatternFormat, filepath.Base(path)))
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if err = tmp.Chmod(config.FilePermUserRW); err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}
	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreRename, err)
	}
	return nil
}
