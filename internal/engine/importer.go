package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/tartampluch/go-contacts/internal/contacts"
	"github.com/tartampluch/go-contacts/internal/storage"
)

// ImportConfig contains all parameters required to perform an import.
type ImportConfig struct {
	Mode      string // config.SourceModeLocal or config.SourceModeWeb
	LocalPath string // Path to the .vcf file
	WebURL    string // CardDAV or WebDAV URL
	WebUser   string // HTTP Basic Auth Username
	WebPass   string // HTTP Basic Auth Password
}

// ImportConfigFor picks the source mode from a command argument: http and
// https URLs are downloaded, anything else is read as a local file.
func ImportConfigFor(source string) ImportConfig {
	lower := strings.ToLower(source)
	if strings.HasPrefix(lower, config.SchemeHTTP+config.URLSchemeSeparator) ||
		strings.HasPrefix(lower, config.SchemeHTTPS+config.URLSchemeSeparator) {
		return ImportConfig{Mode: config.SourceModeWeb, WebURL: source}
	}
	return ImportConfig{Mode: config.SourceModeLocal, LocalPath: source}
}

// ImportStats reports what an import did to the book.
type ImportStats struct {
	Processed int // cards read
	Added     int // new records
	Merged    int // existing records that received data
	Skipped   int // unusable cards
}

// Importer merges vCards from a file or URL into an address book.
type Importer struct {
	Fetcher VCardFetcher
}

// Import reads every card of the configured source into book. Unknown names
// become new records. Known names receive the phones they lack and a
// birthday when they have none; existing data is never overwritten.
func (im *Importer) Import(ctx context.Context, cfg ImportConfig, book *contacts.AddressBook) (ImportStats, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyMode, cfg.Mode,
	)
	log.InfoContext(ctx, config.MsgImportStarted)

	reader, err := im.acquireStream(ctx, cfg)
	if err != nil {
		if ctx.Err() != nil {
			return ImportStats{}, ctx.Err()
		}
		return ImportStats{}, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}
	defer func() { _ = reader.Close() }()

	records, decoded, err := storage.DecodeCards(ctx, reader, false)
	if err != nil {
		if ctx.Err() != nil {
			return ImportStats{}, ctx.Err()
		}
		return ImportStats{}, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}

	stats := ImportStats{Processed: decoded.Processed, Skipped: decoded.Skipped}
	for _, incoming := range records {
		existing, ok := book.Find(incoming.Name().String())
		if !ok {
			book.AddRecord(incoming)
			stats.Added++
			continue
		}
		if mergeRecord(existing, incoming) {
			stats.Merged++
		}
	}

	log.Info(config.MsgImportDone,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.Processed),
			slog.Int(config.LogKeyAdded, stats.Added),
			slog.Int(config.LogKeyMerged, stats.Merged),
			slog.Int(config.LogKeySkipped, stats.Skipped),
		),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return stats, nil
}

// mergeRecord copies what dst lacks from src and reports whether dst changed.
func mergeRecord(dst, src *contacts.Record) bool {
	changed := false
	for _, p := range src.Phones() {
		if _, found := dst.FindPhone(p.String()); found {
			continue
		}
		if err := dst.AddPhone(p.String()); err == nil {
			changed = true
		}
	}
	if _, has := dst.Birthday(); !has {
		if b, ok := src.Birthday(); ok {
			dst.SetBirthday(b)
			changed = true
		}
	}
	return changed
}

// acquireStream opens the appropriate data source based on configuration.
func (im *Importer) acquireStream(ctx context.Context, cfg ImportConfig) (io.ReadCloser, error) {
	switch cfg.Mode {
	case config.SourceModeLocal:
		if cfg.LocalPath == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(cfg.LocalPath)
	case config.SourceModeWeb:
		if cfg.WebURL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if im.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return im.Fetcher.Fetch(ctx, cfg.WebURL, cfg.WebUser, cfg.WebPass)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, cfg.Mode)
	}
}
