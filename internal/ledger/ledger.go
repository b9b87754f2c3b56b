// Package ledger persists the record of completed downloads. It is a
// dedup index and audit trail: rows are inserted once per completed item
// and never updated or deleted.
package ledger

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/calvez/qbzgrab/internal/logger"
)

const schema = `
CREATE TABLE IF NOT EXISTS downloads (
	id TEXT NOT NULL,
	media_type TEXT NOT NULL DEFAULT 'album',
	quality INTEGER NOT NULL DEFAULT 27,
	file_format TEXT NOT NULL DEFAULT 'FLAC',
	quality_met INTEGER NOT NULL DEFAULT 0,
	bit_depth TEXT,
	sampling_rate TEXT,
	saved_path TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'downloaded',
	url TEXT NOT NULL DEFAULT '',
	release_date TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (id, quality)
);
`

// Entry is one completed download. The (ItemID, Quality) pair is the
// uniqueness key.
type Entry struct {
	ItemID       string   `db:"id"`
	MediaType    string   `db:"media_type"`
	Quality      int      `db:"quality"`
	FileFormat   string   `db:"file_format"`
	QualityMet   bool     `db:"quality_met"`
	BitDepth     *int     `db:"bit_depth"`
	SamplingRate *float64 `db:"sampling_rate"`
	SavedPath    string   `db:"saved_path"`
	Status       string   `db:"status"`
	URL          string   `db:"url"`
	ReleaseDate  string   `db:"release_date"`
}

// DB is the download ledger backed by sqlite.
type DB struct {
	db  *sqlx.DB
	log *logger.Logger
}

// Open opens (creating if needed) the ledger database at path and ensures
// the schema exists.
func Open(path string, log *logger.Logger) (*DB, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger db: %w", err)
	}

	// Pragmas for concurrent writers across releases.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=30000"); err != nil {
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping ledger db: %w", err)
	}

	if log == nil {
		log = logger.Default()
	}

	l := &DB{db: db, log: log.WithComponent("ledger")}
	if err := l.EnsureSchema(); err != nil {
		return nil, err
	}
	return l, nil
}

// EnsureSchema idempotently creates the downloads table. Safe to call on
// every startup.
func (d *DB) EnsureSchema() error {
	if _, err := d.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply ledger schema: %w", err)
	}
	return nil
}

// Has reports whether an item was already downloaded at the given quality.
func (d *DB) Has(itemID string, quality int) (bool, error) {
	var id string
	err := d.db.Get(&id, "SELECT id FROM downloads WHERE id = ? AND quality = ?", itemID, quality)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query ledger: %w", err)
	}
	return true, nil
}

// Record inserts one completed download. A duplicate (id, quality) insert
// is a recoverable storage conflict: it is logged and swallowed so the
// caller's flow is never aborted by redundant bookkeeping.
func (d *DB) Record(e Entry) {
	const query = `INSERT INTO downloads
		(id, media_type, quality, file_format, quality_met, bit_depth, sampling_rate, saved_path, status, url, release_date)
	VALUES
		(:id, :media_type, :quality, :file_format, :quality_met, :bit_depth, :sampling_rate, :saved_path, :status, :url, :release_date)`

	if e.Status == "" {
		e.Status = "downloaded"
	}
	if _, err := d.db.NamedExec(query, e); err != nil {
		if isConflict(err) {
			d.log.Debug("Ledger entry already exists", "item_id", e.ItemID, "quality", e.Quality)
			return
		}
		d.log.Error("Failed to record download", "item_id", e.ItemID, "quality", e.Quality, "error", err)
	}
}

// Close closes the underlying database.
func (d *DB) Close() error {
	return d.db.Close()
}

func isConflict(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
