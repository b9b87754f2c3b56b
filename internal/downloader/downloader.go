// Package downloader orchestrates release and track downloads: metadata
// lookup, naming resolution, concurrent transfer, tagging and ledger
// bookkeeping.
package downloader

import (
	"errors"

	"github.com/calvez/qbzgrab/internal/artwork"
	"github.com/calvez/qbzgrab/internal/catalog"
	"github.com/calvez/qbzgrab/internal/config"
	"github.com/calvez/qbzgrab/internal/ledger"
	"github.com/calvez/qbzgrab/internal/logger"
	"github.com/calvez/qbzgrab/internal/naming"
	"github.com/calvez/qbzgrab/internal/transfer"
)

// Benign skip conditions surfaced as sentinel errors so callers can tell
// them from real failures.
var (
	ErrAlreadyDownloaded = errors.New("item already downloaded at this quality")
	ErrNotStreamable     = errors.New("item is not streamable")
	ErrNotAlbum          = errors.New("item filtered out by albums-only mode")
	ErrQualityNotMet     = errors.New("requested quality not available")
)

// TrackStatus classifies the outcome of one track job.
type TrackStatus int

const (
	TrackDone TrackStatus = iota
	TrackSkipped
	TrackFailed
)

func (s TrackStatus) String() string {
	switch s {
	case TrackDone:
		return "done"
	case TrackSkipped:
		return "skipped"
	case TrackFailed:
		return "failed"
	}
	return "unknown"
}

// TrackOutcome is the per-track result collected from the worker pool.
type TrackOutcome struct {
	TrackID string
	Title   string
	Status  TrackStatus
	Reason  string
	Path    string
	Err     error
}

// Summary reports what one download run produced. Every track of the
// item has an outcome, whether it succeeded or not.
type Summary struct {
	ItemID   string
	Dir      string
	Outcomes []TrackOutcome
	Recorded bool
}

// Done returns how many tracks finished successfully.
func (s *Summary) Done() int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Status == TrackDone {
			n++
		}
	}
	return n
}

// Failed returns how many tracks failed.
func (s *Summary) Failed() int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Status == TrackFailed {
			n++
		}
	}
	return n
}

// Orchestrator coordinates a download run. The ledger is nil when dedup
// bookkeeping is disabled.
type Orchestrator struct {
	catalog  catalog.Client
	transfer *transfer.Client
	art      *artwork.Manager
	ledger   *ledger.DB
	cfg      *config.Config
	log      *logger.Logger
}

// New creates an orchestrator.
func New(cat catalog.Client, tr *transfer.Client, led *ledger.DB, cfg *config.Config, log *logger.Logger) *Orchestrator {
	if log == nil {
		log = logger.Default()
	}
	return &Orchestrator{
		catalog:  cat,
		transfer: tr,
		art:      artwork.NewManager(tr, log),
		ledger:   led,
		cfg:      cfg,
		log:      log.WithComponent("downloader"),
	}
}

// configuredScheme assembles the naming scheme from the configuration.
func (o *Orchestrator) configuredScheme() naming.Scheme {
	return naming.Scheme{
		Folder:         o.cfg.FolderTemplate,
		Track:          o.cfg.TrackTemplate,
		MultiDiscTrack: o.cfg.MultiDiscTrackTemplate,
	}
}

// alreadyDownloaded consults the ledger when one is configured.
func (o *Orchestrator) alreadyDownloaded(itemID string) (bool, error) {
	if o.ledger == nil {
		return false, nil
	}
	return o.ledger.Has(itemID, o.cfg.Quality)
}
