package downloader

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/calvez/qbzgrab/internal/constants"
	"github.com/calvez/qbzgrab/internal/ledger"
	"github.com/calvez/qbzgrab/internal/naming"
)

// DownloadTrack downloads one standalone track. The catalog inlines the
// parent release on track lookups, so naming and tagging work from the
// same attributes as a release download with a single-element scope.
func (o *Orchestrator) DownloadTrack(ctx context.Context, trackID string) (*Summary, error) {
	log := o.log.With("run_id", uuid.NewString())

	if done, err := o.alreadyDownloaded(trackID); err != nil {
		return nil, err
	} else if done {
		return nil, ErrAlreadyDownloaded
	}

	trk, err := o.catalog.GetTrack(ctx, trackID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch track %s: %w", trackID, err)
	}
	if trk.Album == nil {
		return nil, fmt.Errorf("track %s has no release metadata", trackID)
	}
	rel := trk.Album
	log = log.WithTrack(trk.ID, trk.Title)

	if !rel.Streamable {
		return nil, ErrNotStreamable
	}

	dec := o.decideFormat(ctx, trk.ID)
	if !dec.QualityMet && !o.cfg.DowngradeQuality {
		return nil, ErrQualityNotMet
	}

	relAttrs := releaseAttributes(rel, dec)
	attrs := trackAttributes(relAttrs, rel, trk)

	res := naming.Resolve(naming.ResolveRequest{
		BaseDir:    o.cfg.Directory,
		Release:    relAttrs,
		Tracks:     []*naming.Attributes{attrs},
		Format:     dec.FileFormat,
		Extension:  dec.Extension,
		DiscPrefix: o.cfg.MultiDiscPrefix,
		Candidates: naming.Candidates(o.configuredScheme(), o.cfg.FallbackFolderTemplate, o.cfg.NoFallback),
	})
	if res.ForcedDefault {
		log.Warn("No naming scheme fit the path budget, using default", "dir", res.Dir)
	}

	if err := os.MkdirAll(res.Dir, constants.DirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	o.fetchArtwork(ctx, rel, res.Dir, log)

	summary := &Summary{
		ItemID: trk.ID,
		Dir:    res.Dir,
		Outcomes: []TrackOutcome{
			o.runTrack(ctx, trackJob{
				rel:    rel,
				trk:    trk,
				attrs:  attrs,
				dec:    dec,
				scheme: res.Scheme,
				dir:    res.Dir,
			}),
		},
	}

	if o.cfg.EmbedArt {
		o.art.Cleanup(res.Dir)
	}

	if o.ledger != nil {
		o.ledger.Record(ledger.Entry{
			ItemID:       trk.ID,
			MediaType:    "track",
			Quality:      o.cfg.Quality,
			FileFormat:   dec.FileFormat,
			QualityMet:   dec.QualityMet,
			BitDepth:     dec.BitDepth,
			SamplingRate: dec.SamplingRate,
			SavedPath:    summary.Outcomes[0].Path,
			URL:          rel.URL,
			ReleaseDate:  rel.ReleaseDate,
		})
		summary.Recorded = true
	}

	log.Info("Track finished", "status", summary.Outcomes[0].Status.String())
	return summary, nil
}
