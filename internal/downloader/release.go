package downloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/calvez/qbzgrab/internal/artwork"
	"github.com/calvez/qbzgrab/internal/catalog"
	"github.com/calvez/qbzgrab/internal/constants"
	"github.com/calvez/qbzgrab/internal/ledger"
	"github.com/calvez/qbzgrab/internal/logger"
	"github.com/calvez/qbzgrab/internal/naming"
	"github.com/calvez/qbzgrab/internal/playlist"
	"github.com/calvez/qbzgrab/internal/tagging"
	"github.com/calvez/qbzgrab/internal/tags"
)

// DownloadRelease downloads every track of a release through the worker
// pool. Tracks fail independently: the pool always drains, and the ledger
// entry is written only after the last track job has finished.
func (o *Orchestrator) DownloadRelease(ctx context.Context, releaseID string) (*Summary, error) {
	log := o.log.With("run_id", uuid.NewString())

	if done, err := o.alreadyDownloaded(releaseID); err != nil {
		return nil, err
	} else if done {
		return nil, ErrAlreadyDownloaded
	}

	rel, err := o.catalog.GetRelease(ctx, releaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch release %s: %w", releaseID, err)
	}
	log = log.WithRelease(rel.ID, rel.Title)

	if !rel.Streamable {
		return nil, ErrNotStreamable
	}
	if o.cfg.AlbumsOnly && (rel.ReleaseType != "album" || rel.Artist == "Various Artists") {
		return nil, ErrNotAlbum
	}
	if len(rel.Tracks) == 0 {
		return nil, fmt.Errorf("release %s has no tracks", releaseID)
	}

	dec := o.decideFormat(ctx, rel.Tracks[0].ID)
	if !dec.QualityMet && !o.cfg.DowngradeQuality {
		return nil, ErrQualityNotMet
	}

	relAttrs := releaseAttributes(rel, dec)
	trackAttrs := make([]*naming.Attributes, len(rel.Tracks))
	for i := range rel.Tracks {
		trackAttrs[i] = trackAttributes(relAttrs, rel, &rel.Tracks[i])
	}

	multiDisc := rel.MediaCount > 1
	res := naming.Resolve(naming.ResolveRequest{
		BaseDir:    o.cfg.Directory,
		Release:    relAttrs,
		Tracks:     trackAttrs,
		Format:     dec.FileFormat,
		Extension:  dec.Extension,
		MultiDisc:  multiDisc,
		OneDir:     o.cfg.MultiDiscOneDir,
		DiscPrefix: o.cfg.MultiDiscPrefix,
		Candidates: naming.Candidates(o.configuredScheme(), o.cfg.FallbackFolderTemplate, o.cfg.NoFallback),
	})
	if res.ForcedDefault {
		log.Warn("No naming scheme fit the path budget, using default", "dir", res.Dir)
	}

	if err := os.MkdirAll(res.Dir, constants.DirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create release directory: %w", err)
	}
	if multiDisc && !o.cfg.MultiDiscOneDir {
		for i := 1; i <= rel.MediaCount; i++ {
			sub := filepath.Join(res.Dir, naming.DiscDir(o.cfg.MultiDiscPrefix, i))
			if err := os.MkdirAll(sub, constants.DirPermissions); err != nil {
				return nil, fmt.Errorf("failed to create disc directory: %w", err)
			}
		}
	}

	o.fetchArtwork(ctx, rel, res.Dir, log)
	o.fetchGoodies(ctx, rel, res.Dir, log)

	summary := &Summary{
		ItemID:   rel.ID,
		Dir:      res.Dir,
		Outcomes: make([]TrackOutcome, len(rel.Tracks)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.cfg.Workers)
	for i := range rel.Tracks {
		i := i
		g.Go(func() error {
			summary.Outcomes[i] = o.runTrack(gctx, trackJob{
				rel:       rel,
				trk:       &rel.Tracks[i],
				attrs:     trackAttrs[i],
				dec:       dec,
				scheme:    res.Scheme,
				dir:       res.Dir,
				multiDisc: multiDisc,
			})
			return nil
		})
	}
	// Jobs never return errors; the barrier just drains the pool.
	_ = g.Wait()

	if o.cfg.EmbedArt {
		o.art.Cleanup(res.Dir)
	}
	if !o.cfg.NoM3U {
		if err := playlist.Write(res.Dir); err != nil {
			log.Warn("Failed to write playlist", "dir", res.Dir, "error", err)
		}
	}

	if o.ledger != nil {
		o.ledger.Record(ledger.Entry{
			ItemID:       rel.ID,
			MediaType:    "album",
			Quality:      o.cfg.Quality,
			FileFormat:   dec.FileFormat,
			QualityMet:   dec.QualityMet,
			BitDepth:     dec.BitDepth,
			SamplingRate: dec.SamplingRate,
			SavedPath:    res.Dir,
			URL:          rel.URL,
			ReleaseDate:  rel.ReleaseDate,
		})
		summary.Recorded = true
	}

	log.Info("Release finished",
		"dir", res.Dir,
		"done", summary.Done(),
		"failed", summary.Failed(),
		"tracks", len(summary.Outcomes))
	return summary, nil
}

// fetchArtwork downloads the saved cover and the embed copy per the
// configuration. Artwork failures never abort a release.
func (o *Orchestrator) fetchArtwork(ctx context.Context, rel *catalog.Release, dir string, log *logger.Logger) {
	if rel.Image.Large == "" {
		return
	}
	if !o.cfg.NoCover {
		if err := o.art.Fetch(ctx, rel.Image.Large, dir, constants.CoverName, o.cfg.SavedArtSize); err != nil {
			log.Warn("Failed to download cover", "error", err)
		}
	}
	if o.cfg.EmbedArt {
		if err := o.art.Fetch(ctx, rel.Image.Large, dir, constants.EmbedCoverName, o.cfg.EmbeddedArtSize); err != nil {
			log.Warn("Failed to download embed cover", "error", err)
		}
	}
}

// fetchGoodies saves the release's supplementary documents, typically
// PDF booklets, next to the audio. Goodie failures never abort a
// release.
func (o *Orchestrator) fetchGoodies(ctx context.Context, rel *catalog.Release, dir string, log *logger.Logger) {
	for _, g := range rel.Goodies {
		if g.URL == "" {
			log.Warn("Goodie has no URL, skipping", "goodie_id", g.ID)
			continue
		}
		name := naming.Clean(fmt.Sprintf("%s (%s)", rel.Title, g.ID)) + constants.ExtPDF
		dest := filepath.Join(dir, name)
		if _, err := os.Stat(dest); err == nil {
			continue
		}
		if err := o.transfer.Fetch(ctx, g.URL, dest); err != nil {
			log.Warn("Failed to download goodie", "goodie_id", g.ID, "error", err)
		}
	}
}

// trackJob carries everything a track worker needs; all fields are
// read-only inside the pool.
type trackJob struct {
	rel       *catalog.Release
	trk       *catalog.Track
	attrs     *naming.Attributes
	dec       QualityDecision
	scheme    naming.Scheme
	dir       string
	multiDisc bool
}

// runTrack is one worker-pool job: resolve the stream URL, transfer to a
// temp file, tag, and move into place. Every exit path produces an
// outcome; no failure propagates past the track.
func (o *Orchestrator) runTrack(ctx context.Context, job trackJob) TrackOutcome {
	out := TrackOutcome{TrackID: job.trk.ID, Title: job.trk.Title}
	log := o.log.WithTrack(job.trk.ID, job.trk.Title)

	info, err := o.catalog.GetStreamInfo(ctx, job.trk.ID, o.cfg.Quality)
	if err != nil || info.URL == "" {
		log.Info("No stream URL for track, skipping", "error", err)
		out.Status = TrackSkipped
		out.Reason = "no stream URL"
		return out
	}
	if info.Sample || info.SamplingRate == 0 {
		log.Info("Track is a demo sample, skipping")
		out.Status = TrackSkipped
		out.Reason = "demo"
		return out
	}

	trackDir := job.dir
	tmplName := job.scheme.Track
	if job.multiDisc {
		if o.cfg.MultiDiscOneDir {
			tmplName = job.scheme.MultiDiscTrack
		} else {
			trackDir = filepath.Join(job.dir, naming.DiscDir(o.cfg.MultiDiscPrefix, job.trk.MediaNumber))
		}
	}
	name, err := naming.RenderTrackName(tmplName, job.attrs)
	if err != nil {
		out.Status = TrackFailed
		out.Err = fmt.Errorf("failed to render track name: %w", err)
		return out
	}

	final := truncatePath(filepath.Join(trackDir, name)) + job.dec.Extension
	if _, err := os.Stat(final); err == nil {
		log.Info("Track already exists, skipping", "path", final)
		out.Status = TrackSkipped
		out.Reason = "already exists"
		out.Path = final
		return out
	}

	// Disc-qualified so one-directory multi-disc layouts never collide.
	tmp := filepath.Join(trackDir, fmt.Sprintf(".%02d.%02d.tmp", job.trk.MediaNumber, job.trk.TrackNumber))
	if err := o.transfer.Fetch(ctx, info.URL, tmp); err != nil {
		out.Status = TrackFailed
		out.Err = fmt.Errorf("transfer failed: %w", err)
		return out
	}

	embedPath := ""
	if o.cfg.EmbedArt {
		if p, ok := artwork.EmbedPath(trackDir); ok {
			embedPath = p
		}
	}
	t := tags.Build(job.rel, job.trk, o.cfg.Tags)
	if err := tagging.Apply(job.dec.FileFormat, tmp, t, embedPath); err != nil {
		log.Error("Failed to tag track", "error", err)
		os.Remove(tmp)
		out.Status = TrackFailed
		out.Err = fmt.Errorf("tagging failed: %w", err)
		return out
	}

	if err := os.Rename(tmp, final); err != nil {
		os.Remove(tmp)
		out.Status = TrackFailed
		out.Err = fmt.Errorf("failed to move track into place: %w", err)
		return out
	}

	log.Info("Track downloaded", "path", final)
	out.Status = TrackDone
	out.Path = final
	return out
}

// truncatePath caps the pre-extension path at the filesystem-safe limit.
func truncatePath(path string) string {
	if utf8.RuneCountInString(path) <= constants.MaxFilenameLength {
		return path
	}
	runes := []rune(path)
	return string(runes[:constants.MaxFilenameLength])
}
