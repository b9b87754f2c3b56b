package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/calvez/qbzgrab/internal/downloader"
	"github.com/calvez/qbzgrab/internal/playlist"
)

// runWithSignals runs fn under a context cancelled by SIGINT/SIGTERM so
// in-flight transfers can clean up their partial files.
func runWithSignals(fn func(ctx context.Context) error) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return fn(ctx)
}

// reportSummary logs the run outcome, counting per-track statuses.
func reportSummary(app *appContext, s *downloader.Summary) {
	app.log.Info("Download finished",
		"item_id", s.ItemID,
		"dir", s.Dir,
		"done", s.Done(),
		"failed", s.Failed(),
		"tracks", len(s.Outcomes))
	for _, o := range s.Outcomes {
		if o.Status == downloader.TrackFailed {
			app.log.Error("Track failed", "track_id", o.TrackID, "title", o.Title, "error", o.Err)
		}
	}
}

// benignSkip maps the orchestrator's skip sentinels to a log message;
// skips are not command failures.
func benignSkip(app *appContext, id string, err error) bool {
	switch {
	case errors.Is(err, downloader.ErrAlreadyDownloaded):
		app.log.Info("Item already downloaded, skipping", "item_id", id)
	case errors.Is(err, downloader.ErrNotStreamable):
		app.log.Info("Item is not streamable, skipping", "item_id", id)
	case errors.Is(err, downloader.ErrNotAlbum):
		app.log.Info("Item filtered out by albums-only mode, skipping", "item_id", id)
	case errors.Is(err, downloader.ErrQualityNotMet):
		app.log.Info("Requested quality not available, skipping", "item_id", id)
	default:
		return false
	}
	return true
}

func newAlbumCommand(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "album <id>...",
		Short: "Download one or more releases",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.setup(); err != nil {
				return err
			}
			defer app.close()
			return runWithSignals(func(ctx context.Context) error {
				for _, id := range args {
					s, err := app.orch.DownloadRelease(ctx, id)
					if err != nil {
						if benignSkip(app, id, err) {
							continue
						}
						return err
					}
					reportSummary(app, s)
				}
				return nil
			})
		},
	}
}

func newTrackCommand(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "track <id>...",
		Short: "Download one or more standalone tracks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.setup(); err != nil {
				return err
			}
			defer app.close()
			return runWithSignals(func(ctx context.Context) error {
				for _, id := range args {
					s, err := app.orch.DownloadTrack(ctx, id)
					if err != nil {
						if benignSkip(app, id, err) {
							continue
						}
						return err
					}
					reportSummary(app, s)
				}
				return nil
			})
		},
	}
}

func newM3UCommand(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "m3u <dir>...",
		Short: "Generate m3u playlists for downloaded directories",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.setup(); err != nil {
				return err
			}
			defer app.close()
			for _, dir := range args {
				if err := playlist.Write(dir); err != nil {
					return err
				}
				app.log.Info("Playlist written", "dir", dir)
			}
			return nil
		},
	}
}
