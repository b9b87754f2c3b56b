package catalog

import "context"

// Client is the catalog interface the download orchestrator depends on.
type Client interface {
	// GetRelease fetches a release's metadata and full track list.
	GetRelease(ctx context.Context, id string) (*Release, error)
	// GetTrack fetches a single track's metadata with its parent release
	// inlined.
	GetTrack(ctx context.Context, id string) (*Track, error)
	// GetStreamInfo resolves a track's streaming URL at the given quality
	// tier, together with the effective bit depth and sampling rate.
	GetStreamInfo(ctx context.Context, trackID string, quality int) (*StreamInfo, error)
}
