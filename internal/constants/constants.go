// Package constants contains application-wide constants to avoid magic numbers and strings.
package constants

import "time"

// Application defaults
const (
	DefaultDBPath          = "qbzgrab.db"
	DefaultDirectory       = "Qbzgrab Downloads"
	DefaultCatalogURL      = "http://127.0.0.1:8000"
	DefaultConcurrency     = 3
	DefaultHTTPTimeout     = 5 * time.Minute
	DefaultRetryCount      = 3
	DefaultRetryBase       = 1 * time.Second
	DefaultRequestInterval = 250 * time.Millisecond
)

// Quality tiers as understood by the catalog service.
const (
	QualityMP3      = 5
	QualityCD       = 6
	QualityHiRes96  = 7
	QualityHiRes192 = 27
)

// RestrictionQualityDowngrade is the restriction code the catalog returns
// when the requested format is not available at the requested quality.
const RestrictionQualityDowngrade = "FormatRestrictedByFormatAvailability"

// Naming templates
const (
	DefaultFolderTemplate         = "{album_artist} - {album_title} ({year}) [{format} {bit_depth}]"
	DefaultTrackTemplate          = "{track_number} - {track_title_base}"
	DefaultMultiDiscTrackTemplate = "{disc_number}.{track_number} - {track_title_base}"
	FallbackFolderTemplate        = "{album_artist} - {album_title_base}"
)

// MaxPathLength is the longest allowed character count for a fully joined
// track path (base dir + folder segments + track filename + extension).
// Not user tunable.
const MaxPathLength = 180

// MaxFilenameLength caps the final rendered path before the extension is
// appended, as a last line of defense when the default scheme is forced.
const MaxFilenameLength = 250

// Artwork
const (
	CoverName      = "cover.jpg"
	EmbedCoverName = "embed_cover.jpg"

	DefaultEmbeddedArtSize = "600"
	DefaultSavedArtSize    = "org"

	DefaultMultiDiscPrefix = "CD"
)

// File extensions
const (
	ExtFLAC = ".flac"
	ExtMP3  = ".mp3"
	ExtM3U  = ".m3u"
	ExtPDF  = ".pdf"
)

// Container formats
const (
	FormatFLAC    = "FLAC"
	FormatMP3     = "MP3"
	FormatUnknown = "Unknown"
)

// File permissions
const (
	DirPermissions  = 0755
	FilePermissions = 0644
)
