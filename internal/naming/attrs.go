package naming

import (
	"fmt"
	"strconv"
)

// Attributes is the typed attribute record consumed by naming templates.
// All fields are always present; optional ones are nil rather than
// missing, so templates see a typed "absent" instead of a lookup error.
//
// An Attributes value covers either a release scope (folder templates) or
// a track scope (file templates); HasTrack marks whether the track fields
// carry meaning.
type Attributes struct {
	AlbumID        string
	AlbumURL       string
	AlbumTitle     string // with version suffix when one applies
	AlbumTitleBase string
	AlbumArtist    string
	AlbumGenre     string
	AlbumComposer  string
	Label          string
	Copyright      string
	UPC            string
	ReleaseDate    string
	Year           string
	MediaType      string
	Format         string
	BitDepth       *int
	SamplingRate   *float64
	AlbumVersion   string
	DiscCount      int
	TrackCount     int

	HasTrack       bool
	TrackID        string
	TrackTitle     string // with version suffix when one applies
	TrackTitleBase string
	TrackArtist    string
	TrackComposer  string
	TrackVersion   string
	ISRC           string
	TrackNumber    int
	DiscNumber     int
}

// Field is the template-boundary accessor: it maps a placeholder name to
// its rendered value. The second return is false for unknown names, for
// nil optionals, and for track-scoped names on a release-scoped record.
func (a *Attributes) Field(name string) (string, bool) {
	switch name {
	case "album_id":
		return a.AlbumID, true
	case "album_url":
		return a.AlbumURL, true
	case "album_title":
		return a.AlbumTitle, true
	case "album_title_base":
		return a.AlbumTitleBase, true
	case "album_artist":
		return a.AlbumArtist, true
	case "album_genre":
		return a.AlbumGenre, true
	case "album_composer":
		return a.AlbumComposer, true
	case "label":
		return a.Label, true
	case "copyright":
		return a.Copyright, true
	case "upc", "barcode":
		return a.UPC, true
	case "release_date":
		return a.ReleaseDate, true
	case "year":
		return a.Year, true
	case "media_type":
		return a.MediaType, true
	case "format":
		return a.Format, true
	case "bit_depth":
		if a.BitDepth == nil {
			return "", false
		}
		return strconv.Itoa(*a.BitDepth), true
	case "sampling_rate":
		if a.SamplingRate == nil {
			return "", false
		}
		return strconv.FormatFloat(*a.SamplingRate, 'f', -1, 64), true
	case "album_version":
		return a.AlbumVersion, true
	case "disc_count":
		return strconv.Itoa(a.DiscCount), true
	case "track_count":
		return strconv.Itoa(a.TrackCount), true
	}

	if !a.HasTrack {
		return "", false
	}

	switch name {
	case "track_id":
		return a.TrackID, true
	case "track_title":
		return a.TrackTitle, true
	case "track_title_base":
		return a.TrackTitleBase, true
	case "track_artist":
		return a.TrackArtist, true
	case "track_composer":
		return a.TrackComposer, true
	case "version":
		return a.TrackVersion, true
	case "isrc":
		return a.ISRC, true
	case "track_number":
		return fmt.Sprintf("%02d", a.TrackNumber), true
	case "disc_number":
		return fmt.Sprintf("%02d", a.DiscNumber), true
	}
	return "", false
}
