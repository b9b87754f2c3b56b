package downloader

import (
	"strings"

	"github.com/calvez/qbzgrab/internal/catalog"
	"github.com/calvez/qbzgrab/internal/naming"
	"github.com/calvez/qbzgrab/internal/tags"
)

// releaseAttributes builds the release-scoped naming attributes once per
// item; track records are derived from this one so every candidate scheme
// sees the same values.
func releaseAttributes(rel *catalog.Release, dec QualityDecision) *naming.Attributes {
	genre := tags.FormatGenres(rel.Genres)
	if genre == "" {
		genre = rel.Genre
	}
	year := ""
	if len(rel.ReleaseDate) >= 4 {
		year = rel.ReleaseDate[:4]
	}
	return &naming.Attributes{
		AlbumID:        rel.ID,
		AlbumURL:       rel.URL,
		AlbumTitle:     tags.ReleaseTitle(rel.Title, rel.Version),
		AlbumTitleBase: strings.TrimSpace(rel.Title),
		AlbumArtist:    rel.MainArtist(),
		AlbumGenre:     genre,
		AlbumComposer:  rel.Composer,
		Label:          tags.FormatLabel(rel.Label),
		Copyright:      tags.FormatCopyright(rel.Copyright),
		UPC:            rel.UPC,
		ReleaseDate:    rel.ReleaseDate,
		Year:           year,
		MediaType:      rel.ProductType,
		Format:         dec.FileFormat,
		BitDepth:       dec.BitDepth,
		SamplingRate:   dec.SamplingRate,
		AlbumVersion:   rel.Version,
		DiscCount:      rel.MediaCount,
		TrackCount:     rel.TrackCount,
	}
}

// trackAttributes extends the release record with one track's fields.
func trackAttributes(base *naming.Attributes, rel *catalog.Release, trk *catalog.Track) *naming.Attributes {
	a := *base
	a.HasTrack = true
	a.TrackID = trk.ID
	a.TrackTitle = tags.TrackTitle(trk.Title, trk.Version, trk.Work)
	a.TrackTitleBase = strings.TrimSpace(trk.Title)
	a.TrackArtist = trk.Performer
	if a.TrackArtist == "" {
		a.TrackArtist = rel.Artist
	}
	a.TrackComposer = trk.Composer
	if a.TrackComposer == "" {
		a.TrackComposer = rel.Composer
	}
	a.TrackVersion = trk.Version
	a.ISRC = trk.ISRC
	a.TrackNumber = trk.TrackNumber
	a.DiscNumber = trk.MediaNumber
	return &a
}
