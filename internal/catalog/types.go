// Package catalog talks to the remote music catalog service: release and
// track metadata plus per-track streaming URLs.
package catalog

import "strings"

// Artist is one credited artist on a release.
type Artist struct {
	Name  string
	Roles []string
}

// Image holds the artwork URLs the catalog exposes for a release.
type Image struct {
	Small string
	Large string
}

// Goodie is a supplementary release document, typically a PDF booklet.
type Goodie struct {
	ID  string
	URL string
}

// Release is an album, single or EP with its track listing.
type Release struct {
	ID              string
	Title           string
	Version         string
	URL             string
	ReleaseType     string
	Streamable      bool
	Artist          string
	Artists         []Artist
	Genre           string
	Genres          []string
	Composer        string
	Label           string
	Copyright       string
	UPC             string
	ReleaseDate     string
	ProductType     string
	ParentalWarning bool
	MediaCount      int
	TrackCount      int
	Image           Image
	Goodies         []Goodie
	Tracks          []Track
}

// Track is one track of a release. Album is populated on metadata fetched
// in track-download mode, where the catalog inlines the parent release.
type Track struct {
	ID           string
	Title        string
	Version      string
	Work         string
	Performer    string
	Composer     string
	TrackNumber  int
	MediaNumber  int
	ISRC         string
	BitDepth     int
	SamplingRate float64
	ReleaseDate  string
	Album        *Release
}

// Restriction is a service-side limitation attached to a stream lookup.
type Restriction struct {
	Code string
}

// StreamInfo is the result of resolving a track's streaming URL at a
// given quality tier.
type StreamInfo struct {
	URL          string
	BitDepth     int
	SamplingRate float64
	Sample       bool
	Restrictions []Restriction
}

// MainArtist returns the release's main artists joined for display:
// "A, B & C" when several artists carry the main-artist role, otherwise
// the single credited artist.
func (r *Release) MainArtist() string {
	var main []string
	for _, a := range r.Artists {
		for _, role := range a.Roles {
			if role == "main-artist" {
				main = append(main, a.Name)
				break
			}
		}
	}
	if len(main) > 1 {
		return strings.Join(main[:len(main)-1], ", ") + " & " + main[len(main)-1]
	}
	return r.Artist
}
