// Package tags builds the metadata tag set written into downloaded files.
//
// Tags are produced as a flat field→value map keyed by Vorbis comment
// names; the tagging package translates them to ID3 frames for MP3 output.
package tags

import (
	"strconv"
	"strings"

	"github.com/calvez/qbzgrab/internal/catalog"
	"github.com/calvez/qbzgrab/internal/config"
)

// TrackTitle builds the display title for a track: the version suffix is
// appended in parentheses unless the title already mentions it, and a
// classical work is prepended the same way.
func TrackTitle(title, version, work string) string {
	title = strings.TrimSpace(title)
	if version != "" && !strings.Contains(strings.ToLower(title), strings.ToLower(version)) {
		title = title + " (" + version + ")"
	}
	if work != "" && !strings.Contains(strings.ToLower(title), strings.ToLower(work)) {
		title = work + ": " + title
	}
	return title
}

// ReleaseTitle builds the display title for a release, appending the
// version unless already present.
func ReleaseTitle(title, version string) string {
	title = strings.TrimSpace(title)
	if version != "" && !strings.Contains(strings.ToLower(title), strings.ToLower(version)) {
		title = title + " (" + version + ")"
	}
	return title
}

// FormatGenres flattens the catalog's genre hierarchy into a deduplicated
// list: entries like "Pop/Rock→Rock→Indie" contribute each level once, in
// first-seen order.
func FormatGenres(genres []string) string {
	seen := make(map[string]bool)
	var out []string
	for _, g := range genres {
		for _, part := range strings.FieldsFunc(g, func(r rune) bool {
			return r == '/' || r == '→'
		}) {
			part = strings.TrimSpace(part)
			if part == "" || seen[part] {
				continue
			}
			seen[part] = true
			out = append(out, part)
		}
	}
	return strings.Join(out, ", ")
}

// FormatCopyright replaces the ASCII phonographic and copyright markers
// with their proper symbols.
func FormatCopyright(c string) string {
	c = strings.ReplaceAll(c, "(P)", "℗")
	c = strings.ReplaceAll(c, "(C)", "©")
	return strings.TrimSpace(c)
}

// FormatLabel collapses runs of whitespace inside a label name.
func FormatLabel(label string) string {
	return strings.Join(strings.Fields(label), " ")
}

// Build assembles the tag map for one track of a release, honoring the
// per-category toggles from the configuration. Empty source fields are
// omitted entirely.
func Build(rel *catalog.Release, trk *catalog.Track, tc config.TagConfig) map[string]string {
	t := make(map[string]string)

	set := func(key, value string) {
		if value != "" {
			t[key] = value
		}
	}

	if !tc.NoAlbumTitle {
		set("ALBUM", ReleaseTitle(rel.Title, rel.Version))
	}
	if !tc.NoTrackTitle {
		set("TITLE", TrackTitle(trk.Title, trk.Version, trk.Work))
	}
	if !tc.NoAlbumArtist {
		set("ALBUMARTIST", rel.MainArtist())
	}
	if !tc.NoTrackArtist {
		artist := trk.Performer
		if artist == "" {
			artist = rel.Artist
		}
		set("ARTIST", artist)
	}
	if !tc.NoComposer {
		composer := trk.Composer
		if composer == "" {
			composer = rel.Composer
		}
		set("COMPOSER", composer)
	}
	if !tc.NoReleaseDate {
		set("DATE", rel.ReleaseDate)
		if len(rel.ReleaseDate) >= 4 {
			set("YEAR", rel.ReleaseDate[:4])
		}
	}
	if !tc.NoGenre {
		genre := FormatGenres(rel.Genres)
		if genre == "" {
			genre = rel.Genre
		}
		set("GENRE", genre)
	}
	if !tc.NoCopyright {
		set("COPYRIGHT", FormatCopyright(rel.Copyright))
	}
	if !tc.NoLabel {
		set("LABEL", FormatLabel(rel.Label))
	}
	if !tc.NoUPC {
		set("BARCODE", rel.UPC)
	}
	if !tc.NoISRC {
		set("ISRC", trk.ISRC)
	}
	if !tc.NoMediaType {
		set("MEDIATYPE", rel.ProductType)
	}
	if !tc.NoExplicit {
		if rel.ParentalWarning {
			t["ITUNESADVISORY"] = "1"
		} else {
			t["ITUNESADVISORY"] = "0"
		}
	}
	if !tc.NoTrackNumber {
		set("TRACKNUMBER", strconv.Itoa(trk.TrackNumber))
	}
	if !tc.NoTrackTotal && rel.TrackCount > 0 {
		t["TRACKTOTAL"] = strconv.Itoa(rel.TrackCount)
	}
	if !tc.NoDiscNumber && trk.MediaNumber > 0 {
		t["DISCNUMBER"] = strconv.Itoa(trk.MediaNumber)
	}
	if !tc.NoDiscTotal && rel.MediaCount > 0 {
		t["DISCTOTAL"] = strconv.Itoa(rel.MediaCount)
	}

	return t
}
