package tags

import (
	"testing"

	"github.com/calvez/qbzgrab/internal/catalog"
	"github.com/calvez/qbzgrab/internal/config"
)

func TestTrackTitle(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		version string
		work    string
		want    string
	}{
		{name: "no version", title: "Song", want: "Song"},
		{name: "version appended", title: "Song", version: "Remix", want: "Song (Remix)"},
		{name: "version already present", title: "Song (Remix)", version: "Remix", want: "Song (Remix)"},
		{name: "version present in different case", title: "Song (remix)", version: "Remix", want: "Song (remix)"},
		{name: "work prepended", title: "II. Allegro", work: "Symphony No. 5", want: "Symphony No. 5: II. Allegro"},
		{name: "work already present", title: "Symphony No. 5: II. Allegro", work: "Symphony No. 5", want: "Symphony No. 5: II. Allegro"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrackTitle(tt.title, tt.version, tt.work)
			if got != tt.want {
				t.Errorf("TrackTitle(%q, %q, %q) = %q, want %q", tt.title, tt.version, tt.work, got, tt.want)
			}
		})
	}
}

func TestFormatGenres(t *testing.T) {
	tests := []struct {
		name   string
		genres []string
		want   string
	}{
		{
			name:   "hierarchy flattened and deduplicated",
			genres: []string{"Pop/Rock", "Pop/Rock→Rock", "Pop/Rock→Rock→Indie"},
			want:   "Pop, Rock, Indie",
		},
		{
			name:   "single genre",
			genres: []string{"Jazz"},
			want:   "Jazz",
		},
		{
			name:   "empty",
			genres: nil,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatGenres(tt.genres)
			if got != tt.want {
				t.Errorf("FormatGenres(%v) = %q, want %q", tt.genres, got, tt.want)
			}
		})
	}
}

func TestFormatCopyright(t *testing.T) {
	got := FormatCopyright("(P) 2020 (C) Label Records")
	want := "℗ 2020 © Label Records"
	if got != want {
		t.Errorf("FormatCopyright = %q, want %q", got, want)
	}
}

func TestFormatLabel(t *testing.T) {
	got := FormatLabel("  Some   Label \t Records ")
	if got != "Some Label Records" {
		t.Errorf("FormatLabel = %q", got)
	}
}

func testRelease() *catalog.Release {
	return &catalog.Release{
		ID:          "album1",
		Title:       "Album",
		Version:     "Deluxe",
		Artist:      "Artist",
		Artists:     []catalog.Artist{{Name: "Artist", Roles: []string{"main-artist"}}},
		Genres:      []string{"Pop/Rock→Rock"},
		Composer:    "Composer",
		Label:       "Label",
		Copyright:   "(P) 2020 Label",
		UPC:         "0060254735180",
		ReleaseDate: "2020-03-13",
		ProductType: "album",
		MediaCount:  1,
		TrackCount:  10,
	}
}

func TestBuild(t *testing.T) {
	rel := testRelease()
	rel.ParentalWarning = true
	trk := &catalog.Track{
		ID:          "t1",
		Title:       "Song",
		Version:     "Live",
		Performer:   "Performer",
		TrackNumber: 3,
		MediaNumber: 1,
		ISRC:        "USUM72000001",
	}

	got := Build(rel, trk, config.TagConfig{})

	want := map[string]string{
		"ALBUM":          "Album (Deluxe)",
		"TITLE":          "Song (Live)",
		"ALBUMARTIST":    "Artist",
		"ARTIST":         "Performer",
		"COMPOSER":       "Composer",
		"DATE":           "2020-03-13",
		"YEAR":           "2020",
		"GENRE":          "Pop, Rock",
		"COPYRIGHT":      "℗ 2020 Label",
		"LABEL":          "Label",
		"BARCODE":        "0060254735180",
		"ISRC":           "USUM72000001",
		"MEDIATYPE":      "album",
		"ITUNESADVISORY": "1",
		"TRACKNUMBER":    "3",
		"TRACKTOTAL":     "10",
		"DISCNUMBER":     "1",
		"DISCTOTAL":      "1",
	}

	if len(got) != len(want) {
		t.Errorf("Expected %d tags, got %d: %v", len(want), len(got), got)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("Tag %s = %q, want %q", k, got[k], v)
		}
	}
}

func TestBuildTogglesSuppressTags(t *testing.T) {
	rel := testRelease()
	trk := &catalog.Track{ID: "t1", Title: "Song", TrackNumber: 1, MediaNumber: 1}

	got := Build(rel, trk, config.TagConfig{
		NoGenre:     true,
		NoCopyright: true,
		NoLabel:     true,
		NoUPC:       true,
	})

	for _, k := range []string{"GENRE", "COPYRIGHT", "LABEL", "BARCODE"} {
		if _, ok := got[k]; ok {
			t.Errorf("Expected %s tag to be suppressed", k)
		}
	}
	if got["TITLE"] != "Song" {
		t.Errorf("Expected TITLE to survive, got %q", got["TITLE"])
	}
	if got["ITUNESADVISORY"] != "0" {
		t.Errorf("Expected explicit flag to render as 0, got %q", got["ITUNESADVISORY"])
	}
}

func TestBuildFallsBackToReleaseArtist(t *testing.T) {
	rel := testRelease()
	trk := &catalog.Track{ID: "t1", Title: "Song", TrackNumber: 1}

	got := Build(rel, trk, config.TagConfig{})
	if got["ARTIST"] != "Artist" {
		t.Errorf("Expected ARTIST fallback to release artist, got %q", got["ARTIST"])
	}
}
