package naming

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/calvez/qbzgrab/internal/constants"
)

func TestCandidates(t *testing.T) {
	configured := Scheme{
		Folder:         "{album_artist}/{album_title}",
		Track:          "{track_number}. {track_title}",
		MultiDiscTrack: "{disc_number}-{track_number}. {track_title}",
	}

	chain := Candidates(configured, constants.FallbackFolderTemplate, false)
	if len(chain) != 4 {
		t.Fatalf("Expected 4 candidates, got %d", len(chain))
	}
	if chain[0] != configured {
		t.Error("Expected first candidate to be the configured scheme")
	}
	if chain[1].Folder != constants.FallbackFolderTemplate || chain[1].Track != configured.Track {
		t.Error("Expected second candidate to pair fallback folder with configured track template")
	}
	if chain[2].Folder != constants.FallbackFolderTemplate || chain[2].Track != DefaultScheme().Track {
		t.Error("Expected third candidate to pair fallback folder with default track template")
	}
	if chain[3] != DefaultScheme() {
		t.Error("Expected last candidate to be the default scheme")
	}

	short := Candidates(configured, constants.FallbackFolderTemplate, true)
	if len(short) != 2 {
		t.Fatalf("Expected 2 candidates with fallback disabled, got %d", len(short))
	}
	if short[0] != configured || short[1] != DefaultScheme() {
		t.Error("Expected fallback-disabled chain to hold configured and default schemes only")
	}
}

func TestResolvePicksFirstFittingCandidate(t *testing.T) {
	rel := testAttributes()
	trk := testAttributes()

	long := Scheme{Folder: strings.Repeat("x", 300), Track: "{track_number} - {track_title_base}"}
	fits := Scheme{Folder: "{album_artist}", Track: "{track_number} - {track_title_base}"}

	res := Resolve(ResolveRequest{
		BaseDir:    "/base",
		Release:    rel,
		Tracks:     []*Attributes{trk},
		Format:     constants.FormatFLAC,
		Extension:  constants.ExtFLAC,
		Candidates: []Scheme{long, fits},
	})

	if res.ForcedDefault {
		t.Fatal("Expected a candidate to fit without forcing the default")
	}
	if res.Scheme.Folder != fits.Folder {
		t.Errorf("Expected second candidate to be selected, got folder %q", res.Scheme.Folder)
	}
	if res.Dir != filepath.Join("/base", "Artist") {
		t.Errorf("Unexpected resolved dir: %q", res.Dir)
	}
}

func TestResolveBudgetBoundary(t *testing.T) {
	// Full path length is len("/base/") + 100 + len("/") + n + len(".flac")
	// = 112 + n runes for a track name of n characters.
	folder := strings.Repeat("a", 100)

	tests := []struct {
		name       string
		trackLen   int
		wantForced bool
	}{
		{name: "exactly at budget", trackLen: constants.MaxPathLength - 112, wantForced: false},
		{name: "one over budget", trackLen: constants.MaxPathLength - 111, wantForced: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cand := Scheme{Folder: folder, Track: strings.Repeat("b", tt.trackLen)}
			res := Resolve(ResolveRequest{
				BaseDir:    "/base",
				Release:    testAttributes(),
				Tracks:     []*Attributes{testAttributes()},
				Format:     constants.FormatFLAC,
				Extension:  constants.ExtFLAC,
				Candidates: []Scheme{cand},
			})
			if res.ForcedDefault != tt.wantForced {
				t.Errorf("ForcedDefault = %v, want %v", res.ForcedDefault, tt.wantForced)
			}
		})
	}
}

func TestResolveMissingFieldDiscardsCandidate(t *testing.T) {
	rel := testAttributes()
	rel.BitDepth = nil
	trk := testAttributes()
	trk.BitDepth = nil

	needsDepth := Scheme{Folder: "{album_artist} [{bit_depth}]", Track: "{track_number}"}
	plain := Scheme{Folder: "{album_artist}", Track: "{track_number}"}

	res := Resolve(ResolveRequest{
		BaseDir:    "/base",
		Release:    rel,
		Tracks:     []*Attributes{trk},
		Format:     constants.FormatFLAC,
		Extension:  constants.ExtFLAC,
		Candidates: []Scheme{needsDepth, plain},
	})

	if res.ForcedDefault {
		t.Fatal("Expected the plain candidate to fit")
	}
	if res.Scheme.Folder != plain.Folder {
		t.Errorf("Expected candidate without bit_depth to be selected, got %q", res.Scheme.Folder)
	}
}

func TestResolveMultiDiscBudget(t *testing.T) {
	trk := testAttributes()
	trk.DiscNumber = 2

	cand := Scheme{
		Folder:         "{album_artist}",
		Track:          "{track_number} - {track_title_base}",
		MultiDiscTrack: "{disc_number}.{track_number} - {track_title_base}",
	}

	res := Resolve(ResolveRequest{
		BaseDir:    "/base",
		Release:    testAttributes(),
		Tracks:     []*Attributes{trk},
		Format:     constants.FormatFLAC,
		Extension:  constants.ExtFLAC,
		MultiDisc:  true,
		DiscPrefix: "CD",
		Candidates: []Scheme{cand},
	})

	if res.ForcedDefault {
		t.Fatal("Expected candidate to fit")
	}
	want := filepath.Join("/base", "Artist")
	if res.Dir != want {
		t.Errorf("Resolved dir = %q, want %q", res.Dir, want)
	}
	if got := DiscDir("CD", trk.DiscNumber); got != "CD 02" {
		t.Errorf("DiscDir = %q, want %q", got, "CD 02")
	}
}

func TestResolveMP3FormatSubstitution(t *testing.T) {
	rel := testAttributes()
	rel.Format = constants.FormatMP3
	rel.BitDepth = nil
	rel.SamplingRate = nil

	configured := Scheme{
		Folder: "{album_artist} - {album_title} ({year}) [{format} {bit_depth}]",
		Track:  "{track_number} - {track_title_base}",
	}

	res := Resolve(ResolveRequest{
		BaseDir:    "/base",
		Release:    rel,
		Tracks:     []*Attributes{testAttributes()},
		Format:     constants.FormatMP3,
		Extension:  constants.ExtMP3,
		Candidates: []Scheme{configured},
	})

	if res.ForcedDefault {
		t.Fatal("Expected MP3-substituted candidate to fit")
	}
	want := filepath.Join("/base", "Artist - Album (Deluxe) (2020) [MP3]")
	if res.Dir != want {
		t.Errorf("Resolved dir = %q, want %q", res.Dir, want)
	}
}

func TestRenderFolderSlashInValueStaysInSegment(t *testing.T) {
	rel := testAttributes()
	rel.AlbumArtist = "AC/DC"

	dir, err := RenderFolder("{album_artist}/{album_title_base}", rel)
	if err != nil {
		t.Fatalf("RenderFolder failed: %v", err)
	}
	want := filepath.Join("AC／DC", "Album")
	if dir != want {
		t.Errorf("RenderFolder = %q, want %q", dir, want)
	}
}
