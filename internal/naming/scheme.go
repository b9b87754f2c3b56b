package naming

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/calvez/qbzgrab/internal/constants"
)

// Scheme is one candidate set of naming templates for an item.
type Scheme struct {
	Folder         string
	Track          string
	MultiDiscTrack string
}

// DefaultScheme is the hard-coded last-resort scheme, adopted
// unconditionally when no candidate fits the path budget.
func DefaultScheme() Scheme {
	return Scheme{
		Folder:         constants.DefaultFolderTemplate,
		Track:          constants.DefaultTrackTemplate,
		MultiDiscTrack: constants.DefaultMultiDiscTrackTemplate,
	}
}

// formatDefaults replace templates that reference lossless-only fields
// when the resolved container format has no such notion.
var formatDefaults = map[string]Scheme{
	constants.FormatMP3: {
		Folder: "{album_artist} - {album_title} ({year}) [MP3]",
		Track:  "{track_number} - {track_title}",
	},
	constants.FormatUnknown: {
		Folder: "{album_artist} - {album_title}",
		Track:  "{track_number} - {track_title}",
	},
}

// Candidates assembles the ordered fallback chain tried by Resolve:
//
//  1. the user-configured scheme
//  2. the fallback folder with the configured track templates
//  3. the fallback folder with the default track templates
//  4. the hard-coded default scheme
//
// With noFallback set only the configured scheme and the default remain.
func Candidates(configured Scheme, fallbackFolder string, noFallback bool) []Scheme {
	def := DefaultScheme()
	if noFallback {
		return []Scheme{configured, def}
	}
	return []Scheme{
		configured,
		{Folder: fallbackFolder, Track: configured.Track, MultiDiscTrack: configured.MultiDiscTrack},
		{Folder: fallbackFolder, Track: def.Track, MultiDiscTrack: def.MultiDiscTrack},
		def,
	}
}

// forFormat normalizes a scheme for the resolved container format:
// stray extensions are trimmed from the templates, and templates that
// reference bit depth or sampling rate are swapped for format defaults
// when those fields are meaningless (MP3, undetermined).
func (s Scheme) forFormat(format string) Scheme {
	out := Scheme{
		Folder:         trimTemplateExt(s.Folder),
		Track:          trimTemplateExt(s.Track),
		MultiDiscTrack: strings.TrimSpace(s.MultiDiscTrack),
	}
	defaults, restricted := formatDefaults[format]
	if !restricted {
		return out
	}
	if TemplateReferences(out.Folder, "bit_depth", "sampling_rate") {
		out.Folder = defaults.Folder
	}
	if TemplateReferences(out.Track, "bit_depth", "sampling_rate") {
		out.Track = defaults.Track
	}
	return out
}

func trimTemplateExt(s string) string {
	s = strings.TrimSuffix(s, constants.ExtMP3)
	s = strings.TrimSuffix(s, constants.ExtFLAC)
	return strings.TrimSpace(s)
}

// RenderFolder renders a folder template that may contain '/'-separated
// path segments. Each segment is rendered and sanitized independently so
// sanitization can never merge or delete a path boundary; slashes inside
// attribute values become full-width characters, not new directories.
func RenderFolder(folder string, a *Attributes) (string, error) {
	parts := strings.Split(folder, "/")
	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		tmpl, err := ParseTemplate(part)
		if err != nil {
			return "", err
		}
		rendered, err := tmpl.Render(a)
		if err != nil {
			return "", err
		}
		cleaned = append(cleaned, Clean(rendered))
	}
	return filepath.Join(cleaned...), nil
}

// renderFolderLenient renders like RenderFolder but substitutes the raw
// segment text when a field is unavailable. Used only for the forced
// default scheme, which must always produce a directory.
func renderFolderLenient(folder string, a *Attributes) string {
	parts := strings.Split(folder, "/")
	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		rendered := part
		if tmpl, err := ParseTemplate(part); err == nil {
			if r, err := tmpl.Render(a); err == nil {
				rendered = r
			}
		}
		cleaned = append(cleaned, Clean(rendered))
	}
	return filepath.Join(cleaned...)
}

// RenderTrackName renders and sanitizes a track filename template.
func RenderTrackName(tmpl string, a *Attributes) (string, error) {
	t, err := ParseTemplate(tmpl)
	if err != nil {
		return "", err
	}
	rendered, err := t.Render(a)
	if err != nil {
		return "", err
	}
	return Clean(rendered), nil
}

// DiscDir returns the per-disc subdirectory name for multi-disc releases
// that keep one directory per disc.
func DiscDir(prefix string, discNumber int) string {
	return fmt.Sprintf("%s %02d", prefix, discNumber)
}

// ResolveRequest carries everything Resolve needs to pick a scheme for
// one item. Tracks holds the track-scoped attributes of every track in
// the item (a single element in track-download mode).
type ResolveRequest struct {
	BaseDir    string
	Release    *Attributes
	Tracks     []*Attributes
	Format     string
	Extension  string
	MultiDisc  bool
	OneDir     bool
	DiscPrefix string
	Candidates []Scheme
}

// Resolution is the outcome of scheme selection for one item. The choice
// never outlives the item: subsequent items resolve from scratch.
type Resolution struct {
	Scheme Scheme
	// Dir is the sanitized, base-joined release directory.
	Dir string
	// ForcedDefault is set when no candidate fit the budget and the
	// default scheme was adopted regardless.
	ForcedDefault bool
}

// Resolve tries each candidate scheme in order and adopts the first one
// whose fully joined path stays within the budget for every track. A
// candidate that references an unavailable field is discarded the same
// way as an over-long one. When every candidate fails, the default
// scheme is adopted unconditionally.
func Resolve(req ResolveRequest) Resolution {
	for _, cand := range req.Candidates {
		sch := cand.forFormat(req.Format)
		dir, err := RenderFolder(sch.Folder, req.Release)
		if err != nil {
			continue
		}
		full := filepath.Join(req.BaseDir, dir)
		if fitsBudget(full, sch, req) {
			return Resolution{Scheme: sch, Dir: full}
		}
	}

	sch := DefaultScheme().forFormat(req.Format)
	dir := renderFolderLenient(sch.Folder, req.Release)
	return Resolution{
		Scheme:        sch,
		Dir:           filepath.Join(req.BaseDir, dir),
		ForcedDefault: true,
	}
}

func fitsBudget(dir string, sch Scheme, req ResolveRequest) bool {
	for _, trk := range req.Tracks {
		trackDir := dir
		var name string
		var err error
		if req.MultiDisc && req.OneDir {
			name, err = RenderTrackName(sch.MultiDiscTrack, trk)
		} else {
			if req.MultiDisc {
				trackDir = filepath.Join(dir, DiscDir(req.DiscPrefix, trk.DiscNumber))
			}
			name, err = RenderTrackName(sch.Track, trk)
		}
		if err != nil {
			return false
		}
		full := filepath.Join(trackDir, name) + req.Extension
		if utf8.RuneCountInString(full) > constants.MaxPathLength {
			return false
		}
	}
	return true
}
