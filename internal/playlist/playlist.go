// Package playlist generates m3u files for downloaded directories.
package playlist

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/calvez/qbzgrab/internal/constants"
)

// audioExts are the file extensions included in playlists.
var audioExts = map[string]bool{
	constants.ExtFLAC: true,
	constants.ExtMP3:  true,
}

// Entries walks dir and returns the playlist entries as slash-separated
// paths relative to dir, in lexical order. Disc subdirectories keep their
// position in the listing because the walk is depth-first and sorted.
func Entries(dir string) ([]string, error) {
	var entries []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !audioExts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		entries = append(entries, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
	}
	sort.Strings(entries)
	return entries, nil
}

// Write generates an m3u playlist inside dir, named after the directory.
// Directories without audio files produce no playlist.
func Write(dir string) error {
	entries, err := Entries(dir)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("#EXTM3U\n")
	for _, e := range entries {
		name := strings.TrimSuffix(filepath.Base(e), filepath.Ext(e))
		fmt.Fprintf(&b, "#EXTINF:-1,%s\n%s\n", name, e)
	}

	name := filepath.Base(dir) + constants.ExtM3U
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(b.String()), constants.FilePermissions); err != nil {
		return fmt.Errorf("failed to write playlist: %w", err)
	}
	return nil
}
