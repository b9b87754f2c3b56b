// Package artwork fetches release cover images and manages the temporary
// copy embedded into tagged files.
package artwork

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/calvez/qbzgrab/internal/constants"
	"github.com/calvez/qbzgrab/internal/logger"
	"github.com/calvez/qbzgrab/internal/transfer"
)

// validSizes are the resolution tokens the catalog's image CDN accepts.
var validSizes = map[string]bool{
	"50":  true,
	"100": true,
	"150": true,
	"300": true,
	"600": true,
	"max": true,
	"org": true,
}

// Manager downloads covers and tracks the embed-copy lifecycle for one
// release directory scope.
type Manager struct {
	client *transfer.Client
	log    *logger.Logger
}

// NewManager creates an artwork manager.
func NewManager(client *transfer.Client, log *logger.Logger) *Manager {
	if log == nil {
		log = logger.Default()
	}
	return &Manager{client: client, log: log.WithComponent("artwork")}
}

// SizedURL substitutes the requested resolution token into a catalog
// artwork URL. Unknown sizes leave the URL untouched.
func SizedURL(url, size string) string {
	if !validSizes[size] {
		return url
	}
	return strings.Replace(url, "_600.", "_"+size+".", 1)
}

// Fetch downloads the artwork at url into dir/name at the requested
// resolution. The transfer is skipped when the target file already
// exists, so one cover download serves every track of the scope.
func (m *Manager) Fetch(ctx context.Context, url, dir, name, size string) error {
	dest := filepath.Join(dir, name)
	if _, err := os.Stat(dest); err == nil {
		m.log.Info("Artwork already downloaded", "path", dest)
		return nil
	}
	return m.client.Fetch(ctx, SizedURL(url, size), dest)
}

// EmbedPath locates the embed copy for a track directory: the directory
// itself first, then its parent for multi-disc-in-subfolder layouts where
// the shared copy lives in the release directory.
func EmbedPath(trackDir string) (string, bool) {
	own := filepath.Join(trackDir, constants.EmbedCoverName)
	if _, err := os.Stat(own); err == nil {
		return own, true
	}
	parent := filepath.Join(filepath.Dir(trackDir), constants.EmbedCoverName)
	if _, err := os.Stat(parent); err == nil {
		return parent, true
	}
	return "", false
}

// Cleanup removes the embed copy from a release directory once every
// track of the scope has been tagged. Missing files are not an error.
func (m *Manager) Cleanup(dir string) {
	path := filepath.Join(dir, constants.EmbedCoverName)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		m.log.Warn("Failed to remove embedded cover copy", "path", path, "error", err)
	}
}
