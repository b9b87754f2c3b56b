package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
)

// ErrInterrupted reports a transfer that ended with fewer bytes than the
// server declared. The caller decides whether to retry; no automatic
// retry happens at this layer.
var ErrInterrupted = errors.New("transfer interrupted")

// Fetch streams the content at url into the file at dest. When the
// response declares a content length, the received byte count must match
// it exactly or the partial file is removed and ErrInterrupted returned.
func (c *Client) Fetch(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}

	written, copyErr := io.Copy(f, resp.Body)
	closeErr := f.Close()

	if copyErr != nil {
		_ = os.Remove(dest)
		return fmt.Errorf("failed to write %s: %w", dest, copyErr)
	}
	if closeErr != nil {
		_ = os.Remove(dest)
		return fmt.Errorf("failed to close %s: %w", dest, closeErr)
	}

	if resp.ContentLength > 0 && written != resp.ContentLength {
		_ = os.Remove(dest)
		return fmt.Errorf("%w: got %d of %d bytes for %s", ErrInterrupted, written, resp.ContentLength, dest)
	}
	return nil
}
