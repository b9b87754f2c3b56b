package transfer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestFetchWritesFile(t *testing.T) {
	payload := []byte("audio bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "track.flac")
	c := NewClient(srv.Client(), 0)
	if err := c.Fetch(context.Background(), srv.URL, dest); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("Failed to read fetched file: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("Fetched content = %q, want %q", got, payload)
	}
}

func TestFetchContentLengthMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Declare more bytes than we send, then cut the connection.
		w.Header().Set("Content-Length", "1000")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("short"))
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		conn, _, err := w.(http.Hijacker).Hijack()
		if err == nil {
			conn.Close()
		}
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "track.flac")
	c := NewClient(srv.Client(), 0)
	err := c.Fetch(context.Background(), srv.URL, dest)
	if err == nil {
		t.Fatal("Expected an error for a truncated transfer")
	}

	if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
		t.Error("Expected partial file to be removed")
	}
}

func TestFetchNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "track.flac")
	c := NewClient(srv.Client(), 0)
	if err := c.Fetch(context.Background(), srv.URL, dest); err == nil {
		t.Fatal("Expected an error for a 404 response")
	}
	if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
		t.Error("Expected no file for a failed fetch")
	}
}
