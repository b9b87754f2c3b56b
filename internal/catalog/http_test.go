package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newCatalogServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/album/get", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("album_id") != "123" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{
			"id": 123,
			"title": "Album",
			"version": "Deluxe",
			"url": "https://example.com/album/123",
			"release_type": "album",
			"streamable": true,
			"artist": {"name": "Artist"},
			"artists": [
				{"name": "Artist", "roles": ["main-artist"]},
				{"name": "Guest", "roles": ["featured-artist"]}
			],
			"genre": {"name": "Rock"},
			"genres_list": ["Pop/Rock", "Pop/Rock→Rock"],
			"label": {"name": "Label"},
			"copyright": "(P) 2020 Label",
			"upc": "0060254735180",
			"release_date_original": "2020-03-13",
			"product_type": "album",
			"media_count": 2,
			"tracks_count": 2,
			"image": {"small": "https://img/cover_230.jpg", "large": "https://img/cover_600.jpg"},
			"goodies": [{"id": 77, "url": "https://goodies/booklet.pdf"}],
			"tracks": {"items": [
				{"id": 1001, "title": "One", "track_number": 1, "media_number": 1,
				 "performer": {"name": "Artist"}, "isrc": "USUM72000001",
				 "maximum_bit_depth": 24, "maximum_sampling_rate": 96},
				{"id": 1002, "title": "Two", "track_number": 1, "media_number": 2,
				 "performer": {"name": "Artist"}}
			]}
		}`))
	})
	mux.HandleFunc("/track/getFileUrl", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("format_id") == "" || q.Get("intent") != "stream" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		w.Write([]byte(`{
			"url": "https://stream.example.com/1001",
			"bit_depth": 16,
			"sampling_rate": 44.1,
			"sample": false,
			"restrictions": [{"code": "FormatRestrictedByFormatAvailability"}]
		}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPClientGetRelease(t *testing.T) {
	srv := newCatalogServer(t)
	c := NewHTTPClient(srv.URL)

	rel, err := c.GetRelease(context.Background(), "123")
	if err != nil {
		t.Fatalf("GetRelease failed: %v", err)
	}

	if rel.ID != "123" {
		t.Errorf("Expected ID 123, got %s", rel.ID)
	}
	if rel.Title != "Album" || rel.Version != "Deluxe" {
		t.Errorf("Unexpected title/version: %s / %s", rel.Title, rel.Version)
	}
	if !rel.Streamable {
		t.Error("Expected release to be streamable")
	}
	if rel.MediaCount != 2 || rel.TrackCount != 2 {
		t.Errorf("Unexpected counts: %d media, %d tracks", rel.MediaCount, rel.TrackCount)
	}
	if len(rel.Tracks) != 2 {
		t.Fatalf("Expected 2 tracks, got %d", len(rel.Tracks))
	}
	if rel.Tracks[0].ID != "1001" || rel.Tracks[0].BitDepth != 24 {
		t.Errorf("Unexpected first track: %+v", rel.Tracks[0])
	}
	if rel.Tracks[1].MediaNumber != 2 {
		t.Errorf("Expected second track on disc 2, got %d", rel.Tracks[1].MediaNumber)
	}
	if rel.Image.Large != "https://img/cover_600.jpg" {
		t.Errorf("Unexpected image URL: %s", rel.Image.Large)
	}
	if len(rel.Goodies) != 1 || rel.Goodies[0].ID != "77" || rel.Goodies[0].URL != "https://goodies/booklet.pdf" {
		t.Errorf("Unexpected goodies: %+v", rel.Goodies)
	}
	if got := rel.MainArtist(); got != "Artist" {
		t.Errorf("Expected single main artist, got %q", got)
	}
}

func TestHTTPClientGetReleaseNotFound(t *testing.T) {
	srv := newCatalogServer(t)
	c := NewHTTPClient(srv.URL)

	if _, err := c.GetRelease(context.Background(), "999"); err == nil {
		t.Error("Expected an error for an unknown release")
	}
}

func TestHTTPClientGetStreamInfo(t *testing.T) {
	srv := newCatalogServer(t)
	c := NewHTTPClient(srv.URL)

	info, err := c.GetStreamInfo(context.Background(), "1001", 27)
	if err != nil {
		t.Fatalf("GetStreamInfo failed: %v", err)
	}

	if info.URL != "https://stream.example.com/1001" {
		t.Errorf("Unexpected stream URL: %s", info.URL)
	}
	if info.BitDepth != 16 || info.SamplingRate != 44.1 {
		t.Errorf("Unexpected stream quality: %d/%g", info.BitDepth, info.SamplingRate)
	}
	if len(info.Restrictions) != 1 || info.Restrictions[0].Code != "FormatRestrictedByFormatAvailability" {
		t.Errorf("Unexpected restrictions: %+v", info.Restrictions)
	}
}

func TestMainArtistJoinsMultipleMains(t *testing.T) {
	rel := &Release{
		Artist: "Artist",
		Artists: []Artist{
			{Name: "A", Roles: []string{"main-artist"}},
			{Name: "B", Roles: []string{"main-artist"}},
			{Name: "C", Roles: []string{"main-artist"}},
			{Name: "D", Roles: []string{"featured-artist"}},
		},
	}
	if got := rel.MainArtist(); got != "A, B & C" {
		t.Errorf("MainArtist = %q, want %q", got, "A, B & C")
	}
}
