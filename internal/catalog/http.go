package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/calvez/qbzgrab/internal/constants"
)

// HTTPClient implements Client against the catalog's JSON API.
type HTTPClient struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPClient creates a catalog client for the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: constants.DefaultHTTPTimeout},
	}
}

type artistPayload struct {
	Name  string   `json:"name"`
	Roles []string `json:"roles"`
}

type imagePayload struct {
	Small string `json:"small"`
	Large string `json:"large"`
}

type releasePayload struct {
	ID          json.Number   `json:"id"`
	Title       string        `json:"title"`
	Version     string        `json:"version"`
	URL         string        `json:"url"`
	ReleaseType string        `json:"release_type"`
	Streamable  bool          `json:"streamable"`
	Artist      artistPayload `json:"artist"`
	Artists     []struct {
		Name  string   `json:"name"`
		Roles []string `json:"roles"`
	} `json:"artists"`
	Genre struct {
		Name string `json:"name"`
	} `json:"genre"`
	GenresList []string `json:"genres_list"`
	Composer   struct {
		Name string `json:"name"`
	} `json:"composer"`
	Label struct {
		Name string `json:"name"`
	} `json:"label"`
	Copyright           string       `json:"copyright"`
	UPC                 string       `json:"upc"`
	ReleaseDateOriginal string       `json:"release_date_original"`
	ProductType         string       `json:"product_type"`
	ParentalWarning     bool         `json:"parental_warning"`
	MediaCount          int          `json:"media_count"`
	TracksCount         int          `json:"tracks_count"`
	Image               imagePayload `json:"image"`
	Goodies             []struct {
		ID  json.Number `json:"id"`
		URL string      `json:"url"`
	} `json:"goodies"`
	Tracks struct {
		Items []trackPayload `json:"items"`
	} `json:"tracks"`
}

type trackPayload struct {
	ID        json.Number `json:"id"`
	Title     string      `json:"title"`
	Version   string      `json:"version"`
	Work      string      `json:"work"`
	Performer struct {
		Name string `json:"name"`
	} `json:"performer"`
	Composer struct {
		Name string `json:"name"`
	} `json:"composer"`
	TrackNumber         int             `json:"track_number"`
	MediaNumber         int             `json:"media_number"`
	ISRC                string          `json:"isrc"`
	MaximumBitDepth     int             `json:"maximum_bit_depth"`
	MaximumSamplingRate float64         `json:"maximum_sampling_rate"`
	ReleaseDateOriginal string          `json:"release_date_original"`
	Album               *releasePayload `json:"album"`
}

func (c *HTTPClient) GetRelease(ctx context.Context, id string) (*Release, error) {
	u := fmt.Sprintf("%s/album/get?album_id=%s", c.BaseURL, url.QueryEscape(id))
	var payload releasePayload
	if err := c.get(ctx, u, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch release %s: %w", id, err)
	}
	return payload.toRelease(), nil
}

func (c *HTTPClient) GetTrack(ctx context.Context, id string) (*Track, error) {
	u := fmt.Sprintf("%s/track/get?track_id=%s", c.BaseURL, url.QueryEscape(id))
	var payload trackPayload
	if err := c.get(ctx, u, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch track %s: %w", id, err)
	}
	return payload.toTrack(), nil
}

func (c *HTTPClient) GetStreamInfo(ctx context.Context, trackID string, quality int) (*StreamInfo, error) {
	ts := time.Now().Unix()
	u := fmt.Sprintf("%s/track/getFileUrl?track_id=%s&format_id=%d&intent=stream&request_ts=%d",
		c.BaseURL, url.QueryEscape(trackID), quality, ts)
	var payload struct {
		URL          string  `json:"url"`
		BitDepth     int     `json:"bit_depth"`
		SamplingRate float64 `json:"sampling_rate"`
		Sample       bool    `json:"sample"`
		Restrictions []struct {
			Code string `json:"code"`
		} `json:"restrictions"`
	}
	if err := c.get(ctx, u, &payload); err != nil {
		return nil, fmt.Errorf("failed to resolve stream for track %s: %w", trackID, err)
	}
	info := &StreamInfo{
		URL:          payload.URL,
		BitDepth:     payload.BitDepth,
		SamplingRate: payload.SamplingRate,
		Sample:       payload.Sample,
	}
	for _, r := range payload.Restrictions {
		info.Restrictions = append(info.Restrictions, Restriction{Code: r.Code})
	}
	return info, nil
}

func (c *HTTPClient) get(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("catalog returned status %d: %s", resp.StatusCode, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (p *releasePayload) toRelease() *Release {
	rel := &Release{
		ID:              p.ID.String(),
		Title:           p.Title,
		Version:         p.Version,
		URL:             p.URL,
		ReleaseType:     p.ReleaseType,
		Streamable:      p.Streamable,
		Artist:          p.Artist.Name,
		Genre:           p.Genre.Name,
		Genres:          p.GenresList,
		Composer:        p.Composer.Name,
		Label:           p.Label.Name,
		Copyright:       p.Copyright,
		UPC:             p.UPC,
		ReleaseDate:     p.ReleaseDateOriginal,
		ProductType:     p.ProductType,
		ParentalWarning: p.ParentalWarning,
		MediaCount:      p.MediaCount,
		TrackCount:      p.TracksCount,
		Image:           Image{Small: p.Image.Small, Large: p.Image.Large},
	}
	for _, a := range p.Artists {
		rel.Artists = append(rel.Artists, Artist{Name: a.Name, Roles: a.Roles})
	}
	for _, g := range p.Goodies {
		rel.Goodies = append(rel.Goodies, Goodie{ID: g.ID.String(), URL: g.URL})
	}
	for i := range p.Tracks.Items {
		rel.Tracks = append(rel.Tracks, *p.Tracks.Items[i].toTrack())
	}
	return rel
}

func (p *trackPayload) toTrack() *Track {
	t := &Track{
		ID:           p.ID.String(),
		Title:        p.Title,
		Version:      p.Version,
		Work:         p.Work,
		Performer:    p.Performer.Name,
		Composer:     p.Composer.Name,
		TrackNumber:  p.TrackNumber,
		MediaNumber:  p.MediaNumber,
		ISRC:         p.ISRC,
		BitDepth:     p.MaximumBitDepth,
		SamplingRate: p.MaximumSamplingRate,
		ReleaseDate:  p.ReleaseDateOriginal,
	}
	if p.Album != nil {
		t.Album = p.Album.toRelease()
	}
	return t
}
