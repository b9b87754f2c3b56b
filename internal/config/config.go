// Package config loads and validates the application configuration.
//
// The Config value is immutable once loaded and is passed explicitly to
// every component that needs it; nothing reads configuration from ambient
// process state after startup.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/calvez/qbzgrab/internal/constants"
)

// TagConfig enables or disables individual tag categories. The zero value
// writes every tag.
type TagConfig struct {
	NoAlbumArtist bool `toml:"no_album_artist_tag"`
	NoAlbumTitle  bool `toml:"no_album_title_tag"`
	NoTrackArtist bool `toml:"no_track_artist_tag"`
	NoTrackTitle  bool `toml:"no_track_title_tag"`
	NoReleaseDate bool `toml:"no_release_date_tag"`
	NoMediaType   bool `toml:"no_media_type_tag"`
	NoGenre       bool `toml:"no_genre_tag"`
	NoTrackNumber bool `toml:"no_track_number_tag"`
	NoTrackTotal  bool `toml:"no_track_total_tag"`
	NoDiscNumber  bool `toml:"no_disc_number_tag"`
	NoDiscTotal   bool `toml:"no_disc_total_tag"`
	NoComposer    bool `toml:"no_composer_tag"`
	NoExplicit    bool `toml:"no_explicit_tag"`
	NoCopyright   bool `toml:"no_copyright_tag"`
	NoLabel       bool `toml:"no_label_tag"`
	NoUPC         bool `toml:"no_upc_tag"`
	NoISRC        bool `toml:"no_isrc_tag"`
}

// Config holds all application configuration
type Config struct {
	Directory  string `toml:"directory"`
	DBPath     string `toml:"db_path"`
	CatalogURL string `toml:"catalog_url"`
	Quality    int    `toml:"quality"`
	Workers    int    `toml:"workers"`
	LogLevel   string `toml:"log_level"`
	LogFormat  string `toml:"log_format"`

	FolderTemplate         string `toml:"folder_template"`
	TrackTemplate          string `toml:"track_template"`
	MultiDiscTrackTemplate string `toml:"multi_disc_track_template"`
	FallbackFolderTemplate string `toml:"fallback_folder_template"`

	MultiDiscOneDir bool   `toml:"multi_disc_one_dir"`
	MultiDiscPrefix string `toml:"multi_disc_prefix"`

	AlbumsOnly       bool `toml:"albums_only"`
	DowngradeQuality bool `toml:"downgrade_quality"`
	NoFallback       bool `toml:"no_fallback"`
	NoDB             bool `toml:"no_db"`
	NoM3U            bool `toml:"no_m3u"`

	EmbedArt        bool   `toml:"embed_art"`
	NoCover         bool   `toml:"no_cover"`
	EmbeddedArtSize string `toml:"embedded_art_size"`
	SavedArtSize    string `toml:"saved_art_size"`

	Tags TagConfig `toml:"tags"`
}

// Default returns a configuration populated with built-in defaults.
func Default() *Config {
	return &Config{
		Directory:              constants.DefaultDirectory,
		DBPath:                 constants.DefaultDBPath,
		CatalogURL:             constants.DefaultCatalogURL,
		Quality:                constants.QualityCD,
		Workers:                constants.DefaultConcurrency,
		LogLevel:               "info",
		LogFormat:              "text",
		FolderTemplate:         constants.DefaultFolderTemplate,
		TrackTemplate:          constants.DefaultTrackTemplate,
		MultiDiscTrackTemplate: constants.DefaultMultiDiscTrackTemplate,
		FallbackFolderTemplate: constants.FallbackFolderTemplate,
		MultiDiscPrefix:        constants.DefaultMultiDiscPrefix,
		EmbeddedArtSize:        constants.DefaultEmbeddedArtSize,
		SavedArtSize:           constants.DefaultSavedArtSize,
	}
}

// Load reads configuration from an optional TOML file and applies
// environment-variable overrides on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.Directory = getEnv("QBZGRAB_DIRECTORY", cfg.Directory)
	cfg.DBPath = getEnv("QBZGRAB_DB_PATH", cfg.DBPath)
	cfg.CatalogURL = getEnv("QBZGRAB_CATALOG_URL", cfg.CatalogURL)
	cfg.Quality = getEnvInt("QBZGRAB_QUALITY", cfg.Quality)
	cfg.Workers = getEnvInt("QBZGRAB_WORKERS", cfg.Workers)
	cfg.LogLevel = getEnv("QBZGRAB_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("QBZGRAB_LOG_FORMAT", cfg.LogFormat)

	return cfg, nil
}

// Validate validates the configuration and returns detailed errors
func (c *Config) Validate() error {
	var errors []string

	if c.Directory == "" {
		errors = append(errors, "directory cannot be empty")
	}

	if !c.NoDB && c.DBPath == "" {
		errors = append(errors, "db_path cannot be empty unless no_db is set")
	}

	if c.CatalogURL == "" {
		errors = append(errors, "catalog_url cannot be empty")
	} else if _, err := url.Parse(c.CatalogURL); err != nil {
		errors = append(errors, fmt.Sprintf("catalog_url is not a valid URL: %s", c.CatalogURL))
	}

	switch c.Quality {
	case constants.QualityMP3, constants.QualityCD, constants.QualityHiRes96, constants.QualityHiRes192:
	default:
		errors = append(errors, fmt.Sprintf("quality must be one of: 5, 6, 7, 27, got: %d", c.Quality))
	}

	if c.Workers < 1 {
		errors = append(errors, fmt.Sprintf("workers must be at least 1, got: %d", c.Workers))
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		errors = append(errors, fmt.Sprintf("log_level must be one of: debug, info, warn, error, got: %s", c.LogLevel))
	}

	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[c.LogFormat] {
		errors = append(errors, fmt.Sprintf("log_format must be one of: text, json, got: %s", c.LogFormat))
	}

	if c.FolderTemplate == "" || c.TrackTemplate == "" || c.MultiDiscTrackTemplate == "" {
		errors = append(errors, "naming templates cannot be empty")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
