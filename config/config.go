package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Config holds runtime configuration for the annotation client.
// Fields may be loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Debug bool `json:"debug"`

	// Inference server
	ServerURL             string `json:"server_url"`
	RequestTimeoutSeconds int    `json:"request_timeout_seconds"`
	ImageType             string `json:"image_type"` // "png" or "jpeg"

	// Annotation
	HistoryCapacity  int     `json:"history_capacity"`
	ViewportFraction float64 `json:"viewport_fraction"`
	BrushSize        int     `json:"brush_size"`

	// Window
	WindowWidth  int  `json:"window_width"`
	WindowHeight int  `json:"window_height"`
	DarkMode     bool `json:"dark_mode"`

	// Recently opened wall images, most recent first.
	RecentLimit int      `json:"recent_limit"`
	Recent      []string `json:"recent,omitempty"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:                 false,
		ServerURL:             "http://127.0.0.1:5000",
		RequestTimeoutSeconds: 120,
		ImageType:             "png",
		HistoryCapacity:       1000,
		ViewportFraction:      0.8,
		BrushSize:             8,
		WindowWidth:           1280,
		WindowHeight:          900,
		RecentLimit:           10,
	}
}

// DefaultPath returns the per-user config location, e.g. ~/.config/wall-annotator/config.json.
// It falls back to a file in the working directory when the XDG directory cannot be created.
func DefaultPath() string {
	p, err := xdg.ConfigFile(filepath.Join("wall-annotator", "config.json"))
	if err != nil {
		return "wall-annotator.json"
	}
	return p
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	c.ServerURL = strings.TrimSuffix(strings.TrimSpace(c.ServerURL), "/")
	if c.ServerURL == "" {
		c.ServerURL = "http://127.0.0.1:5000"
	}
	if c.RequestTimeoutSeconds <= 0 {
		c.RequestTimeoutSeconds = 120
	}
	switch strings.ToLower(c.ImageType) {
	case "png", "jpeg":
		c.ImageType = strings.ToLower(c.ImageType)
	case "jpg":
		c.ImageType = "jpeg"
	default:
		c.ImageType = "png"
	}
	if c.HistoryCapacity <= 0 {
		c.HistoryCapacity = 1000
	}
	if c.ViewportFraction <= 0 || c.ViewportFraction > 1 {
		c.ViewportFraction = 0.8
	}
	if c.BrushSize <= 0 {
		c.BrushSize = 8
	}
	if c.BrushSize > 200 {
		c.BrushSize = 200
	}
	if c.WindowWidth < 320 {
		c.WindowWidth = 1280
	}
	if c.WindowHeight < 240 {
		c.WindowHeight = 900
	}
	if c.RecentLimit <= 0 {
		c.RecentLimit = 10
	}
	if len(c.Recent) > c.RecentLimit {
		c.Recent = c.Recent[:c.RecentLimit]
	}
	return nil
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return DefaultConfig(), err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
