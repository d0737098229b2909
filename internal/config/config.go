package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ErrInvalid is returned by Validate for unusable settings.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	SiteTitle  string `mapstructure:"siteTitle"`
	OutputDir  string `mapstructure:"outputDir"`
	BaseURL    string `mapstructure:"baseURL"`
	ContentDir string `mapstructure:"contentDir"`
	LayoutsDir string `mapstructure:"layoutsDir"`
	StaticDir  string `mapstructure:"staticDir"`
	DataDir    string `mapstructure:"dataDir"`
	PagePath   string `mapstructure:"pagePath"`
	LogLevel   string `mapstructure:"logLevel"`

	Page   PageConfig   `mapstructure:"page"`
	Images ImageConfig  `mapstructure:"images"`
	Source SourceConfig `mapstructure:"source"`
}

// PageConfig holds the copy shown on the family history page.
type PageConfig struct {
	Title       string `mapstructure:"title"`
	Description string `mapstructure:"description"`
	Intro       string `mapstructure:"intro"`
}

type ImageConfig struct {
	BaseURL string `mapstructure:"baseURL"`
}

// SourceConfig selects where records and people are loaded from.
type SourceConfig struct {
	Driver string `mapstructure:"driver"` // "content" or "sqlite"
	DSN    string `mapstructure:"dsn"`
}

const (
	DriverContent = "content"
	DriverSQLite  = "sqlite"
)

const (
	DefaultTitle       = "Are You a DiLoreto?"
	DefaultDescription = "Are you a DiLoreto? View the history of the DiLoretos from Alfadena, Italy to Michigan and California. Extensive historical sources, photos and family tree listed."
	DefaultIntro       = "A genealogical record of the DiLoreto lineage is maintained, and we would love to hear from any relatives with updates. An updated copy of the complete family tree can be sent as a PDF to family members."
)

// Defaults returns the settings used when neither the config file nor the
// environment provide a value.
func Defaults() map[string]any {
	return map[string]any{
		"siteTitle":        "DiLoreto Family",
		"outputDir":        "public",
		"baseURL":          "",
		"contentDir":       "content",
		"layoutsDir":       "layouts",
		"staticDir":        "static",
		"dataDir":          "data",
		"pagePath":         "/areyou",
		"logLevel":         "info",
		"page.title":       DefaultTitle,
		"page.description": DefaultDescription,
		"page.intro":       DefaultIntro,
		"images.baseURL":   "/images",
		"source.driver":    DriverContent,
		"source.dsn":       "",
	}
}

// Validate normalizes the page path and checks the source settings.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("%w: outputDir is empty", ErrInvalid)
	}
	c.PagePath = "/" + strings.Trim(c.PagePath, "/")
	if c.PagePath == "/" {
		c.PagePath = ""
	}
	switch c.Source.Driver {
	case "", DriverContent:
		c.Source.Driver = DriverContent
	case DriverSQLite:
		if c.Source.DSN == "" {
			return fmt.Errorf("%w: source.dsn is required for the sqlite driver", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown source driver %q", ErrInvalid, c.Source.Driver)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a config log level to a slog level. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalid, s)
	}
	return lvl, nil
}
