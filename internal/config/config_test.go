package config

import (
	"errors"
	"log/slog"
	"testing"
)

func valid() Config {
	return Config{OutputDir: "public", PagePath: "/areyou", Source: SourceConfig{Driver: DriverContent}}
}

func TestValidate_NormalizesPagePath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/areyou", "/areyou"},
		{"areyou/", "/areyou"},
		{"/family/areyou/", "/family/areyou"},
		{"/", ""},
		{"", ""},
	}
	for _, tt := range tests {
		c := valid()
		c.PagePath = tt.in
		if err := c.Validate(); err != nil {
			t.Fatalf("Validate(%q): %v", tt.in, err)
		}
		if c.PagePath != tt.want {
			t.Fatalf("PagePath(%q) = %q, want %q", tt.in, c.PagePath, tt.want)
		}
	}
}

func TestValidate_Source(t *testing.T) {
	c := valid()
	c.Source.Driver = ""
	if err := c.Validate(); err != nil || c.Source.Driver != DriverContent {
		t.Fatalf("empty driver: err=%v driver=%q", err, c.Source.Driver)
	}

	c = valid()
	c.Source.Driver = DriverSQLite
	if err := c.Validate(); !errors.Is(err, ErrInvalid) {
		t.Fatalf("sqlite without dsn: err = %v, want ErrInvalid", err)
	}
	c.Source.DSN = "family.db"
	if err := c.Validate(); err != nil {
		t.Fatalf("sqlite with dsn: %v", err)
	}

	c = valid()
	c.Source.Driver = "graphql"
	if err := c.Validate(); !errors.Is(err, ErrInvalid) {
		t.Fatalf("unknown driver: err = %v, want ErrInvalid", err)
	}
}

func TestValidate_Rejects(t *testing.T) {
	c := valid()
	c.OutputDir = ""
	if err := c.Validate(); !errors.Is(err, ErrInvalid) {
		t.Fatalf("empty output: err = %v", err)
	}
	c = valid()
	c.LogLevel = "loud"
	if err := c.Validate(); !errors.Is(err, ErrInvalid) {
		t.Fatalf("bad level: err = %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{"": slog.LevelInfo, "debug": slog.LevelDebug, "WARN": slog.LevelWarn} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
}

func TestDefaults(t *testing.T) {
	d := Defaults()
	if d["pagePath"] != "/areyou" || d["page.title"] != DefaultTitle || d["source.driver"] != DriverContent {
		t.Fatalf("Defaults() = %v", d)
	}
}
