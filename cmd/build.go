package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Bitlatte/areyou/internal/config"
	"github.com/Bitlatte/areyou/internal/imageset"
	"github.com/Bitlatte/areyou/internal/render"
	"github.com/Bitlatte/areyou/internal/site"
	"github.com/Bitlatte/areyou/internal/source"
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Builds the family history page",
	Long: `The build command loads the history records and people from the configured
source, copies static assets from './static/', and writes every page state
(initial, contact dialog, one page per gallery photo) to the output directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, closer, err := newBuilder(appConfig)
		if err != nil {
			return err
		}
		defer closer.Close()
		_, err = b.Build(cmd.Context())
		return err
	},
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// newSource returns the data source selected by cfg.Source.
func newSource(cfg config.Config) (source.DataSource, io.Closer, error) {
	switch cfg.Source.Driver {
	case config.DriverSQLite:
		s, err := source.OpenSQLite(cfg.Source.DSN, logger)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		return newContentSource(cfg), nopCloser{}, nil
	}
}

func newContentSource(cfg config.Config) *source.ContentSource {
	return &source.ContentSource{
		ContentDir: cfg.ContentDir,
		DataDir:    cfg.DataDir,
		Images:     imageset.Builder{BaseURL: cfg.Images.BaseURL},
		Logger:     logger,
	}
}

func newBuilder(cfg config.Config) (*site.Builder, io.Closer, error) {
	r, err := render.New(cfg.LayoutsDir)
	if err != nil {
		return nil, nil, fmt.Errorf("load layouts: %w", err)
	}
	src, closer, err := newSource(cfg)
	if err != nil {
		return nil, nil, err
	}
	return &site.Builder{
		Config:   cfg,
		Source:   src,
		Renderer: r,
		Params:   siteParams,
		Logger:   logger,
	}, closer, nil
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
