// Package site builds the static family history page.
//
// Every page state a visitor can reach is written as its own HTML file, and
// every action on the page is a link to the file of the state that action
// produces: the initial page, the page with the contact dialog open, and one
// page per gallery photo.
package site

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Bitlatte/areyou/internal/config"
	"github.com/Bitlatte/areyou/internal/gallery"
	"github.com/Bitlatte/areyou/internal/model"
	"github.com/Bitlatte/areyou/internal/page"
	"github.com/Bitlatte/areyou/internal/render"
	"github.com/Bitlatte/areyou/internal/source"
)

const photosFile = "photos.json"

// Builder runs the build pipeline.
type Builder struct {
	Config   config.Config
	Source   source.DataSource
	Renderer *render.Renderer
	Params   map[string]interface{}
	Logger   *slog.Logger
}

// Result summarizes one build.
type Result struct {
	Pages int
	Site  *model.SiteData
}

// Build cleans the output directory, copies static assets and writes every
// page state for the current data snapshot.
func (b *Builder) Build(ctx context.Context) (Result, error) {
	logger := b.logger()
	cfg := b.Config
	logger.Info("starting build", "output", cfg.OutputDir, "base_url", cfg.BaseURL, "page", cfg.PagePath)

	if err := os.RemoveAll(cfg.OutputDir); err != nil {
		return Result{}, fmt.Errorf("failed to remove output directory '%s': %w", cfg.OutputDir, err)
	}
	if err := os.MkdirAll(cfg.OutputDir, os.ModePerm); err != nil {
		return Result{}, fmt.Errorf("failed to create output directory '%s': %w", cfg.OutputDir, err)
	}

	if _, err := os.Stat(cfg.StaticDir); err == nil {
		if err := copyDirContents(cfg.StaticDir, cfg.OutputDir); err != nil {
			return Result{}, fmt.Errorf("failed to copy static assets: %w", err)
		}
		logger.Debug("static assets copied", "from", cfg.StaticDir)
	} else {
		logger.Debug("no static assets directory, skipping copy", "dir", cfg.StaticDir)
	}

	snapshot, err := b.Source.Load(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load page data: %w", err)
	}
	// A fresh controller per snapshot keeps the photo list in step with the data.
	ctrl := page.NewController(snapshot, logger)

	w := &pageWriter{builder: b, ctrl: ctrl, images: gallery.Images(ctrl.Photos())}

	ctrl.Reset()
	if err := w.write(); err != nil {
		return Result{}, err
	}

	ctrl.OpenContact()
	if err := w.write(); err != nil {
		return Result{}, err
	}

	for i, p := range ctrl.Photos() {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		ctrl.Reset()
		ctrl.OpenPhotoByID(p.ID)
		if first := ctrl.State().Gallery.CurrentIndex; first != i {
			logger.Warn("duplicate photo id, thumbnail opens the first match",
				"id", p.ID, "position", i, "opens", first)
			// Prev/next still step onto this position.
			ctrl.Apply(openAt(i))
		}
		if err := w.write(); err != nil {
			return Result{}, err
		}
	}

	if err := b.writePhotos(w.images); err != nil {
		return Result{}, err
	}

	result := Result{
		Pages: w.pages,
		Site: &model.SiteData{
			Records: ctrl.Records(),
			People:  ctrl.People(),
			Photos:  ctrl.Photos(),
		},
	}
	logger.Info("build completed",
		"pages", result.Pages,
		"records", len(result.Site.Records),
		"photos", len(result.Site.Photos),
		"people", len(result.Site.People),
	)
	return result, nil
}

// openAt opens the gallery at index i regardless of photo ids.
func openAt(i int) page.Transition {
	return func(s page.State) page.State {
		s.Gallery = page.GalleryState{IsOpen: true, CurrentIndex: i}
		return s
	}
}

func (b *Builder) writePhotos(images []model.LightboxImage) error {
	raw, err := json.MarshalIndent(images, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", photosFile, err)
	}
	dir := filepath.Join(b.Config.OutputDir, filepath.FromSlash(b.Config.PagePath))
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}
	path := filepath.Join(dir, photosFile)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write '%s': %w", path, err)
	}
	return nil
}

// pageWriter renders the controller's current state to its route.
type pageWriter struct {
	builder *Builder
	ctrl    *page.Controller
	images  []model.LightboxImage
	pages   int
}

func (w *pageWriter) write() error {
	cfg := w.builder.Config
	route := page.Route(cfg.PagePath, w.ctrl.State())
	outputPath := filepath.Join(cfg.OutputDir, filepath.FromSlash(route), "index.html")
	if err := os.MkdirAll(filepath.Dir(outputPath), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory for '%s': %w", route, err)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file '%s': %w", outputPath, err)
	}
	if err := w.builder.Renderer.Page(out, PageData(cfg, w.builder.Params, w.ctrl, w.images)); err != nil {
		out.Close()
		return fmt.Errorf("render '%s': %w", route, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close output file '%s': %w", outputPath, err)
	}
	w.pages++
	w.builder.logger().Debug("page written", "route", route, "path", outputPath)
	return nil
}

func (b *Builder) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.Default()
	}
	return b.Logger
}

// PageData builds the view model for the controller's current state. Link
// targets are the routes of the states the matching actions would produce.
func PageData(cfg config.Config, params map[string]interface{}, ctrl *page.Controller, images []model.LightboxImage) model.PageData {
	state := ctrl.State()
	href := func(s page.State) string {
		return strings.TrimSuffix(cfg.BaseURL, "/") + page.Route(cfg.PagePath, s)
	}

	lightbox := gallery.View(images, state.Gallery.IsOpen, state.Gallery.CurrentIndex)
	lightbox.CloseHref = href(ctrl.Peek(page.CloseGallery))
	if gallery.InRange(len(images), state.Gallery.CurrentIndex-1) {
		lightbox.PrevHref = href(ctrl.Peek(page.PrevPhoto))
	}
	if gallery.InRange(len(images), state.Gallery.CurrentIndex+1) {
		lightbox.NextHref = href(ctrl.Peek(page.NextPhoto))
	}

	records := make([]model.RecordView, 0, len(ctrl.Records()))
	for i, r := range ctrl.Records() {
		view := model.RecordView{
			Key:     r.Key(),
			Year:    r.Year,
			Title:   r.Title,
			Content: r.Content,
			Link:    r.Link,
			IsEven:  i%2 == 0,
		}
		for _, p := range r.Photos {
			if p == nil {
				continue
			}
			link := model.PhotoLink{Photo: p, Href: r.Link}
			if !r.IsLink() {
				link.Href = href(ctrl.Peek(ctrl.OpenPhoto(p.ID)))
			}
			view.Photos = append(view.Photos, link)
		}
		records = append(records, view)
	}

	return model.PageData{
		SiteTitle:   cfg.SiteTitle,
		PageTitle:   cfg.Page.Title,
		Description: cfg.Page.Description,
		Intro:       cfg.Page.Intro,
		BaseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		Canonical:   href(state),
		Params:      params,
		// The lightbox covers the button, so contact opens on a closed gallery.
		ContactHref: href(page.OpenContact(ctrl.Peek(page.CloseGallery))),
		Contact: model.ContactView{
			Open:      state.Contact.IsOpen,
			CloseHref: href(ctrl.Peek(page.CloseContact)),
			People:    ctrl.People(),
		},
		Lightbox: lightbox,
		Records:  records,
	}
}
