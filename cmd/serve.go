package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/Bitlatte/areyou/internal/config"
	"github.com/Bitlatte/areyou/internal/page"
	"github.com/Bitlatte/areyou/internal/watch"
)

var serverPort int

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the page locally and rebuilds it on changes",
	Long: `The serve command performs an initial build, then starts a local web server
for the output directory. It watches the content, data, layouts and static
directories and rebuilds the page when they change.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		b, closer, err := newBuilder(appConfig)
		if err != nil {
			return err
		}
		defer closer.Close()

		if _, err := b.Build(ctx); err != nil {
			return fmt.Errorf("initial build failed: %w", err)
		}

		rb := &rebuilder{cfg: appConfig, ctx: ctx}
		w := &watch.Watcher{
			Roots:    []string{appConfig.ContentDir, appConfig.DataDir, appConfig.LayoutsDir, appConfig.StaticDir},
			OnChange: rb.rebuild,
			Logger:   logger,
		}
		if err := w.Start(); err != nil {
			return err
		}
		go w.Run(ctx)

		server := &http.Server{
			Addr:              fmt.Sprintf(":%d", serverPort),
			Handler:           newStaticHandler(appConfig.OutputDir, appConfig.PagePath),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			server.Shutdown(shutdownCtx)
		}()

		logger.Info("serving site", "dir", appConfig.OutputDir, "url", fmt.Sprintf("http://localhost%s%s/", server.Addr, appConfig.PagePath))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		logger.Info("server closed")
		return nil
	},
}

// rebuilder serializes rebuilds triggered by the watcher.
type rebuilder struct {
	mu  sync.Mutex
	cfg config.Config
	ctx context.Context
}

func (r *rebuilder) rebuild() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ctx.Err() != nil {
		return
	}
	// Layout edits need a fresh parse.
	b, closer, err := newBuilder(r.cfg)
	if err != nil {
		logger.Error("rebuild failed", "error", err)
		return
	}
	defer closer.Close()
	if _, err := b.Build(r.ctx); err != nil {
		logger.Error("rebuild failed", "error", err)
	}
}

// newStaticHandler serves dir without directory listings or caching.
func newStaticHandler(dir, pagePath string) http.Handler {
	files := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") && r.URL.Path != "/" && !hasIndex(dir, r.URL.Path) {
			http.NotFound(w, r)
			return
		}
		if state, ok := page.ParseRoute(pagePath, r.URL.Path); ok {
			logger.Debug("page view",
				"path", r.URL.Path,
				"contact_open", state.Contact.IsOpen,
				"gallery_open", state.Gallery.IsOpen,
				"photo", state.Gallery.CurrentIndex,
			)
		}
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		files.ServeHTTP(w, r)
	})
}

// hasIndex reports whether the directory at urlPath, resolved inside dir,
// has an index.html.
func hasIndex(dir, urlPath string) bool {
	clean := path.Clean("/" + urlPath)
	_, err := os.Stat(filepath.Join(dir, filepath.FromSlash(clean), "index.html"))
	return err == nil
}

func init() {
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 1313, "Port to serve the site on")
	rootCmd.AddCommand(serveCmd)
}
