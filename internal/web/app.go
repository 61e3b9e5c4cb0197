// Package web serves the interactive dashboard: the HTML page, its JSON view
// model, individual chart SVGs and data exports.
package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/KaramelBytes/fitdash/internal/charts"
	"github.com/KaramelBytes/fitdash/internal/dataset"
	"github.com/KaramelBytes/fitdash/internal/logging"
)

//go:embed templates/*.html static/*
var embeddedFiles embed.FS

// Config holds what the dashboard needs to serve requests.
type Config struct {
	Frame *dataset.Frame
	// DatasetName is shown on the dataset profile page.
	DatasetName   string
	Charts        charts.Options
	HistogramBins int
	PreviewRows   int
	Logger        *logging.Logger
}

// App is the dashboard HTTP application.
type App struct {
	router    *chi.Mux
	frame     *dataset.Frame
	cfg       Config
	log       *logging.Logger
	templates *template.Template
}

// NewApp parses templates and wires routes.
func NewApp(cfg Config) (*App, error) {
	if cfg.Frame == nil {
		return nil, errors.New("web: no dataset loaded")
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}
	funcMap := template.FuncMap{
		"dict": func(kv ...interface{}) (map[string]interface{}, error) {
			if len(kv)%2 != 0 {
				return nil, errors.New("dict: odd number of arguments")
			}
			m := make(map[string]interface{}, len(kv)/2)
			for i := 0; i < len(kv); i += 2 {
				k, ok := kv[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
				}
				m[k] = kv[i+1]
			}
			return m, nil
		},
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	app := &App{
		router:    chi.NewRouter(),
		frame:     cfg.Frame,
		cfg:       cfg,
		log:       cfg.Logger,
		templates: templates,
	}
	if err := app.setupMiddleware(); err != nil {
		return nil, err
	}
	app.setupRoutes()
	return app, nil
}

// Handler returns the root handler.
func (a *App) Handler() http.Handler { return a.router }

func (a *App) setupMiddleware() error {
	a.router.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: a.log.StdLogger(), NoColor: true}))
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		return fmt.Errorf("static files: %w", err)
	}
	a.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	return nil
}

func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Get("/dataset", a.handleDataset)
	a.router.Get("/charts/{chartID}.svg", a.handleChart)
	a.router.Get("/export.xlsx", a.handleExport)

	a.router.Get("/api/view", a.handleView)
	a.router.Get("/api/options", a.handleOptions)

	a.router.Get("/healthz", healthz)
	a.router.Handle("/metrics", promhttp.Handler())
}

func (a *App) renderTemplate(w http.ResponseWriter, name string, data interface{}) {
	var buf bytes.Buffer
	if err := a.templates.ExecuteTemplate(&buf, name, data); err != nil {
		a.log.Error("template %s: %v", name, err)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
