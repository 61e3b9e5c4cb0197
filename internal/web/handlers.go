package web

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/KaramelBytes/fitdash/internal/analysis"
	"github.com/KaramelBytes/fitdash/internal/charts"
	"github.com/KaramelBytes/fitdash/internal/dashboard"
	"github.com/KaramelBytes/fitdash/internal/dataset"
	"github.com/KaramelBytes/fitdash/internal/observability"
	"github.com/KaramelBytes/fitdash/internal/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func selectionFrom(r *http.Request) dataset.Selection {
	q := r.URL.Query()
	return dataset.Selection{
		Gender:      q.Get("gender"),
		AgeCategory: q.Get("age_category"),
		Month:       q.Get("month_name"),
	}
}

func (a *App) renderOptionsFrom(r *http.Request) dashboard.RenderOptions {
	q := r.URL.Query()
	all, _ := strconv.ParseBool(q.Get("all"))
	return dashboard.RenderOptions{
		Page:          q.Get("page"),
		Tab:           q.Get("tab"),
		AllTabs:       all,
		HistogramBins: a.cfg.HistogramBins,
		PreviewRows:   a.cfg.PreviewRows,
	}
}

func (a *App) chartOptionsFrom(r *http.Request) charts.Options {
	opt := a.cfg.Charts
	q := r.URL.Query()
	if w, err := strconv.Atoi(q.Get("width")); err == nil && w > 0 && w <= 4096 {
		opt.Width = w
	}
	if h, err := strconv.Atoi(q.Get("height")); err == nil && h > 0 && h <= 4096 {
		opt.Height = h
	}
	return opt
}

// render runs one view and records it.
func (a *App) render(sel dataset.Selection, opt dashboard.RenderOptions) (*dashboard.ViewModel, error) {
	start := time.Now()
	vm, err := dashboard.Render(a.frame, sel, opt)
	if err != nil {
		return nil, err
	}
	observability.RecordRender(vm.Page, vm.Tab, vm.FilteredRows, time.Since(start))
	a.log.Debug("rendered %s/%s for %s: %d rows", vm.Page, vm.Tab, vm.Selection, vm.FilteredRows)
	return vm, nil
}

func (a *App) writeRenderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dashboard.ErrUnknownPage), errors.Is(err, dashboard.ErrUnknownTab), errors.Is(err, dashboard.ErrUnknownChart):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		a.log.Error("render: %v", err)
		writeError(w, http.StatusInternalServerError, "render_failed", "unable to render dashboard")
	}
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	vm, err := a.render(selectionFrom(r), a.renderOptionsFrom(r))
	if err != nil {
		a.writeRenderError(w, err)
		return
	}
	a.renderTemplate(w, "index.html", a.buildPage(vm, a.chartOptionsFrom(r)))
}

func (a *App) handleView(w http.ResponseWriter, r *http.Request) {
	vm, err := a.render(selectionFrom(r), a.renderOptionsFrom(r))
	if err != nil {
		a.writeRenderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vm)
}

func (a *App) handleOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.frame.Options())
}

func (a *App) handleChart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "chartID")
	c, err := dashboard.RenderChart(a.frame, selectionFrom(r), id, a.cfg.HistogramBins)
	if err != nil {
		a.writeRenderError(w, err)
		return
	}
	svg := a.drawChart(c, a.chartOptionsFrom(r))
	if svg == nil {
		writeError(w, http.StatusInternalServerError, "render_failed", "unable to draw chart "+id)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(svg)
}

// drawChart returns the chart SVG, or a placeholder when drawing failed.
// It returns nil only if not even the placeholder could be written.
func (a *App) drawChart(c dashboard.Chart, opt charts.Options) []byte {
	svg, err := charts.SVG(c, opt)
	if err != nil {
		observability.RecordChartFailure(c.ID)
		a.log.Warn("chart %s: %v", c.ID, err)
	}
	return svg
}

func (a *App) handleDataset(w http.ResponseWriter, r *http.Request) {
	sel := selectionFrom(r).Normalize(a.frame.Options())
	filtered, err := a.frame.Filter(sel)
	if err != nil {
		a.writeRenderError(w, err)
		return
	}
	opt := analysis.DefaultOptions()
	opt.Correlations = true
	if g := strings.TrimSpace(r.URL.Query().Get("group_by")); g != "" {
		for _, col := range strings.Split(g, ",") {
			if col = strings.TrimSpace(col); col != "" {
				opt.GroupBy = append(opt.GroupBy, col)
			}
		}
	}
	rep := analysis.Profile(a.cfg.DatasetName, filtered, opt)
	a.renderTemplate(w, "dataset.html", map[string]interface{}{
		"Title":     dashboard.Title,
		"Selection": sel,
		"BackHref":  "/?" + selectionQuery(sel).Encode(),
		"Body":      markdownToHTML(rep.Markdown()),
	})
}

func markdownToHTML(md string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse([]byte(md))
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags | mdhtml.SkipHTML})
	return template.HTML(markdown.Render(doc, renderer))
}

func (a *App) handleExport(w http.ResponseWriter, r *http.Request) {
	sel := selectionFrom(r)
	var views []*dashboard.ViewModel
	for _, p := range dashboard.Pages() {
		opt := a.renderOptionsFrom(r)
		opt.Page, opt.Tab, opt.AllTabs = p.ID, "", true
		vm, err := a.render(sel, opt)
		if err != nil {
			a.writeRenderError(w, err)
			return
		}
		views = append(views, vm)
	}
	filtered, err := a.frame.Filter(views[0].Selection)
	if err != nil {
		a.writeRenderError(w, err)
		return
	}
	wb, err := report.Workbook(filtered, views)
	if err != nil {
		a.writeRenderError(w, err)
		return
	}
	defer wb.Close()
	buf, err := wb.WriteToBuffer()
	if err != nil {
		a.writeRenderError(w, err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="fitdash-export.xlsx"`)
	_, _ = buf.WriteTo(w)
}

func selectionQuery(sel dataset.Selection) url.Values {
	q := url.Values{}
	q.Set("gender", sel.Gender)
	q.Set("age_category", sel.AgeCategory)
	q.Set("month_name", sel.Month)
	return q
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
