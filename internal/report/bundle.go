// Package report writes self-contained dashboard snapshots to disk.
package report

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/KaramelBytes/fitdash/internal/charts"
	"github.com/KaramelBytes/fitdash/internal/dashboard"
	"github.com/KaramelBytes/fitdash/internal/dataset"
	"github.com/KaramelBytes/fitdash/internal/logging"
	"github.com/KaramelBytes/fitdash/internal/observability"
	"github.com/KaramelBytes/fitdash/internal/utils"
)

//go:embed templates/*.html
var templateFiles embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFiles, "templates/index.html"))

// ErrNotEmpty is returned when the output directory already has content and
// overwriting was not requested.
var ErrNotEmpty = errors.New("output directory is not empty")

const (
	IndexFileName    = "index.html"
	WorkbookFileName = "data.xlsx"
	chartsDir        = "charts"
)

// Options controls a bundle export.
type Options struct {
	Dir     string
	Force   bool
	Name    string
	Dataset string

	Charts        charts.Options
	HistogramBins int
	PreviewRows   int
	Logger        *logging.Logger
}

// ChartFile is one chart written into the bundle.
type ChartFile struct {
	dashboard.Chart
	File string
}

type indexSection struct {
	dashboard.TabView
	Files []ChartFile
}

type indexPage struct {
	ID       string
	Title    string
	Sections []indexSection
}

// ChartFileName is the bundle-relative path of a chart's SVG.
func ChartFileName(page, chartID string) string {
	return filepath.ToSlash(filepath.Join(chartsDir, page+"-"+chartID+".svg"))
}

// Export renders every page for sel and writes the bundle into opt.Dir.
func Export(f *dataset.Frame, sel dataset.Selection, opt Options) (*Manifest, error) {
	if opt.Dir == "" {
		return nil, errors.New("export: output directory is required")
	}
	log := opt.Logger
	if log == nil {
		log = logging.Discard()
	}
	empty, err := utils.IsEmptyDir(opt.Dir)
	if err != nil {
		return nil, err
	}
	if !empty && !opt.Force {
		return nil, fmt.Errorf("%w: %s (use --force to overwrite)", ErrNotEmpty, opt.Dir)
	}
	if err := utils.EnsureDir(filepath.Join(opt.Dir, chartsDir)); err != nil {
		return nil, fmt.Errorf("create bundle dir: %w", err)
	}

	name := opt.Name
	if name == "" {
		name = filepath.Base(opt.Dir)
	}
	m := NewManifest(name, opt.Dir)
	m.Dataset = opt.Dataset

	var views []*dashboard.ViewModel
	var pages []indexPage
	for _, p := range dashboard.Pages() {
		vm, err := dashboard.Render(f, sel, dashboard.RenderOptions{
			Page:          p.ID,
			AllTabs:       true,
			HistogramBins: opt.HistogramBins,
			PreviewRows:   opt.PreviewRows,
		})
		if err != nil {
			return nil, err
		}
		views = append(views, vm)
		m.Pages = append(m.Pages, vm.Page)
		m.Selection = vm.Selection
		m.TotalRows = vm.TotalRows
		m.FilteredRows = vm.FilteredRows

		page := indexPage{ID: vm.Page, Title: vm.PageTitle}
		for _, sec := range vm.Sections {
			is := indexSection{TabView: sec}
			for _, c := range sec.Charts {
				rel, err := writeChartFile(opt.Dir, c, opt.Charts, log)
				if err != nil {
					return nil, err
				}
				m.AddFile(rel)
				is.Files = append(is.Files, ChartFile{Chart: c, File: rel})
			}
			page.Sections = append(page.Sections, is)
		}
		pages = append(pages, page)
	}

	filtered, err := f.Filter(m.Selection)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	wb, err := Workbook(filtered, views)
	if err != nil {
		return nil, fmt.Errorf("build workbook: %w", err)
	}
	defer wb.Close()
	buf, err := wb.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	if err := utils.SafeWriteFile(filepath.Join(opt.Dir, WorkbookFileName), buf.Bytes()); err != nil {
		return nil, err
	}
	m.AddFile(WorkbookFileName)

	var html bytes.Buffer
	err = indexTemplate.Execute(&html, map[string]interface{}{
		"Title":     dashboard.Title,
		"Subtitle":  dashboard.Subtitle,
		"Manifest":  m,
		"Pages":     pages,
		"Selection": m.Selection,
	})
	if err != nil {
		return nil, fmt.Errorf("render index: %w", err)
	}
	if err := utils.SafeWriteFile(filepath.Join(opt.Dir, IndexFileName), html.Bytes()); err != nil {
		return nil, err
	}
	m.AddFile(IndexFileName)

	if err := m.Save(); err != nil {
		return nil, err
	}
	log.Info("exported report %s (%d files) to %s", m.ID, len(m.Files), opt.Dir)
	return m, nil
}

func writeChartFile(dir string, c dashboard.Chart, opt charts.Options, log *logging.Logger) (string, error) {
	svg, err := charts.SVG(c, opt)
	if err != nil {
		if svg == nil {
			return "", err
		}
		observability.RecordChartFailure(c.ID)
		log.Warn("chart %s drawn as placeholder: %v", c.ID, err)
	}
	rel := ChartFileName(c.Page, c.ID)
	if err := utils.SafeWriteFile(filepath.Join(dir, filepath.FromSlash(rel)), svg); err != nil {
		return "", err
	}
	return rel, nil
}
