package web

import (
	"html/template"
	"net/url"

	"github.com/KaramelBytes/fitdash/internal/charts"
	"github.com/KaramelBytes/fitdash/internal/dashboard"
)

type legendEntry struct {
	Label string
	Color string
}

type figure struct {
	ID     string
	Title  string
	SVG    template.HTML
	Legend []legendEntry
	Empty  bool
}

type section struct {
	dashboard.TabView
	Figures []figure
}

type link struct {
	Title  string
	Href   string
	Active bool
}

type pageData struct {
	View     *dashboard.ViewModel
	Sections []section
	TabLinks []link

	DatasetHref string
	ExportHref  string
	ViewHref    string
}

func (a *App) buildPage(vm *dashboard.ViewModel, opt charts.Options) pageData {
	q := selectionQuery(vm.Selection).Encode()
	data := pageData{
		View:        vm,
		DatasetHref: "/dataset?" + q,
		ExportHref:  "/export.xlsx?" + q,
		ViewHref:    "/api/view?" + q + "&page=" + url.QueryEscape(vm.Page),
	}
	for _, t := range vm.Tabs {
		tq := selectionQuery(vm.Selection)
		tq.Set("page", vm.Page)
		tq.Set("tab", t.ID)
		data.TabLinks = append(data.TabLinks, link{Title: t.Title, Href: "/?" + tq.Encode(), Active: t.Active})
	}
	for _, sec := range vm.Sections {
		s := section{TabView: sec}
		for _, c := range sec.Charts {
			s.Figures = append(s.Figures, figure{
				ID:     c.ID,
				Title:  c.Title,
				SVG:    template.HTML(a.drawChart(c, opt)),
				Legend: legend(c),
				Empty:  c.Empty,
			})
		}
		data.Sections = append(data.Sections, s)
	}
	return data
}

// legend lists what each colour means; single-colour charts need none.
func legend(c dashboard.Chart) []legendEntry {
	if c.Empty || len(c.Colors) == 0 {
		return nil
	}
	var out []legendEntry
	switch {
	case c.Kind == dashboard.KindPie || c.PerCategoryColors():
		for i, cat := range c.Categories {
			out = append(out, legendEntry{Label: cat, Color: "#" + c.Colors[i%len(c.Colors)]})
		}
	case len(c.Series) > 1:
		for i, s := range c.Series {
			out = append(out, legendEntry{Label: s.Name, Color: "#" + c.Colors[i%len(c.Colors)]})
		}
	}
	return out
}
