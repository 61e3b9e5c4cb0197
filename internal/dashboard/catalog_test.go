package dashboard

import (
	"testing"

	"github.com/KaramelBytes/fitdash/internal/dataset"
)

func TestCatalogIsConsistent(t *testing.T) {
	known := map[string]bool{}
	for _, c := range dataset.RequiredColumns() {
		known[c] = true
	}
	ids := map[string]bool{}
	charts := 0
	for _, p := range Pages() {
		if len(p.Tabs) == 0 {
			t.Fatalf("page %s has no tabs", p.ID)
		}
		for _, tab := range p.Tabs {
			for _, m := range tab.Metrics {
				if !known[m.Column] {
					t.Errorf("metric %s uses unknown column %q", m.ID, m.Column)
				}
			}
			for _, c := range tab.Charts {
				charts++
				if ids[c.ID] {
					t.Errorf("duplicate chart id %s", c.ID)
				}
				ids[c.ID] = true
				for _, col := range []string{c.Key, c.Series, c.Value} {
					if col != "" && !known[col] {
						t.Errorf("chart %s uses unknown column %q", c.ID, col)
					}
				}
				switch c.Kind {
				case KindHistogram, KindGroupedHistogram:
					if !dataset.IsNumeric(c.Value) {
						t.Errorf("histogram %s bins non-numeric %q", c.ID, c.Value)
					}
				case KindPie, KindBar, KindGroupedBar:
					if c.Key == "" || c.Agg == "" {
						t.Errorf("chart %s lacks key or aggregation", c.ID)
					}
				}
			}
		}
	}
	if charts != 40 {
		t.Fatalf("catalog has %d charts, want 40", charts)
	}
}

func TestFindChart(t *testing.T) {
	p, tab, c, ok := FindChart("engagement-gender")
	if !ok || p.ID != PageBusiness || tab.ID != "engagement" || c.Kind != KindPie {
		t.Fatalf("unexpected lookup: %v %s %s %+v", ok, p.ID, tab.ID, c)
	}
	if _, _, _, ok := FindChart("missing"); ok {
		t.Fatalf("expected miss")
	}
}
