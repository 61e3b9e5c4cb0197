package dashboard

import (
	"github.com/KaramelBytes/fitdash/internal/analysis"
	ds "github.com/KaramelBytes/fitdash/internal/dataset"
)

// Kind is the chart family.
type Kind string

const (
	KindPie              Kind = "pie"
	KindBar              Kind = "bar"
	KindGroupedBar       Kind = "grouped-bar"
	KindHistogram        Kind = "histogram"
	KindGroupedHistogram Kind = "grouped-histogram"
)

// ChartSpec declares one chart: which column to group by, which to aggregate and how.
type ChartSpec struct {
	ID    string
	Title string
	Kind  Kind
	Agg   analysis.Agg
	// Key is the slice/bar grouping column (unused for histograms).
	Key string
	// Series splits grouped kinds into coloured series.
	Series string
	// Value is the aggregated or binned column. For AggCount on a categorical
	// column only rows where it is present are counted.
	Value   string
	XLabel  string
	YLabel  string
	Palette []string
	// Mono draws every bar in the first palette colour.
	Mono bool
}

// MetricKind selects how a metric is computed.
type MetricKind string

const (
	MetricMean     MetricKind = "mean"
	MetricDistinct MetricKind = "distinct"
	MetricMostFreq MetricKind = "most-frequent"
)

// MetricSpec declares one headline number.
type MetricSpec struct {
	ID     string
	Label  string
	Kind   MetricKind
	Column string
	// Format is a printf verb for the value; empty rounds to 2 places.
	Format string
}

// TabSpec groups metrics and charts under one heading.
type TabSpec struct {
	ID      string
	Title   string
	Heading string
	Theme   Theme
	Metrics []MetricSpec
	Charts  []ChartSpec
	Preview bool
}

// PageSpec is a top-level page of tabs.
type PageSpec struct {
	ID    string
	Title string
	Tabs  []TabSpec
}

const (
	PageHealth   = "health"
	PageBusiness = "business"
)

const (
	lblActivity     = "Activity Type"
	lblAge          = "Age Category"
	lblCount        = "Count"
	lblDuration     = "Total Duration (Minutes)"
	lblHealthCond   = "Health Condition"
	lblAvgStress    = "Average Stress Level"
	lblAvgHeartRate = "Average Heart Rate"
	lblCalories     = "Total Calories Burned"
)

var catalog = []PageSpec{
	{
		ID:    PageHealth,
		Title: "Health & Fitness",
		Tabs: []TabSpec{
			{
				ID:      "overview",
				Title:   "Overview",
				Heading: "Overview - Key Health & Fitness Metrics",
				Theme:   ThemeLight,
				Preview: true,
				Metrics: []MetricSpec{
					{ID: "avg-heart-rate", Label: "Average Heart Rate (bpm)", Kind: MetricMean, Column: ds.ColAvgHeartRate},
					{ID: "avg-daily-steps", Label: "Average Daily Steps", Kind: MetricMean, Column: ds.ColDailySteps},
					{ID: "avg-sleep-hours", Label: "Average Sleep Hours", Kind: MetricMean, Column: ds.ColHoursSleep},
					{ID: "avg-calories", Label: "Average Calories Burned", Kind: MetricMean, Column: ds.ColCalories},
					{ID: "avg-bmi", Label: "Average BMI", Kind: MetricMean, Column: ds.ColBMI},
				},
				Charts: []ChartSpec{
					{ID: "overview-bmi-category", Title: "BMI Category Distribution", Kind: KindPie, Agg: analysis.AggFrequency, Key: ds.ColWeightCategory},
					{ID: "overview-health-condition", Title: "Health Condition Distribution", Kind: KindPie, Agg: analysis.AggFrequency, Key: ds.ColHealthCondition},
					{ID: "overview-activity-type", Title: "activity_type Level Distribution", Kind: KindBar, Agg: analysis.AggFrequency, Key: ds.ColActivityType, XLabel: lblActivity, YLabel: lblCount, Mono: true},
				},
			},
			{
				ID:      "activity",
				Title:   "Activity Analysis",
				Heading: "Activity Analysis",
				Theme:   ThemeLight,
				Charts: []ChartSpec{
					{ID: "activity-total-duration", Title: "Total Duration per Activity Type", Kind: KindBar, Agg: analysis.AggSum, Key: ds.ColActivityType, Value: ds.ColDuration, XLabel: lblActivity, YLabel: lblDuration},
					{ID: "activity-total-calories", Title: "Total Calories Burned per Activity Type", Kind: KindBar, Agg: analysis.AggSum, Key: ds.ColActivityType, Value: ds.ColCalories, XLabel: lblActivity, YLabel: lblCalories},
					{ID: "activity-distribution", Title: "Activity Type Distribution", Kind: KindPie, Agg: analysis.AggFrequency, Key: ds.ColActivityType},
					{ID: "activity-avg-duration", Title: "Average Duration per Activity Type", Kind: KindBar, Agg: analysis.AggMean, Key: ds.ColActivityType, Value: ds.ColDuration, XLabel: lblActivity, YLabel: "Average Duration (Minutes)"},
					{ID: "activity-avg-calories", Title: "Average Calories Burned per Activity Type", Kind: KindBar, Agg: analysis.AggMean, Key: ds.ColActivityType, Value: ds.ColCalories, XLabel: lblActivity, YLabel: "Average Calories Burned"},
					{ID: "activity-by-gender", Title: "Activity Type by Gender", Kind: KindGroupedBar, Agg: analysis.AggSum, Key: ds.ColActivityType, Series: ds.ColGender, Value: ds.ColDuration, XLabel: lblActivity, YLabel: lblDuration},
					{ID: "activity-duration-by-age", Title: "Duration by Age Category", Kind: KindBar, Agg: analysis.AggSum, Key: ds.ColAgeCategory, Value: ds.ColDuration, XLabel: lblAge, YLabel: lblDuration},
					{ID: "activity-calories-by-age", Title: "Calories Burned by Age Category", Kind: KindBar, Agg: analysis.AggSum, Key: ds.ColAgeCategory, Value: ds.ColCalories, XLabel: lblAge, YLabel: lblCalories},
					{ID: "activity-total-steps", Title: "Total Steps by Activity Type", Kind: KindBar, Agg: analysis.AggSum, Key: ds.ColActivityType, Value: ds.ColDailySteps, XLabel: lblActivity, YLabel: "Total Steps"},
					{ID: "activity-stress", Title: "Stress Level vs Activity Type", Kind: KindGroupedHistogram, Series: ds.ColActivityType, Value: ds.ColStressLevel, XLabel: "Stress Level", YLabel: lblCount},
					{ID: "activity-hydration", Title: "Hydration Level Distribution by Activity Type", Kind: KindPie, Agg: analysis.AggMean, Key: ds.ColActivityType, Value: ds.ColHydration},
					{ID: "activity-resting-heart-rate", Title: "Resting Heart Rate Distribution by Activity Type", Kind: KindPie, Agg: analysis.AggMean, Key: ds.ColActivityType, Value: ds.ColRestingHeartRate},
					{ID: "activity-bmi", Title: "BMI by Activity Type", Kind: KindBar, Agg: analysis.AggMean, Key: ds.ColActivityType, Value: ds.ColBMI, XLabel: lblActivity, YLabel: "Average BMI"},
					{ID: "activity-intensity", Title: "Intensity Distribution by Activity Type", Kind: KindBar, Agg: analysis.AggCount, Key: ds.ColActivityType, Value: ds.ColIntensity, XLabel: lblActivity, YLabel: "Intensity"},
					{ID: "activity-fitness-level", Title: "Fitness Level by Activity Type", Kind: KindGroupedBar, Agg: analysis.AggSum, Key: ds.ColActivityType, Series: ds.ColFitnessLevel, Value: ds.ColDuration, XLabel: lblActivity, YLabel: lblDuration},
				},
			},
			{
				ID:      "heart-stress",
				Title:   "Heart Rate & Stress Analysis",
				Heading: "Heart Rate & Stress Analysis",
				Theme:   ThemeDark,
				Charts: []ChartSpec{
					{ID: "heart-resting-rate-distribution", Title: "Resting Heart Rate Distribution", Kind: KindHistogram, Value: ds.ColRestingHeartRate, XLabel: "Resting Heart Rate", YLabel: lblCount, Mono: true},
					{ID: "heart-rate-by-activity", Title: "Average Heart Rate by Activity Type", Kind: KindBar, Agg: analysis.AggMean, Key: ds.ColActivityType, Value: ds.ColRestingHeartRate, XLabel: lblActivity, YLabel: lblAvgHeartRate},
					{ID: "heart-stress-distribution", Title: "Stress Level Distribution", Kind: KindHistogram, Value: ds.ColStressLevel, XLabel: "Stress Level", YLabel: lblCount, Mono: true},
					{ID: "heart-stress-by-activity", Title: "Average Stress Level by Activity Type", Kind: KindBar, Agg: analysis.AggMean, Key: ds.ColActivityType, Value: ds.ColStressLevel, XLabel: lblActivity, YLabel: lblAvgStress},
					{ID: "heart-stress-by-gender", Title: "Stress Level Distribution by Gender", Kind: KindGroupedBar, Agg: analysis.AggCount, Key: ds.ColGender, Series: ds.ColStressLevel, XLabel: "Gender", YLabel: lblCount},
					{ID: "heart-rate-by-gender", Title: "Average Heart Rate by Gender", Kind: KindBar, Agg: analysis.AggMean, Key: ds.ColGender, Value: ds.ColRestingHeartRate, XLabel: "Gender", YLabel: lblAvgHeartRate},
					{ID: "heart-stress-by-age", Title: "Average Stress Level by Age Category", Kind: KindBar, Agg: analysis.AggMean, Key: ds.ColAgeCategory, Value: ds.ColStressLevel, XLabel: lblAge, YLabel: lblAvgStress},
					{ID: "heart-rate-by-age", Title: "Average Heart Rate by Age Category", Kind: KindBar, Agg: analysis.AggMean, Key: ds.ColAgeCategory, Value: ds.ColRestingHeartRate, XLabel: lblAge, YLabel: lblAvgHeartRate},
				},
			},
			{
				ID:      "condition-fitness",
				Title:   "Health Condition & Fitness Level",
				Heading: "Health Condition & Fitness Level Analysis",
				Theme:   ThemeDark,
				Charts: []ChartSpec{
					{ID: "condition-distribution", Title: "Health Condition Distribution", Kind: KindPie, Agg: analysis.AggFrequency, Key: ds.ColHealthCondition, Palette: PaletteHealthCondition},
					{ID: "condition-fitness-distribution", Title: "Fitness Level Distribution", Kind: KindPie, Agg: analysis.AggFrequency, Key: ds.ColFitnessLevel, Palette: PaletteFitnessLevel},
					{ID: "condition-stress", Title: "Stress Level by Health Condition", Kind: KindGroupedHistogram, Series: ds.ColHealthCondition, Value: ds.ColStressLevel, XLabel: "Stress Level", YLabel: lblCount, Palette: PaletteHealthCondition},
					{ID: "condition-bmi", Title: "BMI by Health Condition", Kind: KindGroupedHistogram, Series: ds.ColHealthCondition, Value: ds.ColBMI, XLabel: "BMI", YLabel: lblCount, Palette: PaletteHealthCondition},
					{ID: "condition-duration-by-intensity", Title: "Duration by Intensity", Kind: KindGroupedHistogram, Series: ds.ColIntensity, Value: ds.ColDuration, XLabel: "Duration (Minutes)", YLabel: lblCount, Palette: PaletteFitnessLevel},
					{ID: "condition-calories-by-weight", Title: "Calories Burned by type wight", Kind: KindGroupedHistogram, Series: ds.ColWeightCategory, Value: ds.ColCalories, XLabel: "Calories Burned", YLabel: lblCount, Palette: PaletteFitnessLevel},
					{ID: "condition-steps-by-weight", Title: "Steps by type_wight", Kind: KindGroupedHistogram, Series: ds.ColWeightCategory, Value: ds.ColDailySteps, XLabel: "Daily Steps", YLabel: lblCount, Palette: PaletteFitnessLevel},
					{ID: "condition-hydration", Title: "Hydration Level by Health Condition", Kind: KindPie, Agg: analysis.AggMean, Key: ds.ColHealthCondition, Value: ds.ColHydration, Palette: PaletteHealthCondition},
				},
			},
		},
	},
	{
		ID:    PageBusiness,
		Title: "Business Insights",
		Tabs: []TabSpec{
			{
				ID:      "summary",
				Title:   "Summary Statistics",
				Heading: "Summary Statistics",
				Theme:   ThemeLight,
				Metrics: []MetricSpec{
					{ID: "total-participants", Label: "Total Participants", Kind: MetricDistinct, Column: ds.ColParticipantID, Format: "%.0f"},
					{ID: "avg-workout-duration", Label: "Average Workout Duration", Kind: MetricMean, Column: ds.ColDuration, Format: "%.2f minutes"},
					{ID: "avg-calories", Label: "Average Calories Burned", Kind: MetricMean, Column: ds.ColCalories, Format: "%.2f kcal"},
					{ID: "avg-daily-steps", Label: "Average Daily Steps", Kind: MetricMean, Column: ds.ColDailySteps, Format: "%.0f steps"},
					{ID: "avg-hydration", Label: "Average Hydration Level", Kind: MetricMean, Column: ds.ColHydration, Format: "%.2f"},
					{ID: "most-popular-activity", Label: "Most Popular Activity Type", Kind: MetricMostFreq, Column: ds.ColActivityType},
				},
			},
			{
				ID:      "engagement",
				Title:   "Engagement Insights",
				Heading: "Engagement Insights",
				Theme:   ThemeDark,
				Charts: []ChartSpec{
					{ID: "engagement-age", Title: "Age Category Distribution", Kind: KindPie, Agg: analysis.AggFrequency, Key: ds.ColAgeCategory, Palette: PaletteSet3},
					{ID: "engagement-gender", Title: "Gender Distribution", Kind: KindPie, Agg: analysis.AggFrequency, Key: ds.ColGender, Palette: PaletteSet1},
					{ID: "engagement-activity", Title: "Most Popular Activity Types", Kind: KindBar, Agg: analysis.AggFrequency, Key: ds.ColActivityType, XLabel: lblActivity, YLabel: "Frequency", Palette: PaletteSet2},
				},
			},
			{
				ID:      "insights",
				Title:   "Health & Fitness Insights",
				Heading: "Health & Fitness Insights",
				Theme:   ThemeDark,
				Charts: []ChartSpec{
					{ID: "insights-stress-by-fitness", Title: "Average Stress Level by Fitness Level", Kind: KindBar, Agg: analysis.AggMean, Key: ds.ColFitnessLevel, Value: ds.ColStressLevel, XLabel: "Fitness Level", YLabel: lblAvgStress, Palette: PaletteSet3},
					{ID: "insights-health-condition", Title: "Health Condition Distribution", Kind: KindPie, Agg: analysis.AggFrequency, Key: ds.ColHealthCondition, Palette: PalettePastel},
					{ID: "insights-calories-by-condition", Title: "Total Calories Burned by Health Condition", Kind: KindBar, Agg: analysis.AggSum, Key: ds.ColHealthCondition, Value: ds.ColCalories, XLabel: lblHealthCond, YLabel: lblCalories, Palette: PaletteSet2},
				},
			},
		},
	},
}

// Pages returns the page catalog. Callers must not modify it.
func Pages() []PageSpec { return catalog }

// FindPage looks a page up by id.
func FindPage(id string) (PageSpec, bool) {
	for _, p := range catalog {
		if p.ID == id {
			return p, true
		}
	}
	return PageSpec{}, false
}

// FindChart looks a chart up by id across every page and tab.
func FindChart(id string) (PageSpec, TabSpec, ChartSpec, bool) {
	for _, p := range catalog {
		for _, t := range p.Tabs {
			for _, c := range t.Charts {
				if c.ID == id {
					return p, t, c, true
				}
			}
		}
	}
	return PageSpec{}, TabSpec{}, ChartSpec{}, false
}
