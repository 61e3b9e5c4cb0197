package dataset

import "github.com/go-gota/gota/series"

// Column names as they appear in the dataset header.
const (
	ColParticipantID    = "participant_id"
	ColGender           = "gender"
	ColAgeCategory      = "age_category"
	ColMonth            = "month_name"
	ColActivityType     = "activity_type"
	ColDuration         = "duration_minutes"
	ColCalories         = "calories_burned"
	ColDailySteps       = "daily_steps"
	ColHoursSleep       = "hours_sleep"
	ColBMI              = "bmi"
	ColAvgHeartRate     = "avg_heart_rate"
	ColRestingHeartRate = "resting_heart_rate"
	ColStressLevel      = "stress_level"
	ColHydration        = "hydration_level"
	ColIntensity        = "intensity"
	ColFitnessLevel     = "fitness_level"
	ColHealthCondition  = "health_condition"
	// The source data spells the weight category column this way.
	ColWeightCategory = "type_wight"
)

// CategoricalColumns are loaded as strings even when their values look numeric.
var CategoricalColumns = []string{
	ColParticipantID,
	ColGender,
	ColAgeCategory,
	ColMonth,
	ColActivityType,
	ColIntensity,
	ColFitnessLevel,
	ColHealthCondition,
	ColWeightCategory,
}

// NumericColumns are loaded as floats; blank cells become NaN.
var NumericColumns = []string{
	ColDuration,
	ColCalories,
	ColDailySteps,
	ColHoursSleep,
	ColBMI,
	ColAvgHeartRate,
	ColRestingHeartRate,
	ColStressLevel,
	ColHydration,
}

// RequiredColumns lists every column the dashboard reads.
func RequiredColumns() []string {
	out := make([]string, 0, len(CategoricalColumns)+len(NumericColumns))
	out = append(out, CategoricalColumns...)
	out = append(out, NumericColumns...)
	return out
}

// IsNumeric reports whether col is one of the known numeric columns.
func IsNumeric(col string) bool {
	for _, c := range NumericColumns {
		if c == col {
			return true
		}
	}
	return false
}

func columnTypes() map[string]series.Type {
	types := make(map[string]series.Type, len(CategoricalColumns)+len(NumericColumns))
	for _, c := range CategoricalColumns {
		types[c] = series.String
	}
	for _, c := range NumericColumns {
		types[c] = series.Float
	}
	return types
}
