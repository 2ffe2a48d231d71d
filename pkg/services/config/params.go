package config

import (
	"fmt"

	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/spf13/viper"
)

type sourceEntry struct {
	Label    string `mapstructure:"label"`
	Contains string `mapstructure:"contains"`
}

type fileParams struct {
	CutoffDate              string        `mapstructure:"cutoff_date"`
	LowHeartRateBPM         float64       `mapstructure:"low_heart_rate_bpm"`
	MinValidSleepMin        float64       `mapstructure:"min_valid_sleep_min"`
	WorkoutOutlierMin       float64       `mapstructure:"workout_outlier_min"`
	ChartClampMin           float64       `mapstructure:"chart_clamp_min"`
	WorkoutDayBoundaryHour  int           `mapstructure:"workout_day_boundary_hour"`
	SleepNightBoundaryHour  int           `mapstructure:"sleep_night_boundary_hour"`
	HeartRateSourceContains string        `mapstructure:"heart_rate_source_contains"`
	SleepSources            []sourceEntry `mapstructure:"sleep_sources"`
}

// LoadParams reads analysis parameters from a YAML file and lays them over
// the defaults. Keys absent from the file keep their default values; an
// empty path returns the defaults untouched.
func LoadParams(path string) (domain.Params, error) {
	params := domain.DefaultParams()
	if path == "" {
		return params, nil
	}

	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return domain.Params{}, fmt.Errorf("failed to read params file: %w", err)
	}

	file := fileParams{
		CutoffDate:              params.CutoffDate.String(),
		LowHeartRateBPM:         params.LowHeartRateBPM,
		MinValidSleepMin:        params.MinValidSleepMin,
		WorkoutOutlierMin:       params.WorkoutOutlierMin,
		ChartClampMin:           params.ChartClampMin,
		WorkoutDayBoundaryHour:  params.WorkoutDayBoundaryHour,
		SleepNightBoundaryHour:  params.SleepNightBoundaryHour,
		HeartRateSourceContains: params.HeartRateSourceContains,
	}
	if err := v.Unmarshal(&file); err != nil {
		return domain.Params{}, fmt.Errorf("failed to parse params file: %w", err)
	}

	cutoff, err := domain.ParseDate(file.CutoffDate)
	if err != nil {
		return domain.Params{}, fmt.Errorf("cutoff_date: %w", err)
	}

	params.CutoffDate = cutoff
	params.LowHeartRateBPM = file.LowHeartRateBPM
	params.MinValidSleepMin = file.MinValidSleepMin
	params.WorkoutOutlierMin = file.WorkoutOutlierMin
	params.ChartClampMin = file.ChartClampMin
	params.WorkoutDayBoundaryHour = file.WorkoutDayBoundaryHour
	params.SleepNightBoundaryHour = file.SleepNightBoundaryHour
	params.HeartRateSourceContains = file.HeartRateSourceContains
	if len(file.SleepSources) > 0 {
		sources := make([]domain.SourceLabel, 0, len(file.SleepSources))
		for _, s := range file.SleepSources {
			if s.Label == "" || s.Contains == "" {
				return domain.Params{}, fmt.Errorf("sleep_sources entries need both label and contains, got %+v", s)
			}
			sources = append(sources, domain.SourceLabel{Label: s.Label, Contains: s.Contains})
		}
		params.SleepSources = sources
	}
	return params, nil
}
