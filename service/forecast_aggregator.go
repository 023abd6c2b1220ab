package services

import (
	"math"
	"time"

	"weather-dash/models"
)

// MAX_DAILY_SUMMARIES bounds the aggregated forecast.
const MAX_DAILY_SUMMARIES = 5

// AggregateDaily collapses samples (ascending by time) into one summary per calendar date
// in loc, in first-seen order, keeping at most MAX_DAILY_SUMMARIES.
//
// Min and max track the sample temperatures. The icon and description come from the first
// sample of the date and are replaced by any later daytime sample. Pop is taken from the
// last sample of the date, it is not a maximum.
func AggregateDaily(samples []models.ForecastSample, loc *time.Location) []models.DailySummary {
	if loc == nil {
		loc = time.Local
	}

	summaries := []models.DailySummary{}
	byDate := make(map[string]int)
	for _, s := range samples {
		date := time.Unix(s.Dt, 0).In(loc).Format(models.DailySummaryDateLayout)
		cond := s.PrimaryCondition()

		i, seen := byDate[date]
		if !seen {
			byDate[date] = len(summaries)
			summaries = append(summaries, models.DailySummary{
				Date:        date,
				Dt:          s.Dt,
				TempMin:     s.Main.Temp,
				TempMax:     s.Main.Temp,
				Icon:        cond.Icon,
				Description: cond.Description,
				Pop:         s.Pop,
			})
			continue
		}

		day := &summaries[i]
		day.TempMin = math.Min(day.TempMin, s.Main.Temp)
		day.TempMax = math.Max(day.TempMax, s.Main.Temp)
		if cond.IsDaytime() {
			day.Icon = cond.Icon
			day.Description = cond.Description
		}
		day.Pop = s.Pop
	}

	if len(summaries) > MAX_DAILY_SUMMARIES {
		summaries = summaries[:MAX_DAILY_SUMMARIES]
	}
	return summaries
}
