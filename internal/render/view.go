package render

import (
	"time"

	"ProfitChart/internal/collector"
	"ProfitChart/internal/model"
)

// PrepareChartData adds the display date to every point.
func PrepareChartData(points []model.ProfitPoint, loc *time.Location) []model.ChartPoint {
	out := make([]model.ChartPoint, len(points))
	for i, p := range points {
		out[i] = model.ChartPoint{
			Date:          p.Date,
			Value:         p.Value,
			DateFormatted: FormatDisplayDate(p.Date, loc),
		}
	}
	return out
}

// CountInvalidDates returns how many points show InvalidDate.
func CountInvalidDates(points []model.ChartPoint) int {
	n := 0
	for _, p := range points {
		if p.DateFormatted == InvalidDate {
			n++
		}
	}
	return n
}

// BuildView maps a pipeline result onto the view state.
func BuildView(res collector.Result, loc *time.Location, errorPrefix string) model.ViewState {
	switch res.Status {
	case collector.StatusData:
		return model.Ready(PrepareChartData(res.Points, loc))
	case collector.StatusEmpty:
		return model.Ready(nil)
	default:
		msg := "unknown error"
		if res.Err != nil {
			msg = res.Err.Error()
		}
		return model.Failed(errorPrefix + msg)
	}
}
