package render

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ProfitChart/internal/collector"
	"ProfitChart/internal/model"
)

func TestBuildView_Data(t *testing.T) {
	res := collector.Result{Status: collector.StatusData, Points: []model.ProfitPoint{
		{Date: "2024-03-05", Value: 10},
		{Date: "garbage", Value: 4.5},
	}}
	v := BuildView(res, time.UTC, "err: ")

	assert.Equal(t, model.ViewReady, v.Kind)
	require.Len(t, v.Points, 2)
	assert.Equal(t, "05.03", v.Points[0].DateFormatted)
	assert.Equal(t, 10.0, v.Points[0].Value)
	assert.Equal(t, InvalidDate, v.Points[1].DateFormatted)
	assert.Equal(t, "garbage", v.Points[1].Date)
	assert.Equal(t, 1, CountInvalidDates(v.Points))
}

func TestCountInvalidDates(t *testing.T) {
	pts := PrepareChartData([]model.ProfitPoint{
		{Date: "2024-03-05"}, {Date: ""}, {Date: "soon"}, {Date: "1709596800000"},
	}, time.UTC)
	assert.Equal(t, 2, CountInvalidDates(pts))
	assert.Zero(t, CountInvalidDates(nil))
}

func TestBuildView_Empty(t *testing.T) {
	v := BuildView(collector.Result{Status: collector.StatusEmpty}, time.UTC, "err: ")
	assert.True(t, v.Empty())
	assert.Empty(t, v.Message)
}

func TestBuildView_Failed(t *testing.T) {
	res := collector.Result{Status: collector.StatusFailed, Err: &collector.FetchError{Op: "fetch series", Err: errors.New("dial tcp: refused")}}
	v := BuildView(res, time.UTC, DefaultLabels().ErrorPrefix)

	assert.Equal(t, model.ViewError, v.Kind)
	assert.True(t, strings.HasPrefix(v.Message, "Ошибка загрузки данных: "))
	assert.Contains(t, v.Message, "dial tcp: refused")
	assert.Empty(t, v.Points)
}

func TestPrepareChartData_KeepsOrder(t *testing.T) {
	in := []model.ProfitPoint{{Date: "2024-01-02", Value: 1}, {Date: "2024-01-01", Value: 2}}
	out := PrepareChartData(in, time.UTC)
	require.Len(t, out, 2)
	assert.Equal(t, "02.01", out[0].DateFormatted)
	assert.Equal(t, "01.01", out[1].DateFormatted)
}
