package calculator

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"ProfitChart/internal/model"
)

// CompoundProfit turns per-period rates into a cumulative compounded profit
// curve in percent. The i-th value is (prod_{j<=i}(1+r_j) - 1) * 100, rounded
// to 2 decimals. The running product is kept unrounded.
// An invalid rate yields NaN for that point and every point after it.
func CompoundProfit(points []model.RawPoint) []model.ProfitPoint {
	out := make([]model.ProfitPoint, 0, len(points))
	v := 1.0
	for _, p := range points {
		v *= p.RValue.Value + 1
		out = append(out, model.ProfitPoint{
			Date:  p.Date,
			Value: RoundPercent((v - 1) * 100),
		})
	}
	return out
}

// RoundPercent rounds the exact binary value of v to 2 decimal places,
// half away from zero, so 1.005 (stored as 1.00499...) becomes 1.
// NaN and infinities are returned unchanged.
func RoundPercent(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	d := decimal.RequireFromString(strconv.FormatFloat(v, 'f', 30, 64))
	f, _ := d.Round(2).Float64()
	return f
}

// FirstInvalid returns the index of the first point whose rate could not be
// coerced to a number.
func FirstInvalid(points []model.RawPoint) (int, bool) {
	for i, p := range points {
		if !p.RValue.Valid || math.IsNaN(p.RValue.Value) {
			return i, true
		}
	}
	return -1, false
}

// CountInvalid returns how many points carry a non-numeric rate.
func CountInvalid(points []model.RawPoint) int {
	n := 0
	for _, p := range points {
		if !p.RValue.Valid || math.IsNaN(p.RValue.Value) {
			n++
		}
	}
	return n
}
