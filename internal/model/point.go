package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Rate is a per-period fractional return (0.015 means +1.5%).
// The feed sends it either as a JSON number or as a numeric string.
type Rate struct {
	Value float64
	Valid bool
}

// NewRate returns a valid Rate.
func NewRate(v float64) Rate { return Rate{Value: v, Valid: true} }

// InvalidRate is the value used for rates that cannot be coerced to a number.
func InvalidRate() Rate { return Rate{Value: math.NaN()} }

// UnmarshalJSON coerces the wire value to a number.
// null, false and blank strings become 0, true becomes 1; non-numeric
// strings, objects and arrays become NaN and are flagged invalid.
func (r *Rate) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = CoerceRate(raw)
	return nil
}

// MarshalJSON writes the numeric value, or null when it is not finite.
func (r Rate) MarshalJSON() ([]byte, error) {
	if math.IsNaN(r.Value) || math.IsInf(r.Value, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

// CoerceRate converts a decoded JSON value to a Rate.
func CoerceRate(v interface{}) Rate {
	switch n := v.(type) {
	case nil:
		return NewRate(0)
	case float64:
		return NewRate(n)
	case bool:
		if n {
			return NewRate(1)
		}
		return NewRate(0)
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return NewRate(0)
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return InvalidRate()
		}
		return NewRate(f)
	default:
		return InvalidRate()
	}
}

// RawPoint is one observation of the remote series.
type RawPoint struct {
	Date   string `json:"date"`
	RValue Rate   `json:"rValue"`
}

// ProfitPoint is the cumulative compounded profit, in percent, at Date.
type ProfitPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// ChartPoint is a ProfitPoint enriched for display.
type ChartPoint struct {
	Date          string  `json:"date"`
	Value         float64 `json:"value"`
	DateFormatted string  `json:"dateFormatted"`
}

// MarshalJSON writes non-finite values as null so a poisoned curve still encodes.
func (p ChartPoint) MarshalJSON() ([]byte, error) {
	var value interface{} = p.Value
	if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
		value = nil
	}
	return json.Marshal(struct {
		Date          string      `json:"date"`
		Value         interface{} `json:"value"`
		DateFormatted string      `json:"dateFormatted"`
	}{p.Date, value, p.DateFormatted})
}
