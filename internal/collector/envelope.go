package collector

import (
	"bytes"
	"encoding/json"
	"fmt"

	"ProfitChart/internal/model"
)

// envelope is the top-level shape of the feed: {"object": {"<key>": [...]}}.
type envelope struct {
	Object json.RawMessage `json:"object"`
}

// DecodeSeries extracts the array named seriesKey from a feed body.
// A body that is not JSON is an error. A missing or non-object "object",
// a missing key, or a value that is not an array all give an empty series.
func DecodeSeries(body []byte, seriesKey string) ([]model.RawPoint, error) {
	var doc json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	if !isKind(doc, '{') {
		return []model.RawPoint{}, nil
	}
	var env envelope
	if err := json.Unmarshal(doc, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}

	var series map[string]json.RawMessage
	if !isKind(env.Object, '{') || json.Unmarshal(env.Object, &series) != nil {
		return []model.RawPoint{}, nil
	}
	raw, ok := series[seriesKey]
	if !ok || !isKind(raw, '[') {
		return []model.RawPoint{}, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode series %q: %w", seriesKey, err)
	}
	points := make([]model.RawPoint, 0, len(items))
	for _, item := range items {
		points = append(points, decodePoint(item))
	}
	return points, nil
}

// decodePoint reads one element. Elements that are not objects, and objects
// without rValue, yield an invalid rate. A numeric date keeps its JSON text
// (an epoch in milliseconds); other non-string dates are left empty.
func decodePoint(item json.RawMessage) model.RawPoint {
	p := model.RawPoint{RValue: model.InvalidRate()}
	var fields map[string]json.RawMessage
	if !isKind(item, '{') || json.Unmarshal(item, &fields) != nil {
		return p
	}
	if d, ok := fields["date"]; ok {
		var s string
		var n json.Number
		if json.Unmarshal(d, &s) == nil {
			p.Date = s
		} else if json.Unmarshal(d, &n) == nil {
			p.Date = n.String()
		}
	}
	if r, ok := fields["rValue"]; ok {
		var rate model.Rate
		if json.Unmarshal(r, &rate) == nil {
			p.RValue = rate
		}
	}
	return p
}

func isKind(raw json.RawMessage, open byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == open
}
