package render

import "fmt"

// TooltipEntry is one series value under the cursor.
type TooltipEntry struct {
	Name  string
	Value float64
	Color string
}

// Tooltip is the hover state handed to FormatTooltip.
type Tooltip struct {
	Active  bool
	Payload []TooltipEntry
	Label   string
}

// TooltipLine is one rendered row of a tooltip. Color is empty for the date row.
type TooltipLine struct {
	Text  string
	Color string
}

// FormatTooltip returns nil when the tooltip is inactive or has no payload.
func FormatTooltip(t Tooltip, dateLabel string) []TooltipLine {
	if !t.Active || len(t.Payload) == 0 {
		return nil
	}
	lines := make([]TooltipLine, 0, len(t.Payload)+1)
	lines = append(lines, TooltipLine{Text: fmt.Sprintf("%s: %s", dateLabel, t.Label)})
	for _, e := range t.Payload {
		lines = append(lines, TooltipLine{
			Text:  fmt.Sprintf("%s: %.2f%%", e.Name, e.Value),
			Color: e.Color,
		})
	}
	return lines
}
