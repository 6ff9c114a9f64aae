package model

// ViewKind selects which of the three display states is shown.
type ViewKind string

const (
	ViewLoading ViewKind = "loading"
	ViewReady   ViewKind = "ready"
	ViewError   ViewKind = "error"
)

// ViewState is the single value the display layer renders from.
// Ready with no points means "no data".
type ViewState struct {
	Kind    ViewKind     `json:"kind"`
	Points  []ChartPoint `json:"points"`
	Message string       `json:"message,omitempty"`
}

func Loading() ViewState { return ViewState{Kind: ViewLoading, Points: []ChartPoint{}} }

// Ready copies points so the state cannot be changed through the caller's slice.
func Ready(points []ChartPoint) ViewState {
	cp := make([]ChartPoint, len(points))
	copy(cp, points)
	return ViewState{Kind: ViewReady, Points: cp}
}

func Failed(message string) ViewState {
	return ViewState{Kind: ViewError, Points: []ChartPoint{}, Message: message}
}

// Settled reports whether the state has left Loading.
func (v ViewState) Settled() bool { return v.Kind != ViewLoading }

// Empty reports a ready state without points.
func (v ViewState) Empty() bool { return v.Kind == ViewReady && len(v.Points) == 0 }

// Clone returns a deep copy.
func (v ViewState) Clone() ViewState {
	cp := v
	cp.Points = make([]ChartPoint, len(v.Points))
	copy(cp.Points, v.Points)
	return cp
}
