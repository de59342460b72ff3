package gesture

import "math"

// Width bounds of the chart viewport, in viewport units.
const (
	MinWidth = 260
	MaxWidth = 920
)

// Clamp limits w to [MinWidth, MaxWidth].
func Clamp(w float64) float64 {
	return math.Max(MinWidth, math.Min(MaxWidth, w))
}

// Resize is the two-phase chart resize gesture. Begin captures a baseline
// and listens on the bus; every move writes the new width immediately; a
// release or Close stops listening.
type Resize struct {
	bus      *Bus
	setWidth func(int)

	sub    *Subscription
	baseX  float64
	baseW  float64
	active bool
}

// NewResize binds a gesture to a bus and a width sink.
func NewResize(bus *Bus, setWidth func(int)) *Resize {
	return &Resize{bus: bus, setWidth: setWidth}
}

// Begin starts a drag at pointerX for a chart currently currentWidth wide.
// A drag already in progress is ended first.
func (r *Resize) Begin(pointerX float64, currentWidth int) {
	r.End()
	r.baseX = pointerX
	r.baseW = float64(currentWidth)
	r.active = true
	r.sub = r.bus.Subscribe(r.handle)
}

func (r *Resize) handle(e Event) {
	switch e.Kind {
	case Move:
		r.Move(e.X)
	case Up:
		r.End()
	}
}

// Move applies the pointer displacement since Begin.
func (r *Resize) Move(x float64) {
	if !r.active {
		return
	}
	w := Clamp(r.baseW + (x - r.baseX))
	r.setWidth(int(math.Round(w)))
}

// End finishes the drag and unsubscribes. Safe to call at any time.
func (r *Resize) End() {
	r.active = false
	r.sub.Cancel()
	r.sub = nil
}

// Close releases the subscription when the owner is torn down mid-drag.
func (r *Resize) Close() {
	r.End()
}

// Active reports whether a drag is in progress.
func (r *Resize) Active() bool {
	return r.active
}
