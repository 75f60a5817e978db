package viewport

// DragState is the state of a drag gesture.
type DragState struct {
	Dragging bool
	// Origin is the pointer position at the start of the drag minus the pan offset.
	Origin Vec2
}

// Event is an input event that can be handled by a [Reducer].
type Event interface {
	isEvent()
}

// PointerDown is sent when the primary button was pressed.
type PointerDown struct {
	Pos Vec2
}

// PointerUp is sent when the primary button was released.
type PointerUp struct{}

// PointerMove is sent when the pointer moved to a new absolute position.
type PointerMove struct {
	Pos Vec2
}

// Wheel is sent when the mouse wheel was scrolled. Positive deltas zoom in.
type Wheel struct {
	Delta float64
}

// KeyZoom is sent when a zoom shortcut was pressed.
type KeyZoom struct {
	In bool
}

func (PointerDown) isEvent() {}
func (PointerUp) isEvent()   {}
func (PointerMove) isEvent() {}
func (Wheel) isEvent()       {}
func (KeyZoom) isEvent()     {}

// keyZoomDelta is the wheel delta equivalent of a zoom shortcut.
const keyZoomDelta = 1.0

// Reducer updates a viewport state from input events.
type Reducer struct {
	State State
	Drag  DragState
	// Pointer is the last known pointer position. It is the anchor for zooming.
	Pointer Vec2
	// Sensitivity for converting wheel deltas into zoom factors.
	Sensitivity float64
}

// NewReducer returns a new reducer with the initial state s.
// The pointer starts in the center of the viewport.
func NewReducer(s State, size Vec2) *Reducer {
	return &Reducer{
		State:       s,
		Pointer:     size.Scale(0.5),
		Sensitivity: DefaultSensitivity,
	}
}

// Handle updates the reducer with event ev
// and reports whether the projection has changed and the view must be redrawn.
func (r *Reducer) Handle(ev Event) bool {
	switch x := ev.(type) {
	case PointerDown:
		r.Pointer = x.Pos
		r.beginDrag(x.Pos)
		return false
	case PointerUp:
		r.endDrag()
		return false
	case PointerMove:
		r.Pointer = x.Pos
		if !r.Drag.Dragging {
			return false
		}
		return r.continueDrag(x.Pos)
	case Wheel:
		return r.zoom(x.Delta)
	case KeyZoom:
		if x.In {
			return r.zoom(keyZoomDelta)
		}
		return r.zoom(-keyZoomDelta)
	}
	return false
}

func (r *Reducer) beginDrag(p Vec2) {
	r.Drag = DragState{Dragging: true, Origin: p.Sub(r.State.PanOffset)}
}

func (r *Reducer) continueDrag(p Vec2) bool {
	old := r.State.PanOffset
	r.State.PanOffset = p.Sub(r.Drag.Origin)
	return r.State.PanOffset != old
}

func (r *Reducer) endDrag() {
	r.Drag = DragState{}
}

func (r *Reducer) zoom(delta float64) bool {
	sensitivity := r.Sensitivity
	if sensitivity == 0 {
		sensitivity = DefaultSensitivity
	}
	old := r.State
	r.State = r.State.ApplyZoomFactor(ZoomFactor(delta, sensitivity), r.Pointer)
	return r.State != old
}
