package beatmap

import (
	"osukit/curve"
	"osukit/hitsound"
)

// ObjectKind discriminates the hit-object union.
type ObjectKind uint8

const (
	KindCircle ObjectKind = iota
	KindSlider
	KindSpinner
	KindHold
)

func (k ObjectKind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindSlider:
		return "slider"
	case KindSpinner:
		return "spinner"
	case KindHold:
		return "hold"
	}
	return "unknown"
}

// Type-field bits of a hit-object record.
const (
	typeCircle   = 1 << 0
	typeSlider   = 1 << 1
	typeNewCombo = 1 << 2
	typeSpinner  = 1 << 3
	typeHold     = 1 << 7

	comboSkipShift = 4
	comboSkipMask  = 0b111
)

// HitObject is a single playable object. The common fields are stored once;
// the variant payload for sliders, spinners, and holds hangs off the matching
// pointer, which is nil for every other kind. Objects are created during
// parsing and never mutated afterwards.
type HitObject struct {
	StartTime int // milliseconds
	Position  curve.Vector2
	Kind      ObjectKind

	NewCombo  bool
	ComboSkip int // extra combo colors skipped when NewCombo is set

	Additions hitsound.Additions
	Sample    hitsound.Sample

	Slider  *SliderData
	Spinner *SpinnerData
	Hold    *HoldData
}

// SliderData is the slider variant payload.
type SliderData struct {
	Curve *curve.Curve

	// Slides counts traversals of the path: 1 is head to tail, each repeat
	// adds another.
	Slides int

	// Length is the authored pixel length, which may disagree with the
	// geometric length of the flattened curve.
	Length float64

	EdgeSounds []hitsound.Additions
	EdgeSets   []hitsound.EdgeSets
}

// SpinnerData is the spinner variant payload.
type SpinnerData struct {
	EndTime int
}

// HoldData is the mania hold-note variant payload.
type HoldData struct {
	EndTime int
}

// EndTime returns the time at which the object is over. For sliders this
// needs the timing track, so it lives on Beatmap (see SliderDuration);
// circle end time is its start time.
func (h HitObject) EndTime() int {
	switch h.Kind {
	case KindSpinner:
		return h.Spinner.EndTime
	case KindHold:
		return h.Hold.EndTime
	default:
		return h.StartTime
	}
}
