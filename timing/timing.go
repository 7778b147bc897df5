// Package timing implements the timing-point track of a beatmap: a flat,
// time-ordered sequence of tempo and velocity records with time-indexed
// resolution queries.
package timing

import (
	"sort"

	"osukit/hitsound"
)

// Kind separates tempo-defining points from velocity overrides.
type Kind uint8

const (
	// Uninherited points define the beat length (tempo) of a section.
	Uninherited Kind = iota
	// Inherited points override slider velocity and sample settings
	// relative to the current tempo. They never redefine the beat length.
	Inherited
)

func (k Kind) String() string {
	if k == Inherited {
		return "inherited"
	}
	return "uninherited"
}

// Point is a single timing record. BeatLength is meaningful only on
// uninherited points, Velocity only on inherited ones.
type Point struct {
	Time int // milliseconds
	Kind Kind

	BeatLength float64 // milliseconds per beat
	Velocity   float64 // slider-velocity multiplier

	Meter            int
	SampleSet        hitsound.SampleSet
	SampleIndex      int
	Volume           int
	Kiai             bool
	OmitFirstBarline bool
}

// BPM returns the tempo an uninherited point defines.
func (p Point) BPM() float64 {
	return 60_000 / p.BeatLength
}

// Track is an ordered collection of timing points. All queries assume the
// sequence is non-decreasing in time; NewTrack restores that invariant once,
// so a Track is read-only afterwards and safe to share.
type Track struct {
	points   []Point
	resorted bool
}

// NewTrack builds a track from points in file order. Out-of-order input is
// stable-sorted by time, preserving the rule that among duplicate-time
// points the later one in input order shadows the earlier for queries.
func NewTrack(points []Point) *Track {
	own := make([]Point, len(points))
	copy(own, points)
	sorted := sort.SliceIsSorted(own, func(i, j int) bool { return own[i].Time < own[j].Time })
	if !sorted {
		sort.SliceStable(own, func(i, j int) bool { return own[i].Time < own[j].Time })
	}
	return &Track{points: own, resorted: !sorted}
}

// Len returns the number of points in the track.
func (t *Track) Len() int { return len(t.points) }

// Points returns the full time-ordered sequence, duplicates included.
func (t *Track) Points() []Point { return t.points }

// WasResorted reports whether the input was not already time-ordered.
func (t *Track) WasResorted() bool { return t.resorted }

// EffectiveUninherited returns the uninherited point with the greatest
// time <= ms, or the earliest uninherited point when none precedes ms.
// ok is false only when the track has no uninherited point at all.
func (t *Track) EffectiveUninherited(ms int) (Point, bool) {
	for i := t.lastAtOrBefore(ms); i >= 0; i-- {
		if t.points[i].Kind == Uninherited {
			return t.points[i], true
		}
	}
	// Clamp to the earliest tempo section.
	for _, p := range t.points {
		if p.Kind == Uninherited {
			return p, true
		}
	}
	return Point{}, false
}

// EffectiveActive returns the point of either kind with the greatest
// time <= ms, or the earliest point when none precedes ms. This is the point
// that defines the current sample set, volume, kiai flag, and slider
// velocity.
func (t *Track) EffectiveActive(ms int) (Point, bool) {
	if len(t.points) == 0 {
		return Point{}, false
	}
	if i := t.lastAtOrBefore(ms); i >= 0 {
		return t.points[i], true
	}
	return t.points[0], true
}

// lastAtOrBefore returns the index of the last point with Time <= ms,
// or -1. Duplicate-time runs resolve to their final entry.
func (t *Track) lastAtOrBefore(ms int) int {
	return sort.Search(len(t.points), func(i int) bool { return t.points[i].Time > ms }) - 1
}

// SliderVelocityAt returns the velocity multiplier active at ms: the
// multiplier of the active point when it is inherited, exactly 1.0 when it
// is uninherited or the track is empty.
func (t *Track) SliderVelocityAt(ms int) float64 {
	p, ok := t.EffectiveActive(ms)
	if !ok || p.Kind != Inherited {
		return 1.0
	}
	return p.Velocity
}

// BeatLengthAt returns the beat length in milliseconds active at ms, or 0
// when the track has no uninherited point.
func (t *Track) BeatLengthAt(ms int) float64 {
	p, ok := t.EffectiveUninherited(ms)
	if !ok {
		return 0
	}
	return p.BeatLength
}

// SliderDuration computes the play duration in milliseconds of a slider
// starting at startTime with the given authored pixel length, slide count,
// and the beatmap's base slider multiplier:
//
//	duration = pixelLength / (100 * base * sv) * beatLength * slides
func (t *Track) SliderDuration(startTime int, pixelLength float64, slides int, base float64) float64 {
	beatLength := t.BeatLengthAt(startTime)
	sv := t.SliderVelocityAt(startTime)
	return pixelLength / (100 * base * sv) * beatLength * float64(slides)
}
