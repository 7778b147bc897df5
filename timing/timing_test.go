package timing

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEffectiveQueries(t *testing.T) {
	track := NewTrack([]Point{
		{Time: 0, Kind: Uninherited, BeatLength: 500, Volume: 70},
		{Time: 1000, Kind: Inherited, Velocity: 2.0, Volume: 40},
	})

	red, ok := track.EffectiveUninherited(1500)
	if !ok {
		t.Fatal("EffectiveUninherited(1500) found nothing")
	}
	if red.Time != 0 || red.BeatLength != 500 {
		t.Errorf("EffectiveUninherited(1500) = %+v, want the 0ms point", red)
	}
	if got := red.BPM(); math.Abs(got-120) > 1e-12 {
		t.Errorf("BPM() = %v, want 120", got)
	}

	active, ok := track.EffectiveActive(1500)
	if !ok {
		t.Fatal("EffectiveActive(1500) found nothing")
	}
	if active.Time != 1000 || active.Velocity != 2.0 {
		t.Errorf("EffectiveActive(1500) = %+v, want the 1000ms point", active)
	}
	if got := track.SliderVelocityAt(1500); got != 2.0 {
		t.Errorf("SliderVelocityAt(1500) = %v, want 2.0", got)
	}
	// Before the inherited point only the tempo section applies.
	if got := track.SliderVelocityAt(500); got != 1.0 {
		t.Errorf("SliderVelocityAt(500) = %v, want 1.0", got)
	}
}

func TestClampToEarliestPoint(t *testing.T) {
	track := NewTrack([]Point{
		{Time: 2000, Kind: Uninherited, BeatLength: 400},
		{Time: 3000, Kind: Inherited, Velocity: 1.5},
	})

	red, ok := track.EffectiveUninherited(0)
	if !ok || red.Time != 2000 {
		t.Errorf("EffectiveUninherited(0) = %+v ok=%v, want clamp to 2000ms point", red, ok)
	}
	active, ok := track.EffectiveActive(0)
	if !ok || active.Time != 2000 {
		t.Errorf("EffectiveActive(0) = %+v ok=%v, want clamp to 2000ms point", active, ok)
	}
}

func TestDuplicateTimeLaterEntryShadows(t *testing.T) {
	track := NewTrack([]Point{
		{Time: 0, Kind: Uninherited, BeatLength: 500},
		{Time: 1000, Kind: Inherited, Velocity: 1.0, Volume: 80},
		{Time: 1000, Kind: Inherited, Velocity: 2.5, Volume: 30},
	})
	active, _ := track.EffectiveActive(1000)
	if active.Velocity != 2.5 || active.Volume != 30 {
		t.Errorf("EffectiveActive(1000) = %+v, want the later duplicate", active)
	}
	// Both duplicates stay in the track for round-trip fidelity.
	if track.Len() != 3 {
		t.Errorf("Len() = %d, want 3", track.Len())
	}
}

func TestOutOfOrderInputIsStableSorted(t *testing.T) {
	track := NewTrack([]Point{
		{Time: 1000, Kind: Inherited, Velocity: 2.0},
		{Time: 0, Kind: Uninherited, BeatLength: 300},
	})
	if !track.WasResorted() {
		t.Error("WasResorted() = false, want true")
	}
	times := []int{track.Points()[0].Time, track.Points()[1].Time}
	if diff := cmp.Diff([]int{0, 1000}, times); diff != "" {
		t.Errorf("sorted times mismatch (-want +got):\n%s", diff)
	}

	sorted := NewTrack([]Point{{Time: 0, Kind: Uninherited, BeatLength: 300}})
	if sorted.WasResorted() {
		t.Error("WasResorted() = true for ordered input")
	}
}

func TestResolutionIsMonotonic(t *testing.T) {
	track := NewTrack([]Point{
		{Time: 0, Kind: Uninherited, BeatLength: 500},
		{Time: 400, Kind: Inherited, Velocity: 1.2},
		{Time: 800, Kind: Uninherited, BeatLength: 250},
		{Time: 1200, Kind: Inherited, Velocity: 0.8},
	})
	prevRed, prevActive := -1, -1
	for ms := -100; ms <= 1500; ms += 50 {
		red, _ := track.EffectiveUninherited(ms)
		active, _ := track.EffectiveActive(ms)
		if red.Time < prevRed {
			t.Fatalf("EffectiveUninherited regressed at t=%d: %d -> %d", ms, prevRed, red.Time)
		}
		if active.Time < prevActive {
			t.Fatalf("EffectiveActive regressed at t=%d: %d -> %d", ms, prevActive, active.Time)
		}
		prevRed, prevActive = red.Time, active.Time
	}
}

func TestSliderDuration(t *testing.T) {
	track := NewTrack([]Point{
		{Time: 0, Kind: Uninherited, BeatLength: 500},
		{Time: 1000, Kind: Inherited, Velocity: 2.0},
	})
	// duration = pixelLength / (100 * base * sv) * beatLength * slides
	got := track.SliderDuration(1500, 300, 2, 1.4)
	want := 300.0 / (100 * 1.4 * 2.0) * 500 * 2
	if got != want {
		t.Errorf("SliderDuration = %v, want %v", got, want)
	}

	// Before the velocity override the multiplier is exactly 1.
	got = track.SliderDuration(0, 300, 1, 1.4)
	want = 300.0 / (100 * 1.4) * 500
	if got != want {
		t.Errorf("SliderDuration = %v, want %v", got, want)
	}
}

func TestEmptyTrack(t *testing.T) {
	track := NewTrack(nil)
	if _, ok := track.EffectiveUninherited(0); ok {
		t.Error("EffectiveUninherited on empty track reported ok")
	}
	if _, ok := track.EffectiveActive(0); ok {
		t.Error("EffectiveActive on empty track reported ok")
	}
	if got := track.SliderVelocityAt(0); got != 1.0 {
		t.Errorf("SliderVelocityAt = %v, want 1.0", got)
	}
}
