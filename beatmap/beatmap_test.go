package beatmap

import (
	"math"
	"testing"
)

func TestDifficultyDerivedValues(t *testing.T) {
	d := Difficulty{CircleSize: 4, ApproachRate: 9, OverallDifficulty: 7}

	if got := d.CircleRadius(); math.Abs(got-36.48) > 1e-9 {
		t.Errorf("CircleRadius = %v, want 36.48", got)
	}
	if got := d.Preempt(); got != 600 {
		t.Errorf("Preempt = %v, want 600", got)
	}
	if got := d.FadeIn(); got != 400 {
		t.Errorf("FadeIn = %v, want 400", got)
	}
	if got := d.Window300(); got != 38 {
		t.Errorf("Window300 = %v, want 38", got)
	}
	if got := d.Window100(); got != 84 {
		t.Errorf("Window100 = %v, want 84", got)
	}
	if got := d.Window50(); got != 130 {
		t.Errorf("Window50 = %v, want 130", got)
	}
}

func TestPreemptAtAR5(t *testing.T) {
	d := Difficulty{ApproachRate: 5}
	if got := d.Preempt(); got != 1200 {
		t.Errorf("Preempt = %v, want 1200", got)
	}
	if got := d.FadeIn(); got != 800 {
		t.Errorf("FadeIn = %v, want 800", got)
	}
}

func TestPreemptLowAR(t *testing.T) {
	d := Difficulty{ApproachRate: 0}
	if got := d.Preempt(); got != 1800 {
		t.Errorf("Preempt = %v, want 1800", got)
	}
}
