package beatmap

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeRoundTrip(t *testing.T) {
	b1, _, err := DecodeString(sampleMap)
	if err != nil {
		t.Fatal(err)
	}

	text := EncodeString(b1)
	b2, diags, err := DecodeString(text)
	if err != nil {
		t.Fatalf("re-decode failed: %v\n%s", err, text)
	}
	if len(diags) != 0 {
		t.Fatalf("re-decode diagnostics: %v\n%s", diags, text)
	}

	if diff := cmp.Diff(b1.General, b2.General); diff != "" {
		t.Errorf("General mismatch (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(b1.Metadata, b2.Metadata); diff != "" {
		t.Errorf("Metadata mismatch (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(b1.Difficulty, b2.Difficulty); diff != "" {
		t.Errorf("Difficulty mismatch (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(b1.Colors, b2.Colors); diff != "" {
		t.Errorf("Colors mismatch (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(b1.Timing.Points(), b2.Timing.Points()); diff != "" {
		t.Errorf("timing points mismatch (-first +second):\n%s", diff)
	}

	if len(b1.HitObjects) != len(b2.HitObjects) {
		t.Fatalf("hit objects: %d vs %d", len(b1.HitObjects), len(b2.HitObjects))
	}
	for i := range b1.HitObjects {
		h1, h2 := b1.HitObjects[i], b2.HitObjects[i]
		if h1.Kind != h2.Kind || h1.StartTime != h2.StartTime || h1.Position != h2.Position {
			t.Errorf("object %d: %+v vs %+v", i, h1, h2)
		}
		if h1.Kind != KindSlider {
			continue
		}
		if h1.Slider.Slides != h2.Slider.Slides || h1.Slider.Length != h2.Slider.Length {
			t.Errorf("slider %d payload: %+v vs %+v", i, h1.Slider, h2.Slider)
		}
		if diff := cmp.Diff(h1.Slider.Curve.Anchors(), h2.Slider.Curve.Anchors()); diff != "" {
			t.Errorf("slider %d anchors mismatch (-first +second):\n%s", i, diff)
		}
	}

	// Encoding the re-decoded model must reproduce the same text.
	if text2 := EncodeString(b2); text2 != text {
		t.Errorf("encode is not idempotent:\nfirst:\n%s\nsecond:\n%s", text, text2)
	}
}

func TestEncodeEarlyVersionRoundTrip(t *testing.T) {
	input := "osu file format v4\n\n" +
		"[General]\nAudioFilename: old.mp3\nPreviewTime: 5000\n\n" +
		"[TimingPoints]\n0,500,4,1,0,60,1,0\n\n" +
		"[HitObjects]\n100,100,1000,1,0,0:0:0:0:\n"

	b1, _, err := DecodeString(input)
	if err != nil {
		t.Fatal(err)
	}
	if b1.HitObjects[0].StartTime != 1024 {
		t.Fatalf("decoded start time = %d, want 1024", b1.HitObjects[0].StartTime)
	}

	text := EncodeString(b1)
	// Written times carry the original values, not the adjusted ones.
	if !strings.Contains(text, "\n0,500,4,1,0,60,1,0\n") {
		t.Errorf("output timing point shifted:\n%s", text)
	}
	if !strings.Contains(text, ",1000,") {
		t.Errorf("output hit object time shifted:\n%s", text)
	}

	b2, diags, err := DecodeString(text)
	if err != nil {
		t.Fatalf("re-decode failed: %v\n%s", err, text)
	}
	if len(diags) != 0 {
		t.Fatalf("re-decode diagnostics: %v\n%s", diags, text)
	}
	if got := b2.HitObjects[0].StartTime; got != b1.HitObjects[0].StartTime {
		t.Errorf("round-trip start time = %d, want %d", got, b1.HitObjects[0].StartTime)
	}
	if got := b2.Timing.Points()[0].Time; got != b1.Timing.Points()[0].Time {
		t.Errorf("round-trip timing point time = %d, want %d", got, b1.Timing.Points()[0].Time)
	}
	if b2.General.PreviewTime != b1.General.PreviewTime {
		t.Errorf("round-trip preview time = %d, want %d", b2.General.PreviewTime, b1.General.PreviewTime)
	}
}

func TestEncodeInheritedTimingPoint(t *testing.T) {
	b, _, err := DecodeString(sampleMap)
	if err != nil {
		t.Fatal(err)
	}
	text := EncodeString(b)
	// Velocity 2.0 encodes back to the raw beat length -50.
	want := "12000,-50,4,2,0,60,0,1"
	if !strings.Contains(text, "\n"+want+"\n") {
		t.Errorf("output missing %q:\n%s", want, text)
	}
}
