package beatmap

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"osukit/curve"
	"osukit/hitsound"
	"osukit/timing"
)

// Encode serializes a beatmap back into the .osu text format. The output
// parses back to the same model; duplicate-time timing points and opaque
// event lines are written exactly as they were retained.
func Encode(w io.Writer, b *Beatmap) error {
	bw := bufio.NewWriter(w)

	// Stored times for early-version maps already include the 24ms
	// adjustment; writing them under the original header means the
	// adjustment must come back out, or re-decoding would apply it twice.
	off := 0
	if b.FormatVersion < 5 {
		off = earlyVersionTimingOffset
	}

	fmt.Fprintf(bw, "osu file format v%d\n\n", b.FormatVersion)

	preview := b.General.PreviewTime
	if preview != -1 {
		preview -= off
	}

	fmt.Fprintln(bw, "[General]")
	fmt.Fprintf(bw, "AudioFilename: %s\n", b.General.AudioFilename)
	fmt.Fprintf(bw, "AudioLeadIn: %d\n", b.General.AudioLeadIn)
	fmt.Fprintf(bw, "PreviewTime: %d\n", preview)
	fmt.Fprintf(bw, "Countdown: %d\n", b.General.Countdown)
	fmt.Fprintf(bw, "SampleSet: %s\n", sampleSetName(b.General.SampleSet))
	fmt.Fprintf(bw, "StackLeniency: %s\n", num(b.General.StackLeniency))
	fmt.Fprintf(bw, "Mode: %d\n", b.General.Mode)
	fmt.Fprintf(bw, "LetterboxInBreaks: %s\n", bit(b.General.LetterboxInBreaks))
	fmt.Fprintf(bw, "WidescreenStoryboard: %s\n", bit(b.General.WidescreenStoryboard))
	if b.General.EpilepsyWarning {
		fmt.Fprintln(bw, "EpilepsyWarning: 1")
	}
	if b.General.SpecialStyle {
		fmt.Fprintln(bw, "SpecialStyle: 1")
	}
	if b.General.SamplesMatchPlaybackRate {
		fmt.Fprintln(bw, "SamplesMatchPlaybackRate: 1")
	}
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "[Editor]")
	if len(b.Editor.Bookmarks) > 0 {
		marks := make([]string, len(b.Editor.Bookmarks))
		for i, m := range b.Editor.Bookmarks {
			marks[i] = strconv.Itoa(m)
		}
		fmt.Fprintf(bw, "Bookmarks: %s\n", strings.Join(marks, ","))
	}
	fmt.Fprintf(bw, "DistanceSpacing: %s\n", num(b.Editor.DistanceSpacing))
	fmt.Fprintf(bw, "BeatDivisor: %d\n", b.Editor.BeatDivisor)
	fmt.Fprintf(bw, "GridSize: %d\n", b.Editor.GridSize)
	fmt.Fprintf(bw, "TimelineZoom: %s\n", num(b.Editor.TimelineZoom))
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "[Metadata]")
	fmt.Fprintf(bw, "Title:%s\n", b.Metadata.Title)
	fmt.Fprintf(bw, "TitleUnicode:%s\n", b.Metadata.TitleUnicode)
	fmt.Fprintf(bw, "Artist:%s\n", b.Metadata.Artist)
	fmt.Fprintf(bw, "ArtistUnicode:%s\n", b.Metadata.ArtistUnicode)
	fmt.Fprintf(bw, "Creator:%s\n", b.Metadata.Creator)
	fmt.Fprintf(bw, "Version:%s\n", b.Metadata.Version)
	fmt.Fprintf(bw, "Source:%s\n", b.Metadata.Source)
	fmt.Fprintf(bw, "Tags:%s\n", b.Metadata.Tags)
	fmt.Fprintf(bw, "BeatmapID:%d\n", b.Metadata.BeatmapID)
	fmt.Fprintf(bw, "BeatmapSetID:%d\n", b.Metadata.BeatmapSetID)
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "[Difficulty]")
	fmt.Fprintf(bw, "HPDrainRate:%s\n", num(b.Difficulty.HPDrainRate))
	fmt.Fprintf(bw, "CircleSize:%s\n", num(b.Difficulty.CircleSize))
	fmt.Fprintf(bw, "OverallDifficulty:%s\n", num(b.Difficulty.OverallDifficulty))
	fmt.Fprintf(bw, "ApproachRate:%s\n", num(b.Difficulty.ApproachRate))
	fmt.Fprintf(bw, "SliderMultiplier:%s\n", num(b.Difficulty.SliderMultiplier))
	fmt.Fprintf(bw, "SliderTickRate:%s\n", num(b.Difficulty.SliderTickRate))
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "[Events]")
	for _, ev := range b.Events {
		fmt.Fprintln(bw, ev.Raw)
	}
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "[TimingPoints]")
	if b.Timing != nil {
		for _, p := range b.Timing.Points() {
			fmt.Fprintln(bw, timingPointLine(p, off))
		}
	}
	fmt.Fprintln(bw)

	if len(b.Colors) > 0 {
		fmt.Fprintln(bw, "[Colours]")
		for i, c := range b.Colors {
			fmt.Fprintf(bw, "Combo%d : %d,%d,%d\n", i+1, c.R, c.G, c.B)
		}
		fmt.Fprintln(bw)
	}

	fmt.Fprintln(bw, "[HitObjects]")
	for _, h := range b.HitObjects {
		fmt.Fprintln(bw, hitObjectLine(h, off))
	}

	return bw.Flush()
}

// EncodeString serializes a beatmap into a string.
func EncodeString(b *Beatmap) string {
	var sb strings.Builder
	Encode(&sb, b) // strings.Builder never errors
	return sb.String()
}

func timingPointLine(p timing.Point, off int) string {
	raw := p.BeatLength
	uninherited := 1
	if p.Kind == timing.Inherited {
		raw = -100 / p.Velocity
		uninherited = 0
	}
	effects := 0
	if p.Kiai {
		effects |= 1
	}
	if p.OmitFirstBarline {
		effects |= 8
	}
	return fmt.Sprintf("%d,%s,%d,%d,%d,%d,%d,%d",
		p.Time-off, num(raw), p.Meter, int(p.SampleSet), p.SampleIndex, p.Volume, uninherited, effects)
}

func hitObjectLine(h HitObject, off int) string {
	flags := h.ComboSkip << comboSkipShift
	if h.NewCombo {
		flags |= typeNewCombo
	}
	base := fmt.Sprintf("%s,%s,%d", num(h.Position.X), num(h.Position.Y), h.StartTime-off)

	switch h.Kind {
	case KindSlider:
		flags |= typeSlider
		s := h.Slider
		anchors := s.Curve.Anchors()
		points := make([]string, 0, len(anchors)-1)
		for _, a := range anchors[1:] {
			points = append(points, fmt.Sprintf("%s:%s", num(a.X), num(a.Y)))
		}
		edgeSounds := make([]string, s.Slides+1)
		edgeSets := make([]string, s.Slides+1)
		for i := range edgeSounds {
			if i < len(s.EdgeSounds) {
				edgeSounds[i] = strconv.Itoa(int(s.EdgeSounds[i]))
			} else {
				edgeSounds[i] = "0"
			}
			if i < len(s.EdgeSets) {
				edgeSets[i] = fmt.Sprintf("%d:%d", int(s.EdgeSets[i].NormalSet), int(s.EdgeSets[i].AdditionSet))
			} else {
				edgeSets[i] = "0:0"
			}
		}
		return fmt.Sprintf("%s,%d,%d,%s|%s,%d,%s,%s,%s,%s",
			base, flags, int(h.Additions),
			curveLetter(s.Curve.Kind()), strings.Join(points, "|"),
			s.Slides, num(s.Length),
			strings.Join(edgeSounds, "|"), strings.Join(edgeSets, "|"),
			sampleString(h.Sample))

	case KindSpinner:
		flags |= typeSpinner
		return fmt.Sprintf("%s,%d,%d,%d,%s",
			base, flags, int(h.Additions), h.Spinner.EndTime-off, sampleString(h.Sample))

	case KindHold:
		flags |= typeHold
		return fmt.Sprintf("%s,%d,%d,%d:%s",
			base, flags, int(h.Additions), h.Hold.EndTime-off, sampleString(h.Sample))

	default:
		flags |= typeCircle
		return fmt.Sprintf("%s,%d,%d,%s",
			base, flags, int(h.Additions), sampleString(h.Sample))
	}
}

func sampleString(s hitsound.Sample) string {
	return fmt.Sprintf("%d:%d:%d:%d:%s",
		int(s.NormalSet), int(s.AdditionSet), s.Index, s.Volume, s.Filename)
}

func curveLetter(k curve.Kind) string {
	switch k {
	case curve.Linear:
		return "L"
	case curve.Catmull:
		return "C"
	case curve.PerfectCircle:
		return "P"
	default:
		return "B"
	}
}

func sampleSetName(s hitsound.SampleSet) string {
	switch s {
	case hitsound.SampleNormal:
		return "Normal"
	case hitsound.SampleSoft:
		return "Soft"
	case hitsound.SampleDrum:
		return "Drum"
	default:
		return "None"
	}
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func bit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
