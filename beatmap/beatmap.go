// Package beatmap parses the osu! beatmap text format into a structured,
// queryable model and serializes it back. Parsing is best-effort: malformed
// lines are skipped and reported as diagnostics instead of aborting.
package beatmap

import (
	"osukit/hitsound"
	"osukit/timing"
)

// General holds the [General] section scalars.
type General struct {
	AudioFilename            string
	AudioLeadIn              int
	PreviewTime              int
	SampleSet                hitsound.SampleSet
	SampleVolume             int
	StackLeniency            float64
	Mode                     int
	LetterboxInBreaks        bool
	SpecialStyle             bool
	WidescreenStoryboard     bool
	EpilepsyWarning          bool
	SamplesMatchPlaybackRate bool
	Countdown                int
	CountdownOffset          int
}

// Game modes.
const (
	ModeOsu = iota
	ModeTaiko
	ModeCatch
	ModeMania
)

// Editor holds the [Editor] section scalars.
type Editor struct {
	Bookmarks       []int
	DistanceSpacing float64
	BeatDivisor     int
	GridSize        int
	TimelineZoom    float64
}

// Metadata holds the [Metadata] section scalars. Version is the difficulty
// name and keys the beatmap inside its set.
type Metadata struct {
	Title         string
	TitleUnicode  string
	Artist        string
	ArtistUnicode string
	Creator       string
	Version       string
	Source        string
	Tags          string
	BeatmapID     int
	BeatmapSetID  int
}

// Difficulty holds the [Difficulty] section scalars.
type Difficulty struct {
	HPDrainRate       float64
	CircleSize        float64
	OverallDifficulty float64
	ApproachRate      float64
	SliderMultiplier  float64
	SliderTickRate    float64
}

// CircleRadius returns the object radius in osu!pixels: 54.4 - 4.48 * CS.
func (d Difficulty) CircleRadius() float64 {
	return 54.4 - 4.48*d.CircleSize
}

// Preempt returns how long (ms) before its start time an object appears.
func (d Difficulty) Preempt() float64 {
	switch {
	case d.ApproachRate < 5:
		return 1200 + 600*(5-d.ApproachRate)/5
	case d.ApproachRate > 5:
		return 1200 - 750*(d.ApproachRate-5)/5
	default:
		return 1200
	}
}

// Window300, Window100, and Window50 return the hit window (ms either side
// of an object's time) for each judgement.
func (d Difficulty) Window300() float64 { return 80 - 6*d.OverallDifficulty }

func (d Difficulty) Window100() float64 { return 140 - 8*d.OverallDifficulty }

func (d Difficulty) Window50() float64 { return 200 - 10*d.OverallDifficulty }

// FadeIn returns how long (ms) an object takes to reach full opacity.
func (d Difficulty) FadeIn() float64 {
	switch {
	case d.ApproachRate < 5:
		return 800 + 400*(5-d.ApproachRate)/5
	case d.ApproachRate > 5:
		return 800 - 500*(d.ApproachRate-5)/5
	default:
		return 800
	}
}

// Beatmap is one parsed difficulty. It owns its timing track and hit
// objects exclusively.
type Beatmap struct {
	FormatVersion int

	General    General
	Editor     Editor
	Metadata   Metadata
	Difficulty Difficulty

	Events []Event
	Colors []Color

	Timing     *timing.Track
	HitObjects []HitObject
}

// SliderDuration returns the play duration in milliseconds of a slider from
// this beatmap, combining the timing track with the base slider multiplier.
// Non-slider objects have duration EndTime - StartTime.
func (b *Beatmap) SliderDuration(h HitObject) float64 {
	if h.Kind != KindSlider {
		return float64(h.EndTime() - h.StartTime)
	}
	return b.Timing.SliderDuration(h.StartTime, h.Slider.Length, h.Slider.Slides, b.Difficulty.SliderMultiplier)
}

// BeatmapSet groups beatmaps that share song metadata, keyed by difficulty
// name. Adding a map with an existing difficulty name overwrites it.
type BeatmapSet struct {
	Title         string
	TitleUnicode  string
	Artist        string
	ArtistUnicode string
	Creator       string
	Source        string
	ID            int

	Maps map[string]*Beatmap
}

// NewSet builds a set from already-parsed beatmaps. Shared metadata comes
// from the first beatmap that has it.
func NewSet(maps ...*Beatmap) *BeatmapSet {
	s := &BeatmapSet{Maps: make(map[string]*Beatmap)}
	for _, b := range maps {
		s.Add(b)
	}
	return s
}

// Add inserts one difficulty, filling any empty shared metadata field from
// the beatmap's own metadata.
func (s *BeatmapSet) Add(b *Beatmap) {
	m := b.Metadata
	fillString(&s.Title, m.Title)
	fillString(&s.TitleUnicode, m.TitleUnicode)
	fillString(&s.Artist, m.Artist)
	fillString(&s.ArtistUnicode, m.ArtistUnicode)
	fillString(&s.Creator, m.Creator)
	fillString(&s.Source, m.Source)
	if s.ID == 0 {
		s.ID = m.BeatmapSetID
	}
	s.Maps[m.Version] = b
}

// Merge combines two independently parsed sets that belong to the same
// logical set. Difficulty maps are unioned with secondary replacing primary
// on a name collision; for scalar metadata the primary's non-empty value
// wins, otherwise the secondary's is used. Neither input is modified.
func Merge(primary, secondary *BeatmapSet) *BeatmapSet {
	out := &BeatmapSet{
		Title:         pickString(primary.Title, secondary.Title),
		TitleUnicode:  pickString(primary.TitleUnicode, secondary.TitleUnicode),
		Artist:        pickString(primary.Artist, secondary.Artist),
		ArtistUnicode: pickString(primary.ArtistUnicode, secondary.ArtistUnicode),
		Creator:       pickString(primary.Creator, secondary.Creator),
		Source:        pickString(primary.Source, secondary.Source),
		ID:            primary.ID,
		Maps:          make(map[string]*Beatmap, len(primary.Maps)+len(secondary.Maps)),
	}
	if out.ID == 0 {
		out.ID = secondary.ID
	}
	for name, b := range primary.Maps {
		out.Maps[name] = b
	}
	for name, b := range secondary.Maps {
		out.Maps[name] = b
	}
	return out
}

func fillString(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

func pickString(primary, secondary string) string {
	if primary != "" {
		return primary
	}
	return secondary
}
