package beatmap

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"osukit/curve"
	"osukit/hitsound"
	"osukit/timing"
)

// Maps authored before format v5 store their times 24ms early.
const earlyVersionTimingOffset = 24

// Compiled once before first use; read-only afterwards, so concurrent parses
// share them without locking.
var (
	versionRx = regexp.MustCompile(`^osu file format v(\d+)$`)
	sectionRx = regexp.MustCompile(`^\[([A-Za-z]+)\]$`)
)

// DecodeFile parses the .osu file at path.
func DecodeFile(path string) (*Beatmap, []Diagnostic, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return Decode(f)
}

// DecodeString parses beatmap text held in a string.
func DecodeString(s string) (*Beatmap, []Diagnostic, error) {
	return Decode(strings.NewReader(s))
}

// Decode parses the osu! beatmap text format. It returns the best-effort
// model together with the diagnostics collected for every line it had to
// skip or repair. The error is non-nil only for input that is not
// recognizable as this format at all: empty input, or a missing
// "osu file format vN" directive.
func Decode(r io.Reader) (*Beatmap, []Diagnostic, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	d := &decoder{b: &Beatmap{
		General:    General{SampleSet: hitsound.SampleNormal, SampleVolume: 100, PreviewTime: -1},
		Editor:     Editor{BeatDivisor: 4, GridSize: 4},
		Difficulty: Difficulty{SliderMultiplier: 1, SliderTickRate: 1},
	}}

	// The first non-blank, non-comment line must be the format directive.
	header := ""
	for sc.Scan() {
		d.line++
		line := cleanLine(sc.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		header = line
		break
	}
	if err := sc.Err(); err != nil {
		return nil, nil, err
	}
	if header == "" {
		return nil, nil, ErrEmptyInput
	}
	m := versionRx.FindStringSubmatch(header)
	if m == nil {
		return nil, nil, fmt.Errorf("%w: got %q", ErrMissingHeader, header)
	}
	d.b.FormatVersion, _ = strconv.Atoi(m[1])
	if d.b.FormatVersion < 5 {
		d.offset = earlyVersionTimingOffset
	}

	for sc.Scan() {
		d.line++
		line := cleanLine(sc.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if m := sectionRx.FindStringSubmatch(line); m != nil {
			d.section = m[1]
			continue
		}
		d.dispatch(line)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, err
	}

	d.b.Timing = timing.NewTrack(d.points)
	if d.b.Timing.WasResorted() {
		d.diags = append(d.diags, Diagnostic{
			Section: "TimingPoints",
			Message: "timing points were not in time order; stable-sorted before use",
		})
	}
	if !d.seenAR {
		d.b.Difficulty.ApproachRate = d.b.Difficulty.OverallDifficulty
	}
	return d.b, d.diags, nil
}

type decoder struct {
	b       *Beatmap
	diags   []Diagnostic
	points  []timing.Point
	section string
	line    int
	offset  int
	seenAR  bool
}

func (d *decoder) warnf(format string, args ...any) {
	d.diags = append(d.diags, Diagnostic{
		Line:    d.line,
		Section: d.section,
		Message: fmt.Sprintf(format, args...),
	})
}

// dispatch routes one content line to its section's parser. Scalar sections
// use a static key→handler table; list sections parse positional records.
func (d *decoder) dispatch(line string) {
	switch d.section {
	case "General":
		d.keyValue(line, generalKeys)
	case "Editor":
		d.keyValue(line, editorKeys)
	case "Metadata":
		d.keyValue(line, metadataKeys)
	case "Difficulty":
		d.keyValue(line, difficultyKeys)
	case "TimingPoints":
		d.timingPoint(line)
	case "Colours":
		d.colour(line)
	case "Events":
		d.event(line)
	case "HitObjects":
		d.hitObject(line)
	default:
		// Unknown sections are tolerated and ignored.
	}
}

// keyValue parses a "key : value" line against the section's handler table.
// Unknown keys are ignored so newer format revisions still parse.
func (d *decoder) keyValue(line string, table map[string]keyHandler) {
	k, v, ok := strings.Cut(line, ":")
	if !ok {
		d.warnf("not a key:value pair: %q", line)
		return
	}
	k = strings.TrimSpace(k)
	v = strings.TrimSpace(v)
	h, ok := table[strings.ToLower(k)]
	if !ok {
		return
	}
	if err := h(d, v); err != nil {
		d.warnf("key %s: %v", k, err)
	}
}

type keyHandler func(d *decoder, v string) error

var generalKeys = map[string]keyHandler{
	"audiofilename": func(d *decoder, v string) error {
		d.b.General.AudioFilename = standardisePath(v)
		return nil
	},
	"audioleadin": func(d *decoder, v string) error {
		return setInt(&d.b.General.AudioLeadIn, v)
	},
	"previewtime": func(d *decoder, v string) error {
		if err := setInt(&d.b.General.PreviewTime, v); err != nil {
			return err
		}
		if d.b.General.PreviewTime != -1 {
			d.b.General.PreviewTime += d.offset
		}
		return nil
	},
	"sampleset": func(d *decoder, v string) error {
		set, err := parseSampleSetName(v)
		if err != nil {
			return err
		}
		d.b.General.SampleSet = set
		return nil
	},
	"samplevolume": func(d *decoder, v string) error {
		return setInt(&d.b.General.SampleVolume, v)
	},
	"stackleniency": func(d *decoder, v string) error {
		return setFloat(&d.b.General.StackLeniency, v)
	},
	"mode": func(d *decoder, v string) error {
		if err := setInt(&d.b.General.Mode, v); err != nil {
			return err
		}
		if d.b.General.Mode < ModeOsu || d.b.General.Mode > ModeMania {
			mode := d.b.General.Mode
			d.b.General.Mode = ModeOsu
			return fmt.Errorf("out of range: %d", mode)
		}
		return nil
	},
	"letterboxinbreaks": func(d *decoder, v string) error {
		d.b.General.LetterboxInBreaks = parseBool(v)
		return nil
	},
	"specialstyle": func(d *decoder, v string) error {
		d.b.General.SpecialStyle = parseBool(v)
		return nil
	},
	"widescreenstoryboard": func(d *decoder, v string) error {
		d.b.General.WidescreenStoryboard = parseBool(v)
		return nil
	},
	"epilepsywarning": func(d *decoder, v string) error {
		d.b.General.EpilepsyWarning = parseBool(v)
		return nil
	},
	"samplesmatchplaybackrate": func(d *decoder, v string) error {
		d.b.General.SamplesMatchPlaybackRate = parseBool(v)
		return nil
	},
	"countdown": func(d *decoder, v string) error {
		return setInt(&d.b.General.Countdown, v)
	},
	"countdownoffset": func(d *decoder, v string) error {
		return setInt(&d.b.General.CountdownOffset, v)
	},
}

var editorKeys = map[string]keyHandler{
	"bookmarks": func(d *decoder, v string) error {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			n, err := strconv.Atoi(part)
			if err != nil {
				return fmt.Errorf("bookmark %q: %w", part, err)
			}
			d.b.Editor.Bookmarks = append(d.b.Editor.Bookmarks, n)
		}
		return nil
	},
	"distancespacing": func(d *decoder, v string) error {
		return setFloat(&d.b.Editor.DistanceSpacing, v)
	},
	"beatdivisor": func(d *decoder, v string) error {
		if err := setInt(&d.b.Editor.BeatDivisor, v); err != nil {
			return err
		}
		d.b.Editor.BeatDivisor = clampInt(d.b.Editor.BeatDivisor, 1, 16)
		return nil
	},
	"gridsize": func(d *decoder, v string) error {
		return setInt(&d.b.Editor.GridSize, v)
	},
	"timelinezoom": func(d *decoder, v string) error {
		if err := setFloat(&d.b.Editor.TimelineZoom, v); err != nil {
			return err
		}
		d.b.Editor.TimelineZoom = math.Max(0, d.b.Editor.TimelineZoom)
		return nil
	},
}

var metadataKeys = map[string]keyHandler{
	"title":         func(d *decoder, v string) error { d.b.Metadata.Title = v; return nil },
	"titleunicode":  func(d *decoder, v string) error { d.b.Metadata.TitleUnicode = v; return nil },
	"artist":        func(d *decoder, v string) error { d.b.Metadata.Artist = v; return nil },
	"artistunicode": func(d *decoder, v string) error { d.b.Metadata.ArtistUnicode = v; return nil },
	"creator":       func(d *decoder, v string) error { d.b.Metadata.Creator = v; return nil },
	"version":       func(d *decoder, v string) error { d.b.Metadata.Version = v; return nil },
	"source":        func(d *decoder, v string) error { d.b.Metadata.Source = v; return nil },
	"tags":          func(d *decoder, v string) error { d.b.Metadata.Tags = v; return nil },
	"beatmapid":     func(d *decoder, v string) error { return setInt(&d.b.Metadata.BeatmapID, v) },
	"beatmapsetid":  func(d *decoder, v string) error { return setInt(&d.b.Metadata.BeatmapSetID, v) },
}

var difficultyKeys = map[string]keyHandler{
	"hpdrainrate": func(d *decoder, v string) error {
		return setFloat(&d.b.Difficulty.HPDrainRate, v)
	},
	"circlesize": func(d *decoder, v string) error {
		return setFloat(&d.b.Difficulty.CircleSize, v)
	},
	"overalldifficulty": func(d *decoder, v string) error {
		return setFloat(&d.b.Difficulty.OverallDifficulty, v)
	},
	"approachrate": func(d *decoder, v string) error {
		d.seenAR = true
		return setFloat(&d.b.Difficulty.ApproachRate, v)
	},
	"slidermultiplier": func(d *decoder, v string) error {
		return setFloat(&d.b.Difficulty.SliderMultiplier, v)
	},
	"slidertickrate": func(d *decoder, v string) error {
		return setFloat(&d.b.Difficulty.SliderTickRate, v)
	},
}

// timingPoint parses one positional record of the [TimingPoints] section:
//
//	time,beatLength,meter,sampleSet,sampleIndex,volume,uninherited,effects
//
// Only the first two fields are required. Any present field that fails to
// parse drops the whole record.
func (d *decoder) timingPoint(line string) {
	parts := splitCSV(line)
	if len(parts) < 2 {
		d.warnf("timing point needs at least time and beat length: %q", line)
		return
	}
	p, err := d.parseTimingPoint(parts)
	if err != nil {
		d.warnf("timing point dropped: %v", err)
		return
	}
	d.points = append(d.points, p)
}

func (d *decoder) parseTimingPoint(parts []string) (timing.Point, error) {
	var p timing.Point

	t, err := parseFloat(parts[0])
	if err != nil {
		return p, fmt.Errorf("time: %w", err)
	}
	p.Time = int(t) + d.offset

	raw, err := parseFloat(parts[1])
	if err != nil {
		return p, fmt.Errorf("beat length: %w", err)
	}

	p.Meter = 4
	if len(parts) >= 3 {
		if p.Meter, err = parseInt(parts[2]); err != nil {
			return p, fmt.Errorf("meter: %w", err)
		}
		if p.Meter == 0 {
			p.Meter = 4
		}
	}
	if len(parts) >= 4 {
		id, err := parseInt(parts[3])
		if err != nil {
			return p, fmt.Errorf("sample set: %w", err)
		}
		set, ok := hitsound.ParseSampleSet(id)
		if !ok {
			return p, fmt.Errorf("sample set out of range: %d", id)
		}
		p.SampleSet = set
	}
	if len(parts) >= 5 {
		if p.SampleIndex, err = parseInt(parts[4]); err != nil {
			return p, fmt.Errorf("sample index: %w", err)
		}
	}
	p.Volume = 100
	if len(parts) >= 6 {
		if p.Volume, err = parseInt(parts[5]); err != nil {
			return p, fmt.Errorf("volume: %w", err)
		}
	}
	uninherited := true
	if len(parts) >= 7 {
		uninherited = parseBool(parts[6])
	}
	if len(parts) >= 8 {
		effects, err := parseInt(parts[7])
		if err != nil {
			return p, fmt.Errorf("effects: %w", err)
		}
		p.Kiai = effects&1 != 0
		p.OmitFirstBarline = effects&8 != 0
	}

	if uninherited {
		if math.IsNaN(raw) || math.IsInf(raw, 0) {
			return p, fmt.Errorf("beat length not finite: %v", raw)
		}
		p.Kind = timing.Uninherited
		p.BeatLength = raw
	} else {
		// The format encodes the velocity multiplier as a negative beat
		// length: -100 / raw. A non-negative raw field here is malformed.
		if !(raw < 0) {
			return p, fmt.Errorf("inherited point with non-negative beat length %v", raw)
		}
		p.Kind = timing.Inherited
		p.Velocity = -100 / raw
	}
	return p, nil
}

// colour parses one "ComboN : r,g,b" line. Keys other than combo colors
// (SliderBorder and friends) are ignored.
func (d *decoder) colour(line string) {
	k, v, ok := strings.Cut(line, ":")
	if !ok {
		d.warnf("not a key:value pair: %q", line)
		return
	}
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(k)), "combo") {
		return
	}
	parts := splitCSV(v)
	if len(parts) < 3 {
		d.warnf("colour needs r,g,b: %q", line)
		return
	}
	var rgb [3]uint8
	for i := 0; i < 3; i++ {
		n, err := parseInt(parts[i])
		if err != nil || n < 0 || n > 255 {
			d.warnf("colour channel %q out of range", parts[i])
			return
		}
		rgb[i] = uint8(n)
	}
	d.b.Colors = append(d.b.Colors, Color{R: rgb[0], G: rgb[1], B: rgb[2]})
}

// event parses one [Events] record. Backgrounds, videos, and breaks get
// typed fields; every event keeps its raw line, and unrecognized kinds are
// carried through untouched.
func (d *decoder) event(line string) {
	parts := splitCSV(line)
	ev := Event{Kind: EventRaw, Raw: line}
	switch strings.ToLower(parts[0]) {
	case "0", "background":
		if len(parts) >= 3 {
			ev.Kind = EventBackground
			ev.Filename = cleanFilename(parts[2])
		} else {
			d.warnf("background event needs a filename: %q", line)
		}
	case "1", "video":
		if len(parts) >= 3 {
			ev.Kind = EventVideo
			ev.Filename = cleanFilename(parts[2])
			if t, err := parseInt(parts[1]); err == nil {
				ev.StartTime = t + d.offset
			}
		} else {
			d.warnf("video event needs a filename: %q", line)
		}
	case "2", "break":
		if len(parts) >= 3 {
			start, err1 := parseFloat(parts[1])
			end, err2 := parseFloat(parts[2])
			if err1 != nil || err2 != nil {
				d.warnf("break event with non-numeric times: %q", line)
				break
			}
			ev.Kind = EventBreak
			ev.StartTime = int(start) + d.offset
			ev.EndTime = int(end) + d.offset
			if ev.EndTime < ev.StartTime {
				ev.EndTime = ev.StartTime
			}
		} else {
			d.warnf("break event needs start and end: %q", line)
		}
	}
	d.b.Events = append(d.b.Events, ev)
}

// hitObject parses one positional record of the [HitObjects] section:
//
//	x,y,time,type,hitSound,objectParams...,hitSample
func (d *decoder) hitObject(line string) {
	// Keep trailing colon-delimited parameters grouped in one field.
	parts := splitCSVPreserveTail(line, 11)
	if len(parts) < 5 {
		d.warnf("hit object needs x,y,time,type,hitSound: %q", line)
		return
	}
	var nums [5]int
	for i := 0; i < 5; i++ {
		n, err := parseInt(parts[i])
		if err != nil {
			d.warnf("hit object dropped, field %d: %v", i, err)
			return
		}
		nums[i] = n
	}
	flags := nums[3]
	h := HitObject{
		StartTime: nums[2] + d.offset,
		Position:  curve.Vec(float64(nums[0]), float64(nums[1])),
		NewCombo:  flags&typeNewCombo != 0,
		ComboSkip: (flags >> comboSkipShift) & comboSkipMask,
		Additions: hitsound.Additions(nums[4]),
	}

	switch {
	case flags&typeHold != 0:
		h.Kind = KindHold
		h.Hold = &HoldData{EndTime: h.StartTime}
		if len(parts) >= 6 {
			end, sample := parseEndTimeAndSample(parts[5])
			h.Hold.EndTime = end + d.offset
			h.Sample = sample
		}

	case flags&typeSpinner != 0:
		h.Kind = KindSpinner
		h.Spinner = &SpinnerData{EndTime: h.StartTime}
		if len(parts) >= 6 && strings.TrimSpace(parts[5]) != "" {
			end, err := parseInt(parts[5])
			if err != nil {
				d.warnf("spinner dropped, end time: %v", err)
				return
			}
			h.Spinner.EndTime = end + d.offset
		}
		if len(parts) >= 7 {
			h.Sample = parseHitSample(parts[6])
		}

	case flags&typeSlider != 0:
		if !d.slider(&h, parts) {
			return
		}

	case flags&typeCircle != 0:
		h.Kind = KindCircle
		if len(parts) >= 6 {
			h.Sample = parseHitSample(parts[5])
		}

	default:
		d.warnf("hit object dropped: type %d has no object bit", flags)
		return
	}
	d.b.HitObjects = append(d.b.HitObjects, h)
}

// slider fills in the slider payload from fields 5..10:
//
//	curveKind|x1:y1|x2:y2|...,slides,length,edgeSounds,edgeSets,hitSample
func (d *decoder) slider(h *HitObject, parts []string) bool {
	if len(parts) < 6 || strings.TrimSpace(parts[5]) == "" {
		d.warnf("slider dropped: no control points")
		return false
	}
	kind, anchors, err := parseSliderPath(h.Position, parts[5])
	if err != nil {
		d.warnf("slider dropped: %v", err)
		return false
	}

	c, err := curve.New(kind, anchors)
	if err != nil {
		d.warnf("slider dropped: %v", err)
		return false
	}
	if kind == curve.PerfectCircle && c.EffectiveKind() == curve.Linear && len(anchors) == 3 {
		d.warnf("perfect-circle slider with collinear anchors, treated as linear")
	}

	data := &SliderData{Curve: c, Slides: 1}
	if len(parts) >= 7 && strings.TrimSpace(parts[6]) != "" {
		if data.Slides, err = parseInt(parts[6]); err != nil {
			d.warnf("slider dropped, slides: %v", err)
			return false
		}
		if data.Slides < 1 {
			data.Slides = 1
		}
	}
	if len(parts) >= 8 && strings.TrimSpace(parts[7]) != "" {
		if data.Length, err = parseFloat(parts[7]); err != nil {
			d.warnf("slider dropped, length: %v", err)
			return false
		}
	}
	if len(parts) >= 9 && strings.TrimSpace(parts[8]) != "" {
		for _, n := range strings.Split(parts[8], "|") {
			s, err := parseInt(n)
			if err != nil {
				d.warnf("slider dropped, edge sound %q: %v", n, err)
				return false
			}
			if s < 0 || s > math.MaxUint8 {
				d.warnf("slider dropped, edge sound %q out of range", n)
				return false
			}
			data.EdgeSounds = append(data.EdgeSounds, hitsound.Additions(s))
		}
	}
	if len(parts) >= 10 && strings.TrimSpace(parts[9]) != "" {
		for _, pair := range strings.Split(parts[9], "|") {
			data.EdgeSets = append(data.EdgeSets, parseEdgeSets(pair))
		}
	}
	if len(parts) >= 11 {
		h.Sample = parseHitSample(parts[10])
	}
	h.Kind = KindSlider
	h.Slider = data
	return true
}

// parseSliderPath converts "B|x:y|x:y|..." into a curve kind and the full
// anchor list. The slider head position is the first anchor; the path field
// supplies the rest.
func parseSliderPath(head curve.Vector2, field string) (curve.Kind, []curve.Vector2, error) {
	tokens := strings.Split(strings.TrimSpace(field), "|")

	var kind curve.Kind
	switch strings.ToUpper(strings.TrimSpace(tokens[0])) {
	case "L":
		kind = curve.Linear
	case "C":
		kind = curve.Catmull
	case "P":
		kind = curve.PerfectCircle
	case "B":
		kind = curve.Bezier
	default:
		return 0, nil, fmt.Errorf("unknown curve kind %q", tokens[0])
	}

	anchors := []curve.Vector2{head}
	for _, tok := range tokens[1:] {
		xs, ys, ok := strings.Cut(strings.TrimSpace(tok), ":")
		if !ok {
			return 0, nil, fmt.Errorf("control point %q is not x:y", tok)
		}
		x, err := parseFloat(xs)
		if err != nil {
			return 0, nil, fmt.Errorf("control point %q: %w", tok, err)
		}
		y, err := parseFloat(ys)
		if err != nil {
			return 0, nil, fmt.Errorf("control point %q: %w", tok, err)
		}
		anchors = append(anchors, curve.Vec(x, y))
	}
	if len(anchors) < 2 {
		return 0, nil, fmt.Errorf("slider path has no control points")
	}
	return kind, anchors, nil
}

// ---------- field helpers ----------

// cleanLine trims whitespace and a leading byte-order mark. Scanner already
// splits on LF; trimming handles the CR of CRLF input.
func cleanLine(s string) string {
	s = strings.TrimPrefix(s, "\uFEFF")
	return strings.TrimSpace(s)
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func parseBool(s string) bool {
	return strings.TrimSpace(s) == "1"
}

func setInt(dst *int, v string) error {
	n, err := parseInt(v)
	if err != nil {
		return err
	}
	*dst = n
	return nil
}

func setFloat(dst *float64, v string) error {
	f, err := parseFloat(v)
	if err != nil {
		return err
	}
	*dst = f
	return nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func parseSampleSetName(v string) (hitsound.SampleSet, error) {
	switch strings.ToLower(v) {
	case "none", "all":
		return hitsound.SampleNone, nil
	case "normal":
		return hitsound.SampleNormal, nil
	case "soft":
		return hitsound.SampleSoft, nil
	case "drum":
		return hitsound.SampleDrum, nil
	}
	return hitsound.SampleNone, fmt.Errorf("unknown sample set %q", v)
}

func standardisePath(p string) string {
	p = strings.Trim(p, "\"")
	return strings.ReplaceAll(p, "\\", "/")
}

func cleanFilename(s string) string {
	s = strings.Trim(strings.TrimSpace(s), "\"")
	return strings.ReplaceAll(s, "\\", "/")
}

// splitCSV splits on commas outside double quotes, trimming each field.
func splitCSV(line string) []string {
	var out []string
	var cur strings.Builder
	inQ := false
	for i := 0; i < len(line); i++ {
		switch c := line[i]; c {
		case '"':
			inQ = !inQ
		case ',':
			if inQ {
				cur.WriteByte(c)
			} else {
				out = append(out, strings.TrimSpace(cur.String()))
				cur.Reset()
			}
		default:
			cur.WriteByte(c)
		}
	}
	out = append(out, strings.TrimSpace(cur.String()))
	return out
}

// splitCSVPreserveTail splits like splitCSV but rejoins everything past the
// n-th field, so filenames containing commas survive in the last column.
func splitCSVPreserveTail(line string, n int) []string {
	parts := splitCSV(line)
	if len(parts) <= n {
		return parts
	}
	head := parts[:n-1]
	tail := strings.Join(parts[n-1:], ",")
	return append(head, tail)
}

// parseHitSample parses "normalSet:additionSet:index:volume:filename".
// Sample overrides in the wild are frequently truncated or junk, so missing
// or unparsable numeric fields default to zero.
func parseHitSample(s string) hitsound.Sample {
	parts := strings.Split(s, ":")
	get := func(i int) string {
		if i < len(parts) {
			return strings.TrimSpace(parts[i])
		}
		return ""
	}
	lenientInt := func(s string) int {
		n, _ := strconv.Atoi(s)
		return n
	}
	normal, _ := hitsound.ParseSampleSet(lenientInt(get(0)))
	addition, _ := hitsound.ParseSampleSet(lenientInt(get(1)))
	return hitsound.Sample{
		NormalSet:   normal,
		AdditionSet: addition,
		Index:       lenientInt(get(2)),
		Volume:      lenientInt(get(3)),
		Filename:    strings.Trim(get(4), "\""),
	}
}

func parseEdgeSets(s string) hitsound.EdgeSets {
	ns, as, _ := strings.Cut(s, ":")
	lenientInt := func(s string) int {
		n, _ := strconv.Atoi(strings.TrimSpace(s))
		return n
	}
	normal, _ := hitsound.ParseSampleSet(lenientInt(ns))
	addition, _ := hitsound.ParseSampleSet(lenientInt(as))
	return hitsound.EdgeSets{NormalSet: normal, AdditionSet: addition}
}

// parseEndTimeAndSample parses the hold-note tail "endTime:hitSample".
func parseEndTimeAndSample(s string) (int, hitsound.Sample) {
	head, rest, ok := strings.Cut(s, ":")
	if !ok {
		n, _ := strconv.Atoi(strings.TrimSpace(s))
		return n, hitsound.Sample{}
	}
	n, _ := strconv.Atoi(strings.TrimSpace(head))
	return n, parseHitSample(rest)
}
