// Package hitsound holds the sample-set and addition enumerations shared by
// the beatmap format and the replay decoder.
package hitsound

import "fmt"

// SampleSet selects the bank a hitsound is played from. A beatmap carries a
// default set; timing sections, individual notes, and additions may override
// it.
type SampleSet uint8

const (
	SampleNone SampleSet = iota
	SampleNormal
	SampleSoft
	SampleDrum
)

// ParseSampleSet maps the format's numeric sample-set field. Values outside
// the known range report ok=false.
func ParseSampleSet(id int) (SampleSet, bool) {
	if id < 0 || id > int(SampleDrum) {
		return SampleNone, false
	}
	return SampleSet(id), true
}

func (s SampleSet) String() string {
	switch s {
	case SampleNone:
		return "none"
	case SampleNormal:
		return "normal"
	case SampleSoft:
		return "soft"
	case SampleDrum:
		return "drum"
	}
	return fmt.Sprintf("SampleSet(%d)", uint8(s))
}

// Additions is the bit set of extra hitsounds layered on top of the normal
// hit sample.
type Additions uint8

const (
	AdditionNormal Additions = 1 << iota // bit 0, implied on every hit
	AdditionWhistle
	AdditionFinish
	AdditionClap
)

// Has reports whether all bits of a are set.
func (adds Additions) Has(a Additions) bool { return adds&a == a }

// Sample describes the per-object hitsound override carried in the last
// field of a hit-object record: normalSet:additionSet:index:volume:filename.
type Sample struct {
	NormalSet   SampleSet
	AdditionSet SampleSet
	Index       int
	Volume      int
	Filename    string
}

// EdgeSets is the per-edge sample-set override pair of a slider
// (head, each repeat, tail).
type EdgeSets struct {
	NormalSet   SampleSet
	AdditionSet SampleSet
}
