// Package replay decodes osu! replay (.osr) files. The header and score
// statistics are read directly; the action stream inside is LZMA-compressed
// and stays opaque here, with ParseActions accepting the decompressed text.
package replay

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Mods is the bitwise combination of gameplay modifiers on a score.
type Mods uint32

// Mod bits, as submitted by the client.
const (
	ModNoFail Mods = 1 << iota
	ModEasy
	ModTouchDevice
	ModHidden
	ModHardRock
	ModSuddenDeath
	ModDoubleTime
	ModRelax
	ModHalfTime
	ModNightcore
	ModFlashlight
	ModAutoplay
	ModSpunOut
	ModAutopilot
	ModPerfect
	ModKey4
	ModKey5
	ModKey6
	ModKey7
	ModKey8
	ModFadeIn
	ModRandom
	ModCinema
	ModTargetPractice
	ModKey9
	ModKey10
	ModKey1
	ModKey3
	ModKey2
)

// Has reports whether every bit of m2 is set in m.
func (m Mods) Has(m2 Mods) bool { return m&m2 == m2 }

// LifeFrame is one sample of the life bar graph: health in [0, 1] at a time.
type LifeFrame struct {
	Time   int
	Health float64
}

// Replay is a decoded .osr file. ActionData holds the raw LZMA-compressed
// frame stream exactly as stored.
type Replay struct {
	Mode        int
	Version     int
	BeatmapHash string
	Player      string
	ReplayHash  string

	Count300  int
	Count100  int
	Count50   int
	CountGeki int
	CountKatu int
	CountMiss int

	Score    int
	MaxCombo int
	Perfect  bool
	Mods     Mods

	LifeGraph []LifeFrame

	// Windows ticks: 100ns intervals since 0001-01-01.
	Timestamp uint64

	ActionData []byte

	// Zero when the score was never submitted.
	ScoreID uint64

	// Set only when Mods has ModTargetPractice.
	TargetPracticeAccuracy float64
}

var errBadStringPrefix = errors.New("string field prefix is neither 0x00 nor 0x0b")

// DecodeFile reads and decodes the .osr file at path.
func DecodeFile(path string) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Decode reads one replay from r.
func Decode(r io.Reader) (*Replay, error) {
	br := &binReader{r: r}

	rep := &Replay{}
	rep.Mode = int(br.u8())
	if rep.Mode > 3 {
		return nil, fmt.Errorf("invalid game mode %d", rep.Mode)
	}
	rep.Version = int(br.u32())
	rep.BeatmapHash = br.str()
	rep.Player = br.str()
	rep.ReplayHash = br.str()
	rep.Count300 = int(br.u16())
	rep.Count100 = int(br.u16())
	rep.Count50 = int(br.u16())
	rep.CountGeki = int(br.u16())
	rep.CountKatu = int(br.u16())
	rep.CountMiss = int(br.u16())
	rep.Score = int(br.u32())
	rep.MaxCombo = int(br.u16())
	rep.Perfect = br.u8() == 1
	rep.Mods = Mods(br.u32())

	life := br.str()
	if br.err != nil {
		return nil, br.err
	}
	graph, err := parseLifeGraph(life)
	if err != nil {
		return nil, err
	}
	rep.LifeGraph = graph

	rep.Timestamp = br.u64()
	rep.ActionData = br.bytes(int(br.u32()))
	rep.ScoreID = br.u64()
	if rep.Mods.Has(ModTargetPractice) {
		rep.TargetPracticeAccuracy = math.Float64frombits(br.u64())
	}
	if br.err != nil {
		return nil, br.err
	}
	return rep, nil
}

// parseLifeGraph parses "time|health,time|health,..." with a trailing comma
// tolerated.
func parseLifeGraph(s string) ([]LifeFrame, error) {
	var out []LifeFrame
	for _, frame := range strings.Split(s, ",") {
		if strings.TrimSpace(frame) == "" {
			continue
		}
		ts, hs, ok := strings.Cut(frame, "|")
		if !ok {
			return nil, fmt.Errorf("life graph frame %q is not time|health", frame)
		}
		t, err := strconv.Atoi(ts)
		if err != nil {
			return nil, fmt.Errorf("life graph time %q: %w", ts, err)
		}
		h, err := strconv.ParseFloat(hs, 64)
		if err != nil {
			return nil, fmt.Errorf("life graph health %q: %w", hs, err)
		}
		out = append(out, LifeFrame{Time: t, Health: h})
	}
	return out, nil
}

// binReader reads the .osr little-endian primitives, keeping the first error
// and returning zero values afterwards.
type binReader struct {
	r   io.Reader
	err error
}

func (b *binReader) bytes(n int) []byte {
	if b.err != nil || n == 0 {
		return nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(b.r, buf); err != nil {
		b.err = err
		return nil
	}
	return buf
}

func (b *binReader) u8() uint8 {
	buf := b.bytes(1)
	if buf == nil {
		return 0
	}
	return buf[0]
}

func (b *binReader) u16() uint16 {
	buf := b.bytes(2)
	if buf == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(buf)
}

func (b *binReader) u32() uint32 {
	buf := b.bytes(4)
	if buf == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(buf)
}

func (b *binReader) u64() uint64 {
	buf := b.bytes(8)
	if buf == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(buf)
}

// str reads one string field: a 0x0b marker, a ULEB128 byte length, and the
// UTF-8 bytes. A 0x00 marker is the empty string.
func (b *binReader) str() string {
	switch marker := b.u8(); marker {
	case 0x00:
		return ""
	case 0x0b:
		n := b.uleb128()
		return string(b.bytes(int(n)))
	default:
		if b.err == nil {
			b.err = fmt.Errorf("%w: 0x%02x", errBadStringPrefix, marker)
		}
		return ""
	}
}

func (b *binReader) uleb128() uint64 {
	var v uint64
	for shift := 0; ; shift += 7 {
		if shift > 63 {
			if b.err == nil {
				b.err = errors.New("uleb128 value overflows 64 bits")
			}
			return 0
		}
		c := b.u8()
		if b.err != nil {
			return 0
		}
		v |= uint64(c&0x7f) << shift
		if c&0x80 == 0 {
			return v
		}
	}
}
