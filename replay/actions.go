package replay

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Buttons is the bitwise combination of inputs held during a frame.
type Buttons uint32

// Button bits.
const (
	ButtonM1 Buttons = 1 << iota
	ButtonM2
	ButtonK1
	ButtonK2
	ButtonSmoke
)

// Has reports whether every bit of b2 is set in b.
func (b Buttons) Has(b2 Buttons) bool { return b&b2 == b2 }

// Action is one frame of the replay input stream. Time is the delta in
// milliseconds since the previous frame.
type Action struct {
	Time    int
	X, Y    float64
	Buttons Buttons
}

// ActionData is the parsed frame stream of a replay. Clients from version
// 20130319 on append a sentinel frame at time -12345 whose button field
// carries the score's RNG seed; it is split off into Seed.
type ActionData struct {
	Frames  []Action
	Seed    uint32
	HasSeed bool
}

// ParseActions parses the decompressed action text: comma-separated frames
// of the form "time|x|y|buttons". The caller is responsible for LZMA
// decompression of Replay.ActionData.
func ParseActions(r io.Reader) (*ActionData, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var data ActionData
	for _, frame := range strings.Split(string(raw), ",") {
		if strings.TrimSpace(frame) == "" {
			continue
		}
		a, err := parseAction(frame)
		if err != nil {
			return nil, err
		}
		data.Frames = append(data.Frames, a)
	}

	if n := len(data.Frames); n > 0 && data.Frames[n-1].Time == -12345 {
		data.Seed = uint32(data.Frames[n-1].Buttons)
		data.HasSeed = true
		data.Frames = data.Frames[:n-1]
	}
	return &data, nil
}

func parseAction(frame string) (Action, error) {
	parts := strings.Split(frame, "|")
	if len(parts) != 4 {
		return Action{}, fmt.Errorf("frame %q is not time|x|y|buttons", frame)
	}
	t, err := strconv.Atoi(parts[0])
	if err != nil {
		return Action{}, fmt.Errorf("frame time %q: %w", parts[0], err)
	}
	x, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return Action{}, fmt.Errorf("frame x %q: %w", parts[1], err)
	}
	y, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return Action{}, fmt.Errorf("frame y %q: %w", parts[2], err)
	}
	btns, err := strconv.ParseUint(parts[3], 10, 32)
	if err != nil {
		return Action{}, fmt.Errorf("frame buttons %q: %w", parts[3], err)
	}
	return Action{Time: t, X: x, Y: y, Buttons: Buttons(btns)}, nil
}
