package beatmap

// EventKind discriminates the few event records the parser understands.
// Everything else (storyboard commands, samples) is carried through opaque.
type EventKind uint8

const (
	EventRaw EventKind = iota
	EventBackground
	EventVideo
	EventBreak
)

// Event is one line of the [Events] section. Typed fields are filled for
// backgrounds, videos, and breaks; Raw always holds the original line so the
// section round-trips unchanged.
type Event struct {
	Kind EventKind

	Filename  string // background, video
	StartTime int    // video, break
	EndTime   int    // break

	Raw string
}

// Color is one combo color override from the [Colours] section.
type Color struct {
	R, G, B uint8
}
