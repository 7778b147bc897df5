package beatmap

import (
	"errors"
	"fmt"
)

// Fatal parse errors. Everything else the decoder encounters is recoverable
// and reported through the diagnostics list.
var (
	ErrEmptyInput    = errors.New("beatmap: empty input")
	ErrMissingHeader = errors.New("beatmap: missing osu file format directive")
)

// Diagnostic records one recoverable issue encountered while parsing:
// a skipped line, a dropped record, or an applied structural fallback.
// Beatmap files are user-authored content of varying quality, so the decoder
// collects these and keeps going instead of failing the whole file.
type Diagnostic struct {
	// Line is the 1-based line number in the input, or 0 when the issue is
	// not tied to a single line.
	Line int

	// Section is the section being parsed when the issue occurred.
	Section string

	Message string
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("line %d [%s]: %s", d.Line, d.Section, d.Message)
	}
	return fmt.Sprintf("[%s]: %s", d.Section, d.Message)
}
