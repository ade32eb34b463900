package timeline

import (
	"time"

	"github.com/Kalaith/storyline/internal/story"
)

// Summary holds the header statistics, derived from the full normalized set
// (never the filtered view) and recomputed on every render.
type Summary struct {
	TotalEvents      int
	MajorEvents      int // critical or major
	ActiveCharacters int
	DaysSpan         int
}

// Stats computes the summary. DaysSpan is the whole-day floor of the span
// between the earliest and latest instants, 0 with fewer than two events.
func Stats(n Normalized) Summary {
	s := Summary{TotalEvents: len(n.Events)}
	if len(n.Events) == 0 {
		return s
	}

	chars := make(map[string]struct{})
	var earliest, latest time.Time
	for i, e := range n.Events {
		if e.Importance == story.ImportanceCritical || e.Importance == story.ImportanceMajor {
			s.MajorEvents++
		}
		for _, c := range e.CharactersInvolved {
			chars[c] = struct{}{}
		}
		if i == 0 || e.Instant.Before(earliest) {
			earliest = e.Instant
		}
		if i == 0 || e.Instant.After(latest) {
			latest = e.Instant
		}
	}
	s.ActiveCharacters = len(chars)
	if len(n.Events) > 1 {
		s.DaysSpan = int(latest.Sub(earliest).Hours() / 24)
	}
	return s
}
