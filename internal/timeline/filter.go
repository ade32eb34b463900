package timeline

import (
	"strings"

	"github.com/Kalaith/storyline/internal/story"
)

// Filter narrows the normalized view. Zero values mean "no filter".
type Filter struct {
	CharacterID string
	Importance  story.Importance
}

// Active reports whether any predicate is set.
func (f Filter) Active() bool {
	return strings.TrimSpace(f.CharacterID) != "" || f.Importance != ""
}

func (f Filter) matches(e Event) bool {
	if id := strings.TrimSpace(f.CharacterID); id != "" && !e.Involves(id) {
		return false
	}
	if f.Importance != "" && e.Importance != f.Importance {
		return false
	}
	return true
}

// Apply returns the subsequence of n's events matching every set predicate,
// preserving chronological order. The input is never mutated. An empty result
// is a valid state: the renderer skips drawing entirely.
func (f Filter) Apply(n Normalized) []Event {
	if !f.Active() {
		return append([]Event(nil), n.Events...)
	}
	out := make([]Event, 0, len(n.Events))
	for _, e := range n.Events {
		if f.matches(e) {
			out = append(out, e)
		}
	}
	return out
}
