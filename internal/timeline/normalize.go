// Package timeline derives the chronological read-model the renderer and
// stats consume. Everything here is a pure function over the raw event list;
// the model is rebuilt in full whenever the input changes.
package timeline

import (
	"fmt"
	"sort"
	"time"

	"github.com/Kalaith/storyline/internal/story"
)

// Event is a story event resolved onto the timeline: the date parsed to an
// instant plus a dense chronological rank. Never persisted.
type Event struct {
	story.Event

	Instant  time.Time
	Position int
}

// Warning reports an event excluded from the chronological view.
type Warning struct {
	EventID string
	Date    string
	Reason  string
}

func (w Warning) String() string {
	return fmt.Sprintf("event %s: %s (%q)", w.EventID, w.Reason, w.Date)
}

// Normalized is the full event list after date resolution, stable sorting,
// and rank assignment.
type Normalized struct {
	Events   []Event
	Warnings []Warning
}

// Normalize resolves dates, orders events chronologically (stable: equal
// instants keep their input order), and assigns Position 0..N-1. Events whose
// date text parses to no known layout are excluded and reported as warnings
// rather than silently misplaced.
func Normalize(events []story.Event) Normalized {
	out := Normalized{Events: make([]Event, 0, len(events))}
	for _, e := range events {
		instant, ok := story.ParseDate(e.Date)
		if !ok {
			out.Warnings = append(out.Warnings, Warning{
				EventID: e.ID,
				Date:    e.Date,
				Reason:  "unparsable date, excluded from timeline",
			})
			continue
		}
		out.Events = append(out.Events, Event{Event: e, Instant: instant})
	}

	sort.SliceStable(out.Events, func(i, j int) bool {
		return out.Events[i].Instant.Before(out.Events[j].Instant)
	})
	for i := range out.Events {
		out.Events[i].Position = i
	}
	return out
}
