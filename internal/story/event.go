// Package story defines the narrative domain model shared by the timeline,
// editor, and storage layers.
package story

import (
	"strings"
	"time"
)

// Importance grades how much an event matters to the plot.
type Importance string

const (
	ImportanceCritical Importance = "critical"
	ImportanceMajor    Importance = "major"
	ImportanceModerate Importance = "moderate"
	ImportanceMinor    Importance = "minor"
)

// ImportanceTiers lists the four tiers from highest to lowest. The timeline
// always renders one band per tier, in this order, regardless of which tiers
// occur in the data.
var ImportanceTiers = []Importance{
	ImportanceCritical,
	ImportanceMajor,
	ImportanceModerate,
	ImportanceMinor,
}

// Rank returns the tier's position in the fixed order, critical first.
// Unknown tiers rank below minor.
func (i Importance) Rank() int {
	for idx, tier := range ImportanceTiers {
		if tier == i {
			return idx
		}
	}
	return len(ImportanceTiers)
}

// Valid reports whether the tier is one of the four known values.
func (i Importance) Valid() bool {
	switch i {
	case ImportanceCritical, ImportanceMajor, ImportanceModerate, ImportanceMinor:
		return true
	default:
		return false
	}
}

// ParseImportance normalizes raw input to a tier, defaulting to moderate.
func ParseImportance(raw string) Importance {
	tier := Importance(strings.ToLower(strings.TrimSpace(raw)))
	if tier.Valid() {
		return tier
	}
	return ImportanceModerate
}

// Event is a narrative occurrence. Date is kept as raw text, as authored;
// the timeline package resolves it to an instant.
type Event struct {
	ID                 string     `json:"id" yaml:"id"`
	Title              string     `json:"title" yaml:"title"`
	Description        string     `json:"description" yaml:"description"`
	Date               string     `json:"date" yaml:"date"`
	CharactersInvolved []string   `json:"charactersInvolved" yaml:"characters_involved"`
	Importance         Importance `json:"importance" yaml:"importance"`
}

// Involves reports whether the event's character set contains id.
func (e Event) Involves(id string) bool {
	for _, c := range e.CharactersInvolved {
		if c == id {
			return true
		}
	}
	return false
}

// dateLayouts are the accepted date formats, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseDate resolves the event's date text to a UTC instant. It fails for
// text matching none of the accepted layouts; callers decide whether that
// means a validation error (editor) or exclusion (timeline).
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return parsed.UTC(), true
		}
	}
	return time.Time{}, false
}

// EventPatch is a partial update to a single event. Nil fields are untouched.
type EventPatch struct {
	Title              *string     `json:"title,omitempty"`
	Description        *string     `json:"description,omitempty"`
	Date               *string     `json:"date,omitempty"`
	CharactersInvolved *[]string   `json:"charactersInvolved,omitempty"`
	Importance         *Importance `json:"importance,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p EventPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Date == nil &&
		p.CharactersInvolved == nil && p.Importance == nil
}

// Apply returns a copy of e with the patch applied.
func (p EventPatch) Apply(e Event) Event {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.CharactersInvolved != nil {
		e.CharactersInvolved = append([]string(nil), (*p.CharactersInvolved)...)
	}
	if p.Importance != nil {
		e.Importance = *p.Importance
	}
	return e
}

// NewEventTemplate is the fixed template emitted by the add-event action.
// No identifier is assigned here; that is the storage layer's job.
func NewEventTemplate(now time.Time) Event {
	return Event{
		Title:              "New Event",
		Description:        "Describe what happens...",
		Date:               now.UTC().Format(time.RFC3339),
		CharactersInvolved: []string{},
		Importance:         ImportanceModerate,
	}
}
