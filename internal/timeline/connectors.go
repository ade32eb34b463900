package timeline

// Connector links two plotted events that share a character, earlier event
// first. One connector exists per qualifying (earlier, later, character)
// combination, forward in time only, so no reverse duplicates are produced.
type Connector struct {
	From        Event
	To          Event
	CharacterID string
}

// Connectors enumerates connectors over the filtered view. Quadratic in the
// view size times character-set size; fine at the handful-to-low-hundreds
// scale this tool targets.
func Connectors(view []Event) []Connector {
	out := make([]Connector, 0, len(view))
	for i := range view {
		for j := range view {
			if i == j {
				continue
			}
			if !view[i].Instant.Before(view[j].Instant) {
				continue
			}
			for _, char := range view[i].CharactersInvolved {
				if view[j].Involves(char) {
					out = append(out, Connector{From: view[i], To: view[j], CharacterID: char})
				}
			}
		}
	}
	return out
}
