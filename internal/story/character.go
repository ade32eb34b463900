package story

// Character is a cast member. Level feeds only the display hue.
type Character struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Level int    `json:"level" yaml:"level"`
}

// Hue derives the character's display hue in degrees from its level.
func (c Character) Hue() float64 {
	h := (c.Level * 30) % 360
	if h < 0 {
		h += 360
	}
	return float64(h)
}

// CharacterIndex builds an id lookup over a character list.
func CharacterIndex(characters []Character) map[string]Character {
	out := make(map[string]Character, len(characters))
	for _, c := range characters {
		if c.ID == "" {
			continue
		}
		out[c.ID] = c
	}
	return out
}
