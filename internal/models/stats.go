package models

// DeckStats holds the per-deck counters. Both only ever grow.
type DeckStats struct {
	Viewed  int `json:"viewed"`
	Flipped int `json:"flipped"`
}

// Stats maps a deck identifier to its counters.
type Stats map[string]DeckStats

// Clone returns an independent copy of the map.
func (s Stats) Clone() Stats {
	out := make(Stats, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
