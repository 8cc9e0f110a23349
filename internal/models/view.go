package models

// Progress is the "position / total" pair shown under the card.
type Progress struct {
	Position int     `json:"position"`
	Total    int     `json:"total"`
	Percent  float64 `json:"percent"`
}

// View is everything the study page needs to render the current card.
type View struct {
	DeckID        string    `json:"deck_id"`
	Front         string    `json:"front"`
	Back          string    `json:"back"`
	Flipped       bool      `json:"flipped"`
	StudyMode     bool      `json:"study_mode"`
	Revealed      bool      `json:"revealed"`
	Generation    uint64    `json:"generation"`
	RevealDelayMS int       `json:"reveal_delay_ms"`
	Progress      Progress  `json:"progress"`
	Stats         DeckStats `json:"stats"`
}
