package models

type Card struct {
	Front string `json:"front" toml:"front"`
	Back  string `json:"back" toml:"back"`
}

type Deck struct {
	ID    string `json:"id" toml:"id"`
	Name  string `json:"name" toml:"name"`
	Cards []Card `json:"cards" toml:"cards"`
}

// Len returns the number of cards in the deck.
func (d Deck) Len() int {
	return len(d.Cards)
}

type DeckSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Size int    `json:"size"`
}
