package deck

import (
	"math/rand/v2"

	"github.com/vytor/flashdeck/internal/models"
)

// Shuffle permutes cards in place with Fisher-Yates: walking down from the
// last index, each position swaps with a uniform pick from [0, i].
// A nil rng uses the global source.
func Shuffle(cards []models.Card, rng *rand.Rand) {
	intN := rand.IntN
	if rng != nil {
		intN = rng.IntN
	}
	for i := len(cards) - 1; i > 0; i-- {
		j := intN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}
