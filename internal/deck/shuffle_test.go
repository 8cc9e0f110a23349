package deck_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/flashdeck/internal/deck"
	"github.com/vytor/flashdeck/internal/models"
)

func numberedCards(n int) []models.Card {
	cards := make([]models.Card, n)
	for i := range cards {
		cards[i] = models.Card{Front: string(rune('a' + i)), Back: string(rune('A' + i))}
	}
	return cards
}

func TestShuffle_PreservesMultiset(t *testing.T) {
	cards := numberedCards(10)
	original := append([]models.Card(nil), cards...)

	deck.Shuffle(cards, rand.New(rand.NewPCG(1, 2)))

	assert.ElementsMatch(t, original, cards)
}

func TestShuffle_DeterministicWithSeed(t *testing.T) {
	a := numberedCards(8)
	b := numberedCards(8)

	deck.Shuffle(a, rand.New(rand.NewPCG(42, 7)))
	deck.Shuffle(b, rand.New(rand.NewPCG(42, 7)))

	assert.Equal(t, a, b)
}

func TestShuffle_TrivialSlices(t *testing.T) {
	deck.Shuffle(nil, nil)

	one := numberedCards(1)
	deck.Shuffle(one, nil)
	assert.Equal(t, numberedCards(1), one)
}

func TestShuffle_EveryPermutationReachable(t *testing.T) {
	// Three cards have six orderings; a uniform shuffle hits all of them.
	rng := rand.New(rand.NewPCG(3, 9))
	seen := map[string]int{}
	for i := 0; i < 6000; i++ {
		cards := numberedCards(3)
		deck.Shuffle(cards, rng)
		seen[cards[0].Front+cards[1].Front+cards[2].Front]++
	}

	assert.Len(t, seen, 6)
	for perm, n := range seen {
		assert.InDelta(t, 1000, n, 200, "permutation %s", perm)
	}
}
