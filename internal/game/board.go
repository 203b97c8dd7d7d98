// internal/game/board.go
package game

import (
	"math/rand"

	"github.com/codewords-team/codewords-service/internal/models"
)

// BoardSize is the number of cards on a board.
const BoardSize = 25

// BoardGenerator produces a shuffled board and the team that plays first.
// The returned words are unique within the board and the starting team is
// always one of the two real colors. Generation is pure in-memory work and
// must never touch I/O.
type BoardGenerator interface {
	Generate() ([]*models.Card, models.TeamColor)
}

// WordBoardGenerator deals the classic layout: nine cards for the starting
// team, eight for the other, seven neutrals and one black card, over 25
// words sampled from the built-in pool.
type WordBoardGenerator struct {
	rng *rand.Rand
}

// NewWordBoardGenerator returns a generator with its own RNG.
func NewWordBoardGenerator() *WordBoardGenerator {
	return &WordBoardGenerator{rng: rand.New(rand.NewSource(rand.Int63()))}
}

// NewSeededBoardGenerator returns a generator with a fixed seed, making
// boards reproducible.
func NewSeededBoardGenerator(seed int64) *WordBoardGenerator {
	return &WordBoardGenerator{rng: rand.New(rand.NewSource(seed))}
}

// Generate implements BoardGenerator.
func (w *WordBoardGenerator) Generate() ([]*models.Card, models.TeamColor) {
	starting := models.TeamRed
	if w.rng.Intn(2) == 1 {
		starting = models.TeamBlue
	}

	words := w.pickWords(BoardSize)
	colors := w.dealColors(starting)

	cards := make([]*models.Card, BoardSize)
	for i := range cards {
		cards[i] = &models.Card{Word: words[i], Color: colors[i]}
	}
	return cards, starting
}

// pickWords samples n distinct words from the pool.
func (w *WordBoardGenerator) pickWords(n int) []string {
	idx := w.rng.Perm(len(wordPool))[:n]
	words := make([]string, n)
	for i, j := range idx {
		words[i] = wordPool[j]
	}
	return words
}

// dealColors builds the shuffled color layout for a board: 9 for the
// starting team, 8 for the other, 7 neutral, 1 black.
func (w *WordBoardGenerator) dealColors(starting models.TeamColor) []models.CardColor {
	first, second := models.CardRed, models.CardBlue
	if starting == models.TeamBlue {
		first, second = models.CardBlue, models.CardRed
	}

	colors := make([]models.CardColor, 0, BoardSize)
	for i := 0; i < 9; i++ {
		colors = append(colors, first)
	}
	for i := 0; i < 8; i++ {
		colors = append(colors, second)
	}
	for i := 0; i < 7; i++ {
		colors = append(colors, models.CardNeutral)
	}
	colors = append(colors, models.CardBlack)

	w.rng.Shuffle(len(colors), func(i, j int) {
		colors[i], colors[j] = colors[j], colors[i]
	})
	return colors
}
