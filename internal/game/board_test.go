// internal/game/board_test.go
package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewords-team/codewords-service/internal/models"
)

func TestWordBoardGeneratorLayout(t *testing.T) {
	gen := NewWordBoardGenerator()

	for i := 0; i < 50; i++ {
		cards, starting := gen.Generate()
		require.Len(t, cards, BoardSize)
		require.Contains(t, []models.TeamColor{models.TeamRed, models.TeamBlue}, starting)

		counts := map[models.CardColor]int{}
		words := map[string]bool{}
		for _, c := range cards {
			counts[c.Color]++
			assert.False(t, words[c.Word], "word %q dealt twice", c.Word)
			words[c.Word] = true
			assert.False(t, c.IsFlipped)
		}

		startColor, otherColor := models.CardRed, models.CardBlue
		if starting == models.TeamBlue {
			startColor, otherColor = models.CardBlue, models.CardRed
		}
		assert.Equal(t, 9, counts[startColor], "starting team gets nine cards")
		assert.Equal(t, 8, counts[otherColor])
		assert.Equal(t, 7, counts[models.CardNeutral])
		assert.Equal(t, 1, counts[models.CardBlack])
	}
}

func TestSeededBoardGeneratorIsReproducible(t *testing.T) {
	a, startA := NewSeededBoardGenerator(42).Generate()
	b, startB := NewSeededBoardGenerator(42).Generate()

	require.Equal(t, startA, startB)
	require.Len(t, b, len(a))
	for i := range a {
		assert.Equal(t, *a[i], *b[i])
	}
}
