package models

// CardColor is the hidden allegiance of a board card.
type CardColor string

const (
	CardRed     CardColor = "red"
	CardBlue    CardColor = "blue"
	CardBlack   CardColor = "black"
	CardNeutral CardColor = "neutral"
)

// Card is a single word on the 25-card board. Word and Color are fixed at
// board generation; only IsFlipped changes afterwards. IsSelected is a
// client-side highlight and carries no authority.
type Card struct {
	Word       string    `json:"word"`
	Color      CardColor `json:"color"`
	IsFlipped  bool      `json:"isFlipped"`
	IsSelected bool      `json:"isSelected"`
}

// BelongsTo reports whether the card scores for the given team.
func (c *Card) BelongsTo(team TeamColor) bool {
	return (c.Color == CardRed && team == TeamRed) ||
		(c.Color == CardBlue && team == TeamBlue)
}
