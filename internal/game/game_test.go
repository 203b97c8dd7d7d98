// internal/game/game_test.go
package game

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewords-team/codewords-service/internal/models"
)

// stubGenerator deals a fixed, predictable board: cards r0..r8 for red,
// b0..b7 for blue, n0..n6 neutral and one black card named "assassin".
// Red always starts.
type stubGenerator struct{}

func (stubGenerator) Generate() ([]*models.Card, models.TeamColor) {
	var cards []*models.Card
	add := func(prefix string, color models.CardColor, n int) {
		for i := 0; i < n; i++ {
			cards = append(cards, &models.Card{Word: fmt.Sprintf("%s%d", prefix, i), Color: color})
		}
	}
	add("r", models.CardRed, 9)
	add("b", models.CardBlue, 8)
	add("n", models.CardNeutral, 7)
	cards = append(cards, &models.Card{Word: "assassin", Color: models.CardBlack})
	return cards, models.TeamRed
}

func newUser(name string) *models.User {
	return &models.User{ID: uuid.New(), Name: name, Color: models.TeamNone, Role: models.RoleNone}
}

// setupRoom builds a room with four users assigned to full teams, ready to
// start, using the deterministic stub board.
func setupRoom(t *testing.T) (*GameState, []*models.User) {
	t.Helper()

	users := []*models.User{newUser("alice"), newUser("bob"), newUser("carol"), newUser("dave")}
	g := NewGameState("1234", models.ModeOnline, users[0])
	g.Gen = stubGenerator{}
	for _, u := range users[1:] {
		g.Players = append(g.Players, u)
	}

	require.NoError(t, g.AssignTeam(users[0], models.TeamRed, models.RoleLeader))
	require.NoError(t, g.AssignTeam(users[1], models.TeamRed, models.RoleAgent))
	require.NoError(t, g.AssignTeam(users[2], models.TeamBlue, models.RoleLeader))
	require.NoError(t, g.AssignTeam(users[3], models.TeamBlue, models.RoleAgent))
	return g, users
}

// startGame is a helper that starts the room and fails the test on error.
func startGame(t *testing.T, g *GameState) {
	t.Helper()
	require.NoError(t, g.Start())
}

func TestStartRequiresAssignedPlayers(t *testing.T) {
	u := newUser("loner")
	g := NewGameState("1234", models.ModeOnline, u)
	g.Gen = stubGenerator{}

	err := g.Start()
	require.ErrorIs(t, err, ErrUnassignedPlayers)
	assert.Equal(t, PhaseLobby, g.Phase)
	assert.Empty(t, g.Cards, "a rejected start must not deal a board")
}

func TestStartDealsBoard(t *testing.T) {
	g, _ := setupRoom(t)
	startGame(t, g)

	require.Len(t, g.Cards, BoardSize)
	seen := map[string]bool{}
	for _, c := range g.Cards {
		assert.False(t, seen[c.Word], "word %q appears twice", c.Word)
		seen[c.Word] = true
		assert.False(t, c.IsFlipped)
	}

	assert.Equal(t, PhaseLeaderClue, g.Phase)
	assert.Equal(t, models.RoleLeader, g.Turn.Role)
	assert.Equal(t, models.TeamRed, g.Turn.Team)
	assert.True(t, g.IsGameStarted)
	assert.Nil(t, g.Clue)

	// Starting twice is rejected.
	require.ErrorIs(t, g.Start(), ErrInvalidTransition)
}

func TestSetClueHandsTurnToAgents(t *testing.T) {
	g, _ := setupRoom(t)
	startGame(t, g)

	clue := models.Clue{Word: "ocean", Count: 2}
	require.NoError(t, g.SetClue(clue))

	assert.Equal(t, PhaseAgentGuess, g.Phase)
	assert.Equal(t, models.RoleAgent, g.Turn.Role)
	assert.Equal(t, models.TeamRed, g.Turn.Team)
	require.NotNil(t, g.Clue)
	assert.Equal(t, clue, *g.Clue)
	assert.Equal(t, []models.Clue{clue}, g.Teams[models.TeamRed].ClueList)
	assert.Zero(t, g.RevealCount)

	// A second clue in the guess phase is rejected.
	require.ErrorIs(t, g.SetClue(models.Clue{Word: "river", Count: 1}), ErrInvalidTransition)
}

func TestRevealOwnColorKeepsTurnUntilLimit(t *testing.T) {
	g, _ := setupRoom(t)
	startGame(t, g)
	require.NoError(t, g.SetClue(models.Clue{Word: "ocean", Count: 2}))

	// count+1 = 3 guesses allowed.
	out, err := g.RevealCard("r0")
	require.NoError(t, err)
	assert.Equal(t, OutcomeContinue, out)
	assert.Equal(t, PhaseAgentGuess, g.Phase)

	out, err = g.RevealCard("r1")
	require.NoError(t, err)
	assert.Equal(t, OutcomeContinue, out)

	out, err = g.RevealCard("r2")
	require.NoError(t, err)
	assert.Equal(t, OutcomeTurnOver, out, "third reveal exhausts the clue allowance")

	assert.Nil(t, g.Clue)
	assert.Equal(t, models.TeamBlue, g.Turn.Team)
	assert.Equal(t, models.RoleLeader, g.Turn.Role)
	assert.Equal(t, PhaseLeaderClue, g.Phase)
	assert.Zero(t, g.RevealCount)
}

func TestRevealWrongColorPassesTurn(t *testing.T) {
	for _, word := range []string{"b0", "n0"} {
		g, _ := setupRoom(t)
		startGame(t, g)
		require.NoError(t, g.SetClue(models.Clue{Word: "ocean", Count: 3}))

		out, err := g.RevealCard(word)
		require.NoError(t, err)
		assert.Equal(t, OutcomeTurnOver, out, "revealing %q should pass the turn", word)
		assert.Equal(t, models.TeamBlue, g.Turn.Team)
		assert.Nil(t, g.Clue)

		card := g.findCard(word)
		require.NotNil(t, card)
		assert.True(t, card.IsFlipped)
	}
}

func TestRevealBlackEndsGameForOpponent(t *testing.T) {
	g, _ := setupRoom(t)
	startGame(t, g)
	require.NoError(t, g.SetClue(models.Clue{Word: "ocean", Count: 9}))

	var endedCode string
	var endedWinner models.TeamColor
	g.OnGameEnd = func(code string, winner models.TeamColor) {
		endedCode = code
		endedWinner = winner
	}

	out, err := g.RevealCard("assassin")
	require.NoError(t, err)
	assert.Equal(t, OutcomeGameOver, out)
	assert.Equal(t, PhaseGameOver, g.Phase)
	assert.Equal(t, models.TeamBlue, g.Winner)
	assert.Equal(t, "1234", endedCode)
	assert.Equal(t, models.TeamBlue, endedWinner)

	// Terminal: no clues, no reveals, no turn changes until reset.
	require.ErrorIs(t, g.SetClue(models.Clue{Word: "x", Count: 1}), ErrInvalidTransition)
	_, err = g.RevealCard("r0")
	require.ErrorIs(t, err, ErrInvalidTransition)
	require.ErrorIs(t, g.NextTurn(), ErrInvalidTransition)
}

func TestRevealLastOwnCardWinsGame(t *testing.T) {
	g, _ := setupRoom(t)
	startGame(t, g)
	require.NoError(t, g.SetClue(models.Clue{Word: "everything", Count: 9}))

	for i := 0; i < 8; i++ {
		out, err := g.RevealCard(fmt.Sprintf("r%d", i))
		require.NoError(t, err)
		require.Equal(t, OutcomeContinue, out)
	}

	out, err := g.RevealCard("r8")
	require.NoError(t, err)
	assert.Equal(t, OutcomeGameOver, out)
	assert.Equal(t, models.TeamRed, g.Winner)
	assert.Equal(t, PhaseGameOver, g.Phase)
}

func TestRevealIsIdempotentOnFlippedCard(t *testing.T) {
	g, _ := setupRoom(t)
	startGame(t, g)
	require.NoError(t, g.SetClue(models.Clue{Word: "ocean", Count: 2}))

	_, err := g.RevealCard("r0")
	require.NoError(t, err)
	countAfterFirst := g.RevealCount

	out, err := g.RevealCard("r0")
	require.NoError(t, err)
	assert.Equal(t, OutcomeNone, out)
	assert.Equal(t, countAfterFirst, g.RevealCount, "double reveal must not burn a guess")
	assert.Equal(t, PhaseAgentGuess, g.Phase)
}

func TestRevealUnknownCard(t *testing.T) {
	g, _ := setupRoom(t)
	startGame(t, g)
	require.NoError(t, g.SetClue(models.Clue{Word: "ocean", Count: 2}))

	_, err := g.RevealCard("nowhere")
	require.ErrorIs(t, err, ErrUnknownCard)
	assert.Zero(t, g.RevealCount)
	for _, c := range g.Cards {
		assert.False(t, c.IsFlipped)
	}
}

func TestRevealOutsideGuessPhase(t *testing.T) {
	g, _ := setupRoom(t)
	startGame(t, g)

	_, err := g.RevealCard("r0")
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.False(t, g.findCard("r0").IsFlipped)
}

func TestNextTurnOnlyDuringGuessPhase(t *testing.T) {
	g, _ := setupRoom(t)
	startGame(t, g)

	// The leader-to-agent advance only happens through SetClue.
	require.ErrorIs(t, g.NextTurn(), ErrInvalidTransition)
	assert.Equal(t, PhaseLeaderClue, g.Phase)

	require.NoError(t, g.SetClue(models.Clue{Word: "ocean", Count: 2}))
	require.NoError(t, g.NextTurn())

	assert.Equal(t, models.TeamBlue, g.Turn.Team)
	assert.Equal(t, models.RoleLeader, g.Turn.Role)
	assert.Nil(t, g.Clue)
	assert.Equal(t, PhaseLeaderClue, g.Phase)
}

func TestEndGameConcedesInProgressGameOnly(t *testing.T) {
	g, _ := setupRoom(t)

	// Nothing to concede in the lobby.
	require.ErrorIs(t, g.EndGame(models.TeamBlue), ErrInvalidTransition)
	assert.Equal(t, PhaseLobby, g.Phase)

	startGame(t, g)
	require.ErrorIs(t, g.EndGame(models.TeamNone), ErrBadAssignment)

	var endedCode string
	var endedWinner models.TeamColor
	g.OnGameEnd = func(code string, winner models.TeamColor) {
		endedCode = code
		endedWinner = winner
	}
	require.NoError(t, g.EndGame(models.TeamBlue))

	assert.Equal(t, PhaseGameOver, g.Phase)
	assert.Equal(t, models.TeamBlue, g.Winner)
	assert.Equal(t, "1234", endedCode)
	assert.Equal(t, models.TeamBlue, endedWinner)

	// A finished game cannot be conceded again.
	require.ErrorIs(t, g.EndGame(models.TeamRed), ErrInvalidTransition)
	assert.Equal(t, models.TeamBlue, g.Winner)
}

func TestResetKeepsRosterAndHistory(t *testing.T) {
	g, _ := setupRoom(t)

	// Reset before the first start is meaningless.
	require.ErrorIs(t, g.Reset(), ErrInvalidTransition)

	startGame(t, g)
	require.NoError(t, g.SetClue(models.Clue{Word: "ocean", Count: 9}))
	_, err := g.RevealCard("assassin")
	require.NoError(t, err)

	messagesBefore := len(g.Messages)
	require.NoError(t, g.Reset())

	assert.Equal(t, PhaseLeaderClue, g.Phase)
	assert.Equal(t, models.TeamNone, g.Winner)
	assert.Nil(t, g.Clue)
	assert.Zero(t, g.RevealCount)
	assert.NotNil(t, g.Teams[models.TeamRed].Leader)
	assert.Greater(t, len(g.Messages), messagesBefore, "history survives, reset is logged")
	for _, c := range g.Cards {
		assert.False(t, c.IsFlipped)
	}
}

// TestClueGuessScenario walks the reference flow end to end: start, clue
// "ocean" for two cards, two safe guesses, then the overguess flips the turn.
func TestClueGuessScenario(t *testing.T) {
	g, _ := setupRoom(t)
	startGame(t, g)
	require.Len(t, g.Cards, 25)
	require.Equal(t, models.RoleLeader, g.Turn.Role)

	require.NoError(t, g.SetClue(models.Clue{Word: "ocean", Count: 2}))
	require.Equal(t, PhaseAgentGuess, g.Phase)
	require.Len(t, g.Teams[models.TeamRed].ClueList, 1)

	out, err := g.RevealCard("r3")
	require.NoError(t, err)
	require.Equal(t, OutcomeContinue, out)

	out, err = g.RevealCard("r4")
	require.NoError(t, err)
	require.Equal(t, OutcomeContinue, out)

	out, err = g.RevealCard("r5")
	require.NoError(t, err)
	require.Equal(t, OutcomeTurnOver, out)
	assert.Nil(t, g.Clue)
	assert.Equal(t, models.TeamBlue, g.Turn.Team)
}
