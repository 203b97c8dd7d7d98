// internal/game/game.go
package game

import (
	"fmt"
	"sync"

	"github.com/codewords-team/codewords-service/internal/models"
)

// Phase is the explicit state of a room's turn machine. Transitions are
// validated against it before any mutation happens, so a rejected event
// never leaves a half-mutated state behind.
type Phase string

const (
	// PhaseLobby is the pre-game phase: users join the room and pick teams.
	PhaseLobby Phase = "lobby"
	// PhaseLeaderClue means the active team's leader must supply a clue.
	PhaseLeaderClue Phase = "leader_clue"
	// PhaseAgentGuess means the active team's agents may reveal cards.
	PhaseAgentGuess Phase = "agent_guess"
	// PhaseGameOver is terminal until Reset.
	PhaseGameOver Phase = "game_over"
)

// Turn pairs the active team with the active role; together with Phase it
// determines whose action is currently valid.
type Turn struct {
	Team models.TeamColor `json:"team"`
	Role models.Role      `json:"role"`
}

// RevealOutcome tells the transport what a card reveal led to.
type RevealOutcome string

const (
	// OutcomeNone means nothing changed (the card was already flipped).
	OutcomeNone RevealOutcome = "none"
	// OutcomeContinue means the active team may keep guessing.
	OutcomeContinue RevealOutcome = "continue"
	// OutcomeTurnOver means the turn passed to the other team.
	OutcomeTurnOver RevealOutcome = "turn_over"
	// OutcomeGameOver means the reveal ended the game.
	OutcomeGameOver RevealOutcome = "game_over"
)

// OnGameEndFunc notifies the transport that a game finished, so it can push
// the winner to every member of the room.
type OnGameEndFunc func(code string, winner models.TeamColor)

// GameState holds the entire authoritative state for one room in memory.
// Every mutating operation locks Mu, so at most one mutation runs per room
// at a time; different rooms never contend.
type GameState struct {
	Code string          `json:"code"`
	Mode models.GameMode `json:"mode"`

	// Players holds users that have not joined a team yet. A user lives in
	// exactly one place: here, in a leader slot, or in an agent list.
	Players  []*models.User             `json:"players"`
	Teams    map[models.TeamColor]*Team `json:"teams"`
	Cards    []*models.Card             `json:"cards"`
	Turn     Turn                       `json:"turn"`
	Clue     *models.Clue               `json:"clue"`
	Messages []models.Message           `json:"messages"`

	Phase         Phase            `json:"phase"`
	IsGameStarted bool             `json:"isGameStarted"`
	Winner        models.TeamColor `json:"winner,omitempty"`

	// RevealCount is the number of cards flipped during the current clue
	// cycle, used to enforce the clue-count-plus-one guess limit. It is
	// per-room state, reset on every clue and turn change.
	RevealCount int `json:"revealCount"`

	// Gen produces a fresh board on Start and Reset. Tests inject stubs.
	Gen BoardGenerator `json:"-"`

	// OnGameEnd is invoked with the winning team when the game ends.
	// If nil, no notification is sent.
	OnGameEnd OnGameEndFunc `json:"-"`

	Mu sync.Mutex `json:"-"`
}

// NewGameState builds the initial state for a freshly created room: the
// creator is the sole player, both teams are empty, the board is empty and
// the turn is a placeholder until the first board generation.
func NewGameState(code string, mode models.GameMode, creator *models.User) *GameState {
	return &GameState{
		Code:    code,
		Mode:    mode,
		Players: []*models.User{creator},
		Teams: map[models.TeamColor]*Team{
			models.TeamRed:  NewTeam(),
			models.TeamBlue: NewTeam(),
		},
		Cards:    []*models.Card{},
		Turn:     Turn{Team: models.TeamRed, Role: models.RoleLeader},
		Messages: []models.Message{},
		Phase:    PhaseLobby,
		Gen:      NewWordBoardGenerator(),
	}
}

// appendLog pushes a system entry onto the shared message feed.
// Caller must hold Mu.
func (g *GameState) appendLog(format string, args ...interface{}) {
	g.Messages = append(g.Messages, models.Message{
		Team:    models.TeamNone,
		Message: fmt.Sprintf(format, args...),
		IsLog:   true,
	})
}

// AppendChat adds a player chat message to the room feed.
func (g *GameState) AppendChat(msg models.Message) {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	g.Messages = append(g.Messages, msg)
}

// Start generates the first board and opens the clue phase. It rejects a
// start while the game is already running, and, matching the room flow,
// while any user has not joined a team.
func (g *GameState) Start() error {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	if g.Phase != PhaseLobby {
		return fmt.Errorf("%w: game already started", ErrInvalidTransition)
	}
	if len(g.Players) > 0 {
		return ErrUnassignedPlayers
	}

	g.dealBoard()
	g.IsGameStarted = true
	g.appendLog("Game started, %s team goes first", g.Turn.Team)
	return nil
}

// Reset throws the board away and starts a fresh game with a possibly new
// starting team. Players, team rosters and the message history survive.
func (g *GameState) Reset() error {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	if g.Phase == PhaseLobby {
		return fmt.Errorf("%w: game has not started", ErrInvalidTransition)
	}

	g.dealBoard()
	g.Winner = models.TeamNone
	g.appendLog("New game, %s team goes first", g.Turn.Team)
	return nil
}

// dealBoard installs a freshly generated board and resets the turn machine
// to the leader-clue phase. Caller must hold Mu.
func (g *GameState) dealBoard() {
	cards, starting := g.Gen.Generate()
	g.Cards = cards
	g.Turn = Turn{Team: starting, Role: models.RoleLeader}
	g.Clue = nil
	g.RevealCount = 0
	g.Phase = PhaseLeaderClue
}

// SetClue records the active leader's clue, appends it to that team's clue
// history and hands the turn to the agents. The role advance happens here;
// the transport never issues a separate turn change after a clue.
func (g *GameState) SetClue(clue models.Clue) error {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	if g.Phase != PhaseLeaderClue {
		return fmt.Errorf("%w: clue only valid during the leader phase", ErrInvalidTransition)
	}

	c := clue
	g.Clue = &c
	g.Teams[g.Turn.Team].ClueList = append(g.Teams[g.Turn.Team].ClueList, c)
	g.RevealCount = 0
	g.Turn.Role = models.RoleAgent
	g.Phase = PhaseAgentGuess
	g.appendLog("Clue for team %s: %q (%d)", g.Turn.Team, c.Word, c.Count)
	return nil
}

// RevealCard flips the named card and applies the outcome: a black card
// ends the game for the opposing team, a wrong-color or neutral card passes
// the turn, and an own-color card either wins the game, keeps the guessing
// open, or exhausts the clue-count-plus-one allowance.
func (g *GameState) RevealCard(word string) (RevealOutcome, error) {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	if g.Phase != PhaseAgentGuess {
		return OutcomeNone, fmt.Errorf("%w: reveal only valid during the guess phase", ErrInvalidTransition)
	}

	card := g.findCard(word)
	if card == nil {
		return OutcomeNone, fmt.Errorf("%w: %q", ErrUnknownCard, word)
	}
	if card.IsFlipped {
		// Two agents clicking the same card must not burn a second guess.
		return OutcomeNone, nil
	}

	card.IsFlipped = true
	g.RevealCount++

	active := g.Turn.Team
	switch {
	case card.Color == models.CardBlack:
		g.appendLog("Team %s revealed the black card", active)
		g.endGame(active.Opposite())
		return OutcomeGameOver, nil

	case !card.BelongsTo(active):
		g.appendLog("Team %s revealed %q and lost the turn", active, card.Word)
		g.passTurn()
		return OutcomeTurnOver, nil
	}

	// Own-color card.
	if g.remainingFor(active) == 0 {
		g.appendLog("Team %s revealed their last card", active)
		g.endGame(active)
		return OutcomeGameOver, nil
	}
	if g.Clue != nil && g.RevealCount >= g.Clue.Count+1 {
		g.appendLog("Team %s reached the guess limit", active)
		g.passTurn()
		return OutcomeTurnOver, nil
	}
	return OutcomeContinue, nil
}

// NextTurn lets the active agents give up the rest of their guesses. It is
// only valid while agents hold the turn; the leader-to-agent advance happens
// exclusively through SetClue.
func (g *GameState) NextTurn() error {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	if g.Phase != PhaseAgentGuess {
		return fmt.Errorf("%w: turn change only valid during the guess phase", ErrInvalidTransition)
	}
	g.passTurn()
	return nil
}

// passTurn clears the clue and hands the board to the other team's leader.
// Caller must hold Mu.
func (g *GameState) passTurn() {
	g.Clue = nil
	g.RevealCount = 0
	g.Turn = Turn{Team: g.Turn.Team.Opposite(), Role: models.RoleLeader}
	g.Phase = PhaseLeaderClue
	g.appendLog("Team %s's leader is up", g.Turn.Team)
}

// EndGame force-finishes the current game with the given winner. It backs
// the end_game client event, which lets a room concede or abandon a match
// without playing it out.
func (g *GameState) EndGame(winner models.TeamColor) error {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	if winner != models.TeamRed && winner != models.TeamBlue {
		return fmt.Errorf("%w: winner must be a team", ErrBadAssignment)
	}
	if g.Phase != PhaseLeaderClue && g.Phase != PhaseAgentGuess {
		return fmt.Errorf("%w: no game in progress", ErrInvalidTransition)
	}
	g.endGame(winner)
	return nil
}

// endGame marks the room terminal and notifies the transport.
// Caller must hold Mu.
func (g *GameState) endGame(winner models.TeamColor) {
	g.Winner = winner
	g.Phase = PhaseGameOver
	g.appendLog("Team %s wins", winner)
	if g.OnGameEnd != nil {
		g.OnGameEnd(g.Code, winner)
	}
}

// findCard returns the board card with the given word, or nil.
// Caller must hold Mu.
func (g *GameState) findCard(word string) *models.Card {
	for _, c := range g.Cards {
		if c.Word == word {
			return c
		}
	}
	return nil
}

// remainingFor counts the unflipped cards still belonging to a team.
// Caller must hold Mu.
func (g *GameState) remainingFor(team models.TeamColor) int {
	n := 0
	for _, c := range g.Cards {
		if !c.IsFlipped && c.BelongsTo(team) {
			n++
		}
	}
	return n
}

// empty reports whether no user remains anywhere in the room, counting the
// free-player list and both team rosters. Caller must hold Mu.
func (g *GameState) empty() bool {
	if len(g.Players) > 0 {
		return false
	}
	for _, t := range g.Teams {
		if t.Leader != nil || len(t.Agents) > 0 {
			return false
		}
	}
	return true
}
