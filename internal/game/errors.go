package game

import "errors"

// Sentinel errors returned by the room store and the game engine. All of
// them are recoverable: the transport surfaces them to the offending client
// and broadcasts nothing.
var (
	// ErrRoomNotFound indicates a lookup or mutation against a code that is
	// not registered.
	ErrRoomNotFound = errors.New("room not found")

	// ErrRoomExists indicates a code collision on room creation. Callers
	// retry with a fresh code.
	ErrRoomExists = errors.New("room already exists")

	// ErrInvalidTransition indicates an engine event issued outside its
	// valid phase, e.g. a clue sent while agents are guessing.
	ErrInvalidTransition = errors.New("invalid game state transition")

	// ErrUnknownCard indicates a reveal referencing a word that is not on
	// the current board.
	ErrUnknownCard = errors.New("card not on board")

	// ErrUnassignedPlayers indicates a game start attempt while some users
	// have not joined a team.
	ErrUnassignedPlayers = errors.New("all players must join a team")

	// ErrBadAssignment indicates a team join with a color or role that does
	// not name a real team slot.
	ErrBadAssignment = errors.New("invalid team or role")
)
