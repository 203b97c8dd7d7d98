package models

import "github.com/google/uuid"

// TeamColor identifies one of the two playing teams. TeamNone marks users
// that have not picked a side yet.
type TeamColor string

const (
	TeamRed  TeamColor = "red"
	TeamBlue TeamColor = "blue"
	TeamNone TeamColor = "none"
)

// Opposite returns the other playing team. TeamNone maps to itself.
func (t TeamColor) Opposite() TeamColor {
	switch t {
	case TeamRed:
		return TeamBlue
	case TeamBlue:
		return TeamRed
	default:
		return TeamNone
	}
}

// Role is what a user does inside a team.
type Role string

const (
	RoleLeader    Role = "leader"
	RoleAgent     Role = "agent"
	RoleSpectator Role = "spectator"
	RoleNone      Role = "none"
)

// GameMode distinguishes a regular online room from the guided tutorial.
type GameMode string

const (
	ModeOnline   GameMode = "online"
	ModeTutorial GameMode = "tutorial"
)

// User is a connected player as seen by every member of a room.
type User struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Color TeamColor `json:"color"`
	Role  Role      `json:"role"`
}
