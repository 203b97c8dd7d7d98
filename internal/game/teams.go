// internal/game/teams.go
package game

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/codewords-team/codewords-service/internal/models"
)

// Team is one side of the board: at most one leader, any number of agents,
// and the append-only history of clues it has received.
type Team struct {
	Leader   *models.User   `json:"leader"`
	Agents   []*models.User `json:"agents"`
	ClueList []models.Clue  `json:"clueList"`
}

// NewTeam returns an empty team.
func NewTeam() *Team {
	return &Team{
		Agents:   []*models.User{},
		ClueList: []models.Clue{},
	}
}

// AssignTeam moves a user into the requested team slot. The user is first
// removed from wherever they currently sit (free-player list, a leader slot,
// an agent list), so membership stays exclusive. A taken leader slot is
// overwritten: the previous leader is evicted to the free-player list and a
// log entry records it, but the call still succeeds.
func (g *GameState) AssignTeam(user *models.User, color models.TeamColor, role models.Role) error {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	if color != models.TeamRed && color != models.TeamBlue {
		return fmt.Errorf("%w: color %q", ErrBadAssignment, color)
	}
	if role != models.RoleLeader && role != models.RoleAgent {
		return fmt.Errorf("%w: role %q", ErrBadAssignment, role)
	}
	if user.Color == color && user.Role == role {
		return nil
	}

	g.removeEverywhere(user.ID)

	user.Color = color
	user.Role = role

	team := g.Teams[color]
	if role == models.RoleLeader {
		if prev := team.Leader; prev != nil && prev.ID != user.ID {
			prev.Color = models.TeamNone
			prev.Role = models.RoleNone
			g.Players = append(g.Players, prev)
			g.appendLog("%s replaced %s as %s leader", user.Name, prev.Name, color)
		}
		team.Leader = user
	} else {
		team.Agents = append(team.Agents, user)
	}

	g.appendLog("%s joined team %s as %s", user.Name, color, role)
	return nil
}

// LeaveTeam returns a user to the free-player list. Colorless users and
// spectators are left alone.
func (g *GameState) LeaveTeam(user *models.User) {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	if user.Color == models.TeamNone || user.Role == models.RoleSpectator {
		return
	}

	g.removeEverywhere(user.ID)
	user.Color = models.TeamNone
	user.Role = models.RoleNone
	g.Players = append(g.Players, user)
	g.appendLog("%s left their team", user.Name)
}

// removeEverywhere drops the user from the free-player list, both leader
// slots and both agent lists. Caller must hold Mu.
func (g *GameState) removeEverywhere(id uuid.UUID) {
	g.Players = filterUsers(g.Players, id)
	for _, team := range g.Teams {
		if team.Leader != nil && team.Leader.ID == id {
			team.Leader = nil
		}
		team.Agents = filterUsers(team.Agents, id)
	}
}

// filterUsers returns users without the entry matching id.
func filterUsers(users []*models.User, id uuid.UUID) []*models.User {
	out := users[:0]
	for _, u := range users {
		if u.ID != id {
			out = append(out, u)
		}
	}
	return out
}
