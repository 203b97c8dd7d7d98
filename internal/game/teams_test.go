// internal/game/teams_test.go
package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewords-team/codewords-service/internal/models"
)

func TestAssignTeamMovesUserBetweenSlots(t *testing.T) {
	u := newUser("uma")
	g := NewGameState("1234", models.ModeOnline, u)

	require.NoError(t, g.AssignTeam(u, models.TeamRed, models.RoleLeader))
	require.Same(t, u, g.Teams[models.TeamRed].Leader)
	assert.Empty(t, g.Players)
	assert.Equal(t, models.TeamRed, u.Color)
	assert.Equal(t, models.RoleLeader, u.Role)

	// Re-joining the other team as agent vacates the red leader slot.
	require.NoError(t, g.AssignTeam(u, models.TeamBlue, models.RoleAgent))
	assert.Nil(t, g.Teams[models.TeamRed].Leader)
	require.Len(t, g.Teams[models.TeamBlue].Agents, 1)
	assert.Same(t, u, g.Teams[models.TeamBlue].Agents[0])
	assert.Empty(t, g.Players)
	assert.Equal(t, models.TeamBlue, u.Color)
	assert.Equal(t, models.RoleAgent, u.Role)
}

func TestAssignTeamIsNoopForSameSlot(t *testing.T) {
	u := newUser("uma")
	g := NewGameState("1234", models.ModeOnline, u)
	require.NoError(t, g.AssignTeam(u, models.TeamRed, models.RoleAgent))
	logs := len(g.Messages)

	require.NoError(t, g.AssignTeam(u, models.TeamRed, models.RoleAgent))
	assert.Len(t, g.Teams[models.TeamRed].Agents, 1)
	assert.Equal(t, logs, len(g.Messages), "no-op assignment logs nothing")
}

func TestAssignTeamOverwritesLeaderSlot(t *testing.T) {
	first := newUser("first")
	second := newUser("second")
	g := NewGameState("1234", models.ModeOnline, first)
	g.Players = append(g.Players, second)

	require.NoError(t, g.AssignTeam(first, models.TeamRed, models.RoleLeader))
	require.NoError(t, g.AssignTeam(second, models.TeamRed, models.RoleLeader))

	assert.Same(t, second, g.Teams[models.TeamRed].Leader)
	// The evicted leader goes back to the unassigned pool, not limbo.
	require.Len(t, g.Players, 1)
	assert.Same(t, first, g.Players[0])
	assert.Equal(t, models.TeamNone, first.Color)
	assert.Equal(t, models.RoleNone, first.Role)
}

func TestAssignTeamRejectsBadSlots(t *testing.T) {
	u := newUser("uma")
	g := NewGameState("1234", models.ModeOnline, u)

	require.ErrorIs(t, g.AssignTeam(u, models.TeamNone, models.RoleAgent), ErrBadAssignment)
	require.ErrorIs(t, g.AssignTeam(u, models.TeamRed, models.RoleSpectator), ErrBadAssignment)
	require.Len(t, g.Players, 1, "rejected assignment leaves the user in place")
}

func TestLeaveTeamReturnsUserToPlayers(t *testing.T) {
	leader := newUser("leader")
	agent := newUser("agent")
	g := NewGameState("1234", models.ModeOnline, leader)
	g.Players = append(g.Players, agent)

	require.NoError(t, g.AssignTeam(leader, models.TeamRed, models.RoleLeader))
	require.NoError(t, g.AssignTeam(agent, models.TeamRed, models.RoleAgent))

	g.LeaveTeam(leader)
	assert.Nil(t, g.Teams[models.TeamRed].Leader)
	require.Len(t, g.Players, 1)

	g.LeaveTeam(agent)
	assert.Empty(t, g.Teams[models.TeamRed].Agents)
	require.Len(t, g.Players, 2)
	assert.Equal(t, models.TeamNone, agent.Color)
}

func TestLeaveTeamIgnoresUnassignedUsers(t *testing.T) {
	u := newUser("uma")
	g := NewGameState("1234", models.ModeOnline, u)
	logs := len(g.Messages)

	g.LeaveTeam(u)
	require.Len(t, g.Players, 1, "user must not be duplicated")
	assert.Equal(t, logs, len(g.Messages))
}
