// internal/handlers/messages.go
package handlers

import (
	"encoding/json"

	log "github.com/sirupsen/logrus"

	"github.com/codewords-team/codewords-service/internal/game"
	"github.com/codewords-team/codewords-service/internal/models"
)

// Client event types. One JSON envelope per event, discriminated by "type".
const (
	EvtCreateRoom = "create_room"
	EvtJoinRoom   = "join_room"
	EvtLeaveRoom  = "leave_room"
	EvtJoinTeam   = "join_team"
	EvtLeaveTeam  = "leave_team"
	EvtStartGame  = "start_game"
	EvtSendClue   = "send_clue"
	EvtGuessCard  = "guess_card"
	EvtNextTurn   = "next_turn"
	EvtEndGame    = "end_game"
	EvtResetGame  = "reset_game"
	EvtChat       = "chat"
)

// Server message types.
const (
	MsgState    = "state"
	MsgRedirect = "redirect_game"
	MsgGameEnd  = "game_end"
	MsgRoomCode = "room_code"
	MsgError    = "error"
)

// ClientMessage is the incoming WebSocket envelope. Only the fields
// relevant to the given type are populated.
type ClientMessage struct {
	Type string `json:"type"`

	// Name lets a client pick a display name on create_room/join_room.
	Name string `json:"name,omitempty"`
	Code string `json:"code,omitempty"`
	Mode string `json:"mode,omitempty"`

	Color models.TeamColor `json:"color,omitempty"`
	Role  models.Role      `json:"role,omitempty"`

	Clue *models.Clue `json:"clue,omitempty"`

	// Word names the board card for guess_card.
	Word string `json:"word,omitempty"`

	Message string `json:"message,omitempty"`
}

// ServerMessage is the outgoing WebSocket envelope.
type ServerMessage struct {
	Type   string           `json:"type"`
	State  *game.GameState  `json:"state,omitempty"`
	Code   string           `json:"code,omitempty"`
	Winner models.TeamColor `json:"winner,omitempty"`
	Error  string           `json:"error,omitempty"`
}

// marshalMessage serializes a ServerMessage. Logs a warning and returns
// empty JSON "{}" on marshalling error so downstream writes never crash.
func marshalMessage(msg ServerMessage) []byte {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Warnf("failed to marshal server message type %s: %v", msg.Type, err)
		return []byte("{}")
	}
	return data
}
