// internal/handlers/room_ws.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"

	"github.com/codewords-team/codewords-service/internal/game"
	"github.com/codewords-team/codewords-service/internal/middleware"
	"github.com/codewords-team/codewords-service/internal/models"
)

// createRoomAttempts bounds the collision retry loop for room codes.
const createRoomAttempts = 100

// playerConn is a single user's live WebSocket presence. roomCode tracks
// the room this connection currently belongs to ("" when in none).
type playerConn struct {
	user     *models.User
	roomCode string
	outChan  chan []byte
	cancel   context.CancelFunc
}

// send pushes preserialized bytes onto the connection's out channel without
// blocking. Slow consumers drop messages rather than stall the room.
func (pc *playerConn) send(data []byte) {
	select {
	case pc.outChan <- data:
	default:
	}
}

// sendError ships an error envelope to this connection only. Errors are
// never broadcast to the rest of the room.
func (pc *playerConn) sendError(msg string) {
	pc.send(marshalMessage(ServerMessage{Type: MsgError, Error: msg}))
}

// RoomWSHandler upgrades the HTTP connection to a WebSocket and runs the
// room event loop for one client: resolve the guest identity, then read
// envelopes, apply them to the room store / game engine, and broadcast the
// resulting state to every member of the room.
func RoomWSHandler(logger *logrus.Logger, gs *GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		remoteAddr := r.RemoteAddr

		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{"codewords"},
			OriginPatterns: []string{"*"}, // Adjust in production
		})
		if err != nil {
			logger.Warnf("websocket accept error: %v", err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "handler finished")

		if c.Subprotocol() != "codewords" {
			c.Close(BadSubprotocolError, "client must speak the codewords subprotocol")
			return
		}

		user, err := EnsureGuestUser(w, r)
		if err != nil {
			logger.Warnf("guest auth failed for %s: %v", remoteAddr, err)
			c.Close(InvalidAuthTokenError, "authentication failed")
			return
		}
		middleware.LogWebSocketConnect(logger, remoteAddr, r.URL.Path)

		ctx, cancel := context.WithCancel(r.Context())
		pc := &playerConn{
			user:    user,
			outChan: make(chan []byte, 16),
			cancel:  cancel,
		}

		go writePump(ctx, c, pc, logger)

		readErr := readPump(ctx, c, gs, pc, logger)

		// A dropped connection is an ordinary leave.
		gs.leaveCurrentRoom(pc, logger)
		cancel()
		middleware.LogWebSocketDisconnect(logger, remoteAddr, r.URL.Path, readErr)
	}
}

// writePump drains the connection's out channel onto the wire.
func writePump(ctx context.Context, c *websocket.Conn, pc *playerConn, logger *logrus.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case data, ok := <-pc.outChan:
			if !ok {
				return
			}
			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := c.Write(writeCtx, websocket.MessageText, data)
			cancel()
			if err != nil {
				logger.Debugf("write failed for user %s: %v", pc.user.ID, err)
				return
			}
		}
	}
}

// readPump reads and dispatches client envelopes until the connection dies.
func readPump(ctx context.Context, c *websocket.Conn, gs *GameServer, pc *playerConn, logger *logrus.Logger) error {
	for {
		typ, data, err := c.Read(ctx)
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return nil
			}
			return err
		}
		if typ != websocket.MessageText {
			continue
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Warnf("invalid json from user %s: %v", pc.user.ID, err)
			pc.sendError("invalid JSON")
			continue
		}

		gs.handleMessage(&msg, pc, logger)
	}
}

// handleMessage applies one client event. Engine and store rejections are
// surfaced to the sender only; successful mutations are broadcast to the
// whole room as a fresh state snapshot.
func (gs *GameServer) handleMessage(msg *ClientMessage, pc *playerConn, logger *logrus.Logger) {
	switch msg.Type {
	case EvtCreateRoom:
		gs.handleCreateRoom(msg, pc, logger)
	case EvtJoinRoom:
		gs.handleJoinRoom(msg, pc, logger)
	case EvtLeaveRoom:
		gs.leaveCurrentRoom(pc, logger)

	case EvtJoinTeam:
		g, ok := gs.currentRoom(pc)
		if !ok {
			return
		}
		if err := g.AssignTeam(pc.user, msg.Color, msg.Role); err != nil {
			pc.sendError(err.Error())
			return
		}
		gs.broadcastState(g)
		gs.publishAction(g.Code, EvtJoinTeam, pc.user.ID)

	case EvtLeaveTeam:
		g, ok := gs.currentRoom(pc)
		if !ok {
			return
		}
		g.LeaveTeam(pc.user)
		gs.broadcastState(g)
		gs.publishAction(g.Code, EvtLeaveTeam, pc.user.ID)

	case EvtStartGame:
		g, ok := gs.currentRoom(pc)
		if !ok {
			return
		}
		if err := g.Start(); err != nil {
			pc.sendError(startErrorText(err))
			return
		}
		gs.broadcastState(g)
		gs.broadcastRaw(g.Code, marshalMessage(ServerMessage{Type: MsgRedirect}))
		gs.publishAction(g.Code, EvtStartGame, pc.user.ID)

	case EvtSendClue:
		g, ok := gs.currentRoom(pc)
		if !ok {
			return
		}
		if msg.Clue == nil || msg.Clue.Word == "" {
			pc.sendError("clue is missing")
			return
		}
		if err := g.SetClue(*msg.Clue); err != nil {
			pc.sendError(err.Error())
			return
		}
		gs.broadcastState(g)
		gs.publishAction(g.Code, EvtSendClue, pc.user.ID)

	case EvtGuessCard:
		g, ok := gs.currentRoom(pc)
		if !ok {
			return
		}
		outcome, err := g.RevealCard(msg.Word)
		if err != nil {
			pc.sendError(err.Error())
			return
		}
		if outcome != game.OutcomeNone {
			g.AppendChat(models.Message{
				Team:    models.TeamNone,
				Message: pc.user.Name + " revealed " + msg.Word,
				IsLog:   true,
			})
		}
		gs.broadcastState(g)
		gs.publishAction(g.Code, EvtGuessCard, pc.user.ID)

	case EvtNextTurn:
		g, ok := gs.currentRoom(pc)
		if !ok {
			return
		}
		if err := g.NextTurn(); err != nil {
			pc.sendError(err.Error())
			return
		}
		gs.broadcastState(g)
		gs.publishAction(g.Code, EvtNextTurn, pc.user.ID)

	case EvtResetGame:
		g, ok := gs.currentRoom(pc)
		if !ok {
			return
		}
		if err := g.Reset(); err != nil {
			pc.sendError(err.Error())
			return
		}
		gs.broadcastState(g)
		gs.publishAction(g.Code, EvtResetGame, pc.user.ID)

	case EvtEndGame:
		g, ok := gs.currentRoom(pc)
		if !ok {
			return
		}
		if err := g.EndGame(msg.Color); err != nil {
			pc.sendError(err.Error())
			return
		}
		gs.broadcastState(g)
		gs.publishAction(g.Code, EvtEndGame, pc.user.ID)

	case EvtChat:
		g, ok := gs.currentRoom(pc)
		if !ok || msg.Message == "" {
			return
		}
		g.AppendChat(models.Message{
			Team:    pc.user.Color,
			User:    pc.user.Name,
			Message: msg.Message,
		})
		gs.broadcastState(g)
		gs.publishAction(g.Code, EvtChat, pc.user.ID)

	default:
		logger.Warnf("unknown message type %q from user %s", msg.Type, pc.user.ID)
		pc.sendError("unknown message type")
	}
}

// handleCreateRoom allocates a fresh room code, retrying on the rare
// collision, and makes the sender its sole player.
func (gs *GameServer) handleCreateRoom(msg *ClientMessage, pc *playerConn, logger *logrus.Logger) {
	if pc.roomCode != "" {
		pc.sendError("already in a room")
		return
	}
	if msg.Name != "" {
		pc.user.Name = msg.Name
	}
	mode := models.ModeOnline
	if msg.Mode == string(models.ModeTutorial) {
		mode = models.ModeTutorial
	}

	for i := 0; i < createRoomAttempts; i++ {
		code := game.GenerateCode()
		g, err := gs.RoomStore.Create(code, mode, pc.user)
		if errors.Is(err, game.ErrRoomExists) {
			continue
		}
		if err != nil {
			pc.sendError(err.Error())
			return
		}

		g.OnGameEnd = gs.notifyGameEnd
		pc.roomCode = code
		gs.register(code, pc)
		logger.Infof("user %s (%s) created room %s", pc.user.ID, pc.user.Name, code)

		pc.send(marshalMessage(ServerMessage{Type: MsgRoomCode, Code: code}))
		gs.broadcastState(g)
		gs.publishAction(code, EvtCreateRoom, pc.user.ID)
		return
	}
	pc.sendError("could not allocate a room code")
}

// handleJoinRoom adds the sender to an existing room.
func (gs *GameServer) handleJoinRoom(msg *ClientMessage, pc *playerConn, logger *logrus.Logger) {
	if pc.roomCode != "" {
		pc.sendError("already in a room")
		return
	}
	if msg.Name != "" {
		pc.user.Name = msg.Name
	}

	g, err := gs.RoomStore.Join(msg.Code, pc.user)
	if err != nil {
		pc.sendError("room code does not exist")
		return
	}

	pc.roomCode = msg.Code
	gs.register(msg.Code, pc)
	logger.Infof("user %s (%s) joined room %s", pc.user.ID, pc.user.Name, msg.Code)

	gs.broadcastState(g)
	gs.publishAction(msg.Code, EvtJoinRoom, pc.user.ID)
}

// leaveCurrentRoom detaches the connection from its room, if any, and
// broadcasts the shrunken state to whoever remains. The store destroys the
// room when the last user leaves.
func (gs *GameServer) leaveCurrentRoom(pc *playerConn, logger *logrus.Logger) {
	code := pc.roomCode
	if code == "" {
		return
	}
	pc.roomCode = ""
	gs.unregister(code, pc.user.ID)

	g, err := gs.RoomStore.Leave(code, pc.user)
	if err != nil {
		return
	}
	pc.user.Color = models.TeamNone
	pc.user.Role = models.RoleNone
	logger.Infof("user %s (%s) left room %s", pc.user.ID, pc.user.Name, code)

	gs.broadcastState(g)
	gs.publishAction(code, EvtLeaveRoom, pc.user.ID)
}

// currentRoom resolves the connection's room, erroring to the sender when
// it has none.
func (gs *GameServer) currentRoom(pc *playerConn) (*game.GameState, bool) {
	if pc.roomCode == "" {
		pc.sendError("not in a room")
		return nil, false
	}
	g, ok := gs.RoomStore.Get(pc.roomCode)
	if !ok {
		pc.sendError("room no longer exists")
		return nil, false
	}
	return g, true
}

// startErrorText maps engine start failures to the user-facing wording.
func startErrorText(err error) string {
	if errors.Is(err, game.ErrUnassignedPlayers) {
		return "all players must join a team before starting"
	}
	return err.Error()
}
