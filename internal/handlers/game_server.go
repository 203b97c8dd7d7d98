// internal/handlers/game_server.go
package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/codewords-team/codewords-service/internal/cache"
	"github.com/codewords-team/codewords-service/internal/game"
	"github.com/codewords-team/codewords-service/internal/models"
)

// GameServer is a high-level struct that holds the room store plus the live
// WebSocket connections grouped by room, so mutations can be broadcast to
// every member.
type GameServer struct {
	RoomStore *game.RoomStore

	mu    sync.Mutex
	conns map[string]map[uuid.UUID]*playerConn // room code -> user id -> conn
}

// NewGameServer wires an empty room store and connection registry.
func NewGameServer() *GameServer {
	return &GameServer{
		RoomStore: game.NewRoomStore(nil),
		conns:     make(map[string]map[uuid.UUID]*playerConn),
	}
}

// register adds a connection to a room's broadcast set.
func (gs *GameServer) register(code string, pc *playerConn) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	room, ok := gs.conns[code]
	if !ok {
		room = make(map[uuid.UUID]*playerConn)
		gs.conns[code] = room
	}
	room[pc.user.ID] = pc
}

// unregister removes a connection from a room's broadcast set, dropping the
// set once it is empty.
func (gs *GameServer) unregister(code string, userID uuid.UUID) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	if room, ok := gs.conns[code]; ok {
		delete(room, userID)
		if len(room) == 0 {
			delete(gs.conns, code)
		}
	}
}

// broadcastRaw pushes preserialized bytes to every member of a room.
func (gs *GameServer) broadcastRaw(code string, data []byte) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	for _, pc := range gs.conns[code] {
		pc.send(data)
	}
}

// broadcastState serializes the room's full state under its lock and sends
// it to every member. Clients treat each state message as a full refresh.
func (gs *GameServer) broadcastState(g *game.GameState) {
	g.Mu.Lock()
	data := marshalMessage(ServerMessage{Type: MsgState, State: g})
	code := g.Code
	g.Mu.Unlock()
	gs.broadcastRaw(code, data)
}

// notifyGameEnd is installed as each room's OnGameEnd callback. It runs
// with the room lock held, so it only ships the small winner envelope and
// never touches room state.
func (gs *GameServer) notifyGameEnd(code string, winner models.TeamColor) {
	gs.broadcastRaw(code, marshalMessage(ServerMessage{Type: MsgGameEnd, Winner: winner}))
}

// publishAction queues a room event for external consumers. Fire and
// forget: a dead Redis never blocks or fails a game action.
func (gs *GameServer) publishAction(code, action string, actorID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := cache.PublishRoomAction(ctx, cache.RoomActionRecord{
		RoomCode:    code,
		ActionType:  action,
		ActorUserID: actorID,
		Timestamp:   time.Now().Unix(),
	}); err != nil {
		log.Warnf("failed to publish room action %s for room %s: %v", action, code, err)
	}
}

// PingHandler responds 200 OK for health checks.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}
