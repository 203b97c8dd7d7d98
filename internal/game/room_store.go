// internal/game/room_store.go
package game

import (
	"math/rand"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/codewords-team/codewords-service/internal/models"
)

// RoomStore manages active in-memory rooms keyed by their join code.
// It provides thread-safe access to create, retrieve and delete rooms; all
// state dies with the process.
type RoomStore struct {
	mu    sync.Mutex
	rooms map[string]*GameState
	gen   BoardGenerator
}

// NewRoomStore initializes an empty store. Rooms it creates deal boards
// with gen; pass nil for the default word-pool generator.
func NewRoomStore(gen BoardGenerator) *RoomStore {
	if gen == nil {
		gen = NewWordBoardGenerator()
	}
	return &RoomStore{
		rooms: make(map[string]*GameState),
		gen:   gen,
	}
}

// Create registers a fresh room under code with the creator as its sole
// player. Returns ErrRoomExists if the code is taken; the caller retries
// with a new code rather than overwriting.
func (s *RoomStore) Create(code string, mode models.GameMode, creator *models.User) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.rooms[code]; exists {
		return nil, ErrRoomExists
	}
	g := NewGameState(code, mode, creator)
	g.Gen = s.gen
	s.rooms[code] = g
	return g, nil
}

// Get retrieves a room by code. It never fails; absent codes return false.
func (s *RoomStore) Get(code string) (*GameState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.rooms[code]
	return g, ok
}

// Join adds a user to the room's free-player list. The add is idempotent:
// a user already present anywhere in the room is left where they are.
// The store lock is held for the whole call so a join can never land on a
// room that a concurrent Leave is about to destroy.
func (s *RoomStore) Join(code string, user *models.User) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.rooms[code]
	if !ok {
		return nil, ErrRoomNotFound
	}

	g.Mu.Lock()
	defer g.Mu.Unlock()
	if !g.contains(user.ID) {
		g.Players = append(g.Players, user)
	}
	return g, nil
}

// Leave removes a user from whichever slot holds them. The last user out
// destroys the room immediately; there is no grace period. The emptiness
// check and the map delete happen under the store lock, atomically with
// respect to Join, so only a room with zero users is ever deleted.
func (s *RoomStore) Leave(code string, user *models.User) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.rooms[code]
	if !ok {
		return nil, ErrRoomNotFound
	}

	g.Mu.Lock()
	g.removeEverywhere(user.ID)
	g.appendLog("%s left the room", user.Name)
	empty := g.empty()
	g.Mu.Unlock()

	if empty {
		delete(s.rooms, code)
	}
	return g, nil
}

// Len reports the number of active rooms.
func (s *RoomStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rooms)
}

// GenerateCode returns a random four-digit room code. Uniqueness is the
// caller's job: attempt Create and regenerate on ErrRoomExists.
func GenerateCode() string {
	return strconv.Itoa(1000 + rand.Intn(9000))
}

// contains reports whether the user occupies any slot in the room.
// Caller must hold Mu.
func (g *GameState) contains(id uuid.UUID) bool {
	for _, u := range g.Players {
		if u.ID == id {
			return true
		}
	}
	for _, t := range g.Teams {
		if t.Leader != nil && t.Leader.ID == id {
			return true
		}
		for _, u := range t.Agents {
			if u.ID == id {
				return true
			}
		}
	}
	return false
}
