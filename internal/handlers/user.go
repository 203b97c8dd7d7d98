// internal/handlers/user.go
package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/codewords-team/codewords-service/internal/auth"
	"github.com/codewords-team/codewords-service/internal/models"
)

// EnsureGuestUser resolves the connecting client to a guest identity. A
// valid auth_token cookie keeps the same id and name across page loads;
// otherwise a fresh guest is minted and the cookie set. No user record is
// stored anywhere; the signed token itself is the identity.
func EnsureGuestUser(w http.ResponseWriter, r *http.Request) (*models.User, error) {
	cookieHeader := r.Header.Get("Cookie")
	if strings.Contains(cookieHeader, "auth_token=") {
		token := extractCookieToken(cookieHeader, "auth_token")
		idStr, name, err := auth.AuthenticateSessionToken(token)
		if err == nil {
			id, parseErr := uuid.Parse(idStr)
			if parseErr == nil {
				return newGuest(id, name), nil
			}
		}
		// Bad or stale token: fall through and mint a new guest.
	}

	id := uuid.New()
	name := "Guest-" + id.String()[:4]
	token, err := auth.CreateSessionToken(id.String(), name)
	if err != nil {
		return nil, fmt.Errorf("failed to create guest session: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		HttpOnly: true,
		Path:     "/",
	})
	return newGuest(id, name), nil
}

func newGuest(id uuid.UUID, name string) *models.User {
	return &models.User{
		ID:    id,
		Name:  name,
		Color: models.TeamNone,
		Role:  models.RoleNone,
	}
}
