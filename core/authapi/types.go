package authapi

import (
	"strings"

	"github.com/campusdesk/schedkit/core/credstore"
	"github.com/campusdesk/schedkit/core/session"
)

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the payload for POST /auth/register. AccountType selects
// the role-specific registration flow on the server.
type RegisterRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	AccountType string `json:"accountType"`
}

// refreshRequest is the payload for POST /auth/refresh-token.
type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// logoutRequest is the payload for POST /auth/logout.
type logoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// AuthResponse is the shape shared by login, registration and refresh
// responses: a credential pair plus the identity fields of the account.
type AuthResponse struct {
	AccessToken   string   `json:"accessToken"`
	RefreshToken  string   `json:"refreshToken"`
	ID            string   `json:"id"`
	FirstName     string   `json:"firstName"`
	LastName      string   `json:"lastName"`
	Email         string   `json:"email"`
	AccountType   string   `json:"accountType"`
	AccountStatus string   `json:"accountStatus"`
	Roles         []string `json:"roles"`
}

// Pair returns the credential pair carried by the response.
func (r *AuthResponse) Pair() credstore.Pair {
	return credstore.Pair{Access: r.AccessToken, Refresh: r.RefreshToken}
}

// Identity converts the response's account fields into a session identity.
func (r *AuthResponse) Identity() session.Identity {
	return session.Identity{
		ID:            r.ID,
		DisplayName:   strings.TrimSpace(r.FirstName + " " + r.LastName),
		Email:         r.Email,
		AccountType:   r.AccountType,
		AccountStatus: r.AccountStatus,
		Roles:         r.Roles,
	}
}

// LogoutResponse is the shape of POST /auth/logout responses.
type LogoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
