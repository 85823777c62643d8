package api

import (
	"context"
	"net/url"

	"github.com/campusdesk/schedkit/core/transport"
)

// User is a platform account as the admin screens see it.
type User struct {
	ID            string   `json:"id,omitempty"`
	FirstName     string   `json:"firstName"`
	LastName      string   `json:"lastName"`
	Email         string   `json:"email"`
	AccountType   string   `json:"accountType"`
	AccountStatus string   `json:"accountStatus"`
	Roles         []string `json:"roles"`
}

// UsersService wraps the /users endpoints.
type UsersService struct {
	t *transport.Client
}

// List returns accounts, optionally filtered by account type.
func (s *UsersService) List(ctx context.Context, accountType string) ([]User, error) {
	var query url.Values
	if accountType != "" {
		query = url.Values{"accountType": {accountType}}
	}

	var out []User
	err := s.t.Get(ctx, "/users", query, &out)
	return out, err
}

func (s *UsersService) Get(ctx context.Context, id string) (*User, error) {
	var out User
	if err := s.t.Get(ctx, resourcePath("/users", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *UsersService) Update(ctx context.Context, id string, user User) (*User, error) {
	var out User
	if err := s.t.Put(ctx, resourcePath("/users", id), user, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetStatus activates or suspends an account.
func (s *UsersService) SetStatus(ctx context.Context, id, status string) (*User, error) {
	var out User
	payload := map[string]string{"accountStatus": status}
	if err := s.t.Put(ctx, resourcePath("/users", id)+"/status", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *UsersService) Delete(ctx context.Context, id string) error {
	return s.t.Delete(ctx, resourcePath("/users", id))
}
