// Package api contains the domain clients of the scheduling platform. Every
// call goes through the authenticated transport; no client here handles
// credentials itself.
package api

import (
	"net/url"

	"github.com/campusdesk/schedkit/core/transport"
)

// Client bundles the per-resource services.
type Client struct {
	Programs   *ProgramsService
	Rooms      *RoomsService
	Modules    *ModulesService
	Users      *UsersService
	Timetables *TimetablesService
}

// New creates the domain clients over the given transport.
func New(t *transport.Client) *Client {
	return &Client{
		Programs:   &ProgramsService{t: t},
		Rooms:      &RoomsService{t: t},
		Modules:    &ModulesService{t: t},
		Users:      &UsersService{t: t},
		Timetables: &TimetablesService{t: t},
	}
}

func resourcePath(base, id string) string {
	return base + "/" + url.PathEscape(id)
}
