package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/campusdesk/schedkit/core/transport"
)

// Room is a teaching room with its booking-relevant attributes.
type Room struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Building string `json:"building"`
	Capacity int    `json:"capacity"`
	Type     string `json:"type"` // e.g. "LECTURE_HALL", "LAB", "SEMINAR"
}

// RoomsService wraps the /rooms endpoints.
type RoomsService struct {
	t *transport.Client
}

// List returns rooms, optionally filtered by minimum capacity. Zero means no
// filter.
func (s *RoomsService) List(ctx context.Context, minCapacity int) ([]Room, error) {
	var query url.Values
	if minCapacity > 0 {
		query = url.Values{"minCapacity": {strconv.Itoa(minCapacity)}}
	}

	var out []Room
	err := s.t.Get(ctx, "/rooms", query, &out)
	return out, err
}

func (s *RoomsService) Get(ctx context.Context, id string) (*Room, error) {
	var out Room
	if err := s.t.Get(ctx, resourcePath("/rooms", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *RoomsService) Create(ctx context.Context, room Room) (*Room, error) {
	var out Room
	if err := s.t.Post(ctx, "/rooms", room, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *RoomsService) Update(ctx context.Context, id string, room Room) (*Room, error) {
	var out Room
	if err := s.t.Put(ctx, resourcePath("/rooms", id), room, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *RoomsService) Delete(ctx context.Context, id string) error {
	return s.t.Delete(ctx, resourcePath("/rooms", id))
}
