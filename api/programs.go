package api

import (
	"context"

	"github.com/campusdesk/schedkit/core/transport"
)

// Program is a degree program offered by the university.
type Program struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Semesters    int    `json:"semesters"`
}

// ProgramsService wraps the /programs endpoints.
type ProgramsService struct {
	t *transport.Client
}

func (s *ProgramsService) List(ctx context.Context) ([]Program, error) {
	var out []Program
	err := s.t.Get(ctx, "/programs", nil, &out)
	return out, err
}

func (s *ProgramsService) Get(ctx context.Context, id string) (*Program, error) {
	var out Program
	if err := s.t.Get(ctx, resourcePath("/programs", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ProgramsService) Create(ctx context.Context, program Program) (*Program, error) {
	var out Program
	if err := s.t.Post(ctx, "/programs", program, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ProgramsService) Update(ctx context.Context, id string, program Program) (*Program, error) {
	var out Program
	if err := s.t.Put(ctx, resourcePath("/programs", id), program, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ProgramsService) Delete(ctx context.Context, id string) error {
	return s.t.Delete(ctx, resourcePath("/programs", id))
}
