package api

import (
	"context"

	"github.com/campusdesk/schedkit/core/transport"
)

// Module is a course unit taught within a program.
type Module struct {
	ID         string `json:"id,omitempty"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	Semester   int    `json:"semester"`
	Credits    int    `json:"credits"`
	ProgramID  string `json:"programId"`
	LecturerID string `json:"lecturerId,omitempty"`
}

// ModulesService wraps the /modules endpoints.
type ModulesService struct {
	t *transport.Client
}

func (s *ModulesService) List(ctx context.Context) ([]Module, error) {
	var out []Module
	err := s.t.Get(ctx, "/modules", nil, &out)
	return out, err
}

func (s *ModulesService) Get(ctx context.Context, id string) (*Module, error) {
	var out Module
	if err := s.t.Get(ctx, resourcePath("/modules", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ModulesService) Create(ctx context.Context, module Module) (*Module, error) {
	var out Module
	if err := s.t.Post(ctx, "/modules", module, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ModulesService) Update(ctx context.Context, id string, module Module) (*Module, error) {
	var out Module
	if err := s.t.Put(ctx, resourcePath("/modules", id), module, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ModulesService) Delete(ctx context.Context, id string) error {
	return s.t.Delete(ctx, resourcePath("/modules", id))
}
