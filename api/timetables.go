package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/campusdesk/schedkit/core/transport"
)

// TimetableEntry is a single scheduled slot within a timetable.
type TimetableEntry struct {
	ID        string `json:"id,omitempty"`
	Day       string `json:"day"` // "MONDAY".."FRIDAY"
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	ModuleID  string `json:"moduleId"`
	RoomID    string `json:"roomId"`
}

// Timetable is the schedule of one program semester.
type Timetable struct {
	ID        string           `json:"id,omitempty"`
	ProgramID string           `json:"programId"`
	Semester  int              `json:"semester"`
	Entries   []TimetableEntry `json:"entries,omitempty"`
}

// TimetablesService wraps the /timetables endpoints.
type TimetablesService struct {
	t *transport.Client
}

// List returns timetables, optionally scoped to a program and semester.
func (s *TimetablesService) List(ctx context.Context, programID string, semester int) ([]Timetable, error) {
	query := url.Values{}
	if programID != "" {
		query.Set("programId", programID)
	}
	if semester > 0 {
		query.Set("semester", strconv.Itoa(semester))
	}
	if len(query) == 0 {
		query = nil
	}

	var out []Timetable
	err := s.t.Get(ctx, "/timetables", query, &out)
	return out, err
}

func (s *TimetablesService) Get(ctx context.Context, id string) (*Timetable, error) {
	var out Timetable
	if err := s.t.Get(ctx, resourcePath("/timetables", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *TimetablesService) Create(ctx context.Context, timetable Timetable) (*Timetable, error) {
	var out Timetable
	if err := s.t.Post(ctx, "/timetables", timetable, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *TimetablesService) Update(ctx context.Context, id string, timetable Timetable) (*Timetable, error) {
	var out Timetable
	if err := s.t.Put(ctx, resourcePath("/timetables", id), timetable, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddEntry appends a slot to a timetable.
func (s *TimetablesService) AddEntry(ctx context.Context, id string, entry TimetableEntry) (*Timetable, error) {
	var out Timetable
	if err := s.t.Post(ctx, resourcePath("/timetables", id)+"/entries", entry, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveEntry deletes a slot from a timetable.
func (s *TimetablesService) RemoveEntry(ctx context.Context, id, entryID string) error {
	return s.t.Delete(ctx, resourcePath("/timetables", id)+"/entries/"+url.PathEscape(entryID))
}

func (s *TimetablesService) Delete(ctx context.Context, id string) error {
	return s.t.Delete(ctx, resourcePath("/timetables", id))
}
