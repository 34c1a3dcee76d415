// Package memory is the in-process room store. State lives for the lifetime
// of the process.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/heartmarshall/icebreaker-backend/internal/domain"
)

type roomEntry struct {
	room    domain.Room
	answers []domain.Answer
	result  *domain.Result
}

// Store keeps rooms, their answers and results in maps guarded by one mutex.
type Store struct {
	mu    sync.RWMutex
	rooms map[string]*roomEntry
}

func New() *Store {
	return &Store{rooms: make(map[string]*roomEntry)}
}

func (s *Store) CreateRoom(_ context.Context, room domain.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rooms[room.ID]; ok {
		return fmt.Errorf("room %s: %w", room.ID, domain.ErrAlreadyExists)
	}
	room.Questions = append([]domain.Question(nil), room.Questions...)
	s.rooms[room.ID] = &roomEntry{room: room}
	return nil
}

func (s *Store) GetRoom(_ context.Context, id string) (*domain.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.rooms[id]
	if !ok {
		return nil, fmt.Errorf("room %s: %w", id, domain.ErrNotFound)
	}
	room := e.room
	room.Questions = append([]domain.Question(nil), e.room.Questions...)
	return &room, nil
}

// AppendAnswer appends under the write lock, so the capacity check and the
// append are one step. It returns the answer count after the append.
func (s *Store) AppendAnswer(_ context.Context, roomID string, answer domain.Answer) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.rooms[roomID]
	if !ok {
		return 0, fmt.Errorf("room %s: %w", roomID, domain.ErrNotFound)
	}
	if len(e.answers) >= e.room.Capacity {
		return len(e.answers), domain.ErrRoomFull
	}
	answer.Answers = append([]domain.QuestionAnswer(nil), answer.Answers...)
	e.answers = append(e.answers, answer)
	return len(e.answers), nil
}

func (s *Store) ListAnswers(_ context.Context, roomID string) ([]domain.Answer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.rooms[roomID]
	if !ok {
		return nil, fmt.Errorf("room %s: %w", roomID, domain.ErrNotFound)
	}
	out := make([]domain.Answer, len(e.answers))
	copy(out, e.answers)
	return out, nil
}

func (s *Store) CountAnswers(_ context.Context, roomID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.rooms[roomID]
	if !ok {
		return 0, fmt.Errorf("room %s: %w", roomID, domain.ErrNotFound)
	}
	return len(e.answers), nil
}

// SaveResult stores the room's result once; later writes fail with
// ErrAlreadyExists.
func (s *Store) SaveResult(_ context.Context, roomID string, result domain.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.rooms[roomID]
	if !ok {
		return fmt.Errorf("room %s: %w", roomID, domain.ErrNotFound)
	}
	if e.result != nil {
		return fmt.Errorf("result for room %s: %w", roomID, domain.ErrAlreadyExists)
	}
	result.Assignments = append([]domain.RoleAssignment(nil), result.Assignments...)
	e.result = &result
	return nil
}

// GetResult returns ErrNotFound both for unknown rooms and for rooms whose
// result has not been written yet.
func (s *Store) GetResult(_ context.Context, roomID string) (*domain.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.rooms[roomID]
	if !ok || e.result == nil {
		return nil, fmt.Errorf("result for room %s: %w", roomID, domain.ErrNotFound)
	}
	r := *e.result
	r.Assignments = append([]domain.RoleAssignment(nil), e.result.Assignments...)
	return &r, nil
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close(context.Context) error { return nil }
