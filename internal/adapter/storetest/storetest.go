// Package storetest holds the behavioral suite every room store backend must
// pass. Backends call Run from their own tests.
package storetest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/icebreaker-backend/internal/domain"
)

// Store is the contract under test.
type Store interface {
	CreateRoom(ctx context.Context, room domain.Room) error
	GetRoom(ctx context.Context, id string) (*domain.Room, error)
	AppendAnswer(ctx context.Context, roomID string, answer domain.Answer) (int, error)
	ListAnswers(ctx context.Context, roomID string) ([]domain.Answer, error)
	CountAnswers(ctx context.Context, roomID string) (int, error)
	SaveResult(ctx context.Context, roomID string, result domain.Result) error
	GetResult(ctx context.Context, roomID string) (*domain.Result, error)
	Ping(ctx context.Context) error
}

// Run executes the suite against s. Every subtest uses fresh room ids, so a
// single store instance may be shared.
func Run(t *testing.T, s Store) {
	t.Helper()

	t.Run("CreateAndGetRoom", func(t *testing.T) { testCreateAndGetRoom(t, s) })
	t.Run("CreateRoomDuplicate", func(t *testing.T) { testCreateRoomDuplicate(t, s) })
	t.Run("GetRoomNotFound", func(t *testing.T) { testGetRoomNotFound(t, s) })
	t.Run("AppendAnswerUntilFull", func(t *testing.T) { testAppendAnswerUntilFull(t, s) })
	t.Run("AppendAnswerUnknownRoom", func(t *testing.T) { testAppendAnswerUnknownRoom(t, s) })
	t.Run("ConcurrentAppendNeverExceedsCapacity", func(t *testing.T) { testConcurrentAppend(t, s) })
	t.Run("ResultWriteOnce", func(t *testing.T) { testResultWriteOnce(t, s) })
	t.Run("ErrorResult", func(t *testing.T) { testErrorResult(t, s) })
	t.Run("Ping", func(t *testing.T) { require.NoError(t, s.Ping(context.Background())) })
}

// Now returns a timestamp every backend round-trips exactly.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// NewRoom builds a room with a fresh id.
func NewRoom(capacity int) domain.Room {
	return domain.Room{
		ID:        uuid.NewString(),
		Capacity:  capacity,
		Questions: domain.QuestionPool()[:2],
		CreatedAt: Now(),
		Status:    domain.RoomStatusActive,
	}
}

// NewAnswer builds a complete participant answer for room.
func NewAnswer(room domain.Room, name string) domain.Answer {
	a := domain.Answer{
		Name:        name,
		Birthdate:   "1995-04-01",
		Age:         29,
		Hometown:    "Sapporo",
		Affiliation: "Platform",
		Aspiration:  "ship things together",
		SubmittedAt: Now(),
	}
	for _, q := range room.Questions {
		a.Answers = append(a.Answers, domain.QuestionAnswer{QuestionID: q.ID, Answer: name + " on " + q.ID})
	}
	return a
}

func testCreateAndGetRoom(t *testing.T, s Store) {
	ctx := context.Background()
	room := NewRoom(4)

	require.NoError(t, s.CreateRoom(ctx, room))

	got, err := s.GetRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, room.ID, got.ID)
	assert.Equal(t, room.Capacity, got.Capacity)
	assert.Equal(t, room.Questions, got.Questions)
	assert.Equal(t, domain.RoomStatusActive, got.Status)
	assert.True(t, room.CreatedAt.Equal(got.CreatedAt), "created_at %v != %v", got.CreatedAt, room.CreatedAt)

	count, err := s.CountAnswers(ctx, room.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func testCreateRoomDuplicate(t *testing.T, s Store) {
	ctx := context.Background()
	room := NewRoom(2)

	require.NoError(t, s.CreateRoom(ctx, room))
	err := s.CreateRoom(ctx, room)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func testGetRoomNotFound(t *testing.T, s Store) {
	ctx := context.Background()
	id := uuid.NewString()

	_, err := s.GetRoom(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.ListAnswers(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.CountAnswers(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.GetResult(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func testAppendAnswerUntilFull(t *testing.T, s Store) {
	ctx := context.Background()
	room := NewRoom(2)
	require.NoError(t, s.CreateRoom(ctx, room))

	first := NewAnswer(room, "Aiko")
	n, err := s.AppendAnswer(ctx, room.ID, first)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = s.AppendAnswer(ctx, room.ID, NewAnswer(room, "Ben"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = s.AppendAnswer(ctx, room.ID, NewAnswer(room, "Chie"))
	assert.ErrorIs(t, err, domain.ErrRoomFull)

	answers, err := s.ListAnswers(ctx, room.ID)
	require.NoError(t, err)
	require.Len(t, answers, 2)
	assert.Equal(t, "Aiko", answers[0].Name)
	assert.Equal(t, "Ben", answers[1].Name)
	assert.Equal(t, first.Answers, answers[0].Answers)
	assert.Equal(t, first.Age, answers[0].Age)
	assert.True(t, first.SubmittedAt.Equal(answers[0].SubmittedAt))

	count, err := s.CountAnswers(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func testAppendAnswerUnknownRoom(t *testing.T, s Store) {
	room := NewRoom(2)
	_, err := s.AppendAnswer(context.Background(), room.ID, NewAnswer(room, "Ghost"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func testConcurrentAppend(t *testing.T, s Store) {
	ctx := context.Background()
	room := NewRoom(3)
	require.NoError(t, s.CreateRoom(ctx, room))

	const writers = 12
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted []int
		full     int
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := s.AppendAnswer(ctx, room.ID, NewAnswer(room, uuid.NewString()[:8]))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				accepted = append(accepted, n)
			case errors.Is(err, domain.ErrRoomFull):
				full++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Len(t, accepted, room.Capacity)
	assert.Equal(t, writers-room.Capacity, full)
	assert.ElementsMatch(t, []int{1, 2, 3}, accepted, "each count must be observed by exactly one writer")

	count, err := s.CountAnswers(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, room.Capacity, count)
}

func testResultWriteOnce(t *testing.T, s Store) {
	ctx := context.Background()
	room := NewRoom(2)
	require.NoError(t, s.CreateRoom(ctx, room))

	_, err := s.GetResult(ctx, room.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "no result before it is written")

	result := domain.Result{
		Source:      domain.SourceFallback,
		GeneratedAt: Now(),
		Assignments: []domain.RoleAssignment{{
			Name: "Aiko", Birthdate: "1995-04-01", Age: 29, Hometown: "Sapporo",
			Affiliation: "Platform", Aspiration: "ship",
			RoleID: "1", RoleTitle: "開拓者", RoleTitleEnglish: "Pioneer",
			Reason: "leads", Tips: "facilitate",
		}},
	}
	require.NoError(t, s.SaveResult(ctx, room.ID, result))

	err = s.SaveResult(ctx, room.ID, domain.NewErrorResult("X", "late", Now()))
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	got, err := s.GetResult(ctx, room.ID)
	require.NoError(t, err)
	assert.False(t, got.Failed())
	assert.Equal(t, result.Source, got.Source)
	assert.Equal(t, result.Assignments, got.Assignments)
	assert.True(t, result.GeneratedAt.Equal(got.GeneratedAt))
}

func testErrorResult(t *testing.T, s Store) {
	ctx := context.Background()
	room := NewRoom(2)
	require.NoError(t, s.CreateRoom(ctx, room))

	require.NoError(t, s.SaveResult(ctx, room.ID, domain.NewErrorResult("GENERATION_FAILED", "boom", Now())))

	got, err := s.GetResult(ctx, room.ID)
	require.NoError(t, err)
	assert.True(t, got.Failed())
	assert.Equal(t, "GENERATION_FAILED", got.ErrorCode)
	assert.Equal(t, "boom", got.ErrorMessage)
	assert.Empty(t, got.Assignments)
}
