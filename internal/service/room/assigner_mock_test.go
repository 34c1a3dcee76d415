package room

import (
	"context"
	"sync"

	"github.com/heartmarshall/icebreaker-backend/internal/domain"
)

var _ assigner = &assignerMock{}

type assignerMock struct {
	AssignRoomFunc func(ctx context.Context, room *domain.Room, answers []domain.Answer) domain.Result

	calls struct {
		AssignRoom []struct {
			Ctx     context.Context
			Room    *domain.Room
			Answers []domain.Answer
		}
	}
	lockAssignRoom sync.RWMutex
}

func (mock *assignerMock) AssignRoom(ctx context.Context, room *domain.Room, answers []domain.Answer) domain.Result {
	if mock.AssignRoomFunc == nil {
		panic("assignerMock.AssignRoomFunc: method is nil but assigner.AssignRoom was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Room    *domain.Room
		Answers []domain.Answer
	}{Ctx: ctx, Room: room, Answers: answers}
	mock.lockAssignRoom.Lock()
	mock.calls.AssignRoom = append(mock.calls.AssignRoom, callInfo)
	mock.lockAssignRoom.Unlock()
	return mock.AssignRoomFunc(ctx, room, answers)
}

func (mock *assignerMock) AssignRoomCalls() []struct {
	Ctx     context.Context
	Room    *domain.Room
	Answers []domain.Answer
} {
	mock.lockAssignRoom.RLock()
	calls := mock.calls.AssignRoom
	mock.lockAssignRoom.RUnlock()
	return calls
}
