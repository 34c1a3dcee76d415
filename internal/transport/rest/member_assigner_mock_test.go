package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/icebreaker-backend/internal/domain"
	"github.com/heartmarshall/icebreaker-backend/internal/service/assignment"
)

var _ memberAssigner = &memberAssignerMock{}

type memberAssignerMock struct {
	AssignMembersFunc func(ctx context.Context, input assignment.AssignMembersInput) (*domain.TeamAssignment, error)

	calls struct {
		AssignMembers []struct {
			Ctx   context.Context
			Input assignment.AssignMembersInput
		}
	}
	lockAssignMembers sync.RWMutex
}

func (mock *memberAssignerMock) AssignMembers(ctx context.Context, input assignment.AssignMembersInput) (*domain.TeamAssignment, error) {
	if mock.AssignMembersFunc == nil {
		panic("memberAssignerMock.AssignMembersFunc: method is nil but memberAssigner.AssignMembers was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input assignment.AssignMembersInput
	}{Ctx: ctx, Input: input}
	mock.lockAssignMembers.Lock()
	mock.calls.AssignMembers = append(mock.calls.AssignMembers, callInfo)
	mock.lockAssignMembers.Unlock()
	return mock.AssignMembersFunc(ctx, input)
}

func (mock *memberAssignerMock) AssignMembersCalls() []struct {
	Ctx   context.Context
	Input assignment.AssignMembersInput
} {
	mock.lockAssignMembers.RLock()
	calls := mock.calls.AssignMembers
	mock.lockAssignMembers.RUnlock()
	return calls
}
