package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/icebreaker-backend/internal/domain"
	"github.com/heartmarshall/icebreaker-backend/internal/service/room"
)

var _ roomService = &roomServiceMock{}

type roomServiceMock struct {
	CreateRoomFunc   func(ctx context.Context, input room.CreateRoomInput) (*room.CreatedRoom, error)
	GetRoomFunc      func(ctx context.Context, id string) (*domain.Room, error)
	SubmitAnswerFunc func(ctx context.Context, roomID string, input room.SubmitAnswerInput) (*room.Receipt, error)
	GetResultsFunc   func(ctx context.Context, roomID string) (*room.ResultView, error)

	calls struct {
		CreateRoom []struct {
			Ctx   context.Context
			Input room.CreateRoomInput
		}
		GetRoom []struct {
			Ctx context.Context
			ID  string
		}
		SubmitAnswer []struct {
			Ctx    context.Context
			RoomID string
			Input  room.SubmitAnswerInput
		}
		GetResults []struct {
			Ctx    context.Context
			RoomID string
		}
	}
	lockCreateRoom   sync.RWMutex
	lockGetRoom      sync.RWMutex
	lockSubmitAnswer sync.RWMutex
	lockGetResults   sync.RWMutex
}

func (mock *roomServiceMock) CreateRoom(ctx context.Context, input room.CreateRoomInput) (*room.CreatedRoom, error) {
	if mock.CreateRoomFunc == nil {
		panic("roomServiceMock.CreateRoomFunc: method is nil but roomService.CreateRoom was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input room.CreateRoomInput
	}{Ctx: ctx, Input: input}
	mock.lockCreateRoom.Lock()
	mock.calls.CreateRoom = append(mock.calls.CreateRoom, callInfo)
	mock.lockCreateRoom.Unlock()
	return mock.CreateRoomFunc(ctx, input)
}

func (mock *roomServiceMock) CreateRoomCalls() []struct {
	Ctx   context.Context
	Input room.CreateRoomInput
} {
	mock.lockCreateRoom.RLock()
	calls := mock.calls.CreateRoom
	mock.lockCreateRoom.RUnlock()
	return calls
}

func (mock *roomServiceMock) GetRoom(ctx context.Context, id string) (*domain.Room, error) {
	if mock.GetRoomFunc == nil {
		panic("roomServiceMock.GetRoomFunc: method is nil but roomService.GetRoom was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  string
	}{Ctx: ctx, ID: id}
	mock.lockGetRoom.Lock()
	mock.calls.GetRoom = append(mock.calls.GetRoom, callInfo)
	mock.lockGetRoom.Unlock()
	return mock.GetRoomFunc(ctx, id)
}

func (mock *roomServiceMock) GetRoomCalls() []struct {
	Ctx context.Context
	ID  string
} {
	mock.lockGetRoom.RLock()
	calls := mock.calls.GetRoom
	mock.lockGetRoom.RUnlock()
	return calls
}

func (mock *roomServiceMock) SubmitAnswer(ctx context.Context, roomID string, input room.SubmitAnswerInput) (*room.Receipt, error) {
	if mock.SubmitAnswerFunc == nil {
		panic("roomServiceMock.SubmitAnswerFunc: method is nil but roomService.SubmitAnswer was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		RoomID string
		Input  room.SubmitAnswerInput
	}{Ctx: ctx, RoomID: roomID, Input: input}
	mock.lockSubmitAnswer.Lock()
	mock.calls.SubmitAnswer = append(mock.calls.SubmitAnswer, callInfo)
	mock.lockSubmitAnswer.Unlock()
	return mock.SubmitAnswerFunc(ctx, roomID, input)
}

func (mock *roomServiceMock) SubmitAnswerCalls() []struct {
	Ctx    context.Context
	RoomID string
	Input  room.SubmitAnswerInput
} {
	mock.lockSubmitAnswer.RLock()
	calls := mock.calls.SubmitAnswer
	mock.lockSubmitAnswer.RUnlock()
	return calls
}

func (mock *roomServiceMock) GetResults(ctx context.Context, roomID string) (*room.ResultView, error) {
	if mock.GetResultsFunc == nil {
		panic("roomServiceMock.GetResultsFunc: method is nil but roomService.GetResults was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		RoomID string
	}{Ctx: ctx, RoomID: roomID}
	mock.lockGetResults.Lock()
	mock.calls.GetResults = append(mock.calls.GetResults, callInfo)
	mock.lockGetResults.Unlock()
	return mock.GetResultsFunc(ctx, roomID)
}

func (mock *roomServiceMock) GetResultsCalls() []struct {
	Ctx    context.Context
	RoomID string
} {
	mock.lockGetResults.RLock()
	calls := mock.calls.GetResults
	mock.lockGetResults.RUnlock()
	return calls
}
