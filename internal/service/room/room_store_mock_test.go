package room

import (
	"context"
	"sync"

	"github.com/heartmarshall/icebreaker-backend/internal/domain"
)

var _ roomStore = &roomStoreMock{}

type roomStoreMock struct {
	CreateRoomFunc   func(ctx context.Context, room domain.Room) error
	GetRoomFunc      func(ctx context.Context, id string) (*domain.Room, error)
	AppendAnswerFunc func(ctx context.Context, roomID string, answer domain.Answer) (int, error)
	ListAnswersFunc  func(ctx context.Context, roomID string) ([]domain.Answer, error)
	CountAnswersFunc func(ctx context.Context, roomID string) (int, error)
	SaveResultFunc   func(ctx context.Context, roomID string, result domain.Result) error
	GetResultFunc    func(ctx context.Context, roomID string) (*domain.Result, error)

	calls struct {
		CreateRoom []struct {
			Ctx  context.Context
			Room domain.Room
		}
		GetRoom []struct {
			Ctx context.Context
			ID  string
		}
		AppendAnswer []struct {
			Ctx    context.Context
			RoomID string
			Answer domain.Answer
		}
		ListAnswers []struct {
			Ctx    context.Context
			RoomID string
		}
		CountAnswers []struct {
			Ctx    context.Context
			RoomID string
		}
		SaveResult []struct {
			Ctx    context.Context
			RoomID string
			Result domain.Result
		}
		GetResult []struct {
			Ctx    context.Context
			RoomID string
		}
	}
	lockCreateRoom   sync.RWMutex
	lockGetRoom      sync.RWMutex
	lockAppendAnswer sync.RWMutex
	lockListAnswers  sync.RWMutex
	lockCountAnswers sync.RWMutex
	lockSaveResult   sync.RWMutex
	lockGetResult    sync.RWMutex
}

func (mock *roomStoreMock) CreateRoom(ctx context.Context, room domain.Room) error {
	if mock.CreateRoomFunc == nil {
		panic("roomStoreMock.CreateRoomFunc: method is nil but roomStore.CreateRoom was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Room domain.Room
	}{Ctx: ctx, Room: room}
	mock.lockCreateRoom.Lock()
	mock.calls.CreateRoom = append(mock.calls.CreateRoom, callInfo)
	mock.lockCreateRoom.Unlock()
	return mock.CreateRoomFunc(ctx, room)
}

func (mock *roomStoreMock) CreateRoomCalls() []struct {
	Ctx  context.Context
	Room domain.Room
} {
	mock.lockCreateRoom.RLock()
	calls := mock.calls.CreateRoom
	mock.lockCreateRoom.RUnlock()
	return calls
}

func (mock *roomStoreMock) GetRoom(ctx context.Context, id string) (*domain.Room, error) {
	if mock.GetRoomFunc == nil {
		panic("roomStoreMock.GetRoomFunc: method is nil but roomStore.GetRoom was just called")
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

func (mock *roomStoreMock) GetRoomCalls() []struct {
	Ctx context.Context
	ID  string
} {
	mock.lockGetRoom.RLock()
	calls := mock.calls.GetRoom
	mock.lockGetRoom.RUnlock()
	return calls
}

func (mock *roomStoreMock) AppendAnswer(ctx context.Context, roomID string, answer domain.Answer) (int, error) {
	if mock.AppendAnswerFunc == nil {
		panic("roomStoreMock.AppendAnswerFunc: method is nil but roomStore.AppendAnswer was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		RoomID string
		Answer domain.Answer
	}{Ctx: ctx, RoomID: roomID, Answer: answer}
	mock.lockAppendAnswer.Lock()
	mock.calls.AppendAnswer = append(mock.calls.AppendAnswer, callInfo)
	mock.lockAppendAnswer.Unlock()
	return mock.AppendAnswerFunc(ctx, roomID, answer)
}

func (mock *roomStoreMock) AppendAnswerCalls() []struct {
	Ctx    context.Context
	RoomID string
	Answer domain.Answer
} {
	mock.lockAppendAnswer.RLock()
	calls := mock.calls.AppendAnswer
	mock.lockAppendAnswer.RUnlock()
	return calls
}

func (mock *roomStoreMock) ListAnswers(ctx context.Context, roomID string) ([]domain.Answer, error) {
	if mock.ListAnswersFunc == nil {
		panic("roomStoreMock.ListAnswersFunc: method is nil but roomStore.ListAnswers was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		RoomID string
	}{Ctx: ctx, RoomID: roomID}
	mock.lockListAnswers.Lock()
	mock.calls.ListAnswers = append(mock.calls.ListAnswers, callInfo)
	mock.lockListAnswers.Unlock()
	return mock.ListAnswersFunc(ctx, roomID)
}

func (mock *roomStoreMock) ListAnswersCalls() []struct {
	Ctx    context.Context
	RoomID string
} {
	mock.lockListAnswers.RLock()
	calls := mock.calls.ListAnswers
	mock.lockListAnswers.RUnlock()
	return calls
}

func (mock *roomStoreMock) CountAnswers(ctx context.Context, roomID string) (int, error) {
	if mock.CountAnswersFunc == nil {
		panic("roomStoreMock.CountAnswersFunc: method is nil but roomStore.CountAnswers was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		RoomID string
	}{Ctx: ctx, RoomID: roomID}
	mock.lockCountAnswers.Lock()
	mock.calls.CountAnswers = append(mock.calls.CountAnswers, callInfo)
	mock.lockCountAnswers.Unlock()
	return mock.CountAnswersFunc(ctx, roomID)
}

func (mock *roomStoreMock) CountAnswersCalls() []struct {
	Ctx    context.Context
	RoomID string
} {
	mock.lockCountAnswers.RLock()
	calls := mock.calls.CountAnswers
	mock.lockCountAnswers.RUnlock()
	return calls
}

func (mock *roomStoreMock) SaveResult(ctx context.Context, roomID string, result domain.Result) error {
	if mock.SaveResultFunc == nil {
		panic("roomStoreMock.SaveResultFunc: method is nil but roomStore.SaveResult was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		RoomID string
		Result domain.Result
	}{Ctx: ctx, RoomID: roomID, Result: result}
	mock.lockSaveResult.Lock()
	mock.calls.SaveResult = append(mock.calls.SaveResult, callInfo)
	mock.lockSaveResult.Unlock()
	return mock.SaveResultFunc(ctx, roomID, result)
}

func (mock *roomStoreMock) SaveResultCalls() []struct {
	Ctx    context.Context
	RoomID string
	Result domain.Result
} {
	mock.lockSaveResult.RLock()
	calls := mock.calls.SaveResult
	mock.lockSaveResult.RUnlock()
	return calls
}

func (mock *roomStoreMock) GetResult(ctx context.Context, roomID string) (*domain.Result, error) {
	if mock.GetResultFunc == nil {
		panic("roomStoreMock.GetResultFunc: method is nil but roomStore.GetResult was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		RoomID string
	}{Ctx: ctx, RoomID: roomID}
	mock.lockGetResult.Lock()
	mock.calls.GetResult = append(mock.calls.GetResult, callInfo)
	mock.lockGetResult.Unlock()
	return mock.GetResultFunc(ctx, roomID)
}

func (mock *roomStoreMock) GetResultCalls() []struct {
	Ctx    context.Context
	RoomID string
} {
	mock.lockGetResult.RLock()
	calls := mock.calls.GetResult
	mock.lockGetResult.RUnlock()
	return calls
}
