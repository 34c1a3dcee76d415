package room

import (
	"sync"

	"github.com/heartmarshall/icebreaker-backend/internal/worker"
)

var _ taskQueue = &taskQueueMock{}

type taskQueueMock struct {
	SubmitFunc func(task worker.Task) error

	calls struct {
		Submit []struct {
			Task worker.Task
		}
	}
	lockSubmit sync.RWMutex
}

func (mock *taskQueueMock) Submit(task worker.Task) error {
	if mock.SubmitFunc == nil {
		panic("taskQueueMock.SubmitFunc: method is nil but taskQueue.Submit was just called")
	}
	callInfo := struct {
		Task worker.Task
	}{Task: task}
	mock.lockSubmit.Lock()
	mock.calls.Submit = append(mock.calls.Submit, callInfo)
	mock.lockSubmit.Unlock()
	return mock.SubmitFunc(task)
}

func (mock *taskQueueMock) SubmitCalls() []struct {
	Task worker.Task
} {
	mock.lockSubmit.RLock()
	calls := mock.calls.Submit
	mock.lockSubmit.RUnlock()
	return calls
}
