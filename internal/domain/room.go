package domain

import "time"

// RoomStatus is the lifecycle status stored on a room. Rooms never leave
// RoomStatusActive; generation progress is tracked by the result entry.
type RoomStatus string

const (
	RoomStatusActive RoomStatus = "active"
)

func (s RoomStatus) String() string { return string(s) }

// Question is one shared prompt of a room.
type Question struct {
	ID   string `json:"questionId"`
	Text string `json:"question"`
}

// questionPool is the fixed pool rooms draw their questions from.
var questionPool = []Question{
	{ID: "q1", Text: "休日の理想的な過ごし方を教えてください。"},
	{ID: "q2", Text: "最近ハマっていることは何ですか？"},
	{ID: "q3", Text: "チームで作業するとき、自然と担っていることが多い役割は何ですか？"},
	{ID: "q4", Text: "子どもの頃の夢は何でしたか？"},
	{ID: "q5", Text: "無人島に一つだけ持っていくなら何を選びますか？その理由も教えてください。"},
}

// QuestionPool returns a copy of the fixed question pool.
func QuestionPool() []Question {
	out := make([]Question, len(questionPool))
	copy(out, questionPool)
	return out
}

// Room is an icebreaker session. It is immutable after creation.
type Room struct {
	ID        string
	Capacity  int
	Questions []Question
	CreatedAt time.Time
	Status    RoomStatus
}

// QuestionIDs returns the ids of the room's questions in order.
func (r *Room) QuestionIDs() []string {
	ids := make([]string, len(r.Questions))
	for i, q := range r.Questions {
		ids[i] = q.ID
	}
	return ids
}
