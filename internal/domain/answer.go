package domain

import "time"

// QuestionAnswer is a participant's reply to one room question.
type QuestionAnswer struct {
	QuestionID string
	Answer     string
}

// Answer is one participant's submission to a room. The number of answers
// stored for a room is the authoritative participant count.
type Answer struct {
	Name        string
	Birthdate   string
	Age         int
	Hometown    string
	Affiliation string
	Aspiration  string
	Answers     []QuestionAnswer
	SubmittedAt time.Time
}

// AnswerFor returns the reply to the given question id, if present.
func (a *Answer) AnswerFor(questionID string) (string, bool) {
	for _, qa := range a.Answers {
		if qa.QuestionID == questionID {
			return qa.Answer, true
		}
	}
	return "", false
}
