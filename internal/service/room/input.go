package room

import (
	"fmt"

	"github.com/heartmarshall/icebreaker-backend/internal/domain"
	"github.com/heartmarshall/icebreaker-backend/pkg/textclean"
)

// CreateRoomInput holds the parameters for creating a room.
type CreateRoomInput struct {
	Capacity *int
}

// Validate checks the capacity against the configured bounds.
func (i CreateRoomInput) Validate(minCapacity, maxCapacity int) error {
	msg := fmt.Sprintf("must be an integer between %d and %d", minCapacity, maxCapacity)
	if i.Capacity == nil || *i.Capacity < minCapacity || *i.Capacity > maxCapacity {
		return domain.NewValidationErrors(domain.CodeInvalidCapacity, []domain.FieldError{
			{Field: "capacity", Message: msg},
		})
	}
	return nil
}

// SubmitAnswerInput holds one participant's submission.
type SubmitAnswerInput struct {
	Name        string
	Birthdate   string
	Age         int
	Hometown    string
	Affiliation string
	Aspiration  string
	Answers     []domain.QuestionAnswer
}

// Validate checks personal fields first, then that every question id is
// answered. Both groups are reported under their own code.
func (i SubmitAnswerInput) Validate(questionIDs []string) error {
	var errs []domain.FieldError

	required := []struct{ field, value string }{
		{"name", i.Name},
		{"birthdate", i.Birthdate},
		{"hometown", i.Hometown},
		{"affiliation", i.Affiliation},
		{"aspiration", i.Aspiration},
	}
	for _, r := range required {
		if r.value == "" {
			errs = append(errs, domain.FieldError{Field: r.field, Message: "required"})
		}
	}
	if i.Age < 1 || i.Age > 150 {
		errs = append(errs, domain.FieldError{Field: "age", Message: "must be between 1 and 150"})
	}
	if i.Answers == nil {
		errs = append(errs, domain.FieldError{Field: "answers", Message: "required"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(domain.CodeMissingFields, errs)
	}

	for _, id := range questionIDs {
		if answer, ok := i.answerFor(id); !ok || answer == "" {
			errs = append(errs, domain.FieldError{Field: "answers." + id, Message: "answer required"})
		}
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(domain.CodeMissingAnswers, errs)
	}
	return nil
}

func (i SubmitAnswerInput) answerFor(questionID string) (string, bool) {
	for _, qa := range i.Answers {
		if qa.QuestionID == questionID {
			return qa.Answer, true
		}
	}
	return "", false
}

// clean strips markup from every free-text field.
func (i SubmitAnswerInput) clean() SubmitAnswerInput {
	out := SubmitAnswerInput{
		Name:        textclean.Clean(i.Name),
		Birthdate:   textclean.Clean(i.Birthdate),
		Age:         i.Age,
		Hometown:    textclean.Clean(i.Hometown),
		Affiliation: textclean.Clean(i.Affiliation),
		Aspiration:  textclean.Clean(i.Aspiration),
	}
	if i.Answers != nil {
		out.Answers = make([]domain.QuestionAnswer, len(i.Answers))
		for n, qa := range i.Answers {
			out.Answers[n] = domain.QuestionAnswer{
				QuestionID: textclean.Clean(qa.QuestionID),
				Answer:     textclean.Clean(qa.Answer),
			}
		}
	}
	return out
}

// toAnswer keeps only the answers to the room's own questions, in room order.
func (i SubmitAnswerInput) toAnswer(questionIDs []string) domain.Answer {
	a := domain.Answer{
		Name:        i.Name,
		Birthdate:   i.Birthdate,
		Age:         i.Age,
		Hometown:    i.Hometown,
		Affiliation: i.Affiliation,
		Aspiration:  i.Aspiration,
		Answers:     make([]domain.QuestionAnswer, 0, len(questionIDs)),
	}
	for _, id := range questionIDs {
		answer, _ := i.answerFor(id)
		a.Answers = append(a.Answers, domain.QuestionAnswer{QuestionID: id, Answer: answer})
	}
	return a
}
