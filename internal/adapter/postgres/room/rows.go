package room

import "github.com/heartmarshall/icebreaker-backend/internal/domain"

// JSONB column shapes. Field names are part of the stored format.

type questionRow struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type answerRow struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
}

type assignmentRow struct {
	Name             string `json:"name"`
	Birthdate        string `json:"birthdate"`
	Age              int    `json:"age"`
	Hometown         string `json:"hometown"`
	Affiliation      string `json:"affiliation"`
	Aspiration       string `json:"aspiration"`
	RoleID           string `json:"role_id"`
	RoleTitle        string `json:"role_title"`
	RoleTitleEnglish string `json:"role_title_english"`
	Reason           string `json:"reason"`
	Tips             string `json:"tips"`
}

func toQuestionRows(qs []domain.Question) []questionRow {
	out := make([]questionRow, len(qs))
	for i, q := range qs {
		out[i] = questionRow{ID: q.ID, Text: q.Text}
	}
	return out
}

func toDomainQuestions(rows []questionRow) []domain.Question {
	out := make([]domain.Question, len(rows))
	for i, r := range rows {
		out[i] = domain.Question{ID: r.ID, Text: r.Text}
	}
	return out
}

func toAnswerRows(qas []domain.QuestionAnswer) []answerRow {
	out := make([]answerRow, len(qas))
	for i, qa := range qas {
		out[i] = answerRow{QuestionID: qa.QuestionID, Answer: qa.Answer}
	}
	return out
}

func toDomainAnswers(rows []answerRow) []domain.QuestionAnswer {
	out := make([]domain.QuestionAnswer, len(rows))
	for i, r := range rows {
		out[i] = domain.QuestionAnswer{QuestionID: r.QuestionID, Answer: r.Answer}
	}
	return out
}

func toAssignmentRows(as []domain.RoleAssignment) []assignmentRow {
	out := make([]assignmentRow, len(as))
	for i, a := range as {
		out[i] = assignmentRow(a)
	}
	return out
}

func toDomainAssignments(rows []assignmentRow) []domain.RoleAssignment {
	if len(rows) == 0 {
		return nil
	}
	out := make([]domain.RoleAssignment, len(rows))
	for i, r := range rows {
		out[i] = domain.RoleAssignment(r)
	}
	return out
}
