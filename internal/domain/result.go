package domain

import "time"

// ResultStatus is the client-visible state of a room's generation.
type ResultStatus string

const (
	ResultStatusProcessing ResultStatus = "processing"
	ResultStatusCompleted  ResultStatus = "completed"
	ResultStatusError      ResultStatus = "error"
)

func (s ResultStatus) String() string { return string(s) }

// AssignmentSource records which path produced an assignment set.
type AssignmentSource string

const (
	SourceAI       AssignmentSource = "ai"
	SourceFallback AssignmentSource = "fallback"
)

func (s AssignmentSource) String() string { return string(s) }

// RoleAssignment pairs a room participant with a role.
type RoleAssignment struct {
	Name             string
	Birthdate        string
	Age              int
	Hometown         string
	Affiliation      string
	Aspiration       string
	RoleID           string
	RoleTitle        string
	RoleTitleEnglish string
	Reason           string
	Tips             string
}

// Result is the terminal outcome of a room's generation. It is written once.
// A non-empty ErrorMessage marks an error record.
type Result struct {
	Assignments  []RoleAssignment
	Source       AssignmentSource
	ErrorCode    string
	ErrorMessage string
	GeneratedAt  time.Time
}

// Failed reports whether r is an error record.
func (r *Result) Failed() bool {
	return r.ErrorMessage != ""
}

// NewErrorResult builds an error record.
func NewErrorResult(code, message string, at time.Time) Result {
	return Result{ErrorCode: code, ErrorMessage: message, GeneratedAt: at}
}
