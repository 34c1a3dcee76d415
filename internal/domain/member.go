package domain

// Member is a participant of the direct member-assignment API.
type Member struct {
	ID           string
	Name         string
	Birthday     string
	Age          int
	Hometown     string
	Organization string
	Motivation   string
}

// MemberAssignment pairs a member with a role and a match score.
type MemberAssignment struct {
	MemberID   string
	MemberName string
	RoleID     string
	RoleTitle  string
	MatchScore int
	Reasoning  string
}

// TeamAssignment is the result of the member-assignment API.
type TeamAssignment struct {
	Assignments     []MemberAssignment
	TeamAnalysis    string
	Recommendations []string
	Source          AssignmentSource
}
