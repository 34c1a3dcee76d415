package assignment

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/heartmarshall/icebreaker-backend/internal/domain"
)

// ParseKind classifies why model output was rejected.
type ParseKind string

const (
	ParseNoJSON        ParseKind = "no_json"
	ParseMalformedJSON ParseKind = "malformed_json"
	ParseInvalidShape  ParseKind = "invalid_shape"
)

// ParseError reports model output that could not be turned into assignments.
type ParseError struct {
	Kind ParseKind
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse model output: %s: %v", e.Kind, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func parseErr(kind ParseKind, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Err: fmt.Errorf(format, args...)}
}

var fencedJSON = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")

// extractJSON returns the body of the first ```json fenced block, or else the
// span from the first open to the last close delimiter.
func extractJSON(text string, open, close byte) (string, error) {
	if m := fencedJSON.FindStringSubmatch(text); m != nil && strings.TrimSpace(m[1]) != "" {
		return strings.TrimSpace(m[1]), nil
	}
	start := strings.IndexByte(text, open)
	end := strings.LastIndexByte(text, close)
	if start == -1 || end == -1 || end <= start {
		return "", parseErr(ParseNoJSON, "no %c...%c span in %d bytes", open, close, len(text))
	}
	return text[start : end+1], nil
}

// looseString accepts a JSON string or number. Models often emit role ids
// as bare numbers.
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = looseString(strings.TrimSpace(v))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", b)
	}
	*s = looseString(n.String())
	return nil
}

// looseScore accepts a JSON number or numeric string and rounds to int.
type looseScore struct {
	Value int
	Set   bool
}

func (s *looseScore) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	raw := string(b)
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("matchScore %s is not a number", b)
	}
	s.Value, s.Set = int(math.Round(f)), true
	return nil
}

func decodeJSON(raw string, v any) error {
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return parseErr(ParseInvalidShape, "field %q: got %s", typeErr.Field, typeErr.Value)
		}
		return &ParseError{Kind: ParseMalformedJSON, Err: err}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Room variant
// ---------------------------------------------------------------------------

type roomAssignmentJSON struct {
	Name      string      `json:"name"`
	RoleID    looseString `json:"roleId"`
	RoleTitle string      `json:"roleTitle"`
	Reason    string      `json:"reason"`
	Tips      string      `json:"tips"`
}

// parseRoomResponse expects a JSON array with exactly one entry per
// participant, in participant order. Profile fields come from answers, never
// from the model's echo.
func parseRoomResponse(text string, answers []domain.Answer) ([]domain.RoleAssignment, error) {
	raw, err := extractJSON(text, '[', ']')
	if err != nil {
		return nil, err
	}

	var items []roomAssignmentJSON
	if err := decodeJSON(raw, &items); err != nil {
		return nil, err
	}
	if len(items) != len(answers) {
		return nil, parseErr(ParseInvalidShape, "got %d assignments for %d participants", len(items), len(answers))
	}

	distinct := len(answers) <= len(domain.RoleCatalog())
	seen := make(map[string]bool, len(items))
	out := make([]domain.RoleAssignment, len(items))

	for i, item := range items {
		roleID := string(item.RoleID)
		switch {
		case roleID == "":
			return nil, parseErr(ParseInvalidShape, "assignment %d: roleId missing", i)
		case strings.TrimSpace(item.RoleTitle) == "":
			return nil, parseErr(ParseInvalidShape, "assignment %d: roleTitle missing", i)
		case strings.TrimSpace(item.Reason) == "":
			return nil, parseErr(ParseInvalidShape, "assignment %d: reason missing", i)
		}
		role, ok := domain.RoleByID(roleID)
		if !ok {
			return nil, parseErr(ParseInvalidShape, "assignment %d: unknown roleId %q", i, roleID)
		}
		if distinct && seen[roleID] {
			return nil, parseErr(ParseInvalidShape, "assignment %d: roleId %q assigned twice", i, roleID)
		}
		seen[roleID] = true

		tips := strings.TrimSpace(item.Tips)
		if tips == "" {
			tips = fallbackTips(role)
		}
		out[i] = assignmentFor(answers[i], role, strings.TrimSpace(item.Reason), tips)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Member variant
// ---------------------------------------------------------------------------

const (
	defaultReasoning    = "No reasoning provided"
	defaultTeamAnalysis = "No team analysis provided"
)

type memberAssignmentJSON struct {
	MemberID   looseString `json:"memberId"`
	MemberName string      `json:"memberName"`
	RoleID     looseString `json:"roleId"`
	RoleTitle  string      `json:"roleTitle"`
	MatchScore looseScore  `json:"matchScore"`
	Reasoning  string      `json:"reasoning"`
}

type teamAssignmentJSON struct {
	Assignments     *[]memberAssignmentJSON `json:"assignments"`
	TeamAnalysis    string                  `json:"teamAnalysis"`
	Recommendations json.RawMessage         `json:"recommendations"`
}

// parseMemberResponse expects an object with an assignments array. Scores
// are clamped to 0..100 and missing prose gets placeholder text.
func parseMemberResponse(text string) (*domain.TeamAssignment, error) {
	raw, err := extractJSON(text, '{', '}')
	if err != nil {
		return nil, err
	}

	var parsed teamAssignmentJSON
	if err := decodeJSON(raw, &parsed); err != nil {
		return nil, err
	}
	if parsed.Assignments == nil {
		return nil, parseErr(ParseInvalidShape, "assignments array missing")
	}

	out := &domain.TeamAssignment{
		Assignments:     make([]domain.MemberAssignment, len(*parsed.Assignments)),
		TeamAnalysis:    strings.TrimSpace(parsed.TeamAnalysis),
		Recommendations: []string{},
		Source:          domain.SourceAI,
	}
	for i, a := range *parsed.Assignments {
		reasoning := strings.TrimSpace(a.Reasoning)
		if reasoning == "" {
			reasoning = defaultReasoning
		}
		out.Assignments[i] = domain.MemberAssignment{
			MemberID:   string(a.MemberID),
			MemberName: a.MemberName,
			RoleID:     string(a.RoleID),
			RoleTitle:  a.RoleTitle,
			MatchScore: clampScore(a.MatchScore.Value),
			Reasoning:  reasoning,
		}
	}
	if out.TeamAnalysis == "" {
		out.TeamAnalysis = defaultTeamAnalysis
	}

	var recs []string
	if len(parsed.Recommendations) > 0 && json.Unmarshal(parsed.Recommendations, &recs) == nil && recs != nil {
		out.Recommendations = recs
	}
	return out, nil
}

func clampScore(v int) int {
	return max(0, min(100, v))
}
