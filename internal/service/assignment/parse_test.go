package assignment

import (
	"errors"
	"testing"

	"github.com/heartmarshall/icebreaker-backend/internal/domain"
)

func TestExtractJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		text    string
		open    byte
		close   byte
		want    string
		wantErr bool
	}{
		{name: "fenced block", text: "here:\n```json\n[1, 2]\n```\nbye", open: '[', close: ']', want: "[1, 2]"},
		{name: "fenced wins over bare", text: "[0] ```json\n[1]\n``` [2]", open: '[', close: ']', want: "[1]"},
		{name: "bare array", text: "Sure! [{\"a\":1}] hope this helps", open: '[', close: ']', want: "[{\"a\":1}]"},
		{name: "bare object", text: "result {\"a\": {\"b\": 1}} end", open: '{', close: '}', want: "{\"a\": {\"b\": 1}}"},
		{name: "empty fence falls back", text: "```json\n```\n[3]", open: '[', close: ']', want: "[3]"},
		{name: "no delimiters", text: "I cannot help with that.", open: '[', close: ']', wantErr: true},
		{name: "reversed delimiters", text: "] oops [", open: '[', close: ']', wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := extractJSON(tt.text, tt.open, tt.close)
			if tt.wantErr {
				assertParseKind(t, err, ParseNoJSON)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseRoomResponse_Success(t *testing.T) {
	t.Parallel()

	answers := testAnswers(2)
	text := "```json\n" + `[
	  {"name": "ignored", "age": 99, "roleId": "3", "roleTitle": "地図職人", "reason": "整理が得意", "tips": "書記をどうぞ"},
	  {"name": "ignored", "roleId": 5, "roleTitle": "記録者", "reason": "記録が得意"}
	]` + "\n```"

	got, err := parseRoomResponse(text, answers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("assignments: got %d, want 2", len(got))
	}

	if got[0].Name != answers[0].Name || got[0].Age != answers[0].Age {
		t.Errorf("profile must come from stored answers, got %+v", got[0])
	}
	if got[0].RoleID != "3" || got[0].RoleTitleEnglish != "Cartographer" {
		t.Errorf("first role: got %q/%q", got[0].RoleID, got[0].RoleTitleEnglish)
	}
	if got[1].RoleID != "5" {
		t.Errorf("numeric roleId: got %q, want 5", got[1].RoleID)
	}
	if got[1].Tips == "" {
		t.Error("missing tips should be filled from the role")
	}
}

func TestParseRoomResponse_Rejects(t *testing.T) {
	t.Parallel()

	answers := testAnswers(2)
	ok := `{"roleId": "1", "roleTitle": "開拓者", "reason": "r"}`

	tests := []struct {
		name string
		text string
		kind ParseKind
	}{
		{name: "prose only", text: "Sorry, no.", kind: ParseNoJSON},
		{name: "malformed", text: `[{"roleId": "1",]`, kind: ParseMalformedJSON},
		{name: "array of scalars", text: `[1] {"roleId": "1"}`, kind: ParseInvalidShape},
		{name: "too few", text: "[" + ok + "]", kind: ParseInvalidShape},
		{name: "too many", text: "[" + ok + "," + ok + "," + ok + "]", kind: ParseInvalidShape},
		{name: "duplicate role", text: "[" + ok + "," + ok + "]", kind: ParseInvalidShape},
		{name: "unknown role", text: `[` + ok + `, {"roleId": "42", "roleTitle": "x", "reason": "r"}]`, kind: ParseInvalidShape},
		{name: "missing reason", text: `[` + ok + `, {"roleId": "2", "roleTitle": "灯台守"}]`, kind: ParseInvalidShape},
		{name: "missing title", text: `[` + ok + `, {"roleId": "2", "reason": "r"}]`, kind: ParseInvalidShape},
		{name: "missing roleId", text: `[` + ok + `, {"roleTitle": "灯台守", "reason": "r"}]`, kind: ParseInvalidShape},
		{name: "wrong field type", text: `[` + ok + `, {"roleId": "2", "roleTitle": ["x"], "reason": "r"}]`, kind: ParseInvalidShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := parseRoomResponse(tt.text, answers)
			assertParseKind(t, err, tt.kind)
		})
	}
}

func TestParseRoomResponse_DuplicatesAllowedBeyondCatalog(t *testing.T) {
	t.Parallel()

	n := len(domain.RoleCatalog()) + 1
	answers := testAnswers(n)

	text := "["
	for i := range n {
		if i > 0 {
			text += ","
		}
		text += `{"roleId": "1", "roleTitle": "開拓者", "reason": "r"}`
	}
	text += "]"

	got, err := parseRoomResponse(text, answers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != n {
		t.Errorf("assignments: got %d, want %d", len(got), n)
	}
}

func TestParseMemberResponse_Success(t *testing.T) {
	t.Parallel()

	text := `Here you go: {
	  "assignments": [
	    {"memberId": "m1", "memberName": "Taro", "roleId": "2", "roleTitle": "灯台守", "matchScore": 140, "reasoning": "leads"},
	    {"memberId": 7, "memberName": "Hanako", "roleId": "4", "roleTitle": "調停者", "matchScore": "-3"},
	    {"memberId": "m3", "memberName": "Jiro", "roleId": "1", "roleTitle": "開拓者", "matchScore": 91.6, "reasoning": "bold"}
	  ],
	  "recommendations": "meet weekly"
	}`

	got, err := parseMemberResponse(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Source != domain.SourceAI {
		t.Errorf("source: got %q", got.Source)
	}
	if len(got.Assignments) != 3 {
		t.Fatalf("assignments: got %d, want 3", len(got.Assignments))
	}

	scores := []int{got.Assignments[0].MatchScore, got.Assignments[1].MatchScore, got.Assignments[2].MatchScore}
	if scores[0] != 100 || scores[1] != 0 || scores[2] != 92 {
		t.Errorf("scores: got %v, want [100 0 92]", scores)
	}
	if got.Assignments[1].MemberID != "7" {
		t.Errorf("numeric memberId: got %q", got.Assignments[1].MemberID)
	}
	if got.Assignments[1].Reasoning != defaultReasoning {
		t.Errorf("reasoning: got %q", got.Assignments[1].Reasoning)
	}
	if got.TeamAnalysis != defaultTeamAnalysis {
		t.Errorf("teamAnalysis: got %q", got.TeamAnalysis)
	}
	if got.Recommendations == nil || len(got.Recommendations) != 0 {
		t.Errorf("non-array recommendations must become empty, got %#v", got.Recommendations)
	}
}

func TestParseMemberResponse_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		kind ParseKind
	}{
		{name: "no object", text: "nothing here", kind: ParseNoJSON},
		{name: "malformed", text: `{"assignments": [}`, kind: ParseMalformedJSON},
		{name: "assignments missing", text: `{"teamAnalysis": "x"}`, kind: ParseInvalidShape},
		{name: "assignments not array", text: `{"assignments": {"a": 1}}`, kind: ParseInvalidShape},
		{name: "bad score", text: `{"assignments": [{"matchScore": "high"}]}`, kind: ParseMalformedJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := parseMemberResponse(tt.text)
			assertParseKind(t, err, tt.kind)
		})
	}
}

func assertParseKind(t *testing.T, err error, want ParseKind) {
	t.Helper()
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if pe.Kind != want {
		t.Errorf("kind: got %q, want %q (%v)", pe.Kind, want, err)
	}
}
