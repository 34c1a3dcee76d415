package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/heartmarshall/icebreaker-backend/internal/domain"
	"github.com/heartmarshall/icebreaker-backend/internal/service/assignment"
	"github.com/heartmarshall/icebreaker-backend/internal/service/room"
)

var fixedNow = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

func newTestRouter(t *testing.T, rooms *roomServiceMock, roles *memberAssignerMock) http.Handler {
	t.Helper()
	if rooms == nil {
		rooms = &roomServiceMock{}
	}
	if roles == nil {
		roles = &memberAssignerMock{}
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(RouterConfig{
		Rooms:       NewRoomHandler(rooms, log),
		Roles:       NewRoleHandler(roles, log),
		Health:      NewHealthHandler(&storePingerMock{}, "memory", "test"),
		Metrics:     http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { io.WriteString(w, "# metrics") }),
		MetricsPath: "/metrics",
	})
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func assertError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	resp := decode[errorResponse](t, rec)
	if resp.Error != code {
		t.Errorf("error code: got %q, want %q", resp.Error, code)
	}
	if resp.Message == "" {
		t.Error("expected non-empty message")
	}
}

// ---------------------------------------------------------------------------
// Routing
// ---------------------------------------------------------------------------

func TestRouter_NotFound(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"/nope", "/api/nope", "/rooms/r1/nope"} {
		rec := do(t, newTestRouter(t, nil, nil), http.MethodGet, path, "")
		assertError(t, rec, http.StatusNotFound, CodeNotFound)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	rec := do(t, newTestRouter(t, nil, nil), http.MethodDelete, "/rooms/r1", "")
	assertError(t, rec, http.StatusMethodNotAllowed, CodeMethod)
}

func TestRouter_MetricsAndProbes(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, nil, nil)
	for _, path := range []string{"/metrics", "/live", "/ready", "/api/health", "/api/roles/health"} {
		if rec := do(t, h, http.MethodGet, path, ""); rec.Code != http.StatusOK {
			t.Errorf("%s: got %d, want 200", path, rec.Code)
		}
	}
}

// ---------------------------------------------------------------------------
// Rooms
// ---------------------------------------------------------------------------

func TestCreateRoom_Created(t *testing.T) {
	t.Parallel()

	rooms := &roomServiceMock{
		CreateRoomFunc: func(ctx context.Context, input room.CreateRoomInput) (*room.CreatedRoom, error) {
			return &room.CreatedRoom{Room: &domain.Room{ID: "r1"}, URL: "http://x/rooms/r1"}, nil
		},
	}
	h := newTestRouter(t, rooms, nil)

	rec := do(t, h, http.MethodPost, "/rooms", `{"capacity": 4}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201", rec.Code)
	}
	resp := decode[createRoomResponse](t, rec)
	if resp.ID != "r1" || resp.URL != "http://x/rooms/r1" {
		t.Errorf("response: got %+v", resp)
	}
	if got := rooms.CreateRoomCalls()[0].Input.Capacity; got == nil || *got != 4 {
		t.Errorf("capacity passed: got %v", got)
	}
}

func TestCreateRoom_CapacityParsing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		body string
		want *int
	}{
		{body: `{"capacity": "7"}`, want: ptr(7)},
		{body: `{"capacity": " 3 "}`, want: ptr(3)},
		{body: `{"capacity": "abc"}`, want: nil},
		{body: `{"capacity": 2.5}`, want: nil},
		{body: `{"capacity": null}`, want: nil},
		{body: `{}`, want: nil},
	}

	for _, tt := range tests {
		rooms := &roomServiceMock{
			CreateRoomFunc: func(ctx context.Context, input room.CreateRoomInput) (*room.CreatedRoom, error) {
				return nil, domain.NewValidationErrors(domain.CodeInvalidCapacity, []domain.FieldError{{Field: "capacity", Message: "bad"}})
			},
		}
		rec := do(t, newTestRouter(t, rooms, nil), http.MethodPost, "/rooms", tt.body)
		assertError(t, rec, http.StatusBadRequest, domain.CodeInvalidCapacity)

		got := rooms.CreateRoomCalls()[0].Input.Capacity
		switch {
		case tt.want == nil && got != nil:
			t.Errorf("%s: capacity should be nil, got %d", tt.body, *got)
		case tt.want != nil && (got == nil || *got != *tt.want):
			t.Errorf("%s: capacity got %v, want %d", tt.body, got, *tt.want)
		}
	}
}

func TestCreateRoom_InvalidBody(t *testing.T) {
	t.Parallel()

	rooms := &roomServiceMock{}
	rec := do(t, newTestRouter(t, rooms, nil), http.MethodPost, "/rooms", `{"capacity":`)
	assertError(t, rec, http.StatusBadRequest, CodeInvalidBody)
	if len(rooms.CreateRoomCalls()) != 0 {
		t.Error("service must not be called for a malformed body")
	}
}

func TestGetRoom(t *testing.T) {
	t.Parallel()

	rooms := &roomServiceMock{
		GetRoomFunc: func(ctx context.Context, id string) (*domain.Room, error) {
			if id != "r1" {
				return nil, domain.ErrNotFound
			}
			return &domain.Room{ID: "r1", Capacity: 3, Questions: domain.QuestionPool()[:1]}, nil
		},
	}
	h := newTestRouter(t, rooms, nil)

	rec := do(t, h, http.MethodGet, "/rooms/r1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{`"id":"r1"`, `"capacity":3`, `"questionId":"q1"`, `"question":`} {
		if !strings.Contains(body, want) {
			t.Errorf("body should contain %s: %s", want, body)
		}
	}

	rec = do(t, h, http.MethodGet, "/rooms/r2", "")
	assertError(t, rec, http.StatusNotFound, CodeRoomNotFound)
}

func TestSubmitAnswer_Accepted(t *testing.T) {
	t.Parallel()

	rooms := &roomServiceMock{
		SubmitAnswerFunc: func(ctx context.Context, roomID string, input room.SubmitAnswerInput) (*room.Receipt, error) {
			return &room.Receipt{RoomID: roomID, SubmittedAt: fixedNow, Position: 1}, nil
		},
	}
	h := newTestRouter(t, rooms, nil)

	rec := do(t, h, http.MethodPost, "/rooms/r1/answers", `{
		"name": "Taro", "birthdate": "2000-01-01", "age": "26", "hometown": "Osaka",
		"affiliation": "Dev", "aspiration": "Try", "answers": [{"questionId": "q1", "answer": "Books"}]
	}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d (%s)", rec.Code, rec.Body.String())
	}
	resp := decode[submitAnswerResponse](t, rec)
	if resp.RoomID != "r1" || resp.Status != "accepted" || resp.Position != 1 || !resp.SubmittedAt.Equal(fixedNow) {
		t.Errorf("response: got %+v", resp)
	}

	in := rooms.SubmitAnswerCalls()[0].Input
	if in.Age != 26 || in.Name != "Taro" || len(in.Answers) != 1 || in.Answers[0].QuestionID != "q1" {
		t.Errorf("input: got %+v", in)
	}
}

func TestSubmitAnswer_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "room full", err: domain.ErrRoomFull, status: http.StatusBadRequest, code: CodeRoomFull},
		{name: "not found", err: domain.ErrNotFound, status: http.StatusNotFound, code: CodeRoomNotFound},
		{name: "missing fields", err: domain.NewValidationErrors(domain.CodeMissingFields, []domain.FieldError{{Field: "name", Message: "required"}}), status: http.StatusBadRequest, code: domain.CodeMissingFields},
		{name: "missing answers", err: domain.NewValidationErrors(domain.CodeMissingAnswers, []domain.FieldError{{Field: "answers.q1", Message: "answer required"}}), status: http.StatusBadRequest, code: domain.CodeMissingAnswers},
		{name: "internal", err: errors.New("pq: connection refused"), status: http.StatusInternalServerError, code: CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rooms := &roomServiceMock{
				SubmitAnswerFunc: func(ctx context.Context, roomID string, input room.SubmitAnswerInput) (*room.Receipt, error) {
					return nil, tt.err
				},
			}
			rec := do(t, newTestRouter(t, rooms, nil), http.MethodPost, "/rooms/r1/answers", `{"name":"x"}`)
			assertError(t, rec, tt.status, tt.code)
			if tt.status == http.StatusInternalServerError && strings.Contains(rec.Body.String(), "pq:") {
				t.Error("internal error detail must not leak")
			}
		})
	}
}

func TestResults_Processing(t *testing.T) {
	t.Parallel()

	rooms := &roomServiceMock{
		GetResultsFunc: func(ctx context.Context, roomID string) (*room.ResultView, error) {
			return &room.ResultView{
				RoomID:              roomID,
				Status:              domain.ResultStatusProcessing,
				Remaining:           2,
				Message:             "あと2人の回答を待っています。",
				EstimatedCompletion: fixedNow,
			}, nil
		},
	}

	rec := do(t, newTestRouter(t, rooms, nil), http.MethodGet, "/rooms/r1/results", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	resp := decode[resultResponse](t, rec)
	if resp.Status != "processing" || resp.Remaining == nil || *resp.Remaining != 2 {
		t.Errorf("response: got %+v", resp)
	}
	if resp.EstimatedCompletionTime == nil || !resp.EstimatedCompletionTime.Equal(fixedNow) {
		t.Errorf("estimatedCompletionTime: got %v", resp.EstimatedCompletionTime)
	}
	if resp.Results != nil {
		t.Error("processing payload must not carry results")
	}
}

func TestResults_Completed(t *testing.T) {
	t.Parallel()

	rooms := &roomServiceMock{
		GetResultsFunc: func(ctx context.Context, roomID string) (*room.ResultView, error) {
			return &room.ResultView{
				RoomID: roomID,
				Status: domain.ResultStatusCompleted,
				Result: &domain.Result{
					Source:      domain.SourceAI,
					GeneratedAt: fixedNow,
					Assignments: []domain.RoleAssignment{
						{Name: "a", RoleID: "1", RoleTitle: "開拓者", RoleTitleEnglish: "Pioneer", Reason: "r", Tips: "t"},
						{Name: "b", RoleID: "2", RoleTitle: "灯台守", RoleTitleEnglish: "Lighthouse Keeper", Reason: "r", Tips: "t"},
					},
				},
			}, nil
		},
	}

	rec := do(t, newTestRouter(t, rooms, nil), http.MethodGet, "/rooms/r1/results", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	resp := decode[resultResponse](t, rec)
	if resp.Status != "completed" || resp.Participants == nil || *resp.Participants != 2 {
		t.Errorf("response: got %+v", resp)
	}
	if len(resp.Results) != 2 || resp.Results[1].RoleTitleEnglish != "Lighthouse Keeper" {
		t.Errorf("results: got %+v", resp.Results)
	}
	if resp.Source != "ai" {
		t.Errorf("source: got %q", resp.Source)
	}
}

func TestResults_ErrorRecord(t *testing.T) {
	t.Parallel()

	rooms := &roomServiceMock{
		GetResultsFunc: func(ctx context.Context, roomID string) (*room.ResultView, error) {
			r := domain.NewErrorResult("GENERATION_FAILED", "role generation failed", fixedNow)
			return &room.ResultView{RoomID: roomID, Status: domain.ResultStatusError, Result: &r}, nil
		},
	}

	rec := do(t, newTestRouter(t, rooms, nil), http.MethodGet, "/rooms/r1/results", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want 500", rec.Code)
	}
	resp := decode[resultResponse](t, rec)
	if resp.Status != "error" || resp.Error != "GENERATION_FAILED" || resp.Message != "role generation failed" {
		t.Errorf("response: got %+v", resp)
	}
}

// ---------------------------------------------------------------------------
// Roles
// ---------------------------------------------------------------------------

func TestListRoles_StableCatalog(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, nil, nil)
	first := do(t, h, http.MethodGet, "/api/roles", "").Body.String()
	second := do(t, h, http.MethodGet, "/api/roles", "").Body.String()

	if first != second {
		t.Error("catalog must be identical across calls")
	}
	if !strings.Contains(first, `"englishTitle":"Pioneer"`) {
		t.Errorf("unexpected body: %s", first)
	}
}

func TestAssignMembers_OK(t *testing.T) {
	t.Parallel()

	roles := &memberAssignerMock{
		AssignMembersFunc: func(ctx context.Context, input assignment.AssignMembersInput) (*domain.TeamAssignment, error) {
			return &domain.TeamAssignment{
				Assignments:  []domain.MemberAssignment{{MemberID: "m1", RoleID: "1", MatchScore: 90, Reasoning: "r"}},
				TeamAnalysis: "ok",
				Source:       domain.SourceFallback,
			}, nil
		},
	}

	rec := do(t, newTestRouter(t, nil, roles), http.MethodPost, "/api/roles/assign", `{
		"members": [{"id": "m1", "name": "A", "birthday": "2000-01-01", "age": 20,
			"hometown": "X", "organization": "Y", "motivation": "Z"}]
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (%s)", rec.Code, rec.Body.String())
	}
	resp := decode[assignResponse](t, rec)
	if len(resp.Assignments) != 1 || resp.Assignments[0].MatchScore != 90 {
		t.Errorf("response: got %+v", resp)
	}
	if resp.Recommendations == nil {
		t.Error("recommendations must serialize as an array")
	}

	in := roles.AssignMembersCalls()[0].Input
	if len(in.Members) != 1 || in.Members[0].Age != 20 || in.AvailableRoles != nil {
		t.Errorf("input: got %+v", in)
	}
}

func TestAssignMembers_Validation(t *testing.T) {
	t.Parallel()

	roles := &memberAssignerMock{
		AssignMembersFunc: func(ctx context.Context, input assignment.AssignMembersInput) (*domain.TeamAssignment, error) {
			return nil, input.Validate()
		},
	}
	h := newTestRouter(t, nil, roles)

	rec := do(t, h, http.MethodPost, "/api/roles/assign", `{"members": []}`)
	assertError(t, rec, http.StatusBadRequest, domain.CodeInvalidInput)

	rec = do(t, h, http.MethodPost, "/api/roles/assign", `{"members": [{"id": "m1", "name": "A"}]}`)
	assertError(t, rec, http.StatusBadRequest, domain.CodeValidation)
}

func ptr[T any](v T) *T { return &v }
