package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/icebreaker-backend/internal/domain"
	"github.com/heartmarshall/icebreaker-backend/internal/service/room"
)

// roomService defines the minimal interface needed by RoomHandler.
type roomService interface {
	CreateRoom(ctx context.Context, input room.CreateRoomInput) (*room.CreatedRoom, error)
	GetRoom(ctx context.Context, id string) (*domain.Room, error)
	SubmitAnswer(ctx context.Context, roomID string, input room.SubmitAnswerInput) (*room.Receipt, error)
	GetResults(ctx context.Context, roomID string) (*room.ResultView, error)
}

// RoomHandler serves the room lifecycle endpoints.
type RoomHandler struct {
	svc roomService
	log *slog.Logger
}

// NewRoomHandler creates a RoomHandler.
func NewRoomHandler(svc roomService, logger *slog.Logger) *RoomHandler {
	return &RoomHandler{svc: svc, log: logger.With("handler", "room")}
}

// Routes mounts the room endpoints; the caller picks the prefix.
func (h *RoomHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Post("/{id}/answers", h.SubmitAnswer)
	r.Get("/{id}/results", h.Results)
	return r
}

type createRoomRequest struct {
	Capacity json.RawMessage `json:"capacity"`
}

type createRoomResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type roomResponse struct {
	ID        string            `json:"id"`
	Capacity  int               `json:"capacity"`
	Questions []domain.Question `json:"questions"`
}

type questionAnswerDTO struct {
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
}

type submitAnswerRequest struct {
	Name        string              `json:"name"`
	Birthdate   string              `json:"birthdate"`
	Age         flexInt             `json:"age"`
	Hometown    string              `json:"hometown"`
	Affiliation string              `json:"affiliation"`
	Aspiration  string              `json:"aspiration"`
	Answers     []questionAnswerDTO `json:"answers"`
}

type submitAnswerResponse struct {
	RoomID      string    `json:"roomId"`
	SubmittedAt time.Time `json:"submittedAt"`
	Status      string    `json:"status"`
	Position    int       `json:"position"`
}

type assignmentDTO struct {
	Name             string `json:"name"`
	Birthdate        string `json:"birthdate"`
	Age              int    `json:"age"`
	Hometown         string `json:"hometown"`
	Affiliation      string `json:"affiliation"`
	Aspiration       string `json:"aspiration"`
	RoleID           string `json:"roleId"`
	RoleTitle        string `json:"roleTitle"`
	RoleTitleEnglish string `json:"roleTitleEnglish"`
	Reason           string `json:"reason"`
	Tips             string `json:"tips"`
}

type resultResponse struct {
	RoomID                  string          `json:"roomId"`
	Status                  string          `json:"status"`
	GeneratedAt             *time.Time      `json:"generatedAt,omitempty"`
	Participants            *int            `json:"participants,omitempty"`
	Results                 []assignmentDTO `json:"results,omitempty"`
	Source                  string          `json:"source,omitempty"`
	Message                 string          `json:"message,omitempty"`
	Error                   string          `json:"error,omitempty"`
	Remaining               *int            `json:"remaining,omitempty"`
	EstimatedCompletionTime *time.Time      `json:"estimatedCompletionTime,omitempty"`
}

// flexInt accepts a JSON number or a numeric string. Anything else decodes
// to an invalid marker so validation can report it with the right code.
type flexInt struct {
	Value int
	Valid bool
}

func (f *flexInt) UnmarshalJSON(b []byte) error {
	*f = parseFlexInt(b)
	return nil
}

func parseFlexInt(b []byte) flexInt {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return flexInt{}
	}
	raw := string(b)
	if b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return flexInt{}
		}
		raw = strings.TrimSpace(raw)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return flexInt{}
	}
	return flexInt{Value: n, Valid: true}
}

func (f flexInt) ptr() *int {
	if !f.Valid {
		return nil
	}
	v := f.Value
	return &v
}

// Create handles POST /rooms.
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidBody, err.Error())
		return
	}

	created, err := h.svc.CreateRoom(r.Context(), room.CreateRoomInput{
		Capacity: parseFlexInt(req.Capacity).ptr(),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, createRoomResponse{ID: created.Room.ID, URL: created.URL})
}

// Get handles GET /rooms/{id}.
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	rm, err := h.svc.GetRoom(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, roomResponse{
		ID:        rm.ID,
		Capacity:  rm.Capacity,
		Questions: rm.Questions,
	})
}

// SubmitAnswer handles POST /rooms/{id}/answers.
func (h *RoomHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req submitAnswerRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidBody, err.Error())
		return
	}

	input := room.SubmitAnswerInput{
		Name:        req.Name,
		Birthdate:   req.Birthdate,
		Age:         req.Age.Value,
		Hometown:    req.Hometown,
		Affiliation: req.Affiliation,
		Aspiration:  req.Aspiration,
	}
	if req.Answers != nil {
		input.Answers = make([]domain.QuestionAnswer, len(req.Answers))
		for i, a := range req.Answers {
			input.Answers[i] = domain.QuestionAnswer{QuestionID: a.QuestionID, Answer: a.Answer}
		}
	}

	receipt, err := h.svc.SubmitAnswer(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, submitAnswerResponse{
		RoomID:      receipt.RoomID,
		SubmittedAt: receipt.SubmittedAt,
		Status:      "accepted",
		Position:    receipt.Position,
	})
}

// Results handles GET /rooms/{id}/results. An error record is served with
// status 500 so polling clients stop.
func (h *RoomHandler) Results(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.GetResults(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := resultResponse{RoomID: view.RoomID, Status: view.Status.String()}

	switch view.Status {
	case domain.ResultStatusProcessing:
		remaining := view.Remaining
		eta := view.EstimatedCompletion
		resp.Message = view.Message
		resp.Remaining = &remaining
		resp.EstimatedCompletionTime = &eta
		writeJSON(w, http.StatusOK, resp)

	case domain.ResultStatusError:
		generatedAt := view.Result.GeneratedAt
		resp.GeneratedAt = &generatedAt
		resp.Error = view.Result.ErrorCode
		resp.Message = view.Result.ErrorMessage
		writeJSON(w, http.StatusInternalServerError, resp)

	default:
		generatedAt := view.Result.GeneratedAt
		participants := len(view.Result.Assignments)
		resp.GeneratedAt = &generatedAt
		resp.Participants = &participants
		resp.Source = view.Result.Source.String()
		resp.Results = toAssignmentDTOs(view.Result.Assignments)
		writeJSON(w, http.StatusOK, resp)
	}
}

func toAssignmentDTOs(in []domain.RoleAssignment) []assignmentDTO {
	out := make([]assignmentDTO, len(in))
	for i, a := range in {
		out[i] = assignmentDTO{
			Name:             a.Name,
			Birthdate:        a.Birthdate,
			Age:              a.Age,
			Hometown:         a.Hometown,
			Affiliation:      a.Affiliation,
			Aspiration:       a.Aspiration,
			RoleID:           a.RoleID,
			RoleTitle:        a.RoleTitle,
			RoleTitleEnglish: a.RoleTitleEnglish,
			Reason:           a.Reason,
			Tips:             a.Tips,
		}
	}
	return out
}
