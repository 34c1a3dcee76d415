package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/icebreaker-backend/internal/domain"
	"github.com/heartmarshall/icebreaker-backend/internal/service/assignment"
)

// memberAssigner defines the minimal interface needed by RoleHandler.
type memberAssigner interface {
	AssignMembers(ctx context.Context, input assignment.AssignMembersInput) (*domain.TeamAssignment, error)
}

// RoleHandler serves the role catalog and the direct member-assignment API.
type RoleHandler struct {
	svc memberAssigner
	log *slog.Logger
	now func() time.Time
}

// NewRoleHandler creates a RoleHandler.
func NewRoleHandler(svc memberAssigner, logger *slog.Logger) *RoleHandler {
	return &RoleHandler{svc: svc, log: logger.With("handler", "role"), now: time.Now}
}

// Routes mounts the role endpoints; the caller picks the prefix.
func (h *RoleHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/assign", h.Assign)
	r.Get("/health", h.Health)
	return r
}

type memberDTO struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Birthday     string  `json:"birthday"`
	Age          flexInt `json:"age"`
	Hometown     string  `json:"hometown"`
	Organization string  `json:"organization"`
	Motivation   string  `json:"motivation"`
}

type assignRequest struct {
	Members        []memberDTO   `json:"members"`
	AvailableRoles []domain.Role `json:"availableRoles"`
}

type memberAssignmentDTO struct {
	MemberID   string `json:"memberId"`
	MemberName string `json:"memberName"`
	RoleID     string `json:"roleId"`
	RoleTitle  string `json:"roleTitle"`
	MatchScore int    `json:"matchScore"`
	Reasoning  string `json:"reasoning"`
}

type assignResponse struct {
	Assignments     []memberAssignmentDTO `json:"assignments"`
	TeamAnalysis    string                `json:"teamAnalysis"`
	Recommendations []string              `json:"recommendations"`
	Source          string                `json:"source"`
}

type rolesResponse struct {
	Roles []domain.Role `json:"roles"`
}

type serviceHealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
}

// List handles GET /api/roles.
func (h *RoleHandler) List(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, rolesResponse{Roles: domain.RoleCatalog()})
}

// Assign handles POST /api/roles/assign.
func (h *RoleHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidBody, err.Error())
		return
	}

	input := assignment.AssignMembersInput{
		Members:        make([]domain.Member, len(req.Members)),
		AvailableRoles: req.AvailableRoles,
	}
	for i, m := range req.Members {
		input.Members[i] = domain.Member{
			ID:           m.ID,
			Name:         m.Name,
			Birthday:     m.Birthday,
			Age:          m.Age.Value,
			Hometown:     m.Hometown,
			Organization: m.Organization,
			Motivation:   m.Motivation,
		}
	}

	team, err := h.svc.AssignMembers(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := assignResponse{
		Assignments:     make([]memberAssignmentDTO, len(team.Assignments)),
		TeamAnalysis:    team.TeamAnalysis,
		Recommendations: team.Recommendations,
		Source:          team.Source.String(),
	}
	if resp.Recommendations == nil {
		resp.Recommendations = []string{}
	}
	for i, a := range team.Assignments {
		resp.Assignments[i] = memberAssignmentDTO{
			MemberID:   a.MemberID,
			MemberName: a.MemberName,
			RoleID:     a.RoleID,
			RoleTitle:  a.RoleTitle,
			MatchScore: a.MatchScore,
			Reasoning:  a.Reasoning,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Health handles GET /api/roles/health.
func (h *RoleHandler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, serviceHealthResponse{
		Status:    "healthy",
		Timestamp: h.now().UTC(),
		Service:   "Role Assignment Service",
	})
}
