package staff

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"raphavets/internal/middleware"
	"raphavets/internal/ports/auth"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/staff", func(sr chi.Router) {
		sr.Post("/", assignHandler(svc))
		sr.Get("/", listHandler(svc))
		sr.Post("/{assignmentID}/revoke", revokeHandler(svc))
	})
}

type assignRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"` // vet | admin
}

type assignmentResponse struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Role      string     `json:"role"`
	Status    Status     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
}

func assignHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if !svc.IsAdmin(r.Context(), claims) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req assignRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var role auth.Role
		switch strings.ToLower(strings.TrimSpace(req.Role)) {
		case "vet":
			role = auth.RoleVet
		case "admin":
			role = auth.RoleAdmin
		default:
			http.Error(w, "role must be vet or admin", http.StatusBadRequest)
			return
		}

		a, err := svc.Assign(r.Context(), req.UserID, role)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toAssignmentResponse(a))
	}
}

func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if !svc.IsAdmin(r.Context(), claims) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]assignmentResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAssignmentResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func revokeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if !svc.IsAdmin(r.Context(), claims) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		a, err := svc.Revoke(r.Context(), chi.URLParam(r, "assignmentID"))
		if err != nil {
			switch err {
			case ErrNotFound:
				http.Error(w, "assignment not found", http.StatusNotFound)
			case ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toAssignmentResponse(a))
	}
}

func toAssignmentResponse(a Assignment) assignmentResponse {
	return assignmentResponse{
		ID:        a.ID,
		UserID:    a.UserID,
		Role:      string(a.Role),
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
		RevokedAt: a.RevokedAt,
	}
}

// writeJSON se duplica por módulo a propósito (mismo criterio que en
// appointments/pets): todavía no amerita un helper compartido.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
