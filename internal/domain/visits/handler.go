package visits

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"raphavets/internal/domain/staff"
	"raphavets/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service, staffSvc *staff.Service) {
	r.Route("/visits", func(vr chi.Router) {
		vr.Post("/", createVisitHandler(svc, staffSvc))
		vr.Get("/", listVisitsHandler(svc, staffSvc))
	})
}

type createVisitRequest struct {
	PetID     string `json:"pet_id"`
	PetName   string `json:"pet_name"`
	OwnerName string `json:"owner"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	VisitType string `json:"visit_type"` // Scheduled | Walk-in
}

type visitResponse struct {
	ID        string    `json:"id"`
	PetID     string    `json:"pet_id,omitempty"`
	PetName   string    `json:"pet_name"`
	OwnerName string    `json:"owner"`
	Date      string    `json:"date"`
	Time      string    `json:"time,omitempty"`
	VisitType VisitType `json:"visit_type"`
	CreatedAt time.Time `json:"created_at"`
}

func createVisitHandler(svc *Service, staffSvc *staff.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if !staffSvc.IsStaff(r.Context(), claims) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req createVisitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		v, err := svc.Create(r.Context(), CreateInput{
			PetID:     req.PetID,
			PetName:   req.PetName,
			OwnerName: req.OwnerName,
			Date:      req.Date,
			Time:      req.Time,
			VisitType: req.VisitType,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toVisitResponse(v))
	}
}

func listVisitsHandler(svc *Service, staffSvc *staff.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if !staffSvc.IsStaff(r.Context(), claims) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var from, to *time.Time
		if v := strings.TrimSpace(r.URL.Query().Get("from")); v != "" {
			t, err := time.ParseInLocation("2006-01-02", v, time.Local)
			if err != nil {
				http.Error(w, "from must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			from = &t
		}
		if v := strings.TrimSpace(r.URL.Query().Get("to")); v != "" {
			t, err := time.ParseInLocation("2006-01-02", v, time.Local)
			if err != nil {
				http.Error(w, "to must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			end := t.Add(24*time.Hour - time.Nanosecond)
			to = &end
		}

		items, err := svc.ListRange(r.Context(), from, to)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]visitResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toVisitResponse(v))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toVisitResponse(v Visit) visitResponse {
	date := "Invalid Date"
	if v.HasValidDate() {
		date = v.VisitedAt.Format("2006-01-02")
	}
	return visitResponse{
		ID:        v.ID,
		PetID:     v.PetID,
		PetName:   v.PetName,
		OwnerName: v.OwnerName,
		Date:      date,
		Time:      v.TimeLabel,
		VisitType: v.VisitType,
		CreatedAt: v.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
