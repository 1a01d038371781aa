package appointments

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
	r.Route("/appointment", func(ar chi.Router) {
		// Vista del dueño (los mismos paths que consumen los front-ends)
		ar.Get("/user", listUserAppointmentsHandler(svc))
		ar.Put("/cancel/{appointmentID}", cancelAppointmentHandler(svc, staffSvc))

		// Staff
		ar.Post("/", createAppointmentHandler(svc, staffSvc))
		ar.Get("/", listAppointmentsHandler(svc, staffSvc))

		// Tooling de admin
		ar.Put("/status", bulkStatusHandler(svc, staffSvc))
		ar.Delete("/", bulkDeleteHandler(svc, staffSvc))
	})
}

type createAppointmentRequest struct {
	PetID       string `json:"pet_id"`
	PetName     string `json:"pet_name"`
	OwnerUserID string `json:"owner_user_id"`
	OwnerName   string `json:"owner"`
	Date        string `json:"date"` // admite "YYYY-MM-DD", "fecha • hora", "fecha - hora"
	Time        string `json:"time"`
	Status      string `json:"status"` // opcional, default Pending
	Notes       string `json:"notes"`
}

// appointmentResponse representa una cita devuelta por la API.
type appointmentResponse struct {
	ID        string    `json:"id"`
	PetID     string    `json:"pet_id,omitempty"`
	PetName   string    `json:"pet_name"`
	OwnerName string    `json:"owner"`
	Date      string    `json:"date"` // "YYYY-MM-DD" o "Invalid Date"
	Time      string    `json:"time,omitempty"`
	Status    Status    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type bulkStatusRequest struct {
	IDs    []string `json:"ids"`
	Status string   `json:"status"`
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

type bulkResponse struct {
	Updated []string          `json:"updated"`
	Failed  []bulkFailureItem `json:"failed"`
}

type bulkFailureItem struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// listUserAppointmentsHandler godoc
// @Summary Listar citas del usuario autenticado
// @Description Devuelve las citas del dueño autenticado. `status` y `q` aplican el mismo filtro estable que usan las vistas de lista (status=All o vacío no filtra; q busca substring case-insensitive en mascota y dueño).
// @Tags appointments
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param status query string false "All|Pending|Upcoming|Completed|Cancelled"
// @Param q query string false "Texto de búsqueda libre"
// @Success 200 {array} appointmentResponse
// @Failure 400 {string} string "status desconocido"
// @Failure 401 {string} string "unauthorized"
// @Router /appointment/user [get]
func listUserAppointmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		sf, ok := ParseStatusFilter(r.URL.Query().Get("status"))
		if !ok {
			http.Error(w, "unknown status filter", http.StatusBadRequest)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		items = Filter(items, sf, r.URL.Query().Get("q"))
		writeJSON(w, http.StatusOK, toAppointmentResponses(items))
	}
}

// cancelAppointmentHandler godoc
// @Summary Cancelar una cita
// @Description Pending|Upcoming pasan a Cancelled; Completed/Cancelled responden 409 sin mutar nada. El dueño solo cancela citas propias; staff cancela cualquiera.
// @Tags appointments
// @Produce json
// @Param appointmentID path string true "ID de la cita"
// @Success 200 {object} appointmentResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "appointment not found"
// @Failure 409 {string} string "appointment is not cancelable"
// @Router /appointment/cancel/{appointmentID} [put]
func cancelAppointmentHandler(svc *Service, staffSvc *staff.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		id := chi.URLParam(r, "appointmentID")
		isStaff := staffSvc.IsStaff(r.Context(), claims)

		a, err := svc.Cancel(r.Context(), id, claims.UserID, isStaff)
		if err != nil {
			switch err {
			case ErrNotFound:
				http.Error(w, "appointment not found", http.StatusNotFound)
			case ErrForbidden:
				http.Error(w, "forbidden", http.StatusForbidden)
			case ErrBadState:
				http.Error(w, "appointment is not cancelable", http.StatusConflict)
			case ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toAppointmentResponse(a))
	}
}

func createAppointmentHandler(svc *Service, staffSvc *staff.Service) http.HandlerFunc {
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

		var req createAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Create(r.Context(), CreateInput{
			PetID:       req.PetID,
			PetName:     req.PetName,
			OwnerUserID: req.OwnerUserID,
			OwnerName:   req.OwnerName,
			Date:        req.Date,
			Time:        req.Time,
			Status:      req.Status,
			Notes:       req.Notes,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toAppointmentResponse(a))
	}
}

func listAppointmentsHandler(svc *Service, staffSvc *staff.Service) http.HandlerFunc {
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

		sf, ok := ParseStatusFilter(r.URL.Query().Get("status"))
		if !ok {
			http.Error(w, "unknown status filter", http.StatusBadRequest)
			return
		}

		filter := ListFilter{
			Status: sf,
			Query:  r.URL.Query().Get("q"),
		}

		if v := strings.TrimSpace(r.URL.Query().Get("from")); v != "" {
			t, err := time.ParseInLocation("2006-01-02", v, time.Local)
			if err != nil {
				http.Error(w, "from must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			filter.From = &t
		}
		if v := strings.TrimSpace(r.URL.Query().Get("to")); v != "" {
			t, err := time.ParseInLocation("2006-01-02", v, time.Local)
			if err != nil {
				http.Error(w, "to must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			end := t.Add(24*time.Hour - time.Nanosecond)
			filter.To = &end
		}

		items, err := svc.List(r.Context(), filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toAppointmentResponses(items))
	}
}

func bulkStatusHandler(svc *Service, staffSvc *staff.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if !staffSvc.IsAdmin(r.Context(), claims) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req bulkStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		res, err := svc.BulkUpdateStatus(r.Context(), req.IDs, req.Status)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusOK, toBulkResponse(res))
	}
}

func bulkDeleteHandler(svc *Service, staffSvc *staff.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if !staffSvc.IsAdmin(r.Context(), claims) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req bulkDeleteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		res, err := svc.BulkDelete(r.Context(), req.IDs)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusOK, toBulkResponse(res))
	}
}

func toAppointmentResponse(a Appointment) appointmentResponse {
	date := "Invalid Date"
	if a.HasValidDate() {
		date = a.ScheduledAt.Format("2006-01-02")
	}
	return appointmentResponse{
		ID:        a.ID,
		PetID:     a.PetID,
		PetName:   a.PetName,
		OwnerName: a.OwnerName,
		Date:      date,
		Time:      a.TimeLabel,
		Status:    a.Status,
		Notes:     a.Notes,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func toAppointmentResponses(items []Appointment) []appointmentResponse {
	out := make([]appointmentResponse, 0, len(items))
	for _, a := range items {
		out = append(out, toAppointmentResponse(a))
	}
	return out
}

func toBulkResponse(res BulkResult) bulkResponse {
	out := bulkResponse{
		Updated: res.Updated,
		Failed:  make([]bulkFailureItem, 0, len(res.Failed)),
	}
	if out.Updated == nil {
		out.Updated = []string{}
	}
	for _, f := range res.Failed {
		out.Failed = append(out.Failed, bulkFailureItem{ID: f.ID, Reason: f.Reason})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
