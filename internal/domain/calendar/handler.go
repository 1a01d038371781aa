package calendar

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"raphavets/internal/domain/appointments"
	"raphavets/internal/domain/staff"
	"raphavets/internal/domain/visits"
	"raphavets/internal/middleware"
)

func RegisterRoutes(r chi.Router, apptSvc *appointments.Service, visitSvc *visits.Service, staffSvc *staff.Service) {
	r.Route("/calendar/{year}/{month}", func(cr chi.Router) {
		cr.Get("/", monthHandler(apptSvc, visitSvc, staffSvc))
		cr.Get("/ics", icsHandler(apptSvc, visitSvc, staffSvc))
	})
}

type entryItem struct {
	Kind    EntryKind `json:"kind"`
	ID      string    `json:"id"`
	PetName string    `json:"pet_name"`
	Owner   string    `json:"owner,omitempty"`
	Time    string    `json:"time,omitempty"`
	Status  string    `json:"status,omitempty"`
}

type cellItem struct {
	Day      int         `json:"day"` // 0 = placeholder
	Entries  []entryItem `json:"entries"`
	Dense    bool        `json:"dense"`
	Markers  []entryItem `json:"markers"`
	Overflow int         `json:"overflow"`
}

type selectedDay struct {
	Day          int         `json:"day"`
	Appointments []entryItem `json:"appointments"`
	Visits       []entryItem `json:"visits"`
}

type monthResponse struct {
	Year          int          `json:"year"`
	Month         int          `json:"month"`
	LeadingBlanks int          `json:"leading_blanks"`
	DaysInMonth   int          `json:"days_in_month"`
	Cells         []cellItem   `json:"cells"`
	Selected      *selectedDay `json:"selected,omitempty"`
}

// monthHandler godoc
// @Summary Grilla mensual de citas y visitas
// @Description Buckets por día para el mes pedido (placeholders incluidos para alinear el weekday del día 1). `day` opcional selecciona un día y particiona sus entradas en citas y visitas.
// @Tags calendar
// @Produce json
// @Param year path int true "Año"
// @Param month path int true "Mes 1-12"
// @Param day query int false "Día seleccionado"
// @Success 200 {object} monthResponse
// @Failure 400 {string} string "year/month inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /calendar/{year}/{month} [get]
func monthHandler(apptSvc *appointments.Service, visitSvc *visits.Service, staffSvc *staff.Service) http.HandlerFunc {
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

		year, month, ok := parseYearMonth(r)
		if !ok {
			http.Error(w, "invalid year/month", http.StatusBadRequest)
			return
		}

		entries, err := monthEntries(r, apptSvc, visitSvc, year, month)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		grid := MonthGrid(year, month, entries)

		resp := monthResponse{
			Year:          grid.Year,
			Month:         int(grid.Month),
			LeadingBlanks: grid.LeadingBlanks,
			DaysInMonth:   grid.DaysInMonth,
			Cells:         toCellItems(grid.Cells),
		}

		if v := strings.TrimSpace(r.URL.Query().Get("day")); v != "" {
			d, err := strconv.Atoi(v)
			if err != nil || d < 1 || d > grid.DaysInMonth {
				http.Error(w, "invalid day", http.StatusBadRequest)
				return
			}
			day := time.Date(year, month, d, 0, 0, 0, 0, time.Local)
			appts, vis := DayEntries(entries, day)
			resp.Selected = &selectedDay{
				Day:          d,
				Appointments: toEntryItems(appts),
				Visits:       toEntryItems(vis),
			}
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func icsHandler(apptSvc *appointments.Service, visitSvc *visits.Service, staffSvc *staff.Service) http.HandlerFunc {
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

		year, month, ok := parseYearMonth(r)
		if !ok {
			http.Error(w, "invalid year/month", http.StatusBadRequest)
			return
		}

		entries, err := monthEntries(r, apptSvc, visitSvc, year, month)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(MonthICS(year, month, entries)))
	}
}

func monthEntries(r *http.Request, apptSvc *appointments.Service, visitSvc *visits.Service, year int, month time.Month) ([]Entry, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)

	appts, err := apptSvc.List(r.Context(), appointments.ListFilter{
		Status: appointments.FilterAll,
		From:   &from,
		To:     &to,
	})
	if err != nil {
		return nil, err
	}

	vis, err := visitSvc.ListRange(r.Context(), &from, &to)
	if err != nil {
		return nil, err
	}

	entries := FromAppointments(appts)
	entries = append(entries, FromVisits(vis)...)
	return entries, nil
}

func parseYearMonth(r *http.Request) (int, time.Month, bool) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 1970 || year > 9999 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || m < 1 || m > 12 {
		return 0, 0, false
	}
	return year, time.Month(m), true
}

func toEntryItems(entries []Entry) []entryItem {
	out := make([]entryItem, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryItem{
			Kind:    e.Kind,
			ID:      e.ID,
			PetName: e.PetName,
			Owner:   e.OwnerName,
			Time:    e.TimeLabel,
			Status:  e.Status,
		})
	}
	return out
}

func toCellItems(cells []Cell) []cellItem {
	out := make([]cellItem, 0, len(cells))
	for _, c := range cells {
		out = append(out, cellItem{
			Day:      c.Day,
			Entries:  toEntryItems(c.Entries),
			Dense:    c.Dense,
			Markers:  toEntryItems(c.Markers),
			Overflow: c.Overflow,
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
