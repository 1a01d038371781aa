package appointments

import "strings"

// Status es el estado de una cita. Casing canónico: se normaliza una sola
// vez en el borde de ingestión, nunca se comparan strings crudos después.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusUpcoming  Status = "Upcoming"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

var canonicalStatuses = []Status{
	StatusPending,
	StatusUpcoming,
	StatusCompleted,
	StatusCancelled,
}

// NormalizeStatus mapea cualquier casing de entrada al valor canónico.
// ok=false si el string no corresponde a ningún estado conocido.
func NormalizeStatus(s string) (Status, bool) {
	s = strings.TrimSpace(s)
	for _, c := range canonicalStatuses {
		if strings.EqualFold(s, string(c)) {
			return c, true
		}
	}
	return "", false
}

// StatusFilter es el selector de la vista de lista. "All" saltea por
// completo la comparación de estado.
type StatusFilter string

const (
	FilterAll       StatusFilter = "All"
	FilterPending   StatusFilter = "Pending"
	FilterUpcoming  StatusFilter = "Upcoming"
	FilterCompleted StatusFilter = "Completed"
	FilterCancelled StatusFilter = "Cancelled"
)

// ParseStatusFilter acepta cualquier casing; vacío equivale a All.
func ParseStatusFilter(s string) (StatusFilter, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, string(FilterAll)) {
		return FilterAll, true
	}
	if st, ok := NormalizeStatus(s); ok {
		return StatusFilter(st), true
	}
	return "", false
}
