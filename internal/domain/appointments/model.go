package appointments

import "time"

// Appointment representa una cita de la clínica.
//
// ScheduledAt en cero significa que la fecha de origen no se pudo parsear
// (data legada): la cita sigue existiendo en las listas (se muestra
// "Invalid Date") pero queda excluida del calendario.
type Appointment struct {
	ID string

	PetID   string
	PetName string

	OwnerUserID string
	OwnerName   string

	ScheduledAt time.Time
	DateLabel   string // fecha cruda tal como se ingresó
	TimeLabel   string // hora para display ("10:30 AM")

	Status Status
	Notes  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasValidDate indica si la cita puede ubicarse en el calendario.
func (a Appointment) HasValidDate() bool {
	return !a.ScheduledAt.IsZero()
}
