package visits

import "time"

// VisitType distingue visitas agendadas de walk-ins.
type VisitType string

const (
	TypeScheduled VisitType = "Scheduled"
	TypeWalkIn    VisitType = "Walk-in"
)

// Visit es un registro histórico: no tiene estado ni transiciones, solo
// existe para el calendario y el log de la clínica.
type Visit struct {
	ID string

	PetID   string
	PetName string

	OwnerName string

	VisitedAt time.Time // cero => fecha legada no parseable
	DateLabel string
	TimeLabel string

	VisitType VisitType

	CreatedAt time.Time
}

func (v Visit) HasValidDate() bool {
	return !v.VisitedAt.IsZero()
}
