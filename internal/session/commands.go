package session

import "raphavets/internal/domain/appointments"

// Los callbacks ad hoc de la vista original se modelan como comandos
// explícitos: la capa de orquestación los procesa contra el colaborador
// y actualiza la copia local.

type Command interface {
	isCommand()
}

// CancelAppointment cancela una cita de la lista local. Si la copia local
// ya está en estado terminal se rechaza sin tocar la red.
type CancelAppointment struct {
	ID string
}

// SetFilter cambia el estado de filtro de la vista. Supersede cualquier
// refresh en vuelo (guardia anti-respuesta-vieja).
type SetFilter struct {
	Status appointments.StatusFilter
	Query  string
}

// BulkUpdateStatus aplica un estado destino a un set de ids (tooling admin).
type BulkUpdateStatus struct {
	IDs    []string
	Status appointments.Status
}

// BulkDelete borra un set de ids (tooling admin).
type BulkDelete struct {
	IDs []string
}

func (CancelAppointment) isCommand() {}
func (SetFilter) isCommand()         {}
func (BulkUpdateStatus) isCommand()  {}
func (BulkDelete) isCommand()        {}
