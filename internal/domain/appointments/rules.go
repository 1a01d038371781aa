package appointments

import "strings"

// Reglas de transición de estado. Son predicados puros y totales: ante un
// estado desconocido responden "no" (fail safe, nunca fail open).

// IsEditable: solo Pending y Upcoming admiten edición.
func IsEditable(s Status) bool {
	return statusIs(s, StatusPending) || statusIs(s, StatusUpcoming)
}

// IsCancelable: mismas condiciones que IsEditable; se mantienen separadas
// porque son decisiones de negocio distintas que hoy coinciden.
func IsCancelable(s Status) bool {
	return statusIs(s, StatusPending) || statusIs(s, StatusUpcoming)
}

// IsTerminal: Completed y Cancelled no vuelven atrás.
func IsTerminal(s Status) bool {
	return statusIs(s, StatusCompleted) || statusIs(s, StatusCancelled)
}

// statusIs tolera casing sucio de data vieja sin replicarlo hacia afuera.
func statusIs(s, want Status) bool {
	return strings.EqualFold(string(s), string(want))
}
