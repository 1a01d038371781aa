package appointments

import "strings"

// Filter selecciona el subconjunto a mostrar. Es estable: preserva el orden
// relativo de entrada y devuelve siempre un slice nuevo (nunca re-ordena).
//
// - filter == FilterAll saltea la comparación de estado por completo.
// - query vacío matchea todo; si no, substring case-insensitive sobre
//   nombre de mascota y de dueño.
func Filter(list []Appointment, filter StatusFilter, query string) []Appointment {
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]Appointment, 0, len(list))
	for _, a := range list {
		if filter != FilterAll && !strings.EqualFold(string(a.Status), string(filter)) {
			continue
		}
		if q != "" {
			hay := strings.ToLower(a.PetName + " " + a.OwnerName)
			if !strings.Contains(hay, q) {
				continue
			}
		}
		out = append(out, a)
	}
	return out
}
