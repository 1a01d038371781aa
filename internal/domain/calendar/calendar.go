package calendar

import (
	"time"

	"raphavets/internal/domain/appointments"
	"raphavets/internal/domain/visits"
)

// Política de densidad de la grilla, igual que la vista original:
// con DenseThreshold o más eventos combinados el día pasa a "modo denso"
// (marcadores compactos); nunca se muestran más de MaxMarkers marcadores,
// el resto colapsa en un indicador "+N more".
const (
	DenseThreshold = 4
	MaxMarkers     = 6
)

type EntryKind string

const (
	KindAppointment EntryKind = "appointment"
	KindVisit       EntryKind = "visit"
)

// Entry es la unidad combinada (cita o visita) que se ubica en la grilla.
type Entry struct {
	Kind EntryKind

	ID        string
	PetName   string
	OwnerName string
	TimeLabel string

	// Day es la medianoche local del día de la entrada.
	Day time.Time

	// Status solo aplica a citas; vacío en visitas.
	Status string
}

// FromAppointments convierte citas en entradas de calendario. Las citas con
// fecha inválida quedan afuera de todos los buckets (fail soft).
func FromAppointments(items []appointments.Appointment) []Entry {
	out := make([]Entry, 0, len(items))
	for _, a := range items {
		if !a.HasValidDate() {
			continue
		}
		out = append(out, Entry{
			Kind:      KindAppointment,
			ID:        a.ID,
			PetName:   a.PetName,
			OwnerName: a.OwnerName,
			TimeLabel: a.TimeLabel,
			Day:       dayOf(a.ScheduledAt),
			Status:    string(a.Status),
		})
	}
	return out
}

// FromVisits convierte visitas, con la misma exclusión de fechas inválidas.
func FromVisits(items []visits.Visit) []Entry {
	out := make([]Entry, 0, len(items))
	for _, v := range items {
		if !v.HasValidDate() {
			continue
		}
		out = append(out, Entry{
			Kind:      KindVisit,
			ID:        v.ID,
			PetName:   v.PetName,
			OwnerName: v.OwnerName,
			TimeLabel: v.TimeLabel,
			Day:       dayOf(v.VisitedAt),
		})
	}
	return out
}

// Cell es una celda de la grilla mensual. Day == 0 es un placeholder vacío
// delante del día 1 (para alinear el weekday de arranque).
type Cell struct {
	Day     int
	Entries []Entry

	// Dense indica modo compacto (>= DenseThreshold eventos combinados).
	Dense bool
	// Markers son las entradas que efectivamente se dibujan (cap MaxMarkers).
	Markers []Entry
	// Overflow es el N de "+N more" cuando hay más de MaxMarkers. 0 si no hay.
	Overflow int
}

type Grid struct {
	Year  int
	Month time.Month

	// LeadingBlanks = weekday del día 1 (domingo = 0).
	LeadingBlanks int
	DaysInMonth   int

	// Cells incluye los placeholders: len(Cells) == LeadingBlanks + DaysInMonth.
	Cells []Cell
}

// MonthGrid arma la grilla del mes con el bucket por día de las entradas.
// Entradas fuera del mes se ignoran; la comparación de día es naive sobre
// fecha local, sin timezones.
func MonthGrid(year int, month time.Month, entries []Entry) Grid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	blanks := int(first.Weekday())
	days := daysInMonth(year, month)

	byDay := make(map[int][]Entry)
	for _, e := range entries {
		if e.Day.Year() != year || e.Day.Month() != month {
			continue
		}
		d := e.Day.Day()
		byDay[d] = append(byDay[d], e)
	}

	cells := make([]Cell, 0, blanks+days)
	for i := 0; i < blanks; i++ {
		cells = append(cells, Cell{})
	}
	for d := 1; d <= days; d++ {
		cells = append(cells, newCell(d, byDay[d]))
	}

	return Grid{
		Year:          year,
		Month:         month,
		LeadingBlanks: blanks,
		DaysInMonth:   days,
		Cells:         cells,
	}
}

func newCell(day int, entries []Entry) Cell {
	c := Cell{
		Day:     day,
		Entries: entries,
		Dense:   len(entries) >= DenseThreshold,
	}

	if len(entries) > MaxMarkers {
		c.Markers = entries[:MaxMarkers]
		c.Overflow = len(entries) - MaxMarkers
	} else {
		c.Markers = entries
	}

	return c
}

// DayEntries devuelve las entradas del día seleccionado, particionadas en
// citas y visitas (el panel lateral de la vista las separa).
func DayEntries(entries []Entry, day time.Time) (appts, vis []Entry) {
	want := dayOf(day)
	appts = make([]Entry, 0)
	vis = make([]Entry, 0)
	for _, e := range entries {
		if !e.Day.Equal(want) {
			continue
		}
		if e.Kind == KindVisit {
			vis = append(vis, e)
		} else {
			appts = append(appts, e)
		}
	}
	return appts, vis
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

func daysInMonth(year int, month time.Month) int {
	// El día 0 del mes siguiente es el último día de este mes.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()
}
