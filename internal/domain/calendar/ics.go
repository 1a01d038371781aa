package calendar

import (
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
)

const defaultSlotLength = 30 * time.Minute

var timeLabelLayouts = []string{
	"3:04 PM",
	"3:04PM",
	"15:04",
}

// MonthICS serializa las entradas de un mes como calendario iCalendar, para
// suscribirse desde un cliente externo. Las entradas cuya etiqueta de hora
// no se entiende salen como eventos de día completo.
func MonthICS(year int, month time.Month, entries []Entry) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//RaphaVets//Clinic Calendar//ES")

	now := time.Now()

	for _, e := range entries {
		if e.Day.Year() != year || e.Day.Month() != month {
			continue
		}

		ev := cal.AddEvent(fmt.Sprintf("%s-%s@raphavets", e.Kind, e.ID))
		ev.SetDtStampTime(now)
		ev.SetSummary(entrySummary(e))

		if start, ok := entryStart(e); ok {
			ev.SetStartAt(start)
			ev.SetEndAt(start.Add(defaultSlotLength))
		} else {
			ev.SetAllDayStartAt(e.Day)
			ev.SetAllDayEndAt(e.Day.AddDate(0, 0, 1))
		}

		if e.OwnerName != "" {
			ev.SetDescription("Owner: " + e.OwnerName)
		}
	}

	return cal.Serialize()
}

func entrySummary(e Entry) string {
	label := e.PetName
	if label == "" {
		label = string(e.Kind)
	}
	if e.Kind == KindVisit {
		return label + " (visit)"
	}
	if e.Status != "" {
		return fmt.Sprintf("%s (%s)", label, strings.ToLower(e.Status))
	}
	return label
}

func entryStart(e Entry) (time.Time, bool) {
	label := strings.TrimSpace(e.TimeLabel)
	if label == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLabelLayouts {
		if t, err := time.Parse(layout, strings.ToUpper(label)); err == nil {
			return time.Date(
				e.Day.Year(), e.Day.Month(), e.Day.Day(),
				t.Hour(), t.Minute(), 0, 0, time.Local,
			), true
		}
	}
	return time.Time{}, false
}
