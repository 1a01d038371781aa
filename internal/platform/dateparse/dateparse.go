package dateparse

import (
	"fmt"
	"strings"
	"time"
)

// Los front-ends legados mandan la fecha/hora en varias codificaciones:
// combinadas ("2024-05-12 • 10:30 AM", "May 12, 2024 - 10:30") o fecha sola.
// Aquí detectamos el formato y devolvemos un par canónico (fecha, etiqueta hora).

type Format string

const (
	FormatBulletCombined Format = "bullet_combined" // "fecha • hora"
	FormatDashCombined   Format = "dash_combined"   // "fecha - hora"
	FormatPlainDate      Format = "plain_date"
)

// ParseError indica que el string no coincide con ningún formato conocido.
// Se loguea en el borde de ingestión; nunca debe propagarse como panic.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("dateparse: %q: %s", e.Input, e.Reason)
}

// Result es el par canónico (fecha, etiqueta de hora para display).
type Result struct {
	Format Format
	Date   time.Time // medianoche local del día; la hora vive en TimeLabel
	// TimeLabel conserva la hora tal como vino ("10:30 AM"). Vacío si no vino.
	TimeLabel string
}

var dateLayouts = []string{
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"01/02/2006",
	"2/1/2006",
}

// Detect clasifica el string sin parsearlo del todo.
func Detect(s string) Format {
	if strings.Contains(s, "•") {
		return FormatBulletCombined
	}
	// " - " con espacios para no confundir con el guion de "2006-01-02".
	if strings.Contains(s, " - ") {
		return FormatDashCombined
	}
	return FormatPlainDate
}

// Parse convierte un string heterogéneo de fecha (posiblemente combinada con
// hora) en un Result canónico. Ante cualquier formato desconocido devuelve
// *ParseError; el caller decide si excluye la entrada (fail soft) o rechaza.
func Parse(s string) (Result, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Result{}, &ParseError{Input: s, Reason: "empty"}
	}

	f := Detect(raw)
	switch f {
	case FormatBulletCombined:
		return parseCombined(raw, "•", f)
	case FormatDashCombined:
		return parseCombined(raw, " - ", f)
	default:
		d, err := parseDate(raw)
		if err != nil {
			return Result{}, err
		}
		return Result{Format: FormatPlainDate, Date: d}, nil
	}
}

func parseCombined(raw, sep string, f Format) (Result, error) {
	parts := strings.SplitN(raw, sep, 2)
	if len(parts) != 2 {
		return Result{}, &ParseError{Input: raw, Reason: "separator without two parts"}
	}

	d, err := parseDate(strings.TrimSpace(parts[0]))
	if err != nil {
		return Result{}, err
	}

	return Result{
		Format:    f,
		Date:      d,
		TimeLabel: strings.TrimSpace(parts[1]),
	}, nil
}

func parseDate(s string) (time.Time, error) {
	// RFC3339 primero: si viene con hora embebida, la separamos como label.
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local), nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}

	return time.Time{}, &ParseError{Input: s, Reason: "unrecognized date format"}
}
