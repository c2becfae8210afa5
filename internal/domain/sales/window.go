// Package sales contiene reglas puras del motor de ventas (ventanas de fecha, abonos).
package sales

import (
	"strings"
	"time"

	"github.com/jhoicas/pos-ventas-api/internal/domain"
)

// Period palabra clave del filtro de ventas.
type Period string

const (
	PeriodAll   Period = ""
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// ParsePeriod valida el filtro recibido en la query. Vacío significa sin filtro.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case PeriodAll, PeriodToday, PeriodWeek, PeriodMonth, PeriodYear:
		return p, nil
	}
	return PeriodAll, domain.InvalidField("filtro", "debe ser today, week, month o year")
}

// Window devuelve el rango [start, end) alineado al calendario en loc.
// La semana empieza el lunes. Para PeriodAll ok es false.
func Window(p Period, now time.Time, loc *time.Location) (start, end time.Time, ok bool) {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)
	y, m, d := now.Date()
	switch p {
	case PeriodToday:
		start = time.Date(y, m, d, 0, 0, 0, 0, loc)
		end = start.AddDate(0, 0, 1)
	case PeriodWeek:
		offset := (int(now.Weekday()) + 6) % 7 // lunes = 0
		start = time.Date(y, m, d-offset, 0, 0, 0, 0, loc)
		end = start.AddDate(0, 0, 7)
	case PeriodMonth:
		start = time.Date(y, m, 1, 0, 0, 0, 0, loc)
		end = start.AddDate(0, 1, 0)
	case PeriodYear:
		start = time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
		end = start.AddDate(1, 0, 0)
	default:
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}
