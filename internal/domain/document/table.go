package document

import (
	"time"

	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
)

// Row fila de la tabla de documentos de un cliente.
type Row struct {
	Type      Type       `json:"type"`
	Status    Status     `json:"status"`
	FileName  string     `json:"file_name,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// BuildTable genera una fila por tipo del registro, en orden de presentación.
// Con varios registros del mismo tipo gana el de vencimiento más lejano
// (nil cuenta como indeterminado, el más lejano posible).
// Devuelve además los registros cuyo tipo el registro no conoce.
func BuildTable(reg *Registry, records []entity.DocumentRecord, now time.Time) (rows []Row, unknown []entity.DocumentRecord) {
	latest := make(map[int]entity.DocumentRecord, len(records))
	for _, rec := range records {
		t, err := reg.ByID(rec.TypeID)
		if err != nil {
			if t, err = reg.ByName(rec.Description); err != nil {
				unknown = append(unknown, rec)
				continue
			}
		}
		prev, ok := latest[t.ID]
		if !ok || laterExpiry(rec.ExpiresAt, prev.ExpiresAt) {
			latest[t.ID] = rec
		}
	}

	for _, t := range reg.Options() {
		rec, ok := latest[t.ID]
		rows = append(rows, Row{
			Type:      t,
			Status:    Classify(ok, rec.ExpiresAt, now),
			FileName:  rec.FileName,
			ExpiresAt: rec.ExpiresAt,
		})
	}
	return rows, unknown
}

// FilterRows conserva sólo las filas con el estado dado.
func FilterRows(rows []Row, st Status) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if r.Status == st {
			out = append(out, r)
		}
	}
	return out
}

// CountByStatus totales por estado para la leyenda.
func CountByStatus(rows []Row) map[Status]int {
	counts := make(map[Status]int, len(Statuses))
	for _, st := range Statuses {
		counts[st] = 0
	}
	for _, r := range rows {
		counts[r.Status]++
	}
	return counts
}

func laterExpiry(a, b *time.Time) bool {
	if b == nil {
		return false
	}
	if a == nil {
		return true
	}
	return a.After(*b)
}
