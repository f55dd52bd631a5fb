package document

import (
	"time"

	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
)

// RequirementView documento exigido con su estado calculado.
type RequirementView struct {
	Name      string     `json:"name"`
	Status    Status     `json:"status"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// ProductView producto con la conciliación de documentos.
type ProductView struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	DocumentsComplete bool              `json:"documents_complete"`
	Contracted        bool              `json:"contracted"`
	Requirements      []RequirementView `json:"documents"`
}

// AggregateProduct clasifica cada documento exigido y decide la contratación:
// contratado = elegible en el backend y todos los documentos válidos.
func AggregateProduct(p entity.Product, now time.Time) ProductView {
	view := ProductView{
		ID:                p.ID,
		Name:              p.Name,
		DocumentsComplete: true,
		Requirements:      make([]RequirementView, 0, len(p.Requirements)),
	}
	for _, req := range p.Requirements {
		st := Classify(req.Satisfied, req.ExpiresAt, now)
		if st != StatusValid {
			view.DocumentsComplete = false
		}
		view.Requirements = append(view.Requirements, RequirementView{
			Name:      req.Name,
			Status:    st,
			ExpiresAt: req.ExpiresAt,
		})
	}
	view.Contracted = p.Eligible && view.DocumentsComplete
	return view
}
