package document

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/Onboarding-api/internal/domain"
)

// Type tipo de documento conocido por el backend.
type Type struct {
	ID   int    `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Registry mapeo bidireccional nombre visible <-> clave/id del backend.
// Es inmutable después de construido; seguro para uso concurrente.
type Registry struct {
	types  []Type
	byName map[string]Type
	byKey  map[string]Type
	byID   map[int]Type
}

// NewRegistry construye el registro. El orden de types es el orden de presentación.
func NewRegistry(types ...Type) *Registry {
	r := &Registry{
		types:  make([]Type, 0, len(types)),
		byName: make(map[string]Type, len(types)),
		byKey:  make(map[string]Type, len(types)),
		byID:   make(map[int]Type, len(types)),
	}
	for _, t := range types {
		r.types = append(r.types, t)
		r.byName[normalizeName(t.Name)] = t
		r.byKey[t.Key] = t
		r.byID[t.ID] = t
	}
	return r
}

// DefaultRegistry tipos fijos del onboarding.
func DefaultRegistry() *Registry {
	return NewRegistry(
		Type{ID: 1, Key: "DOCUMENTO_PESSOAL", Name: "DOCUMENTO PESSOAL"},
		Type{ID: 2, Key: "CONTRATO_SOCIAL", Name: "CONTRATO SOCIAL"},
		Type{ID: 3, Key: "CARTAO_CNPJ", Name: "CNPJ"},
		Type{ID: 4, Key: "COMPROVANTE_RESIDENCIA", Name: "COMPROVANTE DE RESIDENCIA"},
		Type{ID: 5, Key: "TERMO_ADESAO", Name: "TERMO DE ADESÃO"},
	)
}

// Options tipos en orden de presentación (opciones del select).
func (r *Registry) Options() []Type {
	out := make([]Type, len(r.types))
	copy(out, r.types)
	return out
}

// ByName busca por nombre visible, sin distinguir mayúsculas ni acentos.
func (r *Registry) ByName(name string) (Type, error) {
	t, ok := r.byName[normalizeName(name)]
	if !ok {
		return Type{}, domain.ErrInvalidDocumentType
	}
	return t, nil
}

// ByKey busca por clave del backend.
func (r *Registry) ByKey(key string) (Type, error) {
	t, ok := r.byKey[strings.TrimSpace(key)]
	if !ok {
		return Type{}, domain.ErrInvalidDocumentType
	}
	return t, nil
}

// ByID busca por id del backend.
func (r *Registry) ByID(id int) (Type, error) {
	t, ok := r.byID[id]
	if !ok {
		return Type{}, domain.ErrInvalidDocumentType
	}
	return t, nil
}

// Resolve acepta nombre visible o clave; es lo que llega desde el formulario.
func (r *Registry) Resolve(nameOrKey string) (Type, error) {
	if t, err := r.ByKey(nameOrKey); err == nil {
		return t, nil
	}
	return r.ByName(nameOrKey)
}

// normalizeName pasa a mayúsculas, quita acentos y colapsa espacios.
func normalizeName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(strings.ToUpper(out)), " ")
}
