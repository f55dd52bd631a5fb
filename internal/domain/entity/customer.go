package entity

import "strings"

// Customer representa el cadastro de un cliente tal como lo devuelve el backend.
// Es de solo lectura para el dashboard; altas y cambios ocurren del lado del backend.
type Customer struct {
	CustomerID         string
	CNPJ               string
	EconomicGroup      string
	Name               string // razão social
	TradeName          string // nome fantasia
	StateRegistration  string // inscrição estadual
	CNAE               string
	CommercialActivity string
	Emails             *Emails
	Address            *Address
	Contacts           []Contact
}

// Emails correos del cliente.
type Emails struct {
	Primary   string
	Secondary string
}

// Address endereço del cliente.
type Address struct {
	Street     string
	Number     string
	City       string
	State      string
	PostalCode string
}

// Contact persona de contacto; los teléfonos pueden venir vacíos.
type Contact struct {
	Name   string
	Email  string
	Phone1 string
	Phone2 string
	Mobile string
}

// CustomerSummary fila del listado de clientes ("Relatório de Contas").
type CustomerSummary struct {
	ID            int64
	CNPJ          string
	RazaoSocial   string
	NomeFantasia  string
	CodigoExterno string
	Filial        string
}

// ClientFilter filtros avanzados del listado.
type ClientFilter struct {
	RazaoSocial   string
	CNPJ          string
	CodigoCliente string
	Filial        string
}

// Trimmed devuelve el filtro con espacios recortados en todos los campos.
func (f ClientFilter) Trimmed() ClientFilter {
	return ClientFilter{
		RazaoSocial:   strings.TrimSpace(f.RazaoSocial),
		CNPJ:          strings.TrimSpace(f.CNPJ),
		CodigoCliente: strings.TrimSpace(f.CodigoCliente),
		Filial:        strings.TrimSpace(f.Filial),
	}
}

// IsEmpty es true cuando ningún campo tiene contenido (tras recortar).
func (f ClientFilter) IsEmpty() bool {
	t := f.Trimmed()
	return t.RazaoSocial == "" && t.CNPJ == "" && t.CodigoCliente == "" && t.Filial == ""
}

// NormalizeCNPJ conserva sólo los dígitos ("12.345.678/0001-90" -> "12345678000190").
func NormalizeCNPJ(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
