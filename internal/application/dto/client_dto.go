package dto

import "github.com/jhoicas/Onboarding-api/internal/domain/entity"

// ClientListQuery filtros avanzados + paginación de GET /api/clients.
type ClientListQuery struct {
	RazaoSocial   string `query:"razaoSocial" validate:"max=200"`
	CNPJ          string `query:"cnpjCliente" validate:"max=18"`
	CodigoCliente string `query:"codigoCliente" validate:"max=50"`
	Filial        string `query:"filial" validate:"max=100"`
	PageRequest
}

// Filter convierte la query en filtro de dominio.
func (q ClientListQuery) Filter() entity.ClientFilter {
	return entity.ClientFilter{
		RazaoSocial:   q.RazaoSocial,
		CNPJ:          q.CNPJ,
		CodigoCliente: q.CodigoCliente,
		Filial:        q.Filial,
	}
}

// ClientSummaryDTO fila del "Relatório de Contas". Campos vacíos salen como "N/A".
type ClientSummaryDTO struct {
	ID            int64  `json:"id_cliente"`
	CNPJ          string `json:"cnpjCliente"`
	RazaoSocial   string `json:"razaoSocial"`
	NomeFantasia  string `json:"nmFantasia"`
	CodigoExterno string `json:"cdClienteExterno"`
	Filial        string `json:"nmEmpresa"`
}

// ClientPage página de clientes. Filtered indica que la paginación la hizo este servicio.
type ClientPage struct {
	Items    []ClientSummaryDTO `json:"items"`
	Page     int                `json:"page"`
	Size     int                `json:"size"`
	Total    int                `json:"total"`
	Filtered bool               `json:"filtered"`
}

// ClientDetailView cadastro listo para los campos deshabilitados del detalle.
// Ningún campo queda vacío: lo que falta se reemplaza por su texto de ejemplo.
type ClientDetailView struct {
	CNPJ     string           `json:"cnpjCliente"`
	Cadastro RegistrationView `json:"dadosCadastrais"`
	Contato  ContactView      `json:"contato"`
	Empresa  BusinessInfoView `json:"informacoesEmpresariais"`
}

// RegistrationView sección "Dados Cadastrais".
type RegistrationView struct {
	CodigoCliente  string `json:"codigoCliente"`
	CNPJ           string `json:"cnpj"`
	GrupoEconomico string `json:"grupoEconomico"`
	RazaoSocial    string `json:"razaoSocial"`
	NomeFantasia   string `json:"nomeFantasia"`
}

// ContactView sección "Contato".
type ContactView struct {
	Celular string `json:"celular"`
	Email   string `json:"email"`
	Rua     string `json:"rua"`
	Numero  string `json:"numero"`
	Cidade  string `json:"cidade"`
	Estado  string `json:"estado"`
	CEP     string `json:"cep"`
}

// BusinessInfoView sección "Informações Empresariais".
type BusinessInfoView struct {
	InscricaoEstadual string `json:"inscricaoEstadual"`
	CNAE              string `json:"cnae"`
	RamoAtividade     string `json:"ramoAtividade"`
}
