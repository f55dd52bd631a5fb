package clients

import (
	"context"
	"strings"

	"github.com/jhoicas/Onboarding-api/internal/application/dto"
	"github.com/jhoicas/Onboarding-api/internal/domain"
	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
	"github.com/jhoicas/Onboarding-api/internal/domain/repository"
	"github.com/jhoicas/Onboarding-api/pkg/logger"
)

const notAvailable = "N/A"

// UseCase casos de uso del listado y detalle de clientes.
type UseCase struct {
	repo repository.CustomerRepository
	log  *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.CustomerRepository, log *logger.Logger) *UseCase {
	return &UseCase{repo: repo, log: log.WithComponent("clients")}
}

// List sin filtros pide la página al backend (paginación del servidor);
// con algún filtro pide el resultado completo filtrado y pagina aquí,
// con la misma semántica de page/size en ambos modos.
func (uc *UseCase) List(ctx context.Context, q dto.ClientListQuery) (*dto.ClientPage, error) {
	q.DefaultPage()
	filter := q.Filter().Trimmed()

	if filter.IsEmpty() {
		items, total, err := uc.repo.FindAll(ctx, q.Page-1, q.Size)
		if err != nil {
			uc.log.Error().Err(err).Int("page", q.Page).Msg("erro ao buscar clientes (findAll)")
			return nil, domain.Upstream(err)
		}
		return &dto.ClientPage{Items: toSummaryDTOs(items), Page: q.Page, Size: q.Size, Total: total}, nil
	}

	all, err := uc.repo.FindFiltered(ctx, filter)
	if err != nil {
		uc.log.Error().Err(err).Msg("erro ao buscar clientes (findCliente)")
		return nil, domain.Upstream(err)
	}
	total := len(all)
	start, end := pageBounds(q.Page, q.Size, total)
	return &dto.ClientPage{
		Items:    toSummaryDTOs(all[start:end]),
		Page:     q.Page,
		Size:     q.Size,
		Total:    total,
		Filtered: true,
	}, nil
}

// Detail cadastro del cliente con textos de ejemplo en todo campo vacío.
func (uc *UseCase) Detail(ctx context.Context, cnpj string) (*dto.ClientDetailView, error) {
	cnpj = entity.NormalizeCNPJ(cnpj)
	if cnpj == "" {
		return nil, domain.ErrInvalidInput
	}
	c, err := uc.repo.FindByCNPJ(ctx, cnpj)
	if err != nil {
		uc.log.Error().Err(err).Str("cnpj", cnpj).Msg("erro ao buscar detalhes do cliente")
		return nil, domain.Upstream(err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return BuildDetailView(cnpj, c), nil
}

// BuildDetailView arma la vista del detalle. Acepta contactos, endereço y emails ausentes.
func BuildDetailView(cnpj string, c *entity.Customer) *dto.ClientDetailView {
	var (
		addr   entity.Address
		emails entity.Emails
		first  entity.Contact
	)
	if c.Address != nil {
		addr = *c.Address
	}
	if c.Emails != nil {
		emails = *c.Emails
	}
	if len(c.Contacts) > 0 {
		first = c.Contacts[0]
	}

	return &dto.ClientDetailView{
		CNPJ: cnpj,
		Cadastro: dto.RegistrationView{
			CodigoCliente:  orDefault(c.CustomerID, "Código do Cliente"),
			CNPJ:           orDefault(c.CNPJ, "CNPJ"),
			GrupoEconomico: orDefault(c.EconomicGroup, "Não Consta"),
			RazaoSocial:    orDefault(c.Name, "Razão Social"),
			NomeFantasia:   orDefault(c.TradeName, "Nome Fantasia"),
		},
		Contato: dto.ContactView{
			Celular: orDefault(first.Phone1, orDefault(first.Phone2, "Sem número disponível")),
			Email:   orDefault(emails.Primary, "E-mail"),
			Rua:     orDefault(addr.Street, "Rua/Avenida"),
			Numero:  orDefault(addr.Number, "Número"),
			Cidade:  orDefault(addr.City, "Cidade"),
			Estado:  orDefault(addr.State, "Estado"),
			CEP:     orDefault(addr.PostalCode, "CEP"),
		},
		Empresa: dto.BusinessInfoView{
			InscricaoEstadual: orDefault(c.StateRegistration, "Inscrição Estadual"),
			CNAE:              orDefault(c.CNAE, "CNAE"),
			RamoAtividade:     orDefault(c.CommercialActivity, "Ramo Atividade"),
		},
	}
}

func toSummaryDTOs(list []entity.CustomerSummary) []dto.ClientSummaryDTO {
	out := make([]dto.ClientSummaryDTO, 0, len(list))
	for _, c := range list {
		out = append(out, dto.ClientSummaryDTO{
			ID:            c.ID,
			CNPJ:          orDefault(c.CNPJ, notAvailable),
			RazaoSocial:   orDefault(c.RazaoSocial, notAvailable),
			NomeFantasia:  orDefault(c.NomeFantasia, notAvailable),
			CodigoExterno: orDefault(c.CodigoExterno, notAvailable),
			Filial:        orDefault(c.Filial, notAvailable),
		})
	}
	return out
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// pageBounds límites [start, end) de la página dentro de total elementos.
// Compara antes de multiplicar: una page enorme no debe desbordar.
func pageBounds(page, size, total int) (int, int) {
	pages := (total + size - 1) / size
	if page-1 >= pages {
		return total, total
	}
	start := (page - 1) * size
	end := start + size
	if end > total {
		end = total
	}
	return start, end
}
