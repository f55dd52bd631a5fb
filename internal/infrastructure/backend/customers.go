package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
	"github.com/jhoicas/Onboarding-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*Client)(nil)

type clientRow struct {
	ID               int64  `json:"id_cliente"`
	CNPJ             string `json:"cnpjCliente"`
	RazaoSocial      string `json:"razaoSocial"`
	NmFantasia       string `json:"nmFantasia"`
	CdClienteExterno string `json:"cdClienteExterno"`
	NmEmpresa        string `json:"nmEmpresa"`
}

func (r clientRow) toEntity() entity.CustomerSummary {
	return entity.CustomerSummary{
		ID:            r.ID,
		CNPJ:          r.CNPJ,
		RazaoSocial:   r.RazaoSocial,
		NomeFantasia:  r.NmFantasia,
		CodigoExterno: r.CdClienteExterno,
		Filial:        r.NmEmpresa,
	}
}

type clientPage struct {
	Content       []clientRow `json:"content"`
	TotalElements int         `json:"totalElements"`
}

// findClienteRequest sólo lleva los campos informados.
type findClienteRequest struct {
	RazaoSocial   string `json:"razaoSocial,omitempty"`
	CNPJCliente   string `json:"cnpjCliente,omitempty"`
	CodigoCliente string `json:"codigoCliente,omitempty"`
	Filial        string `json:"filial,omitempty"`
}

type customerDetail struct {
	CustomerID         string `json:"customerId"`
	CustomerCNPJ       string `json:"customerCnpj"`
	EconomicGroup      string `json:"economicGroup"`
	Name               string `json:"name"`
	TradeName          string `json:"tradeName"`
	CustomerIE         string `json:"customerIe"`
	CNAE               string `json:"cnae"`
	CommercialActivity string `json:"commercialActivity"`
	Emails             *struct {
		Primary   string `json:"primary"`
		Secondary string `json:"secondary"`
	} `json:"emails"`
	Address *struct {
		Street     string `json:"street"`
		Number     string `json:"number"`
		City       string `json:"city"`
		State      string `json:"state"`
		PostalCode string `json:"postalCode"`
	} `json:"address"`
	Contact []struct {
		Name   string `json:"name"`
		Email  string `json:"email"`
		Phone1 string `json:"phone1"`
		Phone2 string `json:"phone2"`
		Mobile string `json:"mobile"`
	} `json:"contact"`
}

// FindAll página del servidor (page en base 0).
func (c *Client) FindAll(ctx context.Context, page, size int) ([]entity.CustomerSummary, int, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))

	var out clientPage
	if err := c.doJSON(ctx, http.MethodGet, pathClientsFindAll, "clients_find_all", q, nil, &out); err != nil {
		return nil, 0, err
	}
	list := make([]entity.CustomerSummary, 0, len(out.Content))
	for _, r := range out.Content {
		list = append(list, r.toEntity())
	}
	total := out.TotalElements
	if total < len(list) {
		total = len(list)
	}
	return list, total, nil
}

// FindFiltered resultado completo del filtro. El backend puede responder un arreglo,
// una página {content: [...]} o un único objeto.
func (c *Client) FindFiltered(ctx context.Context, filter entity.ClientFilter) ([]entity.CustomerSummary, error) {
	f := filter.Trimmed()
	in := findClienteRequest{
		RazaoSocial:   f.RazaoSocial,
		CNPJCliente:   f.CNPJ,
		CodigoCliente: f.CodigoCliente,
		Filial:        f.Filial,
	}
	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodPost, pathClientsFind, "clients_find", nil, in, &raw); err != nil {
		return nil, err
	}
	rows, err := decodeClientRows(raw)
	if err != nil {
		return nil, err
	}
	list := make([]entity.CustomerSummary, 0, len(rows))
	for _, r := range rows {
		list = append(list, r.toEntity())
	}
	return list, nil
}

func decodeClientRows(raw json.RawMessage) ([]clientRow, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	if raw[0] == '[' {
		var rows []clientRow
		if err := json.Unmarshal(raw, &rows); err != nil {
			return nil, fmt.Errorf("backend: lista de clientes inválida: %w", err)
		}
		return rows, nil
	}
	var page struct {
		Content *[]clientRow `json:"content"`
	}
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, fmt.Errorf("backend: resposta de clientes inválida: %w", err)
	}
	if page.Content != nil {
		return *page.Content, nil
	}
	var one clientRow
	if err := json.Unmarshal(raw, &one); err != nil {
		return nil, fmt.Errorf("backend: cliente inválido: %w", err)
	}
	if one == (clientRow{}) {
		return nil, nil
	}
	return []clientRow{one}, nil
}

// FindByCNPJ cadastro completo; (nil, nil) si el backend no lo conoce.
func (c *Client) FindByCNPJ(ctx context.Context, cnpj string) (*entity.Customer, error) {
	var out *customerDetail
	err := c.doJSON(ctx, http.MethodGet, pathClientDetail+url.PathEscape(cnpj), "client_detail", nil, nil, &out)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if out == nil {
		return nil, nil
	}
	return out.toEntity(), nil
}

func (d *customerDetail) toEntity() *entity.Customer {
	c := &entity.Customer{
		CustomerID:         d.CustomerID,
		CNPJ:               d.CustomerCNPJ,
		EconomicGroup:      d.EconomicGroup,
		Name:               d.Name,
		TradeName:          d.TradeName,
		StateRegistration:  d.CustomerIE,
		CNAE:               d.CNAE,
		CommercialActivity: d.CommercialActivity,
	}
	if d.Emails != nil {
		c.Emails = &entity.Emails{Primary: d.Emails.Primary, Secondary: d.Emails.Secondary}
	}
	if d.Address != nil {
		c.Address = &entity.Address{
			Street:     d.Address.Street,
			Number:     d.Address.Number,
			City:       d.Address.City,
			State:      d.Address.State,
			PostalCode: d.Address.PostalCode,
		}
	}
	for _, ct := range d.Contact {
		c.Contacts = append(c.Contacts, entity.Contact{
			Name:   ct.Name,
			Email:  ct.Email,
			Phone1: ct.Phone1,
			Phone2: ct.Phone2,
			Mobile: ct.Mobile,
		})
	}
	return c
}
