package service

import (
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/TWRT/bitrix-proxy/internal/client"
	"github.com/TWRT/bitrix-proxy/internal/models"
)

// ENTITY_TYPE_ID de empresa na API de requisites do CRM.
const companyEntityTypeId = 4

var addressFields = []string{
	"ADDRESS",
	"ADDRESS_2",
	"ADDRESS_CITY",
	"ADDRESS_POSTAL_CODE",
	"ADDRESS_REGION",
	"ADDRESS_PROVINCE",
	"ADDRESS_COUNTRY",
}

// CompanyService resolve a busca normalizada: um filtro parcial por título e,
// para cada empresa encontrada, detalhe + contatos + requisites fiscais.
type CompanyService struct {
	bitrix client.Caller
}

func NewCompanyService(bitrixClient client.Caller) *CompanyService {
	return &CompanyService{bitrix: bitrixClient}
}

func (s *CompanyService) SearchByName(name string) ([]models.CompanyResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	matches, err := s.bitrix.Call("crm.company.list", map[string]any{
		"filter": map[string]any{"%TITLE": name},
		"select": []string{"ID"},
	})
	if err != nil {
		return nil, fmt.Errorf("crm.company.list: %w", err)
	}

	ids := matchedIds(matches)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w containing %q", ErrNoMatches, name)
	}

	// Uma goroutine por empresa; o slice indexado pela posição da busca
	// preserva a ordem mesmo com os ramos terminando fora de ordem.
	results := make([]models.CompanyResult, len(ids))
	var g errgroup.Group
	for i, id := range ids {
		g.Go(func() error {
			result, err := s.fetchCompany(id)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (s *CompanyService) fetchCompany(id string) (models.CompanyResult, error) {
	raw, err := s.bitrix.Call("crm.company.get", map[string]any{"ID": id})
	if err != nil {
		return models.CompanyResult{}, fmt.Errorf("crm.company.get %s: %w", id, err)
	}
	company, _ := raw.(map[string]any)

	contacts, err := s.fetchContacts(id)
	if err != nil {
		return models.CompanyResult{}, err
	}

	return models.CompanyResult{
		Company: models.CompanyRecord{
			Id:       asString(company["ID"]),
			Title:    asString(company["TITLE"]),
			Type:     asString(company["COMPANY_TYPE"]),
			Industry: asString(company["INDUSTRY"]),
			Email:    firstValue(company["EMAIL"]),
			Phone:    firstValue(company["PHONE"]),
			Website:  firstValue(company["WEB"]),
			Address:  joinAddress(company),
			Legal:    s.fetchLegal(id),
		},
		Contacts: contacts,
	}, nil
}

func (s *CompanyService) fetchContacts(companyId string) ([]models.ContactRecord, error) {
	raw, err := s.bitrix.Call("crm.company.contact.items.get", map[string]any{"ID": companyId})
	if err != nil {
		return nil, fmt.Errorf("crm.company.contact.items.get %s: %w", companyId, err)
	}
	links, _ := raw.([]any)

	contacts := make([]models.ContactRecord, 0, len(links))
	for _, link := range links {
		m, ok := link.(map[string]any)
		if !ok {
			continue
		}
		contactId := asString(m["CONTACT_ID"])
		if contactId == "" {
			continue
		}

		detail, err := s.bitrix.Call("crm.contact.get", map[string]any{"ID": contactId})
		if err != nil {
			return nil, fmt.Errorf("crm.contact.get %s: %w", contactId, err)
		}
		ct, _ := detail.(map[string]any)

		contacts = append(contacts, models.ContactRecord{
			Id:       asString(ct["ID"]),
			Name:     displayName(ct),
			Position: asString(ct["POST"]),
			Email:    firstValue(ct["EMAIL"]),
			Phone:    firstValue(ct["PHONE"]),
		})
	}
	return contacts, nil
}

// fetchLegal é best-effort: qualquer falha vira um bloco legal vazio em vez
// de derrubar a empresa inteira.
func (s *CompanyService) fetchLegal(companyId string) models.LegalInfo {
	raw, err := s.bitrix.Call("crm.requisite.list", map[string]any{
		"filter": map[string]any{
			"ENTITY_TYPE_ID": companyEntityTypeId,
			"ENTITY_ID":      companyId,
		},
	})
	if err != nil {
		return models.LegalInfo{}
	}
	rows, _ := raw.([]any)
	if len(rows) == 0 {
		return models.LegalInfo{}
	}
	r, _ := rows[0].(map[string]any)
	return models.LegalInfo{
		LegalName: asString(r["RQ_COMPANY_NAME"]),
		VatNumber: firstString(r, "RQ_VAT", "RQ_VAT_ID", "RQ_INN"),
	}
}

func matchedIds(result any) []string {
	rows, _ := result.([]any)
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		if m, ok := row.(map[string]any); ok {
			if id := asString(m["ID"]); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// firstValue extrai o VALUE do primeiro elemento de um campo multivalor
// (EMAIL, PHONE, WEB).
func firstValue(v any) string {
	entries, _ := v.([]any)
	if len(entries) == 0 {
		return ""
	}
	if m, ok := entries[0].(map[string]any); ok {
		return asString(m["VALUE"])
	}
	return ""
}

func joinAddress(company map[string]any) string {
	parts := make([]string, 0, len(addressFields))
	for _, f := range addressFields {
		if v := asString(company[f]); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, ", ")
}

func displayName(contact map[string]any) string {
	parts := make([]string, 0, 3)
	for _, f := range []string{"HONORIFIC", "NAME", "LAST_NAME"} {
		if v := asString(contact[f]); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
