package service

import (
	"fmt"

	"github.com/TWRT/bitrix-proxy/internal/client"
)

// ProxyService expõe os métodos do Bitrix repassados sem normalização.
type ProxyService struct {
	bitrix client.Caller
}

func NewProxyService(bitrixClient client.Caller) *ProxyService {
	return &ProxyService{bitrix: bitrixClient}
}

func (s *ProxyService) CompanyFields() (any, error) {
	return s.bitrix.Call("crm.company.fields", nil)
}

func (s *ProxyService) CompanyUserFields() (any, error) {
	return s.bitrix.Call("crm.company.userfield.list", nil)
}

func (s *ProxyService) DealFields() (any, error) {
	return s.bitrix.Call("crm.deal.fields", nil)
}

func (s *ProxyService) DealUserFields() (any, error) {
	return s.bitrix.Call("crm.deal.userfield.list", nil)
}

func (s *ProxyService) DealUserField(id string) (any, error) {
	return s.bitrix.Call("crm.deal.userfield.get", map[string]any{"ID": id})
}

func (s *ProxyService) Types() (any, error) {
	return s.bitrix.Call("crm.type.list", nil)
}

func (s *ProxyService) TypeFields(entityTypeId int) (any, error) {
	return s.bitrix.Call("crm.item.fields", map[string]any{"entityTypeId": entityTypeId})
}

func (s *ProxyService) TypeUserFields(entityTypeId int) (any, error) {
	return s.bitrix.Call("userfieldconfig.list", map[string]any{
		"moduleId": "crm",
		"filter":   map[string]any{"entityId": fmt.Sprintf("CRM_%d", entityTypeId)},
	})
}
