package handlers

import (
	"net/http"
	"strconv"

	"github.com/TWRT/bitrix-proxy/internal/service"
)

// ProxyHandler atende as rotas /api/bitrix/* que repassam a resposta do CRM
// sem normalizar.
type ProxyHandler struct {
	proxyService *service.ProxyService
}

func NewProxyHandler(proxyService *service.ProxyService) *ProxyHandler {
	return &ProxyHandler{
		proxyService: proxyService,
	}
}

func (h *ProxyHandler) CompanyFields(w http.ResponseWriter, r *http.Request) {
	h.passthrough(w, h.proxyService.CompanyFields)
}

func (h *ProxyHandler) CompanyUserFields(w http.ResponseWriter, r *http.Request) {
	h.passthrough(w, h.proxyService.CompanyUserFields)
}

func (h *ProxyHandler) DealFields(w http.ResponseWriter, r *http.Request) {
	h.passthrough(w, h.proxyService.DealFields)
}

func (h *ProxyHandler) DealUserFields(w http.ResponseWriter, r *http.Request) {
	h.passthrough(w, h.proxyService.DealUserFields)
}

func (h *ProxyHandler) DealUserField(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	h.passthrough(w, func() (any, error) {
		return h.proxyService.DealUserField(id)
	})
}

func (h *ProxyHandler) Types(w http.ResponseWriter, r *http.Request) {
	h.passthrough(w, h.proxyService.Types)
}

func (h *ProxyHandler) TypeFields(w http.ResponseWriter, r *http.Request) {
	entityTypeId, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid entityTypeId")
		return
	}
	h.passthrough(w, func() (any, error) {
		return h.proxyService.TypeFields(entityTypeId)
	})
}

func (h *ProxyHandler) TypeUserFields(w http.ResponseWriter, r *http.Request) {
	entityTypeId, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid entityTypeId")
		return
	}
	h.passthrough(w, func() (any, error) {
		return h.proxyService.TypeUserFields(entityTypeId)
	})
}

func (h *ProxyHandler) passthrough(w http.ResponseWriter, call func() (any, error)) {
	result, err := call()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
