package handlers

import (
	"net/http"

	"github.com/TWRT/bitrix-proxy/internal/service"
)

type CompanyHandler struct {
	companyService *service.CompanyService
}

func NewCompanyHandler(companyService *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{
		companyService: companyService,
	}
}

func (h *CompanyHandler) SearchNormalized(w http.ResponseWriter, r *http.Request) {
	results, err := h.companyService.SearchByName(r.URL.Query().Get("name"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}
