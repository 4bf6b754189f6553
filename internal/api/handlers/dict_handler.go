package handlers

import (
	"net/http"
	"strconv"

	"github.com/TWRT/bitrix-proxy/internal/service"
)

type DictHandler struct {
	dictService *service.DictService
}

func NewDictHandler(dictService *service.DictService) *DictHandler {
	return &DictHandler{
		dictService: dictService,
	}
}

func (h *DictHandler) CompanyCatalog(w http.ResponseWriter, r *http.Request) {
	opts, ok := catalogOptions(w, r)
	if !ok {
		return
	}
	catalog, err := h.dictService.CompanyCatalog(opts)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, catalog)
}

func (h *DictHandler) DealCatalog(w http.ResponseWriter, r *http.Request) {
	opts, ok := catalogOptions(w, r)
	if !ok {
		return
	}
	catalog, err := h.dictService.DealCatalog(opts)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, catalog)
}

func (h *DictHandler) SPACatalog(w http.ResponseWriter, r *http.Request) {
	entityTypeId, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid entityTypeId")
		return
	}
	opts, ok := catalogOptions(w, r)
	if !ok {
		return
	}
	catalog, err := h.dictService.SPACatalog(entityTypeId, opts)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, catalog)
}

func (h *DictHandler) ListSPAs(w http.ResponseWriter, r *http.Request) {
	types, err := h.dictService.ListSPATypes()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types)
}

// catalogOptions lê start, limit e noOptions da query string; valores não
// numéricos respondem 400 direto e devolvem ok=false.
func catalogOptions(w http.ResponseWriter, r *http.Request) (service.CatalogOptions, bool) {
	opts := service.CatalogOptions{}

	if v := r.URL.Query().Get("start"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid start parameter")
			return opts, false
		}
		opts.Start = n
	}

	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit parameter")
			return opts, false
		}
		opts.Limit = n
	}

	noOptions := r.URL.Query().Get("noOptions")
	opts.SkipOptions = noOptions == "1" || noOptions == "true"

	return opts, true
}
