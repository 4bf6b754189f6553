package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/TWRT/bitrix-proxy/internal/client/bitrix"
	"github.com/TWRT/bitrix-proxy/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError mapeia a taxonomia de erros para o status HTTP.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNameRequired):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNoMatches):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		var upstream *bitrix.UpstreamError
		if errors.As(err, &upstream) {
			// O corpo leva a mensagem do Bitrix, sem o contexto de wrapping.
			writeError(w, http.StatusInternalServerError, upstream.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
