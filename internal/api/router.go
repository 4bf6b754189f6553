package api

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/TWRT/bitrix-proxy/internal/api/handlers"
	"github.com/TWRT/bitrix-proxy/internal/client/bitrix"
	"github.com/TWRT/bitrix-proxy/internal/repository"
	"github.com/TWRT/bitrix-proxy/internal/service"
)

func SetupRouter(bitrixClient *bitrix.Client, cache *repository.DictCacheRepository, apiKey string, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	dictService := service.NewDictService(bitrixClient, cache, logger)
	companyService := service.NewCompanyService(bitrixClient)
	proxyService := service.NewProxyService(bitrixClient)

	dictHandler := handlers.NewDictHandler(dictService)
	companyHandler := handlers.NewCompanyHandler(companyService)
	proxyHandler := handlers.NewProxyHandler(proxyService)

	base := Chain(Recovery(logger), RequestID(), Logging(logger), Metrics())
	protected := Chain(Recovery(logger), RequestID(), Logging(logger), Metrics(), Auth(apiKey, logger))

	mux.Handle("GET /ping", base(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.Handle("GET /api/hello", protected(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"msg": "Olá! O servidor está funcionando 🎉",
		})
	})))

	mux.Handle("GET /api/bitrix/companies/search/normalized", protected(http.HandlerFunc(companyHandler.SearchNormalized)))

	mux.Handle("GET /api/dict/company", protected(http.HandlerFunc(dictHandler.CompanyCatalog)))
	mux.Handle("GET /api/dict/deal", protected(http.HandlerFunc(dictHandler.DealCatalog)))
	mux.Handle("GET /api/dict/spa/{id}", protected(http.HandlerFunc(dictHandler.SPACatalog)))
	mux.Handle("GET /api/dict/spas", protected(http.HandlerFunc(dictHandler.ListSPAs)))

	mux.Handle("GET /api/bitrix/company/fields", protected(http.HandlerFunc(proxyHandler.CompanyFields)))
	mux.Handle("GET /api/bitrix/company/userfields", protected(http.HandlerFunc(proxyHandler.CompanyUserFields)))
	mux.Handle("GET /api/bitrix/deal/fields", protected(http.HandlerFunc(proxyHandler.DealFields)))
	mux.Handle("GET /api/bitrix/deal/userfields", protected(http.HandlerFunc(proxyHandler.DealUserFields)))
	mux.Handle("GET /api/bitrix/deal/userfields/{id}", protected(http.HandlerFunc(proxyHandler.DealUserField)))
	mux.Handle("GET /api/bitrix/types", protected(http.HandlerFunc(proxyHandler.Types)))
	mux.Handle("GET /api/bitrix/types/{id}/fields", protected(http.HandlerFunc(proxyHandler.TypeFields)))
	mux.Handle("GET /api/bitrix/types/{id}/userfields", protected(http.HandlerFunc(proxyHandler.TypeUserFields)))

	return mux
}
