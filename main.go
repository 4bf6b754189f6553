package main

import (
	"net/http"
	"os"
	"time"

	"github.com/TWRT/bitrix-proxy/internal/api"
	"github.com/TWRT/bitrix-proxy/internal/client/bitrix"
	"github.com/TWRT/bitrix-proxy/internal/config"
	"github.com/TWRT/bitrix-proxy/internal/repository"
	"github.com/TWRT/bitrix-proxy/internal/telemetry"
)

func main() {
	cfg := config.Load()
	logger := telemetry.SetupLogger()

	if cfg.WebhookBase == "" {
		logger.Warn("BITRIX_WEBHOOK_BASE não configurada; chamadas ao Bitrix vão falhar")
	}
	if cfg.APIKey == "" {
		logger.Warn("API_KEY não configurada; rotas /api vão responder 500")
	}

	bitrixClient := bitrix.NewClient(cfg.WebhookBase)

	// Cache de dicionários em SQLite; DICT_CACHE_TTL=0 desliga.
	var cache *repository.DictCacheRepository
	if cfg.CacheTTLSecs > 0 {
		db, err := repository.InitDB(cfg.CachePath)
		if err != nil {
			logger.Error("failed to init dict cache", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		cache = repository.NewDictCacheRepository(db, time.Duration(cfg.CacheTTLSecs)*time.Second)
	}

	router := api.SetupRouter(bitrixClient, cache, cfg.APIKey, logger)

	logger.Info("listening", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
