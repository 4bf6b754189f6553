package service

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/TWRT/bitrix-proxy/internal/client"
	"github.com/TWRT/bitrix-proxy/internal/models"
	"github.com/TWRT/bitrix-proxy/internal/repository"
)

type CatalogOptions struct {
	Start       int
	Limit       int // 0 = sem limite
	SkipOptions bool
}

// DictService monta os dicionários de campos: busca o catálogo nativo inteiro
// numa chamada e percorre os user fields página a página pelo cursor next.
type DictService struct {
	bitrix client.RawCaller
	cache  *repository.DictCacheRepository
	logger *slog.Logger
}

func NewDictService(bitrixClient client.RawCaller, cache *repository.DictCacheRepository, logger *slog.Logger) *DictService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DictService{
		bitrix: bitrixClient,
		cache:  cache,
		logger: logger,
	}
}

type catalogSource struct {
	fetchNative func() (map[string]any, error)
	fetchPage   func(start int) ([]map[string]any, *int, error)
}

func (s *DictService) CompanyCatalog(opts CatalogOptions) ([]models.FieldDescriptor, error) {
	return s.cachedCatalog("company", catalogSource{
		fetchNative: func() (map[string]any, error) {
			return s.nativeFields("crm.company.fields", nil)
		},
		fetchPage: func(start int) ([]map[string]any, *int, error) {
			return s.fetchPage("crm.company.userfield.list", map[string]any{"start": start})
		},
	}, opts)
}

func (s *DictService) DealCatalog(opts CatalogOptions) ([]models.FieldDescriptor, error) {
	return s.cachedCatalog("deal", catalogSource{
		fetchNative: func() (map[string]any, error) {
			return s.nativeFields("crm.deal.fields", nil)
		},
		fetchPage: func(start int) ([]map[string]any, *int, error) {
			return s.fetchPage("crm.deal.userfield.list", map[string]any{"start": start})
		},
	}, opts)
}

// SPACatalog é o mesmo merge parametrizado pelo entityTypeId de um smart
// process (SPA).
func (s *DictService) SPACatalog(entityTypeId int, opts CatalogOptions) ([]models.FieldDescriptor, error) {
	return s.cachedCatalog(fmt.Sprintf("spa:%d", entityTypeId), catalogSource{
		fetchNative: func() (map[string]any, error) {
			return s.nativeFields("crm.item.fields", map[string]any{"entityTypeId": entityTypeId})
		},
		fetchPage: func(start int) ([]map[string]any, *int, error) {
			return s.fetchPage("userfieldconfig.list", map[string]any{
				"moduleId": "crm",
				"filter":   map[string]any{"entityId": fmt.Sprintf("CRM_%d", entityTypeId)},
				"start":    start,
			})
		},
	}, opts)
}

// ListSPATypes enumera as definições de smart process com o mesmo laço de
// cursor, sem normalização de campos.
func (s *DictService) ListSPATypes() ([]models.SPAType, error) {
	const cacheKey = "dict:spas"
	var cached []models.SPAType
	if s.lookup(cacheKey, &cached) {
		return cached, nil
	}

	types := []models.SPAType{}
	start := 0
	for {
		items, next, err := s.fetchPage("crm.type.list", map[string]any{"start": start})
		if err != nil {
			return nil, err
		}
		for _, raw := range items {
			types = append(types, models.SPAType{
				Id:    firstString(raw, "entityTypeId", "ENTITY_TYPE_ID", "id", "ID"),
				Title: firstString(raw, "title", "TITLE"),
				Code:  firstString(raw, "code", "CODE"),
			})
		}
		if next == nil {
			break
		}
		start = *next
	}

	s.store(cacheKey, types)
	return types, nil
}

func (s *DictService) buildCatalog(src catalogSource, opts CatalogOptions) ([]models.FieldDescriptor, error) {
	native, err := src.fetchNative()
	if err != nil {
		return nil, err
	}

	// O mapa nativo chega sem ordem; ordenamos por código para a resposta ser
	// estável entre chamadas.
	codes := make([]string, 0, len(native))
	for code := range native {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	catalog := make([]models.FieldDescriptor, 0, len(native))
	for _, code := range codes {
		meta, _ := native[code].(map[string]any)
		catalog = append(catalog, normalizeField(code, meta, models.SourceNative))
	}

	// O corte vale para a lista combinada: campos nativos nunca são
	// descartados, mesmo quando sozinhos já passam do limite.
	if opts.Limit > 0 && len(catalog) >= opts.Limit {
		return catalog, nil
	}

	start := opts.Start
	for {
		items, next, err := src.fetchPage(start)
		if err != nil {
			return nil, err
		}
		for _, raw := range items {
			d := normalizeField(userFieldCode(raw), raw, models.SourceUserDefined)
			if !opts.SkipOptions {
				d = attachOptions(d, raw)
			}
			catalog = append(catalog, d)
			if opts.Limit > 0 && len(catalog) >= opts.Limit {
				return catalog[:opts.Limit], nil
			}
		}
		// Página vazia com cursor não nulo continua; só o cursor nulo encerra.
		if next == nil {
			return catalog, nil
		}
		start = *next
	}
}

func (s *DictService) nativeFields(method string, params map[string]any) (map[string]any, error) {
	result, err := s.bitrix.Call(method, params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	fields, ok := result.(map[string]any)
	if !ok {
		return map[string]any{}, nil
	}
	// crm.item.fields embrulha o mapa em {fields: {...}}.
	if inner, ok := fields["fields"].(map[string]any); ok {
		return inner, nil
	}
	return fields, nil
}

func (s *DictService) fetchPage(method string, params map[string]any) ([]map[string]any, *int, error) {
	env, err := s.bitrix.CallRaw(method, params)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", method, err)
	}
	return pageItems(env.Result), env.Next, nil
}

// pageItems aceita tanto o array direto quanto o embrulho {fields: [...]} /
// {types: [...]} dos métodos mais novos da API.
func pageItems(result any) []map[string]any {
	list, ok := result.([]any)
	if !ok {
		if wrapper, ok := result.(map[string]any); ok {
			for _, key := range []string{"fields", "types", "items"} {
				if inner, ok := wrapper[key].([]any); ok {
					list = inner
					break
				}
			}
		}
	}
	items := make([]map[string]any, 0, len(list))
	for _, entry := range list {
		if m, ok := entry.(map[string]any); ok {
			items = append(items, m)
		}
	}
	return items
}

func (s *DictService) cachedCatalog(kind string, src catalogSource, opts CatalogOptions) ([]models.FieldDescriptor, error) {
	cacheKey := fmt.Sprintf("dict:%s:start=%d:limit=%d:noOptions=%t", kind, opts.Start, opts.Limit, opts.SkipOptions)
	var cached []models.FieldDescriptor
	if s.lookup(cacheKey, &cached) {
		return cached, nil
	}

	catalog, err := s.buildCatalog(src, opts)
	if err != nil {
		return nil, err
	}
	s.store(cacheKey, catalog)
	return catalog, nil
}

// Falhas de cache degradam para reconstruir o catálogo, nunca para erro.
func (s *DictService) lookup(key string, dest any) bool {
	if s.cache == nil {
		return false
	}
	payload, ok, err := s.cache.Get(key)
	if err != nil {
		s.logger.Warn("dict cache read failed", "key", key, "error", err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(payload), dest); err != nil {
		s.logger.Warn("dict cache payload corrupted", "key", key, "error", err)
		return false
	}
	return true
}

func (s *DictService) store(key string, value any) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Put(key, string(payload)); err != nil {
		s.logger.Warn("dict cache write failed", "key", key, "error", err)
	}
}
