package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// DictCacheRepository guarda respostas de dicionário já montadas. Os campos
// do CRM mudam raramente e cada catálogo pode custar várias chamadas de
// paginação, então servir do cache dentro do TTL evita martelar o webhook.
type DictCacheRepository struct {
	db  *sql.DB
	ttl time.Duration
}

func NewDictCacheRepository(db *sql.DB, ttl time.Duration) *DictCacheRepository {
	return &DictCacheRepository{db: db, ttl: ttl}
}

// Get devolve o payload se a entrada existir e ainda estiver dentro do TTL.
func (r *DictCacheRepository) Get(key string) (string, bool, error) {
	query := `SELECT payload, cached_at FROM dict_cache WHERE key = ?`

	var payload string
	var cachedAt int64
	err := r.db.QueryRow(query, key).Scan(&payload, &cachedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get cache entry: %w", err)
	}

	if time.Since(time.Unix(cachedAt, 0)) > r.ttl {
		return "", false, nil
	}
	return payload, true, nil
}

func (r *DictCacheRepository) Put(key, payload string) error {
	query := `
		INSERT INTO dict_cache (key, payload, cached_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, cached_at = excluded.cached_at
	`

	if _, err := r.db.Exec(query, key, payload, time.Now().Unix()); err != nil {
		return fmt.Errorf("put cache entry: %w", err)
	}
	return nil
}
