package repository

import (
	"testing"
	"time"
)

func newTestRepo(t *testing.T, ttl time.Duration) *DictCacheRepository {
	t.Helper()
	db, err := InitDB(":memory:")
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewDictCacheRepository(db, ttl)
}

func TestDictCache_PutGetRoundtrip(t *testing.T) {
	repo := newTestRepo(t, time.Minute)

	if err := repo.Put("dict:company", `[{"code":"ID"}]`); err != nil {
		t.Fatalf("Put: %v", err)
	}

	payload, ok, err := repo.Get("dict:company")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected cache hit")
	}
	if payload != `[{"code":"ID"}]` {
		t.Errorf("unexpected payload %q", payload)
	}
}

func TestDictCache_MissingKey(t *testing.T) {
	repo := newTestRepo(t, time.Minute)

	_, ok, err := repo.Get("dict:deal")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("expected cache miss for unknown key")
	}
}

func TestDictCache_ExpiredEntryIsMiss(t *testing.T) {
	repo := newTestRepo(t, time.Minute)

	if err := repo.Put("dict:spas", "[]"); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// Envelhece a entrada além do TTL direto no banco.
	stale := time.Now().Add(-2 * time.Minute).Unix()
	if _, err := repo.db.Exec(`UPDATE dict_cache SET cached_at = ? WHERE key = ?`, stale, "dict:spas"); err != nil {
		t.Fatalf("backdate entry: %v", err)
	}

	_, ok, err := repo.Get("dict:spas")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("expected expired entry to miss")
	}
}

func TestDictCache_PutOverwrites(t *testing.T) {
	repo := newTestRepo(t, time.Minute)

	if err := repo.Put("dict:company", "old"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := repo.Put("dict:company", "new"); err != nil {
		t.Fatalf("Put overwrite: %v", err)
	}

	payload, ok, err := repo.Get("dict:company")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok || payload != "new" {
		t.Errorf("expected overwritten payload, got %q (hit=%t)", payload, ok)
	}
}
