package countries

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"countryclick/backend/lookup"
)

// Store 國家資料快取的儲存層
type Store interface {
	Get(ctx context.Context, key string) (lookup.CountryInfo, bool, error)
	Put(ctx context.Context, key string, info lookup.CountryInfo) error
}

// CacheKey 正規化查詢名稱
func CacheKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// Cached 先查快取，沒有才呼叫 next；失敗的查詢不會被快取
type Cached struct {
	next  lookup.CountryLookup
	store Store
}

func NewCached(next lookup.CountryLookup, store Store) *Cached {
	return &Cached{next: next, store: store}
}

func (c *Cached) LookupCountry(ctx context.Context, name string) (lookup.CountryInfo, error) {
	key := CacheKey(name)

	info, ok, err := c.store.Get(ctx, key)
	if err != nil {
		log.Printf("country cache get %q: %v", key, err)
	} else if ok {
		return info, nil
	}

	info, err = c.next.LookupCountry(ctx, name)
	if err != nil {
		return lookup.CountryInfo{}, err
	}
	if err := c.store.Put(ctx, key, info); err != nil {
		log.Printf("country cache put %q: %v", key, err)
	}
	return info, nil
}

// ========== 記憶體快取 ==========

type memoryItem struct {
	info   lookup.CountryInfo
	expiry time.Time
}

// MemoryStore 有 TTL 的記憶體快取
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]memoryItem
	ttl   time.Duration
	now   func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		items: make(map[string]memoryItem),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (m *MemoryStore) Get(_ context.Context, key string) (lookup.CountryInfo, bool, error) {
	m.mu.RLock()
	item, ok := m.items[key]
	m.mu.RUnlock()
	if !ok {
		return lookup.CountryInfo{}, false, nil
	}
	if m.ttl > 0 && m.now().After(item.expiry) {
		m.mu.Lock()
		// 拿到寫鎖前可能已經被 Put 換成新資料
		if cur, ok := m.items[key]; ok && m.now().After(cur.expiry) {
			delete(m.items, key)
		}
		m.mu.Unlock()
		return lookup.CountryInfo{}, false, nil
	}
	return item.info, true, nil
}

func (m *MemoryStore) Put(_ context.Context, key string, info lookup.CountryInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = memoryItem{info: info, expiry: m.now().Add(m.ttl)}
	return nil
}

// Len 目前快取筆數 (含尚未清掉的過期資料)
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
