package main

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"countryclick/backend/lookup"
)

// ========== 使用者 Session ==========

const sessionCookie = "country_session"

// Session 每個瀏覽器各自一份地圖與查詢狀態
type Session struct {
	ID           string
	Surface      *lookup.Surface
	Orchestrator *lookup.Orchestrator

	lastSeen time.Time
}

// SessionStore 以 cookie 的 uuid 找 session，閒置太久就清掉
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time

	mapConfig lookup.MapConfig
	geocoder  lookup.Geocoder
	countries lookup.CountryLookup
}

func NewSessionStore(ttl time.Duration, mapConfig lookup.MapConfig, g lookup.Geocoder, c lookup.CountryLookup) *SessionStore {
	return &SessionStore{
		sessions:  make(map[string]*Session),
		ttl:       ttl,
		now:       time.Now,
		mapConfig: mapConfig,
		geocoder:  g,
		countries: c,
	}
}

// Get 找不到 (或 id 不合法) 就建立新的，created 表示需要回寫 cookie
func (s *SessionStore) Get(id string) (sess *Session, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		sess.lastSeen = s.now()
		return sess, false
	}

	sess = s.newSessionLocked()
	return sess, true
}

func (s *SessionStore) newSessionLocked() *Session {
	orch := lookup.NewOrchestrator(s.geocoder, s.countries)
	surface := lookup.NewSurface(s.mapConfig)
	surface.OnClick(orch.HandleClick)

	sess := &Session{
		ID:           uuid.NewString(),
		Surface:      surface,
		Orchestrator: orch,
		lastSeen:     s.now(),
	}
	s.sessions[sess.ID] = sess
	return sess
}

// Sweep 清掉閒置超過 ttl 的 session
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ttl <= 0 {
		return 0
	}

	removed := 0
	cutoff := s.now().Add(-s.ttl)
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			// 取消還在跑的查詢
			sess.Orchestrator.Reset()
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Run 定期清理，直到 ctx 結束
func (s *SessionStore) Run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
