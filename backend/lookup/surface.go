package lookup

import (
	"context"
	"errors"
	"sync"
)

// 地圖預設中心與縮放
var DefaultCenter = Coordinate{Lat: 42.70, Lng: -84.48}

const DefaultZoom = 5

// MapConfig 前端載入地圖元件需要的設定
type MapConfig struct {
	APIKey string     `json:"api_key"`
	Center Coordinate `json:"center"`
	Zoom   int        `json:"zoom"`
}

// ClickHandler 接收一次點擊的座標
type ClickHandler func(ctx context.Context, c Coordinate) State

var ErrNoHandler = errors.New("no click handler registered")

// Surface 地圖本身交給外部元件，這裡只負責把點擊轉給註冊的 handler
type Surface struct {
	config MapConfig

	mu      sync.RWMutex
	handler ClickHandler
}

func NewSurface(cfg MapConfig) *Surface {
	if cfg.Zoom == 0 {
		cfg.Zoom = DefaultZoom
	}
	if cfg.Center == (Coordinate{}) {
		cfg.Center = DefaultCenter
	}
	return &Surface{config: cfg}
}

func (s *Surface) Config() MapConfig {
	return s.config
}

// OnClick 註冊 (或取代) 點擊 handler
func (s *Surface) OnClick(h ClickHandler) {
	s.mu.Lock()
	s.handler = h
	s.mu.Unlock()
}

// Click 每次點擊同步呼叫 handler 一次
func (s *Surface) Click(ctx context.Context, c Coordinate) (State, error) {
	c, err := c.Normalize()
	if err != nil {
		return State{}, err
	}

	s.mu.RLock()
	h := s.handler
	s.mu.RUnlock()
	if h == nil {
		return State{}, ErrNoHandler
	}
	return h(ctx, c), nil
}
