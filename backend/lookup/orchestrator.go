package lookup

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
)

// Orchestrator 串接兩支 API 並維護畫面狀態。
// 每次點擊都會拿到遞增的 attempt 編號，只有最新一次的結果會寫回狀態。
type Orchestrator struct {
	geocoder  Geocoder
	countries CountryLookup

	mu      sync.Mutex
	state   State
	attempt uint64
	cancel  context.CancelFunc
	subs    map[chan State]struct{}
}

func NewOrchestrator(g Geocoder, c CountryLookup) *Orchestrator {
	return &Orchestrator{
		geocoder:  g,
		countries: c,
		state:     Idle(),
		subs:      make(map[chan State]struct{}),
	}
}

// State 回傳目前狀態
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// HandleClick 處理一次點擊，回傳這次 attempt 結束時的狀態。
// 如果途中又有新的點擊，這次的結果會被丟棄，回傳的是當下最新的狀態。
func (o *Orchestrator) HandleClick(ctx context.Context, c Coordinate) State {
	ctx, id := o.begin(ctx)
	result := o.resolve(ctx, id, c)
	return o.settle(id, result)
}

// Reset 回到 Idle，並取消進行中的查詢
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
	o.attempt++
	o.setLocked(Idle())
}

// Subscribe 訂閱狀態變化，先收到目前狀態。
// 讀太慢的訂閱者只會拿到最新的那一筆。
func (o *Orchestrator) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)

	o.mu.Lock()
	o.subs[ch] = struct{}{}
	ch <- o.state
	o.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			o.mu.Lock()
			delete(o.subs, ch)
			o.mu.Unlock()
			close(ch)
		})
	}
}

// ========== 狀態轉換 ==========

func (o *Orchestrator) begin(ctx context.Context) (context.Context, uint64) {
	ctx, cancel := context.WithCancel(ctx)

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.cancel != nil {
		o.cancel()
	}
	o.cancel = cancel
	o.attempt++
	o.setLocked(Loading(o.attempt))
	return ctx, o.attempt
}

func (o *Orchestrator) settle(id uint64, s State) State {
	o.mu.Lock()
	defer o.mu.Unlock()

	if id != o.attempt {
		return o.state
	}
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
	o.setLocked(s)
	return s
}

func (o *Orchestrator) setLocked(s State) {
	o.state = s
	for ch := range o.subs {
		// 丟掉還沒被讀走的舊狀態
		select {
		case <-ch:
		default:
		}
		ch <- s
	}
}

// ========== 查詢流程 ==========

func (o *Orchestrator) resolve(ctx context.Context, id uint64, c Coordinate) State {
	place, err := o.geocoder.ReverseGeocode(ctx, c)
	if err != nil {
		log.Printf("Geocoder failed due to: %v", err)
		return Failed(id, fmt.Errorf("%w: %v", ErrGeocodeFailed, err))
	}

	country := strings.TrimSpace(place.Country)
	if country == "" {
		return Failed(id, ErrNoCountryAtLocation)
	}

	info, err := o.countries.LookupCountry(ctx, country)
	if err != nil {
		log.Printf("Failed to fetch country data for %q: %v", country, err)
		return Failed(id, fmt.Errorf("%w: %v", ErrCountryLookupFailed, err))
	}
	return Resolved(id, info)
}
