// Package lookup 負責「點擊地圖 → 反向地理編碼 → 查國家資料」這一整段流程。
package lookup

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/s2"
)

// ========== 資料模型 ==========

// Coordinate 地圖點擊產生的座標
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%.5f, %.5f)", c.Lat, c.Lng)
}

// ErrInvalidCoordinate 座標不是有限數值或緯度超出範圍
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Normalize 驗證座標並把經度換算回 [-180, 180]。
// 地圖水平捲動後回報的經度可能超過 180。
func (c Coordinate) Normalize() (Coordinate, error) {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lng, 0) {
		return Coordinate{}, fmt.Errorf("%w: %v", ErrInvalidCoordinate, c)
	}
	if c.Lat < -90 || c.Lat > 90 {
		return Coordinate{}, fmt.Errorf("%w: latitude %v out of range", ErrInvalidCoordinate, c.Lat)
	}

	ll := s2.LatLngFromDegrees(c.Lat, c.Lng)
	if ll.IsValid() {
		return c, nil
	}
	return Coordinate{Lat: c.Lat, Lng: ll.Normalized().Lng.Degrees()}, nil
}

// Place 反向地理編碼的結果，只關心國家
type Place struct {
	Country     string `json:"country"`
	CountryCode string `json:"country_code"`
}

// CountryInfo 卡片上要顯示的國家資料
type CountryInfo struct {
	Country         string `json:"country"`
	Flag            string `json:"flag"`
	Population      int64  `json:"population"`
	FlagDescription string `json:"flag_description"`
}

// ========== 外部服務介面 ==========

// Geocoder 把座標轉成地址 (第一支 API)
type Geocoder interface {
	ReverseGeocode(ctx context.Context, c Coordinate) (Place, error)
}

// CountryLookup 用國家名稱查詢國旗與人口 (第二支 API)
type CountryLookup interface {
	LookupCountry(ctx context.Context, name string) (CountryInfo, error)
}
