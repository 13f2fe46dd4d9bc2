package lookup

import "errors"

// 三種使用者看得到的錯誤，都可以靠「再點一次」恢復
var (
	ErrGeocodeFailed       = errors.New("Geocoder error. Please try again.")
	ErrNoCountryAtLocation = errors.New("No country found at this location, please click somewhere else.")
	ErrCountryLookupFailed = errors.New("Failed to fetch country information, please try clicking somewhere else.")
)

// Message 把任意錯誤轉成畫面上的訊息
func Message(err error) string {
	switch {
	case errors.Is(err, ErrGeocodeFailed):
		return ErrGeocodeFailed.Error()
	case errors.Is(err, ErrNoCountryAtLocation):
		return ErrNoCountryAtLocation.Error()
	default:
		return ErrCountryLookupFailed.Error()
	}
}
