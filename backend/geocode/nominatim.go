package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"countryclick/backend/lookup"
)

const DefaultNominatimURL = "https://nominatim.openstreetmap.org"

// NominatimConfig configures the OSM Nominatim geocoder.
type NominatimConfig struct {
	BaseURL        string
	UserAgent      string // required by the Nominatim usage policy
	RequestsPerSec float64
	Timeout        time.Duration
	HTTPClient     *http.Client
}

// Nominatim reverse geocodes with OpenStreetMap Nominatim.
type Nominatim struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewNominatim(cfg NominatimConfig) (*Nominatim, error) {
	if cfg.UserAgent == "" {
		return nil, errors.New("nominatim geocoder: missing user agent")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultNominatimURL
	}
	if cfg.RequestsPerSec == 0 {
		cfg.RequestsPerSec = 1
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}

	return &Nominatim{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
		httpClient: hc,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), 1),
	}, nil
}

type nominatimReverse struct {
	Error   string `json:"error"`
	Address struct {
		Country     string `json:"country"`
		CountryCode string `json:"country_code"`
	} `json:"address"`
}

func (n *Nominatim) ReverseGeocode(ctx context.Context, c lookup.Coordinate) (lookup.Place, error) {
	if err := n.limiter.Wait(ctx); err != nil {
		return lookup.Place{}, err
	}

	params := url.Values{
		"lat":             {strconv.FormatFloat(c.Lat, 'f', -1, 64)},
		"lon":             {strconv.FormatFloat(c.Lng, 'f', -1, 64)},
		"format":          {"jsonv2"},
		"zoom":            {"3"},
		"accept-language": {"en"},
	}
	endpoint := fmt.Sprintf("%s/reverse?%s", n.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return lookup.Place{}, err
	}
	req.Header.Set("User-Agent", n.userAgent)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return lookup.Place{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return lookup.Place{}, fmt.Errorf("nominatim: HTTP %d", resp.StatusCode)
	}

	var data nominatimReverse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return lookup.Place{}, fmt.Errorf("nominatim: decode response: %w", err)
	}
	// 海上之類的位置會回 {"error":"Unable to geocode"}
	if data.Error != "" {
		return lookup.Place{}, fmt.Errorf("nominatim: %s", data.Error)
	}

	return lookup.Place{
		Country:     data.Address.Country,
		CountryCode: strings.ToUpper(data.Address.CountryCode),
	}, nil
}
