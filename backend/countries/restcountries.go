// Package countries looks up country details on restcountries.com.
package countries

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"countryclick/backend/lookup"
)

const DefaultBaseURL = "https://restcountries.com"

var ErrNotFound = errors.New("country not found")

type RestCountries struct {
	BaseURL string
	Client  *http.Client
}

func NewRestCountries(baseURL string, timeout time.Duration) *RestCountries {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &RestCountries{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
	}
}

type rcCountry struct {
	Name struct {
		Common string `json:"common"`
	} `json:"name"`
	Population int64 `json:"population"`
	Flags      struct {
		SVG string `json:"svg"`
		PNG string `json:"png"`
		Alt string `json:"alt"`
	} `json:"flags"`
}

// LookupCountry 以國家名稱查詢，只取回傳陣列的第一筆。
// 名稱相近的國家 (例如 Georgia) 不做額外判斷。
func (r *RestCountries) LookupCountry(ctx context.Context, name string) (lookup.CountryInfo, error) {
	q := strings.TrimSpace(name)
	if q == "" {
		return lookup.CountryInfo{}, errors.New("empty country name")
	}

	endpoint := fmt.Sprintf("%s/v3.1/name/%s?fields=name,population,flags", r.BaseURL, url.PathEscape(q))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return lookup.CountryInfo{}, err
	}

	resp, err := r.Client.Do(req)
	if err != nil {
		return lookup.CountryInfo{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return lookup.CountryInfo{}, fmt.Errorf("%w: %s", ErrNotFound, q)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return lookup.CountryInfo{}, fmt.Errorf("restcountries: status %d", resp.StatusCode)
	}

	var results []rcCountry
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return lookup.CountryInfo{}, fmt.Errorf("restcountries: decode response: %w", err)
	}
	if len(results) == 0 {
		return lookup.CountryInfo{}, fmt.Errorf("%w: %s", ErrNotFound, q)
	}

	first := results[0]
	return lookup.CountryInfo{
		Country:         first.Name.Common,
		Flag:            first.Flags.SVG,
		Population:      first.Population,
		FlagDescription: first.Flags.Alt,
	}, nil
}
