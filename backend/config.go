package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"countryclick/backend/countries"
	"countryclick/backend/geocode"
)

// ========== 設定 ==========

const (
	geocoderGoogle    = "google"
	geocoderNominatim = "nominatim"

	cacheMemory = "memory"
	cacheMongo  = "mongo"
	cacheOff    = "off"
)

// Config 全部從環境變數來 (可以放在 .env)
type Config struct {
	Addr       string
	MapsAPIKey string

	Geocoder           string
	NominatimURL       string
	NominatimUserAgent string
	RestCountriesURL   string
	HTTPTimeout        time.Duration

	CountryCache    string
	CountryCacheTTL time.Duration
	MongoURI        string
	MongoDB         string

	CORSOrigins []string
	SessionTTL  time.Duration
}

func loadConfig(getenv func(string) string) (Config, error) {
	cfg := Config{
		Addr:               ":" + envOr(getenv, "PORT", "8080"),
		MapsAPIKey:         envOr(getenv, "GOOGLE_MAPS_API_KEY", ""),
		Geocoder:           envOr(getenv, "GEOCODER", geocoderGoogle),
		NominatimURL:       envOr(getenv, "NOMINATIM_URL", geocode.DefaultNominatimURL),
		NominatimUserAgent: envOr(getenv, "NOMINATIM_USER_AGENT", "country-click/1.0"),
		RestCountriesURL:   envOr(getenv, "RESTCOUNTRIES_URL", countries.DefaultBaseURL),
		CountryCache:       envOr(getenv, "COUNTRY_CACHE", cacheMemory),
		MongoURI:           envOr(getenv, "MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:            envOr(getenv, "MONGO_DB", "country_click"),
		CORSOrigins:        splitList(envOr(getenv, "CORS_ORIGINS", "*")),
	}

	if _, err := strconv.Atoi(cfg.Addr[1:]); err != nil {
		return Config{}, fmt.Errorf("PORT: %q is not a number", cfg.Addr[1:])
	}

	var err error
	if cfg.HTTPTimeout, err = envDuration(getenv, "HTTP_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.CountryCacheTTL, err = envDuration(getenv, "COUNTRY_CACHE_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.SessionTTL, err = envDuration(getenv, "SESSION_TTL", 30*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.SessionTTL == 0 {
		return Config{}, errors.New("SESSION_TTL: must be greater than zero")
	}

	switch cfg.Geocoder {
	case geocoderGoogle:
		// 地圖跟反向地理編碼用同一把 key
		if cfg.MapsAPIKey == "" {
			return Config{}, errors.New("GOOGLE_MAPS_API_KEY is required when GEOCODER=google")
		}
	case geocoderNominatim:
	default:
		return Config{}, fmt.Errorf("GEOCODER: unknown provider %q", cfg.Geocoder)
	}

	switch cfg.CountryCache {
	case cacheMemory, cacheMongo, cacheOff:
	default:
		return Config{}, fmt.Errorf("COUNTRY_CACHE: unknown mode %q", cfg.CountryCache)
	}

	return cfg, nil
}
