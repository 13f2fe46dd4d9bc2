package main

import (
	"time"

	. "gopkg.in/check.v1"
)

type ConfigSuite struct{}

var _ = Suite(&ConfigSuite{})

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func (s *ConfigSuite) TestDefaults(c *C) {
	cfg, err := loadConfig(env(map[string]string{"GOOGLE_MAPS_API_KEY": "abc"}))
	c.Assert(err, IsNil)
	c.Assert(cfg.Addr, Equals, ":8080")
	c.Assert(cfg.Geocoder, Equals, "google")
	c.Assert(cfg.CountryCache, Equals, "memory")
	c.Assert(cfg.CountryCacheTTL, Equals, 24*time.Hour)
	c.Assert(cfg.HTTPTimeout, Equals, 10*time.Second)
	c.Assert(cfg.SessionTTL, Equals, 30*time.Minute)
	c.Assert(cfg.RestCountriesURL, Equals, "https://restcountries.com")
	c.Assert(cfg.CORSOrigins, DeepEquals, []string{"*"})
}

func (s *ConfigSuite) TestGoogleNeedsKey(c *C) {
	_, err := loadConfig(env(map[string]string{}))
	c.Assert(err, ErrorMatches, "GOOGLE_MAPS_API_KEY is required.*")
}

func (s *ConfigSuite) TestNominatimWithoutKey(c *C) {
	cfg, err := loadConfig(env(map[string]string{
		"GEOCODER":      "nominatim",
		"PORT":          "9090",
		"COUNTRY_CACHE": "off",
		"CORS_ORIGINS":  "http://localhost:3000, https://example.com,",
		"HTTP_TIMEOUT":  "3s",
	}))
	c.Assert(err, IsNil)
	c.Assert(cfg.Addr, Equals, ":9090")
	c.Assert(cfg.HTTPTimeout, Equals, 3*time.Second)
	c.Assert(cfg.CORSOrigins, DeepEquals, []string{"http://localhost:3000", "https://example.com"})
}

func (s *ConfigSuite) TestInvalidValues(c *C) {
	base := map[string]string{"GOOGLE_MAPS_API_KEY": "abc"}
	cases := map[string]string{
		"GEOCODER":          "GEOCODER: unknown provider.*",
		"COUNTRY_CACHE":     "COUNTRY_CACHE: unknown mode.*",
		"PORT":              "PORT: .* is not a number",
		"HTTP_TIMEOUT":      "HTTP_TIMEOUT: .*",
		"COUNTRY_CACHE_TTL": "COUNTRY_CACHE_TTL: .*",
	}
	for key, pattern := range cases {
		m := map[string]string{key: "bogus"}
		for k, v := range base {
			m[k] = v
		}
		_, err := loadConfig(env(m))
		c.Assert(err, ErrorMatches, pattern, Commentf("key %s", key))
	}

	_, err := loadConfig(env(map[string]string{"GOOGLE_MAPS_API_KEY": "abc", "SESSION_TTL": "-1m"}))
	c.Assert(err, ErrorMatches, "SESSION_TTL: negative duration.*")
}

func (s *ConfigSuite) TestZeroSessionTTLRejected(c *C) {
	_, err := loadConfig(env(map[string]string{"GOOGLE_MAPS_API_KEY": "abc", "SESSION_TTL": "0s"}))
	c.Assert(err, ErrorMatches, "SESSION_TTL: must be greater than zero")
}
