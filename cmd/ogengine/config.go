package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/gommon/log"

	"github.com/boracayhouse/ogengine"
)

// loadConfig builds the site configuration from environment variables.
// Unset values fall back to the defaults in ogengine.SiteConfig.
func loadConfig() (ogengine.SiteConfig, error) {
	cfg := ogengine.SiteConfig{
		Name:               os.Getenv("SITE_NAME"),
		URL:                os.Getenv("SITE_URL"),
		DefaultTitle:       os.Getenv("SITE_TITLE"),
		DefaultDescription: os.Getenv("SITE_DESCRIPTION"),
		DefaultImage:       os.Getenv("SITE_IMAGE"),
		Addr:               os.Getenv("ADDR"),
		StaticDir:          os.Getenv("STATIC_DIR"),
		OriginURL:          os.Getenv("ORIGIN_URL"),
		StoreDriver:        os.Getenv("CONTENT_STORE_DRIVER"),
		StoreURL:           os.Getenv("CONTENT_STORE_URL"),
		StoreKey:           os.Getenv("CONTENT_STORE_KEY"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		AdminPassword:      os.Getenv("ADMIN_PASSWORD"),
		SessionSecret:      os.Getenv("SESSION_SECRET"),
	}
	if cfg.Addr == "" {
		if port := os.Getenv("PORT"); port != "" {
			cfg.Addr = ":" + port
		}
	}

	var err error
	if cfg.CookieSecure, err = envBool("COOKIE_SECURE"); err != nil {
		return cfg, err
	}
	for key, dst := range map[string]*time.Duration{
		"FETCH_TIMEOUT":    &cfg.FetchTimeout,
		"LOOKUP_TIMEOUT":   &cfg.LookupTimeout,
		"IMAGE_TIMEOUT":    &cfg.ImageTimeout,
		"RECORD_CACHE_TTL": &cfg.RecordCacheTTL,
	} {
		if *dst, err = envDuration(key); err != nil {
			return cfg, err
		}
	}

	if cfg.AdminPassword != "" && cfg.SessionSecret == "" {
		return cfg, fmt.Errorf("SESSION_SECRET is required when ADMIN_PASSWORD is set")
	}
	return cfg, nil
}

func envBool(key string) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func envDuration(key string) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s: must be positive, got %s", key, v)
	}
	return d, nil
}

func logLevel(s string) log.Lvl {
	switch strings.ToLower(s) {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}
