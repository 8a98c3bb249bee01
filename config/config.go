package config

import (
	"log"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port           string
	DBPath         string
	GeminiEndpoint string
	GeminiModel    string

	mu      sync.RWMutex
	apiKey  string // build/deploy-time injected value
	runtime string // override installed while the process runs
}

// Placeholder values some deploy scripts leave behind; treated as unset.
var placeholders = map[string]bool{
	"":                   true,
	"YOUR_API_KEY":       true,
	"__gemini_api_key__": true,
	"changeme":           true,
}

func usable(k string) bool { return !placeholders[strings.TrimSpace(k)] }

func Load() *AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] no .env file found: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	cfg := &AppConfig{
		Port:           get("PORT", "8080"),
		DBPath:         get("DB_PATH", "readquest.db"),
		GeminiEndpoint: get("GEMINI_ENDPOINT", "https://generativelanguage.googleapis.com"),
		GeminiModel:    get("GEMINI_MODEL", "gemini-2.5-flash-preview-09-2025"),
		apiKey:         get("GEMINI_API_KEY", ""),
	}
	log.Printf("[cfg] port=%s db=%s model=%s key_set=%v", cfg.Port, cfg.DBPath, cfg.GeminiModel, usable(cfg.apiKey))
	return cfg
}

// SetAPIKey installs a runtime override. It beats the persisted entry but
// not an injected deploy-time value.
func (c *AppConfig) SetAPIKey(k string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.runtime = k
}

// ResolveAPIKey picks the first usable credential: injected env value, then
// runtime override, then whatever the store callback returns (a previously
// persisted manual entry). Empty string means nothing resolved.
func (c *AppConfig) ResolveAPIKey(fromStore func() string) string {
	c.mu.RLock()
	injected, runtime := c.apiKey, c.runtime
	c.mu.RUnlock()

	if usable(injected) {
		return injected
	}
	if usable(runtime) {
		return runtime
	}
	if fromStore != nil {
		if v := fromStore(); usable(v) {
			return v
		}
	}
	return ""
}
