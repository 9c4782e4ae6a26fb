package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	SourcesDir string // directory holding <category>.md files (ex: "sources")
	OutputFile string // generated page, overwritten on every build (ex: "index.html")

	// Preview server (serve command)
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RebuildDebounce time.Duration // quiet period after a file change before rebuilding (ex: 300ms)
	ReloadCIDRS     []string      // IPs/CIDRs allowed to POST /reload (empty = no restriction)
	TrustProxy      bool          // true => trust X-Forwarded-For headers
}

func Load() *Config {
	cfg := &Config{
		// Logging
		LogLevel:  getenv("SOURCEPAGE_LOG_LEVEL", "info"),
		PrettyLog: mustBool("SOURCEPAGE_PRETTY_LOG", true),

		// Build
		SourcesDir: getenv("SOURCEPAGE_SOURCES_DIR", "sources"),
		OutputFile: getenv("SOURCEPAGE_OUTPUT_FILE", "index.html"),

		// Preview server
		ListenPort:      getenv("SOURCEPAGE_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("SOURCEPAGE_SHUTDOWN_TIMEOUT", 5*time.Second),
		RebuildDebounce: mustDuration("SOURCEPAGE_REBUILD_DEBOUNCE", 300*time.Millisecond),
		ReloadCIDRS:     parseAllowedIPs(getenv("SOURCEPAGE_RELOAD_CIDRS", "127.0.0.1,::1")),
		TrustProxy:      mustBool("SOURCEPAGE_TRUST_PROXY", false),
	}

	if cfg.LogLevel == "debug" {
		log.Printf("[DEBUG] cfg: %+v\n", *cfg)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
