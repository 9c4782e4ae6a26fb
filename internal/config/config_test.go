package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"SOURCEPAGE_LOG_LEVEL",
		"SOURCEPAGE_PRETTY_LOG",
		"SOURCEPAGE_SOURCES_DIR",
		"SOURCEPAGE_OUTPUT_FILE",
		"SOURCEPAGE_LISTEN_PORT",
		"SOURCEPAGE_SHUTDOWN_TIMEOUT",
		"SOURCEPAGE_REBUILD_DEBOUNCE",
		"SOURCEPAGE_RELOAD_CIDRS",
		"SOURCEPAGE_TRUST_PROXY",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.SourcesDir != "sources" {
		t.Errorf("SourcesDir = %q, want sources", cfg.SourcesDir)
	}
	if cfg.OutputFile != "index.html" {
		t.Errorf("OutputFile = %q, want index.html", cfg.OutputFile)
	}
	if cfg.LogLevel != "info" || !cfg.PrettyLog {
		t.Errorf("logging = (%q, %v), want (info, true)", cfg.LogLevel, cfg.PrettyLog)
	}
	if cfg.ListenPort != ":8080" {
		t.Errorf("ListenPort = %q, want :8080", cfg.ListenPort)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 5s", cfg.ShutdownTimeout)
	}
	if cfg.RebuildDebounce != 300*time.Millisecond {
		t.Errorf("RebuildDebounce = %v, want 300ms", cfg.RebuildDebounce)
	}
	if !reflect.DeepEqual(cfg.ReloadCIDRS, []string{"127.0.0.1", "::1"}) {
		t.Errorf("ReloadCIDRS = %v, want [127.0.0.1 ::1]", cfg.ReloadCIDRS)
	}
	if cfg.TrustProxy {
		t.Error("TrustProxy should default to false")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SOURCEPAGE_SOURCES_DIR", "content/links")
	t.Setenv("SOURCEPAGE_OUTPUT_FILE", "public/index.html")
	t.Setenv("SOURCEPAGE_PRETTY_LOG", "false")
	t.Setenv("SOURCEPAGE_LOG_LEVEL", "warn")
	t.Setenv("SOURCEPAGE_REBUILD_DEBOUNCE", "1s")
	t.Setenv("SOURCEPAGE_RELOAD_CIDRS", "10.0.0.0/8, '192.168.1.4'")

	cfg := Load()

	if cfg.SourcesDir != "content/links" {
		t.Errorf("SourcesDir = %q", cfg.SourcesDir)
	}
	if cfg.OutputFile != "public/index.html" {
		t.Errorf("OutputFile = %q", cfg.OutputFile)
	}
	if cfg.PrettyLog {
		t.Error("PrettyLog should be false")
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
	if cfg.RebuildDebounce != time.Second {
		t.Errorf("RebuildDebounce = %v, want 1s", cfg.RebuildDebounce)
	}
	if !reflect.DeepEqual(cfg.ReloadCIDRS, []string{"10.0.0.0/8", "192.168.1.4"}) {
		t.Errorf("ReloadCIDRS = %v", cfg.ReloadCIDRS)
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{
			name:     "valid duration",
			key:      "TEST_DURATION",
			value:    "5s",
			def:      1 * time.Second,
			expected: 5 * time.Second,
		},
		{
			name:     "invalid duration uses default",
			key:      "TEST_DURATION_INVALID",
			value:    "invalid",
			def:      10 * time.Second,
			expected: 10 * time.Second,
		},
		{
			name:     "negative duration uses default",
			key:      "TEST_DURATION_NEGATIVE",
			value:    "-2s",
			def:      3 * time.Second,
			expected: 3 * time.Second,
		},
		{
			name:     "missing variable uses default",
			key:      "TEST_DURATION_MISSING",
			value:    "",
			def:      15 * time.Second,
			expected: 15 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			result := mustDuration(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      bool
		expected bool
	}{
		{
			name:     "true value",
			key:      "TEST_BOOL",
			value:    "true",
			def:      false,
			expected: true,
		},
		{
			name:     "false value",
			key:      "TEST_BOOL_FALSE",
			value:    "0",
			def:      true,
			expected: false,
		},
		{
			name:     "invalid value uses default",
			key:      "TEST_BOOL_INVALID",
			value:    "invalid",
			def:      true,
			expected: true,
		},
		{
			name:     "missing variable uses default",
			key:      "TEST_BOOL_MISSING",
			value:    "",
			def:      false,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			result := mustBool(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustBool() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestParseAllowedIPs(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty", input: "", expected: nil},
		{name: "single", input: "127.0.0.1", expected: []string{"127.0.0.1"}},
		{name: "quoted and spaced", input: ` "::1" , 10.0.0.0/8 ,`, expected: []string{"::1", "10.0.0.0/8"}},
		{name: "only separators", input: ", ,", expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseAllowedIPs(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("parseAllowedIPs(%q) = %#v, want %#v", tt.input, got, tt.expected)
			}
		})
	}
}
