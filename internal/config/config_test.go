package config

import (
	"os"
	"testing"
	"time"
)

func TestRequireEnv(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		shouldSet bool
		wantPanic bool
	}{
		{
			name:      "variable set",
			key:       "TEST_VAR",
			value:     "test_value",
			shouldSet: true,
			wantPanic: false,
		},
		{
			name:      "variable not set",
			key:       "TEST_VAR_MISSING",
			shouldSet: false,
			wantPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldSet {
				if err := os.Setenv(tt.key, tt.value); err != nil {
					t.Fatalf("failed to set env var: %v", err)
				}
				defer func() {
					if err := os.Unsetenv(tt.key); err != nil {
						t.Errorf("failed to unset env var: %v", err)
					}
				}()
			}

			if tt.wantPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("requireEnv() should have panicked")
					}
				}()
			}

			result := requireEnv(tt.key)
			if !tt.wantPanic && result != tt.value {
				t.Errorf("requireEnv() = %v, want %v", result, tt.value)
			}
		})
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		def   time.Duration
		want  time.Duration
	}{
		{name: "valid duration", key: "TEST_DUR", value: "10s", def: time.Second, want: 10 * time.Second},
		{name: "invalid duration falls back", key: "TEST_DUR", value: "nonsense", def: time.Second, want: time.Second},
		{name: "unset falls back", key: "TEST_DUR_UNSET", value: "", def: 3 * time.Minute, want: 3 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				if err := os.Setenv(tt.key, tt.value); err != nil {
					t.Fatalf("failed to set env var: %v", err)
				}
				defer func() { _ = os.Unsetenv(tt.key) }()
			}

			if got := mustDuration(tt.key, tt.def); got != tt.want {
				t.Errorf("mustDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetenvInt(t *testing.T) {
	if err := os.Setenv("TEST_INT", "42"); err != nil {
		t.Fatalf("failed to set env var: %v", err)
	}
	defer func() { _ = os.Unsetenv("TEST_INT") }()

	if got := getenvInt("TEST_INT", 7); got != 42 {
		t.Errorf("getenvInt() = %v, want 42", got)
	}
	if got := getenvInt("TEST_INT_UNSET", 7); got != 7 {
		t.Errorf("getenvInt() = %v, want default 7", got)
	}
}

func TestLoadPanicsWithoutBackend(t *testing.T) {
	for _, key := range []string{"CLOUDNAV_REDIS_ADDR", "CLOUDNAV_KV_API", "CLOUDNAV_KV_TOKEN"} {
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("failed to unset env var: %v", err)
		}
	}

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Load() should panic when no storage backend is configured")
		}
	}()
	Load()
}

func TestLoadWithRedisBackend(t *testing.T) {
	if err := os.Setenv("CLOUDNAV_REDIS_ADDR", "localhost:6379"); err != nil {
		t.Fatalf("failed to set env var: %v", err)
	}
	defer func() { _ = os.Unsetenv("CLOUDNAV_REDIS_ADDR") }()

	cfg := Load()
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("Load() RedisAddr = %q, want localhost:6379", cfg.RedisAddr)
	}
	if cfg.ListenPort != ":8080" {
		t.Errorf("Load() ListenPort = %q, want :8080", cfg.ListenPort)
	}
	if cfg.SnapshotKeep != 14 {
		t.Errorf("Load() SnapshotKeep = %v, want 14", cfg.SnapshotKeep)
	}
}
