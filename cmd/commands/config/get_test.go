package config

import (
	"strings"
	"testing"

	"nathanbeddoewebdev/wanddns/internal/config"
)

func TestGet_NotSet(t *testing.T) {
	setupTestConfig(t)

	stdout, err := execConfig(t, "get", "log-format")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(stdout) != "not set" {
		t.Errorf("expected 'not set', got: %s", stdout)
	}
}

func TestGet_Set(t *testing.T) {
	path := setupTestConfig(t)
	if err := (&config.Config{LogFormat: "text"}).SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	stdout, err := execConfig(t, "get", "LOG-FORMAT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(stdout) != "text" {
		t.Errorf("expected 'text', got: %s", stdout)
	}
}

func TestGet_All(t *testing.T) {
	path := setupTestConfig(t)
	if err := (&config.Config{LogLevel: "warn"}).SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	stdout, err := execConfig(t, "get")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "endpoints-file: not set\nlog-format: not set\nlog-level: warn\n"
	if stdout != want {
		t.Errorf("got:\n%s\nwant:\n%s", stdout, want)
	}
}

func TestGet_UnknownKey(t *testing.T) {
	setupTestConfig(t)

	_, err := execConfig(t, "get", "bogus-key")
	if err == nil || !strings.Contains(err.Error(), "unknown configuration key") {
		t.Errorf("expected 'unknown configuration key' error, got %v", err)
	}
}
