package config

import (
	"strings"
	"testing"
)

func TestLookup_CaseInsensitive(t *testing.T) {
	spec := Lookup("  LOG-Format ")
	if spec == nil {
		t.Fatal("expected case-insensitive lookup to succeed")
	}
	if spec.Name != "log-format" {
		t.Errorf("expected Name %q, got %q", "log-format", spec.Name)
	}
}

func TestLookup_NotFound(t *testing.T) {
	if spec := Lookup("default-provider"); spec != nil {
		t.Errorf("expected nil for unknown key, got %+v", spec)
	}
}

func TestKeys_AllHaveGetAndSet(t *testing.T) {
	for _, k := range Keys {
		if k.Get == nil || k.Set == nil {
			t.Errorf("key %q is missing Get or Set", k.Name)
		}
		if k.Description == "" {
			t.Errorf("key %q has empty Description", k.Name)
		}
	}
}

func TestKeySpec_Apply(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		want    string
		wantErr string
	}{
		{"endpoints-file", " /srv/My URLs.txt ", "/srv/My URLs.txt", ""},
		{"log-format", "JSON", "json", ""},
		{"log-format", "xml", "", "unsupported log format"},
		{"log-level", "Debug", "debug", ""},
		{"log-level", "loud", "", "unsupported log level"},
		{"log-level", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := &Config{LogLevel: "warn"}
			spec := Lookup(tt.key)

			got, err := spec.Apply(cfg, tt.value)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want || spec.Get(cfg) != tt.want {
				t.Errorf("Apply = %q (stored %q), want %q", got, spec.Get(cfg), tt.want)
			}
		})
	}
}

func TestKeysHelp_ContainsAllKeys(t *testing.T) {
	help := KeysHelp()
	if !strings.Contains(help, "Available keys:") {
		t.Error("expected 'Available keys:' header in help output")
	}
	for _, k := range Keys {
		if !strings.Contains(help, k.Name) || !strings.Contains(help, k.Description) {
			t.Errorf("expected key %q and its description in help output", k.Name)
		}
	}
}
