package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Endpoint != "wss://localhost:8443/ws" {
		t.Errorf("endpoint: %q", cfg.Endpoint)
	}
	if cfg.DialTimeout != 10*time.Second {
		t.Errorf("dial timeout: %v", cfg.DialTimeout)
	}
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"endpoint":"wss://example.net/ws","self_jid":"5511@c.us","debug":true}`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Endpoint != "wss://example.net/ws" {
		t.Errorf("endpoint: %q", cfg.Endpoint)
	}
	if cfg.SelfJID != "5511@c.us" {
		t.Errorf("self jid: %q", cfg.SelfJID)
	}
	if !cfg.Debug {
		t.Error("debug flag lost")
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"self_jid":"file@c.us"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("WACLAW_SELF_JID", "env@c.us")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SelfJID != "env@c.us" {
		t.Errorf("self jid: %q", cfg.SelfJID)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("missing self_jid must fail validation")
	}
	cfg.SelfJID = "5511@c.us"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected: %v", err)
	}
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected parse error")
	}
}
