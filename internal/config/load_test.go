// internal/config/load_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sample = `
driver:
  command: ["python3", "/opt/ddguard/live.py"]
poll:
  interval_ms: 60000
bgl:
  bgl_low: 70
  bgl_pre_low: 80
  bgl_pre_high: 180
  bgl_high: 250
nightscout:
  server: ""
  api_secret: ""
broadcast:
  enabled: true
`

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ddguard.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load err=%v", err)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate err=%v", err)
	}
	if cfg.Poll.IntervalMs != 60000 {
		t.Fatalf("interval: got=%d", cfg.Poll.IntervalMs)
	}
	if *cfg.BGL.High != 250 {
		t.Fatalf("bgl_high: got=%d", *cfg.BGL.High)
	}
	if cfg.NightscoutEnabled() {
		t.Fatalf("nightscout must be disabled with empty values")
	}
	if !cfg.Broadcast.Enabled {
		t.Fatalf("broadcast should be enabled")
	}
}

func TestParse_UnknownKeyRejected(t *testing.T) {
	if _, err := Parse([]byte("bgl:\n  bgl_lo: 70\n")); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestParse_Empty(t *testing.T) {
	if _, err := Parse(nil); err == nil {
		t.Fatalf("expected empty document error")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected read error")
	}
}
