package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgFile, []byte("{}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(cfgFile)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Model != "openai/gpt-4o-mini" {
		t.Errorf("model = %q", c.Model)
	}
	if c.MaxTokens != 600 {
		t.Errorf("max_tokens = %d", c.MaxTokens)
	}
	if c.Temperature != 0.3 {
		t.Errorf("temperature = %v", c.Temperature)
	}
	if c.ListenAddr != ":8080" {
		t.Errorf("listen_addr = %q", c.ListenAddr)
	}
	if c.MaxUploadMB != 10 {
		t.Errorf("max_upload_mb = %d", c.MaxUploadMB)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	contents := "model: other/model\nmax_tokens: 900\nlisten_addr: \":9999\"\n"
	if err := os.WriteFile(cfgFile, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(cfgFile)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Model != "other/model" {
		t.Errorf("model = %q", c.Model)
	}
	if c.MaxTokens != 900 {
		t.Errorf("max_tokens = %d", c.MaxTokens)
	}
	if c.ListenAddr != ":9999" {
		t.Errorf("listen_addr = %q", c.ListenAddr)
	}
	// untouched keys keep their defaults
	if c.Temperature != 0.3 {
		t.Errorf("temperature = %v", c.Temperature)
	}
}

func TestAPIKeyFromEnv(t *testing.T) {
	t.Setenv("DATASWEEP_API_KEY", "sk-or-test")
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgFile, []byte("{}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(cfgFile)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.APIKey != "sk-or-test" {
		t.Errorf("api_key = %q, want env value", c.APIKey)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	in := &Global{
		APIKey:      "sk-or-test",
		Model:       "other/model",
		MaxTokens:   700,
		Temperature: 0.5,
		ListenAddr:  ":8081",
		MaxUploadMB: 5,
	}
	if err := Save(in, cfgFile); err != nil {
		t.Fatalf("Save: %v", err)
	}
	out, err := Load(cfgFile)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out.APIKey != in.APIKey || out.Model != in.Model || out.MaxTokens != in.MaxTokens {
		t.Fatalf("round trip mismatch: %+v", out)
	}
	if out.ListenAddr != in.ListenAddr || out.MaxUploadMB != in.MaxUploadMB {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}
