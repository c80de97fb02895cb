package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFromMissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Catalog.RefreshMinutes != 60 {
		t.Errorf("refreshMinutes default: %d", cfg.Catalog.RefreshMinutes)
	}
	if cfg.Discord.StatusText == "" {
		t.Error("statusText should default")
	}
	if cfg.Bot.SourceURL == "" {
		t.Error("sourceUrl should default")
	}
}

func TestLoadFromAppliesZeroValueDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"discord":{"token":"tok","clientId":"cid"},"twitch":{"clientId":"tw"}}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Discord.Token != "tok" || cfg.Twitch.ClientID != "tw" {
		t.Errorf("parsed values lost: %+v", cfg)
	}
	if cfg.Catalog.RefreshMinutes != 60 {
		t.Errorf("omitted refreshMinutes should default to 60, got %d", cfg.Catalog.RefreshMinutes)
	}
	if cfg.Bot.SourceURL == "" {
		t.Error("omitted sourceUrl should default")
	}
}

func TestLoadFromBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("malformed JSON should be an error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")

	cfg := DefaultConfig()
	cfg.Discord.Token = "tok"
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if loaded.Discord.Token != "tok" {
		t.Errorf("round trip lost token: %+v", loaded.Discord)
	}
}

func TestValidateGateway(t *testing.T) {
	cfg := DefaultConfig()

	err := cfg.Validate(true)
	if err == nil {
		t.Fatal("missing token and client ID should fail gateway validation")
	}
	if !strings.Contains(err.Error(), "discord.token") || !strings.Contains(err.Error(), "discord.clientId") {
		t.Errorf("error should name the missing fields: %v", err)
	}

	if err := cfg.Validate(false); err != nil {
		t.Errorf("token is not required off-gateway: %v", err)
	}

	cfg.Discord.Token = "tok"
	cfg.Discord.ClientID = "cid"
	if err := cfg.Validate(true); err != nil {
		t.Errorf("complete config should validate: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Catalog.RefreshMinutes = -5
	if err := cfg.Validate(false); err == nil {
		t.Error("negative refreshMinutes should fail")
	}

	cfg = DefaultConfig()
	cfg.Twitch.QueryURL = "ftp://example.com"
	if err := cfg.Validate(false); err == nil {
		t.Error("non-http query URL should fail")
	}

	cfg.Twitch.QueryURL = "https://example.com"
	if err := cfg.Validate(false); err != nil {
		t.Errorf("https query URL should pass: %v", err)
	}
}
