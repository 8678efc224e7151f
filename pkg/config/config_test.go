package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.MaxLimit <= 0 || cfg.Server.MaxPrefix <= 0 {
		t.Errorf("unusable server defaults: %+v", cfg.Server)
	}
	products, ok := cfg.Category("products")
	if !ok || products.Limit != 25 {
		t.Errorf("products category = %+v, %v", products, ok)
	}
	brands, ok := cfg.Category("brands")
	if !ok || brands.Limit != 15 {
		t.Errorf("brands category = %+v, %v", brands, ok)
	}
	if _, ok := cfg.Category("flavors"); ok {
		t.Error("undeclared category reported present")
	}
}

func TestInitConfigCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suppserve.toml")

	cfg, err := InitConfig(path)
	if err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	if _, statErr := os.Stat(path); statErr != nil {
		t.Errorf("config file not created: %v", statErr)
	}
	if cfg.Data.Dir == "" {
		t.Error("created config missing data dir")
	}
}

func TestInitConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suppserve.toml")

	first, _ := InitConfig(path)
	first.Server.MaxLimit = 12
	first.Categories = append(first.Categories, CategoryConfig{Name: "flavors", Limit: 5})
	if err := SaveConfig(first, path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	second, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if second.Server.MaxLimit != 12 {
		t.Errorf("MaxLimit = %d, want 12", second.Server.MaxLimit)
	}
	if _, ok := second.Category("flavors"); !ok {
		t.Error("added category lost in round trip")
	}
}

func TestInitConfigMalformedFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suppserve.toml")
	os.WriteFile(path, []byte("[server\nmax_limit = oops"), 0644)

	cfg, err := InitConfig(path)
	if err != nil {
		t.Fatalf("InitConfig must not fail on malformed input: %v", err)
	}
	if cfg.Server.MaxLimit != DefaultConfig().Server.MaxLimit {
		t.Errorf("malformed config did not fall back to defaults: %+v", cfg.Server)
	}
}
