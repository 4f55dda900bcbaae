package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Storage: StorageConfig{Type: StorageJSON, Path: "data/matches.json"},
		Gateway: GatewayConfig{JWTSecret: "0123456789abcdef"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid json storage", func(c *Config) {}, ""},
		{
			"json storage without path",
			func(c *Config) { c.Storage.Path = "" },
			"storage path is required",
		},
		{
			"unknown storage type",
			func(c *Config) { c.Storage.Type = "sqlite" },
			"unknown storage type",
		},
		{
			"postgres storage needs host",
			func(c *Config) { c.Storage.Type = StoragePostgres },
			"database host is required",
		},
		{
			"postgres storage complete",
			func(c *Config) {
				c.Storage.Type = StoragePostgres
				c.Database = DatabaseConfig{Host: "localhost", User: "bot", DBName: "padel"}
			},
			"",
		},
		{
			"missing jwt secret",
			func(c *Config) { c.Gateway.JWTSecret = "" },
			"JWT secret is required",
		},
		{
			"short jwt secret",
			func(c *Config) { c.Gateway.JWTSecret = "short" },
			"at least 16 characters",
		},
		{
			"redis enabled without host",
			func(c *Config) { c.Redis.Enabled = true },
			"redis host is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestGetDSN(t *testing.T) {
	db := DatabaseConfig{
		Host: "localhost", Port: 5432, User: "bot",
		Password: "secret", DBName: "padel", SSLMode: "disable",
	}
	want := "host=localhost port=5432 user=bot password=secret dbname=padel sslmode=disable"
	if got := db.GetDSN(); got != want {
		t.Errorf("GetDSN() = %q, want %q", got, want)
	}
}

func TestGetAddr(t *testing.T) {
	r := RedisConfig{Host: "localhost", Port: 6379}
	if got := r.GetAddr(); got != "localhost:6379" {
		t.Errorf("GetAddr() = %q", got)
	}
}
