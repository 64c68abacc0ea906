package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Address != ":5000" {
		t.Errorf("server.address = %q, want :5000", cfg.Server.Address)
	}
	if cfg.Server.PublicURL != "http://localhost:5000" {
		t.Errorf("server.public_url = %q", cfg.Server.PublicURL)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("server.read_timeout = %v, want 15s", cfg.Server.ReadTimeout)
	}
	if cfg.Storage.MaxUploadSize != 10<<20 {
		t.Errorf("storage.max_upload_size = %d, want %d", cfg.Storage.MaxUploadSize, 10<<20)
	}
	if len(cfg.Storage.AllowedExtensions) != 5 {
		t.Errorf("storage.allowed_extensions = %v", cfg.Storage.AllowedExtensions)
	}
	if cfg.RabbitMQ.Enabled {
		t.Error("rabbitmq must be disabled by default")
	}
	if !cfg.CORS.AllowAll {
		t.Error("cors.allow_all must default to true")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SERVER_ADDRESS", ":9090")
	t.Setenv("DATABASE_PORT", "6543")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Address != ":9090" {
		t.Errorf("server.address = %q, want :9090", cfg.Server.Address)
	}
	if cfg.Database.Port != 6543 {
		t.Errorf("database.port = %d, want 6543", cfg.Database.Port)
	}
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{User: "u", Password: "p", Host: "db", Port: 5432, Name: "school", SSLMode: "disable"}
	want := "postgres://u:p@db:5432/school?sslmode=disable"
	if got := c.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
