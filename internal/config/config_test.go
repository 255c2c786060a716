package config

import (
	"reflect"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("ENV", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServerPort != "8080" || cfg.Addr() != ":8080" {
		t.Fatalf("unexpected port: %q", cfg.ServerPort)
	}
	if cfg.RateLimitPerMinute != 120 || cfg.KafkaTopic != "barber.appointments" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("OTEL_ENABLED", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServerPort != "9090" || cfg.StoreDriver != StoreMemory || !cfg.OTelEnabled {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if got := cfg.Brokers(); !reflect.DeepEqual(got, []string{"k1:9092", "k2:9092"}) {
		t.Fatalf("unexpected brokers: %v", got)
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown store driver")
	}

	t.Setenv("STORE_DRIVER", "gorm")
	t.Setenv("ENV", "production")
	t.Setenv("JWT_SECRET", "changeme")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for default secret in production")
	}
}
