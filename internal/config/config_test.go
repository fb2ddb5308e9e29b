package config

import (
	"os"
	"testing"
)

func unsetBuildEnv() {
	_ = os.Unsetenv("DREAMCANVAS_BUILD_TARGET")
	_ = os.Unsetenv("DREAMCANVAS_DB_DRIVER")
	_ = os.Unsetenv("DREAMCANVAS_POSTGRES_DSN")
}

func TestResolveDefaultsLocal(t *testing.T) {
	unsetBuildEnv()
	defer unsetBuildEnv()

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.DBDriver != "sqlite" {
		t.Fatalf("unexpected mapping for local: %s", cfg.DBDriver)
	}
}

func TestResolveDefaultsCloud(t *testing.T) {
	unsetBuildEnv()
	_ = os.Setenv("DREAMCANVAS_BUILD_TARGET", "cloud")
	_ = os.Setenv("DREAMCANVAS_POSTGRES_DSN", "postgres://localhost:5432/dreams")
	defer unsetBuildEnv()

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.DBDriver != "postgres" {
		t.Fatalf("unexpected mapping for cloud: %s", cfg.DBDriver)
	}
}

func TestResolveDefaultsCloudRequiresDSN(t *testing.T) {
	unsetBuildEnv()
	_ = os.Setenv("DREAMCANVAS_BUILD_TARGET", "cloud")
	defer unsetBuildEnv()

	if _, err := New(); err == nil {
		t.Fatal("expected error for cloud target without POSTGRES_DSN")
	}
}

func TestResolveDefaultsInvalidTarget(t *testing.T) {
	unsetBuildEnv()
	_ = os.Setenv("DREAMCANVAS_BUILD_TARGET", "mainframe")
	defer unsetBuildEnv()

	if _, err := New(); err == nil {
		t.Fatal("expected error for unsupported build target")
	}
}

func TestConfigEnvOverride(t *testing.T) {
	unsetBuildEnv()
	_ = os.Setenv("DREAMCANVAS_HTTP_PORT", "9191")
	defer func() {
		_ = os.Unsetenv("DREAMCANVAS_HTTP_PORT")
		unsetBuildEnv()
	}()

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.HTTPPort != 9191 {
		t.Fatalf("port env override failed, got %d", cfg.HTTPPort)
	}
}
