package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"

	"go.viam.com/photonav/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	test.That(t, cfg.Port, test.ShouldEqual, 50000)
	test.That(t, cfg.AcceptedPeer, test.ShouldEqual, "192.168.8.8")
	test.That(t, cfg.GridWidth, test.ShouldEqual, 20)
	test.That(t, cfg.GridHeight, test.ShouldEqual, 20)
	test.That(t, cfg.Margins().Safe, test.ShouldEqual, 2)
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photonav.json")
	test.That(t, os.WriteFile(path, []byte(`{"port": 60000, "safe_margin": 3}`), 0o600), test.ShouldBeNil)

	cfg, err := config.Load(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.Port, test.ShouldEqual, 60000)
	test.That(t, cfg.SafeMargin, test.ShouldEqual, 3)
	// Untouched fields keep their defaults.
	test.That(t, cfg.GridWidth, test.ShouldEqual, 20)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := config.Load("")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg, test.ShouldResemble, config.Default())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.json"))
	test.That(t, err, test.ShouldNotBeNil)
}
