package configs

import (
	"path/filepath"
	"testing"
)

// ParseTestConfig parses the environment like Parse but points all storage
// at a temporary directory cleaned up at the end of the test.
//
// DatabaseType is always `sqlite`.
func ParseTestConfig(t *testing.T) *Config {
	t.Helper()

	cfg, err := Parse()
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	cfg.StoragePath = filepath.Join(dir, "bank_data.txt")
	cfg.DatabaseDSN = filepath.Join(dir, "test.db")
	cfg.DatabaseType = "sqlite"

	return cfg
}
