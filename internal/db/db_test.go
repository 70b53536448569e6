package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/coldestconcept/beatgenius/internal/config"
)

func TestInit_CreatesDatabaseAndDirs(t *testing.T) {
	tmpDir := t.TempDir()

	database, err := Init(tmpDir)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer database.Close()

	if _, err := os.Stat(filepath.Join(tmpDir, "beatgenius.db")); err != nil {
		t.Errorf("database file not created: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "exports")); err != nil {
		t.Errorf("exports directory not created: %v", err)
	}

	version, err := GetUserVersion(database)
	if err != nil {
		t.Fatalf("GetUserVersion failed: %v", err)
	}
	if version != CurrentSchemaVersion {
		t.Errorf("user_version = %d, want %d", version, CurrentSchemaVersion)
	}
}

func TestInit_Idempotent(t *testing.T) {
	tmpDir := t.TempDir()

	database, err := Init(tmpDir)
	if err != nil {
		t.Fatalf("first Init failed: %v", err)
	}
	if err := Put(database, KeyVault, `[]`); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	database.Close()

	// Re-opening must not wipe existing data.
	database, err = Init(tmpDir)
	if err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	defer database.Close()

	value, ok, err := Get(database, KeyVault)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok || value != `[]` {
		t.Errorf("Get = (%q, %v), want ([], true)", value, ok)
	}
}

func TestGetPutDelete(t *testing.T) {
	tmpDir := t.TempDir()
	database, err := Init(tmpDir)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer database.Close()

	// Missing key
	_, ok, err := Get(database, KeyUser)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Error("Get(missing) ok = true, want false")
	}

	// Put then Get
	if err := Put(database, KeyUser, `{"name":"Kay"}`); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	value, ok, err := Get(database, KeyUser)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok || value != `{"name":"Kay"}` {
		t.Errorf("Get = (%q, %v)", value, ok)
	}

	// Put replaces
	if err := Put(database, KeyUser, `{"name":"Jay"}`); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	value, _, _ = Get(database, KeyUser)
	if value != `{"name":"Jay"}` {
		t.Errorf("Get after replace = %q", value)
	}

	// Delete is a no-op for absent keys
	if err := Delete(database, KeyVault); err != nil {
		t.Fatalf("Delete(absent) failed: %v", err)
	}
	if err := Delete(database, KeyUser); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	_, ok, _ = Get(database, KeyUser)
	if ok {
		t.Error("Get after Delete ok = true, want false")
	}
}

func TestClear(t *testing.T) {
	tmpDir := t.TempDir()
	database, err := Init(tmpDir)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer database.Close()

	for _, key := range []string{KeyUser, KeyVault, KeyFolders, KeyHistory, KeyPresets, KeyActiveUI} {
		if err := Put(database, key, `{}`); err != nil {
			t.Fatalf("Put(%s) failed: %v", key, err)
		}
	}

	if err := Clear(database); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	for _, key := range []string{KeyUser, KeyVault, KeyFolders, KeyHistory, KeyPresets, KeyActiveUI} {
		if _, ok, _ := Get(database, key); ok {
			t.Errorf("key %s survived Clear", key)
		}
	}
}

func TestConfigurePool(t *testing.T) {
	tmpDir := t.TempDir()
	database, err := Init(tmpDir)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer database.Close()

	// nil config must not panic
	ConfigurePool(database, nil)
	ConfigurePool(database, &config.Config{DBMaxOpenConns: 1, DBMaxIdleConns: 1})
}
