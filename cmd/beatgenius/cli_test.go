package main

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/coldestconcept/beatgenius/internal/config"
	"github.com/coldestconcept/beatgenius/internal/db"
	"github.com/coldestconcept/beatgenius/internal/session"
)

// setupTestStore creates a temporary store for testing.
func setupTestStore(t *testing.T) (*session.Store, *config.Config, string) {
	t.Helper()
	tmpDir := t.TempDir()
	database, err := db.Init(tmpDir)
	if err != nil {
		t.Fatalf("failed to init test db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	cfg := config.DefaultConfig()
	store, err := session.Load(database, cfg)
	if err != nil {
		t.Fatalf("failed to load store: %v", err)
	}
	return store, cfg, tmpDir
}

// runApp runs a CLI invocation and captures stdout.
func runApp(t *testing.T, store *session.Store, cfg *config.Config, exportDir string, args ...string) (string, error) {
	t.Helper()
	app := newCLIApp(store, cfg, nil, exportDir)

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := app.Run(append([]string{"beatgenius"}, args...))

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	os.Stdout = oldStdout

	return buf.String(), err
}

func TestCLILoadFile(t *testing.T) {
	store, cfg, tmpDir := setupTestStore(t)

	listing := "SampleTag.vst3=0,0,Serum (Xfer Records),,\nSampleTag.dll=0,0,OTT (Xfer Records),,\n"
	path := tmpDir + "/plugins.ini"
	if err := os.WriteFile(path, []byte(listing), 0o644); err != nil {
		t.Fatalf("failed to write listing: %v", err)
	}

	out, err := runApp(t, store, cfg, tmpDir, "load", "--file", path)
	if err != nil {
		t.Fatalf("load command failed: %v", err)
	}

	var output struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}
	if output.Count != 2 {
		t.Errorf("expected 2 plugins, got %d", output.Count)
	}
	if len(store.Plugins()) != 2 {
		t.Errorf("expected rack replaced, got %d plugins", len(store.Plugins()))
	}
}

func TestCLILoadFile_Unparseable(t *testing.T) {
	store, cfg, tmpDir := setupTestStore(t)

	path := tmpDir + "/garbage.txt"
	if err := os.WriteFile(path, []byte("nothing useful"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	_, err := runApp(t, store, cfg, tmpDir, "load", "--file", path)
	if err == nil {
		t.Fatal("expected error for unparseable file")
	}
	if !strings.Contains(err.Error(), "PARSE_ERROR") {
		t.Errorf("expected PARSE_ERROR in %q", err.Error())
	}
}

func TestCLISignInOut(t *testing.T) {
	store, cfg, tmpDir := setupTestStore(t)

	out, err := runApp(t, store, cfg, tmpDir, "signin", "Kay")
	if err != nil {
		t.Fatalf("signin command failed: %v", err)
	}
	if !strings.Contains(out, "kay@coldestconcept.com") {
		t.Errorf("expected derived email in output, got %s", out)
	}

	_, err = runApp(t, store, cfg, tmpDir, "signout")
	if err != nil {
		t.Fatalf("signout command failed: %v", err)
	}
	if store.User() != nil {
		t.Error("expected signed-out store")
	}

	_, err = runApp(t, store, cfg, tmpDir, "signin", "")
	if err == nil {
		t.Fatal("expected error for empty name")
	}
	if !strings.Contains(err.Error(), "INVALID_REQUEST") {
		t.Errorf("expected INVALID_REQUEST in %q", err.Error())
	}
}

func TestCLIVaultSaveAndList(t *testing.T) {
	store, cfg, tmpDir := setupTestStore(t)

	if _, err := store.SignIn("Kay"); err != nil {
		t.Fatalf("signin setup failed: %v", err)
	}

	recipeJSON := `{"title":"Arctic Drip","style":"Melodic Trap","description":"Icy.","ingredients":[{"instrument":"Lead","processing":[{"pluginName":"Serum","purpose":"Saws"}]}],"mastering":["Limit"]}`

	app := newCLIApp(store, cfg, nil, tmpDir)

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	oldStdin := os.Stdin
	stdinR, stdinW, _ := os.Pipe()
	os.Stdin = stdinR
	go func() {
		_, _ = stdinW.WriteString(recipeJSON)
		stdinW.Close()
	}()

	err := app.Run([]string{"beatgenius", "vault", "save"})

	os.Stdin = oldStdin
	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	os.Stdout = oldStdout

	if err != nil {
		t.Fatalf("vault save failed: %v", err)
	}

	var output struct {
		Created bool `json:"created"`
	}
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, buf.String())
	}
	if !output.Created {
		t.Error("expected created=true")
	}

	out, err := runApp(t, store, cfg, tmpDir, "vault", "list")
	if err != nil {
		t.Fatalf("vault list failed: %v", err)
	}
	if !strings.Contains(out, "Arctic Drip") {
		t.Errorf("expected saved recipe in listing, got %s", out)
	}
}

func TestCLIRigExport_EmptyVault(t *testing.T) {
	store, cfg, tmpDir := setupTestStore(t)

	if _, err := store.SignIn("Kay"); err != nil {
		t.Fatalf("signin setup failed: %v", err)
	}

	_, err := runApp(t, store, cfg, tmpDir, "rig", "export")
	if err == nil {
		t.Fatal("expected error for empty vault")
	}
	if !strings.Contains(err.Error(), "VAULT_EMPTY") {
		t.Errorf("expected VAULT_EMPTY in %q", err.Error())
	}
}

func TestCLIShareOpenRoundTrip(t *testing.T) {
	store, cfg, tmpDir := setupTestStore(t)

	listing := "SampleTag.vst3=0,0,Serum (Xfer Records),,\n"
	path := tmpDir + "/plugins.ini"
	if err := os.WriteFile(path, []byte(listing), 0o644); err != nil {
		t.Fatalf("failed to write listing: %v", err)
	}
	if _, err := runApp(t, store, cfg, tmpDir, "load", "--file", path); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	out, err := runApp(t, store, cfg, tmpDir, "share")
	if err != nil {
		t.Fatalf("share failed: %v", err)
	}
	var shared struct {
		Link string `json:"link"`
	}
	if err := json.Unmarshal([]byte(out), &shared); err != nil {
		t.Fatalf("failed to parse share output: %v", err)
	}
	if !strings.HasPrefix(shared.Link, "#blueprint=") {
		t.Fatalf("unexpected link %q", shared.Link)
	}

	// Opening replaces whatever rack is loaded with the shared one.
	store.SetPlugins(nil)
	out, err = runApp(t, store, cfg, tmpDir, "open", shared.Link)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if !strings.Contains(out, "Serum") {
		t.Errorf("expected decoded plugin in output, got %s", out)
	}
	if got := store.Plugins(); len(got) != 1 || got[0].Name != "Serum" {
		t.Errorf("expected rack hydrated from link, got %v", got)
	}
}

func TestCLIClearRequiresConfirmation(t *testing.T) {
	store, cfg, tmpDir := setupTestStore(t)

	if _, err := store.SignIn("Kay"); err != nil {
		t.Fatalf("signin setup failed: %v", err)
	}

	_, err := runApp(t, store, cfg, tmpDir, "clear")
	if err == nil {
		t.Fatal("expected error without --yes")
	}
	if store.User() == nil {
		t.Error("expected data untouched without confirmation")
	}

	if _, err := runApp(t, store, cfg, tmpDir, "clear", "--yes"); err != nil {
		t.Fatalf("clear --yes failed: %v", err)
	}
	if store.User() != nil {
		t.Error("expected data wiped")
	}
}

func TestIsCLIMode(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"beatgenius"}, false},
		{[]string{"beatgenius", "vault"}, true},
		{[]string{"beatgenius", "load"}, true},
		{[]string{"beatgenius", "--help"}, true},
		{[]string{"beatgenius", "unknown-thing"}, false},
	}
	for _, tt := range tests {
		os.Args = tt.args
		if got := isCLIMode(); got != tt.want {
			t.Errorf("isCLIMode(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}
