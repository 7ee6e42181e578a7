package watchlist

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestManager_SeedAndRoundtrip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "watchlist.json")

	m, err := NewManager(file, []string{"nvda", " aapl ", "MSFT"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"AAPL", "MSFT", "NVDA"}
	if got := m.Symbols(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected seeded %v, got %v", want, got)
	}

	// A second manager over the same file reads the persisted list and
	// must not re-seed.
	again, err := NewManager(file, []string{"TSLA"})
	if err != nil {
		t.Fatal(err)
	}
	if got := again.Symbols(); !reflect.DeepEqual(got, want) {
		t.Fatalf("existing file must win over seed, got %v", got)
	}
}

func TestManager_AddRemove(t *testing.T) {
	file := filepath.Join(t.TempDir(), "watchlist.json")
	m, err := NewManager(file, nil)
	if err != nil {
		t.Fatal(err)
	}

	if err := m.Add("amd"); err != nil {
		t.Fatal(err)
	}
	if !m.Contains("AMD") || !m.Contains(" amd ") {
		t.Error("lookup should normalize case and whitespace")
	}
	if err := m.Add("AMD"); err == nil {
		t.Error("duplicate add must error")
	}
	if err := m.Add("  "); err == nil {
		t.Error("blank symbol must error")
	}

	if err := m.Remove("amd"); err != nil {
		t.Fatal(err)
	}
	if m.Contains("AMD") {
		t.Error("removed symbol should be gone")
	}
	if err := m.Remove("AMD"); err == nil {
		t.Error("removing a missing symbol must error")
	}
}

func TestManager_PersistsAcrossInstances(t *testing.T) {
	file := filepath.Join(t.TempDir(), "watchlist.json")
	m, err := NewManager(file, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Add("PLTR"); err != nil {
		t.Fatal(err)
	}

	reopened, err := NewManager(file, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reopened.Contains("PLTR") {
		t.Error("added symbol must survive a reload")
	}
}

func TestLoadState_MissingAndCorrupt(t *testing.T) {
	dir := t.TempDir()

	state, err := LoadState(filepath.Join(dir, "absent.json"))
	if err != nil {
		t.Fatalf("missing file should yield empty state, got %v", err)
	}
	if len(state.Symbols) != 0 {
		t.Errorf("expected empty state, got %v", state.Symbols)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadState(bad); err == nil {
		t.Error("corrupt file must error")
	}
}
