package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	bp, err := LoadBubblePop("")
	if err != nil {
		t.Fatalf("LoadBubblePop() failed: %v", err)
	}
	if !reflect.DeepEqual(bp, DefaultBubblePopConfig()) {
		t.Errorf("embedded bubblepop.yaml = %+v, expected %+v", bp, DefaultBubblePopConfig())
	}

	pl, err := LoadPlinko("")
	if err != nil {
		t.Fatalf("LoadPlinko() failed: %v", err)
	}
	if !reflect.DeepEqual(pl, DefaultPlinkoConfig()) {
		t.Errorf("embedded plinko.yaml = %+v, expected %+v", pl, DefaultPlinkoConfig())
	}

	cr, err := LoadCardReveal("")
	if err != nil {
		t.Fatalf("LoadCardReveal() failed: %v", err)
	}
	if cr.Rows*cr.Cols != 16 {
		t.Errorf("card reveal grid = %dx%d, expected 16 blocks", cr.Rows, cr.Cols)
	}

	wm, err := LoadWordMatch("")
	if err != nil {
		t.Fatalf("LoadWordMatch() failed: %v", err)
	}
	if wm != DefaultWordMatchConfig() {
		t.Errorf("embedded wordmatch.yaml = %+v, expected %+v", wm, DefaultWordMatchConfig())
	}
}

func TestEmbeddedCatalog(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cat, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("LoadCatalog() failed: %v", err)
	}
	if len(cat.Categories["animals"]) == 0 {
		t.Error("embedded catalog should have animal cards")
	}
}

func TestCustomDirOverridesAndFallsThrough(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()

	// Partial file: only the threshold changes.
	if err := os.WriteFile(filepath.Join(dir, PlinkoFile), []byte("threshold: 40\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	set, err := LoadAll(dir)
	if err != nil {
		t.Fatalf("LoadAll() failed: %v", err)
	}
	if set.Plinko.Threshold != 40 {
		t.Errorf("Threshold = %d, expected 40", set.Plinko.Threshold)
	}
	if set.Plinko.Physics.Gravity != 0.6 {
		t.Errorf("Gravity = %v, expected default 0.6 to survive a partial file", set.Plinko.Physics.Gravity)
	}
	// No bubblepop.yaml in dir: defaults.
	if set.BubblePop.Bubbles.Rows != 7 {
		t.Errorf("BubblePop rows = %d, expected 7", set.BubblePop.Bubbles.Rows)
	}
}

func TestCustomDirBadYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, BubblePopFile), []byte("board: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBubblePop(dir); err == nil {
		t.Error("LoadBubblePop() should fail on malformed YAML in customDir")
	}
}

func TestUserConfigDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfgDir := filepath.Join(home, ".cardquest", "configs")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	data := []byte("categories:\n  shapes: [circle.png, square.png]\n")
	if err := os.WriteFile(filepath.Join(cfgDir, CatalogFile), data, 0o644); err != nil {
		t.Fatal(err)
	}

	cat, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("LoadCatalog() failed: %v", err)
	}
	if got := cat.Categories["shapes"]; len(got) != 2 {
		t.Errorf("shapes = %v, expected 2 cards from the user file", got)
	}
}

func TestCatalogReplacesDefaults(t *testing.T) {
	dir := t.TempDir()
	data := []byte("categories:\n  shapes: [circle.png]\n")
	if err := os.WriteFile(filepath.Join(dir, CatalogFile), data, 0o644); err != nil {
		t.Fatal(err)
	}

	cat, err := LoadCatalog(dir)
	if err != nil {
		t.Fatalf("LoadCatalog() failed: %v", err)
	}
	if _, ok := cat.Categories["animals"]; ok {
		t.Error("custom catalog should not inherit built-in categories")
	}
}
