package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFixture(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rows.json")
	content := []byte(`[{"id":"a1"},{"id":"a2"}]`)

	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	got := LoadFixture(t, path)
	if string(got) != string(content) {
		t.Errorf("expected %q, got %q", content, got)
	}
}

func TestLoadFixtureJSON(t *testing.T) {
	type row struct {
		ID     string `json:"id"`
		Title  string `json:"title"`
		Status string `json:"status"`
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "articles.json")
	content := []byte(`[{"id":"a1","title":"Getting Started","status":"published"},{"id":"a2","title":"Draft Notes","status":"draft"}]`)

	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	var rows []row
	LoadFixtureJSON(t, path, &rows)

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].ID != "a1" || rows[0].Status != "published" {
		t.Errorf("unexpected first row: %+v", rows[0])
	}
	if rows[1].Title != "Draft Notes" {
		t.Errorf("unexpected second row: %+v", rows[1])
	}
}

func TestWriteGolden_CreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "golden", "keys.golden")
	content := []byte("articles|p1|l10\n")

	WriteGolden(t, path, content)

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden file: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("expected %q, got %q", content, got)
	}
}

func TestCompareWithGolden_CreatesMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keys.golden")
	content := []byte("articles|p1|l10|status=draft\n")

	// First run bootstraps the golden file instead of failing.
	CompareWithGolden(t, path, content)

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("golden file should have been created: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("expected %q, got %q", content, got)
	}

	// Second run sees the file and compares cleanly.
	CompareWithGolden(t, path, content)
}

func TestFixturePath(t *testing.T) {
	got := FixturePath("articles.json")
	want := filepath.Join("testdata", "articles.json")
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestGoldenPath(t *testing.T) {
	got := GoldenPath("page_keys.golden")
	want := filepath.Join("testdata", "golden", "page_keys.golden")
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestFixtureWorkflow(t *testing.T) {
	dir := t.TempDir()

	fixture := filepath.Join(dir, "testdata", "input.json")
	if err := os.MkdirAll(filepath.Dir(fixture), 0o755); err != nil {
		t.Fatalf("create testdata dir: %v", err)
	}

	seed := map[string]any{"id": "a1", "view_count": 42}
	data, err := json.Marshal(seed)
	if err != nil {
		t.Fatalf("marshal seed: %v", err)
	}
	if err := os.WriteFile(fixture, data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	var loaded map[string]any
	LoadFixtureJSON(t, fixture, &loaded)

	if loaded["id"] != "a1" {
		t.Errorf("expected id=a1, got %v", loaded["id"])
	}
	if loaded["view_count"] != float64(42) {
		t.Errorf("expected view_count=42, got %v", loaded["view_count"])
	}

	golden := filepath.Join(dir, "testdata", "golden", "output.golden")
	CompareWithGolden(t, golden, data)
	CompareWithGolden(t, golden, data)
}
