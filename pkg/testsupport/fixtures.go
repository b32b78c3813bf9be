// Package testsupport holds file-based helpers shared by the test
// suites: JSON fixtures under testdata/ and golden files under
// testdata/golden/.
package testsupport

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// LoadFixture returns the raw contents of a fixture file. Paths are
// usually built with FixturePath so they resolve relative to the test
// package directory.
func LoadFixture(t *testing.T, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("load fixture %s: %v", path, err)
	}
	return data
}

// LoadFixtureJSON loads a fixture file and unmarshals it into dest.
func LoadFixtureJSON(t *testing.T, path string, dest any) {
	t.Helper()

	if err := json.Unmarshal(LoadFixture(t, path), dest); err != nil {
		t.Fatalf("unmarshal fixture %s: %v", path, err)
	}
}

// WriteGolden writes data to a golden file, creating parent directories
// as needed. Tests normally reach it through CompareWithGolden.
func WriteGolden(t *testing.T, path string, data []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create golden dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden file %s: %v", path, err)
	}
}

// CompareWithGolden fails the test when actual differs from the golden
// file at path. A missing golden file is written instead of failing, so
// new cases bootstrap themselves on their first run; delete the file to
// regenerate it.
func CompareWithGolden(t *testing.T, path string, actual []byte) {
	t.Helper()

	expected, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Logf("golden file %s does not exist, creating it", path)
			WriteGolden(t, path, actual)
			return
		}
		t.Fatalf("read golden file %s: %v", path, err)
	}

	if !bytes.Equal(actual, expected) {
		t.Errorf("output differs from golden file %s\nwant:\n%s\ngot:\n%s", path, expected, actual)
	}
}

// FixturePath returns the path of a fixture file under testdata/.
func FixturePath(filename string) string {
	return filepath.Join("testdata", filename)
}

// GoldenPath returns the path of a golden file under testdata/golden/.
func GoldenPath(filename string) string {
	return filepath.Join("testdata", "golden", filename)
}
