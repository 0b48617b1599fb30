package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// update reports whether golden files should be rewritten instead of
// compared. Run the tests with GOLDEN_UPDATE=1 after an intentional
// output change.
func update() bool {
	return os.Getenv("GOLDEN_UPDATE") != ""
}

// GoldenString compares got against testdata/<name>.golden.
func GoldenString(t *testing.T, name string, got string) {
	t.Helper()

	path := filepath.Join("testdata", name+".golden")

	if update() {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("create %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(got), 0644); err != nil {
			t.Fatalf("update %s: %v", path, err)
		}
		return
	}

	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v (set GOLDEN_UPDATE=1 to create it)\ngot:\n%s", path, err, got)
	}
	if got != string(want) {
		t.Errorf("%s mismatch\nwant:\n%sgot:\n%s", name, want, got)
	}
}

// Golden is like GoldenString but takes bytes.
func Golden(t *testing.T, name string, got []byte) {
	t.Helper()
	GoldenString(t, name, string(got))
}
