package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTestUncurlFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, uncurlFileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func TestReadUncurlFileTopLevel(t *testing.T) {
	path := writeTestUncurlFile(t, t.TempDir(), `
include:
  - '**/*.py'
exclude:
  - 'vendor/'
indent: 2
`)
	rules, err := readUncurlFile(path, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rules.include) != 1 || rules.include[0] != "**/*.py" {
		t.Fatalf("include = %v", rules.include)
	}
	if len(rules.exclude) != 1 || rules.exclude[0] != "vendor/" {
		t.Fatalf("exclude = %v", rules.exclude)
	}
	if rules.indent != 2 {
		t.Fatalf("indent = %d, want 2", rules.indent)
	}
}

func TestReadUncurlFileProfileMerge(t *testing.T) {
	path := writeTestUncurlFile(t, t.TempDir(), `
include:
  - '**/*.py'
profiles:
  default:
    exclude:
      - 'build/'
  strict:
    exclude:
      - 'build/'
      - 'tests/'
`)
	rules, err := readUncurlFile(path, "strict")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rules.exclude) != 2 {
		t.Fatalf("exclude = %v, want strict profile excludes", rules.exclude)
	}

	// Unknown profile falls back to "default".
	rules, err = readUncurlFile(path, "nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rules.exclude) != 1 || rules.exclude[0] != "build/" {
		t.Fatalf("exclude = %v, want default profile excludes", rules.exclude)
	}
}

func TestReadUncurlFileMissing(t *testing.T) {
	_, err := readUncurlFile(filepath.Join(t.TempDir(), uncurlFileName), "")
	if !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestReadUncurlFileMalformed(t *testing.T) {
	path := writeTestUncurlFile(t, t.TempDir(), "include: [unclosed\n")
	if _, err := readUncurlFile(path, ""); err == nil {
		t.Fatalf("expected parse error")
	}
}
