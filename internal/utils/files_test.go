package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSafeWriteFileReplacesContent(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "manifest.json")
	if err := SafeWriteFile(p, []byte("one")); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := SafeWriteFile(p, []byte("two")); err != nil {
		t.Fatalf("second write: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "two" {
		t.Fatalf("expected replaced content, got %q", b)
	}
	if _, err := os.Stat(p + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file should be gone, stat err=%v", err)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandHome("~/.fitdash/reports")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if got != filepath.Join(home, ".fitdash", "reports") {
		t.Fatalf("unexpected path %q", got)
	}
	got, err = ExpandHome("/var/tmp/../tmp/x")
	if err != nil {
		t.Fatalf("expand abs: %v", err)
	}
	if !strings.HasSuffix(got, filepath.Join("tmp", "x")) || strings.Contains(got, "..") {
		t.Fatalf("expected cleaned path, got %q", got)
	}
}

func TestIsEmptyDir(t *testing.T) {
	dir := t.TempDir()
	empty, err := IsEmptyDir(filepath.Join(dir, "missing"))
	if err != nil || !empty {
		t.Fatalf("missing dir should count as empty: empty=%v err=%v", empty, err)
	}
	empty, err = IsEmptyDir(dir)
	if err != nil || !empty {
		t.Fatalf("fresh temp dir should be empty: empty=%v err=%v", empty, err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	empty, err = IsEmptyDir(dir)
	if err != nil || empty {
		t.Fatalf("dir with a file should not be empty: empty=%v err=%v", empty, err)
	}
}
