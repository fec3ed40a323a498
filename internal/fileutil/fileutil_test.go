package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "frame.jpg")
	dst := filepath.Join(dir, "evidence.jpg")
	payload := []byte("jpeg-bytes")
	if err := os.WriteFile(src, payload, 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile failed: %v", err)
	}

	copied, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read destination: %v", err)
	}
	if string(copied) != string(payload) {
		t.Fatalf("copied content mismatch: %q", copied)
	}
}

func TestCopyFileMissingSource(t *testing.T) {
	dir := t.TempDir()
	if err := CopyFile(filepath.Join(dir, "missing.jpg"), filepath.Join(dir, "out.jpg")); err == nil {
		t.Fatal("expected error for missing source")
	}
}
