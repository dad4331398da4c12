package segment

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.log")
	content := "2024-01-15T10:30:00 INFO hello\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	src, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	defer src.Close()

	if src.Size() != int64(len(content)) {
		t.Errorf("Size() = %d, want %d", src.Size(), len(content))
	}

	result, err := New().Parse(context.Background(), src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(result.Entries) != 1 {
		t.Errorf("got %d entries, want 1", len(result.Entries))
	}
}

func TestOpenFile_Missing(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "missing.log"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
