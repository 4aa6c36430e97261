package enclave

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestNewAllocatesUniqueDirectories(t *testing.T) {
	root := t.TempDir()
	a, err := New(root, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b, err := New(root, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if a.Path == b.Path {
		t.Fatalf("two enclaves share a path: %s", a.Path)
	}
	for _, e := range []*Enclave{a, b} {
		info, err := os.Stat(e.Path)
		if err != nil || !info.IsDir() {
			t.Errorf("enclave dir missing: %s (%v)", e.Path, err)
		}
	}
	a.Close()
	b.Close()
}

func TestWriteFileCreatesParents(t *testing.T) {
	e, err := New(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer e.Close()

	if err := e.WriteFile(filepath.Join("nested", "deep", "file.txt"), []byte("x")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := e.ReadFile(filepath.Join("nested", "deep", "file.txt"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "x" {
		t.Errorf("content = %q, want %q", got, "x")
	}
}

func TestCloseRemovesEverything(t *testing.T) {
	e, err := New(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := e.WriteFile("program.py", []byte("print(1)")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	e.Close()
	if _, err := os.Stat(e.Path); !os.IsNotExist(err) {
		t.Errorf("enclave still exists after Close: %v", err)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	e, err := New(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e.Close()
	e.Close()
}

func TestIsolation(t *testing.T) {
	root := t.TempDir()
	a, _ := New(root, zap.NewNop())
	b, _ := New(root, zap.NewNop())
	defer b.Close()

	_ = a.WriteFile("program.py", []byte("a"))
	_ = b.WriteFile("program.py", []byte("b"))
	a.Close()

	got, err := b.ReadFile("program.py")
	if err != nil {
		t.Fatalf("ReadFile after sibling Close: %v", err)
	}
	if string(got) != "b" {
		t.Errorf("content = %q, want %q", got, "b")
	}
}
