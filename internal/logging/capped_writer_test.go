package logging

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCappedWriterTruncatesAtCap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hall.log")
	w, err := newCappedWriter(path, 1)
	if err != nil {
		t.Fatalf("create writer: %v", err)
	}
	defer w.Close()

	chunk := make([]byte, 512*1024)
	for i := 0; i < 3; i++ {
		if _, err := w.Write(chunk); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat log: %v", err)
	}
	if info.Size() > 1<<20 {
		t.Fatalf("log grew past cap: %d bytes", info.Size())
	}
}

func TestCappedWriterAppendsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hall.log")
	w, err := newCappedWriter(path, 1)
	if err != nil {
		t.Fatalf("create writer: %v", err)
	}
	if _, err := w.Write([]byte("first\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	// A write after Close reopens the file in append mode.
	if _, err := w.Write([]byte("second\n")); err != nil {
		t.Fatalf("write after close: %v", err)
	}
	w.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if string(data) != "first\nsecond\n" {
		t.Fatalf("unexpected log contents: %q", data)
	}
}
