package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSaveWritesTimestampedFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	s := NewStorage(dir, true)
	at := time.Date(2024, 3, 9, 14, 5, 7, 250*int(time.Millisecond), time.UTC)
	path, err := s.Save([]byte{1, 2, 3}, at)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Base(path) != "capture_20240309_140507_250.png" {
		t.Fatalf("unexpected name %s", path)
	}
	b, err := os.ReadFile(path)
	if err != nil || !bytes.Equal(b, []byte{1, 2, 3}) {
		t.Fatalf("unexpected contents %v %v", b, err)
	}
	if _, err := s.Save([]byte{4}, at); err == nil {
		t.Fatalf("expected error for existing file")
	}
}

func TestSaveDisabled(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "none")
	s := NewStorage(dir, false)
	path, err := s.Save([]byte{1}, time.Now())
	if err != nil || path != "" {
		t.Fatalf("disabled save returned %q %v", path, err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("directory created while disabled")
	}
}

func TestSaveEmpty(t *testing.T) {
	s := NewStorage(t.TempDir(), true)
	if _, err := s.Save(nil, time.Now()); err == nil {
		t.Fatalf("expected error for empty image")
	}
}

func TestConfigure(t *testing.T) {
	s := NewStorage("a", false)
	dir := t.TempDir()
	s.Configure(dir, true)
	if s.Directory() != dir {
		t.Fatalf("directory not updated")
	}
	if path, err := s.Save([]byte{9}, time.Now()); err != nil || path == "" {
		t.Fatalf("save after configure %q %v", path, err)
	}
}
