package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Storage writes encoded captures to a directory with timestamped names.
// It is safe for concurrent use; the capture worker saves while the UI may
// change the directory.
type Storage struct {
	mu        sync.Mutex
	directory string
	enabled   bool
}

// NewStorage returns a Storage rooted at directory. A disabled Storage
// accepts Save calls and writes nothing.
func NewStorage(directory string, enabled bool) *Storage {
	return &Storage{directory: expandHome(directory), enabled: enabled}
}

// Configure updates the target directory and whether saving is enabled.
func (s *Storage) Configure(directory string, enabled bool) {
	s.mu.Lock()
	s.directory = expandHome(directory)
	s.enabled = enabled
	s.mu.Unlock()
}

// Directory returns the current target directory.
func (s *Storage) Directory() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.directory
}

// Save writes pngBytes and returns the file path, or "" when saving is
// disabled.
func (s *Storage) Save(pngBytes []byte, at time.Time) (string, error) {
	s.mu.Lock()
	dir, enabled := s.directory, s.enabled
	s.mu.Unlock()
	if !enabled {
		return "", nil
	}
	if len(pngBytes) == 0 {
		return "", fmt.Errorf("save capture: empty image")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	if at.IsZero() {
		at = time.Now()
	}
	path := filepath.Join(dir, FileName(at))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := f.Write(pngBytes); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}

// FileName is the capture file name for a capture time.
func FileName(at time.Time) string {
	return "capture_" + strings.Replace(at.Format("20060102_150405.000"), ".", "_", 1) + ".png"
}

func expandHome(dir string) string {
	if dir == "~" || strings.HasPrefix(dir, "~/") || strings.HasPrefix(dir, `~\`) {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, dir[1:])
		}
	}
	return dir
}
