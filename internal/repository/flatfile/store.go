package flatfile

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/tanvirhs/resto/internal/domain/models"
)

// Store is the durable-store adapter. It exposes line-oriented primitives over
// files in a single data directory; every failure surfaces as a
// models.PersistenceError that callers must treat as fatal for the operation.
type Store struct {
	dir    string
	logger *zap.Logger
}

// NewStore builds a flat-file store rooted at dir, creating it when absent.
func NewStore(dir string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dir == "" {
		dir = "."
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &models.PersistenceError{Op: "create data dir", Err: err}
	}

	return &Store{dir: dir, logger: logger}, nil
}

// ReadLines returns the non-empty lines of the named file in order. A missing
// file is an empty dataset, not an error.
func (s *Store) ReadLines(name string) ([]string, error) {
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, &models.PersistenceError{Op: fmt.Sprintf("open %s", name), Err: err}
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &models.PersistenceError{Op: fmt.Sprintf("read %s", name), Err: err}
	}

	return lines, nil
}

// WriteAllLines replaces the named file with the provided lines. The content
// is staged in a temporary file and renamed over the original so a crash
// mid-write can never truncate the live file.
func (s *Store) WriteAllLines(name string, lines []string) error {
	target := filepath.Join(s.dir, name)

	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return &models.PersistenceError{Op: fmt.Sprintf("stage %s", name), Err: err}
	}
	tmpName := tmp.Name()

	cleanup := func(cause error) error {
		tmp.Close()
		os.Remove(tmpName)
		return &models.PersistenceError{Op: fmt.Sprintf("write %s", name), Err: cause}
	}

	w := bufio.NewWriter(tmp)
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			return cleanup(err)
		}
	}
	if err := w.Flush(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &models.PersistenceError{Op: fmt.Sprintf("write %s", name), Err: err}
	}

	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return &models.PersistenceError{Op: fmt.Sprintf("replace %s", name), Err: err}
	}

	s.logger.Debug("file rewritten", zap.String("file", name), zap.Int("lines", len(lines)))
	return nil
}

// AppendLines adds the provided lines to the end of the named file, creating
// it when absent. The batch is flushed with a single write so partially
// appended orders are not interleaved with later ones.
func (s *Store) AppendLines(name string, lines []string) error {
	if len(lines) == 0 {
		return nil
	}

	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return &models.PersistenceError{Op: fmt.Sprintf("open %s for append", name), Err: err}
	}
	defer f.Close()

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	if _, err := f.WriteString(b.String()); err != nil {
		return &models.PersistenceError{Op: fmt.Sprintf("append %s", name), Err: err}
	}
	if err := f.Sync(); err != nil {
		return &models.PersistenceError{Op: fmt.Sprintf("append %s", name), Err: err}
	}

	s.logger.Debug("lines appended", zap.String("file", name), zap.Int("lines", len(lines)))
	return nil
}

// Path reports the absolute location of the named file, for logs and errors.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}
