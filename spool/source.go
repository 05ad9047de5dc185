package spool

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gmseer/interfaces"
	"gmseer/model"
)

const defaultPattern = "*.json"

// DirSource hands out the batch files of a spool directory in lexical name order.
// Finished files are moved to doneDir, or only remembered when doneDir is empty.
type DirSource struct {
	dir     string
	doneDir string
	pattern string

	mu   sync.Mutex
	done map[string]struct{}
}

var _ interfaces.BatchSource = (*DirSource)(nil)

func NewDirSource(dir, doneDir, pattern string) (*DirSource, error) {
	if pattern == "" {
		pattern = defaultPattern
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("spool pattern %q: %w", pattern, err)
	}
	if doneDir != "" {
		if err := os.MkdirAll(doneDir, 0o755); err != nil {
			return nil, fmt.Errorf("create done dir: %w", err)
		}
	}
	return &DirSource{dir: dir, doneDir: doneDir, pattern: pattern, done: make(map[string]struct{})}, nil
}

// pending lists batch files not handed out as done yet, oldest name first.
func (s *DirSource) pending() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(s.dir, s.pattern))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	s.mu.Lock()
	defer s.mu.Unlock()
	pending := make([]string, 0, len(files))
	for _, f := range files {
		if _, ok := s.done[f]; ok {
			continue
		}
		if info, err := os.Stat(f); err != nil || info.IsDir() {
			continue
		}
		pending = append(pending, f)
	}
	return pending, nil
}

func (s *DirSource) Next(ctx context.Context) (*model.Batch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pending, err := s.pending()
	if err != nil {
		return nil, fmt.Errorf("list spool dir: %w", err)
	}
	if len(pending) == 0 {
		return nil, io.EOF
	}
	slog.Debug("reading batch file", "file", pending[0], "pending", len(pending))
	return ReadBatchFile(pending[0])
}

func (s *DirSource) Done(batch *model.Batch) error {
	s.mu.Lock()
	s.done[batch.Source] = struct{}{}
	s.mu.Unlock()
	if s.doneDir == "" {
		return nil
	}
	target := filepath.Join(s.doneDir, filepath.Base(batch.Source))
	if err := os.Rename(batch.Source, target); err != nil {
		return fmt.Errorf("move %s: %w", batch.Source, err)
	}
	s.mu.Lock()
	delete(s.done, batch.Source)
	s.mu.Unlock()
	return nil
}

// FileSource replays an explicit list of batch files in the given order.
type FileSource struct {
	files []string
}

func NewFileSource(files ...string) *FileSource {
	return &FileSource{files: files}
}

func (s *FileSource) Next(ctx context.Context) (*model.Batch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(s.files) == 0 {
		return nil, io.EOF
	}
	return ReadBatchFile(s.files[0])
}

func (s *FileSource) Done(batch *model.Batch) error {
	if len(s.files) > 0 && s.files[0] == batch.Source {
		s.files = s.files[1:]
	}
	return nil
}
