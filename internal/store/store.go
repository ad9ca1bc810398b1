// Package store persists a task list as one rendered line per task.
package store

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/twiced-technology-gmbh/taskline/internal/task"
)

const (
	fileMode = 0o600
	dirMode  = 0o750
)

// LineWarning describes a record line that could not be decoded during Load.
type LineWarning struct {
	Line int // 1-based line number
	Text string
	Err  error
}

// Store reads and writes the task data file.
type Store struct {
	fs   afero.Fs
	path string
}

// New returns a Store for the file at path on fs.
func New(fs afero.Fs, path string) *Store {
	return &Store{fs: fs, path: path}
}

// NewOS returns a Store backed by the operating system filesystem.
func NewOS(path string) *Store {
	return New(afero.NewOsFs(), path)
}

// Path returns the data file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads all tasks from the data file, creating an empty file (and its
// directory) when none exists. Malformed lines are skipped and reported as
// warnings; lines with an unknown type letter are dropped without a warning.
// On I/O failure the returned slice is empty, never nil.
func (s *Store) Load() ([]*task.Task, []LineWarning, error) {
	tasks := []*task.Task{}

	if err := s.ensureFile(); err != nil {
		return tasks, nil, err
	}

	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return tasks, nil, fmt.Errorf("reading task file: %w", err)
	}

	var warnings []LineWarning
	for i, line := range splitLines(string(data)) {
		t, decodeErr := DecodeLine(line)
		if decodeErr != nil {
			warnings = append(warnings, LineWarning{Line: i + 1, Text: line, Err: decodeErr})
			continue
		}
		if t == nil {
			// Unknown type letter.
			continue
		}
		tasks = append(tasks, t)
	}

	return tasks, warnings, nil
}

// Save overwrites the data file with one line per task, in order.
func (s *Store) Save(tasks []*task.Task) error {
	if err := s.ensureDir(); err != nil {
		return err
	}

	var buf bytes.Buffer
	for _, t := range tasks {
		buf.WriteString(EncodeLine(t))
		buf.WriteByte('\n')
	}

	if err := afero.WriteFile(s.fs, s.path, buf.Bytes(), fileMode); err != nil {
		return fmt.Errorf("writing task file: %w", err)
	}
	return nil
}

// Delete removes the data file.
func (s *Store) Delete() error {
	if err := s.fs.Remove(s.path); err != nil {
		return fmt.Errorf("deleting task file: %w", err)
	}
	return nil
}

func (s *Store) ensureDir() error {
	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	return nil
}

func (s *Store) ensureFile() error {
	if err := s.ensureDir(); err != nil {
		return err
	}

	_, err := s.fs.Stat(s.path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("checking task file: %w", err)
	}

	f, err := s.fs.OpenFile(s.path, os.O_CREATE|os.O_WRONLY, fileMode)
	if err != nil {
		return fmt.Errorf("creating task file: %w", err)
	}
	return f.Close()
}

// splitLines splits file contents into lines of any length. CRLF endings
// are accepted and a final newline does not produce an empty line.
func splitLines(data string) []string {
	if data == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(data, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
