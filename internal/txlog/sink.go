package txlog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Sink receives one formatted transaction log line per phase emission.
// Implementations must be safe for concurrent use; the interceptor never
// intercepts the sink itself, and a sink failure never alters the outcome of
// the wrapped operation.
type Sink interface {
	Write(line string) error
}

// FileSink appends transaction log lines to a single file. Writes are
// serialized with a mutex so lines from concurrent transactions never
// interleave mid-line.
type FileSink struct {
	mu   sync.Mutex
	path string
}

// NewFileSink creates the log directory if needed and returns a FileSink.
func NewFileSink(path string) (*FileSink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	return &FileSink{path: path}, nil
}

func (s *FileSink) Write(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open transaction log: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, line); err != nil {
		return fmt.Errorf("append transaction log: %w", err)
	}
	return nil
}

// MemorySink collects lines in memory for tests.
type MemorySink struct {
	mu    sync.Mutex
	lines []string
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Write(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, line)
	return nil
}

// Lines returns a copy of everything written so far.
func (s *MemorySink) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}

// FailingSink always errors. Used to test that sink failures are swallowed.
type FailingSink struct{}

func (FailingSink) Write(string) error {
	return fmt.Errorf("sink unavailable")
}
