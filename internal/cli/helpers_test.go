package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
)

const testWords = `10,d62728,alpha
8,1f77b4,beta
6,2ca02c,gamma
4,ff7f0e,delta
2,9467bd,epsilon
`

// safeBuffer is a bytes.Buffer guarded for use by a spinner goroutine.
type safeBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *safeBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *safeBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func captureUI(w io.Writer) func() { return redirectUI(w) }

// writeTestWords writes a small CSV word list into a fresh directory.
func writeTestWords(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(testWords), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// isolateCache points the file cache at a per-test directory and returns it.
func isolateCache(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)
	t.Setenv(envRedisURL, "")
	return filepath.Join(dir, appName)
}

// runCLI executes the root command with args and returns the UI output.
// Call isolateCache first.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var ui bytes.Buffer
	defer captureUI(&ui)()

	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&ui)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return ui.String(), err
}

// smallCanvas keeps end-to-end runs fast.
var smallCanvas = []string{"--width", "320", "--height", "200", "--max-font-size", "60"}
