package manager

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"sdx/internal/registry"
	"sdx/internal/sdcli"
	"sdx/pkg/types"
)

// fakeExec records invocations. With run unset it writes "img" to -o.
type fakeExec struct {
	mu    sync.Mutex
	calls []sdcli.Args
	run   func(args sdcli.Args) error
}

func (f *fakeExec) Run(bin string, args sdcli.Args) error {
	f.mu.Lock()
	f.calls = append(f.calls, args)
	f.mu.Unlock()
	if f.run != nil {
		return f.run(args)
	}
	return os.WriteFile(args.Output, []byte("img"), 0o644)
}

func (f *fakeExec) Calls() []sdcli.Args {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]sdcli.Args, len(f.calls))
	copy(out, f.calls)
	return out
}

// fakeBinary creates an empty file standing in for sd-cli.
func fakeBinary(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "sd-cli")
	if err := os.WriteFile(p, []byte(""), 0o755); err != nil {
		t.Fatalf("write binary: %v", err)
	}
	return p
}

func testRegistry(defaultModel string, names ...string) *registry.Registry {
	models := make([]types.Model, 0, len(names))
	for _, n := range names {
		models = append(models, types.Model{Name: n, Paths: types.ModelPaths{Model: "/m/" + n + ".safetensors"}})
	}
	return registry.New(models, defaultModel)
}

// newTestManager wires a manager with a fake executor and an isolated temp dir.
func newTestManager(t *testing.T, ex *fakeExec, reg *registry.Registry) (*Manager, string) {
	t.Helper()
	tmp := t.TempDir()
	m := NewWithConfig(ManagerConfig{
		Registry:   reg,
		Executable: fakeBinary(t),
		TempDir:    tmp,
		Executor:   ex,
	})
	return m, tmp
}

func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	es, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	names := make([]string, 0, len(es))
	for _, e := range es {
		names = append(names, e.Name())
	}
	return names
}

// logBuffer is shared by the caller and detached pipeline goroutines.
type logBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *logBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *logBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
