package e2e

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"sdx/internal/httpapi"
	"sdx/internal/manager"
	"sdx/internal/registry"
	"sdx/pkg/types"
)

// fakeSDCLIScript writes the primary output plus <stem>_<n><ext> siblings
// for batch counts above one, like sd-cli does. prelude runs first.
const fakeSDCLIScript = `out=""
batch=1
while [ $# -gt 0 ]; do
  case "$1" in
    -o) out="$2"; shift ;;
    -b) batch="$2"; shift ;;
  esac
  shift
done
printf 'IMG1' > "$out"
stem="${out%.*}"
ext=".${out##*.}"
i=2
while [ "$i" -le "$batch" ]; do
  printf "IMG$i" > "${stem}_${i}${ext}"
  i=$((i+1))
done
`

func writeSDCLI(t *testing.T, prelude string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fakes require a POSIX shell")
	}
	p := filepath.Join(t.TempDir(), "sd-cli")
	if err := os.WriteFile(p, []byte("#!/bin/sh\n"+prelude+fakeSDCLIScript), 0o755); err != nil {
		t.Fatalf("write sd-cli: %v", err)
	}
	return p
}

// newServer wires the real manager and HTTP layer around bin and returns an
// OpenAI client pointed at it plus the temp dir used for outputs.
func newServer(t *testing.T, bin string, names ...string) (*openai.Client, string) {
	t.Helper()
	models := make([]types.Model, 0, len(names))
	for _, n := range names {
		models = append(models, types.Model{Name: n, Paths: types.ModelPaths{Model: "/models/" + n + ".safetensors"}})
	}
	tmp := t.TempDir()
	mgr := manager.NewWithConfig(manager.ManagerConfig{
		Registry:   registry.New(models, ""),
		Executable: bin,
		TempDir:    tmp,
	})
	srv := httptest.NewServer(httpapi.NewMux(mgr))
	t.Cleanup(srv.Close)

	cfg := openai.DefaultConfig("unused")
	cfg.BaseURL = srv.URL + "/v1"
	return openai.NewClientWithConfig(cfg), tmp
}

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	es, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(es) != 0 {
		names := make([]string, 0, len(es))
		for _, e := range es {
			names = append(names, e.Name())
		}
		t.Fatalf("temporary outputs left behind: %v", names)
	}
}
