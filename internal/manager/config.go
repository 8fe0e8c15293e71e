package manager

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"sdx/internal/registry"
	"sdx/internal/sdcli"
)

// tempPrefix names HTTP-path output files: <TempDir>/sd-<uuid>.png.
const (
	tempPrefix = "sd-"
	tempExt    = ".png"
)

// Executor runs one sd-cli invocation. *sdcli.Runner is the production
// implementation; tests substitute fakes.
type Executor interface {
	Run(bin string, args sdcli.Args) error
}

// ManagerConfig encapsulates all tunables for Manager construction.
type ManagerConfig struct {
	Registry *registry.Registry
	// Executable is the sd-cli path. It is re-checked before every run.
	Executable string
	// TempDir holds HTTP-path outputs; empty means os.TempDir().
	TempDir string
	// Executor defaults to an sdcli.Runner logging through Logger.
	Executor Executor
	// Gate defaults to a fresh gate owned by this manager.
	Gate      *Gate
	Logger    *zerolog.Logger
	Publisher EventPublisher
}

// NewWithConfig constructs a Manager from ManagerConfig.
func NewWithConfig(cfg ManagerConfig) *Manager {
	m := &Manager{
		reg:       cfg.Registry,
		exe:       cfg.Executable,
		tempDir:   cfg.TempDir,
		exec:      cfg.Executor,
		gate:      cfg.Gate,
		pub:       cfg.Publisher,
		startTime: time.Now(),
	}
	if m.reg == nil {
		m.reg = registry.New(nil, "")
	}
	if m.tempDir == "" {
		m.tempDir = os.TempDir()
	}
	if cfg.Logger != nil {
		m.log = *cfg.Logger
	} else {
		m.log = zerolog.Nop()
	}
	if m.exec == nil {
		m.exec = sdcli.NewRunner(m.log)
	}
	if m.gate == nil {
		m.gate = NewGate()
	}
	if m.pub == nil {
		m.pub = noopPublisher{}
	}
	return m
}
