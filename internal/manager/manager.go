package manager

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"sdx/internal/registry"
	"sdx/pkg/types"
)

type Manager struct {
	reg       *registry.Registry
	exe       string
	tempDir   string
	exec      Executor
	gate      *Gate
	log       zerolog.Logger
	pub       EventPublisher
	startTime time.Time

	mu    sync.Mutex
	stats stats
}

// SetEventPublisher installs p; nil restores the no-op publisher.
func (m *Manager) SetEventPublisher(p EventPublisher) {
	if p == nil {
		p = noopPublisher{}
	}
	m.pub = p
}

// ListModels returns the registered models sorted by name. It never touches
// the gate.
func (m *Manager) ListModels() []types.Model { return m.reg.Models() }

// Executable returns the configured sd-cli path.
func (m *Manager) Executable() string { return m.exe }

func (m *Manager) Gate() *Gate { return m.gate }

// ResolveModel applies the HTTP naming policy to name without running
// anything, so callers can reject unknown models before validating the rest
// of a request.
func (m *Manager) ResolveModel(name string) (string, error) {
	resolved, err := m.reg.ResolveName(name, registry.FallbackFirst)
	if err != nil {
		return "", err
	}
	if _, err := m.reg.Resolve(resolved); err != nil {
		return "", err
	}
	return resolved, nil
}
