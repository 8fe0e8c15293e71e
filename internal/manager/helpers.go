package manager

import (
	"context"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// tempOutputPath allocates a fresh, collision-free output file name. It takes
// no lock.
func (m *Manager) tempOutputPath() string {
	return filepath.Join(m.tempDir, tempPrefix+uuid.NewString()+tempExt)
}

// logger prefers a request-scoped logger carried by ctx.
func (m *Manager) logger(ctx context.Context) zerolog.Logger {
	if ctx != nil {
		if l := zerolog.Ctx(ctx); l != nil && l.GetLevel() != zerolog.Disabled {
			return *l
		}
	}
	return m.log
}

func (m *Manager) publish(name, model string, fields map[string]any) {
	m.pub.Publish(Event{Name: name, Model: model, Fields: fields})
}
