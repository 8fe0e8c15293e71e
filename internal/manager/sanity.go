package manager

import (
	"sdx/internal/common/fsutil"
	"sdx/internal/sdcli"
)

// SanityReport describes runtime checks for external dependencies.
type SanityReport struct {
	ExecutableFound bool         `json:"executable_found"`
	ExecutablePath  string       `json:"executable_path,omitempty"`
	Models          int          `json:"models"`
	MissingPaths    []MissingRef `json:"missing_paths,omitempty"`
	Error           string       `json:"error,omitempty"`
}

// MissingRef names a configured weight file that does not exist.
type MissingRef struct {
	Model string `json:"model"`
	Label string `json:"label"`
	Path  string `json:"path"`
}

// SanityCheck validates that sd-cli and the configured weight files exist.
// It does not mutate state and is safe to call at any time.
func (m *Manager) SanityCheck() SanityReport {
	r := SanityReport{ExecutablePath: m.exe, Models: m.reg.Len()}
	if err := sdcli.CheckExecutable(m.exe); err != nil {
		r.Error = err.Error()
	} else {
		r.ExecutableFound = true
	}
	for _, mdl := range m.reg.Models() {
		for _, p := range mdl.Paths.List() {
			if !fsutil.PathExists(p.Path) {
				r.MissingPaths = append(r.MissingPaths, MissingRef{Model: mdl.Name, Label: p.Label, Path: p.Path})
			}
		}
	}
	return r
}

// Ready reports whether a generation could start now. The reason is meant for
// clients, so it names no filesystem paths.
func (m *Manager) Ready() (bool, string) {
	if sdcli.CheckExecutable(m.exe) != nil {
		return false, "sd-cli executable not found"
	}
	if m.reg.Len() == 0 {
		return false, "no models configured"
	}
	return true, ""
}
