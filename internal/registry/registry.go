// Package registry holds the named model definitions loaded at start-up and
// resolves request model names against them. A Registry is read-only after
// construction and safe for concurrent use without locking.
package registry

import (
	"sort"

	"sdx/internal/config"
	"sdx/internal/sderr"
	"sdx/pkg/types"
)

// Fallback selects what ResolveName does when no explicit name is given.
type Fallback int

const (
	// FallbackDefault uses the configured default_model, else fails.
	FallbackDefault Fallback = iota
	// FallbackFirst uses default_model, else the first name in sorted order.
	FallbackFirst
)

// Registry maps model names to definitions.
type Registry struct {
	models       map[string]types.Model
	names        []string
	defaultModel string
}

// New builds a registry from already-validated definitions. Later entries
// with a duplicate name replace earlier ones.
func New(models []types.Model, defaultModel string) *Registry {
	r := &Registry{models: make(map[string]types.Model, len(models)), defaultModel: defaultModel}
	for _, m := range models {
		r.models[m.Name] = m
	}
	r.names = make([]string, 0, len(r.models))
	for n := range r.models {
		r.names = append(r.names, n)
	}
	sort.Strings(r.names)
	return r
}

// FromConfig converts the [models] tables of cfg into a Registry.
func FromConfig(cfg config.Config) *Registry {
	models := make([]types.Model, 0, len(cfg.Models))
	for name, mc := range cfg.Models {
		models = append(models, types.Model{
			Name: name,
			Paths: types.ModelPaths{
				Model:          mc.Model,
				DiffusionModel: mc.DiffusionModel,
				ClipL:          mc.ClipL,
				ClipG:          mc.ClipG,
				T5XXL:          mc.T5XXL,
				VAE:            mc.VAE,
			},
			Defaults: types.Params{
				NegativePrompt: mc.NegativePrompt,
				Width:          mc.Width,
				Height:         mc.Height,
				Steps:          mc.Steps,
				CFGScale:       mc.CFGScale,
				Guidance:       mc.Guidance,
				Seed:           mc.Seed,
				SamplingMethod: mc.SamplingMethod,
				Scheduler:      mc.Scheduler,
				BatchCount:     mc.BatchCount,
			},
		})
	}
	return New(models, cfg.DefaultModel)
}

// Resolve returns the definition registered under exactly name.
func (r *Registry) Resolve(name string) (types.Model, error) {
	m, ok := r.models[name]
	if !ok {
		return types.Model{}, sderr.ModelNotFound(name)
	}
	return m, nil
}

// ResolveName picks the model name for a request. An explicit name is
// returned as-is (existence is checked by Resolve). Otherwise the configured
// default is used, and with FallbackFirst the first registered name after
// that. NoDefaultModel is returned when nothing applies.
func (r *Registry) ResolveName(explicit string, fb Fallback) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if r.defaultModel != "" {
		return r.defaultModel, nil
	}
	if fb == FallbackFirst && len(r.names) > 0 {
		return r.names[0], nil
	}
	return "", sderr.NoDefaultModel()
}

// Names returns all model names in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Models returns all definitions sorted by name.
func (r *Registry) Models() []types.Model {
	out := make([]types.Model, 0, len(r.names))
	for _, n := range r.names {
		out = append(out, r.models[n])
	}
	return out
}

func (r *Registry) Len() int { return len(r.names) }
