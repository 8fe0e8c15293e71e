package types

// Params holds the tunable generation parameters. A nil field means "not
// set"; the same shape carries model defaults and per-request overrides.
type Params struct {
	NegativePrompt *string  `json:"negative_prompt,omitempty"`
	Width          *int     `json:"width,omitempty"`
	Height         *int     `json:"height,omitempty"`
	Steps          *int     `json:"steps,omitempty"`
	CFGScale       *float64 `json:"cfg_scale,omitempty"`
	Guidance       *float64 `json:"guidance,omitempty"`
	Seed           *int64   `json:"seed,omitempty"`
	SamplingMethod *string  `json:"sampling_method,omitempty"`
	Scheduler      *string  `json:"scheduler,omitempty"`
	BatchCount     *int     `json:"batch_count,omitempty"`
}

// Overlay returns p with every field set in over replacing the one in p.
func (p Params) Overlay(over Params) Params {
	if over.NegativePrompt != nil {
		p.NegativePrompt = over.NegativePrompt
	}
	if over.Width != nil {
		p.Width = over.Width
	}
	if over.Height != nil {
		p.Height = over.Height
	}
	if over.Steps != nil {
		p.Steps = over.Steps
	}
	if over.CFGScale != nil {
		p.CFGScale = over.CFGScale
	}
	if over.Guidance != nil {
		p.Guidance = over.Guidance
	}
	if over.Seed != nil {
		p.Seed = over.Seed
	}
	if over.SamplingMethod != nil {
		p.SamplingMethod = over.SamplingMethod
	}
	if over.Scheduler != nil {
		p.Scheduler = over.Scheduler
	}
	if over.BatchCount != nil {
		p.BatchCount = over.BatchCount
	}
	return p
}

// ModelPaths are the weight files of a model: either a single consolidated
// file (Model) or a set of components led by DiffusionModel.
type ModelPaths struct {
	Model          string `json:"model,omitempty"`
	DiffusionModel string `json:"diffusion_model,omitempty"`
	ClipL          string `json:"clip_l,omitempty"`
	ClipG          string `json:"clip_g,omitempty"`
	T5XXL          string `json:"t5xxl,omitempty"`
	VAE            string `json:"vae,omitempty"`
}

// LabeledPath pairs a config key with the path it holds.
type LabeledPath struct {
	Label string
	Path  string
}

// List returns the set paths in config-key order.
func (p ModelPaths) List() []LabeledPath {
	var out []LabeledPath
	add := func(label, path string) {
		if path != "" {
			out = append(out, LabeledPath{Label: label, Path: path})
		}
	}
	add("model", p.Model)
	add("clip_l", p.ClipL)
	add("clip_g", p.ClipG)
	add("t5xxl", p.T5XXL)
	add("diffusion_model", p.DiffusionModel)
	add("vae", p.VAE)
	return out
}

// Model is a named, immutable model definition.
type Model struct {
	// Unique name used by --model and the "model" request field.
	// example: sd15
	Name     string     `json:"name" example:"sd15"`
	Paths    ModelPaths `json:"paths"`
	Defaults Params     `json:"defaults"`
}

// GenerationRequest is the protocol-agnostic input of one generation. Model
// may be empty, in which case the front-end's fallback policy picks one.
type GenerationRequest struct {
	Model  string
	Prompt string
	Params
}
