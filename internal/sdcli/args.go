// Package sdcli builds sd-cli invocations and runs them.
package sdcli

import (
	"strconv"

	"sdx/pkg/types"
)

// Fallbacks applied when neither the request nor the model sets a value.
const (
	DefaultWidth            = 512
	DefaultHeight           = 512
	DefaultSteps            = 20
	DefaultCFGScale         = 7.0
	DefaultSeed       int64 = -1
	DefaultSampler          = "euler_a"
	DefaultScheduler        = "discrete"
	DefaultBatchCount       = 1
)

// Args is a fully resolved sd-cli invocation. Build it with Build and do not
// modify it afterwards.
type Args struct {
	Paths          types.ModelPaths
	Prompt         string
	NegativePrompt string
	Width          int
	Height         int
	Steps          int
	CFGScale       float64
	Guidance       *float64
	Seed           int64
	SamplingMethod string
	Scheduler      string
	BatchCount     int
	Output         string
}

// Build merges req over the defaults of m, then over the hard-coded
// fallbacks, and fixes the output path.
func Build(m types.Model, req types.GenerationRequest, output string) Args {
	p := m.Defaults.Overlay(req.Params)
	a := Args{
		Paths:          m.Paths,
		Prompt:         req.Prompt,
		Width:          intOr(p.Width, DefaultWidth),
		Height:         intOr(p.Height, DefaultHeight),
		Steps:          intOr(p.Steps, DefaultSteps),
		CFGScale:       DefaultCFGScale,
		Guidance:       p.Guidance,
		Seed:           DefaultSeed,
		SamplingMethod: strOr(p.SamplingMethod, DefaultSampler),
		Scheduler:      strOr(p.Scheduler, DefaultScheduler),
		BatchCount:     intOr(p.BatchCount, DefaultBatchCount),
		Output:         output,
	}
	if p.NegativePrompt != nil {
		a.NegativePrompt = *p.NegativePrompt
	}
	if p.CFGScale != nil {
		a.CFGScale = *p.CFGScale
	}
	if p.Seed != nil {
		a.Seed = *p.Seed
	}
	return a
}

// Argv renders the flag list: model paths, generation parameters, then -o.
func (a Args) Argv() []string {
	argv := make([]string, 0, 32)
	flag := func(name, value string) { argv = append(argv, name, value) }

	if a.Paths.Model != "" {
		flag("-m", a.Paths.Model)
	} else {
		if a.Paths.ClipL != "" {
			flag("--clip_l", a.Paths.ClipL)
		}
		if a.Paths.ClipG != "" {
			flag("--clip_g", a.Paths.ClipG)
		}
		if a.Paths.T5XXL != "" {
			flag("--t5xxl", a.Paths.T5XXL)
		}
		if a.Paths.DiffusionModel != "" {
			flag("--diffusion-model", a.Paths.DiffusionModel)
		}
		if a.Paths.VAE != "" {
			flag("--vae", a.Paths.VAE)
		}
	}

	flag("-p", a.Prompt)
	if a.NegativePrompt != "" {
		flag("-n", a.NegativePrompt)
	}
	flag("-W", strconv.Itoa(a.Width))
	flag("-H", strconv.Itoa(a.Height))
	flag("--steps", strconv.Itoa(a.Steps))
	flag("--cfg-scale", formatFloat(a.CFGScale))
	if a.Guidance != nil {
		flag("--guidance", formatFloat(*a.Guidance))
	}
	flag("-s", strconv.FormatInt(a.Seed, 10))
	flag("--sampling-method", a.SamplingMethod)
	flag("--scheduler", a.Scheduler)
	if a.BatchCount > 1 {
		flag("-b", strconv.Itoa(a.BatchCount))
	}
	flag("-o", a.Output)
	return argv
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func intOr(p *int, def int) int {
	if p != nil {
		return *p
	}
	return def
}

func strOr(p *string, def string) string {
	if p != nil {
		return *p
	}
	return def
}
