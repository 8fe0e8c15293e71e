package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sdx/internal/manager"
	"sdx/internal/registry"
	"sdx/pkg/types"
)

type generateFlags struct {
	model          string
	prompt         string
	negativePrompt string
	width          int
	height         int
	steps          int
	cfgScale       float64
	guidance       float64
	seed           int64
	sampler        string
	scheduler      string
	output         string
	batchCount     int
}

func newGenerateCmd(app *App) *cobra.Command {
	var f generateFlags
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate an image from a text prompt",
		Example: "  sdx generate -p \"a lighthouse at dusk\"\n" +
			"  sdx generate --model flux -p \"a red fox\" -W 1024 -H 1024 --guidance 3.5 -o fox.png",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(f.prompt) == "" {
				return usageError{fmt.Errorf("--prompt is required")}
			}
			mgr := manager.NewWithConfig(manager.ManagerConfig{
				Registry:   registry.FromConfig(app.Config),
				Executable: app.Config.ExecutablePath(),
				Logger:     &app.Log,
			})
			out, err := mgr.Run(cmd.Context(), f.request(cmd), f.output)
			if err != nil {
				return err
			}
			fmt.Fprintln(app.Stdout, out)
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.model, "model", "", "Model name from config (uses default_model if omitted)")
	fl.StringVarP(&f.prompt, "prompt", "p", "", "Text prompt")
	fl.StringVarP(&f.negativePrompt, "negative-prompt", "n", "", "Negative prompt")
	fl.IntVarP(&f.width, "width", "W", 0, "Image width in pixels")
	fl.IntVarP(&f.height, "height", "H", 0, "Image height in pixels")
	fl.IntVar(&f.steps, "steps", 0, "Number of sampling steps")
	fl.Float64Var(&f.cfgScale, "cfg-scale", 0, "CFG scale")
	fl.Float64Var(&f.guidance, "guidance", 0, "Distilled guidance (Flux/SD3)")
	fl.Int64VarP(&f.seed, "seed", "s", 0, "RNG seed (negative for random)")
	fl.StringVar(&f.sampler, "sampler", "", "Sampling method")
	fl.StringVar(&f.scheduler, "scheduler", "", "Scheduler")
	fl.StringVarP(&f.output, "output", "o", "output.png", "Output file path")
	fl.IntVarP(&f.batchCount, "batch-count", "b", 0, "Number of images to generate")
	return cmd
}

// request turns the flags the user actually set into overrides; everything
// else falls through to the model defaults.
func (f *generateFlags) request(cmd *cobra.Command) types.GenerationRequest {
	set := cmd.Flags().Changed
	req := types.GenerationRequest{Model: f.model, Prompt: f.prompt}
	if set("negative-prompt") {
		req.NegativePrompt = &f.negativePrompt
	}
	if set("width") {
		req.Width = &f.width
	}
	if set("height") {
		req.Height = &f.height
	}
	if set("steps") {
		req.Steps = &f.steps
	}
	if set("cfg-scale") {
		req.CFGScale = &f.cfgScale
	}
	if set("guidance") {
		req.Guidance = &f.guidance
	}
	if set("seed") {
		req.Seed = &f.seed
	}
	if set("sampler") {
		req.SamplingMethod = &f.sampler
	}
	if set("scheduler") {
		req.Scheduler = &f.scheduler
	}
	if set("batch-count") {
		req.BatchCount = &f.batchCount
	}
	return req
}
