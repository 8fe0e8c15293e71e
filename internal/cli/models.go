package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sdx/internal/manager"
	"sdx/internal/registry"
	"sdx/pkg/types"
)

func newModelsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List configured models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr := manager.NewWithConfig(manager.ManagerConfig{
				Registry:   registry.FromConfig(app.Config),
				Executable: app.Config.ExecutablePath(),
				Logger:     &app.Log,
			})
			printModels(app.Stdout, mgr.ListModels(), mgr.SanityCheck())
			return nil
		},
	}
}

var (
	okMark      = color.New(color.FgGreen).SprintFunc()
	missingMark = color.New(color.FgRed, color.Bold).SprintFunc()
)

// printModels writes every model, its weight files with the existence mark
// from report, and a summary of the defaults it sets.
func printModels(w io.Writer, models []types.Model, report manager.SanityReport) {
	if len(models) == 0 {
		fmt.Fprintln(w, "no models configured")
		return
	}
	missing := make(map[manager.MissingRef]bool, len(report.MissingPaths))
	for _, ref := range report.MissingPaths {
		missing[ref] = true
	}
	for _, m := range models {
		fmt.Fprintf(w, "%s:\n", m.Name)
		for _, p := range m.Paths.List() {
			mark := okMark("ok")
			if missing[manager.MissingRef{Model: m.Name, Label: p.Label, Path: p.Path}] {
				mark = missingMark("MISSING")
			}
			fmt.Fprintf(w, "  %s: %s [%s]\n", p.Label, p.Path, mark)
		}
		if d := defaultsSummary(m.Defaults); d != "" {
			fmt.Fprintf(w, "  defaults: %s\n", d)
		}
		fmt.Fprintln(w)
	}
}

func defaultsSummary(p types.Params) string {
	var parts []string
	if p.Width != nil {
		h := *p.Width
		if p.Height != nil {
			h = *p.Height
		}
		parts = append(parts, fmt.Sprintf("%dx%d", *p.Width, h))
	}
	if p.Steps != nil {
		parts = append(parts, fmt.Sprintf("%d steps", *p.Steps))
	}
	if p.SamplingMethod != nil {
		parts = append(parts, *p.SamplingMethod)
	}
	return strings.Join(parts, ", ")
}
