package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aptos-labs/create-aptos-dapp/internal/cli/wizard"
	"github.com/aptos-labs/create-aptos-dapp/internal/core/project"
	"github.com/aptos-labs/create-aptos-dapp/internal/ui"
	"github.com/aptos-labs/create-aptos-dapp/pkg/models"
)

// presetFlags maps question IDs to the string flags that answer them.
var presetFlags = map[string]string{
	wizard.IDNetwork:       "network",
	wizard.IDTemplate:      "template",
	wizard.IDProjectType:   "project-type",
	wizard.IDFramework:     "framework",
	wizard.IDSigningOption: "signing-option",
}

// runCreate collects the selection, runs the scaffolding pipeline and
// prints the next steps.
func runCreate(cmd *cobra.Command, args []string) error {
	d, err := depsFrom(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	preset, err := buildPreset(cmd, args, d)
	if err != nil {
		return err
	}

	var asker wizard.Asker = wizard.DefaultAsker{}
	if !getBoolFlag(cmd, "yes") && !d.Headless.IsHeadless() {
		asker = wizard.NewHuhAsker(d.Theme.NoColor)
	}

	sel, err := wizard.Run(ctx, d.Catalog, asker, preset)
	if err != nil {
		return err
	}
	d.Logger.Debug("selection collected",
		"project", sel.ProjectName,
		"template", sel.Template.Path,
		"network", sel.Network.String(),
	)

	events := d.NewEmitter(sel.Telemetry)
	defer func() { _ = events.Close() }()

	reporter := ui.NewReporter(d.Theme, d.Headless, out)
	defer reporter.Close()

	pipeline := project.NewPipeline(project.PipelineConfig{
		Catalog:   d.Catalog,
		Source:    d.Source,
		Installer: d.NewInstaller(getBoolFlag(cmd, "skip-install"), cmd.ErrOrStderr()),
		Reporter:  reporter,
		Events:    events,
		Logger:    d.Logger,
		Workers:   d.Config.Workers,
	})

	result, err := pipeline.Execute(ctx, *sel)
	if err != nil {
		return &reportedError{err: err, showOutput: !d.Verbose}
	}

	for _, w := range result.Warnings {
		reporter.Warn(w)
	}
	_, _ = fmt.Fprintln(out, renderSuccessCard(d.Theme, "Project created", [][2]string{
		{"Project", sel.ProjectName},
		{"Template", result.Template.Name},
		{"Network", sel.Network.String()},
		{"Directory", result.TargetDir},
		{"Files", strconv.Itoa(len(result.Files))},
	}))
	return ui.RenderInstructions(out, d.Theme, *sel, result)
}

// buildPreset turns positional arguments, flags and config into wizard presets.
func buildPreset(cmd *cobra.Command, args []string, d *Dependencies) (wizard.Answers, error) {
	preset := wizard.Answers{}
	if len(args) == 1 {
		preset[wizard.IDProjectName] = args[0]
	}
	for id, flag := range presetFlags {
		if v := getStringFlag(cmd, flag); v != "" {
			preset[id] = v
		}
	}

	// An unknown template fails before any question is asked.
	if path, ok := preset[wizard.IDTemplate]; ok {
		tmpl, err := d.Catalog.Resolve(path)
		if err != nil {
			return nil, err
		}
		if _, set := preset[wizard.IDProjectType]; !set {
			preset[wizard.IDProjectType] = string(tmpl.ProjectType)
		}
	}
	if n, ok := preset[wizard.IDNetwork]; ok {
		network, err := models.ParseNetwork(n)
		if err != nil {
			return nil, &usageError{err: err}
		}
		preset[wizard.IDNetwork] = network.String()
	}

	if cmd.Flags().Changed("use-surf") {
		preset[wizard.IDUseSurf] = strconv.FormatBool(getBoolFlag(cmd, "use-surf"))
	}

	yes, no := cmd.Flags().Changed("telemetry"), cmd.Flags().Changed("no-telemetry")
	switch {
	case yes && no:
		return nil, &usageError{err: errors.New("--telemetry and --no-telemetry are mutually exclusive")}
	case yes:
		preset[wizard.IDTelemetry] = strconv.FormatBool(getBoolFlag(cmd, "telemetry"))
	case no:
		preset[wizard.IDTelemetry] = strconv.FormatBool(!getBoolFlag(cmd, "no-telemetry"))
	case d.Config.Telemetry != nil:
		preset[wizard.IDTelemetry] = strconv.FormatBool(*d.Config.Telemetry)
	}
	return preset, nil
}
