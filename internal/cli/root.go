package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aptos-labs/create-aptos-dapp/pkg/version"
)

// NewRootCmd builds the create-aptos-dapp command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "create-aptos-dapp [project-name]",
		Short: "Scaffold a new Aptos dapp from a template",
		Long: `create-aptos-dapp creates a new Aptos project from a template.

It asks for a project name, a template and a network, copies the template
into a new directory, writes the environment file, installs dependencies
and prints the next steps.

Examples:
  create-aptos-dapp                         Answer every question interactively
  create-aptos-dapp my-dapp -t nft-minting-dapp-template -n mainnet
  create-aptos-dapp my-dapp --yes           Accept defaults for everything else
  create-aptos-dapp --project-type move     Scaffold a Move contract only`,
		Args:              usageArgs(cobra.MaximumNArgs(1)),
		PersistentPreRunE: loadDependencies,
		RunE:              runCreate,
		Version:           version.GetVersion(),
		SilenceErrors:     true,
		SilenceUsage:      true,
	}
	root.SetVersionTemplate(fmt.Sprintf("create-aptos-dapp %s\n", version.GetFullVersion()))
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	pf := root.PersistentFlags()
	pf.String("config", "", "Config file (default: $XDG_CONFIG_HOME/create-aptos-dapp/config.yaml)")
	pf.String("source", "", "Template source: local or remote")
	pf.String("templates-dir", "", "Local template catalog root (source local)")
	pf.String("repo-url", "", "Repository cloned for templates (source remote)")
	pf.String("repo-ref", "", "Branch of the template repository")
	pf.String("package-manager", "", "Package manager: npm, pnpm, yarn or bun")
	pf.Bool("no-color", false, "Disable colors and animations")
	pf.BoolP("verbose", "v", false, "Debug logging to stderr")

	f := root.Flags()
	f.StringP("network", "n", "", "Network: mainnet, testnet or devnet")
	f.StringP("template", "t", "", "Template path from the catalog")
	f.String("project-type", "", "Project type: fullstack or move")
	f.String("framework", "", "Frontend framework for templates that offer one")
	f.String("signing-option", "", "Signing option for templates that offer one")
	f.Bool("use-surf", false, "Use Surf (boilerplate template only)")
	f.Bool("telemetry", false, "Record anonymous usage data")
	f.Bool("no-telemetry", false, "Do not record usage data")
	f.Bool("skip-install", false, "Do not install dependencies")
	f.BoolP("yes", "y", false, "Non-interactive; accept defaults for unanswered questions")

	root.AddCommand(newTemplatesCmd(), newVersionCmd())
	return root
}

// Execute runs the command tree with ctx. A failure that happens after ctx
// is cancelled is reported as a cancellation.
func Execute(ctx context.Context, args []string) error {
	return execute(ctx, NewRootCmd(), args)
}

func execute(ctx context.Context, root *cobra.Command, args []string) error {
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err != nil && ctx.Err() != nil && !errors.Is(err, context.Canceled) {
		err = fmt.Errorf("%w: %w", context.Canceled, err)
	}
	return err
}

// getStringFlag retrieves a string flag value from the command.
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}

// usageArgs marks positional argument errors as usage errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}
