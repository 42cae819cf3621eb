package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/aptos-labs/create-aptos-dapp/internal/catalog"
	"github.com/aptos-labs/create-aptos-dapp/internal/ui"
)

func newTemplatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List the templates in the catalog",
		Args:  usageArgs(cobra.NoArgs),
		RunE:  runTemplates,
	}
	cmd.Flags().Bool("all", false, "Include hidden templates")
	return cmd
}

func runTemplates(cmd *cobra.Command, _ []string) error {
	d, err := depsFrom(cmd)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), renderTemplateTable(d.Theme, d.Catalog, getBoolFlag(cmd, "all")))
	return err
}

// renderTemplateTable renders the catalog as a table. Hidden entries are
// listed only when all is set.
func renderTemplateTable(theme *ui.Theme, cat *catalog.Catalog, all bool) string {
	header := theme.Style(theme.Colors.Primary).Bold(!theme.NoColor)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("PATH", "NAME", "TYPE", "NETWORKS").
		StyleFunc(func(row, _ int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return header.Padding(0, 1)
			}
			return s
		})

	for _, tmpl := range cat.Templates() {
		if tmpl.Hidden && !all {
			continue
		}
		networks := make([]string, len(tmpl.Networks))
		for i, n := range tmpl.Networks {
			networks[i] = n.String()
		}
		t.Row(tmpl.Path, tmpl.Name, string(tmpl.ProjectType), strings.Join(networks, ", "))
	}
	return t.Render()
}
