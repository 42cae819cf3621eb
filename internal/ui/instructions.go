package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/aptos-labs/create-aptos-dapp/internal/core/project"
	"github.com/aptos-labs/create-aptos-dapp/pkg/models"
)

// instructionsWidth is the word-wrap column for rendered next steps.
const instructionsWidth = 80

// Instructions returns the next-steps markdown for a scaffolded project.
func Instructions(sel models.Selection, result *project.Result) string {
	pm := project.DefaultPackageManager
	if result.Install != nil && len(result.Install.Command) > 0 {
		pm = result.Install.Command[0]
	}

	var steps []string
	steps = append(steps, fmt.Sprintf("`cd %s` to enter your project directory", project.NormalizeProjectName(sel.ProjectName)))
	if result.Install == nil {
		steps = append(steps, fmt.Sprintf("`%s install` to install dependencies", pm))
	}
	if result.Move != nil {
		steps = append(steps,
			fmt.Sprintf("`%s run move:init` to initialize a new CLI profile", pm),
			fmt.Sprintf("`%s run move:compile` to compile the `%s` Move package", pm, result.Move.Name),
			fmt.Sprintf("`%s run move:publish` to publish the contract to %s", pm, sel.Network),
		)
	}
	if sel.ProjectType != models.ProjectTypeMove {
		steps = append(steps, fmt.Sprintf("`%s run dev` to run your dapp", pm))
	}

	var b strings.Builder
	b.WriteString("# Success! You're ready to start building your dapp on Aptos\n\n")
	fmt.Fprintf(&b, "Created **%s** from the %s template on **%s**.\n\n",
		sel.ProjectName, result.Template.Name, sel.Network)
	b.WriteString("## Next steps\n\n")
	for i, s := range steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}
	if result.Template.Doc != "" {
		fmt.Fprintf(&b, "\nTemplate docs: %s\n", result.Template.Doc)
	}
	if len(result.Warnings) > 0 {
		b.WriteString("\n## Warnings\n\n")
		for _, w := range result.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}
	return b.String()
}

// RenderInstructions renders the next steps with glamour and writes them to w.
func RenderInstructions(w io.Writer, theme *Theme, sel models.Selection, result *project.Result) error {
	style := theme.Mode
	if theme.NoColor {
		style = "notty"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(instructionsWidth),
	)
	if err != nil {
		return fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := r.Render(Instructions(sel, result))
	if err != nil {
		return fmt.Errorf("render instructions: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
