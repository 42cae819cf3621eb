package wizard

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/aptos-labs/create-aptos-dapp/internal/catalog"
	"github.com/aptos-labs/create-aptos-dapp/internal/core/project"
	"github.com/aptos-labs/create-aptos-dapp/pkg/models"
)

// Question IDs, also used as preset keys.
const (
	IDProjectName   = "project_name"
	IDProjectType   = "project_type"
	IDTemplate      = "template"
	IDFramework     = "framework"
	IDSigningOption = "signing_option"
	IDNetwork       = "network"
	IDUseSurf       = "use_surf"
	IDTelemetry     = "telemetry"
)

// label turns an identifier such as "testnet" or "nextjs" into a display label.
// Casers are stateful, so each call gets its own.
func label(s string) string {
	return cases.Title(language.English).String(s)
}

// Questions returns the scaffolding questions for cat in asking order:
// project name, project type, template, framework, signing option,
// network, Surf and telemetry consent.
func Questions(cat *catalog.Catalog) []Question {
	chosen := func(a Answers) (catalog.Template, bool) {
		t, err := cat.Resolve(a[IDTemplate])
		return t, err == nil
	}
	isMove := func(a Answers) bool {
		return a[IDProjectType] == string(models.ProjectTypeMove)
	}
	_, hasMove := cat.ForProjectType(models.ProjectTypeMove)

	return []Question{
		{
			ID:          IDProjectName,
			Type:        QuestionTypeInput,
			Title:       "Enter a new project name",
			Description: "A directory with this name is created in the current directory.",
			Default:     models.DefaultProjectName,
			Validate:    project.ValidateProjectName,
		},
		{
			ID:          IDProjectType,
			Type:        QuestionTypeSelect,
			Title:       "What would you like to build?",
			Description: "A full-stack dapp with a frontend, or a Move contract on its own.",
			Options: []Option{
				{Label: "Full-stack dapp", Value: string(models.ProjectTypeFullstack), Desc: "Frontend and smart contract"},
				{Label: "Move contract", Value: string(models.ProjectTypeMove), Desc: "Smart contract only"},
			},
			Default: string(models.ProjectTypeFullstack),
			// Without a Move-only template there is nothing to choose.
			Condition: func(Answers) bool { return hasMove },
		},
		{
			ID:          IDTemplate,
			Type:        QuestionTypeSelect,
			Title:       "Choose a template",
			Description: "The template is copied into your project directory.",
			OptionsFunc: func(a Answers) []Option {
				pt := models.ProjectType(a[IDProjectType])
				if !pt.IsValid() {
					pt = models.ProjectTypeFullstack
				}
				var opts []Option
				for _, t := range cat.Selectable(pt) {
					opts = append(opts, Option{Label: t.Name, Value: t.Path, Desc: t.Description})
				}
				return opts
			},
			DefaultFunc: func(a Answers) string {
				if isMove(a) {
					if t, ok := cat.ForProjectType(models.ProjectTypeMove); ok {
						return t.Path
					}
				}
				if t, ok := cat.ForProjectType(models.ProjectTypeFullstack); ok {
					return t.Path
				}
				return ""
			},
			Condition: func(a Answers) bool { return !isMove(a) },
		},
		{
			ID:    IDFramework,
			Type:  QuestionTypeSelect,
			Title: "Choose a frontend framework",
			OptionsFunc: func(a Answers) []Option {
				t, _ := chosen(a)
				return labelled(t.Frameworks)
			},
			Condition: func(a Answers) bool {
				t, ok := chosen(a)
				// A single framework is recorded without asking.
				return ok && !isMove(a) && len(t.Frameworks) > 1
			},
		},
		{
			ID:    IDSigningOption,
			Type:  QuestionTypeSelect,
			Title: "Choose a signing option",
			OptionsFunc: func(a Answers) []Option {
				t, _ := chosen(a)
				return labelled(t.SigningOptions)
			},
			Condition: func(a Answers) bool {
				t, ok := chosen(a)
				return ok && len(t.SigningOptions) > 0
			},
		},
		{
			ID:          IDNetwork,
			Type:        QuestionTypeSelect,
			Title:       "Choose your network",
			Description: "Written to the project's environment file.",
			OptionsFunc: func(a Answers) []Option {
				t, _ := chosen(a)
				opts := make([]Option, len(t.Networks))
				for i, n := range t.Networks {
					opts[i] = Option{Label: label(n.String()), Value: n.String()}
				}
				return opts
			},
			DefaultFunc: func(a Answers) string {
				t, _ := chosen(a)
				return t.DefaultNetwork().String()
			},
		},
		{
			ID:          IDUseSurf,
			Type:        QuestionTypeConfirm,
			Title:       "Use Surf for type-safe contract interactions?",
			Description: "Adds the Surf client to the boilerplate.",
			Default:     "false",
			Condition: func(a Answers) bool {
				t, ok := chosen(a)
				return ok && t.Surf
			},
		},
		{
			ID:          IDTelemetry,
			Type:        QuestionTypeConfirm,
			Title:       "Help improve create-aptos-dapp by recording anonymous usage data?",
			Description: "Events are written to a local file only.",
			Default:     "true",
			Unattended:  "false",
		},
	}
}

func labelled(values []string) []Option {
	opts := make([]Option, len(values))
	for i, v := range values {
		opts[i] = Option{Label: label(v), Value: v}
	}
	return opts
}
