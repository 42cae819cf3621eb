package wizard

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/charmbracelet/huh"

	"github.com/aptos-labs/create-aptos-dapp/internal/catalog"
	"github.com/aptos-labs/create-aptos-dapp/internal/core/project"
	"github.com/aptos-labs/create-aptos-dapp/pkg/models"
)

// scriptedAsker replays answers in order and records every prompt.
type scriptedAsker struct {
	answers []string
	errs    map[int]error
	prompts []Prompt
}

func (s *scriptedAsker) Ask(_ context.Context, p Prompt) (string, error) {
	i := len(s.prompts)
	s.prompts = append(s.prompts, p)
	if err := s.errs[i]; err != nil {
		return "", err
	}
	if i >= len(s.answers) {
		return "", errors.New("script exhausted")
	}
	return s.answers[i], nil
}

func (s *scriptedAsker) askedIDs() []string {
	ids := make([]string, len(s.prompts))
	for i, p := range s.prompts {
		ids[i] = p.Question.ID
	}
	return ids
}

func (s *scriptedAsker) prompt(t *testing.T, id string) Prompt {
	t.Helper()
	for _, p := range s.prompts {
		if p.Question.ID == id {
			return p
		}
	}
	t.Fatalf("question %q was not asked", id)
	return Prompt{}
}

func optionValues(opts []Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Value
	}
	return out
}

func TestRun_BoilerplateTestnet(t *testing.T) {
	asker := &scriptedAsker{answers: []string{
		"my-aptos-dapp", "fullstack", "boilerplate-template", "nextjs", "testnet", "true", "false",
	}}

	sel, err := Run(context.Background(), catalog.Default(), asker, nil)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	wantIDs := []string{IDProjectName, IDProjectType, IDTemplate, IDFramework, IDNetwork, IDUseSurf, IDTelemetry}
	if got := asker.askedIDs(); !reflect.DeepEqual(got, wantIDs) {
		t.Errorf("asked %v, want %v", got, wantIDs)
	}

	if sel.ProjectName != "my-aptos-dapp" || sel.Template.Path != "boilerplate-template" {
		t.Errorf("selection = %+v", sel)
	}
	if sel.Network != models.NetworkTestnet || sel.Framework != "nextjs" {
		t.Errorf("network = %s framework = %s", sel.Network, sel.Framework)
	}
	if !sel.UseSurf || sel.Telemetry {
		t.Errorf("UseSurf = %v Telemetry = %v, want true false", sel.UseSurf, sel.Telemetry)
	}
	if sel.SigningOption != "" {
		t.Errorf("SigningOption = %q, want empty for built-in templates", sel.SigningOption)
	}
}

func TestRun_RestrictedTemplateNeverOffersDevnet(t *testing.T) {
	for _, path := range []string{"nft-minting-dapp-template", "token-minting-dapp-template"} {
		t.Run(path, func(t *testing.T) {
			asker := &scriptedAsker{answers: []string{"dapp", "fullstack", path, "mainnet", "true"}}

			sel, err := Run(context.Background(), catalog.Default(), asker, nil)
			if err != nil {
				t.Fatalf("Run() error: %v", err)
			}

			p := asker.prompt(t, IDNetwork)
			if got, want := optionValues(p.Options), []string{"mainnet", "testnet"}; !reflect.DeepEqual(got, want) {
				t.Errorf("network options = %v, want %v", got, want)
			}
			if p.Default != "testnet" {
				t.Errorf("network default = %q, want testnet", p.Default)
			}
			if sel.Framework != "vite" {
				t.Errorf("Framework = %q, want the single framework recorded without asking", sel.Framework)
			}
			for _, id := range asker.askedIDs() {
				if id == IDUseSurf || id == IDFramework {
					t.Errorf("%s should not be asked for %s", id, path)
				}
			}
		})
	}
}

func TestRun_MoveProjectSkipsTemplateQuestions(t *testing.T) {
	asker := &scriptedAsker{answers: []string{"my-contract", "move", "devnet", "false"}}

	sel, err := Run(context.Background(), catalog.Default(), asker, nil)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	wantIDs := []string{IDProjectName, IDProjectType, IDNetwork, IDTelemetry}
	if got := asker.askedIDs(); !reflect.DeepEqual(got, wantIDs) {
		t.Errorf("asked %v, want %v", got, wantIDs)
	}
	if sel.Template.Path != "contract-boilerplate-template" {
		t.Errorf("Template = %q, want contract-boilerplate-template", sel.Template.Path)
	}
	if sel.ProjectType != models.ProjectTypeMove || sel.Network != models.NetworkDevnet {
		t.Errorf("selection = %+v", sel)
	}
}

func TestRun_AbortAtThirdPrompt(t *testing.T) {
	asker := &scriptedAsker{
		answers: []string{"my-aptos-dapp", "fullstack"},
		errs:    map[int]error{2: huh.ErrUserAborted},
	}

	sel, err := Run(context.Background(), catalog.Default(), asker, nil)
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("Run() error = %v, want ErrCancelled", err)
	}
	if sel != nil {
		t.Errorf("Run() returned a partial selection: %+v", sel)
	}
	if len(asker.prompts) != 3 {
		t.Errorf("asked %d prompts, want 3", len(asker.prompts))
	}
}

func TestRun_ReasksInvalidName(t *testing.T) {
	asker := &scriptedAsker{answers: []string{
		"bad/name", "..", "good-name", "fullstack", "token-minting-dapp-template", "testnet", "true",
	}}

	sel, err := Run(context.Background(), catalog.Default(), asker, nil)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if sel.ProjectName != "good-name" {
		t.Errorf("ProjectName = %q, want good-name", sel.ProjectName)
	}

	if asker.prompts[0].Retry != nil {
		t.Error("first ask should carry no retry error")
	}
	for _, i := range []int{1, 2} {
		p := asker.prompts[i]
		if p.Question.ID != IDProjectName {
			t.Fatalf("prompt %d = %s, want project_name re-ask", i, p.Question.ID)
		}
		if !errors.Is(p.Retry, project.ErrInvalidChars) {
			t.Errorf("prompt %d Retry = %v, want ErrInvalidChars", i, p.Retry)
		}
	}
}

func TestRun_ReasksUnknownChoice(t *testing.T) {
	asker := &scriptedAsker{answers: []string{
		"dapp", "fullstack", "nft-minting-dapp-template", "devnet", "mainnet", "maybe", "false",
	}}

	sel, err := Run(context.Background(), catalog.Default(), asker, nil)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if sel.Network != models.NetworkMainnet {
		t.Errorf("Network = %s, want mainnet after re-ask", sel.Network)
	}
	if sel.Telemetry {
		t.Error("Telemetry should be false after the re-ask")
	}
}

func TestRun_EmptyInputUsesDefault(t *testing.T) {
	asker := &scriptedAsker{answers: []string{"  ", "fullstack", "boilerplate-template", "vite", "testnet", "false", "true"}}

	sel, err := Run(context.Background(), catalog.Default(), asker, nil)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if sel.ProjectName != models.DefaultProjectName {
		t.Errorf("ProjectName = %q, want %q", sel.ProjectName, models.DefaultProjectName)
	}
}

func TestRun_DefaultAsker(t *testing.T) {
	sel, err := Run(context.Background(), catalog.Default(), DefaultAsker{}, nil)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	want := &models.Selection{
		ProjectName: models.DefaultProjectName,
		ProjectType: models.ProjectTypeFullstack,
		Template:    sel.Template,
		Network:     models.NetworkTestnet,
		Framework:   models.FrameworkVite,
		Telemetry:   false,
	}
	if !reflect.DeepEqual(sel, want) {
		t.Errorf("Run() = %+v, want %+v", sel, want)
	}
	if sel.Template.Path != "boilerplate-template" {
		t.Errorf("Template = %q, want boilerplate-template", sel.Template.Path)
	}
}

func TestRun_PresetsSkipPrompts(t *testing.T) {
	asker := &scriptedAsker{}
	preset := Answers{
		IDProjectName: "preset-dapp",
		IDProjectType: "fullstack",
		IDTemplate:    "nft-minting-dapp-template",
		IDNetwork:     "mainnet",
		IDTelemetry:   "false",
	}

	sel, err := Run(context.Background(), catalog.Default(), asker, preset)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(asker.prompts) != 0 {
		t.Errorf("asked %v, want no prompts", asker.askedIDs())
	}
	if sel.ProjectName != "preset-dapp" || sel.Network != models.NetworkMainnet {
		t.Errorf("selection = %+v", sel)
	}
}

func TestRun_DefaultAskerAnswersTelemetryFalse(t *testing.T) {
	answers, err := Ask(context.Background(), Questions(catalog.Default()), DefaultAsker{}, nil)
	if err != nil {
		t.Fatalf("Ask() error: %v", err)
	}
	if answers[IDTelemetry] != "false" {
		t.Errorf("telemetry = %q, want false when nobody is asked", answers[IDTelemetry])
	}

	// An explicit preset still opts in.
	answers, err = Ask(context.Background(), Questions(catalog.Default()), DefaultAsker{}, Answers{IDTelemetry: "true"})
	if err != nil {
		t.Fatalf("Ask() error: %v", err)
	}
	if answers[IDTelemetry] != "true" {
		t.Errorf("telemetry = %q, want true from the preset", answers[IDTelemetry])
	}
}

func TestRun_PresetMatchingSkippedQuestion(t *testing.T) {
	preset := Answers{
		IDTemplate:  "nft-minting-dapp-template",
		IDFramework: "vite",
		IDUseSurf:   "false",
	}

	sel, err := Run(context.Background(), catalog.Default(), DefaultAsker{}, preset)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if sel.UseSurf || sel.Framework != models.FrameworkVite {
		t.Errorf("selection = %+v", sel)
	}

	// A move template preset agrees with the move project type.
	sel, err = Run(context.Background(), catalog.Default(), DefaultAsker{},
		Answers{IDProjectType: "move", IDTemplate: "contract-boilerplate-template"})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if sel.Template.Path != "contract-boilerplate-template" {
		t.Errorf("Template = %q", sel.Template.Path)
	}
}

func TestRun_InvalidPresets(t *testing.T) {
	tests := []struct {
		name    string
		preset  Answers
		wantErr error
	}{
		{
			name:    "devnet on restricted template",
			preset:  Answers{IDTemplate: "token-minting-dapp-template", IDNetwork: "devnet"},
			wantErr: ErrInvalidPreset,
		},
		{
			name:    "reserved character in name",
			preset:  Answers{IDProjectName: "a:b"},
			wantErr: project.ErrInvalidChars,
		},
		{
			name:    "unknown project type",
			preset:  Answers{IDProjectType: "library"},
			wantErr: ErrInvalidPreset,
		},
		{
			name:    "fullstack template with move project type",
			preset:  Answers{IDProjectType: "move", IDTemplate: "nft-minting-dapp-template"},
			wantErr: ErrQuestionSkipped,
		},
		{
			name:    "surf on a template without Surf",
			preset:  Answers{IDTemplate: "nft-minting-dapp-template", IDUseSurf: "true"},
			wantErr: ErrQuestionSkipped,
		},
		{
			name:    "framework the template does not offer",
			preset:  Answers{IDTemplate: "nft-minting-dapp-template", IDFramework: "nextjs"},
			wantErr: ErrQuestionSkipped,
		},
		{
			name:    "non boolean telemetry",
			preset:  Answers{IDTelemetry: "sometimes"},
			wantErr: ErrInvalidPreset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := Run(context.Background(), catalog.Default(), DefaultAsker{}, tt.preset)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Run() error = %v, want %v", err, tt.wantErr)
			}
			var pe *PresetError
			if !errors.As(err, &pe) {
				t.Errorf("error %T is not a *PresetError", err)
			}
			if sel != nil {
				t.Error("no selection expected on error")
			}
		})
	}
}

func TestRun_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, catalog.Default(), DefaultAsker{}, nil)
	if !errors.Is(err, ErrCancelled) || !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want ErrCancelled wrapping context.Canceled", err)
	}
}

func TestAsk_NoQuestions(t *testing.T) {
	if _, err := Ask(context.Background(), nil, DefaultAsker{}, nil); !errors.Is(err, ErrNoQuestions) {
		t.Errorf("Ask() error = %v, want ErrNoQuestions", err)
	}
}

func TestAsk_SelectWithoutOptions(t *testing.T) {
	qs := []Question{{ID: "empty", Type: QuestionTypeSelect}}
	if _, err := Ask(context.Background(), qs, DefaultAsker{}, nil); !errors.Is(err, ErrNoOptions) {
		t.Errorf("Ask() error = %v, want ErrNoOptions", err)
	}
}

func TestAsk_AskerErrorIsWrapped(t *testing.T) {
	boom := errors.New("tty unavailable")
	qs := []Question{{ID: "name", Type: QuestionTypeInput}}
	asker := &scriptedAsker{errs: map[int]error{0: boom}}

	_, err := Ask(context.Background(), qs, asker, nil)
	if !errors.Is(err, boom) || errors.Is(err, ErrCancelled) {
		t.Errorf("Ask() error = %v, want wrapped asker error", err)
	}
}

func TestDefaultAsker_RejectedDefault(t *testing.T) {
	qs := []Question{{
		ID:       "name",
		Type:     QuestionTypeInput,
		Default:  "bad|name",
		Validate: project.ValidateProjectName,
	}}
	_, err := Ask(context.Background(), qs, DefaultAsker{}, nil)
	if !errors.Is(err, project.ErrInvalidChars) {
		t.Errorf("Ask() error = %v, want the rejected default's cause", err)
	}
}

func TestLabel(t *testing.T) {
	tests := map[string]string{
		"testnet": "Testnet",
		"nextjs":  "Nextjs",
		"vite":    "Vite",
	}
	for in, want := range tests {
		if got := label(in); got != want {
			t.Errorf("label(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBuildField(t *testing.T) {
	qs := Questions(catalog.Default())
	for i := range qs {
		q := &qs[i]
		field, value := buildField(Prompt{Question: q, Options: q.Options, Default: q.Default})
		if field == nil || value == nil {
			t.Errorf("buildField(%s) returned nil", q.ID)
		}
	}

	confirm := &Question{ID: IDTelemetry, Type: QuestionTypeConfirm}
	_, value := buildField(Prompt{Question: confirm, Default: "true"})
	if value() != "true" {
		t.Errorf("confirm value = %q, want the default true", value())
	}

	sel := &Question{ID: IDNetwork, Type: QuestionTypeSelect}
	_, value = buildField(Prompt{Question: sel, Options: []Option{{Value: "testnet"}}, Default: "testnet"})
	if value() != "testnet" {
		t.Errorf("select value = %q, want the default", value())
	}
}

func TestInputValidator_BlankUsesDefault(t *testing.T) {
	validate := inputValidator(project.ValidateProjectName, models.DefaultProjectName)

	for _, in := range []string{"", "   ", "\t"} {
		if err := validate(in); err != nil {
			t.Errorf("validate(%q) = %v, want the default to be checked", in, err)
		}
	}
	if err := validate("a|b"); !errors.Is(err, project.ErrInvalidChars) {
		t.Errorf("validate(a|b) = %v, want ErrInvalidChars", err)
	}
}

func TestNewHuhAsker(t *testing.T) {
	if NewHuhAsker(false).theme == nil || NewHuhAsker(true).theme == nil {
		t.Error("NewHuhAsker should always set a theme")
	}
}
