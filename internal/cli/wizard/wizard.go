package wizard

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/aptos-labs/create-aptos-dapp/internal/catalog"
	"github.com/aptos-labs/create-aptos-dapp/pkg/models"
)

// Ask walks questions in order and returns the recorded answers.
//
// A question whose Condition is false records its default without asking;
// a preset for it must match that default. A preset value is validated and
// recorded without asking. Otherwise the
// asker is consulted until the answer passes validation. Cancellation,
// either huh.ErrUserAborted from the asker or a done ctx, returns
// ErrCancelled and no answers.
func Ask(ctx context.Context, questions []Question, asker Asker, preset Answers) (Answers, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	answers := make(Answers, len(questions))
	for i := range questions {
		q := &questions[i]
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCancelled, err)
		}

		opts := q.options(answers)
		def := q.defaultValue(answers, opts)

		if q.Condition != nil && !q.Condition(answers) {
			if v, ok := preset[q.ID]; ok && q.normalize(v) != def {
				return nil, &PresetError{ID: q.ID, Value: v, Err: ErrQuestionSkipped}
			}
			answers[q.ID] = def
			continue
		}

		if v, ok := preset[q.ID]; ok {
			v, err := q.check(v, opts)
			if err != nil {
				return nil, &PresetError{ID: q.ID, Value: preset[q.ID], Err: err}
			}
			answers[q.ID] = v
			continue
		}

		if q.Type == QuestionTypeSelect && len(opts) == 0 {
			return nil, fmt.Errorf("%s: %w", q.ID, ErrNoOptions)
		}

		v, err := askUntilValid(ctx, q, asker, opts, def)
		if err != nil {
			return nil, err
		}
		answers[q.ID] = v
	}
	return answers, nil
}

func askUntilValid(ctx context.Context, q *Question, asker Asker, opts []Option, def string) (string, error) {
	var retry error
	for {
		raw, err := asker.Ask(ctx, Prompt{Question: q, Options: opts, Default: def, Retry: retry})
		if err != nil {
			if isCancel(err) {
				return "", fmt.Errorf("%w: %s", ErrCancelled, q.ID)
			}
			return "", fmt.Errorf("ask %s: %w", q.ID, err)
		}
		if q.Type == QuestionTypeInput && strings.TrimSpace(raw) == "" {
			raw = def
		}
		v, err := q.check(raw, opts)
		if err == nil {
			return v, nil
		}
		retry = err
	}
}

func isCancel(err error) bool {
	return errors.Is(err, huh.ErrUserAborted) ||
		errors.Is(err, ErrCancelled) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

func (q *Question) options(a Answers) []Option {
	if q.OptionsFunc != nil {
		return q.OptionsFunc(a)
	}
	return q.Options
}

func (q *Question) defaultValue(a Answers, opts []Option) string {
	def := q.Default
	if q.DefaultFunc != nil {
		def = q.DefaultFunc(a)
	}
	if q.Type == QuestionTypeSelect && len(opts) > 0 && !hasValue(opts, def) {
		return opts[0].Value
	}
	return def
}

// normalize returns the canonical form of v for comparison, or v itself
// when it cannot be parsed.
func (q *Question) normalize(v string) string {
	v = strings.TrimSpace(v)
	if q.Type == QuestionTypeConfirm {
		if b, err := strconv.ParseBool(v); err == nil {
			return strconv.FormatBool(b)
		}
	}
	return v
}

// check normalizes v for the question type and validates it.
func (q *Question) check(v string, opts []Option) (string, error) {
	switch q.Type {
	case QuestionTypeInput:
		v = strings.TrimSpace(v)
	case QuestionTypeSelect:
		if !hasValue(opts, v) {
			return "", fmt.Errorf("must be one of: %s", strings.Join(values(opts), ", "))
		}
	case QuestionTypeConfirm:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return "", fmt.Errorf("must be true or false")
		}
		v = strconv.FormatBool(b)
	}
	if q.Validate != nil {
		if err := q.Validate(v); err != nil {
			return "", err
		}
	}
	return v, nil
}

func hasValue(opts []Option, v string) bool {
	return slices.ContainsFunc(opts, func(o Option) bool { return o.Value == v })
}

func values(opts []Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Value
	}
	return out
}

// Run asks the scaffolding questions built from cat and returns the
// resulting Selection. No partial Selection is returned on error.
func Run(ctx context.Context, cat *catalog.Catalog, asker Asker, preset Answers) (*models.Selection, error) {
	answers, err := Ask(ctx, Questions(cat), asker, preset)
	if err != nil {
		return nil, err
	}
	return selectionFrom(cat, answers)
}

func selectionFrom(cat *catalog.Catalog, a Answers) (*models.Selection, error) {
	tmpl, err := cat.Resolve(a[IDTemplate])
	if err != nil {
		return nil, err
	}
	network, err := models.ParseNetwork(a[IDNetwork])
	if err != nil {
		return nil, err
	}
	pt := models.ProjectType(a[IDProjectType])
	if !pt.IsValid() {
		pt = tmpl.ProjectType
	}

	sel := &models.Selection{
		ProjectName:   a[IDProjectName],
		ProjectType:   pt,
		Template:      tmpl.Info(),
		Network:       network,
		Framework:     a[IDFramework],
		SigningOption: a[IDSigningOption],
		UseSurf:       a.Bool(IDUseSurf),
		Telemetry:     a.Bool(IDTelemetry),
	}
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	return sel, nil
}

// DefaultAsker answers every prompt with its default. It backs --yes and
// headless runs.
type DefaultAsker struct{}

// Ask returns the question's Unattended answer or p.Default, or an error
// when that answer was already rejected.
func (DefaultAsker) Ask(_ context.Context, p Prompt) (string, error) {
	answer := p.Default
	if p.Question != nil && p.Question.Unattended != "" {
		answer = p.Question.Unattended
	}
	if p.Retry != nil {
		return "", fmt.Errorf("default %q rejected: %w", answer, p.Retry)
	}
	return answer, nil
}
