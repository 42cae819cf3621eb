// Package wizard collects the answers that describe a new project through a
// sequence of conditional questions, one huh form per question.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

// QuestionType represents the type of wizard question.
type QuestionType int

const (
	// QuestionTypeSelect is a single-choice selection question.
	QuestionTypeSelect QuestionType = iota
	// QuestionTypeInput is a text input question.
	QuestionTypeInput
	// QuestionTypeConfirm is a yes/no question. Answers are "true" or "false".
	QuestionTypeConfirm
)

// Answers maps question IDs to recorded values.
type Answers map[string]string

// Bool reports whether the answer for id is a true confirm value.
func (a Answers) Bool(id string) bool {
	b, _ := strconv.ParseBool(a[id])
	return b
}

// Question defines a single wizard question.
type Question struct {
	ID          string
	Type        QuestionType
	Title       string
	Description string

	// Options is the static choice set. OptionsFunc, when set, computes the
	// choice set from earlier answers and takes precedence.
	Options     []Option
	OptionsFunc func(Answers) []Option

	// Validate runs after the built-in choice check.
	Validate func(string) error

	// Default is used when the question is skipped or the input is left
	// empty. DefaultFunc takes precedence when set. A select default that
	// is not among the choices falls back to the first choice.
	Default     string
	DefaultFunc func(Answers) string

	// Condition gates the question. Nil means always asked.
	Condition func(Answers) bool

	// Unattended, when set, is what DefaultAsker answers instead of the
	// default. Consent questions use it so nobody opts in unasked.
	Unattended string
}

// Option represents a selectable option.
type Option struct {
	Label string // Display label
	Value string // Actual value stored
	Desc  string // Optional description
}

// Prompt is a question resolved against earlier answers, as handed to an Asker.
type Prompt struct {
	Question *Question
	Options  []Option
	Default  string
	Retry    error // why the previous answer was rejected, nil on the first ask
}

// Asker presents one prompt and returns the raw answer.
type Asker interface {
	Ask(ctx context.Context, p Prompt) (string, error)
}

var (
	// ErrCancelled is returned when the user cancels the wizard.
	ErrCancelled = errors.New("wizard cancelled by user")
	// ErrNoQuestions is returned when no questions are provided.
	ErrNoQuestions = errors.New("no questions provided")
	// ErrNoOptions is returned when a select question has an empty choice set.
	ErrNoOptions = errors.New("no options available")
	// ErrInvalidPreset is returned when a preset answer fails validation.
	ErrInvalidPreset = errors.New("invalid preset value")
	// ErrQuestionSkipped is returned when a preset contradicts the value a
	// skipped question records.
	ErrQuestionSkipped = errors.New("does not apply to the other answers")
)

// PresetError reports a flag or config value rejected by its question.
type PresetError struct {
	ID    string
	Value string
	Err   error
}

func (e *PresetError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.ID, e.Value, e.Err)
}

// Unwrap returns both the sentinel and the underlying cause.
func (e *PresetError) Unwrap() []error {
	return []error{ErrInvalidPreset, e.Err}
}
