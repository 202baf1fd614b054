package survey

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/baomythoi/leefit/internal/i18n"
)

var (
	// ErrIncomplete blocks forward navigation while the current step has no
	// qualifying answer.
	ErrIncomplete      = errors.New("survey step is not answered")
	ErrSubmitted       = errors.New("survey already submitted")
	ErrSubmitFailed    = errors.New("survey submission failed")
	ErrUnknownQuestion = errors.New("unknown question")
	ErrInvalidAnswer   = errors.New("invalid answer")
)

type Submitter interface {
	Submit(ctx context.Context, submission Submission) error
}

type SubmitterFunc func(ctx context.Context, submission Submission) error

func (f SubmitterFunc) Submit(ctx context.Context, submission Submission) error {
	return f(ctx, submission)
}

type Transition int

const (
	Stayed Transition = iota
	Advanced
	Submitted
)

type FlowOption func(*Flow)

func WithClock(now func() time.Time) FlowOption {
	return func(f *Flow) {
		f.now = now
	}
}

// Flow walks a user through Questions one step at a time. A Flow is owned
// by a single caller and is not safe for concurrent use.
type Flow struct {
	questions []Question
	answers   Answers
	step      int
	submitted bool
	lang      i18n.Language
	submitter Submitter
	now       func() time.Time
}

func NewFlow(submitter Submitter, lang i18n.Language, opts ...FlowOption) *Flow {
	f := &Flow{
		questions: Questions(),
		answers:   DefaultAnswers(),
		lang:      lang,
		submitter: submitter,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Flow) Step() int               { return f.step }
func (f *Flow) Len() int                { return len(f.questions) }
func (f *Flow) Current() Question       { return f.questions[f.step] }
func (f *Flow) IsLast() bool            { return f.step == len(f.questions)-1 }
func (f *Flow) Submitted() bool         { return f.submitted }
func (f *Flow) Language() i18n.Language { return f.lang }

// Answers returns a copy of the answers collected so far.
func (f *Flow) Answers() Answers {
	return f.answers.clone()
}

// Progress reports the 1-based position, the step count and the rounded
// completion percentage.
func (f *Flow) Progress() (position, total, percent int) {
	total = len(f.questions)
	position = f.step + 1
	percent = (position*100 + total/2) / total
	return position, total, percent
}

// Answer records value for question id. Single-choice questions take a
// string option value, the slider an int and the multi-select question a
// string (selected) or a []string (each selected in order).
func (f *Flow) Answer(id QuestionID, value any) error {
	if f.submitted {
		return ErrSubmitted
	}
	q, ok := findQuestion(f.questions, id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownQuestion, id)
	}

	switch q.Kind {
	case SingleChoice:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: %s expects a string", ErrInvalidAnswer, id)
		}
		if s != "" && !q.HasOption(s) {
			return fmt.Errorf("%w: %q is not an option of %s", ErrInvalidAnswer, s, id)
		}
		f.answers.setChoice(id, s)
	case Slider:
		n, ok := toInt(value)
		if !ok || !validSliderValue(q, n) {
			return fmt.Errorf("%w: %s expects %d..%d in steps of %d", ErrInvalidAnswer, id, q.Min, q.Max, q.Step)
		}
		f.answers.TimeAvailable = n
	case MultiSelect:
		switch v := value.(type) {
		case string:
			return f.Toggle(v, true)
		case []string:
			concerns := []string{}
			for _, c := range v {
				if !q.HasOption(c) {
					return fmt.Errorf("%w: %q is not an option of %s", ErrInvalidAnswer, c, id)
				}
				concerns = SelectConcern(concerns, c)
			}
			f.answers.HealthConcerns = concerns
		default:
			return fmt.Errorf("%w: %s expects a string or []string", ErrInvalidAnswer, id)
		}
	}
	return nil
}

// Toggle checks or unchecks one health concern.
func (f *Flow) Toggle(value string, checked bool) error {
	if f.submitted {
		return ErrSubmitted
	}
	q, _ := findQuestion(f.questions, HealthConcerns)
	if !q.HasOption(value) {
		return fmt.Errorf("%w: %q is not an option of %s", ErrInvalidAnswer, value, HealthConcerns)
	}
	if checked {
		f.answers.HealthConcerns = SelectConcern(f.answers.HealthConcerns, value)
	} else {
		f.answers.HealthConcerns = DeselectConcern(f.answers.HealthConcerns, value)
	}
	return nil
}

func (f *Flow) CanAdvance() bool {
	if f.submitted {
		return false
	}
	return satisfied(f.Current(), f.answers)
}

// Next moves to the following step. On the last step it submits instead.
func (f *Flow) Next(ctx context.Context) (Transition, error) {
	if f.submitted {
		return Stayed, ErrSubmitted
	}
	if !f.CanAdvance() {
		return Stayed, ErrIncomplete
	}
	if !f.IsLast() {
		f.step++
		return Advanced, nil
	}
	if err := f.Submit(ctx); err != nil {
		return Stayed, err
	}
	return Submitted, nil
}

// Previous moves back one step. It reports false at the first step.
func (f *Flow) Previous() bool {
	if f.submitted || f.step == 0 {
		return false
	}
	f.step--
	return true
}

// Submit sends the answers. A failed send leaves the flow where it was so
// the caller can retry.
func (f *Flow) Submit(ctx context.Context) error {
	if f.submitted {
		return ErrSubmitted
	}
	for _, q := range f.questions {
		if !satisfied(q, f.answers) {
			return fmt.Errorf("%w: %s", ErrIncomplete, q.ID)
		}
	}

	submission := NewSubmission(f.answers, f.now(), f.lang)
	if err := f.submitter.Submit(ctx, submission); err != nil {
		return fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}
	f.submitted = true
	return nil
}

func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}
