package survey

import (
	"fmt"
	"strings"
	"time"

	"github.com/baomythoi/leefit/internal/i18n"
)

type Answers struct {
	FitnessGoal    string   `json:"fitnessGoal"`
	Experience     string   `json:"experience"`
	TimeAvailable  int      `json:"timeAvailable"`
	HealthConcerns []string `json:"healthConcerns"`
	TrainerGender  string   `json:"trainerGender"`
}

func DefaultAnswers() Answers {
	return Answers{
		TimeAvailable:  defaultMinutes,
		HealthConcerns: []string{},
	}
}

func (a Answers) clone() Answers {
	out := a
	out.HealthConcerns = append([]string{}, a.HealthConcerns...)
	return out
}

func (a Answers) choice(id QuestionID) string {
	switch id {
	case FitnessGoal:
		return a.FitnessGoal
	case Experience:
		return a.Experience
	case TrainerGender:
		return a.TrainerGender
	default:
		return ""
	}
}

func (a *Answers) setChoice(id QuestionID, value string) {
	switch id {
	case FitnessGoal:
		a.FitnessGoal = value
	case Experience:
		a.Experience = value
	case TrainerGender:
		a.TrainerGender = value
	}
}

// SelectConcern adds value to concerns. Selecting NoConcerns clears every
// other entry and selecting anything else clears NoConcerns.
func SelectConcern(concerns []string, value string) []string {
	if value == NoConcerns {
		return []string{NoConcerns}
	}
	out := make([]string, 0, len(concerns)+1)
	for _, c := range concerns {
		if c == NoConcerns || c == value {
			continue
		}
		out = append(out, c)
	}
	return append(out, value)
}

func DeselectConcern(concerns []string, value string) []string {
	out := make([]string, 0, len(concerns))
	for _, c := range concerns {
		if c != value {
			out = append(out, c)
		}
	}
	return out
}

// satisfied reports whether q's answer passes its non-emptiness rule.
func satisfied(q Question, a Answers) bool {
	switch q.Kind {
	case SingleChoice:
		return a.choice(q.ID) != ""
	case MultiSelect:
		return len(a.HealthConcerns) > 0
	case Slider:
		return true
	default:
		return false
	}
}

func validSliderValue(q Question, value int) bool {
	if value < q.Min || value > q.Max {
		return false
	}
	return q.Step <= 0 || (value-q.Min)%q.Step == 0
}

// Validate checks a complete answer set against the questionnaire.
func Validate(a Answers) error {
	for _, q := range Questions() {
		switch q.Kind {
		case SingleChoice:
			value := a.choice(q.ID)
			if value == "" {
				return fmt.Errorf("%w: %s is required", ErrInvalidAnswer, q.ID)
			}
			if !q.HasOption(value) {
				return fmt.Errorf("%w: %s must be one of: %s", ErrInvalidAnswer, q.ID, optionList(q))
			}
		case Slider:
			if !validSliderValue(q, a.TimeAvailable) {
				return fmt.Errorf("%w: %s must be between %d and %d in steps of %d",
					ErrInvalidAnswer, q.ID, q.Min, q.Max, q.Step)
			}
		case MultiSelect:
			if len(a.HealthConcerns) == 0 {
				return fmt.Errorf("%w: %s must contain at least one item", ErrInvalidAnswer, q.ID)
			}
			seen := make(map[string]struct{}, len(a.HealthConcerns))
			for _, c := range a.HealthConcerns {
				if !q.HasOption(c) {
					return fmt.Errorf("%w: %s must be one of: %s", ErrInvalidAnswer, q.ID, optionList(q))
				}
				if _, dup := seen[c]; dup {
					return fmt.Errorf("%w: %s must not repeat %q", ErrInvalidAnswer, q.ID, c)
				}
				seen[c] = struct{}{}
			}
			if _, ok := seen[NoConcerns]; ok && len(a.HealthConcerns) > 1 {
				return fmt.Errorf("%w: %s cannot combine %q with other concerns", ErrInvalidAnswer, q.ID, NoConcerns)
			}
		}
	}
	return nil
}

func optionList(q Question) string {
	values := make([]string, 0, len(q.Options))
	for _, option := range q.Options {
		values = append(values, option.Value)
	}
	return strings.Join(values, ", ")
}

// isoLayout matches JavaScript's Date.prototype.toISOString.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// Submission is the body posted to the submission endpoint: the answers
// inlined next to the submission time and language.
type Submission struct {
	Answers
	Timestamp string        `json:"timestamp"`
	Language  i18n.Language `json:"language"`
}

func NewSubmission(a Answers, at time.Time, lang i18n.Language) Submission {
	return Submission{
		Answers:   a.clone(),
		Timestamp: at.UTC().Format(isoLayout),
		Language:  lang,
	}
}

// SubmittedAt parses Timestamp.
func (s Submission) SubmittedAt() (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s.Timestamp)
}
