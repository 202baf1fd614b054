package survey

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/baomythoi/leefit/internal/i18n"
)

type recordingSubmitter struct {
	calls []Submission
	err   error
}

func (r *recordingSubmitter) Submit(_ context.Context, s Submission) error {
	r.calls = append(r.calls, s)
	return r.err
}

var fixedNow = time.Date(2025, 1, 2, 3, 4, 5, 600_000_000, time.UTC)

func newTestFlow(sub Submitter) *Flow {
	return NewFlow(sub, i18n.English, WithClock(func() time.Time { return fixedNow }))
}

func answerAll(t *testing.T, f *Flow) {
	t.Helper()
	steps := []struct {
		id    QuestionID
		value any
	}{
		{FitnessGoal, "gain_muscle"},
		{Experience, "beginner"},
		{TimeAvailable, 45},
		{HealthConcerns, "back_pain"},
		{TrainerGender, "female"},
	}
	for _, step := range steps {
		if err := f.Answer(step.id, step.value); err != nil {
			t.Fatalf("Answer(%s): %v", step.id, err)
		}
	}
}

func TestNewFlowStartsAtFirstStepWithDefaults(t *testing.T) {
	f := newTestFlow(&recordingSubmitter{})

	if f.Step() != 0 || f.Len() != 5 {
		t.Fatalf("expected step 0 of 5, got %d of %d", f.Step(), f.Len())
	}
	a := f.Answers()
	if a.FitnessGoal != "" || a.TimeAvailable != 30 || len(a.HealthConcerns) != 0 {
		t.Fatalf("unexpected defaults %+v", a)
	}
}

func TestSelectingNoneClearsOtherConcerns(t *testing.T) {
	f := newTestFlow(&recordingSubmitter{})

	if err := f.Answer(HealthConcerns, "back_pain"); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if err := f.Answer(HealthConcerns, "none"); err != nil {
		t.Fatalf("Answer: %v", err)
	}

	if got := f.Answers().HealthConcerns; !reflect.DeepEqual(got, []string{"none"}) {
		t.Fatalf("expected [none], got %v", got)
	}
}

func TestSelectingConcernClearsNone(t *testing.T) {
	f := newTestFlow(&recordingSubmitter{})

	if err := f.Answer(HealthConcerns, "none"); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if err := f.Answer(HealthConcerns, "back_pain"); err != nil {
		t.Fatalf("Answer: %v", err)
	}

	if got := f.Answers().HealthConcerns; !reflect.DeepEqual(got, []string{"back_pain"}) {
		t.Fatalf("expected [back_pain], got %v", got)
	}
}

func TestToggleUnchecksConcern(t *testing.T) {
	f := newTestFlow(&recordingSubmitter{})

	if err := f.Answer(HealthConcerns, []string{"back_pain", "knee_pain"}); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if err := f.Toggle("back_pain", false); err != nil {
		t.Fatalf("Toggle: %v", err)
	}

	if got := f.Answers().HealthConcerns; !reflect.DeepEqual(got, []string{"knee_pain"}) {
		t.Fatalf("expected [knee_pain], got %v", got)
	}
}

func TestAnswerListAppliesExclusivityInOrder(t *testing.T) {
	f := newTestFlow(&recordingSubmitter{})

	if err := f.Answer(HealthConcerns, []string{"knee_pain", "none", "other"}); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if got := f.Answers().HealthConcerns; !reflect.DeepEqual(got, []string{"other"}) {
		t.Fatalf("expected [other], got %v", got)
	}
}

func TestCanAdvanceRequiresSingleChoiceAnswer(t *testing.T) {
	f := newTestFlow(&recordingSubmitter{})

	if f.CanAdvance() {
		t.Fatalf("expected empty single choice to block")
	}
	if _, err := f.Next(context.Background()); !errors.Is(err, ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}
	if f.Step() != 0 {
		t.Fatalf("expected to stay on step 0, got %d", f.Step())
	}

	if err := f.Answer(FitnessGoal, "lose_weight"); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if !f.CanAdvance() {
		t.Fatalf("expected answered step to advance")
	}
}

func TestSliderAlwaysAdvances(t *testing.T) {
	f := newTestFlow(&recordingSubmitter{})
	ctx := context.Background()
	_ = f.Answer(FitnessGoal, "lose_weight")
	_, _ = f.Next(ctx)
	_ = f.Answer(Experience, "advanced")
	_, _ = f.Next(ctx)

	if f.Current().Kind != Slider {
		t.Fatalf("expected slider step, got %v", f.Current().Kind)
	}
	if !f.CanAdvance() {
		t.Fatalf("expected slider to always advance")
	}
}

func TestAnswerRejectsInvalidValues(t *testing.T) {
	f := newTestFlow(&recordingSubmitter{})

	cases := []struct {
		id    QuestionID
		value any
	}{
		{FitnessGoal, "fly"},
		{FitnessGoal, 3},
		{TimeAvailable, 20},
		{TimeAvailable, 135},
		{HealthConcerns, "headache"},
		{HealthConcerns, 1},
	}
	for _, tc := range cases {
		if err := f.Answer(tc.id, tc.value); !errors.Is(err, ErrInvalidAnswer) {
			t.Fatalf("Answer(%s, %v): expected ErrInvalidAnswer, got %v", tc.id, tc.value, err)
		}
	}
	if err := f.Answer("shoeSize", "42"); !errors.Is(err, ErrUnknownQuestion) {
		t.Fatalf("expected ErrUnknownQuestion, got %v", err)
	}
}

func TestPreviousIsNoOpAtFirstStep(t *testing.T) {
	f := newTestFlow(&recordingSubmitter{})

	if f.Previous() {
		t.Fatalf("expected Previous to report false at step 0")
	}

	_ = f.Answer(FitnessGoal, "lose_weight")
	if _, err := f.Next(context.Background()); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if !f.Previous() || f.Step() != 0 {
		t.Fatalf("expected to return to step 0, got %d", f.Step())
	}
}

func TestNextOnLastStepSubmits(t *testing.T) {
	sub := &recordingSubmitter{}
	f := newTestFlow(sub)
	answerAll(t, f)
	ctx := context.Background()

	for i := 0; i < f.Len()-1; i++ {
		tr, err := f.Next(ctx)
		if err != nil || tr != Advanced {
			t.Fatalf("step %d: expected Advanced, got %v (%v)", i, tr, err)
		}
	}
	if f.Step() != f.Len()-1 {
		t.Fatalf("expected last step, got %d", f.Step())
	}

	tr, err := f.Next(ctx)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if tr != Submitted {
		t.Fatalf("expected Submitted, got %v", tr)
	}
	if f.Step() != f.Len()-1 {
		t.Fatalf("expected index to stay at %d, got %d", f.Len()-1, f.Step())
	}
	if len(sub.calls) != 1 {
		t.Fatalf("expected one submission, got %d", len(sub.calls))
	}

	got := sub.calls[0]
	if got.Timestamp != "2025-01-02T03:04:05.600Z" {
		t.Fatalf("unexpected timestamp %q", got.Timestamp)
	}
	if got.Language != i18n.English {
		t.Fatalf("unexpected language %q", got.Language)
	}
	if got.TrainerGender != "female" || got.TimeAvailable != 45 {
		t.Fatalf("unexpected answers %+v", got.Answers)
	}
}

func TestSubmittedFlowIsReadOnly(t *testing.T) {
	f := newTestFlow(&recordingSubmitter{})
	answerAll(t, f)
	if err := f.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if !f.Submitted() {
		t.Fatalf("expected submitted flow")
	}
	if err := f.Answer(FitnessGoal, "lose_weight"); !errors.Is(err, ErrSubmitted) {
		t.Fatalf("expected ErrSubmitted, got %v", err)
	}
	if _, err := f.Next(context.Background()); !errors.Is(err, ErrSubmitted) {
		t.Fatalf("expected ErrSubmitted, got %v", err)
	}
	if f.Previous() {
		t.Fatalf("expected Previous to be disabled after submission")
	}
}

func TestFailedSubmissionCanBeRetried(t *testing.T) {
	sub := &recordingSubmitter{err: errors.New("connection refused")}
	f := newTestFlow(sub)
	answerAll(t, f)

	err := f.Submit(context.Background())
	if !errors.Is(err, ErrSubmitFailed) {
		t.Fatalf("expected ErrSubmitFailed, got %v", err)
	}
	if f.Submitted() {
		t.Fatalf("expected flow to remain open after failure")
	}

	sub.err = nil
	if err := f.Submit(context.Background()); err != nil {
		t.Fatalf("retry Submit: %v", err)
	}
	if len(sub.calls) != 2 || !f.Submitted() {
		t.Fatalf("expected retry to submit, calls=%d", len(sub.calls))
	}
}

func TestSubmitRequiresEveryStep(t *testing.T) {
	sub := &recordingSubmitter{}
	f := newTestFlow(sub)
	_ = f.Answer(FitnessGoal, "lose_weight")

	if err := f.Submit(context.Background()); !errors.Is(err, ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}
	if len(sub.calls) != 0 {
		t.Fatalf("expected nothing sent")
	}
}

func TestProgressMatchesPosition(t *testing.T) {
	f := newTestFlow(&recordingSubmitter{})
	pos, total, pct := f.Progress()
	if pos != 1 || total != 5 || pct != 20 {
		t.Fatalf("unexpected progress %d/%d %d%%", pos, total, pct)
	}
}

func TestSubmissionJSONInlinesAnswers(t *testing.T) {
	a := DefaultAnswers()
	a.FitnessGoal = "lose_weight"
	a.HealthConcerns = []string{"none"}
	body, err := json.Marshal(NewSubmission(a, fixedNow, i18n.Vietnamese))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	for _, key := range []string{"fitnessGoal", "experience", "timeAvailable", "healthConcerns", "trainerGender", "timestamp", "language"} {
		if _, ok := decoded[key]; !ok {
			t.Fatalf("expected top-level key %q in %s", key, body)
		}
	}
	if decoded["language"] != "vi" {
		t.Fatalf("expected vi, got %v", decoded["language"])
	}
}

func TestValidate(t *testing.T) {
	valid := Answers{
		FitnessGoal:    "increase_strength",
		Experience:     "intermediate",
		TimeAvailable:  60,
		HealthConcerns: []string{"none"},
		TrainerGender:  "no_preference",
	}
	if err := Validate(valid); err != nil {
		t.Fatalf("expected valid answers, got %v", err)
	}

	mixed := valid
	mixed.HealthConcerns = []string{"none", "back_pain"}
	if err := Validate(mixed); !errors.Is(err, ErrInvalidAnswer) {
		t.Fatalf("expected exclusivity violation, got %v", err)
	}

	offGrid := valid
	offGrid.TimeAvailable = 50
	if err := Validate(offGrid); !errors.Is(err, ErrInvalidAnswer) {
		t.Fatalf("expected slider violation, got %v", err)
	}

	missing := valid
	missing.Experience = ""
	if err := Validate(missing); !errors.Is(err, ErrInvalidAnswer) {
		t.Fatalf("expected missing answer violation, got %v", err)
	}
}
