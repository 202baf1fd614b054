package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/baomythoi/leefit/internal/apiclient"
	"github.com/baomythoi/leefit/internal/i18n"
	"github.com/baomythoi/leefit/internal/session"
	"github.com/baomythoi/leefit/internal/survey"
	"github.com/spf13/cobra"
)

func surveyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "survey",
		Short: "Answer the onboarding questionnaire",
		Long: `Walks through the onboarding questions one step at a time.

Type the number of an option, several comma separated numbers for the
health concerns question, or a number of minutes for the time question.
An empty line keeps the current answer and "b" goes back one step.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			// Signed-in submissions are linked to the account.
			s, err := a.store.Load()
			switch {
			case err == nil:
				ctx = session.NewContext(ctx, s)
			case !errors.Is(err, session.ErrNoSession):
				a.warn("saved session unusable, submitting anonymously: %v", err)
			}
			flow := survey.NewFlow(a.api.SurveySubmitter(a.cfg.SurveyURL()), a.lang)
			return a.runSurvey(ctx, flow)
		},
	}
	cmd.AddCommand(surveyLastCmd(a))
	return cmd
}

func surveyLastCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "last",
		Short: "Show the answers of your latest submission",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := a.authed(cmd.Context())
			if err != nil {
				return err
			}
			submission, err := fetch(ctx, a, "survey", a.api.LatestSurvey)
			var apiErr *apiclient.Error
			if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
				fmt.Fprintln(a.out, a.t(i18n.NoData))
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "%s (%s)\n", submission.Reference, submission.SubmittedAt.Local().Format("2006-01-02 15:04"))
			for _, q := range survey.Questions() {
				fmt.Fprintf(a.out, "  %s: %s\n", a.t(q.Title), a.answerLabel(q, submission.Answers))
			}
			return nil
		},
	}
}

func (a *app) answerLabel(q survey.Question, answers survey.Answers) string {
	switch q.Kind {
	case survey.Slider:
		return fmt.Sprintf("%d %s", answers.TimeAvailable, a.t(i18n.Minutes))
	case survey.MultiSelect:
		labels := make([]string, 0, len(answers.HealthConcerns))
		for _, value := range answers.HealthConcerns {
			labels = append(labels, a.optionLabel(q, value))
		}
		return strings.Join(labels, ", ")
	default:
		return a.optionLabel(q, currentChoice(answers, q.ID))
	}
}

func (a *app) optionLabel(q survey.Question, value string) string {
	for _, option := range q.Options {
		if option.Value == value {
			return a.t(option.Label)
		}
	}
	return value
}

func (a *app) runSurvey(ctx context.Context, flow *survey.Flow) error {
	fmt.Fprintf(a.out, "%s\n%s\n", a.t(i18n.SurveyTitle), a.t(i18n.SurveySubtitle))

	for !flow.Submitted() {
		a.renderStep(flow)

		input, err := a.prompt(">")
		if err != nil {
			return err
		}
		if input == "b" || input == "back" {
			flow.Previous()
			continue
		}
		if err := applyInput(flow, input); err != nil {
			a.warn("%v", err)
			continue
		}

		if err := a.advance(ctx, flow); err != nil {
			return err
		}
	}

	a.success("%s %s", a.t(i18n.SurveySuccessTitle), a.t(i18n.SurveySuccessBody))
	return nil
}

// advance moves the flow forward. A failed submission is offered for retry
// with the answers left untouched.
func (a *app) advance(ctx context.Context, flow *survey.Flow) error {
	for {
		_, err := flow.Next(ctx)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, survey.ErrIncomplete):
			a.warn("%s", a.t(i18n.ErrorBody))
			return nil
		case errors.Is(err, survey.ErrSubmitFailed):
			a.warn("%s: %v", a.t(i18n.ErrorTitle), err)
			answer, perr := a.prompt("Retry? [Y/n]")
			if perr != nil {
				return err
			}
			if strings.EqualFold(answer, "n") || strings.EqualFold(answer, "no") {
				return err
			}
		default:
			return err
		}
	}
}

func (a *app) renderStep(flow *survey.Flow) {
	position, total, percent := flow.Progress()
	q := flow.Current()
	answers := flow.Answers()

	fmt.Fprintf(a.out, "\n[%d/%d %d%%] %s\n", position, total, percent, a.t(q.Title))
	switch q.Kind {
	case survey.Slider:
		fmt.Fprintf(a.out, "  %d-%d %s (+%d): %d\n", q.Min, q.Max, a.t(i18n.Minutes), q.Step, answers.TimeAvailable)
	case survey.MultiSelect:
		for i, option := range q.Options {
			mark := " "
			if slices.Contains(answers.HealthConcerns, option.Value) {
				mark = "x"
			}
			fmt.Fprintf(a.out, "  %d) [%s] %s\n", i+1, mark, a.t(option.Label))
		}
	default:
		selected := currentChoice(answers, q.ID)
		for i, option := range q.Options {
			mark := " "
			if option.Value == selected {
				mark = "*"
			}
			fmt.Fprintf(a.out, "  %d) (%s) %s\n", i+1, mark, a.t(option.Label))
		}
	}

	action := a.t(i18n.Next)
	if flow.IsLast() {
		action = a.t(i18n.SubmitSurvey)
	}
	hint := "Enter: " + action
	if flow.Step() > 0 {
		hint += ", b: " + a.t(i18n.Previous)
	}
	fmt.Fprintf(a.out, "  (%s)\n", hint)
}

func applyInput(flow *survey.Flow, input string) error {
	if input == "" {
		return nil
	}
	q := flow.Current()

	switch q.Kind {
	case survey.Slider:
		minutes, err := strconv.Atoi(input)
		if err != nil {
			return fmt.Errorf("%w: %q is not a number", survey.ErrInvalidAnswer, input)
		}
		return flow.Answer(q.ID, minutes)
	case survey.MultiSelect:
		var values []string
		for _, part := range strings.Split(input, ",") {
			option, err := pickOption(q, strings.TrimSpace(part))
			if err != nil {
				return err
			}
			values = append(values, option.Value)
		}
		return flow.Answer(q.ID, values)
	default:
		option, err := pickOption(q, input)
		if err != nil {
			return err
		}
		return flow.Answer(q.ID, option.Value)
	}
}

func pickOption(q survey.Question, input string) (survey.Option, error) {
	n, err := strconv.Atoi(input)
	if err != nil || n < 1 || n > len(q.Options) {
		return survey.Option{}, fmt.Errorf("%w: choose 1-%d", survey.ErrInvalidAnswer, len(q.Options))
	}
	return q.Options[n-1], nil
}

func currentChoice(answers survey.Answers, id survey.QuestionID) string {
	switch id {
	case survey.FitnessGoal:
		return answers.FitnessGoal
	case survey.Experience:
		return answers.Experience
	case survey.TrainerGender:
		return answers.TrainerGender
	default:
		return ""
	}
}
