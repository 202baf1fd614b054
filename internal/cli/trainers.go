package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/baomythoi/leefit/internal/apiclient"
	"github.com/baomythoi/leefit/internal/i18n"
	"github.com/baomythoi/leefit/internal/models"
	"github.com/spf13/cobra"
)

func trainersCmd(a *app) *cobra.Command {
	var query apiclient.TrainerQuery

	cmd := &cobra.Command{
		Use:   "trainers",
		Short: "Browse trainers",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := a.authed(cmd.Context())
			if err != nil {
				return err
			}
			page, err := fetch(ctx, a, "trainers", func(ctx context.Context) (*apiclient.TrainerPage, error) {
				return a.api.Trainers(ctx, query)
			})
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			for _, t := range page.Trainers {
				writeTrainer(w, t, "")
			}
			w.Flush()
			if len(page.Trainers) == 0 {
				fmt.Fprintln(a.out, a.t(i18n.NoData))
			}
			p := page.Pagination
			fmt.Fprintf(a.out, "%d/%d (%d)\n", p.Page, p.TotalPages, p.Total)
			return nil
		},
	}
	cmd.Flags().IntVar(&query.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&query.Limit, "limit", 10, "trainers per page")
	cmd.Flags().StringVar(&query.Specialization, "specialization", "", "specialization keyword")
	cmd.Flags().StringVar(&query.Gender, "gender", "", "male or female")
	cmd.Flags().Float64Var(&query.MinRating, "min-rating", 0, "minimum rating")
	cmd.Flags().Float64Var(&query.MaxPrice, "max-price", 0, "maximum hourly rate")
	cmd.Flags().IntVar(&query.Experience, "experience", 0, "minimum years of experience")

	cmd.AddCommand(
		trainersRecommendedCmd(a),
		trainersShowCmd(a),
	)
	return cmd
}

func trainersRecommendedCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recommended",
		Short: "Trainers ranked against your questionnaire answers",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := a.authed(cmd.Context())
			if err != nil {
				return err
			}
			trainers, err := fetch(ctx, a, "recommended-trainers", func(ctx context.Context) ([]models.TrainerWithScore, error) {
				return a.api.RecommendedTrainers(ctx, limit)
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(a.out, a.t(i18n.RecommendedTrainers))
			if len(trainers) == 0 {
				fmt.Fprintln(a.out, a.t(i18n.NoData))
				return nil
			}
			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			for _, t := range trainers {
				writeTrainer(w, t.Trainer, fmt.Sprintf("%d%%", t.MatchScore))
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 5, "number of trainers")
	return cmd
}

func trainersShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one trainer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, err := a.authed(cmd.Context())
			if err != nil {
				return err
			}
			t, err := fetch(ctx, a, "trainer", func(ctx context.Context) (*models.Trainer, error) {
				return a.api.Trainer(ctx, id)
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "%s (%s)\n", t.FullName, a.genderLabel(t.Gender))
			fmt.Fprintf(a.out, "★ %.1f (%d)  %.0f/h  %d y\n", t.Rating, t.TotalReviews, t.HourlyRate, t.ExperienceYears)
			if t.Bio != nil {
				fmt.Fprintln(a.out, *t.Bio)
			}
			if len(t.Specializations) > 0 {
				fmt.Fprintln(a.out, strings.Join(t.Specializations, ", "))
			}
			if len(t.Certifications) > 0 {
				fmt.Fprintln(a.out, strings.Join(t.Certifications, ", "))
			}
			return nil
		},
	}
}

func writeTrainer(w *tabwriter.Writer, t models.Trainer, score string) {
	fmt.Fprintf(w, "#%d\t%s\t★ %.1f\t%.0f/h\t%s\t%s\n",
		t.ID, t.FullName, t.Rating, t.HourlyRate, strings.Join(t.Specializations, ", "), score)
}

func (a *app) genderLabel(gender string) string {
	switch gender {
	case "male":
		return a.t(i18n.Male)
	case "female":
		return a.t(i18n.Female)
	default:
		return gender
	}
}
