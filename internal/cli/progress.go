package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/baomythoi/leefit/internal/apiclient"
	"github.com/baomythoi/leefit/internal/i18n"
	"github.com/baomythoi/leefit/internal/models"
	"github.com/spf13/cobra"
)

func progressCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show body measurements over time",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := a.authed(cmd.Context())
			if err != nil {
				return err
			}
			entries, err := fetch(ctx, a, "progress", a.api.Progress)
			if err != nil {
				return err
			}
			a.printProgress(entries)
			return nil
		},
	}

	cmd.AddCommand(
		progressAddCmd(a),
		progressChartCmd(a),
		progressPhotoCmd(a),
		progressPhotoURLCmd(a),
	)
	return cmd
}

func progressAddCmd(a *app) *cobra.Command {
	var (
		weight  float64
		bodyFat float64
		muscle  float64
		notes   string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record today's measurements",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := a.authed(cmd.Context())
			if err != nil {
				return err
			}

			var in apiclient.NewProgressEntry
			if cmd.Flags().Changed("weight") {
				in.WeightKG = &weight
			}
			if cmd.Flags().Changed("body-fat") {
				in.BodyFatPct = &bodyFat
			}
			if cmd.Flags().Changed("muscle") {
				in.MuscleMassKG = &muscle
			}
			if in.WeightKG == nil && in.BodyFatPct == nil && in.MuscleMassKG == nil {
				return fmt.Errorf("set at least one of --weight, --body-fat or --muscle")
			}
			if notes != "" {
				in.Notes = &notes
			}

			entry, err := a.api.RecordProgress(ctx, in)
			if err != nil {
				return err
			}
			a.success("#%d %s", entry.ID, entry.RecordedAt.Local().Format(time.DateOnly))
			return nil
		},
	}
	cmd.Flags().Float64Var(&weight, "weight", 0, "weight in kg")
	cmd.Flags().Float64Var(&bodyFat, "body-fat", 0, "body fat percentage")
	cmd.Flags().Float64Var(&muscle, "muscle", 0, "muscle mass in kg")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	return cmd
}

func progressChartCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Save the weight chart as a PNG file",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := a.authed(cmd.Context())
			if err != nil {
				return err
			}
			png, err := fetch(ctx, a, "progress-chart", func(ctx context.Context) ([]byte, error) {
				return a.api.ProgressChart(ctx, string(a.lang))
			})
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, png, 0o644); err != nil {
				return fmt.Errorf("write chart: %w", err)
			}
			a.success("%s: %s", a.t(i18n.WeightProgress), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "progress.png", "destination file")
	return cmd
}

func progressPhotoCmd(a *app) *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "photo <file>",
		Short: "Upload a progress photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := a.authed(cmd.Context())
			if err != nil {
				return err
			}
			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()

			entry, err := a.api.UploadProgressPhoto(ctx, filepath.Base(args[0]), file, notes)
			if err != nil {
				return err
			}
			a.success("%s #%d", a.t(i18n.AddNewPhoto), entry.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	return cmd
}

func progressPhotoURLCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "photo-url <entry-id>",
		Short: "Print a temporary link to an entry's photo",
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
			url, err := a.api.ProgressPhotoURL(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, url)
			return nil
		},
	}
}

func (a *app) printProgress(entries []models.ProgressEntry) {
	fmt.Fprintln(a.out, a.t(i18n.Progress))
	if len(entries) == 0 {
		fmt.Fprintln(a.out, a.t(i18n.NoData))
		return
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "\t%s\t%s\t%s\t\n", a.t(i18n.WeightProgress), a.t(i18n.BodyFat), a.t(i18n.MuscleGain))
	for _, e := range entries {
		photo := ""
		if e.PhotoURL != nil {
			photo = "📷"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.RecordedAt.Local().Format(time.DateOnly),
			formatMeasure(e.WeightKG, "kg"),
			formatMeasure(e.BodyFatPct, "%"),
			formatMeasure(e.MuscleMassKG, "kg"),
			photo,
		)
	}
	w.Flush()

	// Entries arrive oldest first.
	for i := len(entries) - 1; i >= 0; i-- {
		if weight := entries[i].WeightKG; weight != nil {
			fmt.Fprintf(a.out, "%s: %.1f kg\n", a.t(i18n.CurrentWeight), *weight)
			break
		}
	}
}

func formatMeasure(value *float64, unit string) string {
	if value == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f %s", *value, unit)
}
