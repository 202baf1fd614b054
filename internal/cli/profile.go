package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/baomythoi/leefit/internal/apiclient"
	"github.com/baomythoi/leefit/internal/i18n"
	"github.com/spf13/cobra"
)

func profileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := a.authed(cmd.Context())
			if err != nil {
				return err
			}
			me, err := fetch(ctx, a, "profile", a.api.Me)
			if err != nil {
				return err
			}
			a.printProfile(me)
			return nil
		},
	}

	cmd.AddCommand(
		profileSetCmd(a),
		profileAvatarCmd(a),
	)
	return cmd
}

func profileSetCmd(a *app) *cobra.Command {
	var (
		fullName      string
		age           int
		gender        string
		height        float64
		weight        float64
		level         string
		minutes       int
		trainerGender string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update profile fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := a.authed(cmd.Context())
			if err != nil {
				return err
			}

			var update apiclient.ProfileUpdate
			flags := cmd.Flags()
			if flags.Changed("name") {
				update.FullName = &fullName
			}
			if flags.Changed("age") {
				update.Age = &age
			}
			if flags.Changed("gender") {
				update.Gender = &gender
			}
			if flags.Changed("height") {
				update.HeightCM = &height
			}
			if flags.Changed("weight") {
				update.WeightKG = &weight
			}
			if flags.Changed("level") {
				update.FitnessLevel = &level
			}
			if flags.Changed("minutes") {
				update.DailyMinutes = &minutes
			}
			if flags.Changed("trainer-gender") {
				update.TrainerGender = &trainerGender
			}
			if update == (apiclient.ProfileUpdate{}) {
				return fmt.Errorf("nothing to update")
			}

			if _, err := a.api.UpdateProfile(ctx, update); err != nil {
				return err
			}
			a.success("%s", a.t(i18n.PersonalInfo))
			return nil
		},
	}
	cmd.Flags().StringVar(&fullName, "name", "", "full name")
	cmd.Flags().IntVar(&age, "age", 0, "age in years")
	cmd.Flags().StringVar(&gender, "gender", "", "male, female or other")
	cmd.Flags().Float64Var(&height, "height", 0, "height in cm")
	cmd.Flags().Float64Var(&weight, "weight", 0, "weight in kg")
	cmd.Flags().StringVar(&level, "level", "", "beginner, intermediate or advanced")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "daily training minutes")
	cmd.Flags().StringVar(&trainerGender, "trainer-gender", "", "male, female or no_preference")
	return cmd
}

func profileAvatarCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "avatar <file>",
		Short: "Upload a profile picture",
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

			profile, err := a.api.UploadAvatar(ctx, filepath.Base(args[0]), file)
			if err != nil {
				return err
			}
			a.success("%s", deref(profile.AvatarURL))
			return nil
		},
	}
}

func (a *app) printProfile(me *apiclient.Me) {
	fmt.Fprintln(a.out, a.t(i18n.PersonalInfo))

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", a.t(i18n.Email), me.User.Email)
	if p := me.Profile; p != nil {
		writeRow(w, "Name", deref(p.FullName))
		if p.Age != nil {
			writeRow(w, "Age", fmt.Sprint(*p.Age))
		}
		if p.WeightKG != nil {
			writeRow(w, a.t(i18n.CurrentWeight), fmt.Sprintf("%.1f kg", *p.WeightKG))
		}
		if p.HeightCM != nil {
			writeRow(w, "Height", fmt.Sprintf("%.0f cm", *p.HeightCM))
		}
		writeRow(w, a.t(i18n.Experience), deref(p.FitnessLevel))
		if p.DailyMinutes != nil {
			writeRow(w, a.t(i18n.TimeAvailable), fmt.Sprintf("%d %s", *p.DailyMinutes, a.t(i18n.Minutes)))
		}
		if p.Goals != nil {
			writeRow(w, a.t(i18n.FitnessGoal), strings.Join(*p.Goals, ", "))
		}
		if p.MedicalConditions != nil {
			writeRow(w, a.t(i18n.HealthConcerns), strings.Join(*p.MedicalConditions, ", "))
		}
		writeRow(w, a.t(i18n.TrainerGender), deref(p.TrainerGender))
	}
	w.Flush()

	if !me.OnboardingComplete {
		fmt.Fprintf(a.out, "\n%s: leefit survey\n", a.t(i18n.SurveyTitle))
	}
}

func writeRow(w *tabwriter.Writer, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(w, "%s\t%s\n", label, value)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
