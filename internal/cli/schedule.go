package cli

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/baomythoi/leefit/internal/apiclient"
	"github.com/baomythoi/leefit/internal/i18n"
	"github.com/baomythoi/leefit/internal/models"
	"github.com/spf13/cobra"
)

func scheduleCmd(a *app) *cobra.Command {
	var (
		timeframe string
		status    string
		date      string
		today     bool
	)

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "List training sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := a.authed(cmd.Context())
			if err != nil {
				return err
			}

			query := apiclient.SessionQuery{Timeframe: timeframe, Status: status}
			title := a.t(i18n.Schedule)
			switch {
			case date != "":
				day, err := time.Parse(time.DateOnly, date)
				if err != nil {
					return fmt.Errorf("--date must use YYYY-MM-DD: %w", err)
				}
				query.Day = day
			case today:
				query.Day = time.Now()
				title = a.t(i18n.TodaySchedule)
			}

			sessions, err := fetch(ctx, a, "sessions", func(ctx context.Context) ([]models.TrainingSession, error) {
				return a.api.Sessions(ctx, query)
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, title)
			a.printSessions(sessions)
			return nil
		},
	}
	cmd.Flags().StringVar(&timeframe, "timeframe", "", "upcoming or past")
	cmd.Flags().StringVar(&status, "status", "", "scheduled, completed or cancelled")
	cmd.Flags().StringVar(&date, "date", "", "only sessions on this day (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&today, "today", false, "only today's sessions")

	cmd.AddCommand(
		scheduleShowCmd(a),
		scheduleAddCmd(a),
		scheduleDoneCmd(a),
		scheduleCancelCmd(a),
		scheduleDeleteCmd(a),
	)
	return cmd
}

func scheduleShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one session",
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
			session, err := fetch(ctx, a, "session", func(ctx context.Context) (*models.TrainingSession, error) {
				return a.api.Session(ctx, id)
			})
			if err != nil {
				return err
			}
			a.printSessions([]models.TrainingSession{*session})
			if session.Notes != nil && *session.Notes != "" {
				fmt.Fprintf(a.out, "  %s\n", *session.Notes)
			}
			return nil
		},
	}
}

func scheduleAddCmd(a *app) *cobra.Command {
	var (
		in        apiclient.NewSession
		at        string
		trainerID int64
		notes     string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Schedule a new session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := a.authed(cmd.Context())
			if err != nil {
				return err
			}

			scheduled, err := time.ParseInLocation("2006-01-02 15:04", at, time.Local)
			if err != nil {
				return fmt.Errorf("--at must use \"YYYY-MM-DD HH:MM\": %w", err)
			}
			in.ScheduledAt = scheduled.Format(time.RFC3339)
			if trainerID > 0 {
				in.TrainerID = &trainerID
			}
			if notes != "" {
				in.Notes = &notes
			}

			session, err := a.api.CreateSession(ctx, in)
			if err != nil {
				return err
			}
			a.success("#%d %s %s", session.ID, session.Title, session.ScheduledAt.Local().Format("2006-01-02 15:04"))
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Title, "title", "", "session title")
	cmd.Flags().StringVar(&in.Kind, "kind", models.SessionKindWorkout, "workout, recovery or rest")
	cmd.Flags().StringVar(&at, "at", "", "start time, local \"YYYY-MM-DD HH:MM\"")
	cmd.Flags().IntVar(&in.DurationMinutes, "minutes", 60, "duration in minutes")
	cmd.Flags().Int64Var(&trainerID, "trainer", 0, "trainer id")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("at")
	return cmd
}

func scheduleDoneCmd(a *app) *cobra.Command {
	return scheduleStatusCmd(a, "done <id>", "Mark a session as completed", models.SessionStatusCompleted)
}

func scheduleCancelCmd(a *app) *cobra.Command {
	return scheduleStatusCmd(a, "cancel <id>", "Cancel a session", models.SessionStatusCancelled)
}

func scheduleStatusCmd(a *app, use, short, status string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
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
			session, err := a.api.UpdateSession(ctx, id, apiclient.SessionUpdate{Status: &status})
			if err != nil {
				return err
			}
			a.success("#%d %s", session.ID, a.statusLabel(session.Status))
			return nil
		},
	}
}

func scheduleDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a session",
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
			if err := a.api.DeleteSession(ctx, id); err != nil {
				return err
			}
			a.success("#%d deleted", id)
			return nil
		},
	}
}

func (a *app) printSessions(sessions []models.TrainingSession) {
	if len(sessions) == 0 {
		fmt.Fprintln(a.out, a.t(i18n.NoData))
		return
	}
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for _, s := range sessions {
		title := s.Title
		if s.Kind == models.SessionKindRest {
			title = a.t(i18n.Rest)
		}
		fmt.Fprintf(w, "#%d\t%s-%s\t%s\t%d %s\t%s\n",
			s.ID,
			s.ScheduledAt.Local().Format("Mon 02/01 15:04"),
			s.EndsAt().Local().Format("15:04"),
			title,
			s.DurationMinutes, a.t(i18n.Minutes),
			a.statusLabel(s.Status),
		)
	}
	w.Flush()
}

func (a *app) statusLabel(status string) string {
	if status == models.SessionStatusCompleted {
		return a.t(i18n.Completed)
	}
	return status
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
