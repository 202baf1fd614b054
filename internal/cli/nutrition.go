package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/baomythoi/leefit/internal/apiclient"
	"github.com/baomythoi/leefit/internal/i18n"
	"github.com/baomythoi/leefit/internal/models"
	"github.com/spf13/cobra"
)

var slotOrder = []struct {
	slot  string
	label i18n.Key
}{
	{models.SlotBreakfast, i18n.Breakfast},
	{models.SlotLunch, i18n.Lunch},
	{models.SlotDinner, i18n.Dinner},
	{models.SlotSnack, i18n.Snack},
}

func mealsCmd(a *app) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "meals",
		Short: "Show the menu of a day (today by default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := a.authed(cmd.Context())
			if err != nil {
				return err
			}
			day, err := parseDay(date)
			if err != nil {
				return err
			}

			menu, err := fetch(ctx, a, "menu", func(ctx context.Context) (*models.Menu, error) {
				return a.api.Menu(ctx, day)
			})
			if err != nil {
				return err
			}
			a.printMenu(menu, date == "")
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day to show (YYYY-MM-DD)")

	cmd.AddCommand(
		mealsCatalogCmd(a),
		mealsCreateCmd(a),
		mealsPlanCmd(a),
	)
	return cmd
}

func mealsCatalogCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the meals that can be planned",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := a.authed(cmd.Context())
			if err != nil {
				return err
			}
			meals, err := fetch(ctx, a, "meals", a.api.Meals)
			if err != nil {
				return err
			}
			if len(meals) == 0 {
				fmt.Fprintln(a.out, a.t(i18n.NoData))
				return nil
			}

			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "ID\t\tkcal\t%s\t%s\t%s\n", a.t(i18n.ProteinLabel), a.t(i18n.CarbsLabel), a.t(i18n.FatLabel))
			for _, m := range meals {
				fmt.Fprintf(w, "#%d\t%s\t%d\t%.0fg\t%.0fg\t%.0fg\n", m.ID, m.Name, m.Calories, m.ProteinG, m.CarbsG, m.FatG)
			}
			return w.Flush()
		},
	}
}

func mealsCreateCmd(a *app) *cobra.Command {
	var in apiclient.NewMeal

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a meal to the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := a.authed(cmd.Context())
			if err != nil {
				return err
			}
			meal, err := a.api.CreateMeal(ctx, in)
			if err != nil {
				return err
			}
			a.success("#%d %s (%d kcal)", meal.ID, meal.Name, meal.Calories)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "meal name")
	cmd.Flags().IntVar(&in.Calories, "kcal", 0, "calories")
	cmd.Flags().Float64Var(&in.ProteinG, "protein", 0, "protein grams")
	cmd.Flags().Float64Var(&in.CarbsG, "carbs", 0, "carb grams")
	cmd.Flags().Float64Var(&in.FatG, "fat", 0, "fat grams")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func mealsPlanCmd(a *app) *cobra.Command {
	var (
		date   string
		mealID int64
		slot   string
		target int
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Put a catalog meal on a day's menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := a.authed(cmd.Context())
			if err != nil {
				return err
			}
			day, err := parseDay(date)
			if err != nil {
				return err
			}
			if day.IsZero() {
				day = time.Now()
			}

			menu, err := a.api.Menu(ctx, day)
			if err != nil {
				return err
			}
			if menu.ID == 0 || target > 0 {
				if target == 0 {
					target = menu.TargetCalories
				}
				if menu, err = a.api.SaveMenu(ctx, day, target); err != nil {
					return err
				}
			}
			menu, err = a.api.AddMenuMeal(ctx, menu.ID, mealID, slot)
			if err != nil {
				return err
			}
			a.printMenu(menu, false)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "menu day (YYYY-MM-DD, today when empty)")
	cmd.Flags().Int64Var(&mealID, "meal", 0, "catalog meal id")
	cmd.Flags().StringVar(&slot, "slot", models.SlotLunch, "breakfast, lunch, dinner or snack")
	cmd.Flags().IntVar(&target, "target", 0, "daily calorie target (kept when 0)")
	_ = cmd.MarkFlagRequired("meal")
	return cmd
}

func (a *app) printMenu(menu *models.Menu, today bool) {
	title := menu.MenuDate
	if today {
		title = a.t(i18n.TodayMenu)
	}
	fmt.Fprintln(a.out, title)
	if len(menu.Items) == 0 {
		fmt.Fprintln(a.out, a.t(i18n.NoData))
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for _, s := range slotOrder {
		for _, item := range menu.Items {
			if item.Slot != s.slot || item.Meal == nil {
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%d kcal\n", a.t(s.label), item.Meal.Name, item.Meal.Calories)
		}
	}
	w.Flush()

	fmt.Fprintf(a.out, "%s: %d", a.t(i18n.TotalCalories), menu.Totals.Calories)
	if menu.TargetCalories > 0 {
		fmt.Fprintf(a.out, " / %s %d", a.t(i18n.TargetCalories), menu.TargetCalories)
	}
	fmt.Fprintf(a.out, "\n%s %.0fg  %s %.0fg  %s %.0fg\n",
		a.t(i18n.ProteinLabel), menu.Totals.ProteinG,
		a.t(i18n.CarbsLabel), menu.Totals.CarbsG,
		a.t(i18n.FatLabel), menu.Totals.FatG,
	)
}

// parseDay returns the zero time for an empty value.
func parseDay(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	day, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must use YYYY-MM-DD: %w", err)
	}
	return day, nil
}
