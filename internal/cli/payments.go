package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/baomythoi/leefit/internal/apiclient"
	"github.com/baomythoi/leefit/internal/i18n"
	"github.com/spf13/cobra"
)

func paymentsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payments",
		Short: "Show your payment history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := a.authed(cmd.Context())
			if err != nil {
				return err
			}
			history, err := fetch(ctx, a, "payments", a.api.Payments)
			if err != nil {
				return err
			}
			a.printPayments(history)
			return nil
		},
	}
	cmd.AddCommand(paymentsAddCmd(a))
	return cmd
}

func paymentsAddCmd(a *app) *cobra.Command {
	var (
		in        apiclient.NewPayment
		sessionID int64
		trainerID int64
		note      string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a payment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := a.authed(cmd.Context())
			if err != nil {
				return err
			}
			if sessionID > 0 {
				in.TrainingSessionID = &sessionID
			}
			if trainerID > 0 {
				in.TrainerID = &trainerID
			}
			if note != "" {
				in.Note = &note
			}

			payment, err := a.api.RecordPayment(ctx, in)
			if err != nil {
				return err
			}
			a.success("#%d %s %s", payment.ID, formatVND(payment.AmountVND), payment.Status)
			return nil
		},
	}
	cmd.Flags().Int64Var(&in.AmountVND, "amount", 0, "amount in VND")
	cmd.Flags().StringVar(&in.Method, "method", "cash", "cash, card, bank_transfer or momo")
	cmd.Flags().StringVar(&in.Status, "status", "", "paid (default) or pending")
	cmd.Flags().Int64Var(&sessionID, "session", 0, "training session id")
	cmd.Flags().Int64Var(&trainerID, "trainer", 0, "trainer id")
	cmd.Flags().StringVar(&note, "note", "", "free-form note")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func (a *app) printPayments(history *apiclient.PaymentHistory) {
	fmt.Fprintln(a.out, a.t(i18n.PaymentHistory))
	if len(history.Payments) == 0 {
		fmt.Fprintln(a.out, a.t(i18n.NoData))
		return
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for _, p := range history.Payments {
		session := "-"
		if p.TrainingSessionID != nil {
			session = "#" + strconv.FormatInt(*p.TrainingSessionID, 10)
		}
		fmt.Fprintf(w, "#%d\t%s\t%s\t%s\t%s\t%s\n",
			p.ID,
			p.PaidAt.Local().Format("2006-01-02"),
			formatVND(p.AmountVND),
			p.Method,
			p.Status,
			session,
		)
	}
	w.Flush()
	fmt.Fprintf(a.out, "%s: %s\n", a.t(i18n.TotalPaid), formatVND(history.TotalPaidVND))
}

// formatVND groups thousands with dots, e.g. 1.250.000 ₫.
func formatVND(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)
	out := make([]byte, 0, len(digits)+len(digits)/3)
	for i := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, digits[i])
	}
	return sign + string(out) + " ₫"
}
