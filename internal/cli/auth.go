package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/baomythoi/leefit/internal/apiclient"
	"github.com/baomythoi/leefit/internal/i18n"
	"github.com/baomythoi/leefit/internal/models"
	"github.com/baomythoi/leefit/internal/session"
	"github.com/spf13/cobra"
)

func registerCmd(a *app) *cobra.Command {
	var creds apiclient.Credentials

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.signIn(cmd.Context(), &creds, a.api.Register)
		},
	}
	cmd.Flags().StringVar(&creds.Email, "email", "", "account email")
	cmd.Flags().StringVar(&creds.Password, "password", "", "account password (prompted when empty)")
	return cmd
}

func loginCmd(a *app) *cobra.Command {
	var creds apiclient.Credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.signIn(cmd.Context(), &creds, a.api.Login)
		},
	}
	cmd.Flags().StringVar(&creds.Email, "email", "", "account email")
	cmd.Flags().StringVar(&creds.Password, "password", "", "account password (prompted when empty)")
	return cmd
}

func logoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.Clear(); err != nil {
				return err
			}
			a.success("%s", a.t(i18n.Logout))
			return nil
		},
	}
}

type authCall func(ctx context.Context, creds apiclient.Credentials) (*models.AuthResponse, error)

func (a *app) signIn(ctx context.Context, creds *apiclient.Credentials, call authCall) error {
	var err error
	if strings.TrimSpace(creds.Email) == "" {
		if creds.Email, err = a.prompt(a.t(i18n.Email)); err != nil {
			return err
		}
	}
	if creds.Password == "" {
		if creds.Password, err = a.prompt(a.t(i18n.Password)); err != nil {
			return err
		}
	}
	if creds.Email == "" || creds.Password == "" {
		return errors.New("email and password are required")
	}

	resp, err := call(ctx, *creds)
	if err != nil {
		return err
	}
	if err := a.store.Save(session.Session{Token: resp.Token, Email: resp.User.Email}); err != nil {
		return err
	}
	a.success("%s: %s", a.t(i18n.Login), resp.User.Email)
	return nil
}
