// Package cli implements the leefit terminal client. Each dashboard tab of
// the app is a subcommand; remote reads go through resource loaders and the
// onboarding questionnaire runs the survey flow interactively.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/baomythoi/leefit/internal/apiclient"
	"github.com/baomythoi/leefit/internal/config"
	"github.com/baomythoi/leefit/internal/i18n"
	"github.com/baomythoi/leefit/internal/resource"
	"github.com/baomythoi/leefit/internal/session"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var errNotLoggedIn = errors.New("not logged in, run `leefit login` first")

type app struct {
	cfg    config.ClientConfig
	lang   i18n.Language
	api    *apiclient.Client
	store  session.Store
	logger zerolog.Logger
	in     *bufio.Reader
	out    io.Writer
}

// NewRootCmd builds the leefit command tree. Flags override cfg.
func NewRootCmd(cfg config.ClientConfig) *cobra.Command {
	a := &app{}
	var (
		apiURL      = cfg.APIURL
		lang        = cfg.Language
		sessionFile = cfg.SessionFile
	)

	rootCmd := &cobra.Command{
		Use:           "leefit",
		Short:         "LeeFit fitness coaching in your terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := i18n.ParseLanguage(lang)
			if err != nil {
				return err
			}
			if sessionFile == "" {
				if sessionFile, err = session.DefaultPath(); err != nil {
					return err
				}
			}

			a.cfg = cfg
			a.cfg.APIURL = strings.TrimRight(apiURL, "/")
			a.lang = parsed
			a.api = apiclient.New(a.cfg.APIURL, apiclient.WithTimeout(cfg.HTTPTimeout))
			a.store = session.NewFileStore(sessionFile)
			a.in = bufio.NewReader(cmd.InOrStdin())
			a.out = cmd.OutOrStdout()
			a.logger = zerolog.Nop()
			if cfg.Debug {
				a.logger = log.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", apiURL, "REST API base URL")
	rootCmd.PersistentFlags().StringVar(&lang, "lang", lang, "interface language (vi or en)")
	rootCmd.PersistentFlags().StringVar(&sessionFile, "session", sessionFile, "session file (defaults to the user config dir)")

	rootCmd.AddCommand(
		registerCmd(a),
		loginCmd(a),
		logoutCmd(a),
		surveyCmd(a),
		scheduleCmd(a),
		mealsCmd(a),
		progressCmd(a),
		profileCmd(a),
		trainersCmd(a),
		paymentsCmd(a),
	)
	return rootCmd
}

func (a *app) t(key i18n.Key) string {
	return i18n.T(a.lang, key)
}

// authed returns ctx carrying the saved session.
func (a *app) authed(ctx context.Context) (context.Context, error) {
	s, err := a.store.Load()
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return nil, errNotLoggedIn
		}
		return nil, err
	}
	return session.NewContext(ctx, s), nil
}

// fetch runs call through a resource loader, printing the loading line
// while the request is in flight. A failure returns call's own error so
// callers can inspect it.
func fetch[T any](ctx context.Context, a *app, name string, call func(ctx context.Context) (T, error)) (T, error) {
	var callErr error
	track := func(ctx context.Context) (T, error) {
		data, err := call(ctx)
		callErr = err
		return data, err
	}
	loader := resource.New(resource.FromCall(track),
		resource.WithName(name),
		resource.WithLogger(a.logger),
	)
	unsubscribe := loader.Subscribe(func(s resource.State[T]) {
		if s.Loading {
			fmt.Fprintln(a.out, a.t(i18n.Loading))
		}
	})
	defer unsubscribe()

	state := loader.Load(ctx)
	if state.Failed() {
		var zero T
		if callErr != nil {
			return zero, callErr
		}
		return zero, errors.New(state.Error)
	}
	return state.Value(), nil
}

func (a *app) prompt(label string) (string, error) {
	fmt.Fprintf(a.out, "%s: ", label)
	line, err := a.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (a *app) success(format string, args ...any) {
	fmt.Fprintf(a.out, "✓ %s\n", fmt.Sprintf(format, args...))
}

func (a *app) warn(format string, args ...any) {
	fmt.Fprintf(a.out, "⚠ %s\n", fmt.Sprintf(format, args...))
}
