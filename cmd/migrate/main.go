package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/baomythoi/leefit/internal/logging"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	logging.Setup(os.Getenv("LOG_LEVEL"), os.Getenv("APP_ENV"))

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found")
	}

	var dir string
	rootCmd := &cobra.Command{
		Use:           "migrate",
		Short:         "Apply LeeFit database migrations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&dir, "dir", "", "migrations directory (searched upwards from the working directory when empty)")

	rootCmd.AddCommand(
		upCmd(&dir),
		downCmd(&dir),
		versionCmd(&dir),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
}

func upCmd(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newMigrator(*dir)
			if err != nil {
				return err
			}
			defer m.Close()

			if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
				return err
			}
			log.Info().Msg("Migration up successful")
			return nil
		},
	}
}

func downCmd(dir *string) *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newMigrator(*dir)
			if err != nil {
				return err
			}
			defer m.Close()

			if steps > 0 {
				err = m.Steps(-steps)
			} else {
				err = m.Down()
			}
			if err != nil && !errors.Is(err, migrate.ErrNoChange) {
				return err
			}
			log.Info().Int("steps", steps).Msg("Migration down successful")
			return nil
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 0, "number of migrations to roll back (all when 0)")

	return cmd
}

func versionCmd(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newMigrator(*dir)
			if err != nil {
				return err
			}
			defer m.Close()

			version, dirty, err := m.Version()
			if errors.Is(err, migrate.ErrNilVersion) {
				fmt.Fprintln(cmd.OutOrStdout(), "no migrations applied")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
			return nil
		},
	}
}

func newMigrator(dir string) (*migrate.Migrate, error) {
	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		return nil, errors.New("DB_URL environment variable is required")
	}

	migrationsPath := dir
	if migrationsPath == "" {
		found, err := findMigrationsDir()
		if err != nil {
			return nil, err
		}
		migrationsPath = found
	}
	absMigrationsPath, err := filepath.Abs(migrationsPath)
	if err != nil {
		return nil, err
	}

	return migrate.New("file://"+absMigrationsPath, dbURL)
}

// findMigrationsDir looks for a migrations directory next to the working
// directory or the executable, walking up a few parents.
func findMigrationsDir() (string, error) {
	var candidates []string

	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, parentCandidates(cwd, 6)...)
	}
	if exePath, err := os.Executable(); err == nil {
		candidates = append(candidates, parentCandidates(filepath.Dir(exePath), 3)...)
	}

	for _, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err == nil && info.IsDir() {
			return candidate, nil
		}
	}
	return "", errors.New("migrations directory not found")
}

func parentCandidates(start string, depth int) []string {
	candidates := make([]string, 0, depth)
	current := start
	for i := 0; i < depth; i++ {
		candidates = append(candidates, filepath.Join(current, "migrations"))
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	return candidates
}
