package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/garrettladley/wellness/internal/config"
)

var migrationDirs = map[config.Driver]string{
	config.DriverSQLite:   filepath.Join("internal", "migrations", "sql"),
	config.DriverPostgres: filepath.Join("internal", "migrations", "postgres", "sql"),
}

var migrationName = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

func newMigrationCmd() *cobra.Command {
	var driver string

	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a new migration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if !migrationName.MatchString(name) {
				return fmt.Errorf("invalid migration name %q: use lower snake_case", name)
			}

			dir, ok := migrationDirs[config.Driver(driver)]
			if !ok {
				return fmt.Errorf("invalid driver %q (valid: postgres, sqlite)", driver)
			}

			entries, err := os.ReadDir(dir)
			if err != nil {
				return fmt.Errorf("failed to read migrations directory: %w", err)
			}

			nextNum := getNextMigrationNum(entries)
			filename := filepath.Join(dir, fmt.Sprintf("%06d_%s.sql", nextNum, name))

			if _, err := os.Stat(filename); err == nil {
				return fmt.Errorf("migration file already exists: %s", filename)
			}

			content := fmt.Sprintf("-- Migration: %s\n\n", name)
			if err := os.WriteFile(filename, []byte(content), 0o600); err != nil {
				return fmt.Errorf("failed to create migration file: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created migration: %s\n", filename)
			return nil
		},
	}
	cmd.Flags().StringVar(&driver, "driver", string(config.DriverSQLite), "migration set to extend (postgres or sqlite)")
	return cmd
}

func getNextMigrationNum(entries []os.DirEntry) int {
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return nextMigrationNum(names)
}

// nextMigrationNum returns one past the highest numeric prefix among the .sql
// names. Files without a numeric prefix are ignored.
func nextMigrationNum(names []string) int {
	var nextNum int
	for _, name := range names {
		if !strings.HasSuffix(name, ".sql") {
			continue
		}
		prefix, _, _ := strings.Cut(name, "_")
		var num int
		if _, err := fmt.Sscanf(prefix, "%d", &num); err != nil {
			continue
		}
		if num > nextNum {
			nextNum = num
		}
	}
	return nextNum + 1
}
