package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/garrettladley/wellness/internal/config"
	"github.com/garrettladley/wellness/internal/storage"
)

func migrateCmd() *cobra.Command {
	var driver string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := readConfig(driver)
			if err != nil {
				return err
			}

			store, err := storage.Open(cmd.Context(), cfg.Storage)
			if err != nil {
				return err
			}
			defer func() {
				_ = store.Close()
			}()

			fmt.Fprintf(cmd.OutOrStdout(), "Migrations applied successfully (%s)\n", cfg.Storage.Driver)
			return nil
		},
	}
	cmd.Flags().StringVar(&driver, "driver", "", "storage driver (postgres or sqlite); defaults to STORAGE_DRIVER")
	return cmd
}

// readConfig reads the config from the environment. A non-empty driver flag
// takes precedence over STORAGE_DRIVER. The memory driver is rejected since
// nothing it stores outlives the command.
func readConfig(driver string) (config.Config, error) {
	if driver != "" {
		if err := os.Setenv("STORAGE_DRIVER", driver); err != nil {
			return config.Config{}, err
		}
	}
	cfg, err := config.Read()
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	if cfg.Storage.Driver == config.DriverMemory {
		return config.Config{}, errors.New("the memory driver cannot be used from the command line")
	}
	return cfg, nil
}
