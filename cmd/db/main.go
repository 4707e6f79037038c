package main

import (
	"context"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/garrettladley/wellness/internal/xslog"
)

func main() {
	_ = godotenv.Load()

	logger := xslog.NewCLILogger(os.Stderr)
	ctx := xslog.WithLogger(context.Background(), logger)

	rootCmd := &cobra.Command{
		Use:   "db",
		Short: "Database management commands",
	}
	rootCmd.AddCommand(newMigrationCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(apiKeyCmd())

	if err := fang.Execute(ctx, rootCmd, fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM)); err != nil {
		os.Exit(1)
	}
}
