package main

import (
	"context"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/garrettladley/wellness/internal/version"
	"github.com/garrettladley/wellness/internal/xslog"
)

func main() {
	_ = godotenv.Load()

	logger := xslog.NewCLILogger(os.Stderr)
	ctx := xslog.WithLogger(context.Background(), logger)

	rootCmd := &cobra.Command{
		Use:     "wellness",
		Short:   "Offline health analytics",
		Version: version.Read().String(),
	}
	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(bmiCmd())

	if err := fang.Execute(ctx, rootCmd, fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM)); err != nil {
		os.Exit(1)
	}
}
