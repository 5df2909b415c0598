package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"diary/internal/config"
	"diary/internal/logger"
)

var (
	cfg *config.Config
	log *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "diaryd",
	Short: "Personal Diary server",
	Long: `diaryd serves the Personal Diary web application: account pages,
the password reset flow and the JSON API for encrypted entries.

Entries are encrypted in the browser before upload; the server never
sees plaintext content.`,
	PersistentPreRun: setup,
	SilenceUsage:     true,
	SilenceErrors:    true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setup(_ *cobra.Command, _ []string) {
	cfg = config.MustLoad()
	log = logger.New(cfg.Env)
}
