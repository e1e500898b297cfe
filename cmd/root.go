package cmd

import (
	"fmt"
	"os"

	"ipam-migrator/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "ipam-migrator",
	Short: "phpIPAM to NetBox migration tool",
	Long: `ipam-migrator copies routing domains, VLAN groups, VLANs, prefixes, and
IP addresses from a phpIPAM instance into NetBox. It is idempotent: every
record is checked by natural key before creation, so interrupted runs can
simply be started again.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Use the application's standard logger for error reporting
		// We default to console format to match user expectations (CLI tool)
		// We use "debug" level configuration to get ISO8601 timestamps (DevConfig) instead of Epoch (ProdConfig)
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			// Log the error with structured logger (Console encoding will make it pretty)
			l.Error("command failed", zap.Error(err))
			l.Info("you can safely re-run the command - existing items are skipped")
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
