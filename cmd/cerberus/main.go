package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cerberus-dev/cerberus/internal/interfaces/cli/admin"
	"github.com/cerberus-dev/cerberus/internal/interfaces/cli/migrate"
	"github.com/cerberus-dev/cerberus/internal/interfaces/cli/server"
	"github.com/cerberus-dev/cerberus/internal/interfaces/cli/worker"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cerberus",
		Short: "Cerberus Dev back office",
		Long:  `Cerberus runs the back office API, database migrations, account administration and one-off background jobs.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		admin.NewCommand(),
		worker.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
