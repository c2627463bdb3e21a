// Package cmd implements gitgud-server's command-line surface.
//
// A cobra root command carrying persistent flags, environment-variable
// fallbacks, and a single Execute() entrypoint main.go calls.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gitgud-server",
	Short: "A Git Smart HTTP transport server",
	Long: `gitgud-server serves the Git Smart HTTP protocol: reference
advertisement, upload-pack (fetch/clone), and receive-pack (push) over
plain HTTP, backed by an in-memory repository store.

Configuration can be provided via flags or environment variables:
  - GITGUD_ADDR:      listen address (default ":8080")
  - GITGUD_REALM:     Basic-auth realm advertised on 401 responses
  - GITGUD_TOKEN:     push token, checked as the HTTP Basic auth password
  - GITGUD_USERNAME + GITGUD_PASSWORD: push credentials via Basic auth`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
