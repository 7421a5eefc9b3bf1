package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/stalwartlabs/stalwart-provision/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "stalwart-provision",
	Short: "Stalwart JMAP pre-installation provisioning tool",
	Long: `Provisions a host for the Stalwart JMAP server package.

Before the package payload is unpacked, the host needs a dedicated
login-disabled service account, a data directory, and configuration
directories for certificates and private key material, with the data
directory restricted to the service account.

Subcommands:
  preinst  - run the sequence as the package manager's pre-install hook
  run      - run the sequence interactively with confirmation
  status   - inspect what is already provisioned`,
	SilenceUsage:  true, // We handle errors manually, but silence usage on error
	SilenceErrors: true, // We format errors ourselves for consistent output
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Info())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
