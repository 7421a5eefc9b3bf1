package main

import (
	"github.com/spf13/cobra"
	"github.com/stalwartlabs/stalwart-provision/internal/provision"
	"github.com/stalwartlabs/stalwart-provision/internal/system"
	"github.com/stalwartlabs/stalwart-provision/internal/ui"
)

var preinstCmd = &cobra.Command{
	Use:   "preinst",
	Short: "Run the package pre-installation hook",
	Long: `Run the provisioning sequence exactly as the package manager invokes it
before unpacking the package payload:

  1. create the stalwart-jmap system account (/sbin/nologin, no home)
  2. create /var/lib/stalwart-jmap
  3. create /etc/stalwart-jmap/certs and /etc/stalwart-jmap/private
  4. chown -R stalwart-jmap:stalwart-jmap and chmod -R 770 the data directory

The sequence stops at the first failure and exits non-zero so the package
manager aborts the installation. A pre-existing stalwart-jmap account is a
failure: the hook expects a clean host. Directory creation is idempotent.

Takes no arguments, reads no configuration, and never prompts.`,
	Args: cobra.NoArgs,
	RunE: runPreinst,
}

func init() {
	rootCmd.AddCommand(preinstCmd)
}

func runPreinst(cmd *cobra.Command, args []string) error {
	out := ui.New()
	out.SetNonInteractive(true)

	host := system.NewHost(system.NewCommandRunner())
	p := provision.New(host, provision.Options{}, out)

	return p.Run()
}
