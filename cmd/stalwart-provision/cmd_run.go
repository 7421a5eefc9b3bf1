package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stalwartlabs/stalwart-provision/internal/provision"
	"github.com/stalwartlabs/stalwart-provision/internal/system"
	"github.com/stalwartlabs/stalwart-provision/internal/ui"
)

var (
	runYes           bool
	runEnsureAccount bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the provisioning sequence interactively",
	Long: `Run the same provisioning sequence as the preinst hook, with progress
output and a confirmation prompt before the host is modified.

With --ensure-account, a pre-existing stalwart-jmap account is accepted
instead of aborting. This deviates from the packaging contract (where a
duplicate account fails the install) and is intended for operators
re-provisioning a host by hand.`,
	Args: cobra.NoArgs,
	RunE: runProvision,
}

func init() {
	runCmd.Flags().BoolVarP(&runYes, "yes", "y", false, "Skip confirmation prompt")
	runCmd.Flags().BoolVar(&runEnsureAccount, "ensure-account", false, "Treat an existing service account as success")
	rootCmd.AddCommand(runCmd)
}

func runProvision(cmd *cobra.Command, args []string) error {
	out := ui.New()
	if runYes {
		out.SetNonInteractive(true)
	}

	out.Header("Stalwart JMAP Host Provisioning")
	out.Infof("Service account:      %s (shell %s, no home)", provision.AccountName, provision.AccountShell)
	out.Infof("Data directory:       %s (mode %o)", provision.DataDir, provision.DataDirMode)
	for _, dir := range provision.ConfigDirs() {
		out.Infof("Config directory:     %s", dir)
	}
	if runEnsureAccount {
		out.Warning("Ensure mode: an existing service account will not abort the run")
	}
	out.Print("")

	confirm, err := out.PromptYesNo("Provision this host?", true)
	if err != nil {
		return fmt.Errorf("failed to prompt: %w", err)
	}
	if !confirm {
		out.Info("Provisioning cancelled")
		return nil
	}

	host := system.NewHost(system.NewCommandRunner())
	p := provision.New(host, provision.Options{EnsureAccount: runEnsureAccount}, out)

	if err := p.Run(); err != nil {
		return err
	}

	out.Print("")
	out.Separator()
	out.Success("Host provisioned for Stalwart JMAP")
	return nil
}
