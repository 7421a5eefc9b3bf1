package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stalwartlabs/stalwart-provision/internal/provision"
	"github.com/stalwartlabs/stalwart-provision/internal/system"
	"github.com/stalwartlabs/stalwart-provision/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show provisioning status",
	Long: `Inspect the host without modifying it: whether the service account
exists, whether the data and configuration directories exist, and whether
the data directory carries the expected ownership and permissions.

Exits 0 if the host is fully provisioned, non-zero otherwise.`,
	Args: cobra.NoArgs,
	RunE: showStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func showStatus(cmd *cobra.Command, args []string) error {
	out := ui.New()
	fs := system.NewFileSystem()
	runner := system.NewCommandRunner()

	out.Header("Stalwart JMAP Provisioning Status")

	provisioned := true

	// Service account
	exists, err := system.UserExists(provision.AccountName)
	if err != nil {
		return err
	}
	if exists {
		uid, err := system.GetUID(provision.AccountName)
		if err != nil {
			return err
		}
		gid, err := system.GetGID(provision.AccountName)
		if err != nil {
			return err
		}
		out.Successf("Account %s exists (UID: %d, GID: %d)", provision.AccountName, uid, gid)

		shell, err := system.GetUserShell(runner, provision.AccountName)
		if err != nil {
			out.Warningf("Could not read login shell: %v", err)
		} else if shell == provision.AccountShell {
			out.Successf("Login shell is %s", shell)
		} else {
			out.Warningf("Login shell is %s, expected %s", shell, provision.AccountShell)
			provisioned = false
		}
	} else {
		out.Errorf("Account %s does not exist", provision.AccountName)
		provisioned = false
	}

	// Directories
	dirs := append([]string{provision.DataDir}, provision.ConfigDirs()...)
	for _, dir := range dirs {
		dirExists, err := fs.DirectoryExists(dir)
		if err != nil {
			return err
		}
		if dirExists {
			out.Successf("Directory %s exists", dir)
		} else {
			out.Errorf("Directory %s is missing", dir)
			provisioned = false
		}
	}

	// Data directory ownership and mode
	if exists {
		if ok, err := checkDataDirRestrictions(out, fs); err != nil {
			return err
		} else if !ok {
			provisioned = false
		}
	}

	out.Print("")
	out.Separator()

	if !provisioned {
		return fmt.Errorf("host is not fully provisioned")
	}

	out.Success("Host is fully provisioned")
	return nil
}

// checkDataDirRestrictions verifies ownership and mode on the data
// directory itself. It reports rather than fails when the directory is
// absent; that was already counted above.
func checkDataDirRestrictions(out *ui.UI, fs *system.FileSystem) (bool, error) {
	dirExists, err := fs.DirectoryExists(provision.DataDir)
	if err != nil {
		return false, err
	}
	if !dirExists {
		return false, nil
	}

	wantUID, err := system.GetUID(provision.AccountName)
	if err != nil {
		return false, err
	}
	wantGID, err := system.GetGID(provision.AccountName)
	if err != nil {
		return false, err
	}

	ok := true

	uid, gid, err := fs.GetOwner(provision.DataDir)
	if err != nil {
		return false, err
	}
	if uid == wantUID && gid == wantGID {
		out.Successf("%s is owned by %s:%s", provision.DataDir, provision.AccountName, provision.AccountName)
	} else {
		out.Errorf("%s is owned by %d:%d, expected %d:%d", provision.DataDir, uid, gid, wantUID, wantGID)
		ok = false
	}

	mode, err := fs.GetPermissions(provision.DataDir)
	if err != nil {
		return false, err
	}
	if mode == provision.DataDirMode {
		out.Successf("%s has mode %o", provision.DataDir, mode)
	} else {
		out.Errorf("%s has mode %o, expected %o", provision.DataDir, mode, provision.DataDirMode)
		ok = false
	}

	return ok, nil
}
