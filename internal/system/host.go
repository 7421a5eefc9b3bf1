// Package system wraps the host facilities the provisioning sequence
// mutates: the user database and the filesystem. Commands that have no
// Go API (useradd, getent) go through CommandRunner so tests can run
// against a fake.
package system

import "os"

// Host exposes the capability surface the provisioning sequence needs.
// It satisfies provision.System.
type Host struct {
	runner CommandRunner
	fs     *FileSystem
}

// NewHost creates a Host backed by the real user database and filesystem.
func NewHost(runner CommandRunner) *Host {
	return &Host{
		runner: runner,
		fs:     NewFileSystem(),
	}
}

// CreateAccount creates a login-disabled system account. Returns an error
// wrapping ErrUserExists if the name is already taken.
func (h *Host) CreateAccount(name, shell string, createHome bool) error {
	exists, err := UserExists(name)
	if err != nil {
		return err
	}
	if exists {
		return ErrUserExists
	}

	return CreateSystemAccount(h.runner, name, shell, createHome)
}

// EnsureDirectory creates a directory tree if absent.
func (h *Host) EnsureDirectory(path string) error {
	return h.fs.EnsureDirectory(path)
}

// SetOwnerRecursive applies owner:group to a directory tree.
func (h *Host) SetOwnerRecursive(path, owner, group string) error {
	return h.fs.ChownRecursive(path, owner, group)
}

// SetModeRecursive applies permission bits to a directory tree.
func (h *Host) SetModeRecursive(path string, mode os.FileMode) error {
	return h.fs.ChmodRecursive(path, mode)
}
