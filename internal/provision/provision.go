// Package provision implements the pre-installation provisioning sequence
// for the Stalwart JMAP server package: a dedicated service account, the
// data and configuration directory trees, and restrictive ownership on the
// data tree. The sequence runs against a small host capability interface
// so the ordering and failure contract can be tested without touching the
// machine.
package provision

import (
	"errors"
	"fmt"
	"os"

	"github.com/stalwartlabs/stalwart-provision/internal/common"
	"github.com/stalwartlabs/stalwart-provision/internal/system"
)

// Identifiers the package manager contract fixes. These must match what
// the server package and its systemd unit expect.
const (
	// AccountName is the service account that owns all server state.
	AccountName = "stalwart-jmap"

	// AccountShell disables interactive login on the service account.
	AccountShell = "/sbin/nologin"

	// DataDir holds message store and index data.
	DataDir = "/var/lib/stalwart-jmap"

	// ConfigRoot holds server configuration.
	ConfigRoot = "/etc/stalwart-jmap"

	// CertsDir holds TLS certificates.
	CertsDir = ConfigRoot + "/certs"

	// PrivateDir holds private key material.
	PrivateDir = ConfigRoot + "/private"

	// DataDirMode restricts the data tree to the service account and its
	// group; others get nothing.
	DataDirMode os.FileMode = 0o770
)

// System is the host capability surface the sequence runs against.
// CreateAccount must report a name collision by wrapping
// system.ErrUserExists; SetOwnerRecursive must report an unresolvable
// account by wrapping system.ErrUnknownUser.
type System interface {
	CreateAccount(name, shell string, createHome bool) error
	EnsureDirectory(path string) error
	SetOwnerRecursive(path, owner, group string) error
	SetModeRecursive(path string, mode os.FileMode) error
}

// Reporter receives step progress. ui.UI satisfies it.
type Reporter interface {
	Infof(format string, args ...interface{})
	Successf(format string, args ...interface{})
}

type nopReporter struct{}

func (nopReporter) Infof(string, ...interface{})    {}
func (nopReporter) Successf(string, ...interface{}) {}

// Options control deliberate deviations from the original hook contract.
type Options struct {
	// EnsureAccount treats a pre-existing service account as success
	// instead of aborting. Off by default: the packaging contract is that
	// a duplicate account fails the installation.
	EnsureAccount bool
}

// Provisioner runs the fixed provisioning plan.
type Provisioner struct {
	sys      System
	opts     Options
	reporter Reporter
}

// New creates a Provisioner. A nil reporter is allowed.
func New(sys System, opts Options, reporter Reporter) *Provisioner {
	if reporter == nil {
		reporter = nopReporter{}
	}
	return &Provisioner{
		sys:      sys,
		opts:     opts,
		reporter: reporter,
	}
}

// ConfigDirs returns the configuration subdirectories the hook creates,
// in creation order.
func ConfigDirs() []string {
	return []string{CertsDir, PrivateDir}
}

// Run executes the provisioning steps in strict order and stops at the
// first failure. No rollback is attempted: state created by earlier steps
// is left in place and the error is surfaced to the package manager.
func (p *Provisioner) Run() error {
	if err := validateIdentifiers(); err != nil {
		return err
	}

	steps := []struct {
		name string
		fn   func() error
	}{
		{"create service account", p.createAccount},
		{"create data directory", p.createDataDir},
		{"create configuration directories", p.createConfigDirs},
		{"restrict data directory", p.restrictDataDir},
	}

	for _, step := range steps {
		p.reporter.Infof("Step: %s", step.name)
		if err := step.fn(); err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
		p.reporter.Successf("%s", step.name)
	}

	return nil
}

func (p *Provisioner) createAccount() error {
	err := p.sys.CreateAccount(AccountName, AccountShell, false)
	if err == nil {
		return nil
	}

	if p.opts.EnsureAccount && errors.Is(err, system.ErrUserExists) {
		p.reporter.Infof("Account %s already exists, continuing (ensure mode)", AccountName)
		return nil
	}

	return err
}

func (p *Provisioner) createDataDir() error {
	return p.sys.EnsureDirectory(DataDir)
}

func (p *Provisioner) createConfigDirs() error {
	for _, dir := range ConfigDirs() {
		if err := p.sys.EnsureDirectory(dir); err != nil {
			return err
		}
	}
	return nil
}

func (p *Provisioner) restrictDataDir() error {
	if err := p.sys.SetOwnerRecursive(DataDir, AccountName, AccountName); err != nil {
		return err
	}
	return p.sys.SetModeRecursive(DataDir, DataDirMode)
}

// validateIdentifiers guards the fixed identifiers so an edit to the
// constants fails loudly instead of producing a half-provisioned host.
func validateIdentifiers() error {
	if err := common.ValidateUsername(AccountName); err != nil {
		return fmt.Errorf("invalid service account name: %w", err)
	}

	paths := append([]string{DataDir}, ConfigDirs()...)
	for _, path := range paths {
		if err := common.ValidatePath(path); err != nil {
			return fmt.Errorf("invalid provisioning path: %w", err)
		}
	}

	return nil
}
