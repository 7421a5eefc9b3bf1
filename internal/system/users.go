package system

import (
	"fmt"
	"os/user"
	"strconv"
	"strings"
)

// useradd exits with 9 when the requested name is already taken.
const useraddExitNameInUse = 9

// UserExists checks if a user exists
func UserExists(username string) (bool, error) {
	_, err := user.Lookup(username)
	if err == nil {
		return true, nil
	}

	// Check if it's a "user not found" error
	if _, ok := err.(user.UnknownUserError); ok {
		return false, nil
	}

	// Some other error
	return false, fmt.Errorf("failed to lookup user %s: %w", username, err)
}

// GroupExists checks if a group exists
func GroupExists(groupName string) (bool, error) {
	_, err := user.LookupGroup(groupName)
	if err == nil {
		return true, nil
	}

	// Check if it's a "group not found" error
	if _, ok := err.(user.UnknownGroupError); ok {
		return false, nil
	}

	// Some other error
	return false, fmt.Errorf("failed to lookup group %s: %w", groupName, err)
}

// GetUID returns the UID for a username
func GetUID(username string) (int, error) {
	u, err := user.Lookup(username)
	if err != nil {
		return 0, fmt.Errorf("failed to get UID for %s: %w", username, err)
	}

	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return 0, fmt.Errorf("invalid UID for %s: %w", username, err)
	}

	return uid, nil
}

// GetGID returns the primary GID for a username
func GetGID(username string) (int, error) {
	u, err := user.Lookup(username)
	if err != nil {
		return 0, fmt.Errorf("failed to get GID for %s: %w", username, err)
	}

	gid, err := strconv.Atoi(u.Gid)
	if err != nil {
		return 0, fmt.Errorf("invalid GID for %s: %w", username, err)
	}

	return gid, nil
}

// CreateSystemAccount creates a login-disabled system account via useradd.
// createHome controls whether a home directory is made; service accounts
// pass false. A name collision is reported as ErrUserExists so callers can
// decide whether pre-existence is fatal.
func CreateSystemAccount(runner CommandRunner, username, shell string, createHome bool) error {
	args := []string{"-r", "-s", shell}

	if createHome {
		args = append(args, "-m")
	} else {
		args = append(args, "-M")
	}

	args = append(args, username)

	output, err := runner.Run("useradd", args...)
	if err != nil {
		if ExitCode(err) == useraddExitNameInUse {
			return fmt.Errorf("cannot create user %s: %w", username, ErrUserExists)
		}
		return fmt.Errorf("failed to create user %s: %w\nOutput: %s", username, err, output)
	}

	return nil
}

// GetUserShell returns the login shell for a username, read from the
// passwd database via getent.
func GetUserShell(runner CommandRunner, username string) (string, error) {
	output, err := runner.Run("getent", "passwd", username)
	if err != nil {
		return "", fmt.Errorf("failed to read passwd entry for %s: %w", username, err)
	}

	// passwd format: name:passwd:uid:gid:gecos:home:shell
	fields := strings.Split(strings.TrimSpace(output), ":")
	if len(fields) < 7 {
		return "", fmt.Errorf("malformed passwd entry for %s: %q", username, strings.TrimSpace(output))
	}

	return fields[6], nil
}
