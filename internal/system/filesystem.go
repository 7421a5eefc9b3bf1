package system

import (
	"fmt"
	"io/fs"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"syscall"
)

// FileSystem handles file system operations. The provisioning hook runs
// with root privilege, so operations use direct syscalls rather than
// shelling out through a privilege helper.
type FileSystem struct{}

// NewFileSystem creates a new FileSystem instance
func NewFileSystem() *FileSystem {
	return &FileSystem{}
}

// EnsureDirectory creates a directory, including missing parents.
// If the directory already exists, it does nothing. A pre-existing
// non-directory entry at the path is reported as ErrNotADirectory.
func (f *FileSystem) EnsureDirectory(path string) error {
	if info, err := os.Stat(path); err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%s: %w", path, ErrNotADirectory)
		}
		// Directory exists, nothing to do
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check directory %s: %w", path, err)
	}

	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}

	return nil
}

// ChownRecursive changes the owner and group of a directory tree.
// Symlinks have their own ownership changed and are not followed,
// matching chown -R.
func (f *FileSystem) ChownRecursive(path, owner, group string) error {
	uid, gid, err := resolveOwner(owner, group)
	if err != nil {
		return err
	}

	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := os.Lchown(p, uid, gid); err != nil {
			return fmt.Errorf("failed to chown %s: %w", p, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to chown %s to %s:%s: %w", path, owner, group, err)
	}

	return nil
}

// ChmodRecursive changes permission bits on a directory tree. Symlinks
// are skipped, matching chmod -R.
func (f *FileSystem) ChmodRecursive(path string, mode os.FileMode) error {
	err := filepath.WalkDir(path, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		if err := os.Chmod(p, mode); err != nil {
			return fmt.Errorf("failed to chmod %s: %w", p, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to chmod %s to %o: %w", path, mode, err)
	}

	return nil
}

// DirectoryExists checks if a directory exists
func (f *FileSystem) DirectoryExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err == nil {
		return info.IsDir(), nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check if directory exists %s: %w", path, err)
}

// GetOwner returns the numeric owner (uid, gid) of a file or directory.
func (f *FileSystem) GetOwner(path string) (int, int, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, 0, fmt.Errorf("failed to get stat info for %s: not a Unix filesystem", path)
	}

	return int(stat.Uid), int(stat.Gid), nil
}

// GetPermissions returns the permission bits of a file or directory.
func (f *FileSystem) GetPermissions(path string) (os.FileMode, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	return info.Mode().Perm(), nil
}

// resolveOwner maps an owner and group name to numeric IDs. Unresolvable
// names are reported as ErrUnknownUser so callers can distinguish a
// missing service account from an I/O failure.
func resolveOwner(owner, group string) (int, int, error) {
	u, err := user.Lookup(owner)
	if err != nil {
		if _, ok := err.(user.UnknownUserError); ok {
			return 0, 0, fmt.Errorf("owner %s: %w", owner, ErrUnknownUser)
		}
		return 0, 0, fmt.Errorf("failed to lookup user %s: %w", owner, err)
	}

	g, err := user.LookupGroup(group)
	if err != nil {
		if _, ok := err.(user.UnknownGroupError); ok {
			return 0, 0, fmt.Errorf("group %s: %w", group, ErrUnknownUser)
		}
		return 0, 0, fmt.Errorf("failed to lookup group %s: %w", group, err)
	}

	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid UID for %s: %w", owner, err)
	}

	gid, err := strconv.Atoi(g.Gid)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid GID for %s: %w", group, err)
	}

	return uid, gid, nil
}
