package common

import (
	"fmt"
	"path/filepath"
)

// ValidatePath validates that a path is absolute
func ValidatePath(path string) error {
	if !filepath.IsAbs(path) {
		return fmt.Errorf("path must be absolute: %s", path)
	}
	return nil
}

// ValidateUsername validates a Unix username
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	// Basic username validation (alphanumeric, underscore, hyphen, must start with letter or underscore)
	if len(username) > 32 {
		return fmt.Errorf("username too long (max 32 characters): %s", username)
	}

	firstChar := username[0]
	if !((firstChar >= 'a' && firstChar <= 'z') || (firstChar >= 'A' && firstChar <= 'Z') || firstChar == '_') {
		return fmt.Errorf("username must start with a letter or underscore: %s", username)
	}

	for _, c := range username {
		if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' || c == '-') {
			return fmt.Errorf("username contains invalid character: %s", username)
		}
	}

	return nil
}
