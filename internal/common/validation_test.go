package common

import (
	"strings"
	"testing"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"valid service account", "stalwart-jmap", false},
		{"valid with underscore", "_svc", false},
		{"valid alphanumeric", "mail2", false},
		{"empty", "", true},
		{"starts with digit", "1mail", true},
		{"starts with hyphen", "-mail", true},
		{"contains slash", "mail/svc", true},
		{"contains space", "mail svc", true},
		{"too long", strings.Repeat("a", 33), true},
		{"max length", strings.Repeat("a", 32), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUsername(%q) error = %v, wantErr %v", tt.username, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"absolute data dir", "/var/lib/stalwart-jmap", false},
		{"absolute config dir", "/etc/stalwart-jmap/certs", false},
		{"root", "/", false},
		{"relative", "var/lib/stalwart-jmap", true},
		{"empty", "", true},
		{"dot relative", "./certs", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}
