package system

import (
	"errors"
	"testing"
)

func TestHostCreateAccountRejectsExistingUser(t *testing.T) {
	runner := &fakeRunner{}
	host := NewHost(runner)

	// root always exists, so useradd must never be reached.
	err := host.CreateAccount("root", "/sbin/nologin", false)
	if err == nil {
		t.Fatal("CreateAccount(root) error = nil, want ErrUserExists")
	}
	if !errors.Is(err, ErrUserExists) {
		t.Errorf("CreateAccount(root) error = %v, want ErrUserExists", err)
	}
	if len(runner.commands) != 0 {
		t.Errorf("CreateAccount(root) ran %d commands, want 0", len(runner.commands))
	}
}

func TestHostCreateAccountInvokesUseradd(t *testing.T) {
	runner := &fakeRunner{}
	host := NewHost(runner)

	if err := host.CreateAccount("nonexistent_user_12345_test", "/sbin/nologin", false); err != nil {
		t.Fatalf("CreateAccount() error = %v", err)
	}

	if len(runner.commands) != 1 || runner.commands[0][0] != "useradd" {
		t.Fatalf("CreateAccount() commands = %v, want one useradd invocation", runner.commands)
	}
}

func TestExitCode(t *testing.T) {
	// A real exit status is only obtainable from a real process.
	runner := NewCommandRunner()

	_, err := runner.Run("sh", "-c", "exit 9")
	if err == nil {
		t.Fatal("Run(exit 9) error = nil, want exit error")
	}
	if code := ExitCode(err); code != 9 {
		t.Errorf("ExitCode() = %d, want 9", code)
	}

	if code := ExitCode(nil); code != -1 {
		t.Errorf("ExitCode(nil) = %d, want -1", code)
	}
	if code := ExitCode(errors.New("plain error")); code != -1 {
		t.Errorf("ExitCode(plain) = %d, want -1", code)
	}
}

func TestCreateSystemAccountMapsDuplicateExitCode(t *testing.T) {
	// useradd signals a name collision with exit code 9; reproduce the
	// exit status with a shell since we cannot run useradd in tests.
	_, exit9 := NewCommandRunner().Run("sh", "-c", "exit 9")
	if exit9 == nil {
		t.Fatal("expected an exit error from the shell")
	}

	runner := &fakeRunner{output: "useradd: user 'stalwart-jmap' already exists", err: exit9}

	err := CreateSystemAccount(runner, "stalwart-jmap", "/sbin/nologin", false)
	if !errors.Is(err, ErrUserExists) {
		t.Errorf("CreateSystemAccount() error = %v, want wrapped ErrUserExists", err)
	}
}
