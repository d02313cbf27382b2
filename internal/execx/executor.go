// Package execx abstracts external command execution for the release
// pipeline. Every collaborator the pipeline invokes (editor, build tool,
// dependency manager, git) goes through the CommandExecutor interface so
// tests can record and fake invocations without spawning processes.
package execx

import (
	"context"
	"os"
	"os/exec"
)

// CommandExecutor abstracts command execution for testability.
type CommandExecutor interface {
	// Run executes a command in dir and returns combined output.
	Run(ctx context.Context, dir string, name string, args ...string) ([]byte, error)

	// RunInteractive executes a command attached to the current process's
	// stdin, stdout and stderr. Used for steps that need a human at the
	// terminal, such as the manifest editor. It blocks until the process
	// exits; there is deliberately no timeout.
	RunInteractive(ctx context.Context, dir string, name string, args ...string) error
}

// CLICommandExecutor executes commands using os/exec.
type CLICommandExecutor struct{}

// NewCLICommandExecutor creates a new CLI command executor.
func NewCLICommandExecutor() *CLICommandExecutor {
	return &CLICommandExecutor{}
}

// Run executes a command and returns combined output.
func (e *CLICommandExecutor) Run(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// RunInteractive executes a command attached to the operator's terminal.
func (e *CLICommandExecutor) RunInteractive(ctx context.Context, dir string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// LookPath reports whether name resolves to an executable in PATH.
func LookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

var _ CommandExecutor = (*CLICommandExecutor)(nil)
