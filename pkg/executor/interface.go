package executor

import "context"

// Executor runs external commands (git, gh, whisper). The interface exists
// so orchestration code can be tested without touching a real repository or
// transcription tool.
type Executor interface {
	// Execute runs a command and returns its stdout.
	Execute(ctx context.Context, name string, args ...string) (string, error)
	// ExecuteInDir runs a command with the given working directory.
	ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error)
	// LookPath reports where a binary resolves on PATH.
	LookPath(name string) (string, error)
}
