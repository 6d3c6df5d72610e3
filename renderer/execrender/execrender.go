// Package execrender renders content by invoking an external command.
//
// Content reaches the command through a scratch input file (or stdin), and
// the artifact comes back through an output file the command must create (or
// captured stdout). Scratch files live in a private temp directory that is
// always removed, so a failed invocation leaves nothing behind.
package execrender

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	// InputToken and OutputToken are replaced in Args with the scratch
	// input and output file paths before the command runs.
	InputToken  = "{input}"
	OutputToken = "{output}"
)

// maxStderr bounds how much trailing stderr is kept for diagnostics.
const maxStderr = 8 << 10

type Config struct {
	// Command is the executable to run (resolved via PATH if not absolute).
	Command string

	// Args are passed to Command after token substitution. When any arg
	// contains OutputToken the command must create that file and exit zero;
	// without it, captured stdout is the artifact.
	Args []string

	// Stdin feeds the content on standard input instead of a scratch file.
	// InputToken must not appear in Args when Stdin is set.
	Stdin bool

	// Dir is the working directory for the command. Empty means inherited.
	Dir string

	// Env replaces the command's environment when non-nil.
	Env []string
}

// Error captures a failed command invocation with enough detail to diagnose
// a broken content block.
type Error struct {
	ExitCode int    // -1 when the process did not run or was killed
	Stderr   string // trailing stderr, capped at maxStderr
	Err      error
}

func (e *Error) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("execrender: %v (exit %d)", e.Err, e.ExitCode)
	}
	return fmt.Sprintf("execrender: %v (exit %d): %s", e.Err, e.ExitCode, e.Stderr)
}

func (e *Error) Unwrap() error { return e.Err }

type Renderer struct {
	cfg        Config
	fileOutput bool
}

func New(cfg Config) (*Renderer, error) {
	if cfg.Command == "" {
		return nil, errors.New("execrender: command is required")
	}
	if cfg.Stdin && hasToken(cfg.Args, InputToken) {
		return nil, errors.New("execrender: {input} token is incompatible with Stdin")
	}
	if !cfg.Stdin && !hasToken(cfg.Args, InputToken) {
		return nil, errors.New("execrender: args must reference {input}, or set Stdin")
	}
	return &Renderer{cfg: cfg, fileOutput: hasToken(cfg.Args, OutputToken)}, nil
}

func (r *Renderer) Render(ctx context.Context, content []byte) ([]byte, error) {
	scratch, err := os.MkdirTemp("", "execrender-*")
	if err != nil {
		return nil, fmt.Errorf("execrender: scratch dir: %w", err)
	}
	defer os.RemoveAll(scratch)

	inputPath := filepath.Join(scratch, "input")
	outputPath := filepath.Join(scratch, "output")

	if !r.cfg.Stdin {
		if err := os.WriteFile(inputPath, content, 0o600); err != nil {
			return nil, fmt.Errorf("execrender: write input: %w", err)
		}
	}

	args := make([]string, len(r.cfg.Args))
	for i, a := range r.cfg.Args {
		a = strings.ReplaceAll(a, InputToken, inputPath)
		a = strings.ReplaceAll(a, OutputToken, outputPath)
		args[i] = a
	}

	cmd := exec.CommandContext(ctx, r.cfg.Command, args...)
	cmd.Dir = r.cfg.Dir
	if r.cfg.Env != nil {
		cmd.Env = r.cfg.Env
	}
	if r.cfg.Stdin {
		cmd.Stdin = bytes.NewReader(content)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	// A deadline or cancellation kills the process; report the context
	// error rather than the opaque "signal: killed" exit status.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, &Error{ExitCode: -1, Stderr: tail(stderr.Bytes()), Err: ctxErr}
	}
	if runErr != nil {
		code := -1
		var xe *exec.ExitError
		if errors.As(runErr, &xe) {
			code = xe.ExitCode()
		}
		return nil, &Error{ExitCode: code, Stderr: tail(stderr.Bytes()), Err: runErr}
	}

	if r.fileOutput {
		out, err := os.ReadFile(outputPath)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, &Error{
					Stderr: tail(stderr.Bytes()),
					Err:    errors.New("command exited zero but produced no output file"),
				}
			}
			return nil, fmt.Errorf("execrender: read output: %w", err)
		}
		return out, nil
	}
	return stdout.Bytes(), nil
}

func hasToken(args []string, token string) bool {
	for _, a := range args {
		if strings.Contains(a, token) {
			return true
		}
	}
	return false
}

func tail(b []byte) string {
	if len(b) > maxStderr {
		b = b[len(b)-maxStderr:]
	}
	return strings.TrimSpace(string(b))
}
