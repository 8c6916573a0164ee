// Package toolexec is the launcher's uniform interface to the external
// control surfaces it drives: the XR driver CLI, the display-configuration
// tools, the OpenXR runtime service, the Stardust server, and Steam.
//
// The original launcher was a shell script that suppressed every tool failure
// with `|| true`. This package keeps that permissive policy but makes the two
// interesting failure shapes distinguishable as typed outcomes: the tool is
// not installed at all (ToolMissing) versus the tool ran and exited non-zero
// (CommandFailed). Whether either is fatal is a property of the individual
// invocation, decided by the mode controller.
package toolexec

import (
	"errors"
	"os/exec"
	"strings"

	"xreal-launch/internal/logger"
)

// Status classifies the result of one external tool invocation.
type Status int

const (
	Success Status = iota
	ToolMissing
	CommandFailed
)

func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case ToolMissing:
		return "tool missing"
	case CommandFailed:
		return "command failed"
	default:
		return "unknown"
	}
}

// Invocation describes one external command: what to run and how much its
// failure matters to the mode currently executing. Most invocations are
// best-effort (both fatal flags false) because the underlying hardware tools
// legitimately no-op, e.g. enabling a driver flag that is already enabled.
type Invocation struct {
	Program string
	Args    []string

	// FatalIfMissing aborts the whole mode when Program is not on the PATH.
	// Set only for services a mode cannot run without.
	FatalIfMissing bool

	// FatalIfFailed aborts the mode on a non-zero exit.
	FatalIfFailed bool
}

func (inv Invocation) String() string {
	if len(inv.Args) == 0 {
		return inv.Program
	}
	return inv.Program + " " + strings.Join(inv.Args, " ")
}

// Outcome is the result of executing an Invocation.
type Outcome struct {
	Status   Status
	ExitCode int // meaningful only when Status is CommandFailed
}

// Runner executes external tools. The mode controller and the probers talk to
// tools exclusively through this interface so tests can substitute a fake that
// records invocation order.
type Runner interface {
	// Have reports whether prog resolves on the search path.
	Have(prog string) bool

	// Run executes the invocation and classifies the result. It never
	// returns an error; failure is data.
	Run(inv Invocation) Outcome

	// Output runs prog for its combined output. Used by the probers
	// (lsusb, xrandr --query, xr_driver_cli --status) where the text, not
	// the exit status, is the result.
	Output(prog string, args ...string) (string, error)
}

// ExecRunner is the real Runner backed by os/exec.
type ExecRunner struct{}

func (ExecRunner) Have(prog string) bool {
	_, err := exec.LookPath(prog)
	return err == nil
}

func (ExecRunner) Run(inv Invocation) Outcome {
	if _, err := exec.LookPath(inv.Program); err != nil {
		return Outcome{Status: ToolMissing}
	}

	out, err := exec.Command(inv.Program, inv.Args...).CombinedOutput()
	if err != nil {
		code := 1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		logger.Debug("[DEBUG] %s exited %d: %s\n", inv, code, strings.TrimSpace(string(out)))
		return Outcome{Status: CommandFailed, ExitCode: code}
	}

	logger.Debug("[DEBUG] %s ok\n", inv)
	return Outcome{Status: Success}
}

func (ExecRunner) Output(prog string, args ...string) (string, error) {
	if _, err := exec.LookPath(prog); err != nil {
		return "", err
	}
	out, err := exec.Command(prog, args...).CombinedOutput()
	return string(out), err
}
