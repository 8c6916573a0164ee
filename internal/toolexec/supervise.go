package toolexec

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"xreal-launch/internal/logger"
)

// Process is a handle to a spawned child the launcher is supervising.
type Process interface {
	// Wait blocks until the child exits.
	Wait() error

	// Signal delivers sig to the child's whole process group.
	Signal(sig os.Signal) error
}

// Supervisor spawns long-running services (monado-service, the Stardust
// server and its clients) as detached children. The vr and stardust modes
// then block on the children so the foreground session stays alive, the way
// the original shell launcher used job control and `wait`.
type Supervisor interface {
	// Spawn starts prog with args, appending extraEnv ("KEY=VALUE" pairs)
	// to the launcher's own environment.
	Spawn(prog string, args []string, extraEnv []string) (Process, error)
}

// ExecSupervisor is the real Supervisor backed by os/exec.
type ExecSupervisor struct{}

type child struct {
	cmd *exec.Cmd
}

func (ExecSupervisor) Spawn(prog string, args []string, extraEnv []string) (Process, error) {
	cmd := exec.Command(prog, args...)
	cmd.Env = append(os.Environ(), extraEnv...)
	// Services talk to the same terminal as the launcher.
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	// Own process group, so a relayed signal reaches the service and any
	// helpers it forks, without the terminal delivering SIGINT to it twice.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", prog, err)
	}
	logger.Debug("[DEBUG] Spawned %s (pid %d)\n", prog, cmd.Process.Pid)
	return &child{cmd: cmd}, nil
}

func (c *child) Wait() error {
	return c.cmd.Wait()
}

func (c *child) Signal(sig os.Signal) error {
	s, ok := sig.(syscall.Signal)
	if !ok {
		return c.cmd.Process.Signal(sig)
	}
	// Negative pid targets the process group.
	return syscall.Kill(-c.cmd.Process.Pid, s)
}

// RelaySignals forwards SIGINT and SIGTERM received by the launcher to the
// given children, reproducing the shell's job-control behaviour where Ctrl-C
// tears down the whole mode session. The returned stop function unregisters
// the relay.
func RelaySignals(procs ...Process) (stop func()) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case sig := <-sigs:
				logger.Debug("[DEBUG] Relaying %v to %d child(ren)\n", sig, len(procs))
				for _, p := range procs {
					if err := p.Signal(sig); err != nil {
						logger.Debug("[DEBUG] Signal relay: %v\n", err)
					}
				}
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}

// WaitAll blocks until every child has exited and returns the first error
// seen. Children that exit non-zero after receiving a relayed signal are the
// normal shutdown path, so callers generally log the error rather than fail.
func WaitAll(procs ...Process) error {
	var first error
	for _, p := range procs {
		if err := p.Wait(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
