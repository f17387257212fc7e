// Package agentproc manages the lifecycle of a single agent child process,
// per §4.5: spawn, write a request, read a response under a timeout, and
// graceful-then-forced teardown. Adapted from the teacher's HTTP round-trip
// helper (internal/utils.RequestSender.SendWithTimeout) to an os/exec pipe
// round trip.
package agentproc

import (
	"context"
	"io"
	"log"
	"os"
	"os/exec"
	"time"

	"github.com/pkg/errors"

	"github.com/jedna-game/jedna"
	"github.com/jedna-game/jedna/internal/protocol"
)

// TimeoutError is returned by RequestAction when the agent does not reply
// within the given timeout. The process is left running; the caller (the
// runner) decides whether to kill it.
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return "agentproc: agent did not respond within " + e.Timeout.String()
}

// AgentError wraps a non-timeout protocol failure: closed stdout or
// malformed JSON (§4.5).
type AgentError struct {
	Reason string
}

func (e *AgentError) Error() string {
	return "agentproc: " + e.Reason
}

// gracePeriod bounds how long Stop waits for a cooperative exit before
// killing the process.
const gracePeriod = 2 * time.Second

// AgentProcess owns one child process and its stdio pipes.
type AgentProcess struct {
	logger *log.Logger

	cmd     *exec.Cmd
	stdin   io.WriteCloser
	writer  *protocol.Writer
	reader  *protocol.Reader
	running bool
}

// New constructs an AgentProcess that will run command (with args) when
// Start is called.
func New(logger *log.Logger, command string, args ...string) *AgentProcess {
	return &AgentProcess{
		logger: logger,
		cmd:    exec.Command(command, args...),
	}
}

// Start spawns the child process with pipes wired to stdin/stdout/stderr.
// Stderr is inherited so an agent's debug output lands on the harness's own
// stderr, per §6 ("Standard error is reserved for agent debugging").
func (a *AgentProcess) Start() error {
	stdin, err := a.cmd.StdinPipe()
	if err != nil {
		return errors.Wrap(err, "agentproc: open stdin pipe")
	}
	stdout, err := a.cmd.StdoutPipe()
	if err != nil {
		return errors.Wrap(err, "agentproc: open stdout pipe")
	}
	a.cmd.Stderr = os.Stderr

	if err := a.cmd.Start(); err != nil {
		return errors.Wrapf(err, "agentproc: start %q", a.cmd.Path)
	}

	a.stdin = stdin
	a.writer = protocol.NewWriter(stdin)
	a.reader = protocol.NewReader(stdout)
	a.running = true

	a.logger.Printf("started agent process %q (pid %d)", a.cmd.Path, a.cmd.Process.Pid)
	return nil
}

// RequestAction writes a request_action envelope for view and reads the
// agent's reply within timeout. A timeout of zero means no limit.
func (a *AgentProcess) RequestAction(ctx context.Context, view jedna.ActionRequestView, timeout time.Duration) (protocol.AgentResponse, error) {
	var resp protocol.AgentResponse

	if err := a.writer.WriteEnvelope(jedna.NewRequestActionEnvelope(view)); err != nil {
		return resp, errors.Wrap(err, "agentproc: write request_action")
	}

	type result struct {
		resp protocol.AgentResponse
		err  error
	}

	done := make(chan result, 1)
	go func() {
		resp, err := a.reader.ReadResponse()
		done <- result{resp, err}
	}()

	readCtx := ctx
	var cancel context.CancelFunc
	if timeout > 0 {
		readCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	select {
	case r := <-done:
		if r.err != nil {
			if errors.Is(r.err, protocol.ErrClosedOutput) {
				return resp, &AgentError{Reason: "closed output"}
			}
			return resp, &AgentError{Reason: "invalid JSON: " + r.err.Error()}
		}
		return r.resp, nil
	case <-readCtx.Done():
		return resp, &TimeoutError{Timeout: timeout}
	}
}

// Notify best-effort writes a notification/error/game_end envelope,
// ignoring a broken pipe (§4.5).
func (a *AgentProcess) Notify(envelope interface{}) {
	if !a.running {
		return
	}
	if err := a.writer.WriteEnvelope(envelope); err != nil {
		a.logger.Printf("notify: ignoring write error to agent: %v", err)
	}
}

// Stop sends a final game_end envelope, closes stdin, and waits up to a
// bounded grace period before forcibly killing the process (§4.5).
func (a *AgentProcess) Stop(winner jedna.PlayerID, scores map[jedna.PlayerID]int) error {
	if !a.running {
		return nil
	}

	a.Notify(jedna.NewGameEndEnvelope(winner, scores))
	a.running = false

	if a.stdin != nil {
		_ = a.stdin.Close()
	}

	done := make(chan error, 1)
	go func() { done <- a.cmd.Wait() }()

	select {
	case <-done:
		return nil
	case <-time.After(gracePeriod):
		a.logger.Printf("agent %q did not exit within grace period, killing", a.cmd.Path)
		if a.cmd.Process != nil {
			_ = a.cmd.Process.Kill()
		}
		<-done
		return nil
	}
}
