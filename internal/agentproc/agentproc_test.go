package agentproc

import (
	"context"
	"io"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jedna-game/jedna"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// newEchoAgent starts an agent that replies "pass" to exactly one request_action line, then exits.
func newEchoAgent(t *testing.T) *AgentProcess {
	t.Helper()
	a := New(testLogger(), "sh", "-c", `read line; echo '{"action":"pass"}'`)
	if err := a.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	return a
}

func TestRequestActionRoundTrip(t *testing.T) {
	a := newEchoAgent(t)
	defer a.Stop("", nil)

	view := jedna.ActionRequestView{YourID: "P1", TopCard: "r5"}
	resp, err := a.RequestAction(context.Background(), view, 2*time.Second)
	if err != nil {
		t.Fatalf("RequestAction failed: %v", err)
	}
	if resp.Action != "pass" {
		t.Fatalf("expected action \"pass\", got %q", resp.Action)
	}
}

func TestRequestActionTimeout(t *testing.T) {
	a := New(testLogger(), "sh", "-c", "sleep 5")
	if err := a.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer a.Stop("", nil)

	view := jedna.ActionRequestView{YourID: "P1"}
	_, err := a.RequestAction(context.Background(), view, 50*time.Millisecond)
	if err == nil {
		t.Fatalf("expected a timeout error")
	}
	if _, ok := err.(*TimeoutError); !ok {
		t.Fatalf("expected *TimeoutError, got %T: %v", err, err)
	}
}

func TestRequestActionClosedOutput(t *testing.T) {
	a := New(testLogger(), "sh", "-c", "read line; exit 0")
	if err := a.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer a.Stop("", nil)

	view := jedna.ActionRequestView{YourID: "P1"}
	_, err := a.RequestAction(context.Background(), view, 2*time.Second)
	if err == nil {
		t.Fatalf("expected an error when the agent closes stdout without replying")
	}
	if _, ok := err.(*AgentError); !ok {
		t.Fatalf("expected *AgentError, got %T: %v", err, err)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	a := newEchoAgent(t)

	view := jedna.ActionRequestView{YourID: "P1"}
	if _, err := a.RequestAction(context.Background(), view, 2*time.Second); err != nil {
		t.Fatalf("RequestAction failed: %v", err)
	}

	if err := a.Stop("P1", map[jedna.PlayerID]int{"P1": 30}); err != nil {
		t.Fatalf("first Stop failed: %v", err)
	}
	if err := a.Stop("P1", map[jedna.PlayerID]int{"P1": 30}); err != nil {
		t.Fatalf("second Stop should be a no-op, got: %v", err)
	}
}

// Stop must send the game_end envelope even when called without a prior
// RequestAction, per §4.5 ("attempt graceful shutdown by sending a
// game_end envelope; then close pipes").
func TestStopSendsGameEndEnvelope(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "jedna-stop-*.json")
	if err != nil {
		t.Fatalf("CreateTemp failed: %v", err)
	}
	f.Close()

	a := New(testLogger(), "sh", "-c", "cat > "+f.Name())
	if err := a.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if err := a.Stop("P1", map[jedna.PlayerID]int{"P1": 30, "P2": 0}); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	contents, err := os.ReadFile(f.Name())
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(contents), `"type":"game_end"`) {
		t.Fatalf("expected a game_end envelope on the agent's stdin, got %q", contents)
	}
	if !strings.Contains(string(contents), `"winner":"P1"`) {
		t.Fatalf("expected the envelope to name the winner, got %q", contents)
	}
}
