package protocol

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestWriterWriteEnvelopeAddsNewline(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	if err := w.WriteEnvelope(map[string]string{"type": "notification", "message": "hi"}); err != nil {
		t.Fatalf("WriteEnvelope failed: %v", err)
	}

	if !strings.HasSuffix(buf.String(), "\n") {
		t.Fatalf("expected a trailing newline, got %q", buf.String())
	}
	if strings.Count(buf.String(), "\n") != 1 {
		t.Fatalf("expected exactly one line, got %q", buf.String())
	}
}

func TestReaderReadResponseDecodesOneLinePerCall(t *testing.T) {
	input := `{"action":"play","card":"r5"}` + "\n" + `{"action":"pass"}` + "\n"
	r := NewReader(strings.NewReader(input))

	first, err := r.ReadResponse()
	if err != nil {
		t.Fatalf("ReadResponse failed: %v", err)
	}
	if first.Action != ActionPlay || first.Card != "r5" {
		t.Fatalf("unexpected first response: %+v", first)
	}

	second, err := r.ReadResponse()
	if err != nil {
		t.Fatalf("ReadResponse failed: %v", err)
	}
	if second.Action != ActionPass {
		t.Fatalf("unexpected second response: %+v", second)
	}
}

func TestReaderReadResponseClosedOutput(t *testing.T) {
	r := NewReader(strings.NewReader(""))
	if _, err := r.ReadResponse(); !errors.Is(err, ErrClosedOutput) {
		t.Fatalf("expected ErrClosedOutput, got %v", err)
	}
}

func TestReaderReadResponseInvalidJSON(t *testing.T) {
	r := NewReader(strings.NewReader("not json\n"))
	if _, err := r.ReadResponse(); err == nil {
		t.Fatalf("expected an error decoding malformed JSON")
	}
}

func cardIsWildFixture(notation string) (bool, error) {
	switch notation {
	case "r5", "b5":
		return false, nil
	case "w", "wd4":
		return true, nil
	default:
		return false, errors.New("unknown card in fixture")
	}
}

func TestValidateResponsePlayRequiresWildColorOnlyForWild(t *testing.T) {
	if err := ValidateResponse(AgentResponse{Action: ActionPlay, Card: "r5"}, cardIsWildFixture); err != nil {
		t.Fatalf("unexpected error for a non-wild play: %v", err)
	}
	if err := ValidateResponse(AgentResponse{Action: ActionPlay, Card: "r5", WildColor: "red"}, cardIsWildFixture); err == nil {
		t.Fatalf("expected an error: wild_color forbidden for a non-wild card")
	}
	if err := ValidateResponse(AgentResponse{Action: ActionPlay, Card: "w"}, cardIsWildFixture); err == nil {
		t.Fatalf("expected an error: wild_color required for a wild card")
	}
	if err := ValidateResponse(AgentResponse{Action: ActionPlay, Card: "w", WildColor: "blue"}, cardIsWildFixture); err != nil {
		t.Fatalf("unexpected error for a valid wild play: %v", err)
	}
}

func TestValidateResponseDrawAndPassForbidCardFields(t *testing.T) {
	if err := ValidateResponse(AgentResponse{Action: ActionDraw}, cardIsWildFixture); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateResponse(AgentResponse{Action: ActionPass, Card: "r5"}, cardIsWildFixture); err == nil {
		t.Fatalf("expected an error: pass must not carry a card")
	}
}

func TestValidateResponseRejectsUnknownAction(t *testing.T) {
	if err := ValidateResponse(AgentResponse{Action: "resign"}, cardIsWildFixture); err == nil {
		t.Fatalf("expected an error for an unrecognized action")
	}
}
