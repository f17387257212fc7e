// Command jedna-console-agent is a human-operated reference agent: it
// speaks the wire protocol over its own stdin/stdout while prompting a
// human for each decision via chzyer/readline, in the style of the
// teacher's Admin.RunREPL.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/jedna-game/jedna/internal/protocol"
)

type envelope struct {
	Type    string                  `json:"type"`
	State   jsonRawOrNil            `json:"state"`
	Message string                  `json:"message"`
	Scores  map[string]int          `json:"scores"`
	Winner  string                  `json:"winner"`
}

type jsonRawOrNil = json.RawMessage

func main() {
	logger := log.New(os.Stderr, "jedna-console-agent: ", 0)

	rl, err := readline.New("jedna> ")
	if err != nil {
		logger.Fatalf("failed to start readline: %v", err)
	}
	defer rl.Close()

	in := bufio.NewScanner(os.Stdin)
	in.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	out := protocol.NewWriter(os.Stdout)

	for in.Scan() {
		var env envelope
		if err := json.Unmarshal(in.Bytes(), &env); err != nil {
			logger.Printf("received malformed envelope: %v", err)
			continue
		}

		switch env.Type {
		case "request_action":
			var view map[string]interface{}
			if err := json.Unmarshal(env.State, &view); err != nil {
				logger.Printf("malformed state in request_action: %v", err)
				continue
			}
			resp := promptForAction(rl, logger, view)
			if err := out.WriteEnvelope(resp); err != nil {
				logger.Fatalf("failed to write response: %v", err)
			}
		case "notification":
			rl.Write([]byte(fmt.Sprintf("\n[notification] %s\n", env.Message)))
		case "error":
			rl.Write([]byte(fmt.Sprintf("\n[error] %s\n", env.Message)))
		case "game_end":
			rl.Write([]byte(fmt.Sprintf("\n[game over] winner=%s scores=%v\n", env.Winner, env.Scores)))
			return
		default:
			logger.Printf("unrecognized envelope type %q", env.Type)
		}
	}
}

// promptForAction renders the view and loops until the human supplies a
// syntactically valid response line.
func promptForAction(rl *readline.Instance, logger *log.Logger, view map[string]interface{}) protocol.AgentResponse {
	rl.Write([]byte(renderView(view)))

	for {
		line, err := rl.Readline()
		if err != nil {
			return protocol.AgentResponse{Action: protocol.ActionPass}
		}

		resp, err := parseLine(strings.TrimSpace(line))
		if err != nil {
			logger.Printf("%v", err)
			continue
		}
		return resp
	}
}

// parseLine accepts "play <card> [<color>] [double]", "draw", or "pass".
func parseLine(line string) (protocol.AgentResponse, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return protocol.AgentResponse{}, fmt.Errorf("empty input, expected play/draw/pass")
	}

	switch fields[0] {
	case "draw":
		return protocol.AgentResponse{Action: protocol.ActionDraw}, nil
	case "pass":
		return protocol.AgentResponse{Action: protocol.ActionPass}, nil
	case "play":
		if len(fields) < 2 {
			return protocol.AgentResponse{}, fmt.Errorf("play requires a card, e.g. \"play r7\"")
		}
		resp := protocol.AgentResponse{Action: protocol.ActionPlay, Card: fields[1]}
		for _, rest := range fields[2:] {
			if rest == "double" {
				resp.DoublePlay = true
				continue
			}
			resp.WildColor = rest
		}
		return resp, nil
	default:
		return protocol.AgentResponse{}, fmt.Errorf("unrecognized command %q, expected play/draw/pass", fields[0])
	}
}

func renderView(view map[string]interface{}) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\ntop card: %v   state: %v   stacked: %v\n", view["top_card"], view["game_state"], view["stacked_cards"])
	fmt.Fprintf(&b, "your hand: %v\n", view["hand"])
	fmt.Fprintf(&b, "available actions: %v   playable: %v\n", view["available_actions"], view["playable_cards"])
	if picked, ok := view["picked_card"]; ok && picked != nil {
		fmt.Fprintf(&b, "picked card: %v\n", picked)
	}
	return b.String()
}
