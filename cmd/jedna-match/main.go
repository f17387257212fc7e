package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jedna-game/jedna"
	"github.com/jedna-game/jedna/internal/agentproc"
	"github.com/jedna-game/jedna/internal/config"
	"github.com/jedna-game/jedna/internal/runner"
)

func main() {
	tableName := flag.String("table-name", "", "if set, engine and runner logs go to /tmp/table_<table-name>_log.txt instead of stderr")
	flag.Parse()

	logger := log.New(os.Stderr, "jedna-match: ", log.LstdFlags)
	if *tableName != "" {
		logger = jedna.NewFileLogger(fmt.Sprintf("table_%s", *tableName))
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	if len(cfg.AgentCommands) < 2 {
		logger.Fatalf("JEDNA_AGENT_COMMANDS must name at least two agent commands, got %d", len(cfg.AgentCommands))
	}

	engine := jedna.NewEngine(logger)

	seats := make([]runner.Seat, len(cfg.AgentCommands))
	for i, command := range cfg.AgentCommands {
		id, err := jedna.ParsePlayerID(playerIDForSeat(i))
		if err != nil {
			logger.Fatalf("failed to build player id for seat %d: %v", i, err)
		}
		seats[i] = runner.Seat{
			ID:      id,
			Process: agentproc.New(logger, command),
		}
	}

	r := runner.New(logger, engine, seats, cfg.TurnTimeout, cfg.GameTimeout)

	scores, err := r.Run(context.Background())
	if err != nil {
		logger.Fatalf("match failed: %v", err)
	}

	for id, score := range scores {
		logger.Printf("%s: %d", id, score)
	}
}

func playerIDForSeat(i int) string {
	names := []string{"north", "east", "south", "west"}
	if i < len(names) {
		return names[i]
	}
	return fmt.Sprintf("player%d", i)
}
