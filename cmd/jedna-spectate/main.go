// Command jedna-spectate renders a live terminal dashboard for a running
// match by polling its spectate HTTP endpoint, in the style of the
// teacher's console and player_client termui dashboards.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"

	"github.com/jedna-game/jedna"
)

var (
	addr         string
	pollInterval time.Duration
)

func init() {
	flag.StringVar(&addr, "addr", "http://127.0.0.1:8080", "base URL of the spectate server")
	flag.DurationVar(&pollInterval, "interval", 500*time.Millisecond, "poll interval")
}

func main() {
	flag.Parse()

	if err := ui.Init(); err != nil {
		log.Fatalf("failed to initialize termui: %v", err)
	}
	defer ui.Close()

	topCard := widgets.NewParagraph()
	topCard.Title = "Top Card / State"

	handCounts := widgets.NewBarChart()
	handCounts.Title = "Hand Counts"
	handCounts.Labels = make([]string, 0, 8)
	handCounts.Data = make([]float64, 0, 8)

	stacked := widgets.NewGauge()
	stacked.Title = "Stacked Cards"
	stacked.BarColor = ui.ColorRed

	grid := ui.NewGrid()
	termWidth, termHeight := ui.TerminalDimensions()
	grid.SetRect(0, 0, termWidth, termHeight)
	grid.Set(
		ui.NewRow(0.1, stacked),
		ui.NewRow(0.9,
			ui.NewCol(0.5, topCard),
			ui.NewCol(0.5, handCounts),
		),
	)

	ui.Render(grid)

	client := &http.Client{Timeout: 2 * time.Second}
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	uiEvents := ui.PollEvents()
	for {
		select {
		case e := <-uiEvents:
			if e.ID == "<C-c>" || e.ID == "q" {
				return
			}
			if e.ID == "<Resize>" {
				payload := e.Payload.(ui.Resize)
				grid.SetRect(0, 0, payload.Width, payload.Height)
				ui.Render(grid)
			}
		case <-ticker.C:
			view, err := fetchState(client, addr)
			if err != nil {
				topCard.Text = "error: " + err.Error()
				ui.Render(grid)
				continue
			}

			topCard.Text = view.TopCard + "\n" + view.GameState
			stacked.Percent = clampPercent(view.StackedCards * 10)

			handCounts.Labels = handCounts.Labels[:0]
			handCounts.Data = handCounts.Data[:0]
			handCounts.Labels = append(handCounts.Labels, string(view.YourID))
			handCounts.Data = append(handCounts.Data, float64(len(view.Hand)))
			for _, other := range view.OtherPlayers {
				handCounts.Labels = append(handCounts.Labels, string(other.ID))
				handCounts.Data = append(handCounts.Data, float64(other.CardCount))
			}

			ui.Render(grid)
		}
	}
}

func fetchState(client *http.Client, addr string) (jedna.ActionRequestView, error) {
	var view jedna.ActionRequestView

	resp, err := client.Get(addr + "/state")
	if err != nil {
		return view, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return view, fmt.Errorf("spectate server: %s", http.StatusText(resp.StatusCode))
	}

	err = json.NewDecoder(resp.Body).Decode(&view)
	return view, err
}

func clampPercent(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
