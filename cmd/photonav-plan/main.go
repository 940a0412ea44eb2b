// Command photonav-plan is an interactive, terminal-based stand-in for
// original_source/simulator.py's Tk grid editor: it prompts for a robot
// pose and a set of obstacles, runs the planner in-process, and renders
// the resulting command stream and leg costs as a table.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"go.viam.com/photonav/config"
	"go.viam.com/photonav/logging"
	"go.viam.com/photonav/server"
)

type obstacleEntry struct {
	id, x, y, dir string
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "photonav-plan",
		Short: "Interactively plan a tour of obstacles and print the command stream",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}
}

func run() error {
	cfg := config.Default()

	robotX := strconv.Itoa(cfg.RobotStartX)
	robotY := strconv.Itoa(cfg.RobotStartY)
	robotDir := cfg.RobotStartDir

	if err := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Robot start X").Value(&robotX),
		huh.NewInput().Title("Robot start Y").Value(&robotY),
		huh.NewSelect[string]().Title("Robot facing").
			Options(huh.NewOptions("N", "E", "S", "W")...).
			Value(&robotDir),
	)).Run(); err != nil {
		return err
	}

	var obstacles []obstacleEntry
	for {
		var addMore bool
		entry := obstacleEntry{id: strconv.Itoa(len(obstacles) + 1)}
		if err := huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("Obstacle id").Value(&entry.id),
			huh.NewInput().Title("Obstacle X").Value(&entry.x),
			huh.NewInput().Title("Obstacle Y").Value(&entry.y),
			huh.NewSelect[string]().Title("Obstacle faces").
				Options(huh.NewOptions("N", "E", "S", "W")...).
				Value(&entry.dir),
		)).Run(); err != nil {
			return err
		}
		obstacles = append(obstacles, entry)

		if err := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().Title("Add another obstacle?").Value(&addMore),
		)).Run(); err != nil {
			return err
		}
		if !addMore {
			break
		}
	}

	req, err := buildRequest(robotX, robotY, robotDir, obstacles)
	if err != nil {
		return err
	}

	logger := logging.NewLogger("photonav-plan", zapcore.InfoLevel)
	result, err := server.Plan(context.Background(), cfg, req, logger)
	if err != nil {
		color.New(color.FgRed, color.Bold).Println("planning failed:", err)
		return nil
	}

	renderResult(result)
	return nil
}

func buildRequest(robotX, robotY, robotDir string, obstacles []obstacleEntry) (server.Request, error) {
	x, err := strconv.Atoi(robotX)
	if err != nil {
		return server.Request{}, fmt.Errorf("robot X must be an integer: %w", err)
	}
	y, err := strconv.Atoi(robotY)
	if err != nil {
		return server.Request{}, fmt.Errorf("robot Y must be an integer: %w", err)
	}

	obstacleWires := make([]server.ObstacleWire, 0, len(obstacles))
	for _, o := range obstacles {
		ox, err := strconv.Atoi(o.x)
		if err != nil {
			return server.Request{}, fmt.Errorf("obstacle %s X must be an integer: %w", o.id, err)
		}
		oy, err := strconv.Atoi(o.y)
		if err != nil {
			return server.Request{}, fmt.Errorf("obstacle %s Y must be an integer: %w", o.id, err)
		}
		var wireID server.WireID
		idJSON, _ := jsonQuote(o.id)
		if err := wireID.UnmarshalJSON(idJSON); err != nil {
			return server.Request{}, err
		}
		obstacleWires = append(obstacleWires, server.ObstacleWire{ID: wireID, X: ox, Y: oy, Dir: o.dir})
	}

	return server.Request{
		Type: "START_TASK",
		Data: server.RequestData{
			Task:      "EXPLORATION",
			Robot:     server.RobotWire{ID: "R", X: x, Y: y, Dir: robotDir},
			Obstacles: obstacleWires,
			Extended:  true,
		},
	}, nil
}

// jsonQuote renders raw as a JSON value, trying a bare integer first so
// numeric obstacle ids round-trip as numbers rather than strings.
func jsonQuote(raw string) ([]byte, error) {
	if _, err := strconv.Atoi(raw); err == nil {
		return []byte(raw), nil
	}
	return []byte(strconv.Quote(raw)), nil
}

func renderResult(result server.PlanResult) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"#", "Token"})
	snap := color.New(color.FgGreen, color.Bold)
	for i, tok := range result.Tokens {
		rendered := tok
		if len(tok) >= 4 && tok[:4] == "SNAP" {
			rendered = snap.Sprint(tok)
		}
		t.AppendRow(table.Row{i + 1, rendered})
	}
	t.Render()

	legs := table.NewWriter()
	legs.SetOutputMirror(os.Stdout)
	legs.AppendHeader(table.Row{"Obstacle", "Cost", "Candidate"})
	for _, leg := range result.Tour.Legs {
		legs.AppendRow(table.Row{leg.ObstacleID, leg.Cost, leg.Candidate.String()})
	}
	legs.AppendFooter(table.Row{"total", result.Tour.TotalCost, ""})
	legs.Render()
}
