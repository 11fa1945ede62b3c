package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/divwatch/divwatch/internal/history"
	"github.com/divwatch/divwatch/internal/httpserver"
	"github.com/divwatch/divwatch/internal/journal"
	"github.com/divwatch/divwatch/internal/metrics"
	"github.com/divwatch/divwatch/internal/model"
	"github.com/divwatch/divwatch/internal/runner"
	"github.com/divwatch/divwatch/internal/tui"
)

// batchPairs is the fixed operation list processed after the scripted
// probes.
var batchPairs = []runner.Pair{
	{Dividend: 100, Divisor: 5},
	{Dividend: 50, Divisor: 0},
	{Dividend: 81, Divisor: 9},
	{Dividend: -10, Divisor: 2},
	{Dividend: 200, Divisor: 10},
	{Dividend: 7, Divisor: 0},
	{Dividend: 144, Divisor: 12},
	{Dividend: -50, Divisor: -5},
}

// probe is one scripted single-call test run before the batch.
type probe struct {
	title    string
	dividend float64
	divisor  float64
}

var scriptedProbes = []probe{
	{"TEST 1: Division by zero", 10, 0},
	{"TEST 2: Negative operands", -5, 2},
	{"TEST 3: Valid division", 100, 5},
}

// run executes the whole demo sequence. The only error it returns is a
// journal open failure; everything else is routed, tallied, and
// survived.
func run(cfg appConfig) error {
	j, err := journal.Open(cfg.JournalPath)
	if err != nil {
		return err
	}
	// The shutdown entry must be written on every exit path.
	defer j.Close()

	monitor := metrics.NewMonitor(j)

	var store *history.Store
	if cfg.DBPath != "" {
		store, err = history.NewStore(cfg.DBPath)
		if err != nil {
			// History is an optional sidecar; the demo still runs.
			log.Printf("Warning: attempt history disabled: %v", err)
			_ = j.Log(model.LevelWarning, "Attempt history disabled: "+err.Error())
			store = nil
		} else {
			defer store.Close()
		}
	}

	if cfg.APIEnabled {
		var attempts httpserver.AttemptSource
		if store != nil {
			attempts = store
		}
		api := httpserver.NewServer(cfg.APIAddr, monitor, attempts)
		if err := api.Start(); err != nil {
			log.Printf("Warning: failed to start API server: %v", err)
		} else {
			defer api.Stop()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r := runner.New(os.Stdout, os.Stderr, j, monitor)
	r.History = store
	r.Delay = cfg.PaceDelay

	if cfg.Watch {
		return runWatch(ctx, cfg, r, monitor)
	}

	printStartupBanner(cfg)

	for _, p := range scriptedProbes {
		printSection(p.title)
		_ = j.Log(model.LevelInfo, fmt.Sprintf("Attempting to divide %g / %g", p.dividend, p.divisor))
		r.Attempt(p.dividend, p.divisor, "probe")
	}

	printSection("REAL-TIME PROCESSING")
	if err := r.Run(ctx, batchPairs); err != nil {
		// Cancellation still falls through to the final summary.
		fmt.Fprintf(os.Stderr, "Batch interrupted: %v\n", err)
	}

	fmt.Println()
	if err := monitor.ShowMetrics(os.Stdout); err != nil {
		log.Printf("Warning: failed to journal final metrics: %v", err)
	}

	printCompletionBanner(cfg)
	return nil
}

// runWatch runs the same sequence headless while the dashboard
// displays the event feed. The summary prints after the dashboard
// exits.
func runWatch(ctx context.Context, cfg appConfig, r *runner.Runner, monitor *metrics.Monitor) error {
	events := make(chan model.Attempt, 64)
	r.Out = io.Discard
	r.ErrW = io.Discard
	r.Events = events

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(events)
		for _, p := range scriptedProbes {
			r.Attempt(p.dividend, p.divisor, "probe")
		}
		return r.Run(gctx, batchPairs)
	})

	program := tea.NewProgram(tui.NewWatchModel(events), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Printf("Warning: watch dashboard failed: %v", err)
	}

	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "Batch interrupted: %v\n", err)
	}

	if err := monitor.ShowMetrics(os.Stdout); err != nil {
		log.Printf("Warning: failed to journal final metrics: %v", err)
	}
	return nil
}

func printStartupBanner(cfg appConfig) {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	cyan := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	bold := lipgloss.NewStyle().Bold(true)

	check := green.Render("●")
	dot := dim.Render("●")

	logo := cyan.Bold(true).Render(`
    ╔╦╗╦╦  ╦╦ ╦╔═╗╔╦╗╔═╗╦ ╦
     ║║║╚╗╔╝║║║╠═╣ ║ ║  ╠═╣
    ═╩╝╩ ╚╝ ╚╩╝╩ ╩ ╩ ╚═╝╩ ╩`)

	var lines []string
	lines = append(lines, logo)
	lines = append(lines, "    "+dim.Render("v"+version))
	lines = append(lines, "")
	lines = append(lines, bold.Render("    Monitoring & Logging Demo"))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("    %s  Journal    %s", check, dim.Render(cfg.JournalPath)))
	if cfg.DBPath != "" {
		lines = append(lines, fmt.Sprintf("    %s  History    %s", check, dim.Render(cfg.DBPath)))
	} else {
		lines = append(lines, fmt.Sprintf("    %s  History    %s", dot, dim.Render("disabled")))
	}
	if cfg.APIEnabled {
		lines = append(lines, fmt.Sprintf("    %s  HTTP API   %s", check, cyan.Render(cfg.APIAddr)))
	} else {
		lines = append(lines, fmt.Sprintf("    %s  HTTP API   %s", dot, dim.Render("disabled")))
	}
	if cfg.ConfigPath != "" {
		lines = append(lines, fmt.Sprintf("    %s  Config     %s", check, dim.Render(cfg.ConfigPath)))
	} else {
		lines = append(lines, fmt.Sprintf("    %s  Config     %s", dot, dim.Render("default (no file)")))
	}
	lines = append(lines, "")

	fmt.Println(strings.Join(lines, "\n"))
}

func printSection(title string) {
	style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	fmt.Printf("\n--- %s ---\n", style.Render(title))
}

func printCompletionBanner(cfg appConfig) {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

	fmt.Println()
	fmt.Println(green.Render("✓") + " Run complete. Full records in " + dim.Render(cfg.JournalPath))
}
