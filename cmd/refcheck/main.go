//go:build !windows

// Command refcheck runs reference-counting and marshalling checks against
// the instrumented stand-in runtime and reports allocations and frees.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/multierr"
	"golang.org/x/term"

	cefbridge "github.com/wippyai/cef-bridge"
)

var (
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#90EE90"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	nameStyle   = lipgloss.NewStyle().Bold(true)
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

func main() {
	var (
		name        = flag.String("scenario", "all", "Scenario to run, or all")
		threads     = flag.Int("threads", 8, "Native threads for threaded scenarios")
		iterations  = flag.Int("iterations", 1000, "Iterations per thread")
		verbose     = flag.Bool("v", false, "Log every wrapped object created and freed")
		list        = flag.Bool("list", false, "List scenarios and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *list {
		for _, s := range scenarios {
			fmt.Printf("  %-12s %s\n", s.name, s.description)
		}
		return
	}

	if *threads < 1 || *iterations < 1 {
		fmt.Fprintln(os.Stderr, "Usage: refcheck [-scenario name|all] [-threads n] [-iterations n] [-v] [-i]")
		os.Exit(1)
	}

	var opts []cefbridge.Option
	if *verbose && !*interactive {
		opts = append(opts, cefbridge.WithDevelopmentLogging())
	}
	if err := cefbridge.Setup(opts...); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	selected, err := selectScenarios(*name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg := runConfig{threads: *threads, iterations: *iterations}

	if *interactive {
		if err := runInteractive(selected, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(selected, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		os.Exit(1)
	}
}

func selectScenarios(name string) ([]scenario, error) {
	if name == "all" {
		return scenarios, nil
	}
	var out []scenario
	for _, n := range strings.Split(name, ",") {
		s, ok := findScenario(strings.TrimSpace(n))
		if !ok {
			return nil, fmt.Errorf("unknown scenario %q (use -list)", n)
		}
		out = append(out, s)
	}
	return out, nil
}

func run(selected []scenario, cfg runConfig) error {
	color := term.IsTerminal(int(os.Stdout.Fd()))
	render := func(st lipgloss.Style, s string) string {
		if !color {
			return s
		}
		return st.Render(s)
	}

	var errs error
	for _, s := range selected {
		r := execute(s, cfg)
		status := render(passStyle, "PASS")
		detail := r.detail
		if r.err == nil && r.live != 0 {
			r.err = fmt.Errorf("%d wrapped objects still live", r.live)
		}
		if r.err != nil {
			status = render(failStyle, "FAIL")
			detail = r.err.Error()
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", r.name, r.err))
		}
		fmt.Printf("%s %s %s\n", status, render(nameStyle, fmt.Sprintf("%-12s", r.name)),
			render(detailStyle, fmt.Sprintf("allocs=%d frees=%d %v  %s", r.allocs, r.frees, r.duration.Round(time.Microsecond), detail)))
	}
	if errs != nil {
		return fmt.Errorf("%d scenario(s) failed:\n%w", len(multierr.Errors(errs)), errs)
	}
	return nil
}
