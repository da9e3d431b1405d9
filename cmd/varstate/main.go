package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/tailored-agentic-units/varstate/interchange"
	"github.com/tailored-agentic-units/varstate/observability"
	"github.com/tailored-agentic-units/varstate/state"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to load .env: %v", err)
	}

	var (
		configFile  = flag.String("config", os.Getenv("VARSTATE_CONFIG"), "Path to state config YAML file (default $VARSTATE_CONFIG)")
		initFile    = flag.String("init", "", "Path to YAML mapping of initial variables (required)")
		updatesFile = flag.String("updates", "", "Path to YAML stream of partial updates (default stdin)")
		strict      = flag.Bool("strict", false, "Reject updates naming unknown variables")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging to stderr")
	)
	flag.Parse()

	if *initFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: varstate -init <file> [-updates <file>]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg := state.DefaultConfig()
	if *configFile != "" {
		loaded, err := state.LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = *loaded
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	observability.RegisterObserver("slog", observability.NewSlogObserver(logger))

	vars, order, err := loadInitial(*initFile)
	if err != nil {
		log.Fatalf("Failed to load initial state: %v", err)
	}

	s, err := state.NewFromConfig(cfg, vars, state.WithOrder(order...))
	if err != nil {
		log.Fatalf("Failed to create state: %v", err)
	}

	var updates io.Reader = os.Stdin
	if *updatesFile != "" {
		f, err := os.Open(*updatesFile)
		if err != nil {
			log.Fatalf("Failed to open updates: %v", err)
		}
		defer f.Close()
		updates = f
	}

	err = forEachPartial(updates, func(partial map[string]any) error {
		return applyUpdate(os.Stdout, s, partial, *strict)
	})
	if err != nil {
		log.Fatalf("Update failed: %v", err)
	}

	fmt.Println("\nFinal State:")
	for _, key := range s.Keys() {
		fmt.Printf("  %s = %v\n", key, s.GetVar(key))
	}
}

func applyUpdate(w io.Writer, s *state.State, partial map[string]any, strict bool) error {
	var report state.Report
	if strict {
		var err error
		if report, err = s.SetStrict(partial); err != nil {
			return err
		}
	} else {
		report = s.Set(partial)
	}

	data, err := interchange.MarshalReportJSON(report)
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
