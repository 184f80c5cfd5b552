// Researchbot is an autonomous research assistant: given a topic, it drives a
// language model through a bounded loop of web searches, page fetches, and
// note-taking until a report is produced or the iteration budget runs out.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"

	"github.com/researchbot/researchbot/internal/agent"
	"github.com/researchbot/researchbot/internal/config"
	"github.com/researchbot/researchbot/internal/fetch"
	"github.com/researchbot/researchbot/internal/registry"
	"github.com/researchbot/researchbot/internal/store"
	"github.com/researchbot/researchbot/internal/tools"

	// Side-effect registration of the default LLM client and search provider.
	_ "github.com/researchbot/researchbot/internal/openrouter"
	_ "github.com/researchbot/researchbot/internal/search"
)

const (
	exitOK        = 0
	exitError     = 1
	exitInterrupt = 130
)

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()

	var (
		model     = flag.String("model", "", "model id override (default from config)")
		maxIter   = flag.Int("max-iterations", 0, "iteration cap override (default from config)")
		output    = flag.String("output", "", "save the report to a file")
		configDir = flag.String("config-dir", "", "config directory override")
	)
	flag.StringVar(output, "o", "", "save the report to a file (shorthand)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <topic>\n\nFlags:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	topic := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if topic == "" {
		flag.Usage()
		return exitError
	}

	cfg := config.New(*configDir)
	if *model != "" {
		cfg.Model = *model
	}
	if *maxIter > 0 {
		cfg.MaxIterations = *maxIter
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return exitError
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	clientFactory, ok := registry.GetClientFactory("default")
	if !ok {
		fmt.Fprintln(os.Stderr, "error: no LLM client registered")
		return exitError
	}
	client, err := clientFactory(cfg.OpenRouterAPIKey, cfg.Model, cfg.Temperature)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitError
	}

	searchFactory, ok := registry.GetSearchFactory(cfg.SearchProvider)
	if !ok {
		fmt.Fprintf(os.Stderr, "error: unknown search provider %q\n", cfg.SearchProvider)
		return exitError
	}
	searcher, err := searchFactory(cfg.MaxSearchResults)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitError
	}

	// Session archive is best-effort: a missing or broken DB never stops a run.
	var db *store.DB
	if cfg.DBPath != "" {
		if err := os.MkdirAll(cfg.ConfigDir, 0o755); err == nil {
			if d, err := store.Open(ctx, cfg.DBPath); err != nil {
				log.Printf("[STORE] Open failed (%v); continuing without persistence", err)
			} else {
				db = d
				defer db.Close()
			}
		}
	}

	executor := tools.NewExecutor(searcher, fetch.NewHTTP())
	executor.MaxOutputRunes = cfg.ToolOutputMaxRunes

	report, err := agent.New(cfg, client, executor, db).Research(ctx, topic)
	if ctx.Err() != nil {
		fmt.Fprintln(os.Stderr, "\nResearch interrupted")
		return exitInterrupt
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitError
	}

	fmt.Println(report)

	if *output != "" {
		if err := os.WriteFile(*output, []byte(report), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "error: saving report: %v\n", err)
			return exitError
		}
		log.Printf("[MAIN] Report saved to %s", *output)
	}
	return exitOK
}
