package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"StockScope/internal/agent"
	"StockScope/internal/collector"
	"StockScope/internal/config"
	"StockScope/internal/scheduler"
	"StockScope/internal/search"
	"StockScope/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] StockScope starting...")

	reseed := flag.Bool("reseed", false, "re-run price population even if the database already has data")
	flag.Parse()

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Open schema store
	st, err := store.Open(cfg.Database.SQLitePath)
	if err != nil {
		log.Fatalf("[FATAL] open store: %v", err)
	}
	defer st.Close()

	// Init fetcher + collector
	var fetcher collector.Fetcher
	resolveNames := false
	if cfg.Data.Source == "yahoo" {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
		resolveNames = true
	} else {
		fetcher = collector.NewSyntheticFetcher(cfg.Data.Seed)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())
	col := collector.NewCollector(fetcher, st, cfg.Data.Symbols, cfg.Data.LookbackDays)
	col.ResolveNames = resolveNames

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Populate on first run (or on demand)
	count, err := st.BarCount()
	if err != nil {
		log.Fatalf("[FATAL] count bars: %v", err)
	}
	if count == 0 || *reseed {
		log.Println("[INFO] populating price data...")
		inserted, err := col.Populate(ctx)
		if err != nil {
			log.Fatalf("[FATAL] populate: %v", err)
		}
		log.Printf("[INFO] population done, %d bars inserted", inserted)
	}

	// Symbol index for the analyst's lookup tool
	stocks, err := st.Stocks()
	if err != nil {
		log.Fatalf("[FATAL] list stocks: %v", err)
	}
	idx, err := search.New(stocks)
	if err != nil {
		log.Fatalf("[FATAL] build symbol index: %v", err)
	}
	defer idx.Close()

	pipeline := agent.New(st, idx,
		cfg.Output.ChartDir, cfg.Output.ReportPath, cfg.OpenAI.Model,
		time.Duration(cfg.Request.TimeoutSeconds)*time.Second, cfg.Request.MaxTurns)

	// One-shot mode: the request is passed as an argument.
	if request := strings.TrimSpace(strings.Join(flag.Args(), " ")); request != "" {
		if _, err := pipeline.Process(ctx, request); err != nil {
			log.Printf("[ERROR] request failed: %v", err)
			os.Exit(1)
		}
		log.Printf("[INFO] report written to %s", cfg.Output.ReportPath)
		return
	}

	// Interactive mode: optional background price refresh + REPL.
	if cfg.Refresh.Cron != "" {
		refresher := scheduler.NewRefresher(ctx, col)
		if err := refresher.Register(cfg.Refresh.Cron); err != nil {
			log.Fatalf("[FATAL] register refresh job: %v", err)
		}
		refresher.Start()
		defer refresher.Stop()
	}

	done := make(chan struct{})
	go repl(ctx, pipeline, cfg, done)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Println("[INFO] shutdown signal received, stopping...")
	case <-done:
	}
	cancel()
	log.Println("[INFO] StockScope stopped")
}

func repl(ctx context.Context, pipeline *agent.Pipeline, cfg *config.Config, done chan<- struct{}) {
	defer close(done)

	fmt.Println("Welcome to the Stock Data Analysis System!")
	fmt.Println("Type 'exit' to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nEnter your query (e.g., 'Show me Apple's stock price trend for the last 6 months'): ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "exit") {
			fmt.Println("Thank you for using the Stock Data Analysis System. Goodbye!")
			return
		}

		fmt.Println("\nProcessing your query. This may take a moment...")
		rep, err := pipeline.Process(ctx, line)
		if err != nil {
			fmt.Printf("Request failed: %v\nSee %s for details.\n", err, cfg.Output.ReportPath)
			continue
		}

		fmt.Printf("\n%s\n", rep.Rationale)
		fmt.Printf("\n%d chart(s) written under %s\n", len(rep.Artifacts), cfg.Output.ChartDir)
		fmt.Printf("Report appended to %s; visualization index at %s\n", cfg.Output.ReportPath, rep.IndexPath)
	}
}
