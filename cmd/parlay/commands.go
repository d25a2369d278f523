package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/randalmurphal/parlay/cohere"
	"github.com/randalmurphal/parlay/email"
	"github.com/randalmurphal/parlay/parallel"
	"github.com/randalmurphal/parlay/reason"
	"github.com/randalmurphal/parlay/tool"
	"github.com/randalmurphal/parlay/workshop"
)

// cmdRun samples a problem, prints per-sample results, votes, and
// optionally fuses.
func cmdRun(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	cfgPath := configFlag(fs)
	problemName := fs.String("problem", "toy", "problem name from the problems file")
	samples := fs.Int("n", 0, "override the problem's sample count")
	fuse := fs.Bool("fuse", false, "force the fusion call even if the config disables it")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(fs, *cfgPath)
	if err != nil {
		return err
	}
	logger := cfg.setupLogger()
	runID := uuid.NewString()
	logger = logger.With("run_id", runID)

	problems, err := workshop.LoadProblems(cfg.Problems)
	if err != nil {
		return err
	}
	problem, err := workshop.Find(problems, *problemName)
	if err != nil {
		return err
	}
	if *samples > 0 {
		problem.Samples = *samples
	}

	client, err := cohere.NewClient(cohere.WithLogger(logger))
	if err != nil {
		return err
	}

	tools, err := resolveTools(cfg, problem)
	if err != nil {
		return err
	}

	var messages []cohere.Message
	if problem.System != "" {
		messages = append(messages, cohere.NewSystemMessage(problem.System))
	}
	messages = append(messages, cohere.NewUserMessage(problem.Prompt))

	req := cohere.ChatRequest{
		Model:       cfg.Model,
		Messages:    messages,
		Temperature: problem.Temperature,
	}

	logger.Info("sampling", "problem", problem.Name, "samples", problem.Samples, "model", cfg.Model)

	var results []parallel.Result
	if len(tools) > 0 {
		results = sampleWithTools(ctx, client, problem.Samples, req, tools, cfg)
	} else {
		results = parallel.ChatN(ctx, client, problem.Samples, req,
			parallel.WithMaxWorkers(cfg.MaxWorkers),
			parallel.WithMaxRetries(cfg.MaxRetries),
			parallel.WithLogger(logger),
		)
	}

	for _, r := range results {
		if r.OK {
			fmt.Printf("[%d] OK: %s\n", r.Index, r.Response.Text())
		} else {
			fmt.Printf("[%d] FAIL: %v\n", r.Index, r.Err)
		}
	}

	extract := reason.DefaultExtract
	if problem.Numeric {
		extract = reason.NumericExtract
	}
	verdict := reason.VoteFunc(results, extract)

	fmt.Printf("\nvote: %q with %d/%d samples (agreement %.0f%%)\n",
		verdict.Answer, len(verdict.Indices), verdict.Samples, verdict.Agreement*100)
	if problem.Expected != "" {
		if verdict.Answer == problem.Expected {
			fmt.Println("vote matches the expected answer")
		} else {
			fmt.Printf("vote differs from expected %q\n", problem.Expected)
		}
	}

	if cfg.Fuse || *fuse {
		resp, err := reason.Fuse(ctx, client, problem.Prompt, results,
			reason.WithFuseModel(cfg.Model))
		if err != nil {
			return fmt.Errorf("fusing candidates: %w", err)
		}
		fmt.Printf("fused: %s\n", resp.Text())
	}

	return nil
}

// sampleWithTools runs each sample through the tool dispatch loop instead
// of a bare chat call.
func sampleWithTools(ctx context.Context, client *cohere.Client, n int, req cohere.ChatRequest, tools []tool.Tool, cfg runConfig) []parallel.Result {
	dispatcher := &dispatchChatter{client: client, tools: tools}
	return parallel.ChatN(ctx, dispatcher, n, req,
		parallel.WithMaxWorkers(cfg.MaxWorkers),
		parallel.WithMaxRetries(cfg.MaxRetries),
	)
}

// dispatchChatter adapts the tool dispatch loop to the Chatter interface so
// ChatN can fan it out.
type dispatchChatter struct {
	client *cohere.Client
	tools  []tool.Tool
}

func (d *dispatchChatter) Chat(ctx context.Context, req cohere.ChatRequest) (*cohere.ChatResponse, error) {
	return tool.Dispatch(ctx, d.client, req, d.tools)
}

// resolveTools loads the corpus and looks up the problem's tools.
func resolveTools(cfg runConfig, problem workshop.Problem) ([]tool.Tool, error) {
	if len(problem.Tools) == 0 {
		return nil, nil
	}

	if !tool.IsRegistered("email_search") {
		store, err := email.LoadStore(cfg.Emails)
		if err != nil {
			return nil, fmt.Errorf("loading email corpus: %w", err)
		}
		tool.Register(email.NewSearchTool(store))
	}

	tools := make([]tool.Tool, 0, len(problem.Tools))
	for _, name := range problem.Tools {
		t, err := tool.Lookup(name)
		if err != nil {
			return nil, err
		}
		tools = append(tools, t)
	}
	return tools, nil
}

// cmdList prints the available problems.
func cmdList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	cfgPath := configFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(fs, *cfgPath)
	if err != nil {
		return err
	}

	problems, err := workshop.LoadProblems(cfg.Problems)
	if err != nil {
		return err
	}

	for _, p := range problems {
		fmt.Printf("%-12s %d samples", p.Name, p.Samples)
		if len(p.Tools) > 0 {
			fmt.Printf(", tools: %v", p.Tools)
		}
		if p.Description != "" {
			fmt.Printf("  - %s", p.Description)
		}
		fmt.Println()
	}
	return nil
}

// cmdTools prints registered tools and their schemas.
func cmdTools(args []string) error {
	fs := flag.NewFlagSet("tools", flag.ContinueOnError)
	cfgPath := configFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(fs, *cfgPath)
	if err != nil {
		return err
	}

	// The email tool registers lazily; make it visible here.
	if !tool.IsRegistered("email_search") {
		if store, err := email.LoadStore(cfg.Emails); err == nil {
			tool.Register(email.NewSearchTool(store))
		}
	}

	for _, t := range tool.Available() {
		spec := t.Spec()
		fmt.Printf("%s: %s\n", spec.Name, spec.Description)

		var pretty map[string]any
		if err := json.Unmarshal(spec.Parameters, &pretty); err == nil {
			out, _ := json.MarshalIndent(pretty, "  ", "  ")
			fmt.Printf("  %s\n", out)
		}
	}
	return nil
}

// cmdSearch runs the email tool directly, bypassing the model.
func cmdSearch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	cfgPath := configFlag(fs)
	query := fs.String("query", "", "search query")
	after := fs.String("after", "", "only emails after this date (YYYY/MM/DD or 7d)")
	before := fs.String("before", "", "only emails before this date (YYYY/MM/DD or 7d)")
	watch := fs.Bool("watch", false, "reload the corpus on changes and re-run the query on Enter")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *query == "" {
		return fmt.Errorf("search: -query is required")
	}

	cfg, err := loadConfig(fs, *cfgPath)
	if err != nil {
		return err
	}
	cfg.setupLogger()

	store, err := email.LoadStore(cfg.Emails)
	if err != nil {
		return err
	}
	if *watch {
		store.Watch(ctx)
	}

	for {
		results, err := store.Search(*query, *after, *before)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("no results")
		}
		for i, e := range results {
			fmt.Printf("%d. %s (%s, %s)\n", i+1, e.Subject, e.Sender, e.ReceivedDate)
		}

		if !*watch {
			return nil
		}
		fmt.Println("\npress Enter to re-run, Ctrl-C to quit")
		buf := make([]byte, 1)
		if _, err := os.Stdin.Read(buf); err != nil {
			return nil
		}
	}
}
