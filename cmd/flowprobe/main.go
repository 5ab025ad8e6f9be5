// Package main provides the flowprobe scenario executor for CI/CD use. It
// drives headless browser scenarios against a running web application and
// exits non-zero when any scenario fails or errors.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gobwas/glob"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/entrhq/flowprobe/pkg/browser"
	appconfig "github.com/entrhq/flowprobe/pkg/config"
	"github.com/entrhq/flowprobe/pkg/logging"
	"github.com/entrhq/flowprobe/pkg/report"
	"github.com/entrhq/flowprobe/pkg/runner"
	"github.com/entrhq/flowprobe/pkg/scenario"
)

const version = "0.1.0"

// cliOptions holds command-line configuration.
type cliOptions struct {
	ConfigFile   string
	ScenarioFile string
	RunFilter    string
	BaseURL      string
	Headless     bool
	Parallelism  int
	JSONOutput   bool
	ShowVersion  bool
}

func main() {
	opts := parseFlags()

	if opts.ShowVersion {
		fmt.Printf("flowprobe v%s\n", version)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nshutting down gracefully...")
		cancel()
	}()

	code, err := run(ctx, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "flowprobe: %v\n", err)
		os.Exit(1)
	}
	os.Exit(code)
}

func parseFlags() cliOptions {
	var opts cliOptions
	flag.StringVar(&opts.ConfigFile, "config", "", "Path to YAML config file")
	flag.StringVar(&opts.ScenarioFile, "scenarios", "", "Path to YAML scenario file (default: built-in catalog)")
	flag.StringVar(&opts.RunFilter, "run", "", "Glob pattern selecting scenarios by name (e.g. '*sign*')")
	flag.StringVar(&opts.BaseURL, "base-url", "", "Target application base URL (overrides config)")
	flag.BoolVar(&opts.Headless, "headless", true, "Run the browser headless")
	flag.IntVar(&opts.Parallelism, "parallel", 0, "Number of scenarios to run concurrently (overrides config)")
	flag.BoolVar(&opts.JSONOutput, "json", false, "Emit outcomes as JSON instead of text")
	flag.BoolVar(&opts.ShowVersion, "version", false, "Show version and exit")
	flag.Parse()
	return opts
}

func run(ctx context.Context, opts cliOptions) (int, error) {
	// Env files lose to real environment variables, which lose to flags.
	_ = godotenv.Load()

	cfg, err := appconfig.Load(opts.ConfigFile)
	if err != nil {
		return 1, err
	}
	cfg.ApplyEnv()
	setFlags := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })
	applyFlagOverrides(&cfg, opts, setFlags)
	if err := cfg.Validate(); err != nil {
		return 1, err
	}

	log, logErr := logging.NewLogger("flowprobe")
	if logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", logErr)
	}
	defer log.Close()

	scenarios, err := loadScenarios(opts)
	if err != nil {
		return 1, err
	}
	scenarios, err = filterScenarios(scenarios, opts.RunFilter)
	if err != nil {
		return 1, err
	}
	if len(scenarios) == 0 {
		return 1, fmt.Errorf("no scenarios match filter %q", opts.RunFilter)
	}

	manager := browser.NewManager(cfg.BrowserConfig(), log)
	if err := manager.Initialize(); err != nil {
		return 1, fmt.Errorf("failed to initialize browser engine: %w", err)
	}
	defer func() {
		if err := manager.Shutdown(); err != nil {
			log.Warnf("engine shutdown: %v", err)
		}
	}()

	defaults := cfg.RunnerDefaults()
	scenarioRunner := runner.NewScenarioRunner(
		manager,
		runner.NewStepExecutor(cfg.BaseURL, defaults, runner.NewFallbackNavigator(log), log),
		runner.NewEvaluator(defaults, log),
		log,
	)

	summary := report.NewSummary()
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(cfg.Parallelism)

	for _, sc := range scenarios {
		sc := sc
		group.Go(func() error {
			// Each run owns its own session; outcomes carry all failure
			// detail, so the group itself never errors.
			summary.Add(scenarioRunner.Run(groupCtx, sc))
			return nil
		})
	}
	_ = group.Wait()

	if opts.JSONOutput {
		if err := summary.WriteJSON(os.Stdout); err != nil {
			return 1, err
		}
	} else {
		if err := summary.WriteText(os.Stdout); err != nil {
			return 1, err
		}
	}
	return summary.ExitCode(), nil
}

func applyFlagOverrides(cfg *appconfig.Config, opts cliOptions, set map[string]bool) {
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	if opts.Parallelism > 0 {
		cfg.Parallelism = opts.Parallelism
	}
	// The flag default must not clobber file or env settings; only an
	// explicitly passed -headless wins.
	if set["headless"] {
		cfg.Headless = opts.Headless
	}
}

func loadScenarios(opts cliOptions) ([]scenario.Scenario, error) {
	if opts.ScenarioFile == "" {
		return scenario.Catalog(), nil
	}
	return scenario.Load(opts.ScenarioFile)
}

func filterScenarios(scenarios []scenario.Scenario, pattern string) ([]scenario.Scenario, error) {
	if pattern == "" {
		return scenarios, nil
	}
	matcher, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid -run pattern %q: %w", pattern, err)
	}

	var selected []scenario.Scenario
	for _, sc := range scenarios {
		if matcher.Match(sc.Name) {
			selected = append(selected, sc)
		}
	}
	return selected, nil
}
