package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/akulij/zkparser/internal/config"
	"github.com/akulij/zkparser/internal/estimate"
	"github.com/akulij/zkparser/internal/logger"
	"github.com/akulij/zkparser/internal/network"
	"github.com/akulij/zkparser/internal/report"
	"github.com/akulij/zkparser/internal/scraper"
)

const (
	ExitSuccess     = 0
	ExitError       = 1
	ExitUnavailable = 2
)

// ErrUnavailable is returned when the page holds no complete report
var ErrUnavailable = errors.New("report unavailable")

// app holds the flags and the clients built from them for one invocation
type app struct {
	wallet  string
	code    string
	format  string
	sort    string
	verbose bool

	cfg     config.Config
	log     *logger.Logger
	metrics *logger.Metrics
	scraper *scraper.Scraper
	parser  *report.Parser
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "zkparser",
		Short: "Check wallet airdrop eligibility reports",
		Long: `A CLI tool to read wallet reports from the 10kdrop checker.
Fetches the report page of a wallet for one network and prints the parsed
values, or "report unavailable" when the page does not hold a full report.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.PersistentFlags().StringVar(&a.wallet, "wallet", "", "Wallet address (required)")
	cmd.PersistentFlags().StringVar(&a.code, "code", "", "Checker access code")
	cmd.PersistentFlags().StringVar(&a.format, "format", "text", "Output format: text, json or yaml")
	cmd.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "Enable debug logging and print metrics")

	cmd.AddCommand(
		a.newURLCmd(),
		a.newFetchCmd(),
		a.newReportCmd(),
		a.newEstimateCmd(),
		a.newAllCmd(),
	)
	return cmd
}

func (a *app) newURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "url <network>",
		Short:     "Print the checker URL for a network",
		Args:      cobra.ExactArgs(1),
		ValidArgs: networkNames(),
		RunE: a.wrap(func(cmd *cobra.Command, args []string) error {
			n, err := network.Parse(args[0])
			if err != nil {
				return err
			}
			url, err := network.URLFor(a.cfg.BaseURL, a.wallet, a.code, n)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		}),
	}
}

func (a *app) newFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "fetch <network>",
		Short:     "Print the raw report page for a network",
		Args:      cobra.ExactArgs(1),
		ValidArgs: networkNames(),
		RunE: a.wrap(func(cmd *cobra.Command, args []string) error {
			n, err := network.Parse(args[0])
			if err != nil {
				return err
			}
			page, err := a.scraper.Fetch(cmd.Context(), a.wallet, a.code, n)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), page)
			return err
		}),
	}
}

func (a *app) newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "report <kind>",
		Short:     "Print a parsed wallet report",
		Long:      "Print a parsed wallet report. Kinds: " + strings.Join(kindNames(), ", "),
		Args:      cobra.ExactArgs(1),
		ValidArgs: kindNames(),
		RunE: a.wrap(func(cmd *cobra.Command, args []string) error {
			kind, err := report.ParseKind(args[0])
			if err != nil {
				return err
			}
			rep, err := a.parser.Report(cmd.Context(), kind, a.wallet, a.code)
			if err != nil {
				return err
			}
			if rep == nil {
				fmt.Fprintln(cmd.OutOrStdout(), ErrUnavailable.Error())
				return ErrUnavailable
			}
			return WriteOutput(cmd.OutOrStdout(), string(kind), rep, OutputFormat(a.format))
		}),
	}
}

// EstimateResult is the output of the estimate command
type EstimateResult struct {
	Wallet   string `json:"wallet" yaml:"wallet"`
	Activity int    `json:"activity_score" yaml:"activity_score"`
	Reach    int    `json:"reach_score" yaml:"reach_score"`
	Low      int    `json:"low" yaml:"low"`
	High     int    `json:"high" yaml:"high"`
}

func (a *app) newEstimateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the zkSync reward range from one ERA page",
		Args:  cobra.NoArgs,
		RunE: a.wrap(func(cmd *cobra.Command, _ []string) error {
			era, lite, err := a.parser.EraAndLite(cmd.Context(), a.wallet, a.code)
			if err != nil {
				return err
			}
			if era == nil || lite == nil {
				fmt.Fprintln(cmd.OutOrStdout(), ErrUnavailable.Error())
				return ErrUnavailable
			}
			activity, reach := estimate.Scores(era, lite)
			rng := estimate.Lookup(activity, reach)
			return WriteOutput(cmd.OutOrStdout(), "estimate", &EstimateResult{
				Wallet:   a.wallet,
				Activity: activity,
				Reach:    reach,
				Low:      rng.Low,
				High:     rng.High,
			}, OutputFormat(a.format))
		}),
	}
}

func (a *app) newAllCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "all",
		Short: "Print the report of every network",
		Args:  cobra.NoArgs,
		RunE: a.wrap(func(cmd *cobra.Command, _ []string) error {
			results, err := a.fetchAll(cmd.Context())
			if err != nil {
				return err
			}
			sortResults(results, SortOrder(a.sort))
			return WriteResults(cmd.OutOrStdout(), results, OutputFormat(a.format))
		}),
	}
	cmd.Flags().StringVar(&a.sort, "sort", string(SortByKind), "Sort order: kind or available")
	return cmd
}

// fetchAll fetches one report per network concurrently
func (a *app) fetchAll(ctx context.Context) ([]Result, error) {
	kinds := report.PrimaryKinds()
	results := make([]Result, len(kinds))

	g, ctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		g.Go(func() error {
			rep, err := a.parser.Report(ctx, kind, a.wallet, a.code)
			if err != nil {
				return fmt.Errorf("%s report: %w", kind, err)
			}
			results[i] = Result{Kind: kind, Available: rep != nil, Report: rep}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// wrap sets up the clients before run and releases them afterwards
func (a *app) wrap(run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		if err := a.setup(cmd); err != nil {
			return err
		}
		defer func() {
			if ferr := a.finish(cmd); err == nil {
				err = ferr
			}
		}()
		return run(cmd, args)
	}
}

func (a *app) setup(cmd *cobra.Command) error {
	if strings.TrimSpace(a.wallet) == "" {
		return fmt.Errorf("--wallet is required")
	}

	a.format = strings.ToLower(a.format)
	switch OutputFormat(a.format) {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("invalid format: %s (must be 'text', 'json' or 'yaml')", a.format)
	}
	switch SortOrder(a.sort) {
	case "", SortByKind, SortByAvailability:
	default:
		return fmt.Errorf("invalid sort order: %s (must be 'kind' or 'available')", a.sort)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.cfg = cfg

	level := logger.ParseLevel(cfg.LogLevel)
	if a.verbose {
		level = logger.LevelDebug
	}
	a.log = logger.New(level, cmd.ErrOrStderr())
	a.log.SetFormat(logger.Format(cfg.LogFormat))
	a.metrics = logger.NewMetrics()

	a.scraper = scraper.New(scraper.Options{
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		UserAgent: cfg.UserAgent,
		Retry: scraper.RetryPolicy{
			MaxAttempts: cfg.MaxAttempts,
			Wait:        cfg.RetryWait,
		},
		Logger:  a.log,
		Metrics: a.metrics,
	})
	a.parser = report.NewParser(a.scraper, a.log, a.metrics)
	return nil
}

// finish releases the client and, with --verbose, prints the metrics
func (a *app) finish(cmd *cobra.Command) error {
	a.scraper.Close()
	if !a.verbose {
		return nil
	}
	if _, err := a.metrics.Snapshot().WriteTo(cmd.ErrOrStderr()); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	return nil
}

func networkNames() []string {
	all := network.All()
	names := make([]string, len(all))
	for i, n := range all {
		names[i] = strings.ToLower(n.String())
	}
	return names
}

func kindNames() []string {
	kinds := report.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return names
}

// Execute runs the CLI
func Execute() {
	err := NewRootCmd().Execute()
	switch {
	case err == nil:
		os.Exit(ExitSuccess)
	case errors.Is(err, ErrUnavailable):
		os.Exit(ExitUnavailable)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
