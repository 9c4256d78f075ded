package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vulnverified/sweep/internal/config"
	"github.com/vulnverified/sweep/internal/detector"
	"github.com/vulnverified/sweep/internal/dnsresolver"
	"github.com/vulnverified/sweep/internal/engine"
	"github.com/vulnverified/sweep/internal/output"
	"github.com/vulnverified/sweep/internal/probe"
	"github.com/vulnverified/sweep/internal/recon"
	"github.com/vulnverified/sweep/internal/scanner"
)

// Set via ldflags at build time.
var version = "dev"

const (
	exitClean       = 0
	exitScanFailed  = 1
	exitTakeover    = 2
	exitInterrupted = 130
)

func main() {
	output.Version = version
	os.Exit(run())
}

func run() int {
	var (
		cfgPath     string
		jsonOutput  bool
		noColor     bool
		silent      bool
		verbose     bool
		axfr        bool
		subfinder   bool
		concurrency int
	)

	rootCmd := &cobra.Command{
		Use:     "sweep",
		Short:   "Detect dangling subdomains vulnerable to takeover",
		Version: version,
	}

	takeoverCmd := &cobra.Command{
		Use:   "takeover <domain>",
		Short: "Enumerate subdomains and assess each for takeover risk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			domain := strings.ToLower(strings.TrimSpace(args[0]))
			if domain == "" {
				return fmt.Errorf("domain is required")
			}

			cfg, err := config.Load(cfgPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cmd.Flags().Changed("concurrency") {
				cfg.Concurrency = concurrency
			}
			if cmd.Flags().Changed("axfr") {
				cfg.Enumeration.AXFR = axfr
			}
			if cmd.Flags().Changed("subfinder") {
				cfg.Enumeration.Subfinder = subfinder
			}
			if cmd.Flags().Changed("json") {
				if jsonOutput {
					cfg.Output.Format = "json"
				}
			}
			if cmd.Flags().Changed("no-color") {
				cfg.Output.NoColor = noColor
			}
			if cmd.Flags().Changed("silent") {
				cfg.Output.Quiet = silent
			}
			if cmd.Flags().Changed("verbose") {
				cfg.Output.Debug = verbose
			}
			if _, ok := os.LookupEnv("NO_COLOR"); ok {
				cfg.Output.NoColor = true
			}

			return runTakeover(domain, cfg)
		},
	}

	takeoverCmd.Flags().StringVar(&cfgPath, "config", "", "Path to sweep.yaml (default: search ./, ./configs, ~/.config/sweep/)")
	takeoverCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output structured JSON to stdout")
	takeoverCmd.Flags().IntVar(&concurrency, "concurrency", 0, "Max concurrent hostname analyses")
	takeoverCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable terminal colors")
	takeoverCmd.Flags().BoolVar(&silent, "silent", false, "Results only, no progress")
	takeoverCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose per-source progress")
	takeoverCmd.Flags().BoolVar(&axfr, "axfr", false, "Test for DNS zone transfers")
	takeoverCmd.Flags().BoolVar(&subfinder, "subfinder", true, "Use the external subfinder binary if present on PATH")

	rootCmd.AddCommand(takeoverCmd)
	rootCmd.SetVersionTemplate("sweep {{.Version}}\n")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitScanFailed
	}
	return lastExitCode
}

// lastExitCode carries the takeover-specific exit code out of RunE,
// since cobra only distinguishes "error" from "no error".
var lastExitCode = exitClean

func runTakeover(domain string, cfg *config.Config) error {
	userAgent := fmt.Sprintf("sweep/%s", version)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\ninterrupted, cleaning up...")
		lastExitCode = exitInterrupted
		cancel()
	}()

	showProgress := cfg.Output.Format != "json" && !cfg.Output.Quiet
	progress := output.NewProgress(os.Stderr, cfg.Output.Debug, !showProgress)

	if showProgress {
		output.WriteHeader(os.Stderr, cfg.Output.NoColor)
	}

	httpTimeout, _ := time.ParseDuration(cfg.HTTPTimeout)
	dnsTimeout, _ := time.ParseDuration(cfg.DNSTimeout)

	enumerator := &recon.Enumerator{
		UserAgent: userAgent,
		Progress:  progress,
		AXFR:      cfg.Enumeration.AXFR,
		Subfinder: cfg.Enumeration.Subfinder,
	}

	rateLimiter := scanner.NewRateLimiter(cfg.RatePerSecond)

	dnsClient := dnsresolver.New(dnsresolver.Config{
		QueryTimeout: dnsTimeout,
		Servers:      cfg.DNS.Servers,
		PreferDig:    cfg.DNS.UseDig,
		DigPath:      cfg.DNS.DigPath,
		RateLimiter:  rateLimiter,
	})
	httpClient := probe.NewClient(httpTimeout).WithRateLimiter(rateLimiter)
	tlsClient := probe.NewTLSClient(httpTimeout)

	det := detector.New(dnsClient, httpClient, tlsClient)

	controller := scanner.New(det, scanner.Config{
		Concurrency:   cfg.Concurrency,
		RatePerSecond: 0, // DNS and HTTP calls already wait on the shared limiter above
		Progress:      progress.ScanProgress(),
	})

	result, err := engine.Run(ctx, engine.Config{
		Target:      domain,
		Concurrency: cfg.Concurrency,
		UserAgent:   userAgent,
	}, enumerator, controller, progress)
	if err != nil {
		if lastExitCode == exitInterrupted {
			return nil
		}
		lastExitCode = exitScanFailed
		return err
	}

	if showProgress {
		progress.Complete()
	}

	stats := output.BuildStats(result.Findings, result.ZoneTransfers, result.Warnings, result.Duration)

	if cfg.Output.Format == "json" {
		if err := output.WriteJSON(os.Stdout, domain, result.Findings, stats); err != nil {
			lastExitCode = exitScanFailed
			return err
		}
	} else {
		output.WriteTable(os.Stdout, result.Findings, cfg.Output.NoColor)
		output.WriteSummary(os.Stdout, domain, stats, result.Findings, cfg.Output.NoColor)
	}

	if lastExitCode == exitInterrupted {
		return nil
	}
	if stats.TakeoverCount() > 0 {
		lastExitCode = exitTakeover
	} else {
		lastExitCode = exitClean
	}
	return nil
}
