package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/crypt0miester/solana-vanity-miner/internal/config"
	logpkg "github.com/crypt0miester/solana-vanity-miner/internal/logger"
	minerpkg "github.com/crypt0miester/solana-vanity-miner/pkg/miner"
	"github.com/crypt0miester/solana-vanity-miner/pkg/types"
)

var (
	cfg         = config.NewConfig()
	logger      *logpkg.Logger
	logInterval int
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "vanity-miner",
		Short: "Solana vanity address miner",
		Long: `A command line utility for mining Solana vanity addresses.
Ed25519 keypairs are generated at full entropy until the base58
encoding of the public key matches the requested prefix and/or suffix.`,
		RunE:          runMiner,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().IntVarP(&cfg.Workers, "workers", "w", runtime.NumCPU(), "Number of worker goroutines")
	rootCmd.Flags().StringVarP(&cfg.Prefix, "prefix", "p", "", "Address prefix to match (base58)")
	rootCmd.Flags().StringVarP(&cfg.Suffix, "suffix", "s", "", "Address suffix to match (base58)")
	rootCmd.Flags().BoolVarP(&cfg.IgnoreCase, "ignore-case", "c", false, "Match prefix/suffix case-insensitively")
	rootCmd.Flags().Int64VarP(&cfg.MaxAttempts, "max-attempts", "m", 0, "Attempt ceiling per worker (0 = unlimited)")
	rootCmd.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose output")
	rootCmd.Flags().StringVarP(&cfg.LogFile, "log-file", "l", "", "Log file for progress tracking (default: stdout)")
	rootCmd.Flags().StringVarP(&cfg.Outfile, "outfile", "o", "", "Write the found keypair to this file (JSON byte array)")
	rootCmd.Flags().IntVarP(&logInterval, "log-interval", "i", 1, "Progress logging interval in seconds")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runMiner(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if logInterval > 0 {
		cfg.ProgressInterval = time.Duration(logInterval) * time.Second
	}

	if err := setupLogging(); err != nil {
		return err
	}
	defer logger.Sync()

	logger.Printf("Starting Solana vanity miner with %d workers...", cfg.Workers)
	logger.Printf("Target: %s", cfg.Describe())
	logger.Printf("Expected attempts: ~%.3g", cfg.EstimateAttempts())

	miner := minerpkg.NewMiner(cfg, logger)

	var lastTotal atomic.Int64
	miner.OnProgress(func(total int64, rate float64, elapsed time.Duration) {
		lastTotal.Store(total)
		logger.Printf("Progress: %d attempts, %.2f keys/sec", total, rate)
	})

	// Set up signal handling for Ctrl+C
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	type outcome struct {
		result *types.Result
		err    error
	}
	resultChan := make(chan outcome, 1)
	go func() {
		result, err := miner.Mine(context.Background())
		resultChan <- outcome{result, err}
	}()

	var out outcome
	select {
	case out = <-resultChan:
	case <-sigChan:
		logger.Println("Received interrupt signal (Ctrl+C). Stopping workers...")
		miner.Stop()
		out = <-resultChan
	}

	switch {
	case out.err == nil:
		return printResult(out.result)
	case errors.Is(out.err, minerpkg.ErrCancelled):
		logger.Printf("Mining stopped by user after %d attempts.", lastTotal.Load())
		return nil
	case errors.Is(out.err, minerpkg.ErrExhausted):
		logger.Printf("No match within the attempt budget (%d per worker).", cfg.MaxAttempts)
		return out.err
	default:
		return out.err
	}
}

func printResult(result *types.Result) error {
	logger.Printf("🎉 Found match!")
	logger.Printf("Address: %s", result.Address)
	logger.Printf("Found by: worker %d", result.WorkerID)
	logger.Printf("Attempts: %d", result.Attempts)
	logger.Printf("Duration: %v", result.Duration)

	// Calculate rate safely
	rate := 0.0
	if result.Duration.Seconds() > 0 {
		rate = float64(result.Attempts) / result.Duration.Seconds()
	}
	logger.Printf("Rate: %.2f keys/sec", rate)

	if cfg.Outfile != "" {
		if err := result.Keypair.WriteFile(cfg.Outfile); err != nil {
			return err
		}
		logger.Printf("Keypair written to %s", cfg.Outfile)
	} else {
		logger.Printf("Secret key (base58): %s", result.Keypair.SecretBase58())
	}
	return nil
}

func setupLogging() error {
	if cfg.LogFile != "" {
		file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logger = logpkg.NewWriter(file)
	} else {
		logger = logpkg.New()
	}
	logger.SetVerbose(cfg.Verbose)
	return nil
}
