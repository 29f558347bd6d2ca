package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/arith/internal/probe"
	"github.com/okian/arith/pkg/logger"
)

const (
	defaultNumCases  = 1000
	defaultWorkers   = 2 // multiplier for runtime.NumCPU()
	defaultTimeout   = 10 * time.Second
	defaultMagnitude = 1e6
	defaultRunLimit  = 10 * time.Minute
)

func main() {
	var (
		baseURL   = flag.String("url", "http://localhost:8000", "Base URL of the service")
		numCases  = flag.Int("cases", defaultNumCases, "Operand pairs per operation")
		workers   = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout   = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		magnitude = flag.Float64("magnitude", defaultMagnitude, "Operand magnitude bound")
		seed      = flag.Int64("seed", 0, "Seed for operand generation")
		verbose   = flag.Bool("verbose", false, "Log every case that does not pass")
		help      = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		probe.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunLimit)
	defer cancel()

	config := &probe.Config{
		BaseURL:   *baseURL,
		NumCases:  *numCases,
		Workers:   max(*workers, 1),
		Timeout:   *timeout,
		Magnitude: *magnitude,
		Seed:      *seed,
		Verbose:   *verbose,
	}

	if _, err := probe.Run(ctx, config); err != nil {
		os.Stderr.WriteString("probe failed: " + err.Error() + "\n")
		cancel()
		os.Exit(1)
	}
}
