// Package probe drives a running arithmetic API with generated operands and
// checks every answer against local arithmetic.
package probe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/okian/arith/pkg/logger"
)

// Sentinel errors returned by Run.
var (
	ErrUnhealthy = errors.New("service unhealthy")
	ErrMismatch  = errors.New("results did not match")
)

const percentageMultiplier = 100

// Run executes a complete probe and returns its statistics. It fails when
// the service is unhealthy or any case did not pass.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting probe",
		logger.String("baseURL", config.BaseURL),
		logger.Int("cases", config.NumCases),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()))

	if err := checkServiceHealth(ctx, config); err != nil {
		return stats, err
	}

	cases := generateCases(ctx, config, stats)
	submitCases(ctx, config, cases, stats)

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	if stats.Mismatched > 0 || stats.Failed > 0 {
		return stats, fmt.Errorf("%w: %d mismatched, %d failed of %d",
			ErrMismatch, stats.Mismatched, stats.Failed, stats.CasesGenerated)
	}
	logger.Get().Info(ctx, "probe completed successfully")
	return stats, nil
}

// checkServiceHealth verifies the service answers GET /health with 200.
func checkServiceHealth(ctx context.Context, config *Config) error {
	client := newHTTPClient(config.Timeout)

	resp, err := client.Get(ctx, config.BaseURL+"/health", "")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnhealthy, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// displayFinalStats logs the final statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var passRate, casesPerSecond float64
	if stats.CasesGenerated > 0 {
		passRate = float64(stats.Passed) / float64(stats.CasesGenerated) * percentageMultiplier
	}
	if stats.Duration > 0 {
		casesPerSecond = float64(stats.CasesGenerated) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("casesGenerated", stats.CasesGenerated),
		logger.Int("passed", stats.Passed),
		logger.Int("mismatched", stats.Mismatched),
		logger.Int("failed", stats.Failed),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("passRate", passRate),
		logger.Float64("casesPerSecond", casesPerSecond))
}
