package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/arith/pkg/logger"
)

// Outcome of one case.
const (
	outcomePassed   = "passed"
	outcomeMismatch = "mismatch"
	outcomeFailed   = "failed"
)

// workerChannelMultiplier sizes the case channel relative to the worker count.
const workerChannelMultiplier = 2

// HTTPClient wraps http.Client with timeout.
type HTTPClient struct {
	client *http.Client
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{client: &http.Client{Timeout: timeout}}
}

// Get performs a GET request carrying requestID.
func (c *HTTPClient) Get(ctx context.Context, target, requestID string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}
	return c.client.Do(req)
}

// caseURL renders the request URL for c.
func caseURL(baseURL string, c Case) string {
	q := url.Values{}
	q.Set("a", strconv.FormatFloat(c.A, 'g', -1, 64))
	q.Set("b", strconv.FormatFloat(c.B, 'g', -1, 64))
	return baseURL + "/" + c.Operation + "?" + q.Encode()
}

// submitCases runs every case through a worker pool and tallies outcomes.
func submitCases(ctx context.Context, config *Config, cases []Case, stats *Stats) {
	log := logger.Get()
	log.Info(ctx, "submitting cases", logger.Int("cases", len(cases)), logger.Int("workers", config.Workers))

	client := newHTTPClient(config.Timeout)

	var passed, mismatched, failed int64

	caseChan := make(chan Case, config.Workers*workerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range caseChan {
				if ctx.Err() != nil {
					atomic.AddInt64(&failed, 1)
					continue
				}
				outcome, detail := submitSingleCase(ctx, client, config.BaseURL, c)
				switch outcome {
				case outcomePassed:
					atomic.AddInt64(&passed, 1)
				case outcomeMismatch:
					atomic.AddInt64(&mismatched, 1)
				default:
					atomic.AddInt64(&failed, 1)
				}
				if outcome != outcomePassed && config.Verbose {
					log.Warn(ctx, "case did not pass",
						logger.String("id", c.ID),
						logger.String("operation", c.Operation),
						logger.Float64("a", c.A),
						logger.Float64("b", c.B),
						logger.String("outcome", outcome),
						logger.String("detail", detail))
				}
			}
		}()
	}

	go func() {
		defer close(caseChan)
		for _, c := range cases {
			select {
			case <-ctx.Done():
				return
			case caseChan <- c:
			}
		}
	}()

	wg.Wait()

	stats.Passed = int(atomic.LoadInt64(&passed))
	stats.Mismatched = int(atomic.LoadInt64(&mismatched))
	stats.Failed = int(atomic.LoadInt64(&failed))
	// Cases never handed to a worker because ctx ended count as failed.
	stats.Failed += stats.CasesGenerated - stats.Passed - stats.Mismatched - stats.Failed
}

// submitSingleCase sends one case and classifies the answer.
func submitSingleCase(ctx context.Context, client *HTTPClient, baseURL string, c Case) (string, string) {
	resp, err := client.Get(ctx, caseURL(baseURL, c), c.ID)
	if err != nil {
		return outcomeFailed, err.Error()
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return outcomeFailed, err.Error()
	}
	if resp.StatusCode != http.StatusOK {
		return outcomeFailed, fmt.Sprintf("status %d: %s", resp.StatusCode, body)
	}

	var r Response
	if err := json.Unmarshal(body, &r); err != nil {
		return outcomeFailed, err.Error()
	}
	return verify(c, r)
}
