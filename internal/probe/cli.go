package probe

import (
	"os"
)

// ShowHelp prints usage information for the probe tool.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`Arithmetic API Probe
====================

Sends generated operand pairs to /add and /subtract concurrently and checks
every result against local arithmetic.

Usage:
  go run ./cmd/probe [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8000")
  -cases int
        Operand pairs per operation (default 1000)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 10s)
  -magnitude float
        Operands are drawn from [-magnitude, magnitude) (default 1e6)
  -seed int
        Seed for operand generation (default: from the clock)
  -verbose
        Log every case that does not pass
  -help
        Show this help message
`)
}
